package analyzer

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ZionLG/aurora4x-advisor/model"
)

// secondsPerYear converts Aurora's GameTime (seconds since campaign start)
// to elapsed years.
const secondsPerYear = 31_536_000

// queryGameState extracts the six-field game state from a snapshot. The
// first campaign year is year 1.
func queryGameState(db *sqlx.DB) (model.GameState, error) {
	var gs model.GameState

	var clock struct {
		GameTime  float64 `db:"GameTime"`
		StartYear int     `db:"StartYear"`
	}
	if err := db.Get(&clock, `SELECT GameTime, StartYear FROM FCT_Game LIMIT 1`); err != nil {
		return gs, fmt.Errorf("query game clock: %w", err)
	}
	gs.GameYear = int(clock.GameTime/secondsPerYear) + 1

	playerRace, err := queryPlayerRace(db)
	if err != nil {
		return gs, err
	}

	var techCount int
	if err := db.Get(&techCount,
		`SELECT COUNT(*) FROM FCT_TechSystem WHERE CompletionDate > 0`); err != nil {
		return gs, fmt.Errorf("query researched tech: %w", err)
	}
	gs.HasTNTech = techCount > 0

	var alienCount int
	if err := db.Get(&alienCount,
		`SELECT COUNT(*) FROM FCT_Race WHERE NPR = 0 AND RaceID != ?`, playerRace); err != nil {
		return gs, fmt.Errorf("query alien contact: %w", err)
	}
	gs.AlienContact = alienCount > 0

	var hostileCount int
	if err := db.Get(&hostileCount,
		`SELECT COUNT(*) FROM FCT_RaceRelations WHERE RelationValue < 0`); err != nil {
		return gs, fmt.Errorf("query war status: %w", err)
	}
	gs.WarStatus = model.WarStatusPeace
	if hostileCount > 0 {
		gs.WarStatus = model.WarStatusActive
	}

	var shipCount int
	if err := db.Get(&shipCount,
		`SELECT COUNT(*) FROM FCT_Ship WHERE RaceID = ?`, playerRace); err != nil {
		return gs, fmt.Errorf("query ships: %w", err)
	}
	gs.HasBuiltFirstShip = shipCount > 0

	var surveyedCount int
	if err := db.Get(&surveyedCount,
		`SELECT COUNT(*) FROM FCT_SystemBody WHERE Surveyed = 1`); err != nil {
		return gs, fmt.Errorf("query survey status: %w", err)
	}
	gs.HasSurveyedHomeSystem = surveyedCount > 0

	return gs, nil
}

func queryPlayerRace(db *sqlx.DB) (int, error) {
	var raceID int
	err := db.Get(&raceID, `SELECT RaceID FROM FCT_Race WHERE PlayerRace = 1 LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errors.New("snapshot has no player race")
	}
	if err != nil {
		return 0, fmt.Errorf("query player race: %w", err)
	}
	return raceID, nil
}

// queryDetectionStats gathers the aggregate statistics the observation
// rules evaluate. All aggregates are empire-wide.
func queryDetectionStats(db *sqlx.DB, gs model.GameState) (DetectionEnv, error) {
	env := DetectionEnv{State: gs}

	playerRace, err := queryPlayerRace(db)
	if err != nil {
		return env, err
	}

	if err := db.Get(&env.IdleLabs,
		`SELECT COUNT(*) FROM FCT_ResearchLab WHERE ProjectID IS NULL`); err != nil {
		return env, fmt.Errorf("query idle labs: %w", err)
	}

	var allocatedPct float64
	if err := db.Get(&allocatedPct,
		`SELECT COALESCE(SUM(Percentage), 0) FROM FCT_IndustrialProjects`); err != nil {
		return env, fmt.Errorf("query construction allocation: %w", err)
	}
	if allocatedPct > 100 {
		allocatedPct = 100
	}
	env.IdleConstructionPct = 100 - allocatedPct

	if err := db.Get(&env.FuelPercent,
		`SELECT COALESCE(CAST(SUM(FuelStockpile) AS REAL) * 100.0 / NULLIF(SUM(FuelCapacity), 0), 100)
		 FROM FCT_Population WHERE RaceID = ?`, playerRace); err != nil {
		return env, fmt.Errorf("query fuel reserves: %w", err)
	}

	if err := db.Get(&env.ShipsOverdueOverhaul,
		`SELECT COUNT(*) FROM FCT_Ship
		 WHERE RaceID = ? AND MaintenanceClock > MaintenanceLife`, playerRace); err != nil {
		return env, fmt.Errorf("query overdue overhauls: %w", err)
	}

	env.HomeSystemName = "Unknown"
	var home sql.NullString
	if err := db.Get(&home,
		`SELECT PopName FROM FCT_Population WHERE RaceID = ?
		 ORDER BY Population DESC LIMIT 1`, playerRace); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return env, fmt.Errorf("query home system: %w", err)
	}
	if home.Valid {
		env.HomeSystemName = home.String
	}

	return env, nil
}
