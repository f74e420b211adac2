// Package analyzer derives advisory output from an Aurora database
// snapshot: it extracts the coarse game state, runs the observation
// detection rules, and resolves everything into pre-authored text through
// the active personality profile.
package analyzer

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ZionLG/aurora4x-advisor/advisor"
	"github.com/ZionLG/aurora4x-advisor/model"
	"github.com/ZionLG/aurora4x-advisor/profile"
)

// AdvicePackage is the full analysis result sent to the shell.
type AdvicePackage struct {
	GameState    model.GameState          `json:"gameState"`
	Tutorials    []profile.TutorialAdvice `json:"tutorials"`
	Observations []model.Observation      `json:"observations"`
	// AnalyzedAt is the snapshot file's modification time in unix
	// milliseconds: when the game saved, not when we looked.
	AnalyzedAt int64 `json:"analyzedAt"`
}

// Analyzer runs analysis passes over database snapshots.
type Analyzer struct {
	repo     *profile.Repository
	resolver *advisor.Resolver
	detector *Detector
}

// New builds an analyzer with the default observation rule set.
func New(repo *profile.Repository) (*Analyzer, error) {
	detector, err := NewDetector(DefaultObservationRules())
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		repo:     repo,
		resolver: advisor.NewResolver(repo),
		detector: detector,
	}, nil
}

// Analyze opens the snapshot read-only, extracts the game state, detects
// observations, and resolves tutorials and messages through the given
// personality profile.
func (a *Analyzer) Analyze(snapshotPath, profileID string) (*AdvicePackage, error) {
	info, err := os.Stat(snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("stat snapshot: %w", err)
	}

	db, err := sqlx.Open("sqlite", "file:"+snapshotPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	gs, err := queryGameState(db)
	if err != nil {
		return nil, err
	}
	slog.Info("game state extracted",
		"snapshot", snapshotPath,
		"gameYear", gs.GameYear,
		"tnTech", gs.HasTNTech,
		"alienContact", gs.AlienContact,
		"warStatus", gs.WarStatus,
	)

	p, err := a.repo.Load(profileID)
	if err != nil {
		return nil, err
	}

	tutorials, err := a.resolver.TutorialAdvice(gs, p)
	if err != nil {
		return nil, err
	}

	env, err := queryDetectionStats(db, gs)
	if err != nil {
		return nil, err
	}

	observations := a.detector.Detect(env)
	for i := range observations {
		observations[i].Message = a.resolver.ObservationMessage(
			observations[i].ID, observations[i].Data, gs, p)
	}

	slog.Info("analysis complete",
		"profile", profileID,
		"tutorials", len(tutorials),
		"observations", len(observations),
	)

	return &AdvicePackage{
		GameState:    gs,
		Tutorials:    tutorials,
		Observations: observations,
		AnalyzedAt:   info.ModTime().UnixMilli(),
	}, nil
}
