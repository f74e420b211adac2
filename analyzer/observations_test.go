package analyzer

import (
	"testing"

	"github.com/ZionLG/aurora4x-advisor/model"
)

func TestDefaultRulesCompile(t *testing.T) {
	d, err := NewDetector(DefaultObservationRules())
	if err != nil {
		t.Fatalf("NewDetector(DefaultObservationRules()) failed: %v", err)
	}
	if len(d.rules) != 4 {
		t.Errorf("expected 4 rules, got %d", len(d.rules))
	}
}

func TestDetectEarlyGame(t *testing.T) {
	d, err := NewDetector(DefaultObservationRules())
	if err != nil {
		t.Fatal(err)
	}

	env := DetectionEnv{
		State:               model.GameState{GameYear: 1, WarStatus: model.WarStatusPeace},
		IdleLabs:            5,
		IdleConstructionPct: 30,
		FuelPercent:         10, // low, but year 1 suppresses the nag
		HomeSystemName:      "Sol",
	}

	obs := d.Detect(env)
	if len(obs) != 2 {
		t.Fatalf("got %d observations, want 2: %+v", len(obs), obs)
	}
	if obs[0].ID != "idle-labs" || obs[1].ID != "idle-construction-factories" {
		t.Errorf("observation order = %s, %s", obs[0].ID, obs[1].ID)
	}
	if obs[0].Data["idleLabs"] != 5 {
		t.Errorf("idleLabs data = %v", obs[0].Data["idleLabs"])
	}
	if obs[1].Data["percentageIdle"] != float64(30) {
		t.Errorf("percentageIdle data = %v", obs[1].Data["percentageIdle"])
	}
}

func TestDetectFuelAndMaintenanceGating(t *testing.T) {
	d, err := NewDetector(DefaultObservationRules())
	if err != nil {
		t.Fatal(err)
	}

	env := DetectionEnv{
		State: model.GameState{
			GameYear:          4,
			HasBuiltFirstShip: true,
			WarStatus:         model.WarStatusPeace,
		},
		FuelPercent:          15,
		ShipsOverdueOverhaul: 2,
		HomeSystemName:       "Sol",
	}

	obs := d.Detect(env)
	ids := make(map[string]model.Observation)
	for _, o := range obs {
		ids[o.ID] = o
	}

	fuel, ok := ids["fuel-low"]
	if !ok {
		t.Fatal("fuel-low not detected past year 2")
	}
	if fuel.Data["fuelPercent"] != float64(15) || fuel.Data["systemName"] != "Sol" {
		t.Errorf("fuel-low data = %v", fuel.Data)
	}

	if _, ok := ids["maintenance-needed"]; !ok {
		t.Error("maintenance-needed not detected with overdue ships")
	}

	// Without a first ship, maintenance can't apply no matter the stats.
	env.State.HasBuiltFirstShip = false
	obs = d.Detect(env)
	for _, o := range obs {
		if o.ID == "maintenance-needed" {
			t.Error("maintenance-needed detected before first ship built")
		}
	}
}

func TestDetectQuietEmpire(t *testing.T) {
	d, err := NewDetector(DefaultObservationRules())
	if err != nil {
		t.Fatal(err)
	}

	env := DetectionEnv{
		State:       model.GameState{GameYear: 10, HasBuiltFirstShip: true},
		FuelPercent: 80,
	}
	if obs := d.Detect(env); len(obs) != 0 {
		t.Errorf("quiet empire produced observations: %+v", obs)
	}
}

func TestNewDetectorRejectsBadCondition(t *testing.T) {
	_, err := NewDetector([]*ObservationRule{{
		ID:           "broken",
		ConditionSrc: `NoSuchField > 1`,
		Data:         func(DetectionEnv) map[string]any { return nil },
	}})
	if err == nil {
		t.Error("NewDetector accepted an invalid condition")
	}
}
