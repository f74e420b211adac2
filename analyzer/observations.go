package analyzer

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ZionLG/aurora4x-advisor/model"
)

// DetectionEnv is what observation rule conditions evaluate against: the
// coarse game state plus the aggregate statistics pulled from the snapshot.
type DetectionEnv struct {
	State model.GameState

	// IdleLabs is the number of research labs with no assigned project.
	IdleLabs int
	// IdleConstructionPct is the share of construction capacity (0-100)
	// not allocated to any industrial project.
	IdleConstructionPct float64
	// FuelPercent is empire-wide fuel stockpile over capacity, 0-100.
	FuelPercent float64
	// ShipsOverdueOverhaul counts commissioned ships past their
	// maintenance life.
	ShipsOverdueOverhaul int
	// HomeSystemName names the most populated colony's system, used for
	// location placeholders in messages.
	HomeSystemName string
}

// ObservationRule turns a snapshot statistic into an advisory observation.
// The condition is an expr expression over DetectionEnv, compiled once at
// detector construction; Data builds the placeholder values for the
// observation's message.
type ObservationRule struct {
	ID           string
	ConditionSrc string
	program      *vm.Program
	Data         func(env DetectionEnv) map[string]any
}

// Detector evaluates compiled observation rules against a detection
// environment. Rules that error are logged and skipped; detection must
// never take down an analysis run.
type Detector struct {
	rules []*ObservationRule
}

// NewDetector compiles every rule condition into expr bytecode.
func NewDetector(rules []*ObservationRule) (*Detector, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(DetectionEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile observation rule %q: %w", r.ID, err)
		}
		r.program = prog
	}
	return &Detector{rules: rules}, nil
}

// Detect returns one observation per rule whose condition holds, in rule
// declaration order.
func (d *Detector) Detect(env DetectionEnv) []model.Observation {
	var observations []model.Observation
	for _, r := range d.rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("observation rule error", "rule", r.ID, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		observations = append(observations, model.Observation{
			ID:   r.ID,
			Data: r.Data(env),
		})
	}
	return observations
}

// DefaultObservationRules is the built-in detection rule set. IDs must line
// up with the observation ids authored in the content library.
func DefaultObservationRules() []*ObservationRule {
	return []*ObservationRule{
		{
			ID:           "idle-labs",
			ConditionSrc: `IdleLabs > 0`,
			Data: func(env DetectionEnv) map[string]any {
				return map[string]any{"idleLabs": env.IdleLabs}
			},
		},
		{
			ID:           "idle-construction-factories",
			ConditionSrc: `IdleConstructionPct >= 10`,
			Data: func(env DetectionEnv) map[string]any {
				return map[string]any{"percentageIdle": math.Round(env.IdleConstructionPct)}
			},
		},
		{
			// Fuel nagging starts once the empire is past initial buildup.
			ID:           "fuel-low",
			ConditionSrc: `State.GameYear > 2 && FuelPercent < 20`,
			Data: func(env DetectionEnv) map[string]any {
				return map[string]any{
					"fuelPercent": math.Round(env.FuelPercent),
					"systemName":  env.HomeSystemName,
				}
			},
		},
		{
			ID:           "maintenance-needed",
			ConditionSrc: `State.HasBuiltFirstShip && ShipsOverdueOverhaul > 0`,
			Data: func(env DetectionEnv) map[string]any {
				return map[string]any{
					"overdueShips": env.ShipsOverdueOverhaul,
					"systemName":   env.HomeSystemName,
				}
			},
		},
	}
}
