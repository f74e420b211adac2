// Package profile defines the authored advisor content entities, their
// strict schema validation, the layered bundled/user repository that loads
// them, and the declarative condition evaluator used to pick text variants.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ZionLG/aurora4x-advisor/archetype"
)

// Matcher rule weights. Unspecified weight defaults to Important.
const (
	WeightSecondary = 1
	WeightImportant = 2
	WeightCritical  = 3
)

// MatcherRule scores one ideology axis. Either bound may be absent,
// meaning unbounded on that side.
type MatcherRule struct {
	Min    *int `json:"min,omitempty"`
	Max    *int `json:"max,omitempty"`
	Weight *int `json:"weight,omitempty"`
}

// Greetings is the pair of static advisor openers.
type Greetings struct {
	Initial   string `json:"initial"`
	Returning string `json:"returning"`
}

// TutorialAdvice is one conditional early-game tip. The generic profile's
// tutorialAdvice list is the authoritative id registry; per-profile entries
// override the generic entry with the same id.
type TutorialAdvice struct {
	ID         string     `json:"id"`
	Conditions Conditions `json:"conditions"`
	Body       string     `json:"body"`
}

// ObservationVariant pairs a condition set with message text. Variants are
// scanned in declared order; the first match wins.
type ObservationVariant struct {
	Conditions Conditions `json:"conditions"`
	Message    string     `json:"message"`
}

// Profile is one authored advisor personality. Loaded from a content file,
// validated against the strict schema, then treated as immutable.
type Profile struct {
	ID             string                          `json:"id"`
	Archetype      archetype.ID                    `json:"archetype"`
	Name           string                          `json:"name"`
	Keywords       []string                        `json:"keywords"`
	Description    string                          `json:"description"`
	Matcher        map[string]MatcherRule          `json:"matcher,omitempty"`
	Greetings      Greetings                       `json:"greetings"`
	TutorialAdvice []TutorialAdvice                `json:"tutorialAdvice,omitempty"`
	Observations   map[string][]ObservationVariant `json:"observations"`
}

// Conditions maps a game-state field name to an expectation. An empty set
// always matches, which is how default/unconditional variants are authored.
type Conditions map[string]Condition

// Condition is either a scalar equality expectation or a numeric range.
// The JSON form is the scalar itself, or an object with min/max.
type Condition struct {
	// Equals holds the expected scalar when the condition is an equality
	// check (bool, string, or number as decoded by encoding/json).
	Equals any
	// Min/Max bound a numeric range check. Range when either is set or
	// the JSON form was an object.
	Min     *float64
	Max     *float64
	isRange bool
}

// Range reports whether the condition is a numeric range check.
func (c Condition) Range() bool { return c.isRange }

// EqualsCondition builds a scalar equality condition.
func EqualsCondition(v any) Condition { return Condition{Equals: v} }

// RangeCondition builds a range condition; nil leaves a bound open.
func RangeCondition(min, max *float64) Condition {
	return Condition{Min: min, Max: max, isRange: true}
}

type conditionRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

func (c *Condition) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		var r conditionRange
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("range condition: %w", err)
		}
		*c = Condition{Min: r.Min, Max: r.Max, isRange: true}
		return nil
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*c = Condition{Equals: v}
	return nil
}

func (c Condition) MarshalJSON() ([]byte, error) {
	if c.isRange {
		return json.Marshal(conditionRange{Min: c.Min, Max: c.Max})
	}
	return json.Marshal(c.Equals)
}
