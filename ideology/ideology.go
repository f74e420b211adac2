// Package ideology defines the six-axis racial ideology profile read from
// the Aurora species table (or entered manually) and its validation.
package ideology

import "fmt"

// Profile holds the six racial characteristics that shape the advisor's
// worldview. All axes are integers in [1,100]. Immutable once constructed.
type Profile struct {
	// Fear of other races.
	Xenophobia int `json:"xenophobia"`
	// Persuasion and negotiation skill.
	Diplomacy int `json:"diplomacy"`
	// Use of military force.
	Militancy int `json:"militancy"`
	// Desire to expand territory.
	Expansionism int `json:"expansionism"`
	// Perseverance despite setbacks.
	Determination int `json:"determination"`
	// Willingness to trade.
	Trade int `json:"trade"`
}

// Axes lists the axis names in canonical order. Matcher rules and tier
// lookups are keyed by these names and fail closed on anything else.
var Axes = []string{
	"xenophobia",
	"diplomacy",
	"militancy",
	"expansionism",
	"determination",
	"trade",
}

// Axis returns the value of the named axis. The second return is false
// for unrecognized names.
func (p Profile) Axis(name string) (int, bool) {
	switch name {
	case "xenophobia":
		return p.Xenophobia, true
	case "diplomacy":
		return p.Diplomacy, true
	case "militancy":
		return p.Militancy, true
	case "expansionism":
		return p.Expansionism, true
	case "determination":
		return p.Determination, true
	case "trade":
		return p.Trade, true
	}
	return 0, false
}

const (
	axisMin = 1
	axisMax = 100
)

// ValidationResult reports every constraint violation at once so a caller
// can highlight all invalid fields rather than the first one found.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks a candidate profile supplied as loosely-typed input
// (decoded JSON from the UI). Each axis must be present, an integer, and
// within [1,100]. One "field: message" error per violated axis. Pure; never
// returns an error value. Validation failure is data, not control flow.
func Validate(candidate map[string]any) ValidationResult {
	var errs []string

	for _, axis := range Axes {
		raw, ok := candidate[axis]
		if !ok {
			errs = append(errs, fmt.Sprintf("%s: required", axis))
			continue
		}

		v, ok := asInt(raw)
		if !ok {
			errs = append(errs, fmt.Sprintf("%s: expected integer, got %T", axis, raw))
			continue
		}

		if v < axisMin || v > axisMax {
			errs = append(errs, fmt.Sprintf("%s: must be between %d and %d", axis, axisMin, axisMax))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// FromValues builds a Profile after validating the candidate. Returns the
// validation result unchanged so callers surface itemized errors.
func FromValues(candidate map[string]any) (Profile, ValidationResult) {
	result := Validate(candidate)
	if !result.Valid {
		return Profile{}, result
	}

	var p Profile
	for _, axis := range Axes {
		v, _ := asInt(candidate[axis])
		switch axis {
		case "xenophobia":
			p.Xenophobia = v
		case "diplomacy":
			p.Diplomacy = v
		case "militancy":
			p.Militancy = v
		case "expansionism":
			p.Expansionism = v
		case "determination":
			p.Determination = v
		case "trade":
			p.Trade = v
		}
	}
	return p, result
}

// asInt accepts the numeric shapes JSON decoding produces. Floats with a
// fractional part are rejected; 42.0 round-trips as an integer.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
