package profile

import "github.com/ZionLG/aurora4x-advisor/model"

// Match evaluates the condition set against a game state. Every declared
// field must pass (logical AND, short-circuit on the first failure); an
// empty set always matches. Unrecognized field names are rejected at schema
// time, so hitting one here fails closed rather than passing silently.
func (c Conditions) Match(gs model.GameState) bool {
	for field, cond := range c {
		stateValue, ok := gs.Field(field)
		if !ok {
			return false
		}

		if cond.Range() {
			n, ok := asNumber(stateValue)
			if !ok {
				return false
			}
			if cond.Min != nil && n < *cond.Min {
				return false
			}
			if cond.Max != nil && n > *cond.Max {
				return false
			}
			continue
		}

		if !scalarEqual(stateValue, cond.Equals) {
			return false
		}
	}
	return true
}

// scalarEqual compares a typed game-state value against a JSON-decoded
// expectation, normalizing numbers across the int/float64 divide.
func scalarEqual(stateValue, expected any) bool {
	if sn, ok := asNumber(stateValue); ok {
		en, ok := asNumber(expected)
		return ok && sn == en
	}
	return stateValue == expected
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
