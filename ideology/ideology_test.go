package ideology

import (
	"strings"
	"testing"
)

func validCandidate() map[string]any {
	return map[string]any{
		"xenophobia":    float64(50),
		"diplomacy":     float64(50),
		"militancy":     float64(50),
		"expansionism":  float64(50),
		"determination": float64(50),
		"trade":         float64(50),
	}
}

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(m map[string]any)
	}{
		{"mid-range values", func(m map[string]any) {}},
		{"lower bound", func(m map[string]any) { m["xenophobia"] = float64(1) }},
		{"upper bound", func(m map[string]any) { m["trade"] = float64(100) }},
		{"native ints", func(m map[string]any) { m["militancy"] = 73 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := validCandidate()
			tc.tweak(m)
			result := Validate(m)
			if !result.Valid {
				t.Fatalf("Validate() = invalid, errors: %v", result.Errors)
			}
			if len(result.Errors) != 0 {
				t.Errorf("valid result carries %d errors", len(result.Errors))
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name      string
		tweak     func(m map[string]any)
		wantField string
	}{
		{"below range", func(m map[string]any) { m["diplomacy"] = float64(0) }, "diplomacy"},
		{"above range", func(m map[string]any) { m["militancy"] = float64(101) }, "militancy"},
		{"missing axis", func(m map[string]any) { delete(m, "determination") }, "determination"},
		{"non-integer", func(m map[string]any) { m["expansionism"] = 42.5 }, "expansionism"},
		{"wrong type", func(m map[string]any) { m["trade"] = "high" }, "trade"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := validCandidate()
			tc.tweak(m)
			result := Validate(m)
			if result.Valid {
				t.Fatal("Validate() = valid, want invalid")
			}
			if len(result.Errors) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(result.Errors), result.Errors)
			}
			if !strings.HasPrefix(result.Errors[0], tc.wantField+":") {
				t.Errorf("error %q does not name field %q", result.Errors[0], tc.wantField)
			}
		})
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	m := validCandidate()
	m["xenophobia"] = float64(0)
	m["diplomacy"] = float64(200)
	delete(m, "trade")

	result := Validate(m)
	if result.Valid {
		t.Fatal("Validate() = valid, want invalid")
	}
	if len(result.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(result.Errors), result.Errors)
	}
}

func TestFromValues(t *testing.T) {
	m := validCandidate()
	m["xenophobia"] = float64(98)
	p, result := FromValues(m)
	if !result.Valid {
		t.Fatalf("FromValues rejected valid input: %v", result.Errors)
	}
	if p.Xenophobia != 98 || p.Diplomacy != 50 {
		t.Errorf("FromValues = %+v, want xenophobia 98, diplomacy 50", p)
	}

	m["trade"] = "lots"
	if _, result := FromValues(m); result.Valid {
		t.Error("FromValues accepted invalid input")
	}
}

func TestAxisLookupFailsClosed(t *testing.T) {
	p := Profile{Xenophobia: 10, Trade: 90}
	if v, ok := p.Axis("trade"); !ok || v != 90 {
		t.Errorf("Axis(trade) = %d, %v", v, ok)
	}
	if _, ok := p.Axis("charisma"); ok {
		t.Error("Axis accepted unknown axis name")
	}
}

func TestTierLabels(t *testing.T) {
	tests := []struct {
		axis  string
		value int
		want  string
	}{
		{"xenophobia", 100, "Genocidal"},
		{"xenophobia", 90, "Genocidal"},
		{"xenophobia", 89, "Paranoid"},
		{"xenophobia", 1, "Naive"},
		{"diplomacy", 50, "Adequate"},
		{"militancy", 95, "Bloodthirsty"},
		{"expansionism", 12, "Isolationist"},
		{"determination", 75, "Unbreakable"},
		{"trade", 60, "Pro-Trade"},
	}
	for _, tc := range tests {
		if got := TierLabel(tc.axis, tc.value); got != tc.want {
			t.Errorf("TierLabel(%s, %d) = %q, want %q", tc.axis, tc.value, got, tc.want)
		}
	}
}

// Every integer in [1,100] must map to exactly one tier per axis.
func TestTiersPartitionRange(t *testing.T) {
	for _, axis := range Axes {
		for v := 1; v <= 100; v++ {
			hits := 0
			for _, tr := range axisTiers[axis] {
				if v >= tr.min && v <= tr.max {
					hits++
				}
			}
			if hits != 1 {
				t.Fatalf("axis %s value %d covered by %d tiers", axis, v, hits)
			}
		}
		if len(axisTiers[axis]) != 7 {
			t.Errorf("axis %s has %d tiers, want 7", axis, len(axisTiers[axis]))
		}
	}
}

func TestTierLabelUnknown(t *testing.T) {
	if got := TierLabel("charisma", 50); got != "Unknown" {
		t.Errorf("TierLabel(charisma, 50) = %q, want Unknown", got)
	}
	if got := TierLabel("trade", 0); got != "Unknown" {
		t.Errorf("TierLabel(trade, 0) = %q, want Unknown", got)
	}
}
