package archetype

import "testing"

func TestGet(t *testing.T) {
	a, err := Get(ReligiousZealot)
	if err != nil {
		t.Fatalf("Get(ReligiousZealot) error: %v", err)
	}
	if a.Name != "Religious Zealot" {
		t.Errorf("Name = %q", a.Name)
	}

	if _, err := Get("space-pirate"); err == nil {
		t.Error("Get accepted unknown archetype id")
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 8 {
		t.Fatalf("All() returned %d archetypes, want 8", len(all))
	}
	if all[0].ID != StaunchNationalist || all[7].ID != ReligiousZealot {
		t.Errorf("All() order changed: first %s, last %s", all[0].ID, all[7].ID)
	}
	for _, a := range all {
		if !Valid(a.ID) {
			t.Errorf("Valid(%s) = false", a.ID)
		}
	}
}
