package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func profileDoc(id, name string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"archetype": "military-strategist",
		"name": %q,
		"keywords": [],
		"description": "Fixture profile.",
		"greetings": {"initial": "Reporting in.", "returning": "At your orders."},
		"observations": {}
	}`, id, name)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// newFixtureRepo builds a bundled tree with a generic profile and one
// bundled profile, plus an empty user tree.
func newFixtureRepo(t *testing.T) (*Repository, string, string) {
	t.Helper()
	bundled := t.TempDir()
	user := t.TempDir()

	writeFile(t, filepath.Join(bundled, "generic.json"), profileDoc("generic", "Generic Advisor"))
	writeFile(t, filepath.Join(bundled, "personality-profiles", "military-strategist", "iron-fist.json"),
		profileDoc("iron-fist", "The Iron Fist"))

	return NewRepository(bundled, user), bundled, user
}

func TestGeneric(t *testing.T) {
	repo, bundled, _ := newFixtureRepo(t)

	g, err := repo.Generic()
	if err != nil {
		t.Fatalf("Generic() error: %v", err)
	}
	if g.ID != "generic" {
		t.Errorf("generic id = %q", g.ID)
	}

	// Cached: removing the file must not affect subsequent loads.
	if err := os.Remove(filepath.Join(bundled, "generic.json")); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Generic(); err != nil {
		t.Errorf("cached Generic() error: %v", err)
	}

	repo.ClearCache()
	if _, err := repo.Generic(); err == nil {
		t.Error("Generic() succeeded after cache clear with file removed")
	}
}

func TestGenericInvalidIsFatal(t *testing.T) {
	bundled := t.TempDir()
	writeFile(t, filepath.Join(bundled, "generic.json"), `{"id": "generic"}`)

	repo := NewRepository(bundled, "")
	_, err := repo.Generic()
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Generic() error = %v, want wrapped *SchemaError", err)
	}
}

func TestLoad(t *testing.T) {
	repo, _, _ := newFixtureRepo(t)

	p, err := repo.Load("iron-fist")
	if err != nil {
		t.Fatalf("Load(iron-fist) error: %v", err)
	}
	if p.Name != "The Iron Fist" {
		t.Errorf("name = %q", p.Name)
	}

	_, err = repo.Load("ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestLoadPrefersUserTree(t *testing.T) {
	repo, _, user := newFixtureRepo(t)
	writeFile(t, filepath.Join(user, "personality-profiles", "military-strategist", "custom.json"),
		profileDoc("iron-fist", "The Iron Fist (Custom)"))

	p, err := repo.Load("iron-fist")
	if err != nil {
		t.Fatalf("Load(iron-fist) error: %v", err)
	}
	if p.Name != "The Iron Fist (Custom)" {
		t.Errorf("name = %q, want user override", p.Name)
	}
}

func TestLoadCaches(t *testing.T) {
	repo, bundled, _ := newFixtureRepo(t)

	if _, err := repo.Load("iron-fist"); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(filepath.Join(bundled, "personality-profiles")); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Load("iron-fist"); err != nil {
		t.Errorf("cached Load() error: %v", err)
	}

	repo.ClearCache()
	if _, err := repo.Load("iron-fist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after clear = %v, want ErrNotFound", err)
	}
}

func TestLoadInvalidRequestedProfileIsFatal(t *testing.T) {
	repo, bundled, _ := newFixtureRepo(t)
	writeFile(t, filepath.Join(bundled, "personality-profiles", "military-strategist", "broken.json"),
		`{"id": "broken", "archetype": "military-strategist"}`)

	_, err := repo.Load("broken")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Load(broken) error = %v, want wrapped *SchemaError", err)
	}
}

func TestLoadAllMergesWithUserOverride(t *testing.T) {
	repo, _, user := newFixtureRepo(t)
	writeFile(t, filepath.Join(user, "personality-profiles", "military-strategist", "iron-fist.json"),
		profileDoc("iron-fist", "The Iron Fist (Custom)"))
	writeFile(t, filepath.Join(user, "personality-profiles", "diplomatic-envoy", "peacemaker.json"),
		profileDoc("peacemaker", "The Peacemaker"))

	all, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("LoadAll() returned %d profiles, want 2", len(all))
	}

	byID := make(map[string]*Profile)
	for _, p := range all {
		byID[p.ID] = p
	}
	if byID["iron-fist"].Name != "The Iron Fist (Custom)" {
		t.Errorf("iron-fist name = %q, want user override", byID["iron-fist"].Name)
	}
	if _, ok := byID["peacemaker"]; !ok {
		t.Error("user-only profile missing from LoadAll")
	}

	// Point lookup after bulk load serves the user version from cache.
	p, err := repo.Load("iron-fist")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "The Iron Fist (Custom)" {
		t.Errorf("Load after LoadAll = %q, want user override", p.Name)
	}
}

func TestLoadAllSkipsInvalidFiles(t *testing.T) {
	repo, _, user := newFixtureRepo(t)
	writeFile(t, filepath.Join(user, "personality-profiles", "military-strategist", "bad.json"),
		`{"id": "bad", "archetype": "military-strategist"}`)

	all, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(all) != 1 || all[0].ID != "iron-fist" {
		t.Errorf("LoadAll() = %d profiles, want only iron-fist", len(all))
	}
}

func TestLoadAllSkipsFractionalMatcherBound(t *testing.T) {
	// Well-formed JSON with a non-integer bound is bad content, not a bad
	// environment: bulk load must skip the file and keep the rest.
	repo, _, user := newFixtureRepo(t)
	writeFile(t, filepath.Join(user, "personality-profiles", "military-strategist", "fractional.json"),
		`{"id": "fractional", "archetype": "military-strategist", "name": "Fractional",
		  "keywords": [], "description": "d",
		  "matcher": {"xenophobia": {"min": 40.5}},
		  "greetings": {"initial": "i", "returning": "r"}, "observations": {}}`)

	all, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(all) != 1 || all[0].ID != "iron-fist" {
		t.Errorf("LoadAll() = %d profiles, want only iron-fist", len(all))
	}
}

func TestLoadAllPropagatesMalformedJSON(t *testing.T) {
	repo, _, user := newFixtureRepo(t)
	writeFile(t, filepath.Join(user, "personality-profiles", "military-strategist", "truncated.json"),
		`{"id": "trunc",`)

	if _, err := repo.LoadAll(); err == nil {
		t.Error("LoadAll() did not propagate malformed JSON")
	}
}

func TestLoadAllWithoutUserTree(t *testing.T) {
	bundled := t.TempDir()
	writeFile(t, filepath.Join(bundled, "personality-profiles", "military-strategist", "a.json"),
		profileDoc("a", "A"))

	repo := NewRepository(bundled, filepath.Join(bundled, "does-not-exist"))
	all, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("LoadAll() = %d profiles, want 1", len(all))
	}
}
