package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrNotFound is returned when a requested profile id exists in neither the
// user nor the bundled content tree.
var ErrNotFound = errors.New("profile not found")

const (
	profilesSubdir = "personality-profiles"
	genericFile    = "generic.json"
)

// Repository loads personality profiles from two priority-ordered content
// trees: a writable user tree searched first, then the read-only bundled
// tree. Each tree holds personality-profiles/<archetype>/<file>.json plus a
// generic.json at its root. Results are cached for the process lifetime;
// ClearCache forces a re-read. Safe for concurrent use.
type Repository struct {
	bundledDir string
	userDir    string

	mu       sync.Mutex
	generic  *Profile
	profiles map[string]*Profile
}

// NewRepository creates a repository over the given content trees. The user
// directory may be empty or absent; the bundled directory must exist by the
// time content is first requested.
func NewRepository(bundledDir, userDir string) *Repository {
	return &Repository{
		bundledDir: bundledDir,
		userDir:    userDir,
		profiles:   make(map[string]*Profile),
	}
}

// Generic loads the bundled fallback profile. It is never overridable by
// user content and must be valid: an invalid generic profile is a fatal
// misconfiguration, not a skippable content problem.
func (r *Repository) Generic() (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generic != nil {
		return r.generic, nil
	}

	path := filepath.Join(r.bundledDir, genericFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read generic profile: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("generic profile %s: %w", path, err)
	}

	r.generic = p
	return p, nil
}

// Load returns the profile with the given embedded id, searching the user
// tree before the bundled tree. A profile that is found but fails schema
// validation is an error: a specifically-requested resource must be
// well-formed. Absence everywhere yields ErrNotFound.
func (r *Repository) Load(id string) (*Profile, error) {
	r.mu.Lock()
	if p, ok := r.profiles[id]; ok {
		r.mu.Unlock()
		return p, nil
	}
	r.mu.Unlock()

	for _, dir := range []string{r.userDir, r.bundledDir} {
		if dir == "" {
			continue
		}
		p, err := searchTree(filepath.Join(dir, profilesSubdir), id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			r.mu.Lock()
			r.profiles[id] = p
			r.mu.Unlock()
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// LoadAll walks both content trees and returns every valid profile, keyed
// by id with user entries unconditionally overriding bundled entries. Files
// that fail schema validation are logged and skipped so one malformed user
// file cannot take down the whole library; unreadable files and malformed
// JSON propagate because they indicate a broken environment.
func (r *Repository) LoadAll() ([]*Profile, error) {
	merged := make(map[string]*Profile)

	bundled, err := loadTree(filepath.Join(r.bundledDir, profilesSubdir))
	if err != nil {
		return nil, err
	}
	for _, p := range bundled {
		merged[p.ID] = p
	}

	if r.userDir != "" {
		user, err := loadTree(filepath.Join(r.userDir, profilesSubdir))
		if err != nil {
			return nil, err
		}
		for _, p := range user {
			merged[p.ID] = p
		}
	}

	r.mu.Lock()
	for id, p := range merged {
		r.profiles[id] = p
	}
	r.mu.Unlock()

	out := make([]*Profile, 0, len(merged))
	for _, p := range merged {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	slog.Debug("loaded profile library", "count", len(out))
	return out, nil
}

// ClearCache drops all cached content so the next access re-reads from
// disk. Used by tests and after the user edits content between sessions.
func (r *Repository) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generic = nil
	r.profiles = make(map[string]*Profile)
}

// searchTree scans the archetype subdirectories of one content tree for a
// file whose embedded id matches. Returns (nil, nil) when absent.
func searchTree(root, id string) (*Profile, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read archetype dir: %w", err)
		}

		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
				continue
			}
			path := filepath.Join(dir, file.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}

			var peek struct {
				ID string `json:"id"`
			}
			if err := json.Unmarshal(data, &peek); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			if peek.ID != id {
				continue
			}

			p, err := Parse(data)
			if err != nil {
				return nil, fmt.Errorf("profile %s: %w", path, err)
			}
			return p, nil
		}
	}

	return nil, nil
}

// loadTree parses every content file under one tree, skipping schema
// failures.
func loadTree(root string) ([]*Profile, error) {
	var profiles []*Profile

	entries, err := os.ReadDir(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read archetype dir: %w", err)
		}

		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
				continue
			}
			path := filepath.Join(dir, file.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}

			p, err := Parse(data)
			var schemaErr *SchemaError
			if errors.As(err, &schemaErr) {
				slog.Warn("skipping invalid profile", "path", path, "issues", schemaErr.Issues)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("profile %s: %w", path, err)
			}
			profiles = append(profiles, p)
		}
	}

	return profiles, nil
}
