// Package snapshot copies the live Aurora database into per-game snapshot
// directories whenever the game saves. Aurora holds the file open for its
// whole run, so change detection polls the modification time rather than
// relying on close events.
package snapshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultInterval is how often the watcher polls the database file.
const DefaultInterval = 5 * time.Second

// NewGameID mints an identifier for a tracked game. Snapshots for the game
// live under <root>/<id>/.
func NewGameID() string {
	return uuid.NewString()
}

// Watcher polls one database file and snapshots it when its modification
// time settles after a change. Requiring the mtime to hold still for one
// full poll interval avoids copying a half-written save.
type Watcher struct {
	dbPath   string
	root     string
	interval time.Duration

	mu          sync.Mutex
	gameID      string
	snapshotted time.Time // mtime of the last snapshot taken
	pending     time.Time // changed mtime awaiting a stable confirmation
	onSnapshot  func(path string)
}

// NewWatcher watches dbPath and writes snapshots under root. A non-positive
// interval falls back to DefaultInterval.
func NewWatcher(dbPath, root string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{dbPath: dbPath, root: root, interval: interval}
}

// SetGameID selects which game's directory receives snapshots. Snapshots
// are suspended while no game is selected.
func (w *Watcher) SetGameID(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gameID = id
}

// OnSnapshot registers the callback invoked with each new snapshot path.
func (w *Watcher) OnSnapshot(fn func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onSnapshot = fn
}

// Run polls until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("watching database", "path", w.dbPath, "interval", w.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	info, err := os.Stat(w.dbPath)
	if err != nil {
		slog.Warn("cannot stat watched database", "path", w.dbPath, "error", err)
		return
	}
	mod := info.ModTime()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.snapshotted.IsZero() {
		// First observation establishes the baseline; the pre-existing
		// file state is not a save event.
		w.snapshotted = mod
		return
	}
	if mod.Equal(w.snapshotted) {
		w.pending = time.Time{}
		return
	}
	if !mod.Equal(w.pending) {
		// Still being written; wait for the mtime to settle.
		w.pending = mod
		return
	}

	if w.gameID == "" {
		slog.Debug("database changed but no game selected, skipping snapshot")
		w.snapshotted = mod
		w.pending = time.Time{}
		return
	}

	path, err := w.snapshot()
	if err != nil {
		slog.Error("snapshot failed", "error", err)
		return
	}
	w.snapshotted = mod
	w.pending = time.Time{}
	slog.Info("snapshot created", "path", path)

	if w.onSnapshot != nil {
		go w.onSnapshot(path)
	}
}

// Snapshot copies the database immediately, regardless of change state.
// Used right after setup so the first analysis doesn't wait for a save.
func (w *Watcher) Snapshot() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

// snapshot copies the database into the current game's directory. Callers
// hold w.mu.
func (w *Watcher) snapshot() (string, error) {
	if w.gameID == "" {
		return "", fmt.Errorf("no game selected")
	}

	dir := filepath.Join(w.root, w.gameID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	src, err := os.Open(w.dbPath)
	if err != nil {
		return "", fmt.Errorf("open database: %w", err)
	}
	defer src.Close()

	name := time.Now().UTC().Format("20060102-150405.000") + ".db"
	dstPath := filepath.Join(dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("copy snapshot: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close snapshot: %w", err)
	}

	return dstPath, nil
}
