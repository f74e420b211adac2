// Package service owns the advisor side of one shell connection: it maps
// IPC requests onto the content repository, matcher, resolver, and
// analyzer, and pushes fresh advice when the watcher snapshots a save.
package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ZionLG/aurora4x-advisor/advisor"
	"github.com/ZionLG/aurora4x-advisor/analyzer"
	"github.com/ZionLG/aurora4x-advisor/archetype"
	"github.com/ZionLG/aurora4x-advisor/ideology"
	"github.com/ZionLG/aurora4x-advisor/ipc"
	"github.com/ZionLG/aurora4x-advisor/profile"
	"github.com/ZionLG/aurora4x-advisor/snapshot"
)

type Service struct {
	Conn     *ipc.Connection
	Repo     *profile.Repository
	Matcher  *advisor.Matcher
	Analyzer *analyzer.Analyzer
	Watcher  *snapshot.Watcher // nil when no database path is configured

	mu            sync.Mutex
	activeProfile string // profile id used for watcher-triggered analyses
}

func New(conn *ipc.Connection, repo *profile.Repository, an *analyzer.Analyzer, w *snapshot.Watcher) *Service {
	return &Service{
		Conn:     conn,
		Repo:     repo,
		Matcher:  advisor.NewMatcher(repo),
		Analyzer: an,
		Watcher:  w,
	}
}

// Register wires every request handler onto the connection.
func (s *Service) Register() {
	s.Conn.RegisterHandler(ipc.TypeValidateIdeology, s.HandleValidateIdeology)
	s.Conn.RegisterHandler(ipc.TypeMatchPersonality, s.HandleMatchPersonality)
	s.Conn.RegisterHandler(ipc.TypeListArchetypes, s.HandleListArchetypes)
	s.Conn.RegisterHandler(ipc.TypeLoadProfiles, s.HandleLoadProfiles)
	s.Conn.RegisterHandler(ipc.TypeGetGreeting, s.HandleGetGreeting)
	s.Conn.RegisterHandler(ipc.TypeAnalyze, s.HandleAnalyze)
	s.Conn.RegisterHandler(ipc.TypeNewGame, s.HandleNewGame)
	s.Conn.RegisterHandler(ipc.TypeSelectGame, s.HandleSelectGame)
	s.Conn.RegisterHandler(ipc.TypeClearCache, s.HandleClearCache)
}

func (s *Service) HandleValidateIdeology(env ipc.Envelope) (*ipc.Envelope, error) {
	var candidate map[string]any
	if err := json.Unmarshal(env.Data, &candidate); err != nil {
		return nil, fmt.Errorf("unmarshal ideology candidate: %w", err)
	}

	resp, err := ipc.NewEnvelope(ipc.TypeIdeologyResult, ideology.Validate(candidate))
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) HandleMatchPersonality(env ipc.Envelope) (*ipc.Envelope, error) {
	var req ipc.MatchPersonalityRequest
	if err := json.Unmarshal(env.Data, &req); err != nil {
		return nil, fmt.Errorf("unmarshal match request: %w", err)
	}

	ideo, result := ideology.FromValues(req.Ideology)
	if !result.Valid {
		// Validation problems are data for the form, not handler errors.
		resp, err := ipc.NewEnvelope(ipc.TypeIdeologyResult, result)
		if err != nil {
			return nil, err
		}
		return &resp, nil
	}

	match, err := s.Matcher.Match(archetype.ID(req.Archetype), ideo)
	if err != nil {
		return nil, err
	}

	resp, err := ipc.NewEnvelope(ipc.TypePersonalityMatch, match)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) HandleListArchetypes(env ipc.Envelope) (*ipc.Envelope, error) {
	resp, err := ipc.NewEnvelope(ipc.TypeArchetypes, archetype.All())
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) HandleLoadProfiles(env ipc.Envelope) (*ipc.Envelope, error) {
	profiles, err := s.Repo.LoadAll()
	if err != nil {
		return nil, err
	}

	resp, err := ipc.NewEnvelope(ipc.TypeProfiles, profiles)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) HandleGetGreeting(env ipc.Envelope) (*ipc.Envelope, error) {
	var req ipc.GetGreetingRequest
	if err := json.Unmarshal(env.Data, &req); err != nil {
		return nil, fmt.Errorf("unmarshal greeting request: %w", err)
	}

	p, err := s.Repo.Load(req.ProfileID)
	if err != nil {
		return nil, err
	}

	resp, err := ipc.NewEnvelope(ipc.TypeGreeting, ipc.GreetingMessage{
		Text: advisor.Greeting(p, req.Initial),
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) HandleAnalyze(env ipc.Envelope) (*ipc.Envelope, error) {
	var req ipc.AnalyzeRequest
	if err := json.Unmarshal(env.Data, &req); err != nil {
		return nil, fmt.Errorf("unmarshal analyze request: %w", err)
	}

	path := req.SnapshotPath
	if path == "" {
		// Right after setup there is no snapshot yet; take one now.
		if s.Watcher == nil {
			return nil, fmt.Errorf("no snapshot path and no database configured")
		}
		var err error
		path, err = s.Watcher.Snapshot()
		if err != nil {
			return nil, err
		}
	}

	pkg, err := s.Analyzer.Analyze(path, req.ProfileID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.activeProfile = req.ProfileID
	s.mu.Unlock()

	resp, err := ipc.NewEnvelope(ipc.TypeAdvice, pkg)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) HandleNewGame(env ipc.Envelope) (*ipc.Envelope, error) {
	if s.Watcher == nil {
		return nil, fmt.Errorf("no database configured")
	}

	gameID := snapshot.NewGameID()
	s.Watcher.SetGameID(gameID)
	slog.Info("tracking new game", "gameId", gameID)

	resp, err := ipc.NewEnvelope(ipc.TypeGame, ipc.GameMessage{GameID: gameID})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) HandleSelectGame(env ipc.Envelope) (*ipc.Envelope, error) {
	var req ipc.SelectGameRequest
	if err := json.Unmarshal(env.Data, &req); err != nil {
		return nil, fmt.Errorf("unmarshal select game request: %w", err)
	}
	if s.Watcher == nil {
		return nil, fmt.Errorf("no database configured")
	}

	s.Watcher.SetGameID(req.GameID)
	resp, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) HandleClearCache(env ipc.Envelope) (*ipc.Envelope, error) {
	s.Repo.ClearCache()
	resp, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// HandleSnapshot is the watcher callback: re-analyze the new snapshot with
// the profile from the last explicit analysis and push the advice. Skipped
// until the shell has analyzed once.
func (s *Service) HandleSnapshot(path string) {
	s.mu.Lock()
	profileID := s.activeProfile
	s.mu.Unlock()

	if profileID == "" {
		slog.Debug("snapshot before first analysis, skipping", "path", path)
		return
	}

	pkg, err := s.Analyzer.Analyze(path, profileID)
	if err != nil {
		slog.Error("snapshot analysis failed", "path", path, "error", err)
		return
	}

	if err := s.Conn.Send(ipc.TypeAdvice, pkg); err != nil {
		slog.Error("failed to push advice", "error", err)
	}
}
