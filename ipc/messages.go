package ipc

// Request types the shell sends. These constants must stay in sync with
// the TypeScript bridge in the shell's preload script.
const (
	TypeValidateIdeology = "validate_ideology"
	TypeMatchPersonality = "match_personality"
	TypeListArchetypes   = "list_archetypes"
	TypeLoadProfiles     = "load_profiles"
	TypeGetGreeting      = "get_greeting"
	TypeAnalyze          = "analyze"
	TypeNewGame          = "new_game"
	TypeSelectGame       = "select_game"
	TypeClearCache       = "clear_cache"
)

// Response and push types.
const (
	TypeIdeologyResult   = "ideology_result"
	TypePersonalityMatch = "personality_match"
	TypeArchetypes       = "archetypes"
	TypeProfiles         = "profiles"
	TypeGreeting         = "greeting"
	TypeAdvice           = "advice"
	TypeGame             = "game"
	TypeAck              = "ack"
	TypeError            = "error"
)

// MatchPersonalityRequest carries the candidate ideology as loosely-typed
// values so validation can report per-field problems.
type MatchPersonalityRequest struct {
	Archetype string         `json:"archetype"`
	Ideology  map[string]any `json:"ideology"`
}

type GetGreetingRequest struct {
	ProfileID string `json:"profileId"`
	Initial   bool   `json:"initial"`
}

type AnalyzeRequest struct {
	SnapshotPath string `json:"snapshotPath"`
	ProfileID    string `json:"profileId"`
}

type SelectGameRequest struct {
	GameID string `json:"gameId"`
}

type GameMessage struct {
	GameID string `json:"gameId"`
}

type GreetingMessage struct {
	Text string `json:"text"`
}

type AckMessage struct {
	Status string `json:"status"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}
