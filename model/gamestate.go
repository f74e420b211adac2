package model

// WarStatus is the coarse diplomatic posture extracted from the Aurora DB.
type WarStatus string

const (
	WarStatusPeace  WarStatus = "peace"
	WarStatusActive WarStatus = "active"
)

// GameState is the fixed-shape snapshot of simulation facts the advisor
// reasons over. Produced by the analyzer from a database snapshot; consumed
// read-only by condition evaluation and message resolution.
type GameState struct {
	GameYear              int       `json:"gameYear"`
	HasTNTech             bool      `json:"hasTNTech"`
	AlienContact          bool      `json:"alienContact"`
	WarStatus             WarStatus `json:"warStatus"`
	HasBuiltFirstShip     bool      `json:"hasBuiltFirstShip"`
	HasSurveyedHomeSystem bool      `json:"hasSurveyedHomeSystem"`
}

// ConditionFields is the closed set of game-state field names that content
// conditions may reference. Schema validation rejects anything else, so
// evaluation never sees an unknown key.
var ConditionFields = []string{
	"gameYear",
	"hasTNTech",
	"alienContact",
	"warStatus",
	"hasBuiltFirstShip",
	"hasSurveyedHomeSystem",
}

// Field returns the value of the named game-state field. The second return
// is false for unrecognized names; callers fail closed on it.
func (gs GameState) Field(name string) (any, bool) {
	switch name {
	case "gameYear":
		return gs.GameYear, true
	case "hasTNTech":
		return gs.HasTNTech, true
	case "alienContact":
		return gs.AlienContact, true
	case "warStatus":
		return string(gs.WarStatus), true
	case "hasBuiltFirstShip":
		return gs.HasBuiltFirstShip, true
	case "hasSurveyedHomeSystem":
		return gs.HasSurveyedHomeSystem, true
	}
	return nil, false
}

// Observation is a single detected game issue plus the data needed to fill
// message placeholders. Message is populated by the resolver.
type Observation struct {
	ID      string         `json:"id"`
	Data    map[string]any `json:"data"`
	Message string         `json:"message,omitempty"`
}
