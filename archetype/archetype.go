// Package archetype holds the fixed registry of advisor communication
// styles. Personality profiles are tagged with exactly one archetype id;
// the archetype controls tone, not content selection.
package archetype

import "fmt"

type ID string

const (
	StaunchNationalist ID = "staunch-nationalist"
	TechnocratAdmin    ID = "technocrat-admin"
	CommunistCommissar ID = "communist-commissar"
	MonarchistAdvisor  ID = "monarchist-advisor"
	MilitaryStrategist ID = "military-strategist"
	CorporateExecutive ID = "corporate-executive"
	DiplomaticEnvoy    ID = "diplomatic-envoy"
	ReligiousZealot    ID = "religious-zealot"
)

// Archetype describes one communication style.
type Archetype struct {
	ID              ID       `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	ToneDescriptors []string `json:"toneDescriptors"`
	VocabularyTags  []string `json:"vocabularyTags"`
}

// order preserves the canonical listing order for All().
var order = []ID{
	StaunchNationalist,
	TechnocratAdmin,
	CommunistCommissar,
	MonarchistAdvisor,
	MilitaryStrategist,
	CorporateExecutive,
	DiplomaticEnvoy,
	ReligiousZealot,
}

var registry = map[ID]Archetype{
	StaunchNationalist: {
		ID:              StaunchNationalist,
		Name:            "Staunch Nationalist",
		Description:     "Formal, patriotic, strength-focused. Emphasizes national glory, sovereignty, and imperial power.",
		ToneDescriptors: []string{"formal", "patriotic", "commanding", "proud"},
		VocabularyTags:  []string{"Commander", "nation", "empire", "glory", "sovereignty", "honor"},
	},
	TechnocratAdmin: {
		ID:              TechnocratAdmin,
		Name:            "Technocrat Administrator",
		Description:     "Analytical, data-driven, efficiency-focused. Emphasizes optimization, statistics, and rational planning.",
		ToneDescriptors: []string{"analytical", "precise", "efficient", "logical"},
		VocabularyTags:  []string{"analysis indicates", "efficiency", "optimal", "data shows", "calculations", "metrics"},
	},
	CommunistCommissar: {
		ID:              CommunistCommissar,
		Name:            "Communist Commissar",
		Description:     "Ideological, collective-focused, revolutionary. Emphasizes the people, equality, and class struggle.",
		ToneDescriptors: []string{"ideological", "revolutionary", "collective", "fervent"},
		VocabularyTags:  []string{"Comrade", "the people", "collective", "workers", "struggle", "solidarity"},
	},
	MonarchistAdvisor: {
		ID:              MonarchistAdvisor,
		Name:            "Monarchist Advisor",
		Description:     "Refined, traditional, hierarchical. Emphasizes lineage, tradition, and royal prerogative.",
		ToneDescriptors: []string{"refined", "traditional", "deferential", "aristocratic"},
		VocabularyTags:  []string{"Your Majesty", "realm", "crown", "royal", "noble", "subjects"},
	},
	MilitaryStrategist: {
		ID:              MilitaryStrategist,
		Name:            "Military Strategist",
		Description:     "Tactical, direct, combat-focused. Emphasizes strategic positioning, threats, and military readiness.",
		ToneDescriptors: []string{"tactical", "direct", "disciplined", "strategic"},
		VocabularyTags:  []string{"Sir", "tactical", "enemy", "forces", "deployment", "strategic"},
	},
	CorporateExecutive: {
		ID:              CorporateExecutive,
		Name:            "Corporate Executive",
		Description:     "Business-oriented, profit-driven, market-focused. Emphasizes ROI, opportunities, and competitive advantage.",
		ToneDescriptors: []string{"professional", "pragmatic", "profit-focused", "competitive"},
		VocabularyTags:  []string{"opportunities", "market", "assets", "ROI", "competitive advantage", "stakeholders"},
	},
	DiplomaticEnvoy: {
		ID:              DiplomaticEnvoy,
		Name:            "Diplomatic Envoy",
		Description:     "Conciliatory, nuanced, relationship-focused. Emphasizes dialogue, mutual benefit, and cooperation.",
		ToneDescriptors: []string{"conciliatory", "diplomatic", "nuanced", "respectful"},
		VocabularyTags:  []string{"dialogue", "mutual benefit", "cooperation", "relationship", "understanding", "partners"},
	},
	ReligiousZealot: {
		ID:              ReligiousZealot,
		Name:            "Religious Zealot",
		Description:     "Spiritual, dogmatic, divine-focused. Emphasizes faith, divine will, and sacred duty.",
		ToneDescriptors: []string{"spiritual", "fervent", "dogmatic", "prophetic"},
		VocabularyTags:  []string{"divine will", "sacred", "blessed", "heresy", "faithful", "prophecy"},
	},
}

// Get looks up an archetype by id, failing closed on unknown ids.
func Get(id ID) (Archetype, error) {
	a, ok := registry[id]
	if !ok {
		return Archetype{}, fmt.Errorf("unknown archetype: %q", id)
	}
	return a, nil
}

// Valid reports whether id names a registered archetype.
func Valid(id ID) bool {
	_, ok := registry[id]
	return ok
}

// All returns every archetype in canonical order.
func All() []Archetype {
	out := make([]Archetype, 0, len(order))
	for _, id := range order {
		out = append(out, registry[id])
	}
	return out
}
