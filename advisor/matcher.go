// Package advisor implements the two selection engines over authored
// content: the personality matcher that ranks profiles against an ideology
// vector, and the message resolver that picks condition-satisfying text
// variants for the current game state.
package advisor

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ZionLG/aurora4x-advisor/archetype"
	"github.com/ZionLG/aurora4x-advisor/ideology"
	"github.com/ZionLG/aurora4x-advisor/profile"
)

// ErrNoProfiles is returned when the content library has zero profiles for
// a requested archetype. A content-authoring bug, surfaced rather than
// silently defaulted.
var ErrNoProfiles = errors.New("no personality profiles for archetype")

// Scoring constants. Tunable, but the values are part of the observable
// contract.
const (
	// partialCreditFalloff is the ideology-point distance at which partial
	// credit for a missed rule reaches zero.
	partialCreditFalloff = 25
	// failedRuleThreshold is the distance beyond which a rule is reported
	// in FailedRules. Softer than the falloff so weak-but-nonzero rules
	// still get flagged.
	failedRuleThreshold = 10
	// neutralConfidence is assigned to profiles with no matcher rules:
	// archetype fits by default, no opinion on ideology fit.
	neutralConfidence = 50
)

// MatchResult is the score for a single profile.
type MatchResult struct {
	ProfileID   string   `json:"profileId"`
	ProfileName string   `json:"profileName"`
	Confidence  int      `json:"confidence"`
	FailedRules []string `json:"failedRules"`
}

// PersonalityMatch ranks every profile in one archetype. Primary is the top
// entry of AllMatches; any top-N or threshold slicing is a presentation
// concern left to callers.
type PersonalityMatch struct {
	Archetype  archetype.ID  `json:"archetype"`
	Primary    MatchResult   `json:"primary"`
	AllMatches []MatchResult `json:"allMatches"`
}

// Matcher scores personality profiles against ideology vectors.
type Matcher struct {
	repo *profile.Repository
}

func NewMatcher(repo *profile.Repository) *Matcher {
	return &Matcher{repo: repo}
}

// Match ranks all profiles tagged with the archetype by descending
// confidence. The sort is stable, so equal-confidence profiles keep their
// library order (sorted by id).
func (m *Matcher) Match(arch archetype.ID, ideo ideology.Profile) (PersonalityMatch, error) {
	if !archetype.Valid(arch) {
		return PersonalityMatch{}, fmt.Errorf("unknown archetype: %q", arch)
	}

	all, err := m.repo.LoadAll()
	if err != nil {
		return PersonalityMatch{}, err
	}

	var results []MatchResult
	for _, p := range all {
		if p.Archetype != arch {
			continue
		}
		results = append(results, scoreProfile(ideo, p))
	}

	if len(results) == 0 {
		return PersonalityMatch{}, fmt.Errorf("%w: %s", ErrNoProfiles, arch)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	return PersonalityMatch{
		Archetype:  arch,
		Primary:    results[0],
		AllMatches: results,
	}, nil
}

// scoreProfile applies weighted partial-credit scoring. A value inside a
// rule's [min, max] (bounds inclusive, either optional) earns the full
// weight; outside, credit falls off linearly and reaches zero at
// partialCreditFalloff points of distance.
func scoreProfile(ideo ideology.Profile, p *profile.Profile) MatchResult {
	result := MatchResult{
		ProfileID:   p.ID,
		ProfileName: p.Name,
		FailedRules: []string{},
	}

	if len(p.Matcher) == 0 {
		result.Confidence = neutralConfidence
		return result
	}

	var totalScore, maxPossibleScore float64

	// Axes are walked in canonical order so FailedRules is deterministic.
	for _, axis := range ideology.Axes {
		rule, ok := p.Matcher[axis]
		if !ok {
			continue
		}

		value, _ := ideo.Axis(axis)
		weight := float64(profile.WeightImportant)
		if rule.Weight != nil {
			weight = float64(*rule.Weight)
		}
		maxPossibleScore += weight

		distance := ruleDistance(value, rule.Min, rule.Max)
		if distance == 0 {
			totalScore += weight
			continue
		}

		totalScore += weight * math.Max(0, 1-float64(distance)/partialCreditFalloff)
		if distance > failedRuleThreshold {
			result.FailedRules = append(result.FailedRules, axis)
		}
	}

	result.Confidence = int(math.Round(100 * totalScore / maxPossibleScore))
	return result
}

// ruleDistance is the shortfall below min or excess above max; zero when
// the value satisfies the rule.
func ruleDistance(value int, min, max *int) int {
	if min != nil && value < *min {
		return *min - value
	}
	if max != nil && value > *max {
		return value - *max
	}
	return 0
}
