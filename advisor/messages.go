package advisor

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ZionLG/aurora4x-advisor/model"
	"github.com/ZionLG/aurora4x-advisor/profile"
)

// Resolver selects pre-authored message text for game events, falling back
// from the active profile to the generic profile.
type Resolver struct {
	repo *profile.Repository
}

func NewResolver(repo *profile.Repository) *Resolver {
	return &Resolver{repo: repo}
}

// ObservationMessage returns the text for a detected observation: the first
// variant in the profile whose conditions match the game state, else the
// first matching variant in the generic profile, else a synthetic
// placeholder. Never fails; advisory text failing to resolve must not
// block the rest of the application. Placeholders of the form {{field}} are
// substituted from data; unmatched placeholders stay verbatim.
func (r *Resolver) ObservationMessage(obsID string, data map[string]any, gs model.GameState, p *profile.Profile) string {
	if msg, ok := firstMatchingVariant(p, obsID, gs); ok {
		return substitute(msg, data)
	}

	generic, err := r.repo.Generic()
	if err != nil {
		slog.Error("generic profile unavailable for fallback", "observation", obsID, "error", err)
		return placeholderMessage(obsID)
	}

	if msg, ok := firstMatchingVariant(generic, obsID, gs); ok {
		slog.Warn("profile missing observation, using generic fallback",
			"profile", p.ID, "observation", obsID)
		return substitute(msg, data)
	}

	slog.Error("no message found in profile or generic", "profile", p.ID, "observation", obsID)
	return placeholderMessage(obsID)
}

// TutorialAdvice resolves the applicable tutorial items for the game state.
// The generic profile's tutorialAdvice list is the authoritative id
// registry and fixes the output order; a profile entry with the same id
// overrides the generic one. Entries whose conditions fail are dropped.
func (r *Resolver) TutorialAdvice(gs model.GameState, p *profile.Profile) ([]profile.TutorialAdvice, error) {
	generic, err := r.repo.Generic()
	if err != nil {
		return nil, err
	}

	var advice []profile.TutorialAdvice
	for _, genericItem := range generic.TutorialAdvice {
		item := genericItem
		for _, override := range p.TutorialAdvice {
			if override.ID == genericItem.ID {
				item = override
				break
			}
		}
		if item.Conditions.Match(gs) {
			advice = append(advice, item)
		}
	}
	return advice, nil
}

// Greeting selects between the profile's two static openers.
func Greeting(p *profile.Profile, initial bool) string {
	if initial {
		return p.Greetings.Initial
	}
	return p.Greetings.Returning
}

func firstMatchingVariant(p *profile.Profile, obsID string, gs model.GameState) (string, bool) {
	for _, variant := range p.Observations[obsID] {
		if variant.Conditions.Match(gs) {
			return variant.Message, true
		}
	}
	return "", false
}

func placeholderMessage(obsID string) string {
	return fmt.Sprintf("Observation: %s", obsID)
}

func substitute(message string, data map[string]any) string {
	for key, value := range data {
		message = strings.ReplaceAll(message, "{{"+key+"}}", stringify(value))
	}
	return message
}

// stringify renders placeholder values the way authors expect: whole
// numbers without a trailing ".0" even though JSON decodes them as float64.
func stringify(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	default:
		return fmt.Sprint(n)
	}
}
