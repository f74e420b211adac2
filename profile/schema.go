package profile

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/ZionLG/aurora4x-advisor/ideology"
)

// SchemaError reports every schema violation found in a content document.
// Distinct from JSON syntax errors so callers can tell bad content from a
// bad environment: bulk loading skips files with schema errors, while
// syntax and I/O errors propagate.
type SchemaError struct {
	Issues []string
}

func (e *SchemaError) Error() string {
	return "profile schema: " + strings.Join(e.Issues, ", ")
}

var profileKeys = []string{
	"id", "archetype", "name", "keywords", "description",
	"matcher", "greetings", "tutorialAdvice", "observations",
}

// Parse decodes and validates a profile document. Malformed JSON returns
// the decode error as-is; a well-formed document that violates the schema
// returns a *SchemaError listing every violation.
func Parse(data []byte) (*Profile, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	issues := validateDocument(doc)
	if len(issues) > 0 {
		return nil, &SchemaError{Issues: issues}
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

func validateDocument(doc map[string]json.RawMessage) []string {
	var issues []string

	// Unknown top-level keys are rejected outright to catch authoring typos.
	for key := range doc {
		if !slices.Contains(profileKeys, key) {
			issues = append(issues, fmt.Sprintf("%s: unrecognized key", key))
		}
	}

	issues = append(issues, requireString(doc, "id")...)
	issues = append(issues, requireString(doc, "archetype")...)
	issues = append(issues, requireString(doc, "name")...)
	issues = append(issues, requireString(doc, "description")...)

	if raw, ok := doc["keywords"]; !ok {
		issues = append(issues, "keywords: required")
	} else {
		var kw []string
		if err := json.Unmarshal(raw, &kw); err != nil {
			issues = append(issues, "keywords: expected array of strings")
		}
	}

	if raw, ok := doc["matcher"]; ok {
		issues = append(issues, validateMatcher(raw)...)
	}

	if raw, ok := doc["greetings"]; !ok {
		issues = append(issues, "greetings: required")
	} else {
		issues = append(issues, validateGreetings(raw)...)
	}

	if raw, ok := doc["tutorialAdvice"]; ok {
		issues = append(issues, validateTutorialAdvice(raw)...)
	}

	if raw, ok := doc["observations"]; !ok {
		issues = append(issues, "observations: required")
	} else {
		issues = append(issues, validateObservations(raw)...)
	}

	return issues
}

func requireString(doc map[string]json.RawMessage, key string) []string {
	raw, ok := doc[key]
	if !ok {
		return []string{key + ": required"}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return []string{key + ": expected string"}
	}
	if s == "" {
		return []string{key + ": must not be empty"}
	}
	return nil
}

func validateMatcher(raw json.RawMessage) []string {
	var rules map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rules); err != nil {
		return []string{"matcher: expected object"}
	}

	var issues []string
	for axis, ruleRaw := range rules {
		path := "matcher." + axis
		if !slices.Contains(ideology.Axes, axis) {
			issues = append(issues, path+": unrecognized ideology axis")
			continue
		}

		var keys map[string]json.RawMessage
		if err := json.Unmarshal(ruleRaw, &keys); err != nil {
			issues = append(issues, path+": expected object")
			continue
		}
		for key := range keys {
			if key != "min" && key != "max" && key != "weight" {
				issues = append(issues, fmt.Sprintf("%s.%s: unrecognized key", path, key))
			}
		}
		// Decoding into the real rule type keeps validation and decoding in
		// lockstep: bounds and weight live in the integer axis domain, and a
		// fractional value is an authoring mistake, not a looser rule.
		var rule MatcherRule
		if err := json.Unmarshal(ruleRaw, &rule); err != nil {
			issues = append(issues, path+": min, max, and weight must be integers")
			continue
		}
		if rule.Weight != nil && (*rule.Weight < WeightSecondary || *rule.Weight > WeightCritical) {
			issues = append(issues, path+".weight: must be 1 (secondary), 2 (important), or 3 (critical)")
		}
	}
	return issues
}

func validateGreetings(raw json.RawMessage) []string {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return []string{"greetings: expected object"}
	}

	var issues []string
	for key := range keys {
		if key != "initial" && key != "returning" {
			issues = append(issues, "greetings."+key+": unrecognized key")
		}
	}
	for _, key := range []string{"initial", "returning"} {
		for _, issue := range requireString(keys, key) {
			issues = append(issues, "greetings."+issue)
		}
	}
	return issues
}

func validateTutorialAdvice(raw json.RawMessage) []string {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{"tutorialAdvice: expected array"}
	}

	var issues []string
	for i, item := range items {
		path := fmt.Sprintf("tutorialAdvice[%d]", i)
		for key := range item {
			if key != "id" && key != "conditions" && key != "body" {
				issues = append(issues, fmt.Sprintf("%s.%s: unrecognized key", path, key))
			}
		}
		for _, key := range []string{"id", "body"} {
			for _, issue := range requireString(item, key) {
				issues = append(issues, path+"."+issue)
			}
		}
		if condRaw, ok := item["conditions"]; !ok {
			issues = append(issues, path+".conditions: required")
		} else {
			issues = append(issues, validateConditions(path+".conditions", condRaw)...)
		}
	}
	return issues
}

func validateObservations(raw json.RawMessage) []string {
	var obs map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obs); err != nil {
		return []string{"observations: expected object"}
	}

	var issues []string
	for id, variantsRaw := range obs {
		path := "observations." + id
		var variants []map[string]json.RawMessage
		if err := json.Unmarshal(variantsRaw, &variants); err != nil {
			issues = append(issues, path+": expected array of variants")
			continue
		}
		for i, variant := range variants {
			vpath := fmt.Sprintf("%s[%d]", path, i)
			for key := range variant {
				if key != "conditions" && key != "message" {
					issues = append(issues, fmt.Sprintf("%s.%s: unrecognized key", vpath, key))
				}
			}
			for _, issue := range requireString(variant, "message") {
				issues = append(issues, vpath+"."+issue)
			}
			if condRaw, ok := variant["conditions"]; !ok {
				issues = append(issues, vpath+".conditions: required")
			} else {
				issues = append(issues, validateConditions(vpath+".conditions", condRaw)...)
			}
		}
	}
	return issues
}

// validateConditions enforces the closed condition key set and per-field
// value shapes, so evaluation never has to cope with unknown keys or type
// mismatches.
func validateConditions(path string, raw json.RawMessage) []string {
	var conds map[string]json.RawMessage
	if err := json.Unmarshal(raw, &conds); err != nil {
		return []string{path + ": expected object"}
	}

	var issues []string
	for field, valueRaw := range conds {
		fpath := path + "." + field
		switch field {
		case "gameYear":
			issues = append(issues, validateNumericCondition(fpath, valueRaw)...)
		case "hasTNTech", "alienContact", "hasBuiltFirstShip", "hasSurveyedHomeSystem":
			var b bool
			if err := json.Unmarshal(valueRaw, &b); err != nil {
				issues = append(issues, fpath+": expected boolean")
			}
		case "warStatus":
			var s string
			if err := json.Unmarshal(valueRaw, &s); err != nil || (s != "peace" && s != "active") {
				issues = append(issues, fpath+`: expected "peace" or "active"`)
			}
		default:
			issues = append(issues, fpath+": unrecognized condition field")
		}
	}
	return issues
}

func validateNumericCondition(path string, raw json.RawMessage) []string {
	var c Condition
	if err := json.Unmarshal(raw, &c); err != nil {
		return []string{path + ": expected number or {min, max} range"}
	}
	if !c.Range() {
		if _, ok := c.Equals.(float64); !ok {
			return []string{path + ": expected number or {min, max} range"}
		}
	}
	return nil
}
