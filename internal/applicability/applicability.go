// Package applicability decides whether a check counts fully, counts at a
// reduced weight, or is excluded from scoring.
//
// Classification is driven by a declarative Rules table so the scoring engine
// never hard-codes deployment-specific check IDs.
package applicability

import (
	"reflect"
	"strings"

	"github.com/spboyer/pagescore/internal/models"
	"github.com/spboyer/pagescore/internal/weights"
)

// Class is the applicability of a single check.
type Class string

const (
	FullyApplicable Class = "fully_applicable"
	Optional        Class = "optional"
	NotApplicable   Class = "not_applicable"
)

// The not-applicable marker a check sets in its details.
const (
	MarkerKey   = "note"
	MarkerValue = "not_applicable"
)

// Predicate narrows when the not-applicable marker is honored. An empty ID
// applies to every check. A predicate matches when every When entry equals
// the corresponding details value; the marker is honored if any predicate
// for the check matches.
type Predicate struct {
	ID   string         `yaml:"id,omitempty" json:"id,omitempty"`
	When map[string]any `yaml:"when,omitempty" json:"when,omitempty"`
}

// Rules is the classification table.
type Rules struct {
	// Optional lists enhancement-type checks that count at reduced weight.
	Optional []string `yaml:"optional,omitempty" json:"optional"`
	// NotApplicable lists extra conditions for honoring the marker.
	NotApplicable []Predicate `yaml:"not_applicable,omitempty" json:"not_applicable"`
}

// DefaultRules returns the table used by the content platform: social and
// structured-data enhancements are optional, and the how-to schema check is
// only excluded for content that is not a guide.
func DefaultRules() Rules {
	return Rules{
		Optional: []string{
			"og_cards",
			"twitter_cards",
			"breadcrumb_schema",
			"article_schema",
		},
		NotApplicable: []Predicate{
			{ID: "howto_schema", When: map[string]any{"is_guide": false}},
		},
	}
}

// Classifier applies a Rules table. It is immutable after construction and
// safe for concurrent use.
type Classifier struct {
	optional map[string]bool
	global   []map[string]any
	byID     map[string][]map[string]any
}

// NewClassifier compiles rules into a Classifier.
func NewClassifier(rules Rules) *Classifier {
	c := &Classifier{
		optional: make(map[string]bool, len(rules.Optional)),
		byID:     make(map[string][]map[string]any),
	}
	for _, id := range rules.Optional {
		if id = strings.TrimSpace(id); id != "" {
			c.optional[id] = true
		}
	}
	for _, p := range rules.NotApplicable {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			c.global = append(c.global, p.When)
			continue
		}
		c.byID[id] = append(c.byID[id], p.When)
	}
	return c
}

// Classify returns the applicability of one check. Not-applicable takes
// precedence over optional.
func (c *Classifier) Classify(id string, status models.CheckStatus, details map[string]any) Class {
	if c.notApplicable(id, status, details) {
		return NotApplicable
	}
	if c.optional[id] {
		return Optional
	}
	return FullyApplicable
}

func (c *Classifier) notApplicable(id string, status models.CheckStatus, details map[string]any) bool {
	if status != models.StatusPass {
		return false
	}
	if note, ok := details[MarkerKey].(string); !ok || note != MarkerValue {
		return false
	}

	conds := append(append([]map[string]any(nil), c.global...), c.byID[id]...)
	if len(conds) == 0 {
		return true
	}
	for _, when := range conds {
		if matches(details, when) {
			return true
		}
	}
	return false
}

func matches(details, when map[string]any) bool {
	for k, want := range when {
		got, ok := details[k]
		if !ok || !equalValues(got, want) {
			return false
		}
	}
	return true
}

// equalValues compares detail values decoded from JSON or YAML, where the
// same number can arrive as int or float64.
func equalValues(a, b any) bool {
	fa, aNum := weights.ToFloat(a)
	fb, bNum := weights.ToFloat(b)
	if aNum && bNum {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}
