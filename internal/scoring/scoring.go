// Package scoring reduces a set of check results to a single 0-100 quality
// score, a traffic-light status and a list of recommendations.
//
// Scoring is a pure function of its input and the engine's read-only
// configuration; an Engine may be shared across goroutines.
package scoring

import (
	"github.com/spboyer/pagescore/internal/models"
)

// Scorer aggregates check results into a payload.
type Scorer interface {
	Score([]models.CheckResult) *models.ScorePayload
}

var _ Scorer = (*Engine)(nil)
