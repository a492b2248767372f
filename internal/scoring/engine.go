package scoring

import (
	"context"
	"log/slog"
	"math"

	"github.com/spboyer/pagescore/internal/applicability"
	"github.com/spboyer/pagescore/internal/checks"
	"github.com/spboyer/pagescore/internal/models"
	"github.com/spboyer/pagescore/internal/weights"
)

// Engine is the weighted score aggregator.
type Engine struct {
	weights    weights.Provider
	rules      applicability.Rules
	classifier *applicability.Classifier
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights sets the provider for per-check multipliers.
func WithWeights(p weights.Provider) Option {
	return func(e *Engine) {
		e.weights = p
	}
}

// WithRules sets the applicability table.
func WithRules(r applicability.Rules) Option {
	return func(e *Engine) {
		e.rules = r
	}
}

// WithLogger sets the logger used to report skipped entries at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an Engine. Without options every multiplier is 1.0 and
// only the generic not-applicable marker is honored.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	e.classifier = applicability.NewClassifier(e.rules)
	return e
}

// WithOverrides returns a copy of e whose multipliers come from p first and
// fall back to e's own provider.
func (e *Engine) WithOverrides(p weights.Provider) *Engine {
	if p == nil {
		return e
	}
	cp := *e
	cp.weights = weights.Chain{p, e.weights}
	return &cp
}

// Rules returns the applicability table the engine was built with.
func (e *Engine) Rules() applicability.Rules {
	return e.rules
}

// Score aggregates typed check results. Entries with a blank or duplicate ID
// are skipped; everything else is normalized before scoring.
func (e *Engine) Score(results []models.CheckResult) *models.ScorePayload {
	valid, skipped := checks.Normalize(results)
	e.logSkipped(skipped)
	return e.aggregate(valid)
}

// ScoreRaw aggregates an untyped check collection as accepted by checks.Decode.
func (e *Engine) ScoreRaw(raw any) *models.ScorePayload {
	valid, skipped := checks.Decode(raw)
	e.logSkipped(skipped)
	return e.aggregate(valid)
}

// ScoreDocument aggregates a parsed score document, layering its weights
// over the engine's.
func (e *Engine) ScoreDocument(doc *checks.Document) *models.ScorePayload {
	valid, skipped := doc.Results()
	e.logSkipped(skipped)

	eng := e
	if len(doc.Weights) > 0 {
		eng = e.WithOverrides(doc.Weights)
	}
	return eng.aggregate(valid)
}

// aggregate expects results already normalized by the checks package.
func (e *Engine) aggregate(results []models.CheckResult) *models.ScorePayload {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	multipliers := weights.Snapshot(e.weights, ids)

	payload := &models.ScorePayload{
		Recommendations: []string{},
		Breakdown:       make(map[string]models.BreakdownEntry, len(results)),
	}

	for _, r := range results {
		class := e.classifier.Classify(r.ID, r.Status, r.Details)
		entry := computeContribution(r, multipliers[r.ID], class)
		payload.Breakdown[r.ID] = entry

		if class == applicability.NotApplicable {
			continue
		}
		payload.WeightTotal += entry.Weight
		payload.WeightedAchieved += entry.Contribution

		if class == applicability.FullyApplicable && r.Status.NeedsAttention() {
			payload.Recommendations = append(payload.Recommendations, BuildRecommendation(r.ID, r.Label, r.FixHint))
		}
	}

	payload.Score = normalizeScore(payload.WeightedAchieved, payload.WeightTotal)
	payload.Status = Classify(payload.Score)
	return payload
}

// normalizeScore converts achieved/total into an integer percentage.
func normalizeScore(achieved, total float64) int {
	if total <= 0 {
		return 0
	}
	ratio := weights.Clamp(achieved/total, 0, 1)
	return int(math.Round(ratio * 100))
}

func (e *Engine) logSkipped(skipped []checks.Skipped) {
	if len(skipped) == 0 || !e.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, s := range skipped {
		e.logger.Debug("skipping check entry", "index", s.Index, "key", s.Key, "reason", s.Reason)
	}
}
