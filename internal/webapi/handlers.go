// Package webapi implements the HTTP handlers for the scoring API.
package webapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spboyer/pagescore/internal/applicability"
	"github.com/spboyer/pagescore/internal/checks"
	"github.com/spboyer/pagescore/internal/models"
	"github.com/spboyer/pagescore/internal/scoring"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// MaxBodyBytes caps the size of a score request body.
const MaxBodyBytes = 1 << 20

// DocumentScorer scores a parsed request document.
type DocumentScorer interface {
	ScoreDocument(doc *checks.Document) *models.ScorePayload
	Rules() applicability.Rules
}

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	scorer  DocumentScorer
	weights map[string]any
	logger  *slog.Logger
}

// NewHandlers creates Handlers backed by scorer. weights is only reported by
// the rules endpoint; the scorer is expected to apply it already.
func NewHandlers(scorer DocumentScorer, weights map[string]any, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	if weights == nil {
		weights = map[string]any{}
	}
	return &Handlers{scorer: scorer, weights: weights, logger: logger}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleRules returns the active applicability table and configured weights.
func (h *Handlers) HandleRules(w http.ResponseWriter, _ *http.Request) {
	rules := h.scorer.Rules()
	if rules.Optional == nil {
		rules.Optional = []string{}
	}
	if rules.NotApplicable == nil {
		rules.NotApplicable = []applicability.Predicate{}
	}
	writeJSON(w, http.StatusOK, RulesResponse{
		Applicability:  rules,
		Weights:        h.weights,
		OptionalFactor: scoring.OptionalFactor,
		Thresholds: Thresholds{
			Green:  scoring.GreenThreshold,
			Yellow: scoring.YellowThreshold,
		},
	})
}

// HandleScore scores the check set in the request body. Weights supplied in
// the body are layered over the configured ones.
func (h *Handlers) HandleScore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, r, http.StatusBadRequest, "reading request body: "+err.Error())
		return
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		writeError(w, r, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	doc, err := checks.DecodeDocument(trimmed)
	if err != nil {
		if errors.Is(err, checks.ErrNotMapping) {
			writeError(w, r, http.StatusBadRequest, "request body must be a JSON object")
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	payload := h.scorer.ScoreDocument(doc)
	h.logger.Debug("scored request",
		"request_id", RequestIDFromContext(r.Context()),
		"checks", len(payload.Breakdown),
		"score", payload.Score,
		"status", payload.Status)
	writeJSON(w, http.StatusOK, payload)
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/rules", h.HandleRules)
	mux.HandleFunc("POST /api/score", h.HandleScore)
	mux.HandleFunc("POST /score", h.HandleScore)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	writeJSON(w, code, ErrorResponse{
		Error:     msg,
		Code:      code,
		RequestID: RequestIDFromContext(r.Context()),
	})
}
