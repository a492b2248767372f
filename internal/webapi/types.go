package webapi

import "github.com/spboyer/pagescore/internal/applicability"

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RulesResponse describes the scoring configuration the server applies.
type RulesResponse struct {
	Applicability applicability.Rules `json:"applicability"`
	Weights       map[string]any      `json:"weights"`
	// OptionalFactor is the share of its weight an optional check keeps.
	OptionalFactor float64    `json:"optional_factor"`
	Thresholds     Thresholds `json:"thresholds"`
}

// Thresholds are the minimum scores for the green and yellow statuses.
type Thresholds struct {
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}
