package models

// CheckStatus is the verdict reported by a single content-quality check.
type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusWarn CheckStatus = "warn"
	StatusFail CheckStatus = "fail"
)

// ParseCheckStatus converts a raw status string into a CheckStatus.
// Anything other than "pass" or "warn" is treated as a failure.
func ParseCheckStatus(s string) CheckStatus {
	switch CheckStatus(s) {
	case StatusPass:
		return StatusPass
	case StatusWarn:
		return StatusWarn
	default:
		return StatusFail
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails:
// unknown values decode to StatusFail.
func (s *CheckStatus) UnmarshalText(text []byte) error {
	*s = ParseCheckStatus(string(text))
	return nil
}

// Multiplier returns the share of a check's weight earned by this status.
func (s CheckStatus) Multiplier() float64 {
	switch s {
	case StatusPass:
		return 1.0
	case StatusWarn:
		return 0.5
	default:
		return 0.0
	}
}

// NeedsAttention reports whether the status warrants a recommendation.
func (s CheckStatus) NeedsAttention() bool {
	return s != StatusPass
}

// CheckResult is the outcome of one content-quality rule, as supplied by the
// check registry.
type CheckResult struct {
	// ID is the stable check identifier, unique within one aggregation.
	ID string `json:"id" yaml:"id"`
	// Status is the verdict for this check.
	Status CheckStatus `json:"status" yaml:"status"`
	// Label is a display name. Falls back to ID when blank.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	// FixHint is remediation text shown when the check does not pass.
	FixHint string `json:"fix_hint,omitempty" yaml:"fix_hint,omitempty"`
	// Weight is the intrinsic importance of the check, in [0, 1].
	Weight float64 `json:"weight" yaml:"weight"`
	// Details carries check-specific flags, such as the not-applicable marker.
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}
