package scoring

import "strings"

// DefaultFixHint is used when a check supplies no remediation text.
const DefaultFixHint = "Review this check and address the reported issue."

// BuildRecommendation renders "<label>: <fix hint>", falling back to the
// check ID and DefaultFixHint for blank values.
func BuildRecommendation(id, label, fixHint string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		label = strings.TrimSpace(id)
	}
	fixHint = strings.TrimSpace(fixHint)
	if fixHint == "" {
		fixHint = DefaultFixHint
	}
	return strings.TrimSpace(label + ": " + fixHint)
}
