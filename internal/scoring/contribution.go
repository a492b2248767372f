package scoring

import (
	"github.com/spboyer/pagescore/internal/applicability"
	"github.com/spboyer/pagescore/internal/models"
)

// OptionalFactor is the share of its normal weight an optional check keeps.
const OptionalFactor = 0.3

// computeContribution derives a check's breakdown entry from its intrinsic
// weight, resolved config multiplier and applicability class.
func computeContribution(r models.CheckResult, configMultiplier float64, class applicability.Class) models.BreakdownEntry {
	entry := models.BreakdownEntry{
		ID:     r.ID,
		Status: r.Status,
	}

	base := r.Weight * configMultiplier

	switch class {
	case applicability.NotApplicable:
		entry.NotApplicable = true
		return entry
	case applicability.Optional:
		entry.Weight = base * OptionalFactor
		entry.Optional = true
	default:
		entry.Weight = base
	}

	entry.Multiplier = r.Status.Multiplier()
	entry.Contribution = entry.Weight * entry.Multiplier
	return entry
}
