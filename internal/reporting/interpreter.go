package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spboyer/pagescore/internal/models"
)

// InterpretStatus returns a plain-language label for a traffic-light status.
func InterpretStatus(status models.TrafficLight) string {
	switch status {
	case models.LightGreen:
		return "Good (80-100): ready to publish"
	case models.LightYellow:
		return "Needs Work (60-79): address the recommendations"
	default:
		return "Poor (<60): significant issues found"
	}
}

// InterpretCoverage explains how much of the check set counted toward the score.
func InterpretCoverage(p *models.ScorePayload) string {
	var counted, optional, excluded int
	for _, e := range p.Breakdown {
		switch {
		case e.NotApplicable:
			excluded++
		case e.Optional:
			optional++
			counted++
		default:
			counted++
		}
	}
	if counted == 0 {
		return "No applicable checks were scored."
	}
	msg := fmt.Sprintf("%d of %d checks counted", counted, len(p.Breakdown))
	if optional > 0 {
		msg += fmt.Sprintf(", %d at reduced weight", optional)
	}
	if excluded > 0 {
		msg += fmt.Sprintf(", %d not applicable", excluded)
	}
	return msg + "."
}

// FormatSummaryReport produces a short plain-language report for a payload.
func FormatSummaryReport(p *models.ScorePayload) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")
	fmt.Fprintf(&b, "Score:     %d (%s)\n", p.Score, InterpretStatus(p.Status))
	fmt.Fprintf(&b, "Coverage:  %s\n", InterpretCoverage(p))
	fmt.Fprintf(&b, "Weighted:  %.2f of %.2f achieved\n", p.WeightedAchieved, p.WeightTotal)

	if len(p.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for i, r := range p.Recommendations {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, r)
		}
	}
	return b.String()
}

// sortedEntries returns breakdown entries ordered by check ID.
func sortedEntries(p *models.ScorePayload) []models.BreakdownEntry {
	ids := make([]string, 0, len(p.Breakdown))
	for id := range p.Breakdown {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]models.BreakdownEntry, len(ids))
	for i, id := range ids {
		entries[i] = p.Breakdown[id]
	}
	return entries
}

// entryNote describes how a breakdown entry was classified.
func entryNote(e models.BreakdownEntry) string {
	switch {
	case e.NotApplicable:
		return "not applicable"
	case e.Optional:
		return "optional"
	default:
		return ""
	}
}
