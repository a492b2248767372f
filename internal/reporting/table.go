package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/pagescore/internal/models"
)

const (
	minNameWidth = 12
	maxNameWidth = 40
)

// statusIcon returns the display marker for a check status.
func statusIcon(s models.CheckStatus) string {
	switch s {
	case models.StatusPass:
		return "✅"
	case models.StatusWarn:
		return "⚠️"
	default:
		return "❌"
	}
}

// lightIcon returns the display marker for a traffic-light status.
func lightIcon(l models.TrafficLight) string {
	switch l {
	case models.LightGreen:
		return "🟢"
	case models.LightYellow:
		return "🟡"
	default:
		return "🔴"
	}
}

// WriteText writes a human-readable score summary with an aligned breakdown
// table.
func WriteText(w io.Writer, p *models.ScorePayload) error {
	entries := sortedEntries(p)

	nameWidth := minNameWidth
	for _, e := range entries {
		if n := runewidth.StringWidth(e.ID); n > nameWidth {
			nameWidth = n
		}
	}
	if nameWidth > maxNameWidth {
		nameWidth = maxNameWidth
	}

	// Fixed column widths (display columns) for emoji-safe alignment.
	const colStatus = 8
	const colWeight = 8
	const colMult = 6
	const colContrib = 12
	const colNote = 14
	totalWidth := nameWidth + colStatus + colWeight + colMult + colContrib + colNote + 10 // 5 gaps × 2 spaces

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", strings.Repeat("═", totalWidth))
	fmt.Fprintf(&b, " CONTENT SCORE  %s %d/100 (%s)\n", lightIcon(p.Status), p.Score, p.Status)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("═", totalWidth))

	if len(entries) > 0 {
		fmt.Fprintf(&b, "%s  %s  %s  %s  %s  %s\n",
			padRight("Check", nameWidth),
			padRight("Status", colStatus),
			padRight("Weight", colWeight),
			padRight("Mult", colMult),
			padRight("Contribution", colContrib),
			"Note")
		fmt.Fprintf(&b, "%s\n", strings.Repeat("─", totalWidth))

		for _, e := range entries {
			fmt.Fprintf(&b, "%s  %s  %s  %s  %s  %s\n",
				padRight(truncateName(e.ID, nameWidth), nameWidth),
				padRight(statusIcon(e.Status)+" "+string(e.Status), colStatus),
				padRight(fmt.Sprintf("%.2f", e.Weight), colWeight),
				padRight(fmt.Sprintf("%.1f", e.Multiplier), colMult),
				padRight(fmt.Sprintf("%.2f", e.Contribution), colContrib),
				entryNote(e))
		}
		fmt.Fprintf(&b, "%s\n", strings.Repeat("─", totalWidth))
		fmt.Fprintf(&b, "%s  %s  %s\n",
			padRight("Total", nameWidth+colStatus+2),
			padRight(fmt.Sprintf("%.2f", p.WeightTotal), colWeight+colMult+2),
			fmt.Sprintf("%.2f", p.WeightedAchieved))
	}

	b.WriteString("\n")
	b.WriteString(FormatSummaryReport(p))

	_, err := io.WriteString(w, b.String())
	return err
}

// truncateName shortens a name to maxLen display columns, ending with "…" if needed.
func truncateName(name string, maxLen int) string {
	return runewidth.Truncate(name, maxLen, "…")
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
