package reporting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spboyer/pagescore/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders a payload as a GitHub-flavored markdown report.
func Markdown(p *models.ScorePayload) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Content score: %d/100 %s\n\n", p.Score, lightIcon(p.Status))
	fmt.Fprintf(&b, "**Status:** %s. %s\n\n", p.Status, InterpretCoverage(p))

	b.WriteString("## Recommendations\n\n")
	if len(p.Recommendations) == 0 {
		b.WriteString("Nothing to fix.\n\n")
	}
	for _, r := range p.Recommendations {
		fmt.Fprintf(&b, "- %s\n", escapeMarkdown(r))
	}
	if len(p.Recommendations) > 0 {
		b.WriteString("\n")
	}

	entries := sortedEntries(p)
	if len(entries) == 0 {
		return b.String()
	}

	b.WriteString("## Breakdown\n\n")
	b.WriteString("| Check | Status | Weight | Multiplier | Contribution | Note |\n")
	b.WriteString("|---|---|---:|---:|---:|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| `%s` | %s %s | %.2f | %.1f | %.2f | %s |\n",
			e.ID, statusIcon(e.Status), e.Status, e.Weight, e.Multiplier, e.Contribution, entryNote(e))
	}
	fmt.Fprintf(&b, "| **Total** | | %.2f | | %.2f | |\n", p.WeightTotal, p.WeightedAchieved)
	return b.String()
}

// HTML renders the markdown report to an HTML fragment.
func HTML(p *models.ScorePayload) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(p)), &buf); err != nil {
		return nil, fmt.Errorf("rendering HTML report: %w", err)
	}
	return buf.Bytes(), nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"|", `\|`,
	"<", "&lt;",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
