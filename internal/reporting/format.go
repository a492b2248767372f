// Package reporting renders score payloads for people and CI systems.
package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spboyer/pagescore/internal/models"
)

// Format selects an output renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJUnit    Format = "junit"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatText, FormatJSON, FormatMarkdown, FormatHTML, FormatJUnit}

// ParseFormat resolves a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatMarkdown, FormatHTML, FormatJUnit:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		names := make([]string, len(Formats))
		for i, f := range Formats {
			names[i] = string(f)
		}
		return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(names, ", "))
	}
}

// Options carries renderer inputs that are not part of the payload.
type Options struct {
	// Name labels the scored document in JUnit output.
	Name string
	// Now stamps JUnit output; zero means time.Now.
	Now time.Time
}

// Render writes p to w in the requested format.
func Render(w io.Writer, p *models.ScorePayload, f Format, opts Options) error {
	switch f {
	case FormatText, "":
		return WriteText(w, p)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(p))
		return err
	case FormatHTML:
		html, err := HTML(p)
		if err != nil {
			return err
		}
		_, err = w.Write(html)
		return err
	case FormatJUnit:
		ts := opts.Now
		if ts.IsZero() {
			ts = time.Now()
		}
		name := opts.Name
		if name == "" {
			name = "pagescore"
		}
		return WriteJUnitXML(w, name, p, ts)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}
