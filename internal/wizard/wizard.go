// Package wizard collects project settings interactively for pagescore init.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/pagescore/internal/applicability"
	"github.com/spboyer/pagescore/internal/projectconfig"
	"golang.org/x/term"
)

// InitSpec holds all fields collected during the init wizard.
type InitSpec struct {
	Port           int
	AllowedOrigins []string
	Optional       []string
	// GuideAware excludes the how-to schema check for non-guide content.
	GuideAware bool
}

// DefaultInitSpec mirrors projectconfig.New.
func DefaultInitSpec() *InitSpec {
	rules := applicability.DefaultRules()
	return &InitSpec{
		Port:       projectconfig.DefaultServerPort,
		Optional:   rules.Optional,
		GuideAware: true,
	}
}

const configTemplate = `# pagescore project configuration
server:
  port: {{ .Port }}
{{- if .AllowedOrigins }}
  allowed_origins:
{{- range .AllowedOrigins }}
    - {{ quote . }}
{{- end }}
{{- end }}

# Per-check weight multipliers (0-10). Unlisted checks use 1.0.
weights: {}

applicability:
{{- if .Optional }}
  optional:
{{- range .Optional }}
    - {{ quote . }}
{{- end }}
{{- else }}
  optional: []
{{- end }}
{{- if .GuideAware }}
  not_applicable:
    - id: howto_schema
      when:
        is_guide: false
{{- else }}
  not_applicable: []
{{- end }}
`

// isInteractive reports whether in is a terminal.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// RunInitWizard runs an interactive huh form seeded with defaults.
func RunInitWizard(in io.Reader, out io.Writer, defaults *InitSpec) (*InitSpec, error) {
	if defaults == nil {
		defaults = DefaultInitSpec()
	}
	var (
		portRaw     = strconv.Itoa(defaults.Port)
		originsRaw  = strings.Join(defaults.AllowedOrigins, ", ")
		optionalRaw = strings.Join(defaults.Optional, ", ")
		guideAware  = defaults.GuideAware
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server port").
				Description("Port for pagescore serve").
				Value(&portRaw).
				Validate(func(s string) error {
					_, err := parsePort(s)
					return err
				}),
			huh.NewInput().
				Title("Allowed origins").
				Description("Comma-separated origins allowed to call the API from a browser").
				Placeholder("https://cms.example.com").
				Value(&originsRaw),
			huh.NewInput().
				Title("Optional checks").
				Description("Comma-separated check IDs that count at reduced weight").
				Value(&optionalRaw),
			huh.NewConfirm().
				Title("Skip the how-to schema check for non-guide content?").
				Value(&guideAware),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if !isInteractive(in) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	port, err := parsePort(portRaw)
	if err != nil {
		return nil, err
	}
	return &InitSpec{
		Port:           port,
		AllowedOrigins: splitAndTrim(originsRaw),
		Optional:       splitAndTrim(optionalRaw),
		GuideAware:     guideAware,
	}, nil
}

// ConfirmOverwrite asks whether an existing file at path may be replaced.
func ConfirmOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite it?", path)).
				Value(&overwrite),
		),
	).
		WithInput(in).
		WithOutput(out)

	if !isInteractive(in) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return overwrite, nil
}

// GenerateConfigYAML renders a commented .pagescore.yaml from the given spec.
func GenerateConfigYAML(spec *InitSpec) (string, error) {
	tmpl, err := template.New("config").Funcs(template.FuncMap{
		"quote": strconv.Quote,
	}).Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("port must be a number between 1 and 65535")
	}
	return port, nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
