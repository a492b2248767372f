// Package projectconfig provides the ProjectConfig struct and loader for
// .pagescore.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spboyer/pagescore/internal/applicability"
	"github.com/spboyer/pagescore/internal/weights"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".pagescore.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultServerPort = 3000

	// maxWalkDepth bounds how many parent directories Load searches.
	maxWalkDepth = 10
)

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .pagescore.yaml.
type ProjectConfig struct {
	Server ServerConfig `yaml:"server,omitempty"`
	// Weights maps check IDs to multipliers. Values are kept untyped so a
	// stray string in the file is ignored instead of failing the load.
	Weights map[string]any `yaml:"weights,omitempty"`
	// Applicability replaces the built-in rules table when set.
	Applicability *applicability.Rules `yaml:"applicability,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	rules := applicability.DefaultRules()
	return &ProjectConfig{
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
		Weights:       map[string]any{},
		Applicability: &rules,
	}
}

// Load finds .pagescore.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// LoadWeights reads a standalone JSON or YAML weights file: a flat mapping of
// check ID to multiplier.
func LoadWeights(path string) (weights.Loose, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading weights file: %w", err)
	}
	var w map[string]any
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parsing weights file %q: %w", path, err)
	}
	return weights.Loose(w), nil
}

// Rules returns the applicability table the engine should use.
func (c *ProjectConfig) Rules() applicability.Rules {
	if c == nil || c.Applicability == nil {
		return applicability.Rules{}
	}
	return *c.Applicability
}

// WeightProvider returns the configured multipliers, or nil when none are set.
func (c *ProjectConfig) WeightProvider() weights.Provider {
	if c == nil || len(c.Weights) == 0 {
		return nil
	}
	return weights.Loose(c.Weights)
}

// Marshal renders c as YAML suitable for writing to FileName.
func Marshal(c *ProjectConfig) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FileName, err)
	}
	return data, nil
}

// findConfigFile walks up from dir looking for .pagescore.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	// Absolute so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < maxWalkDepth; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if len(src.Server.AllowedOrigins) > 0 {
		origins := make([]string, 0, len(src.Server.AllowedOrigins))
		for _, o := range src.Server.AllowedOrigins {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		dst.Server.AllowedOrigins = origins
	}

	// Weights merge per key.
	if dst.Weights == nil && len(src.Weights) > 0 {
		dst.Weights = make(map[string]any, len(src.Weights))
	}
	for id, v := range src.Weights {
		dst.Weights[id] = v
	}

	// Applicability is replaced wholesale; an explicit empty table disables
	// the built-in rules.
	if src.Applicability != nil {
		dst.Applicability = src.Applicability
	}
}
