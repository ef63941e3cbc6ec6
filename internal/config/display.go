package config

import (
	"fmt"
	"os"
	"regexp"

	sigsyaml "sigs.k8s.io/yaml"
)

// DisplayConfig holds the display settings of the config file.
type DisplayConfig struct {
	// Statuses overrides the status vocabulary. Order is significant: it is
	// the order of the status filter.
	Statuses []StatusColor `json:"statuses,omitempty"`

	// Palette overrides the ordinal palette of the category scales.
	Palette []string `json:"palette,omitempty"`

	// Colors holds explicit colors per scale and value, e.g.
	// colors.use_case.Retail: "#4e79a7".
	Colors map[string]map[string]string `json:"colors,omitempty"`
}

// StatusColor is one entry of the status vocabulary.
type StatusColor struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// LoadDisplayConfig reads the display settings from path. An empty path
// yields an empty config.
func LoadDisplayConfig(path string) (*DisplayConfig, error) {
	if path == "" {
		return &DisplayConfig{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("reading display config: %w", err)
	}

	return ParseDisplayConfig(data)
}

// ParseDisplayConfig parses the statuses, palette and colors sections from
// raw config file bytes. Other keys are ignored.
func ParseDisplayConfig(data []byte) (*DisplayConfig, error) {
	var cfg DisplayConfig

	if err := sigsyaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing display config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// colorPattern accepts #rgb and #rrggbb hex colors.
var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks the display config for correctness.
func (c *DisplayConfig) Validate() error {
	seen := make(map[string]bool, len(c.Statuses))

	for i, s := range c.Statuses {
		if s.Name == "" {
			return fmt.Errorf("statuses[%d]: name is required", i)
		}

		if seen[s.Name] {
			return fmt.Errorf("statuses[%d]: duplicate status %q", i, s.Name)
		}

		seen[s.Name] = true

		if s.Color != "" && !colorPattern.MatchString(s.Color) {
			return fmt.Errorf("statuses[%d]: invalid color %q", i, s.Color)
		}
	}

	for i, p := range c.Palette {
		if !colorPattern.MatchString(p) {
			return fmt.Errorf("palette[%d]: invalid color %q", i, p)
		}
	}

	for scale, colors := range c.Colors {
		for value, color := range colors {
			if !colorPattern.MatchString(color) {
				return fmt.Errorf("colors[%s][%s]: invalid color %q", scale, value, color)
			}
		}
	}

	return nil
}

// IsEmpty returns true if the config has no display settings.
func (c *DisplayConfig) IsEmpty() bool {
	return len(c.Statuses) == 0 && len(c.Palette) == 0 && len(c.Colors) == 0
}
