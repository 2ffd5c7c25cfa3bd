// Package config holds the read-only rendering configuration consumed by the
// reporter and renderer.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls how assertion results are rendered. It is read-only once
// handed to a renderer.
type Config struct {
	// UseColors enables ANSI color output.
	UseColors bool `yaml:"use_colors"`

	// UseUnicodeSymbols selects "✓"/"✗" prefixes over "+"/"-".
	UseUnicodeSymbols bool `yaml:"use_unicode_symbols"`

	// ShowSuccessDetails renders passing chains; when off, successes are
	// counted but not printed.
	ShowSuccessDetails bool `yaml:"show_success_details"`

	// EnhancedOutput selects fully rendered multi-step failure messages
	// over the first-step form.
	EnhancedOutput bool `yaml:"enhanced_output"`
}

// Default returns the standard interactive configuration.
func Default() Config {
	return Config{
		UseColors:          true,
		UseUnicodeSymbols:  true,
		ShowSuccessDetails: true,
		EnhancedOutput:     false,
	}
}

// Load reads a YAML config file. Unknown fields are rejected so typos like
// "use_color:" fail loudly instead of being silently ignored.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes with strict field validation.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}
