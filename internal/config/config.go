// Package config loads and validates the .vitestlint.yaml file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

// FileName is the default config file name, looked up in the
// working directory.
const FileName = ".vitestlint.yaml"

// Config holds the user-facing settings.
type Config struct {
	// Types restricts the reported functions. Empty means all.
	Types []string `yaml:"types,omitempty" json:"types,omitempty"`

	// SourceType forces module, script or commonjs. Empty derives
	// the source type from each file's extension.
	SourceType string `yaml:"sourceType,omitempty" json:"sourceType,omitempty"`

	// Include and Exclude are doublestar globs matched against
	// paths relative to the scan root.
	Include []string `yaml:"include,omitempty" json:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`

	// Concurrency bounds parallel file checks. Zero means one per CPU.
	Concurrency int `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Exclude: []string{"**/node_modules/**", "**/dist/**"},
	}
}

// Load reads the config at path. A missing file yields the defaults.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data. Keys not present in
// data keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against the options schema.
func (c *Config) Validate() error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// FnNames returns Types as framework function names.
func (c *Config) FnNames() ([]taxonomy.FnName, error) {
	names := make([]taxonomy.FnName, 0, len(c.Types))
	for _, t := range c.Types {
		n, err := taxonomy.ParseFnName(t)
		if err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, nil
}

// SourceTypeValue returns SourceType as a taxonomy value.
func (c *Config) SourceTypeValue() taxonomy.SourceType {
	return taxonomy.SourceType(c.SourceType)
}

// SplitList parses a comma-separated flag value such as
// "describe, test,expect".
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
