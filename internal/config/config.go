package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnnamedPattern is the label given to search patterns whose label is blank.
const UnnamedPattern = "Unnamed pattern"

var (
	// ErrSettingsNotFound is returned when no settings file exists at the resolved location.
	ErrSettingsNotFound = errors.New("settings file does not exist")

	// ErrNoFilenamePattern is returned when filename_pattern is empty.
	ErrNoFilenamePattern = errors.New("no filename pattern specified")

	// ErrNoSearchPatterns is returned when search_patterns has no entries.
	ErrNoSearchPatterns = errors.New("no regex patterns specified")
)

// SearchPattern is one entry of the search_patterns mapping
type SearchPattern struct {
	// Expr is the regular expression source text
	Expr string

	// Label is the display name; blank labels are reported as UnnamedPattern
	Label string
}

// SearchPatterns keeps the search_patterns mapping in declaration order.
type SearchPatterns []SearchPattern

// UnmarshalYAML decodes a YAML mapping of regex -> label without losing key order.
func (sp *SearchPatterns) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*sp = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: search_patterns must be a mapping of regex to label", value.Line)
	}

	seen := make(map[string]bool, len(value.Content)/2)
	patterns := make(SearchPatterns, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]

		var expr, label string
		if err := keyNode.Decode(&expr); err != nil {
			return fmt.Errorf("line %d: invalid search pattern: %w", keyNode.Line, err)
		}
		if valNode.Tag != "!!null" {
			if err := valNode.Decode(&label); err != nil {
				return fmt.Errorf("line %d: invalid label for pattern %q: %w", valNode.Line, expr, err)
			}
		}
		if seen[expr] {
			return fmt.Errorf("line %d: duplicate search pattern %q", keyNode.Line, expr)
		}
		seen[expr] = true

		patterns = append(patterns, SearchPattern{Expr: expr, Label: label})
	}

	*sp = patterns
	return nil
}

// DisplayLabel returns the label used in reports.
func (p SearchPattern) DisplayLabel() string {
	if strings.TrimSpace(p.Label) == "" {
		return UnnamedPattern
	}
	return p.Label
}

// Config represents file-analyzer settings
type Config struct {
	// Path is the fallback scan path used when no path argument is given
	Path string `yaml:"path"`

	// FilenamePattern is matched (search semantics) against file base names
	FilenamePattern string `yaml:"filename_pattern"`

	// SearchPatterns maps regular expressions to report labels
	SearchPatterns SearchPatterns `yaml:"search_patterns"`

	// Encoding is the IANA name of the text encoding used to decode scanned files
	Encoding string `yaml:"encoding"`

	// Exclude lists doublestar globs, relative to the scan root, that are skipped
	Exclude []string `yaml:"exclude"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Workers is the number of files scanned concurrently
	Workers int `yaml:"workers"`

	// Source is the settings file this configuration was loaded from
	Source string `yaml:"-"`
}

// DefaultConfig returns a Config with default values for the optional settings
func DefaultConfig() *Config {
	return &Config{
		Encoding: "utf-8",
		LogLevel: "info",
		Workers:  1,
	}
}

// LoadConfig loads settings from the specified file path.
// A missing file is an error: the filename and search patterns have no defaults.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSettingsNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	cfg.Source = path

	return cfg, nil
}

// ParseConfig decodes YAML settings on top of DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	var yamlCfg Config
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, err
	}

	cfg.Path = strings.TrimSpace(yamlCfg.Path)
	cfg.FilenamePattern = strings.TrimSpace(yamlCfg.FilenamePattern)
	cfg.SearchPatterns = yamlCfg.SearchPatterns
	cfg.Exclude = yamlCfg.Exclude

	if yamlCfg.Encoding != "" {
		cfg.Encoding = strings.TrimSpace(yamlCfg.Encoding)
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(yamlCfg.LogLevel))
	}
	if yamlCfg.Workers != 0 {
		cfg.Workers = yamlCfg.Workers
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override values from the settings file.
func (c *Config) MergeWithFlags(logLevel *string, workers *int) {
	if logLevel != nil {
		c.LogLevel = strings.ToLower(strings.TrimSpace(*logLevel))
	}
	if workers != nil {
		c.Workers = *workers
	}
}

// Validate validates the configuration values.
// The filename pattern and search pattern checks come first so that their
// errors win over cosmetic problems elsewhere in the file.
func (c *Config) Validate() error {
	if c.FilenamePattern == "" {
		return ErrNoFilenamePattern
	}
	if len(c.SearchPatterns) == 0 {
		return ErrNoSearchPatterns
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}

	return nil
}
