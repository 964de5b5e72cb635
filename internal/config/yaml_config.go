package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// RulesConfig is the structure of the optional rules.yaml file.
// Rule sets are YAML sequences so their order survives decoding.
type RulesConfig struct {
	Unsuitable []RuleConfig `yaml:"unsuitable"`
	Suitable   []RuleConfig `yaml:"suitable"`
	Expandable []RuleConfig `yaml:"expandable"`

	// Buckets maps a bucket name (identifier or Korean label) to the
	// detail labels that belong to it.
	Buckets map[string][]string `yaml:"buckets,omitempty"`
}

// RuleConfig defines one category of a rule set.
type RuleConfig struct {
	Category string   `yaml:"category"`
	Kind     string   `yaml:"kind,omitempty"`    // pattern (default), tokens, trailing_exclusion
	Pattern  string   `yaml:"pattern,omitempty"` // RE2 syntax, searched anywhere in the keyword
	Tokens   []string `yaml:"tokens,omitempty"`
	Except   []string `yaml:"except,omitempty"` // trailing_exclusion only
}

// LoadRulesFile loads a rule registry file.
// Returns nil without error if the file doesn't exist.
func LoadRulesFile(path string) (*RulesConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Rules file is optional
			return nil, nil
		}
		return nil, err
	}

	return ParseRules(data)
}

// ParseRules decodes rules YAML.
func ParseRules(data []byte) (*RulesConfig, error) {
	var cfg RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RuleCount returns the number of rules defined across all sets.
func (c *RulesConfig) RuleCount() int {
	if c == nil {
		return 0
	}
	return len(c.Unsuitable) + len(c.Suitable) + len(c.Expandable)
}
