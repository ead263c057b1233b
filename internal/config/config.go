// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads sic-scan configuration from YAML files and resolves
// the precedence chain: built-in defaults, then the config file, then a
// selected profile, then explicit command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sic-scan/internal/detector"
	"sic-scan/internal/paths"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format           string `yaml:"format"`
		ConfidenceLevels string `yaml:"confidence_levels"`
		Checks           string `yaml:"checks"`
		Column           string `yaml:"column"`
		Workers          int    `yaml:"workers"`
		Verbose          bool   `yaml:"verbose"`
		Debug            bool   `yaml:"debug"`
		Quiet            bool   `yaml:"quiet"`
		NoColor          bool   `yaml:"no_color"`
		Recursive        bool   `yaml:"recursive"`
		ShowMatch        bool   `yaml:"show_match"`
	} `yaml:"defaults"`

	// Classification controls which detected types make a record non-public
	Classification Classification `yaml:"classification"`

	// Global validator configurations
	Validators map[string]map[string]interface{} `yaml:"validators"`

	// Profiles for different screening scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Classification holds the publication-decision settings.
type Classification struct {
	StrongTypes []string `yaml:"strong_types"`
}

// TypeSet parses StrongTypes into the detector type set. Unknown names are
// a configuration error, not a silent no-op: a typo here would silently
// publish personal data.
func (c Classification) TypeSet() ([]detector.PIIType, error) {
	types := make([]detector.PIIType, 0, len(c.StrongTypes))
	for _, name := range c.StrongTypes {
		t, ok := detector.ParseType(strings.ToUpper(strings.TrimSpace(name)))
		if !ok {
			return nil, fmt.Errorf("classification: unknown strong type %q", name)
		}
		types = append(types, t)
	}
	return types, nil
}

// Profile represents a screening profile with specific settings
type Profile struct {
	Format           string                            `yaml:"format"`
	ConfidenceLevels string                            `yaml:"confidence_levels"`
	Checks           string                            `yaml:"checks"`
	Column           string                            `yaml:"column"`
	Workers          int                               `yaml:"workers"`
	Verbose          bool                              `yaml:"verbose"`
	Debug            bool                              `yaml:"debug"`
	Quiet            bool                              `yaml:"quiet"`
	NoColor          bool                              `yaml:"no_color"`
	Recursive        bool                              `yaml:"recursive"`
	ShowMatch        bool                              `yaml:"show_match"`
	Description      string                            `yaml:"description"`
	Validators       map[string]map[string]interface{} `yaml:"validators"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles:   make(map[string]Profile),
		Validators: make(map[string]map[string]interface{}),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.ConfidenceLevels = "all"
	config.Defaults.Checks = "all"
	config.Defaults.Workers = 1

	// Every detected type blocks publication unless the operator narrows
	// the set.
	for _, t := range detector.AllTypes() {
		config.Classification.StrongTypes = append(config.Classification.StrongTypes, string(t))
	}

	// Add default triage profile: everything checked, noise tiers hidden
	config.Profiles["triagem"] = Profile{
		Format:           "text",
		ConfidenceLevels: "high,medium",
		Checks:           "all",
		NoColor:          true,
		Description:      "Screening of request batches before publication, with concise output",
		Validators:       make(map[string]map[string]interface{}),
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if config.Defaults.Workers < 1 {
		config.Defaults.Workers = 1
	}

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize sic-scan.yaml
	if fileExists("sic-scan.yaml") {
		return "sic-scan.yaml"
	}
	if fileExists("sic-scan.yml") {
		return "sic-scan.yml"
	}

	// Check for .sic-scan.yaml in current directory (project-specific config)
	if fileExists(".sic-scan.yaml") {
		return ".sic-scan.yaml"
	}
	if fileExists(".sic-scan.yml") {
		return ".sic-scan.yml"
	}

	// Check the standard location ($SIC_SCAN_CONFIG_DIR, else ~/.sic-scan)
	standardConfig := paths.GetConfigFile()
	if fileExists(standardConfig) {
		return standardConfig
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// ListProfiles returns a list of available profile names
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// ValidateConfig rejects configurations that would change what gets
// published without the operator noticing.
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if _, err := config.Classification.TypeSet(); err != nil {
		return err
	}

	for name, profile := range config.Profiles {
		if profile.Workers < 0 {
			return fmt.Errorf("profile %q: workers cannot be negative", name)
		}
	}

	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard
// locations when configFile is empty). If loading fails, it returns a default
// configuration. This is the shared helper used by both the CLI and the web
// server.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = LoadConfig("")
	}
	return cfg
}
