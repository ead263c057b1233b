// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"sic-scan/internal/detector"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.ConfidenceLevels != "all" {
		t.Errorf("expected default confidence_levels=all, got %q", cfg.Defaults.ConfidenceLevels)
	}
	if cfg.Defaults.Workers != 1 {
		t.Errorf("expected default workers=1, got %d", cfg.Defaults.Workers)
	}
	if len(cfg.Classification.StrongTypes) != len(detector.AllTypes()) {
		t.Errorf("expected every type strong by default, got %v", cfg.Classification.StrongTypes)
	}
}

func TestLoadConfig_ProfilesInitialized(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profiles == nil {
		t.Error("expected profiles map to be initialized")
	}
	if _, ok := cfg.Profiles["triagem"]; !ok {
		t.Error("expected 'triagem' profile to exist in defaults")
	}
}

func TestLoadConfig_StrongTypesOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
classification:
  strong_types: [CPF, RG, PHONE]
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	types, err := cfg.Classification.TypeSet()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []detector.PIIType{detector.TypeCPF, detector.TypeRG, detector.TypePhone}
	if len(types) != len(want) {
		t.Fatalf("expected %d strong types, got %d", len(want), len(types))
	}
	for i, typ := range want {
		if types[i] != typ {
			t.Errorf("strong type %d: got %q, want %q", i, types[i], typ)
		}
	}
}

func TestLoadConfig_UnknownStrongTypeRejected(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
classification:
  strong_types: [CPF, PASSPORT]
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Fatal("expected error for unknown strong type, got nil")
	}
}

func TestTypeSet_CaseAndSpaceLenient(t *testing.T) {
	c := Classification{StrongTypes: []string{" cpf ", "Email"}}
	types, err := c.TypeSet()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if types[0] != detector.TypeCPF || types[1] != detector.TypeEmail {
		t.Errorf("unexpected types: %v", types)
	}
}

func TestLoadConfigOrDefault_NoFile(t *testing.T) {
	cfg := LoadConfigOrDefault("")
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Defaults.Format == "" {
		t.Error("expected default format to be set")
	}
}

func TestLoadConfigOrDefault_NonexistentFile(t *testing.T) {
	cfg := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults)")
	}
}

func TestLoadConfigOrDefault_ValidFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  format: json
  confidence_levels: high
  checks: EMAIL,CPF
  workers: 4
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected format=json, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.ConfidenceLevels != "high" {
		t.Errorf("expected confidence_levels=high, got %q", cfg.Defaults.ConfidenceLevels)
	}
	if cfg.Defaults.Workers != 4 {
		t.Errorf("expected workers=4, got %d", cfg.Defaults.Workers)
	}
}

func TestLoadConfigOrDefault_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte(":::invalid yaml:::"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Should fall back to defaults, not panic
	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults on parse error)")
	}
}

func TestLoadConfig_ValidatorSettings(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
validators:
  address:
    extra_street_keywords: [estrada, rodovia]
  person_name:
    extra_forbidden_words: [gabinete]
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	addr, ok := cfg.Validators["address"]
	if !ok {
		t.Fatal("expected address validator settings")
	}
	keywords, ok := addr["extra_street_keywords"].([]interface{})
	if !ok || len(keywords) != 2 {
		t.Errorf("expected 2 extra street keywords, got %v", addr["extra_street_keywords"])
	}
}

func TestGetProfile(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p := cfg.GetProfile("triagem"); p == nil {
		t.Error("expected triagem profile")
	}
	if p := cfg.GetProfile("inexistente"); p != nil {
		t.Error("expected nil for unknown profile")
	}
}

func TestListProfiles(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, name := range cfg.ListProfiles() {
		if name == "triagem" {
			found = true
		}
	}
	if !found {
		t.Error("expected triagem in profile list")
	}
}
