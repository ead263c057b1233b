// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package suppressions maintains the rules file that keeps known
// non-personal values out of scan results. Rules are value-scoped: an
// agency's published ombudsman phone number or protocol mailbox recurs
// across thousands of requests, so one rule covers every occurrence.
package suppressions

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sic-scan/internal/detector"
	"sic-scan/internal/paths"

	"gopkg.in/yaml.v3"
)

// SuppressionRule represents a single suppression rule
type SuppressionRule struct {
	ID         string            `yaml:"id"`
	Hash       string            `yaml:"hash"`
	Reason     string            `yaml:"reason"`
	Enabled    bool              `yaml:"enabled"`
	CreatedBy  string            `yaml:"created_by,omitempty"`
	CreatedAt  time.Time         `yaml:"created_at"`
	LastSeenAt *time.Time        `yaml:"last_seen_at,omitempty"`
	ExpiresAt  *time.Time        `yaml:"expires_at,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// SuppressionConfig represents the suppression configuration file
type SuppressionConfig struct {
	Version string            `yaml:"version"`
	Rules   []SuppressionRule `yaml:"rules"`
}

// SuppressionManager handles finding suppressions
type SuppressionManager struct {
	configPath string
	config     *SuppressionConfig
	enabled    bool
}

// NewSuppressionManager creates a new suppression manager
func NewSuppressionManager(configPath string) *SuppressionManager {
	if configPath == "" {
		configPath = findDefaultSuppressionFile()
	}

	manager := &SuppressionManager{
		configPath: configPath,
		enabled:    true,
	}

	manager.loadConfig()
	return manager
}

// findDefaultSuppressionFile prefers a project-local rules file over the
// per-user one.
func findDefaultSuppressionFile() string {
	if info, err := os.Stat(".sic-scan-suppressions.yaml"); err == nil && !info.IsDir() {
		return ".sic-scan-suppressions.yaml"
	}
	return paths.GetSuppressionsFile()
}

// loadConfig loads the suppression configuration. A missing or unreadable
// file is an empty rule set, not an error: scanning must not fail because
// nobody has suppressed anything yet.
func (sm *SuppressionManager) loadConfig() {
	empty := &SuppressionConfig{Version: "1.0", Rules: []SuppressionRule{}}

	if sm.configPath == "" {
		sm.config = empty
		return
	}

	data, err := os.ReadFile(filepath.Clean(sm.configPath))
	if err != nil {
		sm.config = empty
		return
	}

	var config SuppressionConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		sm.config = empty
		return
	}

	sm.config = &config
}

// ValueHash hashes a check name and canonical value pair. This is the
// rule key: matching is by what was found, never by where.
func ValueHash(checkName, value string) string {
	sum := sha256.Sum256([]byte(checkName + "|" + value))
	return fmt.Sprintf("%x", sum)
}

// FindingHash returns the rule hash for a finding.
func FindingHash(match detector.Match) string {
	return ValueHash(match.Validator, match.Value)
}

// IsSuppressed checks if a finding should be suppressed
func (sm *SuppressionManager) IsSuppressed(match detector.Match) (bool, *SuppressionRule) {
	if !sm.enabled || sm.config == nil {
		return false, nil
	}

	findingHash := FindingHash(match)

	for _, rule := range sm.config.Rules {
		if rule.Hash == findingHash {
			if !rule.Enabled {
				continue
			}
			if rule.ExpiresAt != nil && time.Now().After(*rule.ExpiresAt) {
				continue
			}
			return true, &rule
		}
	}

	return false, nil
}

// GetExpiredRule returns the enabled-but-expired rule covering a finding,
// if any. Reports flag these so operators notice lapsed suppressions
// instead of silently seeing old findings again.
func (sm *SuppressionManager) GetExpiredRule(match detector.Match) *SuppressionRule {
	if !sm.enabled || sm.config == nil {
		return nil
	}

	findingHash := FindingHash(match)

	for _, rule := range sm.config.Rules {
		if rule.Hash == findingHash && rule.Enabled {
			if rule.ExpiresAt != nil && time.Now().After(*rule.ExpiresAt) {
				return &rule
			}
		}
	}

	return nil
}

// AddSuppression adds a new suppression rule covering one finding's value.
// A nil expiresAt means the rule does not expire; institutional contacts
// rarely change.
func (sm *SuppressionManager) AddSuppression(match detector.Match, reason, createdBy string, expiresAt *time.Time) error {
	if sm.config == nil {
		sm.config = &SuppressionConfig{Version: "1.0", Rules: []SuppressionRule{}}
	}

	findingHash := FindingHash(match)

	for _, rule := range sm.config.Rules {
		if rule.Hash == findingHash {
			return fmt.Errorf("suppression rule already exists for this value")
		}
	}

	rule := SuppressionRule{
		ID:        fmt.Sprintf("SUP-%08d", sm.maxRuleNumber()+1),
		Hash:      findingHash,
		Reason:    reason,
		Enabled:   true,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		Metadata:  ruleMetadata(match),
	}

	sm.config.Rules = append(sm.config.Rules, rule)
	return sm.saveConfig()
}

// GenerateSuppressionRules creates rules for a batch of findings. New
// rules carry the given enabled state and a one-week expiry as a review
// window; findings already covered only get their last_seen_at refreshed.
func (sm *SuppressionManager) GenerateSuppressionRules(matches []detector.Match, reason string, enabled bool) error {
	if sm.config == nil {
		sm.config = &SuppressionConfig{Version: "1.0", Rules: []SuppressionRule{}}
	}

	// Index map rather than rule pointers: appends below may reallocate
	existing := make(map[string]int)
	for i := range sm.config.Rules {
		existing[sm.config.Rules[i].Hash] = i
	}

	now := time.Now()
	reviewExpiry := now.AddDate(0, 0, 7)
	maxID := sm.maxRuleNumber()
	added := 0
	updated := 0

	for _, match := range matches {
		findingHash := FindingHash(match)

		if i, ok := existing[findingHash]; ok {
			sm.config.Rules[i].LastSeenAt = &now
			updated++
			continue
		}

		added++
		rule := SuppressionRule{
			ID:         fmt.Sprintf("SUP-%08d", maxID+added),
			Hash:       findingHash,
			Reason:     reason,
			Enabled:    enabled,
			CreatedAt:  now,
			LastSeenAt: &now,
			ExpiresAt:  &reviewExpiry,
			Metadata:   ruleMetadata(match),
		}
		sm.config.Rules = append(sm.config.Rules, rule)
		existing[findingHash] = len(sm.config.Rules) - 1
	}

	if added > 0 || updated > 0 {
		return sm.saveConfig()
	}
	return nil
}

// ruleMetadata records where a value was first seen. Never the value
// itself: the rules file is meant to be shareable.
func ruleMetadata(match detector.Match) map[string]string {
	return map[string]string{
		"finding_type":      match.Validator,
		"first_seen_record": match.RecordID,
		"confidence":        fmt.Sprintf("%.0f", match.Confidence),
	}
}

// RemoveSuppression removes a suppression rule by ID
func (sm *SuppressionManager) RemoveSuppression(id string) error {
	if sm.config == nil {
		return fmt.Errorf("no suppression config loaded")
	}

	for i, rule := range sm.config.Rules {
		if rule.ID == id {
			sm.config.Rules = append(sm.config.Rules[:i], sm.config.Rules[i+1:]...)
			return sm.saveConfig()
		}
	}

	return fmt.Errorf("suppression rule with ID %s not found", id)
}

// EnableSuppressionByID enables a rule, typically one generated disabled
// and now reviewed.
func (sm *SuppressionManager) EnableSuppressionByID(id, reason string) error {
	if sm.config == nil {
		return fmt.Errorf("no suppression config loaded")
	}

	for i := range sm.config.Rules {
		if sm.config.Rules[i].ID == id {
			sm.config.Rules[i].Enabled = true
			if reason != "" {
				sm.config.Rules[i].Reason = reason
			}
			// An enable decision also clears the review window
			sm.config.Rules[i].ExpiresAt = nil
			return sm.saveConfig()
		}
	}

	return fmt.Errorf("suppression rule with ID %s not found", id)
}

// DisableSuppressionByID disables a suppression rule by ID
func (sm *SuppressionManager) DisableSuppressionByID(id string) error {
	if sm.config == nil {
		return fmt.Errorf("no suppression config loaded")
	}

	for i := range sm.config.Rules {
		if sm.config.Rules[i].ID == id {
			sm.config.Rules[i].Enabled = false
			return sm.saveConfig()
		}
	}

	return fmt.Errorf("suppression rule with ID %s not found", id)
}

// ListSuppressions returns all suppression rules
func (sm *SuppressionManager) ListSuppressions() []SuppressionRule {
	if sm.config == nil {
		return []SuppressionRule{}
	}
	return sm.config.Rules
}

// CleanupExpired removes expired suppression rules and reports how many
// were dropped.
func (sm *SuppressionManager) CleanupExpired() int {
	if sm.config == nil {
		return 0
	}

	now := time.Now()
	originalCount := len(sm.config.Rules)

	var activeRules []SuppressionRule
	for _, rule := range sm.config.Rules {
		if rule.ExpiresAt == nil || now.Before(*rule.ExpiresAt) {
			activeRules = append(activeRules, rule)
		}
	}

	sm.config.Rules = activeRules
	removed := originalCount - len(activeRules)

	if removed > 0 {
		sm.saveConfig()
	}

	return removed
}

// maxRuleNumber reads the highest sequential rule number in use.
func (sm *SuppressionManager) maxRuleNumber() int {
	maxID := 0
	for _, rule := range sm.config.Rules {
		if rule.ID == "" {
			continue
		}
		var num int
		if _, err := fmt.Sscanf(rule.ID, "SUP-%08d", &num); err == nil && num > maxID {
			maxID = num
		}
	}
	return maxID
}

// saveConfig saves the suppression configuration to file
func (sm *SuppressionManager) saveConfig() error {
	if sm.configPath == "" {
		sm.configPath = paths.GetSuppressionsFile()
	}

	data, err := yaml.Marshal(sm.config)
	if err != nil {
		return fmt.Errorf("failed to marshal suppression config: %w", err)
	}

	dir := filepath.Dir(sm.configPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Restrictive permissions: the reasons can describe what was found
	if err := os.WriteFile(sm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write suppression config: %w", err)
	}

	return nil
}

// SetEnabled enables or disables the suppression manager
func (sm *SuppressionManager) SetEnabled(enabled bool) {
	sm.enabled = enabled
}

// IsEnabled returns whether the suppression manager is enabled
func (sm *SuppressionManager) IsEnabled() bool {
	return sm.enabled
}

// GetConfigPath returns the path to the suppression config file
func (sm *SuppressionManager) GetConfigPath() string {
	return sm.configPath
}
