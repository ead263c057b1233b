// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package suppressions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sic-scan/internal/detector"
)

func newTestMatch(validator, value, recordID string) detector.Match {
	return detector.Match{
		Type:       validator,
		Validator:  validator,
		Text:       value,
		Value:      value,
		RecordID:   recordID,
		LineNumber: 1,
		Confidence: 90,
	}
}

func TestNewSuppressionManager_NoFile(t *testing.T) {
	sm := NewSuppressionManager("/nonexistent/path.yaml")
	if sm == nil {
		t.Fatal("expected non-nil manager")
	}
	if !sm.IsEnabled() {
		t.Error("suppression manager should be enabled by default")
	}
}

func TestAddAndIsSuppressed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppressions.yaml")

	sm := NewSuppressionManager(path)
	match := newTestMatch("EMAIL", "protocolo@agencia.gov.br", "pedidos.csv#row3")

	if err := sm.AddSuppression(match, "caixa institucional de protocolo", "triagem", nil); err != nil {
		t.Fatalf("AddSuppression failed: %v", err)
	}

	suppressed, rule := sm.IsSuppressed(match)
	if !suppressed {
		t.Error("match should be suppressed")
	}
	if rule == nil {
		t.Fatal("expected non-nil rule")
	}
	if rule.Reason != "caixa institucional de protocolo" {
		t.Errorf("unexpected reason %q", rule.Reason)
	}
}

func TestSuppressionIsValueScoped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppressions.yaml")

	sm := NewSuppressionManager(path)
	first := newTestMatch("PHONE", "6132221000", "pedidos.csv#row3")

	if err := sm.AddSuppression(first, "telefone da ouvidoria", "triagem", nil); err != nil {
		t.Fatalf("AddSuppression failed: %v", err)
	}

	// Same value seen in another record, on another line
	elsewhere := newTestMatch("PHONE", "6132221000", "recursos.csv#row88")
	elsewhere.LineNumber = 14
	if suppressed, _ := sm.IsSuppressed(elsewhere); !suppressed {
		t.Error("same value in a different record should still be suppressed")
	}

	// Same value claimed by a different check is a different finding
	other := newTestMatch("CPF", "6132221000", "pedidos.csv#row3")
	if suppressed, _ := sm.IsSuppressed(other); suppressed {
		t.Error("a different check's finding should not share the rule")
	}

	// And a different value is untouched
	if suppressed, _ := sm.IsSuppressed(newTestMatch("PHONE", "61999990000", "pedidos.csv#row3")); suppressed {
		t.Error("an unrelated value should not be suppressed")
	}
}

func TestIsSuppressed_NotSuppressed(t *testing.T) {
	sm := NewSuppressionManager("")
	match := newTestMatch("EMAIL", "nobody@example.com", "pedidos.csv#row1")

	suppressed, rule := sm.IsSuppressed(match)
	if suppressed {
		t.Error("match should not be suppressed")
	}
	if rule != nil {
		t.Error("expected nil rule for unsuppressed match")
	}
}

func TestDisabledRuleDoesNotSuppress(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppressions.yaml")

	sm := NewSuppressionManager(path)
	match := newTestMatch("EMAIL", "sic@ministerio.gov.br", "pedidos.csv#row5")

	// Generated rules start disabled pending review
	if err := sm.GenerateSuppressionRules([]detector.Match{match}, "contato publicado", false); err != nil {
		t.Fatalf("GenerateSuppressionRules failed: %v", err)
	}

	if suppressed, _ := sm.IsSuppressed(match); suppressed {
		t.Error("disabled rule should not suppress")
	}

	rules := sm.ListSuppressions()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}

	if err := sm.EnableSuppressionByID(rules[0].ID, "revisado"); err != nil {
		t.Fatalf("EnableSuppressionByID failed: %v", err)
	}

	suppressed, rule := sm.IsSuppressed(match)
	if !suppressed {
		t.Error("enabled rule should suppress")
	}
	if rule.ExpiresAt != nil {
		t.Error("enabling a rule should clear its review expiry")
	}
	if rule.Reason != "revisado" {
		t.Errorf("expected updated reason, got %q", rule.Reason)
	}
}

func TestDisableSuppressionByID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppressions.yaml")

	sm := NewSuppressionManager(path)
	match := newTestMatch("ADDRESS", "Rua da Ouvidoria 100", "pedidos.csv#row2")

	if err := sm.AddSuppression(match, "endereco do orgao", "triagem", nil); err != nil {
		t.Fatalf("AddSuppression failed: %v", err)
	}

	rules := sm.ListSuppressions()
	if err := sm.DisableSuppressionByID(rules[0].ID); err != nil {
		t.Fatalf("DisableSuppressionByID failed: %v", err)
	}

	if suppressed, _ := sm.IsSuppressed(match); suppressed {
		t.Error("disabled rule should not suppress")
	}
}

func TestAddSuppression_DuplicateValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppressions.yaml")

	sm := NewSuppressionManager(path)
	match := newTestMatch("CPF", "12345678909", "pedidos.csv#row1")

	if err := sm.AddSuppression(match, "primeira", "triagem", nil); err != nil {
		t.Fatalf("AddSuppression failed: %v", err)
	}
	if err := sm.AddSuppression(match, "segunda", "triagem", nil); err == nil {
		t.Error("adding a second rule for the same value should fail")
	}
}

func TestRemoveSuppression(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppressions.yaml")

	sm := NewSuppressionManager(path)
	match := newTestMatch("RG", "123456789", "pedidos.csv#row1")

	if err := sm.AddSuppression(match, "falso positivo", "triagem", nil); err != nil {
		t.Fatalf("AddSuppression failed: %v", err)
	}

	rules := sm.ListSuppressions()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}

	if err := sm.RemoveSuppression(rules[0].ID); err != nil {
		t.Fatalf("RemoveSuppression failed: %v", err)
	}

	if suppressed, _ := sm.IsSuppressed(match); suppressed {
		t.Error("match should no longer be suppressed after removal")
	}
}

func TestExpiredRule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppressions.yaml")

	sm := NewSuppressionManager(path)
	match := newTestMatch("PHONE", "6133334444", "pedidos.csv#row1")

	past := time.Now().Add(-time.Hour)
	if err := sm.AddSuppression(match, "expirada", "triagem", &past); err != nil {
		t.Fatalf("AddSuppression failed: %v", err)
	}

	if suppressed, _ := sm.IsSuppressed(match); suppressed {
		t.Error("expired suppression should not suppress match")
	}

	expired := sm.GetExpiredRule(match)
	if expired == nil {
		t.Fatal("expected the lapsed rule to be reported")
	}
	if expired.Reason != "expirada" {
		t.Errorf("unexpected lapsed rule reason %q", expired.Reason)
	}

	removed := sm.CleanupExpired()
	if removed != 1 {
		t.Errorf("expected 1 expired rule removed, got %d", removed)
	}
	if sm.GetExpiredRule(match) != nil {
		t.Error("cleaned-up rule should no longer be reported as lapsed")
	}
}

func TestGenerateSuppressionRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppressions.yaml")

	sm := NewSuppressionManager(path)
	matches := []detector.Match{
		newTestMatch("EMAIL", "sic@agencia.gov.br", "pedidos.csv#row1"),
		newTestMatch("PHONE", "6132221000", "pedidos.csv#row1"),
		// Same email again in another record collapses into one rule
		newTestMatch("EMAIL", "sic@agencia.gov.br", "pedidos.csv#row9"),
	}

	if err := sm.GenerateSuppressionRules(matches, "contatos institucionais", true); err != nil {
		t.Fatalf("GenerateSuppressionRules failed: %v", err)
	}

	rules := sm.ListSuppressions()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	for _, rule := range rules {
		if rule.ExpiresAt == nil {
			t.Errorf("generated rule %s should carry a review expiry", rule.ID)
		}
		if rule.LastSeenAt == nil {
			t.Errorf("generated rule %s should record last_seen_at", rule.ID)
		}
	}
}

func TestGenerateSuppressionRules_RefreshesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppressions.yaml")

	sm := NewSuppressionManager(path)
	match := newTestMatch("EMAIL", "sic@agencia.gov.br", "pedidos.csv#row1")

	if err := sm.GenerateSuppressionRules([]detector.Match{match}, "primeira rodada", true); err != nil {
		t.Fatalf("GenerateSuppressionRules failed: %v", err)
	}
	firstSeen := *sm.ListSuppressions()[0].LastSeenAt

	time.Sleep(10 * time.Millisecond)
	if err := sm.GenerateSuppressionRules([]detector.Match{match}, "segunda rodada", true); err != nil {
		t.Fatalf("GenerateSuppressionRules failed: %v", err)
	}

	rules := sm.ListSuppressions()
	if len(rules) != 1 {
		t.Fatalf("expected the rule to be refreshed, not duplicated; got %d rules", len(rules))
	}
	if !rules[0].LastSeenAt.After(firstSeen) {
		t.Error("expected last_seen_at to be refreshed")
	}
	if rules[0].Reason != "primeira rodada" {
		t.Error("refreshing a rule should not rewrite its reason")
	}
}

func TestSequentialRuleIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppressions.yaml")

	sm := NewSuppressionManager(path)
	for i, value := range []string{"a@b.gov.br", "c@d.gov.br", "e@f.gov.br"} {
		match := newTestMatch("EMAIL", value, "pedidos.csv#row1")
		if err := sm.AddSuppression(match, "institucional", "triagem", nil); err != nil {
			t.Fatalf("AddSuppression %d failed: %v", i, err)
		}
	}

	rules := sm.ListSuppressions()
	for i, rule := range rules {
		want := fmt.Sprintf("SUP-%08d", i+1)
		if rule.ID != want {
			t.Errorf("rule %d: expected ID %s, got %s", i, want, rule.ID)
		}
	}
}

func TestValueHash(t *testing.T) {
	match := newTestMatch("CPF", "12345678909", "pedidos.csv#row1")
	if FindingHash(match) != ValueHash("CPF", "12345678909") {
		t.Error("finding hash should be the value hash of its check and canonical value")
	}
	if ValueHash("CPF", "12345678909") == ValueHash("RG", "12345678909") {
		t.Error("hashes should differ across checks")
	}
	if len(ValueHash("CPF", "12345678909")) != 64 {
		t.Error("expected a full hex-encoded SHA-256")
	}
}

func TestSetEnabled(t *testing.T) {
	sm := NewSuppressionManager("")
	sm.SetEnabled(false)
	if sm.IsEnabled() {
		t.Error("expected manager to be disabled")
	}

	match := newTestMatch("EMAIL", "x@y.gov.br", "pedidos.csv#row1")
	sm.config.Rules = append(sm.config.Rules, SuppressionRule{
		ID:      "SUP-00000001",
		Hash:    FindingHash(match),
		Enabled: true,
	})
	if suppressed, _ := sm.IsSuppressed(match); suppressed {
		t.Error("disabled manager should suppress nothing")
	}

	sm.SetEnabled(true)
	if suppressed, _ := sm.IsSuppressed(match); !suppressed {
		t.Error("re-enabled manager should apply its rules")
	}
}

func TestListSuppressions_Empty(t *testing.T) {
	sm := NewSuppressionManager("/nonexistent/path/that/does/not/exist.yaml")
	rules := sm.ListSuppressions()
	if rules == nil {
		t.Error("expected non-nil slice (empty is fine)")
	}
	if len(rules) != 0 {
		t.Errorf("expected 0 rules, got %d", len(rules))
	}
}

func TestGetConfigPath(t *testing.T) {
	path := "/some/path.yaml"
	sm := NewSuppressionManager(path)
	if sm.GetConfigPath() != path {
		t.Errorf("expected config path %q, got %q", path, sm.GetConfigPath())
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suppressions.yaml")

	sm1 := NewSuppressionManager(path)
	match := newTestMatch("CPF", "39053344705", "pedidos.csv#row7")
	if err := sm1.AddSuppression(match, "CPF do proprio orgao em template", "triagem", nil); err != nil {
		t.Fatalf("AddSuppression failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("suppression file should have been created")
	}

	sm2 := NewSuppressionManager(path)
	suppressed, _ := sm2.IsSuppressed(match)
	if !suppressed {
		t.Error("suppression should persist across manager instances")
	}

	// Rules reference values only by hash; the value itself never lands on disk
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading suppression file: %v", err)
	}
	if strings.Contains(string(data), "39053344705") {
		t.Error("canonical value should not appear in the rules file")
	}
}
