// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"sic-scan/internal/security"
	"time"
)

// ContextInfo stores contextual information about a match
type ContextInfo struct {
	// Text before and after the match
	BeforeText string
	AfterText  string

	// Line containing the match
	FullLine string

	// Contextual keywords found near the match
	PositiveKeywords []string // Keywords that increase confidence
	NegativeKeywords []string // Keywords that decrease confidence

	// Impact on confidence score
	ConfidenceImpact float64
}

// Validator interface defines methods for validating personal data in record text.
//
// Acceptance is binary: ValidateContent returns only matches that passed the
// type's validation rule. Confidence is a reporting signal layered on top of
// accepted matches and never turns a rejected candidate into a finding.
type Validator interface {
	Validate(filePath string) ([]Match, error)
	CalculateConfidence(match string) (float64, map[string]bool)

	// AnalyzeContext adjusts reporting confidence from surrounding text
	AnalyzeContext(match string, context ContextInfo) float64

	// ValidateContent scans already-loaded record text
	ValidateContent(content string, origin string) ([]Match, error)
}

// Match represents a detected personal-data match
type Match struct {
	Text       string                 // Raw matched text as it appears in the record
	Value      string                 // Canonical value (digit string for CPF/RG/PHONE)
	SecureText *security.SecureString // Secure version of Text
	LineNumber int
	Type       string
	Confidence float64
	Metadata   map[string]any
	RecordID   string // Identifier of the record where the match was found
	Filename   string // Path to the source file, when the record came from one
	Validator  string // Name of the check that created this match

	Context ContextInfo
}

// SuppressedMatch represents a finding that was suppressed by a rule
type SuppressedMatch struct {
	Match        Match      `json:"finding"`
	SuppressedBy string     `json:"suppressed_by"`
	RuleReason   string     `json:"rule_reason"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Expired      bool       `json:"expired"`
}

// Clear securely wipes sensitive data from memory
func (m *Match) Clear() {
	m.Text = ""
	m.Value = ""
	if m.SecureText != nil {
		m.SecureText.Clear()
		m.SecureText = nil
	}

	m.Context.BeforeText = ""
	m.Context.AfterText = ""
	m.Context.FullLine = ""
}
