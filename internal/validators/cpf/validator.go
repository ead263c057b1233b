// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cpf

import (
	"os"
	"regexp"
	"strings"

	"sic-scan/internal/detector"
	"sic-scan/internal/security"
)

// pattern represents a CPF pattern with metadata
type pattern struct {
	name   string
	regex  *regexp.Regexp
	format string
}

// Validator detects CPF numbers (the primary Brazilian natural-person ID).
// Acceptance is the digit-count rule: a candidate must strip to exactly 11
// digits. There is no check-digit verification; published datasets contain
// typos and partially masked IDs that are still personal data.
type Validator struct {
	patterns         []pattern
	contextExtractor *detector.ContextExtractor
	positiveKeywords []string
	negativeKeywords []string
}

// NewValidator creates a new CPF validator
func NewValidator() *Validator {
	return &Validator{
		patterns: []pattern{
			{
				name:   "CPF",
				regex:  regexp.MustCompile(`\b\d{3}\.?\d{3}\.?\d{3}-?\d{1,2}\b`),
				format: "000.000.000-00",
			},
		},
		contextExtractor: detector.NewContextExtractor(),
		positiveKeywords: []string{
			"cpf", "cadastro de pessoa física", "cadastro de pessoas físicas",
			"documento", "portador", "titular", "inscrito sob",
		},
		negativeKeywords: []string{
			"cnpj", "protocolo", "processo", "nup", "nota fiscal",
			"empenho", "licitação", "pregão",
		},
	}
}

// Validate reads a file, normalizes it and scans it as a single record
func (v *Validator) Validate(filePath string) ([]detector.Match, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	matches, err := v.ValidateContent(detector.NormalizeText(string(content)), filePath)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].Filename = filePath
	}
	return matches, nil
}

// ValidateContent scans record text for CPF numbers
func (v *Validator) ValidateContent(content string, origin string) ([]detector.Match, error) {
	var matches []detector.Match
	seen := make(map[string]bool)

	for _, p := range v.patterns {
		for _, loc := range p.regex.FindAllStringIndex(content, -1) {
			raw := content[loc[0]:loc[1]]
			digits := digitsOf(raw)

			// Acceptance rule: exactly 11 digits
			if len(digits) != 11 {
				continue
			}

			// Collapse format variants of the same ID
			if seen[digits] {
				continue
			}
			seen[digits] = true

			confidence, checks := v.CalculateConfidence(raw)
			context := v.contextExtractor.Extract(content, loc[0], loc[1])
			context.ConfidenceImpact = v.analyzeContextInfo(raw, &context)
			confidence = clampConfidence(confidence + context.ConfidenceImpact)

			matches = append(matches, detector.Match{
				Text:       raw,
				Value:      digits,
				SecureText: security.NewSecureString(raw),
				LineNumber: detector.LineAt(content, loc[0]),
				Type:       p.name,
				Confidence: confidence,
				RecordID:   origin,
				Validator:  "CPF",
				Context:    context,
				Metadata: map[string]any{
					"format":        p.format,
					"formatted":     checks["formatted"],
					"digit_count":   len(digits),
					"checks_passed": countPassed(checks),
				},
			})
		}
	}

	return matches, nil
}

// CalculateConfidence scores how likely a candidate is a real CPF.
// The score only tiers reporting; acceptance happened in ValidateContent.
func (v *Validator) CalculateConfidence(match string) (float64, map[string]bool) {
	confidence := 100.0
	checks := make(map[string]bool)

	digits := digitsOf(match)

	checks["digit_count"] = len(digits) == 11
	if !checks["digit_count"] {
		confidence -= 70
	}

	checks["formatted"] = formattedCPF.MatchString(match)
	if !checks["formatted"] {
		// Bare digit runs collide with protocol and process numbers
		confidence -= 10
	}

	checks["not_repeated"] = !allSameDigit(digits)
	if !checks["not_repeated"] {
		// 111.111.111-11 and friends are placeholder values
		confidence -= 40
	}

	checks["not_sequential"] = !sequentialDigits(digits)
	if !checks["not_sequential"] {
		confidence -= 30
	}

	checks["not_zero"] = digits != "00000000000"
	if !checks["not_zero"] {
		confidence -= 50
	}

	return clampConfidence(confidence), checks
}

// AnalyzeContext adjusts confidence based on surrounding text
func (v *Validator) AnalyzeContext(match string, context detector.ContextInfo) float64 {
	ctx := context
	return v.analyzeContextInfo(match, &ctx)
}

// analyzeContextInfo scores context and records the keywords it found
func (v *Validator) analyzeContextInfo(match string, context *detector.ContextInfo) float64 {
	impact := 0.0

	fullLine := strings.ToLower(context.FullLine)
	surrounding := strings.ToLower(context.BeforeText + " " + context.AfterText)

	for _, keyword := range v.positiveKeywords {
		if strings.Contains(fullLine, keyword) {
			impact += 12
			context.PositiveKeywords = append(context.PositiveKeywords, keyword)
		} else if strings.Contains(surrounding, keyword) {
			impact += 6
			context.PositiveKeywords = append(context.PositiveKeywords, keyword)
		}
	}

	for _, keyword := range v.negativeKeywords {
		if strings.Contains(fullLine, keyword) {
			impact -= 25
			context.NegativeKeywords = append(context.NegativeKeywords, keyword)
		} else if strings.Contains(surrounding, keyword) {
			impact -= 12
			context.NegativeKeywords = append(context.NegativeKeywords, keyword)
		}
	}

	// Cap the context influence
	if impact > 30 {
		impact = 30
	} else if impact < -60 {
		impact = -60
	}

	return impact
}

var formattedCPF = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)

// digitsOf strips everything but decimal digits
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// allSameDigit reports whether every digit is identical
func allSameDigit(digits string) bool {
	if digits == "" {
		return false
	}
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// sequentialDigits reports ascending or descending runs like 12345678901
func sequentialDigits(digits string) bool {
	if len(digits) < 3 {
		return false
	}
	ascending, descending := true, true
	for i := 1; i < len(digits); i++ {
		diff := int(digits[i]) - int(digits[i-1])
		if diff != 1 && !(digits[i] == '0' && digits[i-1] == '9') {
			ascending = false
		}
		if diff != -1 && !(digits[i] == '9' && digits[i-1] == '0') {
			descending = false
		}
	}
	return ascending || descending
}

func countPassed(checks map[string]bool) int {
	passed := 0
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	return passed
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
