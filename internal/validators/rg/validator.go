// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rg

import (
	"os"
	"regexp"
	"strings"

	"sic-scan/internal/detector"
	"sic-scan/internal/security"
)

// windowChars is how far back (in characters) a supporting keyword may sit
// from an occurrence of the candidate.
const windowChars = 15

// pattern represents an RG pattern with metadata
type pattern struct {
	name   string
	regex  *regexp.Regexp
	format string
}

// Validator detects RG numbers (the Brazilian state-issued identity card).
// RG digit runs are short enough to collide with protocol numbers and
// amounts, so acceptance needs both the digit-count rule (7 to 9 digits)
// and a supporting keyword in the characters right before some occurrence
// of the candidate.
type Validator struct {
	patterns         []pattern
	contextKeywords  []string
	contextExtractor *detector.ContextExtractor
	positiveKeywords []string
	negativeKeywords []string
}

// NewValidator creates a new RG validator
func NewValidator() *Validator {
	return &Validator{
		patterns: []pattern{
			{
				name:   "RG",
				regex:  regexp.MustCompile(`\b\d{1,2}\.?\d{3}\.?\d{3}-?[0-9Xx]\b`),
				format: "00.000.000-0",
			},
		},
		// Any of these inside the preceding window accepts the candidate
		contextKeywords:  []string{"rg", "registro geral", "identidade"},
		contextExtractor: detector.NewContextExtractor(),
		positiveKeywords: []string{
			"rg", "registro geral", "identidade", "órgão expedidor",
			"ssp", "expedido", "carteira",
		},
		negativeKeywords: []string{
			"cnpj", "processo", "protocolo", "matrícula",
			"inscrição estadual", "empenho",
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

// ValidateContent scans record text for RG numbers
func (v *Validator) ValidateContent(content string, origin string) ([]detector.Match, error) {
	var matches []detector.Match
	seen := make(map[string]bool)

	// One lowercase copy per record; every occurrence check slices it
	lowered := strings.ToLower(content)

	for _, p := range v.patterns {
		for _, loc := range p.regex.FindAllStringIndex(content, -1) {
			raw := content[loc[0]:loc[1]]
			digits := digitsOf(raw)

			// Acceptance rule 1: 7 to 9 digits
			if len(digits) < 7 || len(digits) > 9 {
				continue
			}

			// Acceptance rule 2: some occurrence of the candidate carries a
			// supporting keyword in the window right before it
			keyword, supported := v.supportingKeyword(lowered, strings.ToLower(raw))
			if !supported {
				continue
			}

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
				Validator:  "RG",
				Context:    context,
				Metadata: map[string]any{
					"format":          p.format,
					"digit_count":     len(digits),
					"context_keyword": keyword,
					"has_check_char":  strings.HasSuffix(strings.ToLower(raw), "x"),
					"checks_passed":   countPassed(checks),
				},
			})
		}
	}

	return matches, nil
}

// supportingKeyword looks for a context keyword in the window before each
// literal occurrence of the candidate. A single supported occurrence is
// enough to accept the value everywhere in the record.
func (v *Validator) supportingKeyword(lowered, candidate string) (string, bool) {
	if candidate == "" {
		return "", false
	}

	from := 0
	for {
		idx := strings.Index(lowered[from:], candidate)
		if idx == -1 {
			return "", false
		}
		idx += from

		window := precedingWindow(lowered, idx, windowChars)
		for _, keyword := range v.contextKeywords {
			if strings.Contains(window, keyword) {
				return keyword, true
			}
		}

		from = idx + 1
	}
}

// precedingWindow returns the chars characters of text that end at offset,
// clamped at the start of the text. The count is in runes so accented text
// keeps the window honest.
func precedingWindow(text string, offset, chars int) string {
	prefix := text[:offset]

	// A rune is at most 4 bytes; cap the byte slice before rune-trimming so
	// long records do not pay for full decoding.
	if byteCap := chars * 4; len(prefix) > byteCap {
		prefix = prefix[len(prefix)-byteCap:]
	}

	runes := []rune(prefix)
	if len(runes) > chars {
		runes = runes[len(runes)-chars:]
	}
	return string(runes)
}

// CalculateConfidence scores how likely a candidate is a real RG
func (v *Validator) CalculateConfidence(match string) (float64, map[string]bool) {
	confidence := 100.0
	checks := make(map[string]bool)

	digits := digitsOf(match)

	checks["digit_count"] = len(digits) >= 7 && len(digits) <= 9
	if !checks["digit_count"] {
		confidence -= 70
	}

	checks["formatted"] = strings.Contains(match, ".") || strings.Contains(match, "-")
	if !checks["formatted"] {
		// A bare 7-9 digit run is indistinguishable from most registry numbers
		confidence -= 15
	}

	checks["not_repeated"] = !allSameDigit(digits)
	if !checks["not_repeated"] {
		confidence -= 40
	}

	checks["full_length"] = len(digits) >= 8
	if !checks["full_length"] {
		// Seven-digit RGs exist in older series but are rarer
		confidence -= 5
	}

	return clampConfidence(confidence), checks
}

// AnalyzeContext adjusts confidence based on surrounding text
func (v *Validator) AnalyzeContext(match string, context detector.ContextInfo) float64 {
	ctx := context
	return v.analyzeContextInfo(match, &ctx)
}

func (v *Validator) analyzeContextInfo(match string, context *detector.ContextInfo) float64 {
	impact := 0.0

	fullLine := strings.ToLower(context.FullLine)
	surrounding := strings.ToLower(context.BeforeText + " " + context.AfterText)

	for _, keyword := range v.positiveKeywords {
		if strings.Contains(fullLine, keyword) {
			impact += 10
			context.PositiveKeywords = append(context.PositiveKeywords, keyword)
		} else if strings.Contains(surrounding, keyword) {
			impact += 5
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

	if impact > 30 {
		impact = 30
	} else if impact < -60 {
		impact = -60
	}

	return impact
}

// digitsOf strips everything but decimal digits (check letters drop out)
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

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
