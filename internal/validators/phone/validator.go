// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"sic-scan/internal/detector"
	"sic-scan/internal/security"
)

// pattern represents a phone pattern with metadata
type pattern struct {
	name   string
	regex  *regexp.Regexp
	format string
}

// Validator detects Brazilian phone numbers. A candidate is accepted only
// when it carries 10 or 11 digits and its first two digits form a DDD area
// code in the 11-99 range; anything else that merely looks phone-shaped is
// rejected. Confidence is reporting-only.
type Validator struct {
	patterns         []pattern
	contextExtractor *detector.ContextExtractor
	positiveKeywords []string
	negativeKeywords []string
}

// NewValidator creates a new phone validator
func NewValidator() *Validator {
	return &Validator{
		patterns: []pattern{
			{
				name:   "BR Phone",
				regex:  regexp.MustCompile(`\b(?:\+55\s?)?(?:\(?\d{2}\)?\s?)?9?\d{4}-?\d{4}\b`),
				format: "(DD) 9XXXX-XXXX",
			},
		},
		contextExtractor: detector.NewContextExtractor(),
		positiveKeywords: []string{
			"telefone", "celular", "whatsapp", "contato", "ligar", "fone", "ramal",
		},
		negativeKeywords: []string{
			"protocolo", "processo", "nup", "cep", "matrícula", "nota fiscal",
			"empenho", "cnpj", "código",
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

// ValidateContent scans record text for Brazilian phone numbers
func (v *Validator) ValidateContent(content string, origin string) ([]detector.Match, error) {
	var matches []detector.Match
	seen := make(map[string]bool)

	for _, p := range v.patterns {
		for _, loc := range p.regex.FindAllStringIndex(content, -1) {
			raw := content[loc[0]:loc[1]]
			digits := digitsOf(raw)

			if len(digits) != 10 && len(digits) != 11 {
				continue
			}
			if !validAreaCode(digits[:2]) {
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
				Validator:  "PHONE",
				Context:    context,
				Metadata: map[string]any{
					"format":        p.format,
					"digit_count":   len(digits),
					"area_code":     digits[:2],
					"mobile":        len(digits) == 11 && digits[2] == '9',
					"checks_passed": countPassed(checks),
				},
			})
		}
	}

	return matches, nil
}

// CalculateConfidence scores an accepted number for reporting
func (v *Validator) CalculateConfidence(match string) (float64, map[string]bool) {
	confidence := 100.0
	checks := make(map[string]bool)
	digits := digitsOf(match)

	checks["digit_count"] = len(digits) == 10 || len(digits) == 11
	if !checks["digit_count"] {
		confidence -= 70
	}

	checks["area_code"] = len(digits) >= 2 && validAreaCode(digits[:2])
	if !checks["area_code"] {
		confidence -= 60
	}

	checks["not_repeated"] = len(digits) > 2 && !allSameDigit(digits[2:])
	if !checks["not_repeated"] {
		confidence -= 40
	}

	checks["mobile_prefix"] = len(digits) != 11 || digits[2] == '9'
	if !checks["mobile_prefix"] {
		// 11 digits without the mobile 9 is not a dialable shape
		confidence -= 25
	}

	checks["formatted"] = strings.ContainsAny(match, "()- ")
	if !checks["formatted"] {
		confidence -= 10
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

	if impact > 30 {
		impact = 30
	} else if impact < -60 {
		impact = -60
	}

	return impact
}

// validAreaCode reports whether the two leading digits form a DDD in 11-99
func validAreaCode(ddd string) bool {
	n, err := strconv.Atoi(ddd)
	if err != nil {
		return false
	}
	return n >= 11 && n <= 99
}

// digitsOf strips every non-digit byte from s
func digitsOf(s string) string {
	var b strings.Builder
	b.Grow(len(s))
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
