// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package email

import (
	"os"
	"regexp"
	"strings"

	"sic-scan/internal/detector"
	"sic-scan/internal/security"
)

// pattern represents an email pattern with metadata
type pattern struct {
	name  string
	regex *regexp.Regexp
}

// Validator detects e-mail addresses. The pattern is the whole rule: any
// match is accepted, and confidence only shades the report.
type Validator struct {
	patterns         []pattern
	contextExtractor *detector.ContextExtractor
	positiveKeywords []string
	negativeKeywords []string
}

// NewValidator creates a new email validator
func NewValidator() *Validator {
	return &Validator{
		patterns: []pattern{
			{
				name:  "Email Address",
				regex: regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
			},
		},
		contextExtractor: detector.NewContextExtractor(),
		positiveKeywords: []string{
			"email", "e-mail", "correio eletrônico", "contato", "enviar",
			"resposta", "endereço eletrônico",
		},
		negativeKeywords: []string{
			"usuário", "login", "exemplo", "example", "modelo de",
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

// ValidateContent scans record text for e-mail addresses
func (v *Validator) ValidateContent(content string, origin string) ([]detector.Match, error) {
	var matches []detector.Match
	seen := make(map[string]bool)

	for _, p := range v.patterns {
		for _, loc := range p.regex.FindAllStringIndex(content, -1) {
			raw := content[loc[0]:loc[1]]

			if seen[raw] {
				continue
			}
			seen[raw] = true

			confidence, checks := v.CalculateConfidence(raw)
			context := v.contextExtractor.Extract(content, loc[0], loc[1])
			context.ConfidenceImpact = v.analyzeContextInfo(raw, &context)
			confidence = clampConfidence(confidence + context.ConfidenceImpact)

			domain := domainOf(raw)
			matches = append(matches, detector.Match{
				Text:       raw,
				Value:      raw,
				SecureText: security.NewSecureString(raw),
				LineNumber: detector.LineAt(content, loc[0]),
				Type:       p.name,
				Confidence: confidence,
				RecordID:   origin,
				Validator:  "EMAIL",
				Context:    context,
				Metadata: map[string]any{
					"domain":        domain,
					"gov_domain":    strings.HasSuffix(domain, ".gov.br"),
					"checks_passed": countPassed(checks),
				},
			})
		}
	}

	return matches, nil
}

// CalculateConfidence scores an address for reporting
func (v *Validator) CalculateConfidence(match string) (float64, map[string]bool) {
	confidence := 100.0
	checks := make(map[string]bool)

	lower := strings.ToLower(match)
	domain := domainOf(lower)

	checks["single_at"] = strings.Count(match, "@") == 1
	if !checks["single_at"] {
		confidence -= 50
	}

	checks["not_example"] = !strings.Contains(domain, "example") &&
		!strings.HasPrefix(lower, "exemplo@") && !strings.HasPrefix(lower, "usuario@")
	if !checks["not_example"] {
		// Template addresses show up in portal boilerplate
		confidence -= 45
	}

	checks["not_noreply"] = !strings.HasPrefix(lower, "no-reply@") &&
		!strings.HasPrefix(lower, "noreply@") && !strings.HasPrefix(lower, "nao-responda@")
	if !checks["not_noreply"] {
		// System senders rather than personal addresses
		confidence -= 30
	}

	checks["plausible_domain"] = len(domain) > 3 && strings.Contains(domain, ".")
	if !checks["plausible_domain"] {
		confidence -= 20
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
			impact -= 20
			context.NegativeKeywords = append(context.NegativeKeywords, keyword)
		} else if strings.Contains(surrounding, keyword) {
			impact -= 10
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

// domainOf returns the part after the last @
func domainOf(address string) string {
	at := strings.LastIndex(address, "@")
	if at == -1 || at == len(address)-1 {
		return ""
	}
	return strings.ToLower(address[at+1:])
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
