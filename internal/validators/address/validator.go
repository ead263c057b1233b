// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"os"
	"regexp"
	"strings"

	"sic-scan/internal/config"
	"sic-scan/internal/detector"
	"sic-scan/internal/security"
)

// pattern represents an address pattern with metadata
type pattern struct {
	name   string
	regex  *regexp.Regexp
	format string
}

// cepRegex matches a Brazilian postal code. A CEP near an address raises
// confidence but never decides acceptance on its own.
var cepRegex = regexp.MustCompile(`\b\d{5}-?\d{3}\b`)

// acceptanceKeywords gate candidates: a match must carry one of these as a
// lowercase substring, plus at least one digit. Substring containment is
// deliberate ("travessa" passes through "av").
var acceptanceKeywords = []string{"rua", "avenida", "av", "quadra", "lote", "bloco"}

// Validator detects street addresses and lot/block designations. Both
// sub-patterns feed one candidate pool; acceptance requires a location
// keyword plus a house or lot number, because an address you cannot
// deliver to does not identify anyone.
type Validator struct {
	patterns         []pattern
	contextExtractor *detector.ContextExtractor
	gateKeywords     []string
	positiveKeywords []string
	negativeKeywords []string
}

// NewValidator creates a new address validator
func NewValidator() *Validator {
	return &Validator{
		patterns: []pattern{
			{
				name:   "Street Address",
				regex:  regexp.MustCompile(`(?i)\b(?:Rua|R\.|Avenida|Av\.?|Travessa|Tv\.?|Alameda|Estrada|Rodovia)\s+[A-Za-zÀ-ÿ0-9\s]{3,80}`),
				format: "Rua <nome> <número>",
			},
			{
				name:   "Lot/Block",
				regex:  regexp.MustCompile(`(?i)\b(?:Qd\.?|Quadra|Lt\.?|Lote|Bloco|BLC|Conjunto|CJ)\s*[A-Za-z0-9-]+\b`),
				format: "Quadra <id> Lote <id>",
			},
		},
		contextExtractor: detector.NewContextExtractor(),
		gateKeywords:     acceptanceKeywords,
		positiveKeywords: []string{
			"endereço", "residente", "domiciliado", "mora", "localizado",
			"situado", "cep",
		},
		negativeKeywords: []string{
			"sede", "empresa", "órgão", "prédio público", "protocolo",
		},
	}
}

// Configure extends the acceptance gate from validator configuration.
// Street nomenclature varies by municipality; extra_street_keywords lets a
// deployment admit designators the default gate would drop.
func (v *Validator) Configure(cfg *config.Config) {
	if cfg == nil || cfg.Validators == nil {
		return
	}
	addressConfig, ok := cfg.Validators["address"]
	if !ok {
		return
	}

	extras, ok := addressConfig["extra_street_keywords"].([]interface{})
	if !ok || len(extras) == 0 {
		return
	}

	// Copy before appending so the package default stays untouched
	keywords := make([]string, len(v.gateKeywords), len(v.gateKeywords)+len(extras))
	copy(keywords, v.gateKeywords)
	for _, extra := range extras {
		if s, ok := extra.(string); ok && strings.TrimSpace(s) != "" {
			keywords = append(keywords, strings.ToLower(strings.TrimSpace(s)))
		}
	}
	v.gateKeywords = keywords
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

// ValidateContent scans record text for addresses
func (v *Validator) ValidateContent(content string, origin string) ([]detector.Match, error) {
	var matches []detector.Match
	seen := make(map[string]bool)

	for _, p := range v.patterns {
		for _, loc := range p.regex.FindAllStringIndex(content, -1) {
			raw := content[loc[0]:loc[1]]
			trimmed := strings.TrimSpace(raw)
			lower := strings.ToLower(trimmed)

			keyword, ok := v.acceptanceKeyword(lower)
			if !ok {
				continue
			}
			if !hasDigit(trimmed) {
				continue
			}

			if seen[trimmed] {
				continue
			}
			seen[trimmed] = true

			confidence, checks := v.CalculateConfidence(trimmed)
			context := v.contextExtractor.Extract(content, loc[0], loc[1])
			context.ConfidenceImpact = v.analyzeContextInfo(trimmed, &context)
			confidence = clampConfidence(confidence + context.ConfidenceImpact)

			cep := cepRegex.FindString(trimmed)
			if cep == "" {
				cep = cepRegex.FindString(context.FullLine)
			}

			matches = append(matches, detector.Match{
				Text:       trimmed,
				Value:      trimmed,
				SecureText: security.NewSecureString(trimmed),
				LineNumber: detector.LineAt(content, loc[0]),
				Type:       p.name,
				Confidence: confidence,
				RecordID:   origin,
				Validator:  "ADDRESS",
				Context:    context,
				Metadata: map[string]any{
					"format":             p.format,
					"acceptance_keyword": keyword,
					"has_postal_code":    cep != "",
					"postal_code":        cep,
					"checks_passed":      countPassed(checks),
				},
			})
		}
	}

	return matches, nil
}

// CalculateConfidence scores an accepted address for reporting
func (v *Validator) CalculateConfidence(match string) (float64, map[string]bool) {
	confidence := 100.0
	checks := make(map[string]bool)

	trimmed := strings.TrimSpace(match)
	lower := strings.ToLower(trimmed)

	_, hasKeyword := v.acceptanceKeyword(lower)
	checks["location_keyword"] = hasKeyword
	if !checks["location_keyword"] {
		confidence -= 60
	}

	checks["has_number"] = hasDigit(trimmed)
	if !checks["has_number"] {
		confidence -= 60
	}

	checks["reasonable_length"] = len(trimmed) >= 8 && len(trimmed) <= 100
	if !checks["reasonable_length"] {
		confidence -= 15
	}

	checks["detailed"] = len(strings.Fields(trimmed)) >= 3
	if !checks["detailed"] {
		// A bare "Quadra 10" locates a block, not a household
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

	if cepRegex.MatchString(context.FullLine) {
		impact += 10
	}

	if impact > 30 {
		impact = 30
	} else if impact < -60 {
		impact = -60
	}

	return impact
}

// acceptanceKeyword returns the first gate keyword contained in lower
func (v *Validator) acceptanceKeyword(lower string) (string, bool) {
	for _, keyword := range v.gateKeywords {
		if strings.Contains(lower, keyword) {
			return keyword, true
		}
	}
	return "", false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
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
