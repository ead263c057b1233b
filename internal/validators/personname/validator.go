// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package personname extracts requester names from record text by running
// a named-entity recognizer and filtering its person spans through
// Brazilian-Portuguese cleaning and validation heuristics. The recognizer
// proposes; the heuristics dispose.
package personname

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"sic-scan/internal/config"
	"sic-scan/internal/detector"
	"sic-scan/internal/ner"
	"sic-scan/internal/security"
)

const (
	minNameTokens = 2
	maxNameTokens = 7
)

// Validator detects person names. Acceptance is decided by the cleaning
// pipeline plus structural validation; confidence is reporting-only.
type Validator struct {
	recognizer       ner.Recognizer
	contextExtractor *detector.ContextExtractor
	extraForbidden   map[string]bool
	positiveKeywords []string
	negativeKeywords []string
}

// NewValidator creates a new person-name validator. The recognizer is
// injected so tests can substitute a fake; production wiring passes
// ner.Default().
func NewValidator(recognizer ner.Recognizer) *Validator {
	return &Validator{
		recognizer:       recognizer,
		contextExtractor: detector.NewContextExtractor(),
		positiveKeywords: []string{
			"nome", "requerente", "solicitante", "cidadão", "responsável",
			"interessado", "assinado", "atenciosamente",
		},
		negativeKeywords: []string{
			"empresa", "órgão", "secretaria", "ministério", "departamento",
			"prefeitura", "autarquia",
		},
	}
}

// Configure extends the forbidden vocabulary from validator configuration.
// Agencies name their units in ways no fixed list anticipates;
// extra_forbidden_words rejects spans carrying those tokens.
func (v *Validator) Configure(cfg *config.Config) {
	if cfg == nil || cfg.Validators == nil {
		return
	}
	nameConfig, ok := cfg.Validators["person_name"]
	if !ok {
		return
	}

	extras, ok := nameConfig["extra_forbidden_words"].([]interface{})
	if !ok || len(extras) == 0 {
		return
	}

	// Merge so profile-level extras stack on top of global ones
	forbidden := make(map[string]bool, len(v.extraForbidden)+len(extras))
	for word := range v.extraForbidden {
		forbidden[word] = true
	}
	for _, extra := range extras {
		if s, ok := extra.(string); ok && strings.TrimSpace(s) != "" {
			forbidden[strings.ToLower(strings.TrimSpace(s))] = true
		}
	}
	v.extraForbidden = forbidden
}

// forbiddenToken consults the built-in noun list plus any configured extras.
func (v *Validator) forbiddenToken(lower string) bool {
	return forbiddenNouns[lower] || v.extraForbidden[lower]
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

// ValidateContent runs the recognizer over record text and keeps the spans
// that survive cleaning and structural validation.
func (v *Validator) ValidateContent(content string, origin string) ([]detector.Match, error) {
	spans, err := v.recognizer.Entities(content)
	if err != nil {
		return nil, fmt.Errorf("personname: recognizing entities: %w", err)
	}

	var matches []detector.Match
	seen := make(map[string]bool)

	for _, span := range ner.People(spans) {
		raw := strings.TrimSpace(span.Text)
		if raw == "" {
			continue
		}

		if startsWithFormalAddress(strings.ToLower(raw)) {
			continue
		}

		clean := stripNoiseSuffixes(stripTitles(raw))
		if !v.validName(clean) {
			continue
		}

		if seen[clean] {
			continue
		}
		seen[clean] = true

		confidence, checks := v.CalculateConfidence(clean)

		// Entity spans carry no offsets; locate the first literal
		// occurrence for line and context reporting.
		var context detector.ContextInfo
		line := 1
		if idx := strings.Index(content, raw); idx >= 0 {
			context = v.contextExtractor.Extract(content, idx, idx+len(raw))
			context.ConfidenceImpact = v.analyzeContextInfo(clean, &context)
			confidence = clampConfidence(confidence + context.ConfidenceImpact)
			line = detector.LineAt(content, idx)
		}

		matches = append(matches, detector.Match{
			Text:       raw,
			Value:      clean,
			SecureText: security.NewSecureString(clean),
			LineNumber: line,
			Type:       "Person Name",
			Confidence: confidence,
			RecordID:   origin,
			Validator:  "PERSON_NAME",
			Context:    context,
			Metadata: map[string]any{
				"token_count":   len(strings.Fields(clean)),
				"stripped":      clean != raw,
				"checks_passed": countPassed(checks),
			},
		})
	}

	return matches, nil
}

// CalculateConfidence scores a cleaned name for reporting
func (v *Validator) CalculateConfidence(match string) (float64, map[string]bool) {
	confidence := 100.0
	checks := make(map[string]bool)
	tokens := strings.Fields(match)

	checks["token_count"] = len(tokens) >= minNameTokens && len(tokens) <= maxNameTokens
	if !checks["token_count"] {
		confidence -= 70
	}

	checks["no_forbidden"] = true
	checks["capitalized"] = true
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		if nameConnectors[lower] {
			continue
		}
		if v.forbiddenToken(lower) {
			checks["no_forbidden"] = false
		}
		if !startsUpper(tok) {
			checks["capitalized"] = false
		}
	}
	if !checks["no_forbidden"] {
		confidence -= 50
	}
	if !checks["capitalized"] {
		confidence -= 40
	}

	checks["distinct_ends"] = len(tokens) < 2 || tokens[0] != tokens[len(tokens)-1]
	if !checks["distinct_ends"] {
		confidence -= 30
	}

	checks["multi_surname"] = len(tokens) >= 3
	if !checks["multi_surname"] {
		// Two bare tokens could still be a pseudonym or a heading
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

	if impact > 30 {
		impact = 30
	} else if impact < -60 {
		impact = -60
	}

	return impact
}

// startsWithFormalAddress reports whether the lowered span opens with a
// salutation phrase.
func startsWithFormalAddress(lower string) bool {
	for _, phrase := range formalAddresses {
		if strings.HasPrefix(lower, phrase) {
			return true
		}
	}
	return false
}

// stripTitles drops honorific tokens from both edges of the span.
func stripTitles(name string) string {
	tokens := strings.Fields(name)
	for len(tokens) > 0 && honorificTitles[strings.ToLower(tokens[0])] {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && honorificTitles[strings.ToLower(tokens[len(tokens)-1])] {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// stripNoiseSuffixes drops trailing field-label tokens such as "CPF:".
func stripNoiseSuffixes(name string) string {
	tokens := strings.Fields(name)
	for len(tokens) > 0 {
		last := strings.Trim(strings.ToLower(tokens[len(tokens)-1]), ":")
		if !noiseSuffixes[last] {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

// validName applies the structural rule to a cleaned span.
func (v *Validator) validName(name string) bool {
	tokens := strings.Fields(name)

	if len(tokens) < minNameTokens || len(tokens) > maxNameTokens {
		return false
	}

	if leadingPronouns[strings.ToLower(tokens[0])] {
		return false
	}

	if tokens[0] == tokens[len(tokens)-1] {
		return false
	}

	for _, tok := range tokens {
		lower := strings.ToLower(tok)

		if nameConnectors[lower] {
			continue
		}
		if v.forbiddenToken(lower) {
			return false
		}
		if !startsUpper(tok) {
			return false
		}
	}

	return true
}

// startsUpper reports whether the first rune is uppercase; accented
// uppercase letters count.
func startsUpper(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsUpper(r)
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
