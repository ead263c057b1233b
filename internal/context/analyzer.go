// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package context analyzes whole-record text and produces confidence
// adjustments for the validators. Nothing here decides acceptance; the
// insights only shade reported confidence up or down.
package context

import (
	"regexp"
	"strings"
)

// ContextAnalyzer provides record-level context analysis for all validators
type ContextAnalyzer struct {
	structureDetector *StructureDetector
	domainClassifier  *DomainClassifier
	semanticPatterns  map[string][]string
	signalPatterns    map[string]SignalPattern
}

// ContextInsights holds the analysis results for one record
type ContextInsights struct {
	DocumentType          string
	Domain                string
	StructureConfidence   float64
	DomainConfidence      float64
	SemanticContext       map[string]float64
	Signals               []Signal
	ConfidenceAdjustments map[string]float64
	MetaInformation       map[string]interface{}
}

// Signal is a record-level pattern that implicates specific validators
type Signal struct {
	Validators []string
	Name       string
	Evidence   string
	Impact     float64
}

// SignalPattern defines a record-level pattern spanning multiple PII types
type SignalPattern struct {
	Name        string
	Validators  []string
	Pattern     *regexp.Regexp
	Impact      float64
	Description string
}

// StructureDetector identifies how a record's text is laid out
type StructureDetector struct {
	patterns map[string]*regexp.Regexp
}

// DomainClassifier identifies the administrative domain of a request
type DomainClassifier struct {
	domainKeywords map[string][]string
}

// NewContextAnalyzer creates a new context analyzer
func NewContextAnalyzer() *ContextAnalyzer {
	return &ContextAnalyzer{
		structureDetector: NewStructureDetector(),
		domainClassifier:  NewDomainClassifier(),
		semanticPatterns:  initSemanticPatterns(),
		signalPatterns:    initSignalPatterns(),
	}
}

// AnalyzeContext analyzes one record's full text
func (ca *ContextAnalyzer) AnalyzeContext(content string, origin string) ContextInsights {
	insights := ContextInsights{
		SemanticContext:       make(map[string]float64),
		ConfidenceAdjustments: make(map[string]float64),
		MetaInformation:       make(map[string]interface{}),
	}

	docType, structureConf := ca.structureDetector.DetectStructure(content, origin)
	insights.DocumentType = docType
	insights.StructureConfidence = structureConf

	domain, domainConf := ca.domainClassifier.ClassifyDomain(content)
	insights.Domain = domain
	insights.DomainConfidence = domainConf

	insights.SemanticContext = ca.analyzeSemanticPatterns(content)
	insights.Signals = ca.detectSignals(content)
	insights.ConfidenceAdjustments = ca.calculateConfidenceAdjustments(insights)
	insights.MetaInformation = ca.extractMetaInformation(content, origin)

	return insights
}

// NewStructureDetector creates a record structure detector
func NewStructureDetector() *StructureDetector {
	patterns := map[string]*regexp.Regexp{
		// "Nome: ..." / "CPF: ..." identification blocks
		"FieldList": regexp.MustCompile(`(?mi)^\s*(nome|cpf|rg|telefone|celular|e-?mail|endereço)\s*:`),
		// Legal petition openers
		"Petition": regexp.MustCompile(`(?i)(venho por meio|com fundamento|nos termos d[ao]|solicito com base)`),
		// Pasted tabular fragments
		"Tabular": regexp.MustCompile(`(?m)^[^;\t]*[;\t][^;\t]*[;\t].*$`),
		// Protocol/system log remnants
		"SystemLog": regexp.MustCompile(`\d{4}-\d{2}-\d{2}[\sT]\d{2}:\d{2}:\d{2}`),
		// Forwarded e-mail headers
		"ForwardedMail": regexp.MustCompile(`(?i)(de:|para:|assunto:|enviado em:)`),
	}

	return &StructureDetector{patterns: patterns}
}

// DetectStructure identifies the record layout type
func (sd *StructureDetector) DetectStructure(content, origin string) (string, float64) {
	sample := content
	if len(content) > 2000 {
		sample = content[:2000]
	}

	lines := strings.Split(sample, "\n")
	if len(lines) == 0 {
		return "Prose", 0.0
	}

	scores := make(map[string]float64)
	for structType, pattern := range sd.patterns {
		matches := 0
		for _, line := range lines {
			if pattern.MatchString(line) {
				matches++
			}
		}
		scores[structType] = float64(matches) / float64(len(lines))
	}

	bestType := "Prose"
	bestScore := 0.0
	for structType, score := range scores {
		if score > bestScore {
			bestScore = score
			bestType = structType
		}
	}

	// Most request bodies are plain prose; only call out a structure when
	// it dominates the sample.
	if bestScore < 0.2 {
		return "Prose", bestScore
	}

	return bestType, bestScore
}

// NewDomainClassifier creates an administrative-domain classifier
func NewDomainClassifier() *DomainClassifier {
	domainKeywords := map[string][]string{
		"Servidores": {
			"servidor", "servidores", "remuneração", "salário", "folha de pagamento",
			"cargo", "lotação", "nomeação", "exoneração", "concurso", "matrícula",
		},
		"Saúde": {
			"saúde", "hospital", "posto de saúde", "sus", "medicamento",
			"paciente", "prontuário", "vacina", "leito", "atendimento médico",
		},
		"Educação": {
			"escola", "educação", "matrícula escolar", "professor", "aluno",
			"merenda", "creche", "universidade", "vestibular", "bolsa",
		},
		"Licitações": {
			"licitação", "pregão", "edital", "contrato", "empenho",
			"fornecedor", "ata de registro", "dispensa", "inexigibilidade",
		},
		"Obras": {
			"obra", "pavimentação", "construção", "reforma", "engenharia",
			"drenagem", "saneamento", "infraestrutura",
		},
		"Tributário": {
			"iptu", "iss", "tributo", "imposto", "taxa", "alvará",
			"dívida ativa", "certidão negativa",
		},
	}

	return &DomainClassifier{domainKeywords: domainKeywords}
}

// ClassifyDomain identifies the administrative domain of the request
func (dc *DomainClassifier) ClassifyDomain(content string) (string, float64) {
	sample := strings.ToLower(content)
	if len(sample) > 5000 {
		sample = sample[:5000]
	}

	domainScores := make(map[string]int)
	totalHits := 0

	for domain, keywords := range dc.domainKeywords {
		for _, keyword := range keywords {
			if strings.Contains(sample, keyword) {
				domainScores[domain]++
				totalHits++
			}
		}
	}

	if totalHits == 0 {
		return "Geral", 0.0
	}

	bestDomain := "Geral"
	bestScore := 0
	for domain, score := range domainScores {
		if score > bestScore {
			bestScore = score
			bestDomain = domain
		}
	}

	confidence := float64(bestScore) / float64(totalHits)
	if confidence < 0.3 {
		return "Geral", confidence
	}

	return bestDomain, confidence
}

func initSemanticPatterns() map[string][]string {
	return map[string][]string{
		// Requester volunteering identification
		"IdentificationBlock": {
			"meu cpf", "meu rg", "meus dados", "dados pessoais",
			"identifico-me", "portador do",
		},
		// Contact details left for the reply
		"ContactBlock": {
			"entrar em contato", "retorno pelo", "responder para",
			"meu telefone", "meu e-mail", "meu email",
		},
		// Legal boilerplate carried by portal templates
		"Boilerplate": {
			"lei de acesso à informação", "lei 12.527", "lei nº 12.527",
			"transparência", "nos termos da lei",
		},
		// Requests made on behalf of someone else
		"ThirdParty": {
			"em nome de", "procuração", "representante legal",
			"na qualidade de",
		},
	}
}

func initSignalPatterns() map[string]SignalPattern {
	patterns := make(map[string]SignalPattern)

	// Name immediately followed by a formatted CPF, the classic signature
	// block of an identified request.
	patterns["SignedRequest"] = SignalPattern{
		Name:        "Signed Request",
		Validators:  []string{"PERSON_NAME", "CPF"},
		Pattern:     regexp.MustCompile(`[A-ZÀ-Ö][a-zà-ö]+(?:\s+(?:da|de|do|das|dos|e|[A-ZÀ-Ö][a-zà-ö]+)){1,6}.{0,40}\d{3}\.\d{3}\.\d{3}-\d{2}`),
		Impact:      15.0,
		Description: "Signature block pairing a name with a formatted CPF",
	}

	// Contact footer pairing an address with a phone.
	patterns["ContactFooter"] = SignalPattern{
		Name:        "Contact Footer",
		Validators:  []string{"EMAIL", "PHONE"},
		Pattern:     regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}.{0,60}\(?\d{2}\)?\s?9?\d{4}-?\d{4}`),
		Impact:      12.0,
		Description: "Reply footer pairing an e-mail with a phone number",
	}

	return patterns
}

// analyzeSemanticPatterns scores each semantic category between 0 and 1
func (ca *ContextAnalyzer) analyzeSemanticPatterns(content string) map[string]float64 {
	results := make(map[string]float64)
	lowerContent := strings.ToLower(content)

	for category, patterns := range ca.semanticPatterns {
		score := 0.0
		for _, pattern := range patterns {
			if strings.Contains(lowerContent, pattern) {
				score += 1.0
			}
		}
		if len(patterns) > 0 {
			results[category] = score / float64(len(patterns))
		}
	}

	return results
}

// detectSignals identifies record-level patterns spanning multiple types
func (ca *ContextAnalyzer) detectSignals(content string) []Signal {
	var signals []Signal

	for _, pattern := range ca.signalPatterns {
		if pattern.Pattern.MatchString(content) {
			signals = append(signals, Signal{
				Validators: pattern.Validators,
				Name:       pattern.Name,
				Evidence:   pattern.Description,
				Impact:     pattern.Impact,
			})
		}
	}

	return signals
}

// calculateConfidenceAdjustments maps insights to per-validator adjustments
func (ca *ContextAnalyzer) calculateConfidenceAdjustments(insights ContextInsights) map[string]float64 {
	adjustments := make(map[string]float64)

	switch insights.DocumentType {
	case "FieldList":
		// Labeled fields are deliberate identification
		adjustments["CPF_boost"] = 10.0
		adjustments["RG_boost"] = 10.0
		adjustments["PHONE_boost"] = 10.0
		adjustments["EMAIL_boost"] = 10.0
	case "SystemLog":
		adjustments["log_penalty"] = -10.0
	case "Tabular":
		adjustments["tabular_boost"] = 5.0
	}

	switch insights.Domain {
	case "Servidores":
		// Requests about public employees routinely name third parties
		adjustments["PERSON_NAME_boost"] = 10.0
		adjustments["CPF_boost"] = adjustments["CPF_boost"] + 5.0
	case "Licitações":
		// Procurement numbers (CNPJ, empenho) masquerade as documents
		adjustments["CPF_penalty"] = -10.0
		adjustments["PHONE_penalty"] = -5.0
	}

	if score, exists := insights.SemanticContext["IdentificationBlock"]; exists && score > 0 {
		adjustments["identification_boost"] = 10.0
	}
	if score, exists := insights.SemanticContext["Boilerplate"]; exists && score > 0.5 {
		adjustments["boilerplate_penalty"] = -5.0
	}

	for _, signal := range insights.Signals {
		for _, validator := range signal.Validators {
			key := validator + "_boost"
			if signal.Impact > adjustments[key] {
				adjustments[key] = signal.Impact
			}
		}
	}

	return adjustments
}

// extractMetaInformation collects record statistics for verbose reporting
func (ca *ContextAnalyzer) extractMetaInformation(content, origin string) map[string]interface{} {
	meta := make(map[string]interface{})

	meta["content_length"] = len(content)
	meta["line_count"] = len(strings.Split(content, "\n"))
	meta["origin"] = origin

	digitCount := 0
	for _, char := range content {
		if char >= '0' && char <= '9' {
			digitCount++
		}
	}
	if len(content) > 0 {
		meta["digit_ratio"] = float64(digitCount) / float64(len(content))
	}

	return meta
}

// GetConfidenceAdjustment returns the adjustment for one validator,
// capped so context never flips an accept/reject decision's severity tier
// on its own.
func (ca *ContextAnalyzer) GetConfidenceAdjustment(insights ContextInsights, validatorName string) float64 {
	adjustment := 0.0

	if boost, exists := insights.ConfidenceAdjustments["identification_boost"]; exists {
		adjustment += boost
	}
	if penalty, exists := insights.ConfidenceAdjustments["boilerplate_penalty"]; exists {
		adjustment += penalty
	}
	if penalty, exists := insights.ConfidenceAdjustments["log_penalty"]; exists {
		adjustment += penalty
	}
	if boost, exists := insights.ConfidenceAdjustments["tabular_boost"]; exists {
		adjustment += boost
	}

	if boost, exists := insights.ConfidenceAdjustments[validatorName+"_boost"]; exists {
		adjustment += boost
	}
	if penalty, exists := insights.ConfidenceAdjustments[validatorName+"_penalty"]; exists {
		adjustment += penalty
	}

	if adjustment > 30 {
		adjustment = 30
	} else if adjustment < -30 {
		adjustment = -30
	}

	return adjustment
}
