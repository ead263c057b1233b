// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rg

import "sic-scan/internal/help"

// GetCheckInfo returns standardized help information for the RG check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "RG",
		ShortDescription: "Detects RG numbers (Brazilian state identity cards)",
		DetailedDescription: `The RG check detects Registro Geral numbers, the state-issued Brazilian
identity card. RG digit runs (7 to 9 digits, optional X check letter) look
like countless other registry numbers, so a candidate is only accepted
when, besides stripping to 7-9 digits, one of its occurrences has a
supporting keyword ("rg", "registro geral", "identidade") inside the 15
characters immediately before it. A single supported occurrence accepts
the value for the whole record.`,
		Patterns: []string{
			"00.000.000-0 (standard punctuation)",
			"000000000 (bare digit run, keyword required)",
			"0.000.000-X (check letter variant)",
		},
		SupportedFormats: []string{
			"Punctuated and unpunctuated RG numbers with optional X check letter",
		},
		ConfidenceFactors: []help.ConfidenceFactor{
			{Name: "Digit Count", Description: "Strips to 7-9 digits", Weight: 70},
			{Name: "Punctuated Format", Description: "Carries RG punctuation", Weight: 15},
			{Name: "Not Repeated", Description: "Not a single repeated digit", Weight: 40},
			{Name: "Context Keywords", Description: "Identity-card terms near the match", Weight: 30},
		},
		PositiveKeywords: []string{
			"rg", "registro geral", "identidade", "órgão expedidor", "ssp",
		},
		NegativeKeywords: []string{
			"cnpj", "processo", "protocolo", "matrícula", "inscrição estadual",
		},
		Examples: []string{
			"sic-scan --file pedidos.csv --checks RG",
			"sic-scan --file pedidos.csv --checks CPF,RG --verbose",
		},
	}
}
