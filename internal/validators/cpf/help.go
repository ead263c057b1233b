// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cpf

import "sic-scan/internal/help"

// GetCheckInfo returns standardized help information for the CPF check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "CPF",
		ShortDescription: "Detects CPF numbers (Brazilian natural-person registry)",
		DetailedDescription: `The CPF check detects Cadastro de Pessoas Físicas numbers, the primary
Brazilian natural-person identifier. Candidates come from an 11-digit
pattern that tolerates the usual 000.000.000-00 punctuation; a candidate
is accepted when it strips to exactly 11 digits. Check digits are not
verified: masked or mistyped IDs in request text are still personal data
and still make a record non-public.`,
		Patterns: []string{
			"000.000.000-00 (standard punctuation)",
			"00000000000 (bare 11-digit run)",
			"000.000.00000 and other partial punctuation",
		},
		SupportedFormats: []string{
			"Punctuated and unpunctuated CPF numbers",
		},
		ConfidenceFactors: []help.ConfidenceFactor{
			{Name: "Digit Count", Description: "Strips to exactly 11 digits", Weight: 70},
			{Name: "Standard Format", Description: "Matches 000.000.000-00 punctuation", Weight: 10},
			{Name: "Not Repeated", Description: "Not a single repeated digit (placeholder)", Weight: 40},
			{Name: "Not Sequential", Description: "Not an ascending/descending digit run", Weight: 30},
			{Name: "Context Keywords", Description: "CPF-related terms near the match", Weight: 30},
		},
		PositiveKeywords: []string{
			"cpf", "cadastro de pessoa física", "documento", "portador", "titular",
		},
		NegativeKeywords: []string{
			"cnpj", "protocolo", "processo", "nup", "nota fiscal",
		},
		Examples: []string{
			"sic-scan --file pedidos.csv --checks CPF",
			"sic-scan --file pedidos.csv --checks CPF --confidence high --show-match",
		},
	}
}
