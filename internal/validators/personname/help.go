// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package personname

import "sic-scan/internal/help"

// GetCheckInfo returns standardized information about the person-name check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "PERSON_NAME",
		ShortDescription: "Detects requester names via entity recognition plus Portuguese heuristics",
		DetailedDescription: `The PERSON_NAME check combines a named-entity recognizer with
Brazilian-Portuguese cleaning and validation rules.

The recognizer proposes person spans; each span then passes through a
fixed pipeline before it counts as a name:

1. Spans opening with a formal salutation ("Vossa Excelência",
   "Senhor Secretário", ...) are discarded whole — they address an
   office, never a person by name.
2. Honorific titles (Dr., Dra., Sr., Sra., Prof., Doutor, ...) are
   stripped from both edges.
3. Trailing field labels that leaked into the span ("CPF:", "RG",
   "nome") are dropped from the end.
4. The remainder must look like a Brazilian full name: 2 to 7 tokens,
   every non-connector token capitalized and absent from a
   forbidden-noun list, first token not a possessive pronoun, first and
   last tokens distinct. Connector prepositions (da, de, do, das, dos,
   e) are exempt from the per-token checks.

Spans failing any rule are rejected, not corrected.`,

		Patterns: []string{
			"Plain full names: Maria da Silva",
			"Titled names (title stripped): Dr. João Pereira",
			"Names with trailing labels (label stripped): Ana Souza CPF:",
		},

		SupportedFormats: []string{
			"2-7 token names with accented characters",
			"Connector prepositions da/de/do/das/dos/e anywhere inside the name",
			"Honorific titles at either edge",
		},

		ConfidenceFactors: []help.ConfidenceFactor{
			{Name: "Token Count", Description: "Must have 2-7 tokens after cleaning", Weight: 70},
			{Name: "No Forbidden Noun", Description: "No token may be a known common noun", Weight: 50},
			{Name: "Capitalized", Description: "Non-connector tokens must start uppercase", Weight: 40},
			{Name: "Distinct Ends", Description: "First and last tokens must differ", Weight: 30},
			{Name: "Multiple Surnames", Description: "Three or more tokens score higher", Weight: 10},
		},

		PositiveKeywords: v.positiveKeywords,
		NegativeKeywords: v.negativeKeywords,

		Examples: []string{
			"sic-scan --file pedidos.csv --checks PERSON_NAME",
			"sic-scan --file pedidos.csv --checks PERSON_NAME,CPF --confidence high",
			"sic-scan --file resposta.txt --checks PERSON_NAME --show-match",
		},
	}
}
