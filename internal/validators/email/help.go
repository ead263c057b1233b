// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package email

import "sic-scan/internal/help"

// GetCheckInfo returns standardized information about the email check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "EMAIL",
		ShortDescription: "Detects e-mail addresses in request text",
		DetailedDescription: `The EMAIL check detects e-mail addresses using pattern matching.

Unlike the document checks, any text that matches the address pattern is
accepted; there is no extra structural rule. Requesters routinely leave a
contact address inside the free-text body of an access-to-information
request, which is why a plain pattern hit is enough to flag the record.

Confidence scoring separates personal addresses from portal boilerplate:
system senders (no-reply@, nao-responda@) and template addresses
(exemplo@, usuario@) score lower, and institutional .gov.br domains are
annotated in the match metadata so reviewers can triage them quickly.`,

		Patterns: []string{
			"Standard format (e.g., maria.silva@gmail.com)",
			"Subdomains and country TLDs (e.g., joao@aluno.unb.br)",
			"Plus tags and underscores (e.g., pedro+lai@example.org)",
		},

		SupportedFormats: []string{
			"Personal addresses at any provider",
			"Institutional addresses (.gov.br, .leg.br, .edu.br)",
			"Addresses with dots, plus signs, percent and hyphens in the local part",
		},

		ConfidenceFactors: []help.ConfidenceFactor{
			{Name: "Single @", Description: "Address must contain exactly one @", Weight: 50},
			{Name: "Not Template", Description: "Must not be a placeholder like exemplo@ or example.com", Weight: 45},
			{Name: "Not System Sender", Description: "Must not be a no-reply style sender", Weight: 30},
			{Name: "Plausible Domain", Description: "Domain must have at least one dot and a few characters", Weight: 20},
		},

		PositiveKeywords: v.positiveKeywords,
		NegativeKeywords: v.negativeKeywords,

		Examples: []string{
			"sic-scan --file pedidos.csv --checks EMAIL",
			"sic-scan --file pedidos.csv --checks EMAIL --confidence high,medium",
			"sic-scan --file resposta.txt --checks EMAIL --verbose",
		},
	}
}
