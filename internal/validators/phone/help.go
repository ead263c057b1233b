// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import "sic-scan/internal/help"

// GetCheckInfo returns standardized information about the phone check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "PHONE",
		ShortDescription: "Detects Brazilian phone numbers with DDD area-code validation",
		DetailedDescription: `The PHONE check detects Brazilian landline and mobile numbers.

A candidate is accepted only when its digit string is 10 digits (landline)
or 11 digits (mobile with the leading 9) and the first two digits form a
valid DDD area code in the 11-99 range. Digit runs that merely look
phone-shaped — protocol numbers, NUP identifiers, budget codes — fail one
of the two gates and are dropped before reporting.

Punctuation is ignored for validation: "(61) 99876-5432", "61 99876 5432"
and "61998765432" all normalize to the same digit string and are reported
once per record.`,

		Patterns: []string{
			"Mobile with area code: (61) 99876-5432",
			"Landline with area code: 61 3315-5000",
			"Bare digit runs: 61998765432",
			"Country prefix tolerated: +55 61 99876-5432",
		},

		SupportedFormats: []string{
			"Landline (10 digits, DDD + 8)",
			"Mobile (11 digits, DDD + 9 + 8)",
			"Optional parentheses around the DDD",
			"Optional hyphen in the subscriber number",
		},

		ConfidenceFactors: []help.ConfidenceFactor{
			{Name: "Digit Count", Description: "Must have exactly 10 or 11 digits", Weight: 70},
			{Name: "Area Code", Description: "First two digits must be a DDD in 11-99", Weight: 60},
			{Name: "Not Repeated", Description: "Subscriber digits must not all be the same", Weight: 40},
			{Name: "Mobile Prefix", Description: "11-digit numbers must start the subscriber with 9", Weight: 25},
			{Name: "Formatted", Description: "Punctuated numbers score higher than bare digit runs", Weight: 10},
		},

		PositiveKeywords: v.positiveKeywords,
		NegativeKeywords: v.negativeKeywords,

		Examples: []string{
			"sic-scan --file pedidos.csv --checks PHONE",
			"sic-scan --file pedidos.csv --checks PHONE --confidence high",
			"sic-scan --file resposta.txt --checks PHONE --verbose",
		},
	}
}
