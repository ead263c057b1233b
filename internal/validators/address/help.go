// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package address

import "sic-scan/internal/help"

// GetCheckInfo returns standardized information about the address check
func (v *Validator) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "ADDRESS",
		ShortDescription: "Detects Brazilian street addresses and lot/block designations",
		DetailedDescription: `The ADDRESS check detects residential addresses in request text.

Two patterns feed a single candidate pool: a street pattern (Rua, Avenida,
Travessa, Alameda, Estrada, Rodovia and their abbreviations followed by
free text) and a lot/block pattern (Quadra, Lote, Bloco, Conjunto and
their abbreviations followed by an identifier). Lot/block addressing is
how entire satellite cities are laid out in the Federal District, so it
identifies a household as precisely as a street number does.

A candidate is accepted only when it contains a location keyword (rua,
avenida, av, quadra, lote, bloco) and at least one digit. An address
without a number locates a street, not a person, and is dropped.

A postal code (CEP) on the same line raises confidence and is recorded in
the match metadata, but never decides acceptance by itself.`,

		Patterns: []string{
			"Street: Rua das Flores 123",
			"Abbreviated: Av. Paulista 1000",
			"Lot/block: Quadra 10 Lote 7",
			"Block/unit: Bloco C, Conjunto 4",
		},

		SupportedFormats: []string{
			"Street types: Rua, Avenida, Travessa, Alameda, Estrada, Rodovia",
			"Abbreviations: R., Av., Tv.",
			"Lot/block markers: Qd., Quadra, Lt., Lote, Bloco, BLC, Conjunto, CJ",
			"Accented street names (À-ÿ range)",
		},

		ConfidenceFactors: []help.ConfidenceFactor{
			{Name: "Location Keyword", Description: "Must contain rua, avenida, av, quadra, lote or bloco", Weight: 60},
			{Name: "Has Number", Description: "Must contain at least one digit", Weight: 60},
			{Name: "Reasonable Length", Description: "Must be 8-100 characters after trimming", Weight: 15},
			{Name: "Detailed", Description: "Three or more tokens score higher than a bare marker", Weight: 10},
		},

		PositiveKeywords: v.positiveKeywords,
		NegativeKeywords: v.negativeKeywords,

		Examples: []string{
			"sic-scan --file pedidos.csv --checks ADDRESS",
			"sic-scan --file pedidos.csv --checks ADDRESS --confidence high,medium",
			"sic-scan --file resposta.txt --checks ADDRESS --show-match",
		},
	}
}
