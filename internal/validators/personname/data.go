// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package personname

// Vocabulary sets for name cleaning and structural validation. Loaded once,
// never mutated; every lookup key is lowercased first.

// forbiddenNouns are Portuguese common nouns the recognizer mislabels as
// person names in request text. One forbidden token rejects the whole span.
var forbiddenNouns = map[string]bool{
	"associação":  true,
	"associados":  true,
	"advogados":   true,
	"sociedade":   true,
	"servidores":  true,
	"setor":       true,
	"recursos":    true,
	"coletiva":    true,
	"magistério":  true,
	"telefônicas": true,
	"amostra":     true,
	"total":       true,
	"temperatura": true,
	"fósforo":     true,
	"nitrogênio":  true,
	"oxigênio":    true,
	"validador":   true,
	"sólidos":     true,
	"totais":      true,
	"gostaria":    true,
	"gostar":      true,
	"venho":       true,
}

// nameConnectors are prepositions that legitimately sit lowercase inside a
// Brazilian full name. They are exempt from the capitalization and
// forbidden-noun checks.
var nameConnectors = map[string]bool{
	"da":  true,
	"de":  true,
	"do":  true,
	"das": true,
	"dos": true,
	"e":   true,
}

// honorificTitles are stripped from the edges of a span before validation.
// Bare "senhor"/"senhora" are absent on purpose: alone they are part of a
// formal-address phrase, not a title glued to a name.
var honorificTitles = map[string]bool{
	"dr":       true,
	"dr.":      true,
	"dra":      true,
	"dra.":     true,
	"sr":       true,
	"sr.":      true,
	"sra":      true,
	"sra.":     true,
	"prof":     true,
	"prof.":    true,
	"profª":    true,
	"profª.":   true,
	"doutor":   true,
	"doutora":  true,
	"doutorª":  true,
	"doutorª.": true,
	"doutor.":  true,
	"doutora.": true,
}

// noiseSuffixes are trailing label tokens (compared after trimming ":")
// that leak into a span when a name is immediately followed by a field
// label, as in "Maria da Silva CPF: 123...".
var noiseSuffixes = map[string]bool{
	"cpf":  true,
	"cnh":  true,
	"rg":   true,
	"nome": true,
}

// leadingPronouns reject spans like "Nossa Senhora da Conceição" that are
// devotional or possessive phrases, never requester names.
var leadingPronouns = map[string]bool{
	"nossa": true,
	"nosso": true,
	"suas":  true,
	"seus":  true,
}

// formalAddresses are salutation phrases. A span that merely starts with
// one is discarded whole; these address an office, not a person by name.
var formalAddresses = []string{
	"vossa senhoria",
	"vossa excelência",
	"vossa magnificência",
	"vossa alteza",
	"vossa santidade",

	"v. s.", "v.s.",
	"v. exa.", "v.exa.",
	"v. exª", "v.exª",

	"ilustríssimo senhor",
	"ilustríssima senhora",
	"excelentíssimo senhor",
	"excelentíssima senhora",
	"digníssimo senhor",
	"digníssima senhora",
	"meritíssimo juiz",
	"meritíssima juíza",

	"senhor secretário",
	"senhora secretária",
	"senhor ministro",
	"senhora ministra",
	"senhor governador",
	"senhora governadora",
	"senhor prefeito",
	"senhora prefeita",
	"senhor presidente",
	"senhora presidente",

	"senhor juiz",
	"senhora juíza",
	"senhor desembargador",
	"senhora desembargadora",
	"senhor promotor",
	"senhora promotora",
	"senhor procurador",
	"senhora procuradora",

	"ilustres senhores",
	"ilustres senhoras",
	"vossas senhorias",
	"vossas excelências",
}
