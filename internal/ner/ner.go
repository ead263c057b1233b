// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ner provides the named-entity recognition capability used by the
// PERSON_NAME validator. The recognizer is a black box behind an interface:
// production uses the prose statistical model, tests inject a fake.
package ner

// Span is one entity occurrence the recognizer reported.
type Span struct {
	Text  string // Surface text of the entity
	Label string // Recognizer category, e.g. PERSON
}

// LabelPerson is the recognizer category for person names.
const LabelPerson = "PERSON"

// Recognizer finds named entities in free text. Implementations must be safe
// for concurrent use; the scanner shares one recognizer across workers.
type Recognizer interface {
	Entities(text string) ([]Span, error)
}

// People filters spans down to person names, preserving order.
func People(spans []Span) []Span {
	var people []Span
	for _, s := range spans {
		if s.Label == LabelPerson {
			people = append(people, s)
		}
	}
	return people
}
