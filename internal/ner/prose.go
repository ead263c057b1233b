// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ner

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseRecognizer runs the prose statistical NER model. Each Entities call
// builds a fresh document, so the recognizer itself carries no mutable state
// and is safe for concurrent use.
type ProseRecognizer struct{}

// NewProseRecognizer returns a recognizer backed by the prose model.
// Model data loads on the first document; wrap construction in Lazy when the
// load cost should be deferred until a record actually needs names.
func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

// Entities tokenizes, tags and extracts entities from text.
func (r *ProseRecognizer) Entities(text string) ([]Span, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("ner: building document: %w", err)
	}

	ents := doc.Entities()
	spans := make([]Span, 0, len(ents))
	for _, ent := range ents {
		spans = append(spans, Span{Text: ent.Text, Label: ent.Label})
	}
	return spans, nil
}
