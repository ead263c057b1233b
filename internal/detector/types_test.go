// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trims surrounding whitespace",
			input: "  Solicito acesso ao processo.  \n",
			want:  "Solicito acesso ao processo.",
		},
		{
			name:  "replaces non-breaking spaces",
			input: "CPF: 123.456.789-09",
			want:  "CPF: 123.456.789-09",
		},
		{
			name:  "keeps case and accents",
			input: "Maria José, Brasília",
			want:  "Maria José, Brasília",
		},
		{
			name:  "keeps inner newlines",
			input: "linha um\nlinha dois",
			want:  "linha um\nlinha dois",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLineAt(t *testing.T) {
	text := "primeira linha\nsegunda linha\nterceira"

	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"start of text", 0, 1},
		{"middle of first line", 5, 1},
		{"start of second line", 15, 2},
		{"third line", 30, 3},
		{"offset past end is clamped", 1000, 3},
		{"negative offset is clamped", -4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineAt(text, tt.offset); got != tt.want {
				t.Errorf("LineAt(%d) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range AllTypes() {
		got, ok := ParseType(string(typ))
		if !ok || got != typ {
			t.Errorf("ParseType(%q) = %q, %v", string(typ), got, ok)
		}
	}

	if _, ok := ParseType("SSN"); ok {
		t.Error("ParseType accepted a type outside the set")
	}
	if _, ok := ParseType("cpf"); ok {
		t.Error("ParseType should be case-sensitive")
	}
}

func TestClaimOrder_ExcludesEmailAndPersonName(t *testing.T) {
	for _, typ := range ClaimOrder() {
		if typ == TypeEmail || typ == TypePersonName {
			t.Errorf("%s must not participate in conflict resolution", typ)
		}
	}
	if got := ClaimOrder()[0]; got != TypeCPF {
		t.Errorf("highest claim priority = %s, want CPF", got)
	}
}

func TestMapping_AddDeduplicates(t *testing.T) {
	var m Mapping
	m.Add(TypeCPF, "12345678909")
	m.Add(TypeCPF, "12345678909")
	m.Add(TypeCPF, "98765432100")

	if got := m.Values(TypeCPF); len(got) != 2 {
		t.Fatalf("expected 2 values, got %v", got)
	}
	if m.Values(TypeCPF)[0] != "12345678909" {
		t.Error("Add must keep first-seen order")
	}
	if !m.Contains(TypeCPF, "98765432100") {
		t.Error("Contains missed an added value")
	}
	if m.Contains(TypeRG, "12345678909") {
		t.Error("Contains leaked a value across types")
	}
}

func TestMapping_NonEmptyTypes(t *testing.T) {
	var m Mapping
	if !m.IsEmpty() {
		t.Error("zero Mapping should be empty")
	}

	m.Add(TypePersonName, "Maria Silva")
	m.Add(TypeEmail, "maria.silva@example.com")

	types := m.NonEmptyTypes()
	if len(types) != 2 {
		t.Fatalf("expected 2 non-empty types, got %v", types)
	}
	// Presentation order puts EMAIL before PERSON_NAME regardless of
	// insertion order.
	if types[0] != TypeEmail || types[1] != TypePersonName {
		t.Errorf("NonEmptyTypes order = %v", types)
	}
	if m.IsEmpty() {
		t.Error("Mapping with values reported empty")
	}
}

func TestContextExtractor_Boundaries(t *testing.T) {
	text := "Pedido do requerente com CPF 123.456.789-09 anexado ao processo"
	ce := NewContextExtractor().WithContextChars(10)

	start := 29
	end := 43
	info := ce.Extract(text, start, end)

	if len(info.BeforeText) > 10 || len(info.AfterText) > 10 {
		t.Errorf("window exceeded limit: before=%q after=%q", info.BeforeText, info.AfterText)
	}
	if info.FullLine != text {
		t.Errorf("FullLine = %q, want the whole single-line record", info.FullLine)
	}

	// Offsets at the edges of the text must not panic or over-slice.
	head := ce.Extract(text, 0, 6)
	if head.BeforeText != "" {
		t.Errorf("expected empty before-window at text start, got %q", head.BeforeText)
	}
	tail := ce.Extract(text, len(text)-8, len(text))
	if tail.AfterText != "" {
		t.Errorf("expected empty after-window at text end, got %q", tail.AfterText)
	}
}
