// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"strings"
	"testing"

	"sic-scan/internal/core"
	"sic-scan/internal/detector"
	"sic-scan/internal/formatters"
	"sic-scan/internal/records"
)

func TestFormatRowsPerFinding(t *testing.T) {
	scan := &core.ScanResult{
		Results: []core.RecordResult{
			{
				Record:  records.Record{ID: "pedidos.csv#row2", Source: "pedidos.csv"},
				Verdict: detector.VerdictNonPublic,
				Matches: []detector.Match{
					{Text: "123.456.789-01", Type: "CPF", Validator: "cpf", Confidence: 95, LineNumber: 1},
					{Text: "(11) 98765-4321", Type: "PHONE", Validator: "phone", Confidence: 80, LineNumber: 2},
				},
			},
			{
				Record:  records.Record{ID: "pedidos.csv#row3", Source: "pedidos.csv"},
				Verdict: detector.VerdictPublic,
			},
		},
		NonPublicCount: 1,
	}

	formatter := NewFormatter()
	output, err := formatter.Format(scan, formatters.FormatterOptions{
		ConfidenceLevel: map[string]bool{"high": true, "medium": true, "low": true},
	})
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	lines := strings.Split(output, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines:\n%s", len(lines), output)
	}
	if !strings.HasPrefix(lines[0], "Record ID,Verdict,Type,") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "pedidos.csv#row2,non-public,CPF,cpf,HIGH,95.0,1,[REDACTED]") {
		t.Errorf("unexpected CPF row: %s", lines[1])
	}
	// Verdict-only row for the clean record
	if !strings.Contains(lines[3], "pedidos.csv#row3,public,,") {
		t.Errorf("missing verdict-only row: %s", lines[3])
	}
}

func TestFormatShowMatchAndEscaping(t *testing.T) {
	scan := &core.ScanResult{
		Results: []core.RecordResult{
			{
				Record:  records.Record{ID: "r1"},
				Verdict: detector.VerdictNonPublic,
				Matches: []detector.Match{
					{Text: "Rua das Flores, 123", Type: "ADDRESS", Validator: "address", Confidence: 70, LineNumber: 1},
					{Text: "=HYPERLINK(evil)", Type: "EMAIL", Validator: "email", Confidence: 95, LineNumber: 2},
				},
			},
		},
		NonPublicCount: 1,
	}

	formatter := NewFormatter()
	output, err := formatter.Format(scan, formatters.FormatterOptions{
		ConfidenceLevel: map[string]bool{"high": true, "medium": true, "low": true},
		ShowMatch:       true,
	})
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	// Comma inside the matched text must be quoted
	if !strings.Contains(output, `"Rua das Flores, 123"`) {
		t.Errorf("comma field not quoted:\n%s", output)
	}
	// Formula prefix must be neutralized
	if !strings.Contains(output, "'=HYPERLINK(evil)") {
		t.Errorf("formula injection not sanitized:\n%s", output)
	}
}
