// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package context

import "testing"

func TestDetectStructure(t *testing.T) {
	sd := NewStructureDetector()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "labeled identification block",
			content: "Nome: Maria da Silva\nCPF: 123.456.789-09\nTelefone: (61) 99876-5432",
			want:    "FieldList",
		},
		{
			name:    "plain request prose",
			content: "Solicito a lista de escolas reformadas em 2024.",
			want:    "Prose",
		},
		{
			name:    "forwarded mail remnants",
			content: "De: ouvidoria\nPara: requerente\nAssunto: resposta ao pedido",
			want:    "ForwardedMail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := sd.DetectStructure(tt.content, "record-1")
			if got != tt.want {
				t.Errorf("DetectStructure() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyDomain(t *testing.T) {
	dc := NewDomainClassifier()

	domain, confidence := dc.ClassifyDomain("Quero a remuneração dos servidores do cargo de professor")
	if domain != "Servidores" {
		t.Errorf("domain = %q, want Servidores", domain)
	}
	if confidence < 0.3 {
		t.Errorf("confidence = %v, want >= 0.3", confidence)
	}

	domain, confidence = dc.ClassifyDomain("Qual o horário de funcionamento?")
	if domain != "Geral" {
		t.Errorf("domain = %q, want Geral", domain)
	}
	if confidence != 0 {
		t.Errorf("confidence = %v, want 0", confidence)
	}
}

func TestAnalyzeContext_SignedRequestSignal(t *testing.T) {
	ca := NewContextAnalyzer()

	insights := ca.AnalyzeContext("Atenciosamente, Maria da Silva CPF 123.456.789-09", "record-1")

	found := false
	for _, signal := range insights.Signals {
		if signal.Name == "Signed Request" {
			found = true
		}
	}
	if !found {
		t.Fatalf("signals = %+v, want a Signed Request signal", insights.Signals)
	}
	if boost := insights.ConfidenceAdjustments["PERSON_NAME_boost"]; boost != 15 {
		t.Errorf("PERSON_NAME_boost = %v, want 15", boost)
	}
}

func TestGetConfidenceAdjustment_Caps(t *testing.T) {
	ca := NewContextAnalyzer()

	insights := ContextInsights{
		ConfidenceAdjustments: map[string]float64{
			"CPF_boost":            50,
			"identification_boost": 10,
		},
	}
	if got := ca.GetConfidenceAdjustment(insights, "CPF"); got != 30 {
		t.Errorf("adjustment = %v, want capped 30", got)
	}

	insights = ContextInsights{
		ConfidenceAdjustments: map[string]float64{
			"CPF_penalty": -40,
			"log_penalty": -10,
		},
	}
	if got := ca.GetConfidenceAdjustment(insights, "CPF"); got != -30 {
		t.Errorf("adjustment = %v, want capped -30", got)
	}

	if got := ca.GetConfidenceAdjustment(ContextInsights{ConfidenceAdjustments: map[string]float64{}}, "EMAIL"); got != 0 {
		t.Errorf("adjustment = %v, want 0", got)
	}
}
