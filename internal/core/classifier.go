// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"sic-scan/internal/config"
	"sic-scan/internal/detector"
)

// Classify decides the publication verdict for one record's resolved
// mapping. Any value in a strong type makes the record non-public; an
// empty intersection publishes it. There is no middle ground: a record
// that needs human review is a record the classifier got wrong.
func Classify(m *detector.Mapping, strongTypes []detector.PIIType) detector.Verdict {
	for _, t := range strongTypes {
		if len(m.Values(t)) > 0 {
			return detector.VerdictNonPublic
		}
	}
	return detector.VerdictPublic
}

// StrongTypes resolves the strong type set from configuration. A nil
// config, or one without a classification section, treats every type
// as strong.
func StrongTypes(cfg *config.Config) ([]detector.PIIType, error) {
	if cfg == nil || len(cfg.Classification.StrongTypes) == 0 {
		return detector.AllTypes(), nil
	}
	return cfg.Classification.TypeSet()
}
