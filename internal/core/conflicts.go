// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"sic-scan/internal/detector"
)

// Conflict records one value dropped from a type's list because a
// higher-priority type had already claimed it.
type Conflict struct {
	Type  detector.PIIType
	Value string
	WonBy detector.PIIType
}

// ResolveConflicts enforces single ownership of canonical values across
// the claiming types. An 11-digit number that passed both the CPF and
// the phone check is a CPF, not a phone number; the walk runs in claim
// order so the strongest interpretation always wins. EMAIL and
// PERSON_NAME values never collide on canonical form and stay out of
// the walk entirely.
//
// The mapping is modified in place. Running the resolver again over an
// already-resolved mapping changes nothing.
func ResolveConflicts(m *detector.Mapping) []Conflict {
	claims := make(map[string]detector.PIIType)
	var conflicts []Conflict

	for _, t := range detector.ClaimOrder() {
		var kept []string
		for _, value := range m.Values(t) {
			if owner, taken := claims[value]; taken {
				conflicts = append(conflicts, Conflict{Type: t, Value: value, WonBy: owner})
				continue
			}
			claims[value] = t
			kept = append(kept, value)
		}
		m.SetValues(t, kept)
	}

	return conflicts
}
