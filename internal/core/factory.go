// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"sic-scan/internal/config"
	"sic-scan/internal/detector"
	"sic-scan/internal/ner"
	"sic-scan/internal/validators/address"
	"sic-scan/internal/validators/cpf"
	"sic-scan/internal/validators/email"
	"sic-scan/internal/validators/personname"
	"sic-scan/internal/validators/phone"
	"sic-scan/internal/validators/rg"
)

// BuildValidatorSet constructs the standard set of validators filtered by the
// enabled checks map. Pass nil for cfg to skip validator-specific configuration.
// Pass nil for profile to skip profile-specific overrides. A nil recognizer
// selects the process-wide NER engine.
func BuildValidatorSet(enabledChecks map[string]bool, cfg *config.Config, profile *config.Profile, recognizer ner.Recognizer) map[string]detector.Validator {
	result := make(map[string]detector.Validator)

	if enabledChecks["CPF"] {
		result["CPF"] = cpf.NewValidator()
	}
	if enabledChecks["RG"] {
		result["RG"] = rg.NewValidator()
	}
	if enabledChecks["EMAIL"] {
		result["EMAIL"] = email.NewValidator()
	}
	if enabledChecks["PHONE"] {
		result["PHONE"] = phone.NewValidator()
	}
	if enabledChecks["ADDRESS"] {
		result["ADDRESS"] = address.NewValidator()
	}
	if enabledChecks["PERSON_NAME"] {
		if recognizer == nil {
			recognizer = ner.Default()
		}
		result["PERSON_NAME"] = personname.NewValidator(recognizer)
	}

	// Apply global config-level validator settings
	if cfg != nil {
		if v, ok := result["ADDRESS"].(*address.Validator); ok {
			v.Configure(cfg)
		}
		if v, ok := result["PERSON_NAME"].(*personname.Validator); ok {
			v.Configure(cfg)
		}
	}

	// Apply profile-level overrides
	if profile != nil && profile.Validators != nil {
		profileCfg := &config.Config{Validators: profile.Validators}
		if v, ok := result["ADDRESS"].(*address.Validator); ok {
			v.Configure(profileCfg)
		}
		if v, ok := result["PERSON_NAME"].(*personname.Validator); ok {
			v.Configure(profileCfg)
		}
	}

	return result
}

// ValidatorsInOrder flattens a validator set into the fixed scan order.
// Workers run the checks sequentially in this order, so the same batch
// always yields the same match sequence.
func ValidatorsInOrder(set map[string]detector.Validator) []detector.Validator {
	var ordered []detector.Validator
	for _, t := range detector.AllTypes() {
		if v, ok := set[string(t)]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered
}
