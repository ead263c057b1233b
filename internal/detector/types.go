// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

// PIIType identifies one of the personal-data categories sic-scan detects.
// The set is closed: records map to exactly these six types.
type PIIType string

const (
	TypeCPF        PIIType = "CPF"
	TypeRG         PIIType = "RG"
	TypeEmail      PIIType = "EMAIL"
	TypePhone      PIIType = "PHONE"
	TypeAddress    PIIType = "ADDRESS"
	TypePersonName PIIType = "PERSON_NAME"
)

// AllTypes returns the full type set in presentation order.
func AllTypes() []PIIType {
	return []PIIType{TypeCPF, TypeRG, TypeEmail, TypePhone, TypeAddress, TypePersonName}
}

// ClaimOrder returns the types that participate in cross-type conflict
// resolution, highest priority first. EMAIL and PERSON_NAME never claim.
func ClaimOrder() []PIIType {
	return []PIIType{TypeCPF, TypeRG, TypePhone, TypeAddress}
}

// ParseType maps a check name to its PIIType.
func ParseType(name string) (PIIType, bool) {
	switch PIIType(name) {
	case TypeCPF, TypeRG, TypeEmail, TypePhone, TypeAddress, TypePersonName:
		return PIIType(name), true
	}
	return "", false
}

// Mapping holds the validated values of one record, one list per type.
// The shape is fixed so the closed type set is a compile-time property;
// lists keep first-seen order and never repeat a value.
type Mapping struct {
	CPF        []string `json:"cpf"`
	RG         []string `json:"rg"`
	Email      []string `json:"email"`
	Phone      []string `json:"phone"`
	Address    []string `json:"address"`
	PersonName []string `json:"person_name"`
}

// Values returns the list for one type.
func (m *Mapping) Values(t PIIType) []string {
	switch t {
	case TypeCPF:
		return m.CPF
	case TypeRG:
		return m.RG
	case TypeEmail:
		return m.Email
	case TypePhone:
		return m.Phone
	case TypeAddress:
		return m.Address
	case TypePersonName:
		return m.PersonName
	}
	return nil
}

// SetValues replaces the list for one type.
func (m *Mapping) SetValues(t PIIType, values []string) {
	switch t {
	case TypeCPF:
		m.CPF = values
	case TypeRG:
		m.RG = values
	case TypeEmail:
		m.Email = values
	case TypePhone:
		m.Phone = values
	case TypeAddress:
		m.Address = values
	case TypePersonName:
		m.PersonName = values
	}
}

// Add appends a value to a type's list unless it is already present.
func (m *Mapping) Add(t PIIType, value string) {
	for _, v := range m.Values(t) {
		if v == value {
			return
		}
	}
	m.SetValues(t, append(m.Values(t), value))
}

// Contains reports whether the type's list already holds the value.
func (m *Mapping) Contains(t PIIType, value string) bool {
	for _, v := range m.Values(t) {
		if v == value {
			return true
		}
	}
	return false
}

// NonEmptyTypes returns the types that hold at least one value, in
// presentation order.
func (m *Mapping) NonEmptyTypes() []PIIType {
	var types []PIIType
	for _, t := range AllTypes() {
		if len(m.Values(t)) > 0 {
			types = append(types, t)
		}
	}
	return types
}

// IsEmpty reports whether no type holds any value.
func (m *Mapping) IsEmpty() bool {
	return len(m.NonEmptyTypes()) == 0
}

// Verdict is the publication decision for one record.
type Verdict string

const (
	VerdictPublic    Verdict = "public"
	VerdictNonPublic Verdict = "non-public"
)
