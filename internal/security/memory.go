// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package security

// SecureString holds a sensitive value (a matched CPF, a name) in a mutable
// byte slice so Clear can overwrite it. Go's runtime may still copy or move
// memory, and every String() call produces an immutable copy, so this narrows
// the exposure window rather than guaranteeing erasure.
type SecureString struct {
	data []byte
}

// NewSecureString copies s into a freshly allocated mutable buffer.
func NewSecureString(s string) *SecureString {
	data := make([]byte, len(s))
	copy(data, s)
	return &SecureString{data: data}
}

// String returns the value. Each call allocates an immutable copy that Clear
// cannot reach, so call it sparingly.
func (ss *SecureString) String() string {
	return string(ss.data)
}

// Clear zeroes the internal buffer and drops it. Safe to call repeatedly.
func (ss *SecureString) Clear() {
	if ss.data != nil {
		for i := range ss.data {
			ss.data[i] = 0
		}
		ss.data = nil
	}
}

// WipeBytes zeroes a byte slice in place. Record sources use it to scrub
// raw buffers once records have been extracted.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
