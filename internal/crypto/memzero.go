// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "crypto/subtle"

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
}
