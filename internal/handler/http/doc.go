// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the local control API of the client.
//
// Every sync engine operation and the basic ledger operations are exposed
// as JSON endpoints so that an out-of-process user interface can drive the
// client. Tracing, access logging, compression and the optional bearer
// token check are handled here before requests reach the engine.
//
// Failures are answered with a [utils.ErrorResponse] whose kind matches
// the engine's observable error kinds.
package http
