// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package capability abstracts the host's file-access grants.
//
// A [FileCapability] is the live, borrowed view of a user-chosen file. It is
// obtained from a [Provider] by opening a persisted models.CapabilityHandle
// and is dropped at the end of every sync operation. Hosts that cannot hand
// out durable file handles use the unavailable adapters, which make the sync
// engine fall back to manual export and import.
package capability
