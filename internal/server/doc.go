// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the local control API.
//
// The server lives as long as the context passed to Run and shuts down
// gracefully when it is cancelled.
package server
