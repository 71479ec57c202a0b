// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client assembles the sync engine, the domain stores, the file
// watcher and the local API into one runnable application.
//
// The CLI builds an App for every command. Start resolves the active
// family and switches the engine to it; Serve keeps the process alive with
// the watcher and the API running side by side.
package client
