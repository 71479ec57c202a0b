// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package commands implements the family-sync command line.
//
// Every command except version builds a client.App from flags, environment
// and the optional JSON config, switches to the configured family and
// closes the app when it returns. Encrypted files ask for their password
// on the terminal, or read one line from stdin when it is not a terminal.
package commands
