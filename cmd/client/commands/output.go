// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-family-sync/models"
)

const notAvailable = "N/A"

func printBuildInfo(w io.Writer, info models.AppBuildInfo) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(info.BuildVersion()))
	fmt.Fprintf(w, "Build date: %s\n", orNA(info.BuildDate()))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(info.BuildCommit()))
}

func printState(w io.Writer, state models.SyncState) {
	fmt.Fprintf(w, "Family:      %s\n", orNA(state.FamilyID))
	fmt.Fprintf(w, "Status:      %s\n", state.Status)
	fmt.Fprintf(w, "Sync file:   %s\n", orNA(state.FileName))
	fmt.Fprintf(w, "Encrypted:   %s\n", yesNo(state.Encrypted))
	fmt.Fprintf(w, "Auto-sync:   %s\n", yesNo(state.AutoSync))
	if state.NeedsPassword {
		fmt.Fprintln(w, "Password:    required")
	}
	if state.LastError != nil {
		fmt.Fprintf(w, "Last error:  %s (%s)\n", state.LastError.Message, state.LastError.Kind)
	}
}

func printConflict(w io.Writer, check models.ConflictCheck) {
	if !check.HasConflict {
		fmt.Fprintln(w, "No conflict")
	} else {
		fmt.Fprintln(w, "Conflict: the sync file is newer than the local data")
	}
	fmt.Fprintf(w, "File timestamp:  %s\n", formatTime(check.FileTimestamp))
	fmt.Fprintf(w, "Local timestamp: %s\n", formatTime(check.LocalTimestamp))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return notAvailable
	}
	return t.UTC().Format(time.RFC3339)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
