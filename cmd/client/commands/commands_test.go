// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/internal/service"
	"github.com/MKhiriev/go-family-sync/models"
)

// device is one client installation with its own databases.
type device struct {
	t   *testing.T
	dir string
}

func newDevice(t *testing.T) *device {
	return &device{t: t, dir: t.TempDir()}
}

func (d *device) flags() []string {
	return []string{
		"--family-id", "smiths",
		"--cache-db", filepath.Join(d.dir, "cache.db"),
		"--handles-db", filepath.Join(d.dir, "handles.db"),
		"--kdf-iterations", "100000",
		"--yes",
	}
}

// run executes one command line and returns its stdout.
func (d *device) run(stdin string, args ...string) (string, error) {
	d.t.Helper()

	root, c := newRootCmd(models.NewAppBuildInfo("1.2.3", "2026-10-18", "abc123"))
	c.newLogger = func(string) *logger.Logger { return logger.Nop() }
	defer func() { _ = c.close() }()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(d.flags(), args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (d *device) mustRun(stdin string, args ...string) string {
	d.t.Helper()
	out, err := d.run(stdin, args...)
	require.NoError(d.t, err, "family-sync %s", strings.Join(args, " "))
	return out
}

func firstField(out string) string {
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func TestVersion_SkipsDatabases(t *testing.T) {
	d := newDevice(t)

	out := d.mustRun("", "version")

	assert.Contains(t, out, "Build version: 1.2.3")
	assert.Contains(t, out, "Build commit: abc123")
	assert.NoFileExists(t, filepath.Join(d.dir, "cache.db"))
}

func TestPrintBuildInfo_FillsMissingValues(t *testing.T) {
	var buf bytes.Buffer
	printBuildInfo(&buf, models.NewAppBuildInfo("", "", ""))

	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", buf.String())
}

func TestStatus_NewFamily(t *testing.T) {
	d := newDevice(t)

	out := d.mustRun("", "status")

	assert.Contains(t, out, "Family:      smiths")
	assert.Contains(t, out, string(models.StatusNotConfigured))
	assert.Contains(t, out, "Sync file:   N/A")
}

func TestStatus_JSON(t *testing.T) {
	d := newDevice(t)

	out := d.mustRun("", "status", "--json")

	assert.Contains(t, out, `"family_id": "smiths"`)
	assert.Contains(t, out, `"auto_sync": true`)
}

func TestLoad_WithoutConnection(t *testing.T) {
	d := newDevice(t)

	_, err := d.run("", "load")

	require.ErrorIs(t, err, service.ErrNotConfigured)
}

func TestAutoSync_RejectsUnknownValue(t *testing.T) {
	d := newDevice(t)

	_, err := d.run("", "auto-sync", "maybe")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected on or off")
}

func TestLedgerChangesReachSecondDevice(t *testing.T) {
	laptop, phone := newDevice(t), newDevice(t)
	syncFile := filepath.Join(t.TempDir(), "family.json")

	accountID := firstField(laptop.mustRun("", "account", "add", "Checking", "EUR", "--opening", "100"))
	require.NotEmpty(t, accountID)

	out := laptop.mustRun("", "select", syncFile)
	assert.Contains(t, out, "Sync file:   family.json")
	require.FileExists(t, syncFile)

	// "--" keeps the negative amount from being read as a flag.
	laptop.mustRun("", "tx", "add", "-d", "groceries", "--date", "2026-10-01", "--", accountID, "-25.50")

	out = phone.mustRun("", "open", syncFile)
	assert.Contains(t, out, string(models.StatusReady))

	balance := phone.mustRun("", "account", "balance", accountID)
	assert.Equal(t, "74.50", strings.TrimSpace(balance))

	txs := phone.mustRun("", "tx", "list", accountID)
	assert.Contains(t, txs, "2026-10-01")
	assert.Contains(t, txs, "groceries")
}

func TestEncryptedFileNeedsPasswordOnOtherDevice(t *testing.T) {
	laptop, phone := newDevice(t), newDevice(t)
	syncFile := filepath.Join(t.TempDir(), "family.json")

	laptop.mustRun("", "member", "add", "Alice")
	laptop.mustRun("", "select", syncFile)
	out := laptop.mustRun("correct horse\n", "encryption", "on")
	assert.Contains(t, out, "Encrypted:   yes")

	raw, err := os.ReadFile(syncFile)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Alice")

	_, err = phone.run("wrong password\n", "open", syncFile)
	require.ErrorIs(t, err, service.ErrAuthenticationFailed)

	phone.mustRun("correct horse\n", "open", syncFile)
	members := phone.mustRun("", "member", "list")
	assert.Contains(t, members, "Alice")
}

func TestEncryptedSaveAsksForSessionPassword(t *testing.T) {
	d := newDevice(t)
	syncFile := filepath.Join(t.TempDir(), "family.json")

	d.mustRun("", "select", syncFile)
	d.mustRun("secret\n", "encryption", "on")

	// A new process has no session password until one is typed.
	_, err := d.run("", "sync")
	require.Error(t, err)

	out := d.mustRun("secret\n", "sync")
	assert.Contains(t, out, "Encrypted:   yes")
}

func TestExportImportRoundTrip(t *testing.T) {
	d := newDevice(t)

	accountID := firstField(d.mustRun("", "account", "add", "Savings", "USD", "--opening", "10"))
	exported := d.mustRun("", "export")
	require.Contains(t, exported, "smiths")

	other := newDevice(t)
	other.mustRun(exported, "import", "-")

	balance := other.mustRun("", "account", "balance", accountID)
	assert.Equal(t, "10.00", strings.TrimSpace(balance))
}

func TestExportToDirectoryUsesSuggestedName(t *testing.T) {
	d := newDevice(t)
	target := t.TempDir()

	d.mustRun("", "export", target)

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".json"))
}

func TestDisconnectKeepsFile(t *testing.T) {
	d := newDevice(t)
	syncFile := filepath.Join(t.TempDir(), "family.json")

	d.mustRun("", "select", syncFile)
	out := d.mustRun("", "disconnect")

	assert.Contains(t, out, string(models.StatusNotConfigured))
	assert.FileExists(t, syncFile)
}

func TestForgetFamily_DropsLocalData(t *testing.T) {
	d := newDevice(t)
	syncFile := filepath.Join(t.TempDir(), "family.json")

	d.mustRun("", "member", "add", "Ann")
	d.mustRun("", "select", syncFile)

	out := d.mustRun("", "forget-family")
	assert.Contains(t, out, string(models.StatusNotConfigured))
	assert.FileExists(t, syncFile)

	// the next start registers the family again, with nothing cached
	assert.Empty(t, strings.TrimSpace(d.mustRun("", "member", "list")))
	assert.Contains(t, d.mustRun("", "status"), string(models.StatusNotConfigured))
}

func TestConflicts_NoneAfterSave(t *testing.T) {
	d := newDevice(t)
	syncFile := filepath.Join(t.TempDir(), "family.json")

	d.mustRun("", "select", syncFile)
	out := d.mustRun("", "conflicts")

	assert.Contains(t, out, "No conflict")
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{in: "on", want: true},
		{in: "yes", want: true},
		{in: "off", want: false},
		{in: "false", want: false},
		{in: "maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSwitch(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
