// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MKhiriev/go-family-sync/internal/crypto"
	"github.com/MKhiriev/go-family-sync/internal/service"
)

var errEmptyPassword = errors.New("password must not be empty")

// readPassword asks for a password on the terminal without echo. When
// stdin is not a terminal one line is read from it instead.
func readPassword(cmd *cobra.Command, prompt string) ([]byte, error) {
	in := cmd.InOrStdin()
	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		if len(pw) == 0 {
			return nil, errEmptyPassword
		}
		return pw, nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, errEmptyPassword
	}
	return []byte(line), nil
}

// unlockPending runs a load operation and, when the file turned out to be
// encrypted, asks for its password and decrypts it.
func (c *cli) unlockPending(cmd *cobra.Command, op func(ctx context.Context) error) error {
	ctx := cmd.Context()
	err := op(ctx)
	if !errors.Is(err, service.ErrPasswordRequired) || !c.app.Engine().State().NeedsPassword {
		return err
	}

	pw, err := readPassword(cmd, "Sync file password: ")
	if err != nil {
		return err
	}
	defer crypto.Wipe(pw)

	return c.app.Engine().DecryptPendingFile(ctx, pw)
}

// withSessionPassword runs a save operation and, when encryption needs a
// password this process does not have yet, asks for it and retries once.
func (c *cli) withSessionPassword(cmd *cobra.Command, op func(ctx context.Context) error) error {
	ctx := cmd.Context()
	err := op(ctx)
	if !errors.Is(err, service.ErrPasswordRequired) {
		return err
	}

	pw, err := readPassword(cmd, "Encryption password: ")
	if err != nil {
		return err
	}
	defer crypto.Wipe(pw)

	if err = c.app.Engine().SetSessionPassword(pw); err != nil {
		return err
	}
	return op(ctx)
}
