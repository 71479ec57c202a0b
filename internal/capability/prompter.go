// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package capability

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// AutoApprove grants every request. It is used where the call that reached
// RequestGrant already was the user's explicit action, as with an API call.
type AutoApprove struct{}

func (AutoApprove) Confirm(context.Context, string) (bool, error) {
	return true, nil
}

// IOPrompter asks on a terminal.
type IOPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewIOPrompter(in io.Reader, out io.Writer) *IOPrompter {
	return &IOPrompter{in: bufio.NewReader(in), out: out}
}

// Confirm accepts "y" or "yes" in any case; anything else, including EOF,
// is a refusal.
func (p *IOPrompter) Confirm(ctx context.Context, fileName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := fmt.Fprintf(p.out, "Allow read and write access to %q? [y/N]: ", fileName); err != nil {
		return false, err
	}

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
