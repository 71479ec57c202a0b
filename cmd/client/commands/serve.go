// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local API and the file watcher until interrupted",
		Args:  cobra.NoArgs,
		// Nobody is at the terminal to confirm file access.
		Annotations: map[string]string{unattended: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return c.app.Serve(ctx)
		},
	}
	return cmd
}
