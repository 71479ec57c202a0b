// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/crypto"
)

// stateCmd builds a command that runs op and prints the resulting state.
func (c *cli) stateCmd(use, short string, args cobra.PositionalArgs, op func(cmd *cobra.Command, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := op(cmd, args); err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), c.app.Engine().State())
			return nil
		},
	}
}

func (c *cli) statusCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the sync state of the active family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := c.app.Engine().State()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), state)
			}
			printState(cmd.OutOrStdout(), state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the state as JSON")
	return cmd
}

func (c *cli) initCmd() *cobra.Command {
	return c.stateCmd("init", "Restore the file connection without prompting", cobra.NoArgs,
		func(cmd *cobra.Command, _ []string) error {
			return c.app.Engine().Initialize(cmd.Context())
		})
}

func (c *cli) permissionCmd() *cobra.Command {
	return c.stateCmd("permission", "Grant access to the connected file and load it", cobra.NoArgs,
		func(cmd *cobra.Command, _ []string) error {
			return c.unlockPending(cmd, c.app.Engine().RequestPermission)
		})
}

func (c *cli) selectCmd() *cobra.Command {
	return c.stateCmd("select [path]", "Connect a sync file and write the family data to it", cobra.MaximumNArgs(1),
		func(cmd *cobra.Command, args []string) error {
			return c.withSessionPassword(cmd, func(ctx context.Context) error {
				return c.app.Engine().SelectSyncFile(withPathArg(ctx, args))
			})
		})
}

func (c *cli) syncCmd() *cobra.Command {
	var force bool
	cmd := c.stateCmd("sync", "Write the family data to the connected file", cobra.NoArgs,
		func(cmd *cobra.Command, _ []string) error {
			return c.withSessionPassword(cmd, func(ctx context.Context) error {
				return c.app.Engine().SyncNow(ctx, force)
			})
		})
	cmd.Flags().BoolVar(&force, "force", false, "overwrite a file that changed since the last sync")
	return cmd
}

func (c *cli) conflictsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Compare the sync file with the local data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			check, err := c.app.Engine().CheckForConflicts(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), check)
			}
			printConflict(cmd.OutOrStdout(), check)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func (c *cli) loadCmd() *cobra.Command {
	return c.stateCmd("load", "Replace the local data with the connected file", cobra.NoArgs,
		func(cmd *cobra.Command, _ []string) error {
			return c.unlockPending(cmd, c.app.Engine().LoadFromFile)
		})
}

func (c *cli) openCmd() *cobra.Command {
	return c.stateCmd("open [path]", "Connect an existing sync file and load it", cobra.MaximumNArgs(1),
		func(cmd *cobra.Command, args []string) error {
			return c.unlockPending(cmd, func(ctx context.Context) error {
				return c.app.Engine().LoadFromNewFile(withPathArg(ctx, args))
			})
		})
}

func (c *cli) encryptionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encryption",
		Short: "Turn sync file encryption on or off",
	}

	cmd.AddCommand(
		c.stateCmd("on", "Encrypt the sync file with a password", cobra.NoArgs,
			func(cmd *cobra.Command, _ []string) error {
				pw, err := readPassword(cmd, "New encryption password: ")
				if err != nil {
					return err
				}
				defer crypto.Wipe(pw)
				return c.app.Engine().EnableEncryption(cmd.Context(), pw)
			}),
		c.stateCmd("off", "Write the sync file in plain text", cobra.NoArgs,
			func(cmd *cobra.Command, _ []string) error {
				return c.app.Engine().DisableEncryption(cmd.Context())
			}),
	)
	return cmd
}

func (c *cli) autoSyncCmd() *cobra.Command {
	return c.stateCmd("auto-sync on|off", "Save automatically after every change", cobra.ExactArgs(1),
		func(cmd *cobra.Command, args []string) error {
			enabled, err := parseSwitch(args[0])
			if err != nil {
				return err
			}
			return c.app.Engine().SetAutoSync(cmd.Context(), enabled)
		})
}

func (c *cli) disconnectCmd() *cobra.Command {
	return c.stateCmd("disconnect", "Forget the connected sync file", cobra.NoArgs,
		func(cmd *cobra.Command, _ []string) error {
			return c.app.Engine().Disconnect(cmd.Context())
		})
}

func (c *cli) forgetFamilyCmd() *cobra.Command {
	return c.stateCmd("forget-family [family-id]", "Delete a family's local data and file connection", cobra.MaximumNArgs(1),
		func(cmd *cobra.Command, args []string) error {
			var familyID string
			if len(args) == 1 {
				familyID = args[0]
			}
			return c.app.Engine().ForgetFamily(cmd.Context(), familyID)
		})
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write a sync file to path, or to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSessionPassword(cmd, func(ctx context.Context) error {
				if len(args) == 0 || args[0] == "-" {
					_, err := c.app.Engine().ManualExport(ctx, cmd.OutOrStdout())
					return err
				}
				return exportToFile(ctx, c, cmd.ErrOrStderr(), args[0])
			})
		},
	}
}

// exportToFile writes the export to path. A directory receives the
// suggested file name.
func exportToFile(ctx context.Context, c *cli, log io.Writer, path string) error {
	f, err := os.CreateTemp(tempDirFor(path), ".family-export-*")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	tmpName := f.Name()
	defer func() { _ = os.Remove(tmpName) }()

	name, err := c.app.Engine().ManualExport(ctx, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close export file: %w", closeErr)
	}
	if err != nil {
		return err
	}

	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, name)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	fmt.Fprintf(log, "Exported to %s\n", path)
	return nil
}

func tempDirFor(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

func (c *cli) importCmd() *cobra.Command {
	return c.stateCmd("import <path|->", "Replace the local data with a sync file", cobra.ExactArgs(1),
		func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return c.unlockPending(cmd, func(ctx context.Context) error {
					return c.app.Engine().ManualImport(ctx, cmd.InOrStdin())
				})
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()
			return c.unlockPending(cmd, func(ctx context.Context) error {
				return c.app.Engine().ManualImport(ctx, f)
			})
		})
}

func withPathArg(ctx context.Context, args []string) context.Context {
	if len(args) == 0 || args[0] == "" {
		return ctx
	}
	return capability.WithPath(ctx, args[0])
}

func parseSwitch(s string) (bool, error) {
	switch s {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
