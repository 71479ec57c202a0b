// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-family-sync/internal/capability"
	"github.com/MKhiriev/go-family-sync/internal/client"
	"github.com/MKhiriev/go-family-sync/internal/config"
	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/models"
)

// Command annotations read by the root command.
const (
	// skipApp marks commands that run without opening the local databases.
	skipApp = "skip-app"
	// unattended marks commands that grant file access without asking.
	unattended = "unattended"
)

// cli holds the state shared by the commands of one invocation.
type cli struct {
	app       *client.App
	buildInfo models.AppBuildInfo
	assumeYes bool

	// newLogger is replaced in tests to keep log files out of the build
	// directory.
	newLogger func(level string) *logger.Logger
}

// Execute runs the command line with os.Args and prints the error, if
// any, to stderr.
func Execute(buildInfo models.AppBuildInfo) error {
	root, c := newRootCmd(buildInfo)
	defer func() { _ = c.close() }()

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

func newRootCmd(buildInfo models.AppBuildInfo) (*cobra.Command, *cli) {
	c := &cli{
		buildInfo: buildInfo,
		newLogger: func(level string) *logger.Logger {
			return logger.NewClientLogger("family-sync", level)
		},
	}

	root := &cobra.Command{
		Use:           "family-sync",
		Short:         "Local-first sync for family finance data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipApp] != "" {
				return nil
			}
			return c.open(cmd)
		},
		// Not called when RunE fails; Execute closes the app then.
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}

	config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().BoolVarP(&c.assumeYes, "yes", "y", false, "grant file access without asking")

	root.AddCommand(
		c.versionCmd(),
		c.statusCmd(),
		c.initCmd(),
		c.permissionCmd(),
		c.selectCmd(),
		c.syncCmd(),
		c.conflictsCmd(),
		c.loadCmd(),
		c.openCmd(),
		c.encryptionCmd(),
		c.autoSyncCmd(),
		c.disconnectCmd(),
		c.forgetFamilyCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.serveCmd(),
		c.memberCmd(),
		c.accountCmd(),
		c.transactionCmd(),
	)

	return root, c
}

// open builds the application and switches to the configured family.
func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := config.GetClientConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var prompter capability.Prompter = capability.AutoApprove{}
	if !c.assumeYes && cmd.Annotations[unattended] == "" {
		prompter = capability.NewIOPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	app, err := client.NewApp(cmd.Context(), cfg, client.Options{
		Prompter:  prompter,
		BuildInfo: c.buildInfo,
	}, c.newLogger(cfg.App.LogLevel))
	if err != nil {
		return err
	}
	c.app = app

	if err = app.Start(cmd.Context()); err != nil {
		_ = c.close()
		return err
	}
	return nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipApp: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			printBuildInfo(cmd.OutOrStdout(), c.buildInfo)
			return nil
		},
	}
}
