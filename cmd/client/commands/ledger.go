// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-family-sync/models"
)

const dateLayout = "2006-01-02"

// flush writes a change to the sync file right away. The debounced
// auto-save would never fire in a process that exits after one command.
func (c *cli) flush(cmd *cobra.Command) error {
	state := c.app.Engine().State()
	if !state.IsConfigured || !state.AutoSync || state.Status != models.StatusReady {
		return nil
	}
	return c.withSessionPassword(cmd, func(ctx context.Context) error {
		return c.app.Engine().SyncNow(ctx, false)
	})
}

func (c *cli) memberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage family members",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a family member",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := c.app.Ledger().AddMember(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.ID, m.Name)
				return c.flush(cmd)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List family members",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				members, err := c.app.Ledger().Members()
				if err != nil {
					return err
				}
				for _, m := range members {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.ID, m.Name)
				}
				return nil
			},
		},
	)
	return cmd
}

func (c *cli) accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	var opening string
	add := &cobra.Command{
		Use:   "add <name> <currency>",
		Short: "Open an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(opening)
			if err != nil {
				return fmt.Errorf("invalid opening balance %q: %w", opening, err)
			}
			a, err := c.app.Ledger().AddAccount(cmd.Context(), args[0], args[1], amount)
			if err != nil {
				return err
			}
			printAccount(cmd, a)
			return c.flush(cmd)
		},
	}
	add.Flags().StringVar(&opening, "opening", "0", "opening balance")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "list",
			Short: "List accounts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				accounts, err := c.app.Ledger().Accounts()
				if err != nil {
					return err
				}
				for _, a := range accounts {
					printAccount(cmd, a)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "balance <account-id>",
			Short: "Print the current balance of an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				balance, err := c.app.Ledger().Balance(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), balance.StringFixed(2))
				return nil
			},
		},
	)
	return cmd
}

func printAccount(cmd *cobra.Command, a models.Account) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Currency, a.OpeningBalance.StringFixed(2))
}

func (c *cli) transactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Record and list transactions",
	}

	var (
		memberID    string
		description string
		date        string
	)
	add := &cobra.Command{
		Use:   "add <account-id> <amount>",
		Short: "Record a transaction; a negative amount is an expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			tx := models.Transaction{
				AccountID:   args[0],
				MemberID:    memberID,
				Amount:      amount,
				Description: description,
			}
			if date != "" {
				if tx.Date, err = time.Parse(dateLayout, date); err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
			}

			tx, err = c.app.Ledger().AddTransaction(cmd.Context(), tx)
			if err != nil {
				return err
			}
			printTransaction(cmd, tx)
			return c.flush(cmd)
		},
	}
	add.Flags().StringVar(&memberID, "member", "", "member who made the transaction")
	add.Flags().StringVarP(&description, "description", "d", "", "free-form description")
	add.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD), today by default")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "list <account-id>",
			Short: "List the transactions of an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				txs, err := c.app.Ledger().Transactions(args[0])
				if err != nil {
					return err
				}
				for _, tx := range txs {
					printTransaction(cmd, tx)
				}
				return nil
			},
		},
	)
	return cmd
}

func printTransaction(cmd *cobra.Command, tx models.Transaction) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", tx.ID, tx.Date.Format(dateLayout), tx.Amount.StringFixed(2), tx.Description)
}
