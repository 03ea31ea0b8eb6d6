package cli

import (
	"fmt"

	"github.com/alexanderramin/brp/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history [id]",
		Short: "Show the event history of a BRP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBRPID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}
			events, err := app.BRPs.History(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(id, events, app.now()))
			return nil
		},
	}
}

func newAuditCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the portfolio-wide audit trail",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.BRPs.Audit(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAudit(events))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum events to show (0 for all)")
	return cmd
}
