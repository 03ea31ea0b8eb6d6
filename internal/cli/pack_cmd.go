package cli

import (
	"fmt"

	"github.com/alexanderramin/brp/internal/cli/formatter"
	"github.com/alexanderramin/brp/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPackCmd(app *App) *cobra.Command {
	var print bool
	cmd := &cobra.Command{
		Use:   "pack [id]",
		Short: "Render the governance pack of a BRP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBRPID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}
			action := domain.ActionGovernanceView
			if print {
				action = domain.ActionGovernancePrint
			}
			p, err := app.BRPs.Pack(ctx, id, action)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPack(*p))
			return nil
		},
	}
	cmd.Flags().BoolVar(&print, "print", false, "Record the output as a printed pack")
	return cmd
}

func newViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view [id]",
		Short: "Browse the governance pack in a scrollable full-screen view",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBRPID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}
			p, err := app.BRPs.Pack(ctx, id, domain.ActionGovernanceView)
			if err != nil {
				return err
			}
			content := formatter.FormatPack(*p)
			if !app.interactive() {
				fmt.Fprintln(cmd.OutOrStdout(), content)
				return nil
			}
			viewer := newPackViewer(fmt.Sprintf("%s · %s", p.ID, p.Title), content)
			_, err = tea.NewProgram(viewer, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}
