package cli

import (
	"fmt"

	"github.com/alexanderramin/brp/internal/cli/formatter"
	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/service"
	"github.com/spf13/cobra"
)

func newCreateCmd(app *App) *cobra.Command {
	var title, projectNumber, kind, status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new BRP at Gate 1",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.CreateRequest{Title: title, ProjectNumber: projectNumber}
			if kind != "" {
				k, ok := matchChoice(programmeChoices, kind)
				if !ok {
					return fmt.Errorf("invalid type %q (Project or Programme)", kind)
				}
				req.ProgrammeType = domain.ProgrammeType(k)
			}
			if status != "" {
				st, ok := domain.ParseStatus(status)
				if !ok {
					return fmt.Errorf("invalid status %q (Draft, In Progress or Complete)", status)
				}
				req.Status = st
			}

			r, err := app.BRPs.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBRPCreated(r))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project name")
	cmd.Flags().StringVar(&projectNumber, "number", "", "Project number")
	cmd.Flags().StringVar(&kind, "type", "", "Project or Programme (default Project)")
	cmd.Flags().StringVar(&status, "status", "", "Initial BRP status (default Draft)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every BRP by ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.BRPs.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No BRPs found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBRPList("BRPs", records, app.now()))
			return nil
		},
	}
}

func newRecentCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently updated BRPs",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.BRPs.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No BRPs found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBRPList("Recent", records, app.now()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum records to show")
	return cmd
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find BRPs by ID, title or project number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.BRPs.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No BRPs match %q.\n", args[0])
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBRPList("Search results", records, app.now()))
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	var gate gateValue
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Open a BRP and show its current gate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBRPID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}
			r, err := app.BRPs.Open(ctx, id)
			if err != nil {
				return err
			}
			g := r.Gate
			if gate != 0 {
				g = int(gate)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBRPAtGate(r, g))
			return nil
		},
	}
	cmd.Flags().Var(&gate, "gate", "Show another gate's data instead of the current one")
	return cmd
}

func newResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Show the last opened BRP",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.BRPs.Resume(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBRP(r))
			return nil
		},
	}
}
