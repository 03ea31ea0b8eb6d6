package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/brp/internal/cli/formatter"
	"github.com/alexanderramin/brp/internal/domain"
	"github.com/spf13/cobra"
)

func parseItemKind(s string) (domain.ItemKind, error) {
	k := domain.ItemKind(strings.ToLower(strings.TrimSpace(s)))
	if !domain.ValidItemKinds[k] {
		return "", fmt.Errorf("unknown item kind %q (outcome, option, benefit, kpi, role, transition)", s)
	}
	return k, nil
}

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add, remove or select repeatable rows",
	}
	cmd.AddCommand(newItemAddCmd(app), newItemRemoveCmd(app), newItemSelectCmd(app))
	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "add <kind>",
		Short: "Append an empty row (outcome, option, benefit, kpi, role, transition)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kind, err := parseItemKind(args[0])
			if err != nil {
				return err
			}
			rid, err := resolveBRPID(ctx, app, id)
			if err != nil {
				return err
			}
			r, err := app.BRPs.AddItem(ctx, rid, kind)
			if err != nil {
				return explainItemError(err, kind)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (%d total)\n", kind, formatter.Bold(r.ID), itemCount(r, kind))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "BRP ID (default: last opened)")
	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "remove <kind> <index>",
		Short: "Remove a row by its zero-based index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kind, err := parseItemKind(args[0])
			if err != nil {
				return err
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[1])
			}
			rid, err := resolveBRPID(ctx, app, id)
			if err != nil {
				return err
			}
			r, err := app.BRPs.RemoveItem(ctx, rid, kind, index)
			if err != nil {
				return explainItemError(err, kind)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s #%d from %s (%d left)\n", kind, index, formatter.Bold(r.ID), itemCount(r, kind))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "BRP ID (default: last opened)")
	return cmd
}

func newItemSelectCmd(app *App) *cobra.Command {
	var (
		id       string
		deselect bool
	)
	cmd := &cobra.Command{
		Use:   "select <option-index>",
		Short: "Mark a Gate 2 option as selected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			rid, err := resolveBRPID(ctx, app, id)
			if err != nil {
				return err
			}
			if _, err := app.BRPs.SetOptionSelected(ctx, rid, index, !deselect); err != nil {
				return explainItemError(err, domain.KindOption)
			}
			verb := "Selected"
			if deselect {
				verb = "Deselected"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s option #%d\n", verb, index)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "BRP ID (default: last opened)")
	cmd.Flags().BoolVar(&deselect, "off", false, "Deselect instead")
	return cmd
}

func explainItemError(err error, kind domain.ItemKind) error {
	if errors.Is(err, domain.ErrWrongGate) {
		return fmt.Errorf("%s rows can only be edited at Gate %d; move back with `brp gate back` first: %w",
			kind, kind.Gate(), domain.ErrWrongGate)
	}
	return err
}

func itemCount(r *domain.BRP, kind domain.ItemKind) int {
	switch kind {
	case domain.KindOutcome:
		return len(r.G2.Outcomes)
	case domain.KindOption:
		return len(r.G2.Options)
	case domain.KindBenefit:
		return len(r.G2.Benefits)
	case domain.KindKPI:
		return len(r.G2.KPIs)
	case domain.KindRole:
		return len(r.G2.Roles)
	case domain.KindTransition:
		return len(r.G5.Transitions)
	}
	return 0
}
