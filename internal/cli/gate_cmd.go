package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/brp/internal/cli/formatter"
	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// gateValue is a pflag.Value accepting gate numbers 1..7.
type gateValue int

func (g *gateValue) String() string {
	if *g == 0 {
		return ""
	}
	return strconv.Itoa(int(*g))
}

func (g *gateValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < domain.FirstGate || n > domain.FinalGate {
		return fmt.Errorf("gate must be a number from %d to %d", domain.FirstGate, domain.FinalGate)
	}
	*g = gateValue(n)
	return nil
}

func (g *gateValue) Type() string { return "gate" }

// editOpts are the flags shared by every gate-editing command.
type editOpts struct {
	gate gateValue
	set  []string
}

func bindEditFlags(fs *pflag.FlagSet, o *editOpts) {
	fs.Var(&o.gate, "gate", "Expected current gate; refuse to edit a record sitting elsewhere")
	fs.StringArrayVar(&o.set, "set", nil, "Field assignment key=value (repeatable; see `brp gate fields`)")
}

// prepareCommand loads the record, checks the expected gate and applies the
// --set assignments to a command for the current gate.
func prepareCommand(ctx context.Context, app *App, id string, o *editOpts) (*domain.BRP, workflow.SaveGateCommand, error) {
	r, err := app.BRPs.Get(ctx, id)
	if err != nil {
		return nil, workflow.SaveGateCommand{}, err
	}
	if o.gate != 0 && int(o.gate) != r.Gate {
		return nil, workflow.SaveGateCommand{}, fmt.Errorf("BRP %s is at gate %d, not gate %d", r.ID, r.Gate, int(o.gate))
	}
	cmd := workflow.CommandFor(r)
	if err := applyAssignments(bindGateFields(&cmd, r), o.set); err != nil {
		return nil, workflow.SaveGateCommand{}, err
	}
	return r, cmd, nil
}

func newGateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Edit and move a BRP through its gates",
	}
	cmd.AddCommand(
		newGateFieldsCmd(app),
		newGateSaveCmd(app),
		newGateNextCmd(app),
		newGateBackCmd(app),
		newGateCloseCmd(app),
	)
	return cmd
}

func newGateFieldsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fields [id]",
		Short: "List the editable fields of the current gate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBRPID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}
			r, err := app.BRPs.Get(ctx, id)
			if err != nil {
				return err
			}
			gc := workflow.CommandFor(r)
			rows := [][]string{}
			for _, f := range bindGateFields(&gc, r) {
				rows = append(rows, []string{f.Key, formatter.Dim(f.Group), f.Label, formatter.OrDash(f.Value())})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox(
				fmt.Sprintf("%s fields", domain.Gate(r.Gate).Name),
				formatter.RenderTable([]string{"KEY", "ROW", "LABEL", "VALUE"}, rows)))
			return nil
		},
	}
}

func newGateSaveCmd(app *App) *cobra.Command {
	var o editOpts
	cmd := &cobra.Command{
		Use:   "save [id]",
		Short: "Save a draft of the current gate without validation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBRPID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}
			_, gc, err := prepareCommand(ctx, app, id, &o)
			if err != nil {
				return err
			}
			r, err := app.BRPs.Save(ctx, id, gc, domain.ActionSaveDraft)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGateMove(r, r.Gate))
			return nil
		},
	}
	bindEditFlags(cmd.Flags(), &o)
	return cmd
}

func newGateNextCmd(app *App) *cobra.Command {
	var o editOpts
	cmd := &cobra.Command{
		Use:   "next [id]",
		Short: "Validate the current gate and advance to the next one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBRPID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}
			before, gc, err := prepareCommand(ctx, app, id, &o)
			if err != nil {
				return err
			}
			r, err := app.BRPs.Advance(ctx, id, gc)
			if err != nil {
				return explainGateError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGateMove(r, before.Gate))
			return nil
		},
	}
	bindEditFlags(cmd.Flags(), &o)
	return cmd
}

func newGateBackCmd(app *App) *cobra.Command {
	var o editOpts
	cmd := &cobra.Command{
		Use:   "back [id]",
		Short: "Save the current gate and return to the previous one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBRPID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}
			before, gc, err := prepareCommand(ctx, app, id, &o)
			if err != nil {
				return err
			}
			r, err := app.BRPs.MoveBack(ctx, id, gc)
			if err != nil {
				return explainGateError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGateMove(r, before.Gate))
			return nil
		},
	}
	bindEditFlags(cmd.Flags(), &o)
	return cmd
}

func newGateCloseCmd(app *App) *cobra.Command {
	var (
		o      editOpts
		status string
	)
	cmd := &cobra.Command{
		Use:   "close [id]",
		Short: "Close out a BRP at the final gate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBRPID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}
			_, gc, err := prepareCommand(ctx, app, id, &o)
			if err != nil {
				return err
			}
			st, ok := domain.ParseStatus(status)
			if !ok {
				return fmt.Errorf("invalid status %q (Draft, In Progress or Complete)", status)
			}
			gc.Status = st
			r, err := app.BRPs.Close(ctx, id, gc)
			if err != nil {
				return explainGateError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Closed %s as %s\n", formatter.Bold(r.ID), formatter.StatusPill(st))
			return nil
		},
	}
	bindEditFlags(cmd.Flags(), &o)
	cmd.Flags().StringVar(&status, "status", string(domain.StatusComplete), "Closeout status")
	return cmd
}

// explainGateError adds the user-facing reason for navigation refusals.
func explainGateError(err error) error {
	var verr *workflow.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Errorf("cannot continue: %s (field %s)", verr.Message, verr.Field)
	case errors.Is(err, workflow.ErrFinalGate):
		return fmt.Errorf("already at the final gate; use `brp gate close` to close out")
	case errors.Is(err, workflow.ErrFirstGate):
		return fmt.Errorf("already at the first gate")
	case errors.Is(err, workflow.ErrNotFinalGate):
		return fmt.Errorf("close out is only available at Gate %d", domain.FinalGate)
	}
	return err
}
