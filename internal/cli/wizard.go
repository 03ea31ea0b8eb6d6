package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/brp/internal/cli/formatter"
	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/service"
	"github.com/alexanderramin/brp/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// brpHuhTheme returns a custom huh theme using the formatter palette.
func brpHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newWizardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard [id]",
		Short: "Walk a BRP through its gates with interactive forms",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("wizard needs an interactive terminal; use `brp gate` instead")
			}
			ctx := cmd.Context()
			id := ""
			if len(args) > 0 {
				var err error
				if id, err = resolveBRPID(ctx, app, args[0]); err != nil {
					return err
				}
			}
			return runWizard(ctx, app, cmd.OutOrStdout(), id)
		},
	}
}

// huhField renders a bound field as the matching huh input.
func huhField(f boundField) huh.Field {
	switch f.Kind {
	case fieldBool:
		return huh.NewConfirm().Title(f.Label).Affirmative("Yes").Negative("No").Value(f.Flag)
	case fieldLongText:
		return huh.NewText().Title(f.Label).Lines(3).Value(f.Text)
	case fieldDate:
		return huh.NewInput().Title(f.Label + " (YYYY-MM-DD)").Placeholder("2025-06-30").Value(f.Text).Validate(validateOptionalDate)
	case fieldChoice:
		opts := []huh.Option[string]{huh.NewOption("(none)", "")}
		for _, c := range f.Choices {
			opts = append(opts, huh.NewOption(c, c))
		}
		return huh.NewSelect[string]().Title(f.Label).Options(opts...).Value(f.Text)
	default:
		return huh.NewInput().Title(f.Label).Value(f.Text)
	}
}

// fieldPages splits fields into consecutive runs sharing a Group. Scalar
// fields form their own page titled after the gate.
func fieldPages(fields []boundField) [][]boundField {
	var pages [][]boundField
	for i, f := range fields {
		if i == 0 || fields[i-1].Group != f.Group {
			pages = append(pages, nil)
		}
		pages[len(pages)-1] = append(pages[len(pages)-1], f)
	}
	return pages
}

func runWizard(ctx context.Context, app *App, out io.Writer, id string) error {
	if id == "" {
		picked, err := pickOrCreate(ctx, app)
		if err != nil || picked == "" {
			return ignoreAbort(err)
		}
		id = picked
	}

	saver := service.NewAutoSaver(ctx, app.BRPs, app.AutoSaveDelay, func(err error) {
		fmt.Fprintf(out, "%s %v\n", formatter.StyleRed.Render("auto-save failed:"), err)
	})
	defer saver.Stop()

	for {
		r, err := app.BRPs.Open(ctx, id)
		if err != nil {
			return err
		}
		def := domain.Gate(r.Gate)
		fmt.Fprintf(out, "\n%s  %s  %s\n%s\n", formatter.Bold(r.Title), formatter.GateBadge(r.Gate),
			formatter.RenderProgress(r.Progress(), 14), formatter.Dim(def.Body))

		gc := workflow.CommandFor(r)
		for _, page := range fieldPages(bindGateFields(&gc, r)) {
			title := page[0].Group
			if title == "" {
				title = def.Name
			}
			fields := make([]huh.Field, 0, len(page))
			for _, f := range page {
				fields = append(fields, huhField(f))
			}
			form := huh.NewForm(huh.NewGroup(fields...).Title(title)).WithTheme(brpHuhTheme())
			if err := form.RunWithContext(ctx); err != nil {
				if ferr := saver.Flush(ctx); ferr != nil {
					return ferr
				}
				return ignoreAbort(err)
			}
			saver.Schedule(id, gc.Clone())
		}

		if err := saver.Flush(ctx); err != nil {
			return err
		}

		action, err := pickGateAction(ctx, r.Gate)
		if err != nil {
			return ignoreAbort(err)
		}
		done, err := runGateAction(ctx, app, out, r, gc, action)
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", formatter.StyleRed.Render("✖"), explainGateError(err))
			continue
		}
		if done {
			return nil
		}
	}
}

func ignoreAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}

func pickOrCreate(ctx context.Context, app *App) (string, error) {
	records, err := app.BRPs.Recent(ctx, 0)
	if err != nil {
		return "", err
	}
	const createNew = "__new__"
	opts := []huh.Option[string]{huh.NewOption("+ Create a new BRP", createNew)}
	for _, r := range records {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s  %s  (G%d, %s)", r.ID, r.Title, r.Gate, r.DeriveStatus()), r.ID))
	}
	choice := createNew
	if len(records) > 0 {
		choice = records[0].ID
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Open a BRP").Options(opts...).Value(&choice),
	)).WithTheme(brpHuhTheme())
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	if choice != createNew {
		return choice, nil
	}

	var title, number, kind string
	kind = string(domain.TypeProject)
	form = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Project name").Value(&title).Validate(requiredText("project name")),
		huh.NewInput().Title("Project number").Value(&number).Validate(requiredText("project number")),
		huh.NewSelect[string]().Title("Type").Options(huh.NewOptions(programmeChoices...)...).Value(&kind),
	).Title("New BRP")).WithTheme(brpHuhTheme())
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	r, err := app.BRPs.Create(ctx, service.CreateRequest{
		Title: title, ProjectNumber: number, ProgrammeType: domain.ProgrammeType(kind),
	})
	if err != nil {
		return "", err
	}
	return r.ID, nil
}

func requiredText(name string) func(string) error {
	return func(s string) error {
		if domain.Blank(s) {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

const (
	actionSave   = "save"
	actionNext   = "next"
	actionBack   = "back"
	actionClose  = "close"
	actionAdd    = "add"
	actionRemove = "remove"
	actionPack   = "pack"
	actionQuit   = "quit"
)

func gateActions(gate int) []huh.Option[string] {
	var opts []huh.Option[string]
	if gate < domain.FinalGate {
		opts = append(opts, huh.NewOption("Next gate →", actionNext))
	} else {
		opts = append(opts, huh.NewOption("Close out", actionClose))
	}
	opts = append(opts, huh.NewOption("Save draft", actionSave))
	if gate > domain.FirstGate {
		opts = append(opts, huh.NewOption("← Previous gate", actionBack))
	}
	if len(editableKinds(gate)) > 0 {
		opts = append(opts, huh.NewOption("Add row", actionAdd), huh.NewOption("Remove row", actionRemove))
	}
	return append(opts, huh.NewOption("Governance pack", actionPack), huh.NewOption("Save and quit", actionQuit))
}

// editableKinds lists the row kinds that can be added or removed at gate.
func editableKinds(gate int) []domain.ItemKind {
	switch gate {
	case 2:
		return []domain.ItemKind{domain.KindOutcome, domain.KindOption, domain.KindBenefit, domain.KindKPI, domain.KindRole}
	case 5:
		return []domain.ItemKind{domain.KindTransition}
	}
	return nil
}

func pickGateAction(ctx context.Context, gate int) (string, error) {
	action := ""
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("What next?").Options(gateActions(gate)...).Value(&action),
	)).WithTheme(brpHuhTheme()).WithShowHelp(false)
	return action, form.RunWithContext(ctx)
}

// runGateAction performs action for r. done reports that the wizard should exit.
func runGateAction(ctx context.Context, app *App, out io.Writer, r *domain.BRP, gc workflow.SaveGateCommand, action string) (bool, error) {
	switch action {
	case actionNext:
		updated, err := app.BRPs.Advance(ctx, r.ID, gc)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(out, formatter.FormatGateMove(updated, r.Gate))
	case actionBack:
		updated, err := app.BRPs.MoveBack(ctx, r.ID, gc)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(out, formatter.FormatGateMove(updated, r.Gate))
	case actionClose:
		status := string(domain.StatusComplete)
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Closeout status").Options(huh.NewOptions(statusChoices...)...).Value(&status),
		)).WithTheme(brpHuhTheme())
		if err := form.RunWithContext(ctx); err != nil {
			return false, err
		}
		gc.Status = domain.Status(status)
		if _, err := app.BRPs.Close(ctx, r.ID, gc); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "Closed %s as %s\n", formatter.Bold(r.ID), formatter.StatusPill(gc.Status))
		return true, nil
	case actionSave, actionQuit:
		if _, err := app.BRPs.Save(ctx, r.ID, gc, domain.ActionSaveDraft); err != nil {
			return false, err
		}
		fmt.Fprintln(out, formatter.FormatGateMove(r, r.Gate))
		return action == actionQuit, nil
	case actionAdd, actionRemove:
		return false, editRows(ctx, app, r, action)
	case actionPack:
		p, err := app.BRPs.Pack(ctx, r.ID, domain.ActionGovernanceView)
		if err != nil {
			return false, err
		}
		viewer := newPackViewer(fmt.Sprintf("%s · %s", p.ID, p.Title), formatter.FormatPack(*p))
		_, err = tea.NewProgram(viewer, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return false, err
	}
	return false, nil
}

func editRows(ctx context.Context, app *App, r *domain.BRP, action string) error {
	kinds := editableKinds(r.Gate)
	opts := make([]huh.Option[string], 0, len(kinds))
	for _, k := range kinds {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%d)", k, itemCount(r, k)), string(k)))
	}
	kind := string(kinds[0])
	fields := []huh.Field{huh.NewSelect[string]().Title("Row type").Options(opts...).Value(&kind)}

	index := "0"
	if action == actionRemove {
		fields = append(fields, huh.NewInput().Title("Row number (from 0)").Value(&index).Validate(func(s string) error {
			if n, err := strconv.Atoi(s); err != nil || n < 0 {
				return fmt.Errorf("enter a row number")
			}
			return nil
		}))
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).WithTheme(brpHuhTheme()).RunWithContext(ctx); err != nil {
		return err
	}

	if action == actionAdd {
		_, err := app.BRPs.AddItem(ctx, r.ID, domain.ItemKind(kind))
		return err
	}
	n, _ := strconv.Atoi(index)
	_, err := app.BRPs.RemoveItem(ctx, r.ID, domain.ItemKind(kind), n)
	return err
}
