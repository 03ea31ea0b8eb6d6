package cli

import (
	"time"

	"github.com/alexanderramin/brp/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and runtime switches used by CLI commands.
type App struct {
	BRPs service.BRPService

	// AutoSaveDelay is the debounce window of the interactive wizard.
	AutoSaveDelay time.Duration

	// IsInteractive reports whether stdin is a terminal. Prompts are skipped
	// when it is nil or returns false.
	IsInteractive func() bool

	// Now is the clock used for relative timestamps.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

// NewRootCmd creates the top-level "brp" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "brp",
		Short:         "Benefits Realization Plan workflow across seven governance gates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCreateCmd(app),
		newListCmd(app),
		newRecentCmd(app),
		newSearchCmd(app),
		newShowCmd(app),
		newResumeCmd(app),
		newGateCmd(app),
		newItemCmd(app),
		newPackCmd(app),
		newViewCmd(app),
		newHistoryCmd(app),
		newAuditCmd(app),
		newStatsCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newResetCmd(app),
		newSeedCmd(app),
		newWizardCmd(app),
	)

	return root
}
