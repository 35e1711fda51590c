package cli

import (
	"github.com/RevCBH/datebatch/internal/container"
	"github.com/spf13/cobra"
)

// VersionInfo is stamped into the binary at build time.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Flags
	dryRun bool

	// newLauncher builds the container launcher for a configured runtime.
	// Replaced in tests.
	newLauncher func(runtime string) (container.Launcher, error)

	// notifySignals registers with OS signal handling; off in tests
	notifySignals bool

	versionInfo VersionInfo
}

// New creates a new CLI application
func New() *App {
	app := &App{
		newLauncher:   defaultLauncher,
		notifySignals: true,
	}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "datebatch <batch-file>",
		Short: "Run containers once per date, in sequence",
		Long: `datebatch launches every configured container once for each date in a
batch file, one at a time, passing the date in an environment variable.

Dates come from the literal "dates" list first, then from each entry in
"date_ranges" stepped by "delta". Finished containers beyond "max_stored"
are removed, oldest first. Use --dry-run to print the plan without
launching anything.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.RunBatch(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	a.rootCmd.Flags().BoolVarP(&a.dryRun, "dry-run", "d", false,
		"Print the containers and dates that would run without running them")

	a.rootCmd.AddCommand(NewVersionCmd(a))
}

func defaultLauncher(runtime string) (container.Launcher, error) {
	bin, err := container.ResolveRuntime(runtime)
	if err != nil {
		return nil, err
	}
	return container.NewCLILauncher(bin), nil
}
