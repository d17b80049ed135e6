/*
PURPOSE:
  Defines the root Cobra command for the forestry CLI.
  Handles global flags, config loading and logger setup.

REQUIREMENTS:
  User-specified:
  - `forestry NAME...` starts the interactive simulation.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Subcommands (export, stats) share the config and store setup.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/forestry/main.go
  - Calls: Child commands (export, stats), internal/session via run.go
  - Modifies: Global configuration state (loaded in PersistentPreRunE).

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Flag overrides beat environment, which beats the config file.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init() and applyOverrides().

RELATED FILES:
  - cmd/forestry/main.go
  - internal/config/config.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/forestry/internal/config"
	"github.com/daryltucker/forestry/internal/forest"
	"github.com/daryltucker/forestry/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile          string
	dataDirOverride  string
	logLevelOverride string

	// cfg is populated by PersistentPreRunE before any command runs.
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "forestry [forest names...]",
		Short: "Interactive forestry simulation",
		Long: `Loads each named forest from <data-dir>/<name>.db in turn and opens an
interactive menu for it:

  (P)rint, (A)dd, (C)ut, (G)row, (R)eap, (S)ave, (L)oad, (N)ext, e(X)it

(N)ext moves on to the next forest name, e(X)it ends the simulation.`,
		Example: `  # Simulate two saved forests
  forestry north south

  # Keep forest files somewhere else
  forestry --data-dir ./forests north`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadConfig,
		RunE:              runSimulation,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./forestry.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDirOverride, "data-dir", "", "directory holding forest files")
	rootCmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "log level: debug, info, warn, error")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := applyOverrides(c); err != nil {
		return err
	}
	if err := output.Configure(cmd.ErrOrStderr(), c.LogLevel, c.LogFormat); err != nil {
		return err
	}
	cfg = c
	return nil
}

func applyOverrides(c *config.Config) error {
	if dataDirOverride != "" {
		c.DataDir = dataDirOverride
	}
	if logLevelOverride != "" {
		c.LogLevel = logLevelOverride
	}
	return c.Validate()
}

func newStore() *forest.Store {
	return forest.NewStore(cfg.DataDir, cfg.Extension)
}
