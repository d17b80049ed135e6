/*
PURPOSE:
  Runs the interactive simulation for the root command.

REQUIREMENTS:
  User-specified:
  - Each forest name is loaded and simulated in turn.

  Implementation-discovered:
  - Input/output come from the cobra command so tests can script a session.

ARCHITECTURE INTEGRATION:
  - Calls: internal/session.Run()
  - Uses: internal/config, internal/generator

ERROR HANDLING:
  - Only a broken input stream is returned; forest errors are reported
    inside the session.

IMPLEMENTATION RULES:
  - Logic: Config (already loaded) -> Store + Generator -> Session.Run.

USAGE:
  forestry north

RELATED FILES:
  - internal/cli/root.go
  - internal/session/session.go
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/forestry/internal/generator"
	"github.com/daryltucker/forestry/internal/output"
	"github.com/daryltucker/forestry/internal/session"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	store := newStore()
	gen := generator.New(cfg.Generator, nil)

	output.Logger.Info("Starting simulation", "forests", len(args), "data_dir", cfg.DataDir)

	s := session.New(cmd.InOrStdin(), cmd.OutOrStdout(), store, gen)
	return s.Run(args)
}
