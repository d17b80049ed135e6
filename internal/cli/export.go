/*
PURPOSE:
  Defines the 'export' subcommand.
  Dumps a saved forest as CSV or JSON Lines.

REQUIREMENTS:
  User-specified:
  - Get forest data out of the binary .db format.

ARCHITECTURE INTEGRATION:
  - Calls: internal/forest.Store.Load()
  - Uses: internal/output (CSVWriter, JSONWriter)

ERROR HANDLING:
  - Returns load, write and close errors; exit code 1 via main.go.
  - The format is checked before any output file is created.

USAGE:
  forestry export north --format csv -o north.csv
*/

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/daryltucker/forestry/internal/model"
	"github.com/daryltucker/forestry/internal/output"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export NAME",
	Short: "Export a saved forest as CSV or JSON Lines",
	Args:  cobra.ExactArgs(1),
	Example: `  # CSV to stdout
  forestry export north

  # JSON Lines to a file
  forestry export north --format json -o north.jsonl`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if err := checkExportFormat(exportFormat); err != nil {
			return err
		}

		f, err := newStore().Load(args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if exportOutput != "" {
			file, createErr := os.Create(exportOutput)
			if createErr != nil {
				return fmt.Errorf("failed to create output file %s: %w", exportOutput, createErr)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("failed to close output file %s: %w", exportOutput, cerr)
				}
			}()
			w = file
		}

		if err := exportTrees(w, exportFormat, f.Trees()); err != nil {
			return err
		}
		output.Logger.Info("Exported forest", "forest", f.Name(), "trees", f.Len(), "format", exportFormat)
		return nil
	},
}

func checkExportFormat(format string) error {
	switch format {
	case "csv", "json":
		return nil
	}
	return fmt.Errorf("unknown export format %q (want csv or json)", format)
}

type treeWriter interface {
	Write(index int, t model.Tree) error
}

func exportTrees(w io.Writer, format string, trees []model.Tree) error {
	var tw treeWriter
	switch format {
	case "csv":
		cw, err := output.NewCSVWriter(w)
		if err != nil {
			return err
		}
		tw = cw
	case "json":
		tw = output.NewJSONWriter(w)
	default:
		return checkExportFormat(format)
	}

	for i, t := range trees {
		if err := tw.Write(i, t); err != nil {
			return fmt.Errorf("failed to write tree %d: %w", i, err)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
}
