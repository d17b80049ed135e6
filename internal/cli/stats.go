package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/daryltucker/forestry/internal/forest"
	"github.com/daryltucker/forestry/internal/model"
	"github.com/daryltucker/forestry/internal/output"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats NAME...",
	Short: "Summarize heights and growth rates of saved forests",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		jw := output.NewJSONWriter(cmd.OutOrStdout())

		for _, name := range args {
			f, err := store.Load(name)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				continue
			}

			s := forest.Summarize(f)
			if statsJSON {
				if err := jw.WriteValue(s); err != nil {
					return err
				}
				continue
			}
			writeStats(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

func writeStats(w io.Writer, s forest.Stats) {
	fmt.Fprintf(w, "%s: %d trees\n", s.Name, s.Count)
	if s.Count == 0 {
		return
	}
	fmt.Fprintf(w, "  height       mean %.2f  stddev %.2f  min %.2f  max %.2f\n",
		s.MeanHeight, s.StdDevHeight, s.MinHeight, s.MaxHeight)
	fmt.Fprintf(w, "  growth rate  mean %.2f\n", s.MeanGrowthRate)
	for _, sp := range model.AllSpecies {
		if n := s.BySpecies[sp]; n > 0 {
			fmt.Fprintf(w, "  %-5s %d\n", sp, n)
		}
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print one JSON object per forest")
}
