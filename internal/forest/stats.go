/*
PURPOSE:
  Summarizes a forest: tree count, height spread, mean growth rate and
  trees per species. Backs the 'stats' subcommand.

REQUIREMENTS:
  User-specified:
  - Quick overview of saved forests without opening the menu.

  Implementation-discovered:
  - An empty forest must not reach gonum (floats.Min/Max panic on empty input).
  - Standard deviation needs at least two trees.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (stats.go)
  - Depends on: gonum.org/v1/gonum/stat, gonum.org/v1/gonum/floats

ERROR HANDLING:
  - None. Summarize cannot fail.

USAGE:
  s := forest.Summarize(f)

RELATED FILES:
  - internal/cli/stats.go
*/

package forest

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/daryltucker/forestry/internal/model"
)

// Stats summarizes the heights and growth rates of a forest.
type Stats struct {
	Name           string                    `json:"name"`
	Count          int                       `json:"count"`
	MeanHeight     float64                   `json:"mean_height"`
	StdDevHeight   float64                   `json:"stddev_height"`
	MinHeight      float64                   `json:"min_height"`
	MaxHeight      float64                   `json:"max_height"`
	MeanGrowthRate float64                   `json:"mean_growth_rate"`
	BySpecies      map[model.TreeSpecies]int `json:"by_species"`
}

// Summarize computes Stats for f. An empty forest yields zero values.
func Summarize(f *Forest) Stats {
	s := Stats{
		Name:      f.name,
		Count:     len(f.trees),
		BySpecies: make(map[model.TreeSpecies]int),
	}
	if s.Count == 0 {
		return s
	}

	heights := make([]float64, s.Count)
	rates := make([]float64, s.Count)
	for i, t := range f.trees {
		heights[i] = t.Height
		rates[i] = t.GrowthRate
		s.BySpecies[t.Species]++
	}

	s.MeanHeight = stat.Mean(heights, nil)
	if s.Count > 1 {
		s.StdDevHeight = stat.StdDev(heights, nil)
	}
	s.MinHeight = floats.Min(heights)
	s.MaxHeight = floats.Max(heights)
	s.MeanGrowthRate = stat.Mean(rates, nil)
	return s
}
