/*
PURPOSE:
  Creates random trees for the interactive (A)dd command.

REQUIREMENTS:
  User-specified:
  - Random species, a planting year within the last MaxAgeYears years,
    random height and growth rate.

  Implementation-discovered:
  - Kept out of internal/forest so forest operations stay deterministic.
  - Source and clock are injectable for repeatable tests.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (run.go) through session.TreeSource
  - Uses: internal/config (GeneratorConfig), internal/model

ERROR HANDLING:
  - None. Bounds are validated by config.Validate.

USAGE:
  g := generator.New(cfg.Generator, nil)
  tree := g.Tree()

RELATED FILES:
  - internal/session/session.go
  - internal/config/config.go
*/

package generator

import (
	"math/rand/v2"
	"time"

	"github.com/daryltucker/forestry/internal/config"
	"github.com/daryltucker/forestry/internal/model"
)

// Generator produces random trees within configured bounds.
type Generator struct {
	rand *rand.Rand
	now  func() time.Time

	MaxAgeYears   int
	MaxHeight     float64
	MaxGrowthRate float64
}

// New returns a Generator using src for randomness. A nil src seeds from
// the runtime.
func New(cfg config.GeneratorConfig, src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{
		rand:          rand.New(src),
		now:           time.Now,
		MaxAgeYears:   cfg.MaxAgeYears,
		MaxHeight:     cfg.MaxHeight,
		MaxGrowthRate: cfg.MaxGrowthRate,
	}
}

// WithClock replaces the clock used to pick planting years.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Tree returns a new random tree. Planting year is within MaxAgeYears of
// the current year; height and growth rate are in [0, max).
func (g *Generator) Tree() model.Tree {
	species := model.RandomSpecies(g.rand)
	year := g.now().Year()
	if g.MaxAgeYears > 0 {
		year -= g.rand.IntN(g.MaxAgeYears)
	}
	height := g.rand.Float64() * g.MaxHeight
	rate := g.rand.Float64() * g.MaxGrowthRate
	return model.NewTree(species, year, height, rate)
}
