/*
PURPOSE:
  Defines the core data structures of the forestry simulation.
  A Tree is one record in a forest; TreeSpecies is the closed set of kinds.

REQUIREMENTS:
  User-specified:
  - Track species, planting year, height and growth rate per tree.
  - Grow a tree by one simulated year.

  Implementation-discovered:
  - Species needs a stable tag for the on-disk record format.
  - Random species selection must take an injected source so tests are repeatable.

ARCHITECTURE INTEGRATION:
  - Used by: internal/forest, internal/generator, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - ParseSpecies returns an error for unknown tags. Nothing else fails.

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - No validation in NewTree. Negative height or growth rate is accepted;
    callers (generator, loader) are responsible for sane values.

USAGE:
  t := model.NewTree(model.Oak, 2020, 10, 1)
  t = t.ApplyYearlyGrowth()

SELF-HEALING INSTRUCTIONS:
  - If a species is added, append it to AllSpecies and the tag table.
    Never reorder or rename existing tags; saved forests depend on them.

RELATED FILES:
  - internal/forest/store.go

MAINTENANCE:
  - Update String() freely; it is not part of the file format.
*/

package model

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// TreeSpecies identifies the kind of a tree.
type TreeSpecies int

const (
	Birch TreeSpecies = iota
	Maple
	Oak
	Pine
)

// AllSpecies lists every member of TreeSpecies.
var AllSpecies = []TreeSpecies{Birch, Maple, Oak, Pine}

var speciesTags = map[TreeSpecies]string{
	Birch: "BIRCH",
	Maple: "MAPLE",
	Oak:   "OAK",
	Pine:  "PINE",
}

// String returns the species tag, e.g. "OAK".
func (s TreeSpecies) String() string {
	if tag, ok := speciesTags[s]; ok {
		return tag
	}
	return fmt.Sprintf("TreeSpecies(%d)", int(s))
}

// Valid reports whether s is a member of AllSpecies.
func (s TreeSpecies) Valid() bool {
	_, ok := speciesTags[s]
	return ok
}

// ParseSpecies maps a tag (case-insensitive) back to its species.
func ParseSpecies(tag string) (TreeSpecies, error) {
	want := strings.ToUpper(strings.TrimSpace(tag))
	for _, s := range AllSpecies {
		if speciesTags[s] == want {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown tree species %q", tag)
}

// MarshalText encodes s as its tag.
func (s TreeSpecies) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid tree species %d", int(s))
	}
	return []byte(speciesTags[s]), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *TreeSpecies) UnmarshalText(text []byte) error {
	parsed, err := ParseSpecies(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// RandomSpecies picks a species uniformly at random.
func RandomSpecies(r *rand.Rand) TreeSpecies {
	return AllSpecies[r.IntN(len(AllSpecies))]
}

// Tree is a single tree in a forest. Height and GrowthRate are in feet.
type Tree struct {
	Species     TreeSpecies `json:"species"`
	PlantedYear int         `json:"planted_year"`
	Height      float64     `json:"height"`
	GrowthRate  float64     `json:"growth_rate"`
}

// NewTree builds a Tree without validating its values.
func NewTree(species TreeSpecies, plantedYear int, height, growthRate float64) Tree {
	return Tree{
		Species:     species,
		PlantedYear: plantedYear,
		Height:      height,
		GrowthRate:  growthRate,
	}
}

// ApplyYearlyGrowth returns t after one year of growth.
func (t Tree) ApplyYearlyGrowth() Tree {
	t.Height += t.GrowthRate
	return t
}

func (t Tree) String() string {
	return fmt.Sprintf("%-5s planted %d  %7.2f' tall  %6.2f'/yr",
		t.Species, t.PlantedYear, t.Height, t.GrowthRate)
}
