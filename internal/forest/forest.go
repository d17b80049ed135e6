/*
PURPOSE:
  The Forest: a named, ordered collection of trees and the operations on it.
  Add, cut, grow, reap and print. Persistence lives in store.go.

REQUIREMENTS:
  User-specified:
  - Address trees by index only; insertion order is the only order.
  - Cut by index, reap by height threshold, grow every tree one year.

  Implementation-discovered:
  - CutTree must be safe with any index and report failure instead of panicking.
  - Reap is a stable filter; trees exactly at the threshold survive.

ARCHITECTURE INTEGRATION:
  - Called by: internal/session, internal/cli
  - Uses: internal/model

ERROR HANDLING:
  - No operation here returns an error. CutTree reports failure with false.

IMPLEMENTATION RULES:
  - Single-threaded. No locking; a Forest is owned by one session.
  - No randomness. Random trees come from internal/generator.

USAGE:
  f := forest.New("north")
  f.AddTree(model.NewTree(model.Pine, 2010, 50, 2))
  f.GrowAll()
  f.Reap(40)

SELF-HEALING INSTRUCTIONS:
  - Any new mutation must keep indices dense in [0, Len()).

RELATED FILES:
  - internal/forest/store.go
  - internal/model/types.go

MAINTENANCE:
  - Print() format is display-only and may change.
*/

package forest

import (
	"fmt"
	"iter"

	"github.com/daryltucker/forestry/internal/model"
)

// Forest is a named, ordered sequence of trees.
type Forest struct {
	name  string
	trees []model.Tree
}

// New returns an empty forest.
func New(name string) *Forest {
	return &Forest{name: name}
}

// Name returns the forest name. It also names the saved file.
func (f *Forest) Name() string {
	return f.name
}

// Len returns the number of trees.
func (f *Forest) Len() int {
	return len(f.trees)
}

// Trees returns a copy of the tree sequence.
func (f *Forest) Trees() []model.Tree {
	out := make([]model.Tree, len(f.trees))
	copy(out, f.trees)
	return out
}

// Tree returns the tree at index i.
func (f *Forest) Tree(i int) (model.Tree, bool) {
	if i < 0 || i >= len(f.trees) {
		return model.Tree{}, false
	}
	return f.trees[i], true
}

// AddTree appends t to the end of the forest.
func (f *Forest) AddTree(t model.Tree) {
	f.trees = append(f.trees, t)
}

// CutTree removes the tree at index. Later trees shift down by one.
// It returns false and changes nothing if index is out of range.
func (f *Forest) CutTree(index int) bool {
	if index < 0 || index >= len(f.trees) {
		return false
	}
	f.trees = append(f.trees[:index], f.trees[index+1:]...)
	return true
}

// GrowAll applies one year of growth to every tree.
func (f *Forest) GrowAll() {
	for i := range f.trees {
		f.trees[i] = f.trees[i].ApplyYearlyGrowth()
	}
}

// Reap removes every tree taller than threshold and returns how many went.
func (f *Forest) Reap(threshold float64) int {
	kept := f.trees[:0]
	for _, t := range f.trees {
		if t.Height > threshold {
			continue
		}
		kept = append(kept, t)
	}
	removed := len(f.trees) - len(kept)
	f.trees = kept
	return removed
}

// Print yields one line per tree, prefixed by its index.
func (f *Forest) Print() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i, t := range f.trees {
			if !yield(fmt.Sprintf("%d: %s", i, t)) {
				return
			}
		}
	}
}

// Save writes f with the default store.
func (f *Forest) Save() error {
	return DefaultStore.Save(f)
}

// Load reads the forest called name with the default store.
func Load(name string) (*Forest, error) {
	return DefaultStore.Load(name)
}
