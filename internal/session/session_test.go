package session

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daryltucker/forestry/internal/forest"
	"github.com/daryltucker/forestry/internal/model"
)

// scriptedTrees hands out trees in order.
type scriptedTrees struct {
	trees []model.Tree
}

func (s *scriptedTrees) Tree() model.Tree {
	t := s.trees[0]
	s.trees = s.trees[1:]
	return t
}

func newStoreWith(t *testing.T, forests ...*forest.Forest) *forest.Store {
	t.Helper()
	store := forest.NewStore(t.TempDir(), forest.DefaultExtension)
	for _, f := range forests {
		if err := store.Save(f); err != nil {
			t.Fatalf("save %s: %v", f.Name(), err)
		}
	}
	return store
}

func forestOf(name string, trees ...model.Tree) *forest.Forest {
	f := forest.New(name)
	for _, t := range trees {
		f.AddTree(t)
	}
	return f
}

func run(t *testing.T, store *forest.Store, trees TreeSource, script string, names ...string) string {
	t.Helper()
	var out bytes.Buffer
	s := New(strings.NewReader(script), &out, store, trees)
	if err := s.Run(names); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func mustContain(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunNorthScenario(t *testing.T) {
	store := newStoreWith(t, forestOf("north", model.NewTree(model.Pine, 2010, 50, 2)))
	trees := &scriptedTrees{trees: []model.Tree{model.NewTree(model.Oak, 2020, 10, 1)}}

	out := run(t, store, trees, "g\np\na\nc\n0\nr\n5\ns\nx\n", "north")

	mustContain(t, out,
		"Welcome to the Forestry Simulation",
		"Initializing from north",
		"0: PINE",
		"52.00",
		"New random tree added successfully!",
		"Tree at index 0 cut down successfully!",
		"Forest reaped successfully!",
		"Forest north saved to",
		"Exiting the Forestry Simulation",
	)

	saved, err := store.Load("north")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if saved.Name() != "north" || saved.Len() != 0 {
		t.Fatalf("saved forest %q has %d trees", saved.Name(), saved.Len())
	}
}

func TestRunCommandsAreCaseInsensitive(t *testing.T) {
	store := newStoreWith(t, forestOf("north", model.NewTree(model.Pine, 2010, 50, 2)))
	out := run(t, store, nil, " P \nX\n", "north")
	mustContain(t, out, "0: PINE")
}

func TestRunCutInvalidIndex(t *testing.T) {
	store := newStoreWith(t, forestOf("north", model.NewTree(model.Pine, 2010, 50, 2)))
	out := run(t, store, nil, "c\n7\nc\n-1\ns\nx\n", "north")

	mustContain(t, out, "invalid tree index: 7", "invalid tree index: -1")

	saved, err := store.Load("north")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if saved.Len() != 1 {
		t.Fatalf("invalid cut changed forest: %d trees", saved.Len())
	}
}

func TestRunRepromptsOnBadNumbers(t *testing.T) {
	store := newStoreWith(t, forestOf("north",
		model.NewTree(model.Pine, 2010, 50, 2),
		model.NewTree(model.Oak, 2020, 10, 1),
	))
	out := run(t, store, nil, "c\nabc\n1\nr\nten\nNaN\n40\np\nx\n", "north")

	if n := strings.Count(out, "Invalid input."); n != 3 {
		t.Fatalf("expected 3 invalid input messages, got %d:\n%s", n, out)
	}
	mustContain(t, out, "Tree at index 1 cut down successfully!", "Forest reaped successfully!")
	if strings.Contains(out, "0: PINE") {
		t.Fatalf("pine should have been reaped:\n%s", out)
	}
}

func TestRunInvalidMenuOption(t *testing.T) {
	store := newStoreWith(t, forestOf("north"))
	out := run(t, store, nil, "z\nx\n", "north")
	mustContain(t, out, "Invalid menu option, try again")
}

func TestRunLoadFailureRetainsForest(t *testing.T) {
	store := newStoreWith(t, forestOf("north", model.NewTree(model.Pine, 2010, 50, 2)))
	out := run(t, store, nil, "l\nmissing\np\nx\n", "north")

	mustContain(t, out, "forest not found", "Old forest retained.", "0: PINE")
}

func TestRunLoadCorruptFileRetainsForest(t *testing.T) {
	store := newStoreWith(t, forestOf("north", model.NewTree(model.Pine, 2010, 50, 2)))
	if err := os.WriteFile(store.Path("broken"), []byte("not a forest"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := run(t, store, nil, "l\nbroken\np\nl\n../north\np\nx\n", "north")

	mustContain(t, out, "malformed forest file", "invalid forest name", "Old forest retained.")
	if n := strings.Count(out, "0: PINE"); n != 2 {
		t.Fatalf("expected north printed twice, got %d:\n%s", n, out)
	}
}

func TestRunLoadSuccessReplacesForest(t *testing.T) {
	store := newStoreWith(t,
		forestOf("north", model.NewTree(model.Pine, 2010, 50, 2)),
		forestOf("south", model.NewTree(model.Maple, 2015, 12, 3)),
	)
	out := run(t, store, nil, "l\nsouth\np\nx\n", "north")

	mustContain(t, out, "Forest loaded successfully!", "0: MAPLE")
	if strings.Contains(out, "0: PINE") {
		t.Fatalf("north still printed after load:\n%s", out)
	}
}

func TestRunNextAndExit(t *testing.T) {
	store := newStoreWith(t, forestOf("a"), forestOf("b"), forestOf("c"))

	out := run(t, store, nil, "n\nx\n", "a", "b", "c")
	mustContain(t, out, "Initializing from a", "Initializing from b")
	if strings.Contains(out, "Initializing from c") {
		t.Fatalf("exit should stop the run:\n%s", out)
	}

	out = run(t, store, nil, "n\nn\nn\n", "a", "b", "c")
	mustContain(t, out, "Initializing from c", "Exiting the Forestry Simulation")
}

func TestRunSkipsMissingStartupForest(t *testing.T) {
	store := newStoreWith(t, forestOf("north"))
	out := run(t, store, nil, "x\n", "nope", "north")

	mustContain(t, out, "Initializing from nope", "forest not found", "Initializing from north")
}

func TestRunEndOfInputExits(t *testing.T) {
	store := newStoreWith(t, forestOf("a"), forestOf("b"))

	out := run(t, store, nil, "", "a", "b")
	mustContain(t, out, "Exiting the Forestry Simulation")
	if strings.Contains(out, "Initializing from b") {
		t.Fatalf("end of input should stop the run:\n%s", out)
	}

	// Running out of input in the middle of a prompt also ends cleanly.
	out = run(t, store, nil, "c\n", "a")
	mustContain(t, out, "Exiting the Forestry Simulation")
}

func TestRunSaveError(t *testing.T) {
	store := newStoreWith(t, forestOf("north"))
	broken := forest.NewStore(filepath.Join(store.Dir, "missing", "dir"), store.Ext)

	var out bytes.Buffer
	s := New(strings.NewReader("s\nx\n"), &out, broken, nil)
	s.SetCurrent(forestOf("north"))
	if _, err := s.Simulate(); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	mustContain(t, out.String(), "Error: forest file i/o failed")
}

func TestSimulateWithoutForest(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("p\ng\nn\n"), &out, newStoreWith(t), nil)

	exit, err := s.Simulate()
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if exit {
		t.Fatalf("(N)ext should not report exit")
	}
	if n := strings.Count(out.String(), ErrNoForest.Error()); n != 2 {
		t.Fatalf("expected 2 no-forest errors, got %d:\n%s", n, out.String())
	}
}

func TestLoadIsAtomic(t *testing.T) {
	store := newStoreWith(t, forestOf("north", model.NewTree(model.Pine, 2010, 50, 2)))
	s := New(strings.NewReader(""), &bytes.Buffer{}, store, nil)

	if _, ok := s.Current(); ok {
		t.Fatalf("new session should have no forest")
	}
	if err := s.Load("north"); err != nil {
		t.Fatalf("load: %v", err)
	}
	before, _ := s.Current()

	err := s.Load("missing")
	if !errors.Is(err, forest.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	after, ok := s.Current()
	if !ok || after != before {
		t.Fatalf("failed load replaced current forest")
	}

	if err := os.WriteFile(store.Path("broken"), []byte{0x93, 0xa1}, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err = s.Load("broken")
	if !errors.Is(err, forest.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	after, ok = s.Current()
	if !ok || after != before {
		t.Fatalf("corrupt load replaced current forest")
	}
}
