/*
PURPOSE:
  Interactive forestry session. Holds the current forest and runs the
  single-letter menu loop against it.

REQUIREMENTS:
  User-specified:
  - Forest names from the command line are loaded and simulated in turn.
  - Commands: (P)rint, (A)dd, (C)ut, (G)row, (R)eap, (S)ave, (L)oad, (N)ext, e(X)it.
  - A failed load keeps the old forest.

  Implementation-discovered:
  - Input is line based; bad numbers re-prompt instead of aborting.
  - End of input behaves like e(X)it so piped scripts terminate cleanly.
  - e(X)it ends the whole run; (N)ext moves to the next name.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (root command)
  - Uses: internal/forest, internal/model, internal/output

ERROR HANDLING:
  - Forest errors are printed and logged, never fatal.
  - Only a failing input stream ends Run with an error.

IMPLEMENTATION RULES:
  - One command at a time. The current forest is only replaced by a
    successful load.
  - Random trees come from a TreeSource so tests can script them.

USAGE:
  s := session.New(os.Stdin, os.Stdout, store, gen)
  err := s.Run([]string{"north", "south"})

SELF-HEALING INSTRUCTIONS:
  - New commands go in dispatch() and the menu string.

RELATED FILES:
  - internal/forest/forest.go
  - internal/generator/generator.go

MAINTENANCE:
  - Keep user-facing messages stable; scripted tests match on them.
*/

package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/daryltucker/forestry/internal/forest"
	"github.com/daryltucker/forestry/internal/model"
	"github.com/daryltucker/forestry/internal/output"
)

const menu = "(P)rint, (A)dd, (C)ut, (G)row, (R)eap, (S)ave, (L)oad, (N)ext, e(X)it : "

// ErrNoForest reports a command issued while no forest is current.
var ErrNoForest = errors.New("no current forest")

// TreeSource supplies trees for the (A)dd command.
type TreeSource interface {
	Tree() model.Tree
}

// Session is one interactive run over a sequence of forests.
type Session struct {
	in      *bufio.Scanner
	out     io.Writer
	store   *forest.Store
	trees   TreeSource
	current *forest.Forest
}

// New creates a Session reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, store *forest.Store, trees TreeSource) *Session {
	return &Session{
		in:    bufio.NewScanner(in),
		out:   out,
		store: store,
		trees: trees,
	}
}

// Current returns the current forest, if any.
func (s *Session) Current() (*forest.Forest, bool) {
	return s.current, s.current != nil
}

// SetCurrent makes f the current forest. A nil f clears the slot.
func (s *Session) SetCurrent(f *forest.Forest) {
	s.current = f
}

// Load replaces the current forest with the one called name.
// On error the current forest is left as it was.
func (s *Session) Load(name string) error {
	f, err := s.store.Load(name)
	if err != nil {
		return err
	}
	s.current = f
	output.Logger.Info("Current forest replaced", "forest", name, "trees", f.Len())
	return nil
}

// Run loads each named forest and simulates it until (N)ext or e(X)it.
func (s *Session) Run(names []string) error {
	fmt.Fprintln(s.out, "Welcome to the Forestry Simulation")
	fmt.Fprintln(s.out, "----------------------------------")

	for _, name := range names {
		fmt.Fprintf(s.out, "Initializing from %s\n", name)
		if err := s.Load(name); err != nil {
			s.report(err)
			continue
		}

		exit, err := s.Simulate()
		s.current = nil
		if err != nil {
			return err
		}
		if exit {
			break
		}
	}

	fmt.Fprintln(s.out, "Exiting the Forestry Simulation")
	return nil
}

// Simulate runs the menu loop. exit is true when the user chose e(X)it or
// input ran out; false means (N)ext.
func (s *Session) Simulate() (exit bool, err error) {
	for {
		fmt.Fprintln(s.out, menu)
		line, err := s.readLine()
		if err != nil {
			return true, ignoreEOF(err)
		}

		cmd := strings.ToUpper(strings.TrimSpace(line))
		switch cmd {
		case "N":
			return false, nil
		case "X":
			return true, nil
		}

		if err := s.dispatch(cmd); err != nil {
			return true, ignoreEOF(err)
		}
	}
}

// dispatch runs one command. Only input errors are returned; everything
// else is reported to the user.
func (s *Session) dispatch(cmd string) error {
	switch cmd {
	case "L":
		return s.loadForest()
	case "P", "A", "C", "G", "R", "S":
		if s.current == nil {
			s.report(ErrNoForest)
			return nil
		}
	default:
		fmt.Fprintln(s.out, "Invalid menu option, try again")
		return nil
	}

	switch cmd {
	case "P":
		for line := range s.current.Print() {
			fmt.Fprintln(s.out, line)
		}
	case "A":
		s.current.AddTree(s.trees.Tree())
		fmt.Fprintln(s.out, "New random tree added successfully!")
	case "C":
		return s.cutTree()
	case "G":
		s.current.GrowAll()
		output.Logger.Debug("Forest grown", "forest", s.current.Name())
	case "R":
		return s.reapForest()
	case "S":
		s.saveForest()
	}
	return nil
}

func (s *Session) cutTree() error {
	fmt.Fprint(s.out, "Index of tree to cut down? ")
	index, err := s.readInt()
	if err != nil {
		return err
	}

	if index < 0 || index >= s.current.Len() {
		s.report(fmt.Errorf("%w: %d (forest has %d trees)", forest.ErrInvalidIndex, index, s.current.Len()))
		return nil
	}
	if !s.current.CutTree(index) {
		fmt.Fprintf(s.out, "Failed to cut down tree at index %d.\n", index)
		return nil
	}
	fmt.Fprintf(s.out, "Tree at index %d cut down successfully!\n", index)
	return nil
}

func (s *Session) reapForest() error {
	fmt.Fprint(s.out, "Enter the height threshold for reaping: ")
	threshold, err := s.readFloat()
	if err != nil {
		return err
	}

	removed := s.current.Reap(threshold)
	output.Logger.Debug("Forest reaped", "forest", s.current.Name(), "threshold", threshold, "removed", removed)
	fmt.Fprintln(s.out, "Forest reaped successfully!")
	return nil
}

func (s *Session) saveForest() {
	if err := s.store.Save(s.current); err != nil {
		s.report(err)
		return
	}
	fmt.Fprintf(s.out, "Forest %s saved to %s\n", s.current.Name(), s.store.Path(s.current.Name()))
}

func (s *Session) loadForest() error {
	fmt.Fprint(s.out, "Enter the name of the forest to load: ")
	line, err := s.readLine()
	if err != nil {
		return err
	}

	if err := s.Load(strings.TrimSpace(line)); err != nil {
		s.report(err)
		fmt.Fprintln(s.out, "Old forest retained.")
		return nil
	}
	fmt.Fprintln(s.out, "Forest loaded successfully!")
	return nil
}

func (s *Session) report(err error) {
	fmt.Fprintf(s.out, "Error: %v\n", err)
	output.Logger.Info("Command failed", "error", err)
}

func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

func (s *Session) readInt() (int, error) {
	for {
		fmt.Fprint(s.out, "Enter an integer: ")
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(s.out, "Invalid input. ")
	}
}

func (s *Session) readFloat() (float64, error) {
	for {
		fmt.Fprint(s.out, "Enter a number: ")
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err == nil && !math.IsNaN(v) {
			return v, nil
		}
		fmt.Fprintln(s.out, "Invalid input. ")
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
