/*
PURPOSE:
  Saves and loads forests as flat MessagePack record files (<name>.db).

REQUIREMENTS:
  User-specified:
  - File identity is the forest name plus a fixed extension.
  - Save overwrites. Load either returns a whole forest or an error.
  - Distinguish "not found" and "bad content" from plain I/O failures.

  Implementation-discovered:
  - Values must round-trip bit for bit, so heights are always written as
    float64, never compacted.
  - Strict decoding: wrong array lengths, unknown species and trailing bytes
    are parse errors rather than silently ignored.
  - Tree counts are checked against the bytes left before allocating.
  - Forest names are bare file names; other directories need --data-dir.

ARCHITECTURE INTEGRATION:
  - Called by: internal/forest (Save/Load), internal/session, internal/cli
  - Depends on: github.com/vmihailenco/msgpack/v5

ERROR HANDLING:
  - Every error wraps one of ErrNotFound, ErrParse or ErrIO plus the cause.
  - Names with path separators fail with ErrInvalidName before touching disk.

IMPLEMENTATION RULES:
  - Whole-file read and write. A crash mid-write can leave a truncated file;
    Load then reports ErrParse.

USAGE:
  s := forest.NewStore("./data", ".db")
  err := s.Save(f)
  f, err := s.Load("north")

SELF-HEALING INSTRUCTIONS:
  - If the record layout changes, bump recordFormat. Old files then fail
    with ErrParse instead of decoding garbage.

RELATED FILES:
  - internal/forest/errors.go

MAINTENANCE:
  - Layout: [format, name, [[species, year, height, rate], ...]]
*/

package forest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/daryltucker/forestry/internal/model"
	"github.com/daryltucker/forestry/internal/output"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// DefaultExtension is appended to a forest name to form its file name.
	DefaultExtension = ".db"

	recordFormat = "forestry/1"
	headerFields = 3
	treeFields   = 4
)

// DefaultStore keeps forests in the working directory.
var DefaultStore = NewStore(".", DefaultExtension)

// Store reads and writes forest files in a directory.
type Store struct {
	Dir string
	Ext string
}

// NewStore creates a Store.
func NewStore(dir, ext string) *Store {
	return &Store{Dir: dir, Ext: ext}
}

// Path returns the file path used for the forest called name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name+s.Ext)
}

// ValidateName rejects names that would resolve outside the store
// directory: empty, ".", "..", or anything containing a path separator.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Save writes f to its file, replacing any previous content.
func (s *Store) Save(f *Forest) error {
	if err := ValidateName(f.Name()); err != nil {
		return err
	}
	path := s.Path(f.Name())

	data, err := Encode(f)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrIO, path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	output.Logger.Debug("Forest saved", "forest", f.Name(), "path", path, "trees", f.Len())
	return nil
}

// Load reads the forest called name.
func (s *Store) Load(name string) (*Forest, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	path := s.Path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	// The file name is the forest's identity; the stored name is informational.
	f.name = name

	output.Logger.Debug("Forest loaded", "forest", name, "path", path, "trees", f.Len())
	return f, nil
}

// Encode serializes f into the record layout.
func Encode(f *Forest) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	if err := enc.EncodeArrayLen(headerFields); err != nil {
		return nil, err
	}
	if err := enc.EncodeString(recordFormat); err != nil {
		return nil, err
	}
	if err := enc.EncodeString(f.name); err != nil {
		return nil, err
	}
	if err := enc.EncodeArrayLen(len(f.trees)); err != nil {
		return nil, err
	}
	for i, t := range f.trees {
		if !t.Species.Valid() {
			return nil, fmt.Errorf("tree %d: invalid species %d", i, int(t.Species))
		}
		if err := encodeTree(enc, t); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}

func encodeTree(enc *msgpack.Encoder, t model.Tree) error {
	if err := enc.EncodeArrayLen(treeFields); err != nil {
		return err
	}
	if err := enc.EncodeString(t.Species.String()); err != nil {
		return err
	}
	if err := enc.EncodeInt(int64(t.PlantedYear)); err != nil {
		return err
	}
	if err := enc.EncodeFloat64(t.Height); err != nil {
		return err
	}
	return enc.EncodeFloat64(t.GrowthRate)
}

// Decode parses the record layout written by Encode.
func Decode(data []byte) (*Forest, error) {
	r := bytes.NewReader(data)
	dec := msgpack.NewDecoder(r)

	if err := expectArray(dec, headerFields); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	format, err := dec.DecodeString()
	if err != nil {
		return nil, fmt.Errorf("format tag: %w", err)
	}
	if format != recordFormat {
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	name, err := dec.DecodeString()
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}

	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, fmt.Errorf("tree list: %w", err)
	}
	if n < 0 {
		return nil, errors.New("tree list: nil")
	}
	// Every encoded tree takes at least one byte.
	if n > r.Len() {
		return nil, fmt.Errorf("tree list: %d trees in %d remaining bytes", n, r.Len())
	}

	f := &Forest{name: name, trees: make([]model.Tree, 0, n)}
	for i := 0; i < n; i++ {
		t, err := decodeTree(dec)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		f.trees = append(f.trees, t)
	}

	if r.Len() > 0 {
		return nil, fmt.Errorf("%d trailing bytes", r.Len())
	}
	return f, nil
}

func decodeTree(dec *msgpack.Decoder) (model.Tree, error) {
	if err := expectArray(dec, treeFields); err != nil {
		return model.Tree{}, err
	}
	tag, err := dec.DecodeString()
	if err != nil {
		return model.Tree{}, fmt.Errorf("species: %w", err)
	}
	species, err := model.ParseSpecies(tag)
	if err != nil {
		return model.Tree{}, err
	}
	year, err := dec.DecodeInt()
	if err != nil {
		return model.Tree{}, fmt.Errorf("planted year: %w", err)
	}
	height, err := dec.DecodeFloat64()
	if err != nil {
		return model.Tree{}, fmt.Errorf("height: %w", err)
	}
	rate, err := dec.DecodeFloat64()
	if err != nil {
		return model.Tree{}, fmt.Errorf("growth rate: %w", err)
	}
	return model.NewTree(species, year, height, rate), nil
}

func expectArray(dec *msgpack.Decoder, want int) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != want {
		return fmt.Errorf("expected %d fields, got %d", want, n)
	}
	return nil
}
