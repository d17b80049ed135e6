/*
PURPOSE:
  Writes a forest's trees as JSON Lines (one object per tree).

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing.

  Implementation-discovered:
  - JSON Lines keeps each tree independent and greppable.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (export, stats --json)
  - Consumes: internal/model.Tree

ERROR HANDLING:
  - Returns error on write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.

USAGE:
  w := output.NewJSONWriter(os.Stdout)
  w.Write(0, tree)

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/types.go
*/

package output

import (
	"encoding/json"
	"io"

	"github.com/daryltucker/forestry/internal/model"
)

// TreeRecord is the JSON shape of an exported tree.
type TreeRecord struct {
	Index int `json:"index"`
	model.Tree
}

// JSONWriter writes values as JSON lines.
type JSONWriter struct {
	encoder *json.Encoder
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{encoder: json.NewEncoder(w)}
}

// Write writes a single tree as a JSON line.
func (jw *JSONWriter) Write(index int, t model.Tree) error {
	return jw.encoder.Encode(TreeRecord{Index: index, Tree: t})
}

// WriteValue writes any value as a JSON line.
func (jw *JSONWriter) WriteValue(v any) error {
	return jw.encoder.Encode(v)
}
