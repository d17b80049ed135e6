/*
PURPOSE:
  Writes a forest's trees to a CSV file for use in spreadsheets.

REQUIREMENTS:
  User-specified:
  - Export a saved forest to CSV.

  Implementation-discovered:
  - The index column matches the index shown by the (P)rint command.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (export command)
  - Consumes: internal/model.Tree

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.

USAGE:
  w, err := output.NewCSVWriter(os.Stdout)
  w.Write(0, tree)

SELF-HEALING INSTRUCTIONS:
  - If CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when Tree struct changes.
*/

package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/daryltucker/forestry/internal/model"
)

// CSVWriter writes trees as CSV rows.
type CSVWriter struct {
	writer *csv.Writer
}

// NewCSVWriter creates a CSVWriter and writes the header row.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)

	header := []string{"index", "species", "planted_year", "height_ft", "growth_rate_ft_yr"}
	if err := cw.Write(header); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}

	return &CSVWriter{writer: cw}, nil
}

// Write writes a single tree row.
func (cw *CSVWriter) Write(index int, t model.Tree) error {
	record := []string{
		strconv.Itoa(index),
		t.Species.String(),
		strconv.Itoa(t.PlantedYear),
		strconv.FormatFloat(t.Height, 'f', -1, 64),
		strconv.FormatFloat(t.GrowthRate, 'f', -1, 64),
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}
