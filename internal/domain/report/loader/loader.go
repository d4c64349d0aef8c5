// Package loader decodes an uploaded file of unknown format into a table.
// It tries an ordered list of decoders (XLSX, legacy XLS, HTML table,
// tab/semicolon/comma delimited text) and returns the first structurally
// plausible result.
package loader

import (
	"errors"
	"fmt"
	"io"

	"github.com/dpereyra/historial-firmante/internal/domain/report/table"
)

// ErrNoTable is returned when no decoder produces a usable table. The caller
// must treat it as terminal: no partial table is ever returned.
var ErrNoTable = errors.New("no decoding strategy produced a table")

// Decoder attempts to decode one specific file format. Each call reads the
// source from offset zero; a failed attempt must not affect later ones.
type Decoder interface {
	Name() string
	Decode(r io.ReadSeeker) (*table.Table, error)
}

// Loader runs decoders in priority order.
type Loader struct {
	decoders     []Decoder
	amountHeader string
}

// New creates a loader with the default strategy chain. amountHeader is the
// expected amount column name, used by decoders that must pick between
// multiple candidate tables.
func New(amountHeader string) *Loader {
	return &Loader{
		amountHeader: amountHeader,
		decoders: []Decoder{
			&xlsxDecoder{},
			&xlsDecoder{},
			&htmlDecoder{amountHeader: amountHeader},
			&delimitedDecoder{name: "tsv", comma: '\t'},
			&delimitedDecoder{name: "csv-semicolon", comma: ';'},
			&delimitedDecoder{name: "csv-comma", comma: ','},
		},
	}
}

// Load rewinds the source and runs each decoder until one yields a table with
// more than one column. Tables with a single column are rejected as
// mis-detected separators and the next strategy is tried.
func (l *Loader) Load(r io.ReadSeeker) (*table.Table, error) {
	var lastErr error
	for _, dec := range l.decoders {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind source for %s: %w", dec.Name(), err)
		}
		tbl, err := dec.Decode(r)
		if err != nil {
			lastErr = err
			continue
		}
		if tbl.NumCols() <= 1 {
			lastErr = fmt.Errorf("%s: degenerate single-column table", dec.Name())
			continue
		}
		return tbl, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTable, lastErr)
	}
	return nil, ErrNoTable
}
