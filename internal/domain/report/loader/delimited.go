package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dpereyra/historial-firmante/internal/domain/report/table"
)

// delimitedDecoder reads separator-delimited text. Every cell stays raw text
// so leading zeros and locale-formatted amounts survive for explicit
// normalization later.
type delimitedDecoder struct {
	name  string
	comma rune
}

func (d *delimitedDecoder) Name() string { return d.name }

func (d *delimitedDecoder) Decode(r io.ReadSeeker) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.name, err)
	}

	reader := csv.NewReader(bytes.NewReader(normalizeEncoding(data)))
	reader.Comma = d.comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: file has no rows", d.name)
	}

	headers := records[0]
	if len(headers) <= 1 {
		return nil, fmt.Errorf("%s: separator %q yields a single column", d.name, d.comma)
	}

	rows := make([][]table.Cell, 0, len(records)-1)
	for _, record := range records[1:] {
		cells := make([]table.Cell, len(record))
		for i, v := range record {
			cells[i] = table.Text(v)
		}
		rows = append(rows, cells)
	}
	return table.New(headers, rows), nil
}
