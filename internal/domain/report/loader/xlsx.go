package loader

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dpereyra/historial-firmante/internal/domain/report/table"
)

// xlsxDecoder reads native XLSX workbooks. Raw cell values are requested so
// display formatting never masks what the file actually stores.
type xlsxDecoder struct{}

func (d *xlsxDecoder) Name() string { return "xlsx" }

func (d *xlsxDecoder) Decode(r io.ReadSeeker) (*table.Table, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx: sheet %s is empty", sheets[0])
	}

	headers := rows[0]
	cells := make([][]table.Cell, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells = append(cells, classifyRow(row))
	}
	return table.New(headers, cells), nil
}

// classifyRow turns spreadsheet strings into cells, recognizing the plain
// machine form numeric cells are stored in ("1500.5"). Anything with locale
// formatting stays text for the normalizer to handle explicitly.
func classifyRow(row []string) []table.Cell {
	cells := make([]table.Cell, len(row))
	for i, v := range row {
		if f, ok := nativeNumber(v); ok {
			cells[i] = table.Number(f)
			continue
		}
		cells[i] = table.Text(v)
	}
	return cells
}

func nativeNumber(v string) (float64, bool) {
	if v == "" || strings.TrimSpace(v) != v {
		return 0, false
	}
	for _, r := range v {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			return 0, false
		}
	}
	// "007" is an identifier with leading zeros, not a stored number.
	digits := strings.TrimPrefix(v, "-")
	if len(digits) > 1 && digits[0] == '0' && !strings.HasPrefix(digits, "0.") {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
