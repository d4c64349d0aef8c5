package loader

import (
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/dpereyra/historial-firmante/internal/domain/report/table"
)

// xlsDecoder reads legacy binary .xls workbooks, which some banks still export.
type xlsDecoder struct{}

func (d *xlsDecoder) Name() string { return "xls" }

func (d *xlsDecoder) Decode(r io.ReadSeeker) (*table.Table, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("xls: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("xls: workbook has no sheets")
	}

	sheet := wb.GetSheet(0)
	if sheet == nil || sheet.MaxRow == 0 {
		return nil, fmt.Errorf("xls: first sheet is empty")
	}

	var headers []string
	var rows [][]table.Cell
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		values := make([]string, 0, row.LastCol())
		for col := 0; col < row.LastCol(); col++ {
			values = append(values, row.Col(col))
		}
		if headers == nil {
			headers = values
			continue
		}
		rows = append(rows, classifyRow(values))
	}
	if headers == nil {
		return nil, fmt.Errorf("xls: no rows found")
	}
	return table.New(headers, rows), nil
}
