package loader

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dpereyra/historial-firmante/internal/domain/report/table"
)

// htmlDecoder extracts <table> grids from HTML documents. Some banks serve a
// rendered HTML page under an .xls file name; this strategy catches those.
type htmlDecoder struct {
	amountHeader string
}

func (d *htmlDecoder) Name() string { return "html" }

func (d *htmlDecoder) Decode(r io.ReadSeeker) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}
	doc, err := html.Parse(bytes.NewReader(normalizeEncoding(data)))
	if err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}

	grids := collectTables(doc)
	if len(grids) == 0 {
		return nil, fmt.Errorf("html: document contains no tables")
	}

	chosen := d.chooseTable(grids)
	if chosen == nil {
		return nil, fmt.Errorf("html: no table with usable columns")
	}

	headers := chosen[0]
	rows := make([][]table.Cell, 0, len(chosen)-1)
	for _, record := range chosen[1:] {
		cells := make([]table.Cell, len(record))
		for i, v := range record {
			cells[i] = table.Text(v)
		}
		rows = append(rows, cells)
	}
	return table.New(headers, rows), nil
}

// chooseTable picks the first grid whose header row contains the expected
// amount column, falling back to the first wide grid (more than five columns).
func (d *htmlDecoder) chooseTable(grids [][][]string) [][]string {
	for _, grid := range grids {
		if len(grid) == 0 || len(grid[0]) <= 1 {
			continue
		}
		for _, h := range grid[0] {
			if strings.EqualFold(strings.TrimSpace(h), d.amountHeader) {
				return grid
			}
		}
	}
	for _, grid := range grids {
		if len(grid) > 0 && len(grid[0]) > 5 {
			return grid
		}
	}
	return nil
}

func collectTables(doc *html.Node) [][][]string {
	var grids [][][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			if grid := extractGrid(n); len(grid) > 0 {
				grids = append(grids, grid)
			}
			return // nested tables are not a thing in these exports
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return grids
}

func extractGrid(tbl *html.Node) [][]string {
	var grid [][]string
	var walkRows func(*html.Node)
	walkRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var row []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, nodeText(c))
				}
			}
			if len(row) > 0 {
				grid = append(grid, row)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkRows(c)
		}
	}
	walkRows(tbl)
	return grid
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
