// Package service builds the firmante report: it loads the uploaded table,
// filters purchase operations, normalizes amounts and aggregates the summary.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dpereyra/historial-firmante/internal/domain/report/loader"
	"github.com/dpereyra/historial-firmante/internal/domain/report/normalizer"
	"github.com/dpereyra/historial-firmante/internal/domain/report/table"
)

// Column names as the bank export carries them, matched after trimming.
const (
	ColOperationType = "Tipo de Operación"
	ColAmount        = "Importe"
	ColStatus        = "Estado"
)

// purchaseMarker identifies check-discount purchases, the only operation type
// in scope for the report.
const purchaseMarker = "co - compra"

// Status substrings, matched case-insensitively.
const (
	statusAccredited = "ACREDITADO"
	statusRejected   = "RECHAZADO"
)

var requiredColumns = []string{ColOperationType, ColAmount, ColStatus}

// ErrNoPurchases means the file was read and has the right columns, but no
// row matches the purchase filter.
var ErrNoPurchases = errors.New("no purchase operations in file")

// SchemaError means a table was decoded but the required columns are absent.
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s (found: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// Summary holds the aggregate metrics handed to the presentation layer.
// Unparsable cells contribute zero to every sum; their count is reported
// separately because it affects trust in the total.
type Summary struct {
	Total           decimal.Decimal
	Count           int
	Accredited      decimal.Decimal
	AccreditedPct   decimal.Decimal
	Rejected        decimal.Decimal
	RejectedPct     decimal.Decimal
	UnparsableCount int
}

// UnparsableCell records an amount cell that could not be normalized, with
// its raw text and the cells of its row for user inspection.
type UnparsableCell struct {
	Row int
	Raw string
}

// Report is the full result of one processed upload.
type Report struct {
	Summary    Summary
	Narrative  string
	Detail     *table.Table
	Unparsable []UnparsableCell
}

// Service runs the load-filter-normalize-aggregate pipeline. One upload is
// processed start to finish per call; the only shared state is configuration.
type Service struct {
	loader *loader.Loader
	conv   normalizer.Convention
	logger *slog.Logger
}

// New creates a report service using the given amount convention.
func New(logger *slog.Logger, conv normalizer.Convention) *Service {
	return &Service{
		loader: loader.New(ColAmount),
		conv:   conv,
		logger: logger,
	}
}

// BuildReport processes one uploaded file. Terminal failures are
// loader.ErrNoTable, *SchemaError and ErrNoPurchases; every other data
// problem is recovered row-locally and surfaced in the report.
func (s *Service) BuildReport(ctx context.Context, r io.ReadSeeker) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tbl, err := s.loader.Load(r)
	if err != nil {
		s.logger.Warn("file could not be decoded", slog.Any("error", err))
		return nil, err
	}
	if err := tbl.TrimHeaders(); err != nil {
		return nil, fmt.Errorf("%w: %v", loader.ErrNoTable, err)
	}

	if err := checkSchema(tbl); err != nil {
		return nil, err
	}

	typeCol := tbl.ColumnIndex(ColOperationType)
	amountCol := tbl.ColumnIndex(ColAmount)
	statusCol := tbl.ColumnIndex(ColStatus)

	detail := tbl.Filter(func(row []table.Cell) bool {
		return strings.Contains(strings.ToLower(row[typeCol].String()), purchaseMarker)
	})
	if detail.NumRows() == 0 {
		return nil, ErrNoPurchases
	}

	report := s.aggregate(detail, amountCol, statusCol)
	s.logger.Info("report built",
		slog.Int("rows", report.Summary.Count),
		slog.String("total", report.Summary.Total.StringFixed(2)),
		slog.Int("unparsable", report.Summary.UnparsableCount),
	)
	return report, nil
}

func checkSchema(tbl *table.Table) error {
	var missing []string
	for _, col := range requiredColumns {
		if !tbl.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing, Found: tbl.Headers()}
	}
	return nil
}

func (s *Service) aggregate(detail *table.Table, amountCol, statusCol int) *Report {
	report := &Report{Detail: detail}
	sum := &report.Summary
	sum.Total = decimal.Zero
	sum.Accredited = decimal.Zero
	sum.Rejected = decimal.Zero
	sum.Count = detail.NumRows()

	for i := 0; i < detail.NumRows(); i++ {
		row := detail.Row(i)
		outcome := normalizer.Normalize(row[amountCol], s.conv)
		if outcome.Unparsable {
			sum.UnparsableCount++
			report.Unparsable = append(report.Unparsable, UnparsableCell{Row: i, Raw: outcome.Raw})
			continue
		}

		sum.Total = sum.Total.Add(outcome.Value)
		status := strings.ToUpper(row[statusCol].String())
		if strings.Contains(status, statusAccredited) {
			sum.Accredited = sum.Accredited.Add(outcome.Value)
		}
		if strings.Contains(status, statusRejected) {
			sum.Rejected = sum.Rejected.Add(outcome.Value)
		}
	}

	sum.AccreditedPct = percentage(sum.Accredited, sum.Total)
	sum.RejectedPct = percentage(sum.Rejected, sum.Total)
	report.Narrative = narrative(sum)
	return report
}

var hundred = decimal.NewFromInt(100)

// percentage is zero when total is zero; there is no division-by-zero fault.
func percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).DivRound(total, 2)
}
