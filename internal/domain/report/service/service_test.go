package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpereyra/historial-firmante/internal/domain/report/loader"
	"github.com/dpereyra/historial-firmante/internal/domain/report/normalizer"
)

func newTestService() *Service {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), normalizer.Argentine)
}

func buildReport(t *testing.T, csv string) (*Report, error) {
	t.Helper()
	return newTestService().BuildReport(context.Background(), bytes.NewReader([]byte(csv)))
}

func TestBuildReport_SummaryAndPercentages(t *testing.T) {
	csv := "Tipo de Operación;Importe;Estado\n" +
		"CO - Compra;1.000,00;ACREDITADO\n" +
		"CO - Compra;500,00;RECHAZADO\n"

	report, err := buildReport(t, csv)
	require.NoError(t, err)

	sum := report.Summary
	assert.Equal(t, 2, sum.Count)
	assert.True(t, sum.Total.Equal(decimal.RequireFromString("1500.00")), "total %s", sum.Total)
	assert.True(t, sum.Accredited.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, sum.Rejected.Equal(decimal.RequireFromString("500.00")))
	assert.Equal(t, "66.67", sum.AccreditedPct.StringFixed(2))
	assert.Equal(t, "33.33", sum.RejectedPct.StringFixed(2))
	assert.Zero(t, sum.UnparsableCount)

	assert.Contains(t, report.Narrative, "2 valores")
	assert.Contains(t, report.Narrative, "margen de rechazos de 33.33%")
}

func TestBuildReport_FiltersToPurchases(t *testing.T) {
	csv := "Tipo de Operación;Importe;Estado\n" +
		"CO - Compra;100,00;ACREDITADO\n" +
		"DV - Devolución;999,99;ACREDITADO\n" +
		"co - compra;200,00;ACREDITADO\n"

	report, err := buildReport(t, csv)
	require.NoError(t, err)

	// The filter is a case-insensitive substring match.
	assert.Equal(t, 2, report.Summary.Count)
	assert.True(t, report.Summary.Total.Equal(decimal.RequireFromString("300.00")))
	assert.Equal(t, 2, report.Detail.NumRows())
}

func TestBuildReport_TrimsHeadersBeforeValidation(t *testing.T) {
	csv := " Tipo de Operación ;  Importe;Estado \n" +
		"CO - Compra;100,00;ACREDITADO\n"

	report, err := buildReport(t, csv)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Count)
}

func TestBuildReport_LoadFailure(t *testing.T) {
	_, err := buildReport(t, "una sola columna\nsin nada mas\n")
	assert.ErrorIs(t, err, loader.ErrNoTable)
}

func TestBuildReport_SchemaFailureListsColumns(t *testing.T) {
	csv := "Fecha;Monto;Situación\n01/02/2025;100,00;OK\n"

	_, err := buildReport(t, csv)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{ColOperationType, ColAmount, ColStatus}, schemaErr.Missing)
	assert.Equal(t, []string{"Fecha", "Monto", "Situación"}, schemaErr.Found)
}

func TestBuildReport_NoPurchaseRows(t *testing.T) {
	csv := "Tipo de Operación;Importe;Estado\n" +
		"DV - Devolución;100,00;ACREDITADO\n"

	_, err := buildReport(t, csv)
	assert.ErrorIs(t, err, ErrNoPurchases)
}

func TestBuildReport_UnparsableCellsAreSurfacedNotSummed(t *testing.T) {
	csv := "Tipo de Operación;Importe;Estado\n" +
		"CO - Compra;1.000,00;ACREDITADO\n" +
		"CO - Compra;N/A;ACREDITADO\n"

	report, err := buildReport(t, csv)
	require.NoError(t, err)

	sum := report.Summary
	// The bad row stays in the dataset with a zero contribution.
	assert.Equal(t, 2, sum.Count)
	assert.True(t, sum.Total.Equal(decimal.RequireFromString("1000.00")))
	assert.Equal(t, 1, sum.UnparsableCount)

	require.Len(t, report.Unparsable, 1)
	assert.Equal(t, 1, report.Unparsable[0].Row)
	assert.Equal(t, "N/A", report.Unparsable[0].Raw)
}

func TestBuildReport_ZeroTotalHasZeroPercentages(t *testing.T) {
	csv := "Tipo de Operación;Importe;Estado\n" +
		"CO - Compra;;ACREDITADO\n"

	report, err := buildReport(t, csv)
	require.NoError(t, err)

	assert.True(t, report.Summary.Total.IsZero())
	assert.True(t, report.Summary.AccreditedPct.IsZero())
	assert.True(t, report.Summary.RejectedPct.IsZero())
}

func TestBuildReport_NarrativeWithoutRejections(t *testing.T) {
	csv := "Tipo de Operación;Importe;Estado\n" +
		"CO - Compra;1.500,00;ACREDITADO\n"

	report, err := buildReport(t, csv)
	require.NoError(t, err)

	assert.Contains(t, report.Narrative, "Sin registrar rechazos")
	assert.Contains(t, report.Narrative, "$ 1.500,00")
}
