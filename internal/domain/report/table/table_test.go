package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimHeaders(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		tbl := New([]string{" Tipo de Operación ", "Importe  ", "\tEstado"}, nil)
		require.NoError(t, tbl.TrimHeaders())
		assert.Equal(t, []string{"Tipo de Operación", "Importe", "Estado"}, tbl.Headers())
	})

	t.Run("rejects duplicates after trimming", func(t *testing.T) {
		tbl := New([]string{"Importe", " Importe"}, nil)
		assert.Error(t, tbl.TrimHeaders())
	})
}

func TestColumnLookup(t *testing.T) {
	tbl := New([]string{"Fecha", "Importe"}, [][]Cell{
		{Text("01/02/2025"), Text("1.000,00")},
	})

	assert.Equal(t, 1, tbl.ColumnIndex("Importe"))
	assert.Equal(t, -1, tbl.ColumnIndex("Estado"))
	assert.True(t, tbl.HasColumn("Fecha"))
	assert.False(t, tbl.HasColumn("fecha"))
}

func TestShortRowsArePadded(t *testing.T) {
	tbl := New([]string{"A", "B", "C"}, [][]Cell{
		{Text("1")},
	})

	require.Equal(t, 1, tbl.NumRows())
	row := tbl.Row(0)
	require.Len(t, row, 3)
	assert.True(t, row[1].IsEmpty())
	assert.True(t, row[2].IsEmpty())
}

func TestFilterSharesHeaders(t *testing.T) {
	tbl := New([]string{"Tipo", "Importe"}, [][]Cell{
		{Text("CO - Compra"), Text("100,00")},
		{Text("DV - Devolución"), Text("50,00")},
		{Text("CO - Compra"), Text("200,00")},
	})

	kept := tbl.Filter(func(row []Cell) bool {
		return row[0].String() == "CO - Compra"
	})
	assert.Equal(t, 2, kept.NumRows())
	assert.Equal(t, tbl.Headers(), kept.Headers())
	assert.Equal(t, "200,00", kept.Cell(1, 1).String())
}

func TestCellKinds(t *testing.T) {
	num := Number(1500.5)
	assert.True(t, num.IsNumber())
	assert.Equal(t, 1500.5, num.Float())
	assert.Equal(t, "1500.5", num.String())
	assert.False(t, num.IsEmpty())

	txt := Text("007")
	assert.False(t, txt.IsNumber())
	assert.Equal(t, "007", txt.String())
}
