package xlsx

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/parsers"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func headerRow() []interface{} {
	row := make([]interface{}, len(types.PriceColumns))
	for i, c := range types.PriceColumns {
		row[i] = c
	}
	return row
}

func TestReader_Rows(t *testing.T) {
	buf := workbook(t,
		headerRow(),
		[]interface{}{"A", "Barcelona", "Estándar", "", "días", 1, 100.5, 100, "0,25"},
		[]interface{}{"", "", "", "", "", "", "", "", ""},
		[]interface{}{"B", "Madrid", "Estándar", "Temporada Alta", 2, 7, "80", "", ""},
	)

	r, err := NewReader(buf, Options{})
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, "Sheet1", r.Sheet())

	var rows []types.RawPriceRow
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}

	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].RowNumber)
	assert.Equal(t, "días", *rows[0].TimeUnitLabel)
	assert.Equal(t, "1", *rows[0].UnitCount)
	assert.Equal(t, "100.5", *rows[0].Price)
	assert.Equal(t, "0.25", *rows[0].ExtraDistancePrice)
	assert.Nil(t, rows[0].SeasonName)

	assert.Equal(t, 3, rows[1].RowNumber)
	assert.Equal(t, "2", *rows[1].TimeUnitLabel)
	assert.Equal(t, "Temporada Alta", *rows[1].SeasonName)
}

func TestReader_Errors(t *testing.T) {
	t.Run("not a workbook", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader([]byte("category_code,price")), Options{})
		assert.Error(t, err)
	})

	t.Run("missing columns", func(t *testing.T) {
		buf := workbook(t, []interface{}{"category_code", "price"})
		_, err := NewReader(buf, Options{})
		var herr *parsers.HeaderError
		assert.ErrorAs(t, err, &herr)
	})

	t.Run("unknown sheet", func(t *testing.T) {
		buf := workbook(t, headerRow())
		_, err := NewReader(buf, Options{Sheet: "Precios"})
		assert.ErrorContains(t, err, "Precios")
	})

	t.Run("empty sheet", func(t *testing.T) {
		buf := workbook(t)
		_, err := NewReader(buf, Options{})
		assert.ErrorIs(t, err, parsers.ErrEmptyInput)
	})
}
