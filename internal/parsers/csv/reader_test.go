package csv

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/parsers"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/parsers/charset"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

const header = "category_code,rental_location_name,rate_type_name,season_name,time_measurement,units,price,included_km,extra_km_price\n"

func readAll(t *testing.T, r *Reader) []types.RawPriceRow {
	t.Helper()
	var rows []types.RawPriceRow
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestReader_Rows(t *testing.T) {
	input := "\xEF\xBB\xBF" + header +
		"A,Barcelona,Estándar,,días,1,\"100,50\",100,\"0,25\"\n" +
		",,,,,,,,\n" +
		"B, Madrid ,Estándar,Temporada Alta,2,7,6e6.0,abc,\n"

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, charset.EncodingUTF8, r.Encoding())
	assert.Equal(t, rune(DelimiterComma), r.Delimiter())

	rows := readAll(t, r)
	require.Len(t, rows, 2, "blank rows are skipped")

	first := rows[0]
	assert.Equal(t, 1, first.RowNumber)
	assert.Equal(t, "A", *first.CategoryCode)
	assert.Nil(t, first.SeasonName)
	assert.Equal(t, "días", *first.TimeUnitLabel)
	assert.Equal(t, "100.50", *first.Price)
	assert.Equal(t, "100", *first.IncludedDistance)
	assert.Equal(t, "0.25", *first.ExtraDistancePrice)

	second := rows[1]
	assert.Equal(t, 3, second.RowNumber, "blank rows consume a position")
	assert.Equal(t, "Madrid", *second.LocationName)
	assert.Equal(t, "Temporada Alta", *second.SeasonName)
	assert.Equal(t, "6e6.0", *second.Price)
	assert.Nil(t, second.IncludedDistance)
	assert.Nil(t, second.ExtraDistancePrice)
}

func TestReader_SemicolonWindows1252(t *testing.T) {
	input := strings.ReplaceAll(header, ",", ";") +
		"A;Barcelona;Est\xE1ndar;;d\xEDas;1;100,50;;\n"

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, charset.EncodingWindows1252, r.Encoding())
	assert.Equal(t, rune(DelimiterSemicolon), r.Delimiter())

	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "Estándar", *rows[0].RateTypeName)
	assert.Equal(t, "días", *rows[0].TimeUnitLabel)
	assert.Equal(t, "100.50", *rows[0].Price)
}

func TestReader_InvalidIntegerStillCountsAsContent(t *testing.T) {
	r, err := NewReader(strings.NewReader(header + ",,,,,abc,,,\n"))
	require.NoError(t, err)

	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].UnitCount)
}

func TestReader_HeaderErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := NewReader(strings.NewReader(""))
		assert.ErrorIs(t, err, parsers.ErrEmptyInput)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := NewReader(strings.NewReader("category_code,price\nA,1\n"))
		var herr *parsers.HeaderError
		assert.ErrorAs(t, err, &herr)
	})
}

func TestReader_MalformedRow(t *testing.T) {
	r, err := NewReader(strings.NewReader(header + "A,\"unterminated,x,y\n"))
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestReader_Pipe(t *testing.T) {
	input := strings.ReplaceAll(header, ",", "|") + "A|Barcelona|Estándar||días|2|100,50||\n"

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)

	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "Barcelona", types.Deref(rows[0].LocationName))
	assert.Equal(t, "100,50", types.Deref(rows[0].Price))
	assert.Nil(t, rows[0].SeasonName)
}

func TestReader_InvalidUTF8PastHeadIsFatal(t *testing.T) {
	input := header + strings.Repeat("A,Barcelona,Estándar,,días,1,10,,\n", 300) +
		"A,M\xE1laga,Estándar,,días,1,10,,\n"

	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, charset.EncodingUTF8, r.Encoding())

	for {
		_, err = r.Next()
		if err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, charset.ErrInvalidUTF8)
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   rune
	}{
		{"comma", "a,b,c\n1,2,3\n", DelimiterComma},
		{"semicolon with decimal comma", "a;b;c\n1,5;2;3\n2;3,25;4\n", DelimiterSemicolon},
		{"tab", "a\tb\tc\n", DelimiterTab},
		{
			"pipe with decimal comma",
			"category_code|rental_location_name|rate_type_name|season_name|time_measurement|units|price|included_km|extra_km_price\n" +
				"A|Barcelona|Estándar|Sin Temporada|días|2|100,50||\n",
			DelimiterPipe,
		},
		{"empty", "", DelimiterComma},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDelimiter(tt.sample))
		})
	}
}
