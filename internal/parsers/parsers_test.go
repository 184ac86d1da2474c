package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

func TestCellRules(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) *string
		input string
		want  *string
	}{
		{"text trims", Text, "  Barcelona ", types.StringPtr("Barcelona")},
		{"text blank", Text, "   ", nil},
		{"integer", Integer, " 7 ", types.StringPtr("7")},
		{"negative integer", Integer, "-3", types.StringPtr("-3")},
		{"integer rejects decimal", Integer, "7.5", nil},
		{"integer rejects words", Integer, "siete", nil},
		{"decimal dot", Decimal, "100.50", types.StringPtr("100.50")},
		{"decimal comma", Decimal, "100,50", types.StringPtr("100.50")},
		{"decimal integer", Decimal, "80", types.StringPtr("80")},
		{"decimal passthrough", Decimal, "6e6.0", types.StringPtr("6e6.0")},
		{"decimal thousands passthrough", Decimal, "1.000,50", types.StringPtr("1.000,50")},
		{"decimal blank", Decimal, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.input))
		})
	}
}

func TestParseHeader(t *testing.T) {
	t.Run("any order and case", func(t *testing.T) {
		cells := []string{
			"PRICE", "units", "Time_Measurement", "season_name", "rate_type_name",
			"rental_location_name", "category_code", "extra_km_price", "included_km", "notes",
		}
		h, err := ParseHeader(cells)
		require.NoError(t, err)
		assert.Equal(t, 0, h[types.ColPrice])
		assert.Equal(t, 6, h[types.ColCategoryCode])
	})

	t.Run("bom on first cell", func(t *testing.T) {
		cells := append([]string{"\ufeffcategory_code"}, types.PriceColumns[1:]...)
		_, err := ParseHeader(cells)
		assert.NoError(t, err)
	})

	t.Run("missing columns", func(t *testing.T) {
		_, err := ParseHeader([]string{"category_code", "price"})
		require.Error(t, err)

		var herr *HeaderError
		require.ErrorAs(t, err, &herr)
		assert.Contains(t, herr.Missing, types.ColUnits)
		assert.NotContains(t, herr.Missing, types.ColPrice)
	})
}

func TestBuildRow(t *testing.T) {
	h, err := ParseHeader(types.PriceColumns)
	require.NoError(t, err)

	row := h.BuildRow(3, []string{"A", " Barcelona ", "Estándar", "", "días", "1", "100,50", "abc"})

	assert.Equal(t, 3, row.RowNumber)
	assert.Equal(t, "A", *row.CategoryCode)
	assert.Equal(t, "Barcelona", *row.LocationName)
	assert.Nil(t, row.SeasonName)
	assert.Equal(t, "días", *row.TimeUnitLabel)
	assert.Equal(t, "1", *row.UnitCount)
	assert.Equal(t, "100.50", *row.Price)
	assert.Nil(t, row.IncludedDistance)
	assert.Nil(t, row.ExtraDistancePrice, "short rows leave trailing fields empty")
}
