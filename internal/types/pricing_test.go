package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name     string
		imported int
		total    int
		want     ImportStatus
	}{
		{"empty batch", 0, 0, StatusError},
		{"nothing imported", 0, 5, StatusError},
		{"all imported", 5, 5, StatusSuccess},
		{"some imported", 3, 5, StatusPartialSuccess},
		{"single row", 1, 1, StatusSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStatus(tt.imported, tt.total))
		})
	}
}

func TestRawPriceRow_IsBlank(t *testing.T) {
	assert.True(t, RawPriceRow{RowNumber: 4}.IsBlank())
	assert.True(t, RawPriceRow{Price: StringPtr("  ")}.IsBlank())
	assert.False(t, RawPriceRow{SeasonName: StringPtr("Alta")}.IsBlank())
}

func TestRawPriceRow_Values(t *testing.T) {
	row := RawPriceRow{
		RowNumber:     2,
		CategoryCode:  StringPtr("A"),
		LocationName:  StringPtr("Barcelona"),
		TimeUnitLabel: StringPtr("días"),
		Price:         StringPtr("100.50"),
	}

	values := row.Values()

	assert.Len(t, values, len(PriceColumns))
	assert.Equal(t, "A", values[ColCategoryCode])
	assert.Equal(t, "Barcelona", values[ColRentalLocationName])
	assert.Equal(t, "días", values[ColTimeMeasurement])
	assert.Equal(t, "100.50", values[ColPrice])
	assert.Equal(t, "", values[ColSeasonName])
	assert.Equal(t, "", values[ColExtraKmPrice])
}

func TestTimeUnit_Names(t *testing.T) {
	tests := []struct {
		unit  TimeUnit
		valid bool
		word  string
		label string
	}{
		{TimeUnitMonth, true, "months", "meses"},
		{TimeUnitDay, true, "days", "días"},
		{TimeUnitHour, true, "hours", "horas"},
		{TimeUnitMinute, true, "minutes", "minutos"},
		{TimeUnit(0), false, "", "Sin Medida"},
		{TimeUnit(5), false, "", "Sin Medida"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.unit.Valid())
			assert.Equal(t, tt.word, tt.unit.Word())
			assert.Equal(t, tt.label, tt.unit.Label())
		})
	}
}
