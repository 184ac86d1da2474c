package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

func TestExportPrices_RoundTrip(t *testing.T) {
	store := seedBarcelona()
	body := "category_code,rental_location_name,rate_type_name,season_name,time_measurement,units,price,included_km,extra_km_price\n" +
		"A,Barcelona,Estándar,,días,1,100.5,100,0.25\n" +
		"A,Barcelona,Estándar,,dias,3,250,,\n"
	first := importCSV(t, store, body)
	require.Equal(t, types.StatusSuccess, first.Status)

	var buf bytes.Buffer
	n, err := NewExportPrices(store, "Sin Temporada", zerolog.Nop()).Perform(context.Background(), &buf, database.ExportFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, buf.String(), `"A","Barcelona","Estándar","Sin Temporada","días","1","100.50","100","0.25"`)

	// the export imports back onto the same keys
	again := importCSV(t, store, buf.String())
	assert.Equal(t, types.StatusSuccess, again.Status)
	assert.Equal(t, 2, again.Imported)
	assert.Len(t, store.Prices(), 2)
}

func TestExportPrices_Filter(t *testing.T) {
	store := seedBarcelona()
	importCSV(t, store, "category_code,rental_location_name,rate_type_name,season_name,time_measurement,units,price,included_km,extra_km_price\n"+
		"A,Barcelona,Estándar,,días,1,10,,\n")

	var buf bytes.Buffer
	hours := types.TimeUnitHour
	n, err := NewExportPrices(store, "Sin Temporada", zerolog.Nop()).
		Perform(context.Background(), &buf, database.ExportFilter{TimeMeasurement: &hours})
	require.NoError(t, err)

	assert.Equal(t, 1, n, "a definition without matching prices exports one template row")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"A","Barcelona","Estándar","Sin Temporada","Sin Medida","","","",""`, lines[1])
}
