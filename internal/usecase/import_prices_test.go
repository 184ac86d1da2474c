package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/importer"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/resolvers"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/resources"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

// sliceSource yields rows and then err (io.EOF when nil)
type sliceSource struct {
	rows []types.RawPriceRow
	err  error
}

func (s *sliceSource) Next() (types.RawPriceRow, error) {
	if len(s.rows) == 0 {
		if s.err != nil {
			return types.RawPriceRow{}, s.err
		}
		return types.RawPriceRow{}, io.EOF
	}
	row := s.rows[0]
	s.rows = s.rows[1:]
	return row, nil
}

// scriptedImporter fails rows whose category code is listed
type scriptedImporter map[string]error

func (s scriptedImporter) Import(_ context.Context, row types.RawPriceRow) error {
	if row.CategoryCode == nil {
		return nil
	}
	if v, ok := s[*row.CategoryCode]; ok {
		if v == nil {
			panic("boom")
		}
		return v
	}
	return nil
}

func rowWithCode(n int, code string) types.RawPriceRow {
	return types.RawPriceRow{RowNumber: n, CategoryCode: types.StringPtr(code), Price: types.StringPtr("10")}
}

func TestPerform_StatusClassification(t *testing.T) {
	notFound := &importer.RowError{Reason: importer.ReasonPriceDefinitionNotFound, Detail: "category not found: Z"}

	tests := []struct {
		name         string
		rows         []types.RawPriceRow
		wantStatus   types.ImportStatus
		wantSuccess  bool
		wantImported int
		wantTotal    int
		wantMessage  string
	}{
		{
			name:         "all rows imported",
			rows:         []types.RawPriceRow{rowWithCode(1, "A"), rowWithCode(2, "A")},
			wantStatus:   types.StatusSuccess,
			wantSuccess:  true,
			wantImported: 2,
			wantTotal:    2,
			wantMessage:  "Import completed successfully: 2/2 rows imported",
		},
		{
			name:         "some rows imported",
			rows:         []types.RawPriceRow{rowWithCode(1, "A"), rowWithCode(2, "Z"), rowWithCode(3, "A")},
			wantStatus:   types.StatusPartialSuccess,
			wantSuccess:  true,
			wantImported: 2,
			wantTotal:    3,
			wantMessage:  "Import partially successful: 2/3 rows imported, 1 with errors",
		},
		{
			name:         "nothing imported",
			rows:         []types.RawPriceRow{rowWithCode(1, "Z")},
			wantStatus:   types.StatusError,
			wantImported: 0,
			wantTotal:    1,
			wantMessage:  "No rows could be imported: 1 errors found",
		},
		{
			name:        "empty input",
			wantStatus:  types.StatusError,
			wantMessage: "No rows found in file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewImportPrices(&sliceSource{rows: tt.rows}, scriptedImporter{"Z": notFound}, nil, RunInfo{}, zerolog.Nop())

			report := uc.Perform(context.Background())

			assert.Equal(t, tt.wantStatus, report.Status)
			assert.Equal(t, tt.wantSuccess, report.Success)
			assert.Equal(t, tt.wantImported, report.Imported)
			assert.Equal(t, tt.wantTotal, report.Total)
			assert.Equal(t, tt.wantMessage, report.Message)
			assert.Len(t, report.Errors, tt.wantTotal-tt.wantImported)
			assert.NotEmpty(t, report.RunID)
		})
	}
}

func TestPerform_ErrorEntries(t *testing.T) {
	rows := []types.RawPriceRow{rowWithCode(1, "A"), rowWithCode(4, "Z"), rowWithCode(5, "Q")}
	imp := scriptedImporter{
		"Z": &importer.RowError{Reason: importer.ReasonInvalidPrice, Detail: "price \"x\" is not a decimal number"},
		"Q": errors.New("plain failure"),
	}

	report := NewImportPrices(&sliceSource{rows: rows}, imp, nil, RunInfo{}, zerolog.Nop()).Perform(context.Background())

	require.Len(t, report.Errors, 2)
	assert.Equal(t, 4, report.Errors[0].Row)
	assert.Equal(t, "invalid_price", report.Errors[0].Reason)
	assert.Equal(t, "Z", report.Errors[0].Values[types.ColCategoryCode])
	assert.Equal(t, "", report.Errors[0].Values[types.ColSeasonName])
	assert.Len(t, report.Errors[0].Values, len(types.PriceColumns))

	assert.Equal(t, 5, report.Errors[1].Row)
	assert.Equal(t, "unexpected_error", report.Errors[1].Reason)
}

func TestPerform_FatalAbort(t *testing.T) {
	tests := []struct {
		name   string
		source *sliceSource
		imp    scriptedImporter
	}{
		{
			name:   "decode failure",
			source: &sliceSource{rows: []types.RawPriceRow{rowWithCode(1, "A")}, err: errors.New("bare quote in field")},
			imp:    scriptedImporter{},
		},
		{
			name:   "panic",
			source: &sliceSource{rows: []types.RawPriceRow{rowWithCode(1, "A"), rowWithCode(2, "P")}},
			imp:    scriptedImporter{"P": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewImportPrices(tt.source, tt.imp, nil, RunInfo{}, zerolog.Nop()).Perform(context.Background())

			assert.False(t, report.Success)
			assert.Equal(t, types.StatusError, report.Status)
			assert.Zero(t, report.Imported)
			assert.True(t, strings.HasPrefix(report.Message, "Import aborted: "), report.Message)
		})
	}
}

func TestPerform_RecordsRun(t *testing.T) {
	store := database.NewMemoryStore()
	info := RunInfo{Filename: "precios.csv", Format: FormatCSV}

	report := NewImportPrices(&sliceSource{rows: []types.RawPriceRow{rowWithCode(1, "A")}}, scriptedImporter{}, store, info, zerolog.Nop()).
		Perform(context.Background())

	run, ok := store.ImportRun(report.RunID)
	require.True(t, ok)
	assert.Equal(t, "precios.csv", run.Filename)
	assert.Equal(t, "csv", run.Format)
	assert.Equal(t, string(types.StatusSuccess), run.Status)
	assert.Equal(t, 1, run.Imported)
	assert.Equal(t, 1, run.Total)
	assert.NotNil(t, run.CompletedAt)
}

// seedBarcelona seeds A/Barcelona/Estándar with days 1-3 and no season definition
func seedBarcelona() *database.MemoryStore {
	m := database.NewMemoryStore()
	m.AddCategory(database.Category{ID: 1, Code: "A"})
	m.AddRentalLocation(database.RentalLocation{ID: 1, Name: "Barcelona"})
	m.AddRateType(database.RateType{ID: 1, Name: "Estándar"})
	m.AddPriceDefinition(database.PriceDefinition{ID: 10, TimeMeasurementDays: true, UnitsManagementValueDaysList: "1,2,3"})
	m.AddBridge(database.CategoryRentalLocationRateType{ID: 1, CategoryID: 1, RentalLocationID: 1, RateTypeID: 1, PriceDefinitionID: 10})
	return m
}

func importCSV(t *testing.T, store *database.MemoryStore, body string) types.BatchReport {
	t.Helper()
	src, closeFn, err := OpenRowSource(strings.NewReader(body), FormatCSV)
	require.NoError(t, err)
	defer closeFn()

	svc := importer.NewService(
		resolvers.NewSet(store, "Sin Temporada"),
		resources.NewPricesResource(store, zerolog.Nop()),
		zerolog.Nop(),
	)
	return NewImportPrices(src, svc, store, RunInfo{Filename: "prices.csv", Format: FormatCSV}, zerolog.Nop()).
		Perform(context.Background())
}

func TestPerform_CSVEndToEnd(t *testing.T) {
	store := seedBarcelona()
	body := "category_code,rental_location_name,rate_type_name,season_name,time_measurement,units,price,included_km,extra_km_price\n" +
		"A,Barcelona,Estándar,,días,1,\"100,50\",100,0.25\n" +
		",,,,,,,,\n" +
		"A,Barcelona,Estándar,,días,5,90,,\n" +
		"A,Barcelona,Estándar,Sin Temporada,2,2,6e6.0,,\n"

	report := importCSV(t, store, body)

	assert.Equal(t, types.StatusPartialSuccess, report.Status)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 3, report.Total, "blank rows never count")
	require.Len(t, report.Errors, 2)
	assert.Equal(t, 3, report.Errors[0].Row)
	assert.Equal(t, string(importer.ReasonUnitNotAllowed), report.Errors[0].Reason)
	assert.Equal(t, 4, report.Errors[1].Row)
	assert.Equal(t, string(importer.ReasonInvalidPrice), report.Errors[1].Reason)
	assert.Equal(t, "6e6.0", report.Errors[1].Values[types.ColPrice])

	require.Len(t, store.Prices(), 1)
	assert.Equal(t, "100.5", store.Prices()[0].Price.String())

	// importing the same file twice leaves one record per key
	again := importCSV(t, store, body)
	assert.Equal(t, 1, again.Imported)
	assert.Len(t, store.Prices(), 1)
}

func TestPerform_MissingHeaderIsFatal(t *testing.T) {
	_, _, err := OpenRowSource(strings.NewReader("category_code,price\nA,10\n"), FormatCSV)
	require.Error(t, err)
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"prices.csv", FormatCSV, false},
		{"PRICES.CSV", FormatCSV, false},
		{"tarifas.xlsx", FormatXLSX, false},
		{"tarifas.xls", "", true},
		{"notes.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromFilename(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
