package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/resolvers"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/resources"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

func seasonDefID(v int64) *int64 { return &v }

// newStore seeds A/Barcelona/Estándar (seasonless, days 1-3) and
// B/Barcelona/Estándar (seasonal, days 1,7).
func newStore() *database.MemoryStore {
	m := database.NewMemoryStore()
	m.AddCategory(database.Category{ID: 1, Code: "A"})
	m.AddCategory(database.Category{ID: 2, Code: "B"})
	m.AddRentalLocation(database.RentalLocation{ID: 1, Name: "Barcelona"})
	m.AddRateType(database.RateType{ID: 1, Name: "Estándar"})
	m.AddSeason(database.Season{ID: 5, SeasonDefinitionID: 1, Name: "Temporada Alta"})
	m.AddPriceDefinition(database.PriceDefinition{
		ID:                           10,
		TimeMeasurementDays:          true,
		UnitsManagementValueDaysList: "1,2,3",
	})
	m.AddPriceDefinition(database.PriceDefinition{
		ID:                           11,
		SeasonDefinitionID:           seasonDefID(1),
		TimeMeasurementDays:          true,
		UnitsManagementValueDaysList: "1,7",
	})
	m.AddBridge(database.CategoryRentalLocationRateType{ID: 1, CategoryID: 1, RentalLocationID: 1, RateTypeID: 1, PriceDefinitionID: 10})
	m.AddBridge(database.CategoryRentalLocationRateType{ID: 2, CategoryID: 2, RentalLocationID: 1, RateTypeID: 1, PriceDefinitionID: 11})
	return m
}

func newService(store *database.MemoryStore, prices Upserter) *Service {
	if prices == nil {
		prices = resources.NewPricesResource(store, zerolog.Nop())
	}
	return NewService(resolvers.NewSet(store, "Sin Temporada"), prices, zerolog.Nop())
}

func row(category, season, unit, units, price string) types.RawPriceRow {
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		return types.StringPtr(s)
	}
	return types.RawPriceRow{
		RowNumber:     1,
		CategoryCode:  opt(category),
		LocationName:  types.StringPtr("Barcelona"),
		RateTypeName:  types.StringPtr("Estándar"),
		SeasonName:    opt(season),
		TimeUnitLabel: opt(unit),
		UnitCount:     opt(units),
		Price:         opt(price),
	}
}

func TestImport_Reasons(t *testing.T) {
	tests := []struct {
		name       string
		row        types.RawPriceRow
		wantReason Reason
		wantDetail string
	}{
		{"unknown category", row("Z", "", "días", "1", "100.50"), ReasonPriceDefinitionNotFound, "category not found: Z"},
		{"unknown time unit", row("A", "", "semanas", "1", "100.50"), ReasonInvalidTimeOrUnits, ""},
		{"missing units", row("A", "", "días", "", "100.50"), ReasonInvalidTimeOrUnits, ""},
		{"unknown season", row("A", "Temporada Baja", "días", "1", "100.50"), ReasonInvalidSeasonName, ""},
		{"season on seasonless definition", row("A", "Temporada Alta", "días", "1", "100.50"), ReasonSeasonDefinitionMismatch, DetailSeasonForbidden},
		{"no season on seasonal definition", row("B", "", "días", "1", "100.50"), ReasonSeasonDefinitionMismatch, DetailSeasonRequired},
		{"sentinel on seasonal definition", row("B", "Sin Temporada", "días", "1", "100.50"), ReasonSeasonDefinitionMismatch, DetailSeasonRequired},
		{"unit not whitelisted", row("A", "", "días", "5", "100.50"), ReasonUnitNotAllowed, ""},
		{"time unit disabled", row("A", "", "horas", "1", "100.50"), ReasonUnitNotAllowed, ""},
		{"exponent price", row("A", "", "días", "1", "6e6.0"), ReasonInvalidPrice, ""},
		{"missing price", row("A", "", "días", "1", ""), ReasonInvalidPrice, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			svc := newService(store, nil)

			err := svc.Import(context.Background(), tt.row)

			var rowErr *RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, tt.wantReason, rowErr.Reason)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, rowErr.Detail)
			}
			assert.Empty(t, store.Prices(), "rejected rows write nothing")
		})
	}
}

func TestImport_SeasonlessBarcelona(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	svc := newService(store, nil)

	r := row("A", "", "días", "1", "100.50")
	r.IncludedDistance = types.StringPtr("100")
	r.ExtraDistancePrice = types.StringPtr("0.25")

	require.NoError(t, svc.Import(ctx, r))

	prices := store.Prices()
	require.Len(t, prices, 1)
	p := prices[0]
	assert.Equal(t, int64(10), p.PriceDefinitionID)
	assert.Nil(t, p.SeasonID)
	assert.Equal(t, types.TimeUnitDay, p.TimeMeasurement)
	assert.Equal(t, 1, p.Units)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("100.50")))
	assert.Equal(t, 100, *p.IncludedKm)
	assert.True(t, p.ExtraKmPrice.Equal(decimal.RequireFromString("0.25")))

	// same key again with the sentinel season updates in place
	again := row("A", "sin temporada", "2", "1", "110")
	require.NoError(t, svc.Import(ctx, again))

	prices = store.Prices()
	require.Len(t, prices, 1)
	assert.True(t, prices[0].Price.Equal(decimal.RequireFromString("110")))
	assert.Nil(t, prices[0].IncludedKm)
}

func TestImport_SeasonalDefinition(t *testing.T) {
	store := newStore()
	svc := newService(store, nil)

	require.NoError(t, svc.Import(context.Background(), row("B", "Temporada Alta", "Días", "7", "80,5")))

	prices := store.Prices()
	require.Len(t, prices, 1)
	require.NotNil(t, prices[0].SeasonID)
	assert.Equal(t, int64(5), *prices[0].SeasonID)
	assert.True(t, prices[0].Price.Equal(decimal.RequireFromString("80.5")))
}

func TestImport_InvalidExtraPrice(t *testing.T) {
	store := newStore()
	svc := newService(store, nil)

	r := row("A", "", "días", "1", "100")
	r.ExtraDistancePrice = types.StringPtr("n/a")

	var rowErr *RowError
	require.ErrorAs(t, svc.Import(context.Background(), r), &rowErr)
	assert.Equal(t, ReasonInvalidPrice, rowErr.Reason)
	assert.Contains(t, rowErr.Detail, "extra_km_price")
}

type upserterFunc func(ctx context.Context, attrs database.Price) bool

func (f upserterFunc) Upsert(ctx context.Context, attrs database.Price) bool { return f(ctx, attrs) }

func TestImport_PersistenceFailed(t *testing.T) {
	svc := newService(newStore(), upserterFunc(func(context.Context, database.Price) bool { return false }))

	var rowErr *RowError
	require.ErrorAs(t, svc.Import(context.Background(), row("A", "", "días", "1", "100")), &rowErr)
	assert.Equal(t, ReasonPersistenceFailed, rowErr.Reason)
}

func TestImport_PanicIsUnexpected(t *testing.T) {
	svc := newService(newStore(), upserterFunc(func(context.Context, database.Price) bool { panic("nil map") }))

	var rowErr *RowError
	require.ErrorAs(t, svc.Import(context.Background(), row("A", "", "días", "1", "100")), &rowErr)
	assert.Equal(t, ReasonUnexpected, rowErr.Reason)
	assert.Contains(t, rowErr.Detail, "nil map")
}

type brokenStore struct {
	*database.MemoryStore
}

func (brokenStore) FindSeasonByName(context.Context, string) (*database.Season, error) {
	return nil, errors.New("connection refused")
}

func TestImport_StoreErrorIsUnexpected(t *testing.T) {
	store := newStore()
	svc := NewService(
		resolvers.NewSet(brokenStore{store}, "Sin Temporada"),
		resources.NewPricesResource(store, zerolog.Nop()),
		zerolog.Nop(),
	)

	var rowErr *RowError
	require.ErrorAs(t, svc.Import(context.Background(), row("B", "Temporada Alta", "días", "1", "100")), &rowErr)
	assert.Equal(t, ReasonUnexpected, rowErr.Reason)
}

func TestImport_OkIsNilInterface(t *testing.T) {
	svc := newService(newStore(), nil)
	err := svc.Import(context.Background(), row("A", "", "1", "1", "100"))
	assert.Error(t, err, "months are not enabled")

	err = svc.Import(context.Background(), row("A", "", "2", "3", "100"))
	assert.Nil(t, err)
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"100.50", "100.5", true},
		{"100,50", "100.5", true},
		{"-3", "-3", true},
		{" 7 ", "7", true},
		{"6e6.0", "", false},
		{"1e3", "", false},
		{"1.000,50", "", false},
		{"+5", "", false},
		{".5", "", false},
		{"abc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseMoney(types.StringPtr(tt.input))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}
