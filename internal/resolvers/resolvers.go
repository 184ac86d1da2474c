// Package resolvers turns the human-readable references of an import row
// into reference ids, memoizing every lookup for the lifetime of one run.
package resolvers

import (
	"context"
	"errors"
	"strings"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/matching"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

type bridgeKey struct {
	categoryID, rentalLocationID, rateTypeID int64
}

type allowedKey struct {
	priceDefinitionID int64
	unit              types.TimeUnit
}

// Set bundles the resolvers and caches of one import run. A Set is not safe
// for concurrent use; build a new one per run with NewSet.
type Set struct {
	store         database.ReferenceStore
	noSeasonLabel string

	categories       *memo[string, *database.Category]
	locations        *memo[string, *database.RentalLocation]
	rateTypes        *memo[string, *database.RateType]
	seasons          *memo[string, *database.Season]
	bridges          *memo[bridgeKey, *database.CategoryRentalLocationRateType]
	priceDefinitions *memo[int64, *database.PriceDefinition]
	allowed          map[allowedKey]UnitSet
}

// NewSet creates resolvers over store. Season names equal to noSeasonLabel
// (ignoring case and surrounding blanks) mean "no season".
func NewSet(store database.ReferenceStore, noSeasonLabel string) *Set {
	return &Set{
		store:            store,
		noSeasonLabel:    noSeasonLabel,
		categories:       newMemo[string, *database.Category](EntityCategory),
		locations:        newMemo[string, *database.RentalLocation](EntityRentalLocation),
		rateTypes:        newMemo[string, *database.RateType](EntityRateType),
		seasons:          newMemo[string, *database.Season]("season"),
		bridges:          newMemo[bridgeKey, *database.CategoryRentalLocationRateType](EntityBridge),
		priceDefinitions: newMemo[int64, *database.PriceDefinition](EntityPriceDefinition),
		allowed:          make(map[allowedKey]UnitSet),
	}
}

// Reset drops every cached lookup
func (s *Set) Reset() {
	s.categories.clear()
	s.locations.clear()
	s.rateTypes.clear()
	s.seasons.clear()
	s.bridges.clear()
	s.priceDefinitions.clear()
	clear(s.allowed)
}

// Cached returns the number of memoized lookups across all resolvers
func (s *Set) Cached() int {
	return s.categories.len() + s.locations.len() + s.rateTypes.len() +
		s.seasons.len() + s.bridges.len() + s.priceDefinitions.len() + len(s.allowed)
}

// Category resolves a category by exact code
func (s *Set) Category(ctx context.Context, code string) (*database.Category, error) {
	return s.categories.get(code, func() (*database.Category, error) {
		return s.store.FindCategoryByCode(ctx, code)
	})
}

// RentalLocation resolves a location by exact name
func (s *Set) RentalLocation(ctx context.Context, name string) (*database.RentalLocation, error) {
	return s.locations.get(name, func() (*database.RentalLocation, error) {
		return s.store.FindRentalLocationByName(ctx, name)
	})
}

// RateType resolves a rate type by exact name
func (s *Set) RateType(ctx context.Context, name string) (*database.RateType, error) {
	return s.rateTypes.get(name, func() (*database.RateType, error) {
		return s.store.FindRateTypeByName(ctx, name)
	})
}

func wrapNotFound(err error, entity, key string) error {
	if errors.Is(err, database.ErrNotFound) {
		return &NotFoundError{Entity: entity, Key: key}
	}
	return err
}

// PriceDefinition resolves the price definition bound to a category code,
// location name and rate type name. A failing leg is reported as a
// *NotFoundError naming it; store failures are returned as they are.
func (s *Set) PriceDefinition(ctx context.Context, categoryCode, locationName, rateTypeName *string) (*database.PriceDefinition, error) {
	code, location, rateType := types.Deref(categoryCode), types.Deref(locationName), types.Deref(rateTypeName)

	if code == "" {
		return nil, &NotFoundError{Entity: EntityCategory}
	}
	c, err := s.Category(ctx, code)
	if err != nil {
		return nil, wrapNotFound(err, EntityCategory, code)
	}

	if location == "" {
		return nil, &NotFoundError{Entity: EntityRentalLocation}
	}
	l, err := s.RentalLocation(ctx, location)
	if err != nil {
		return nil, wrapNotFound(err, EntityRentalLocation, location)
	}

	if rateType == "" {
		return nil, &NotFoundError{Entity: EntityRateType}
	}
	r, err := s.RateType(ctx, rateType)
	if err != nil {
		return nil, wrapNotFound(err, EntityRateType, rateType)
	}

	key := bridgeKey{c.ID, l.ID, r.ID}
	b, err := s.bridges.get(key, func() (*database.CategoryRentalLocationRateType, error) {
		return s.store.FindBridge(ctx, c.ID, l.ID, r.ID)
	})
	if err != nil {
		return nil, wrapNotFound(err, EntityBridge, code+"/"+location+"/"+rateType)
	}

	pd, err := s.priceDefinitions.get(b.PriceDefinitionID, func() (*database.PriceDefinition, error) {
		return s.store.FindPriceDefinition(ctx, b.PriceDefinitionID)
	})
	if err != nil {
		return nil, wrapNotFound(err, EntityPriceDefinition, code+"/"+location+"/"+rateType)
	}
	return pd, nil
}

// IsNoSeason reports whether name means "no season"
func (s *Set) IsNoSeason(name *string) bool {
	if name == nil || strings.TrimSpace(*name) == "" {
		return true
	}
	return matching.EqualFold(*name, s.noSeasonLabel)
}

// SeasonID resolves a season name. It returns (nil, nil) for no season and
// ErrSeasonNotFound for an unknown name.
func (s *Set) SeasonID(ctx context.Context, name *string) (*int64, error) {
	if s.IsNoSeason(name) {
		return nil, nil
	}
	key := strings.TrimSpace(*name)
	season, err := s.seasons.get(key, func() (*database.Season, error) {
		return s.store.FindSeasonByName(ctx, key)
	})
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrSeasonNotFound
	}
	if err != nil {
		return nil, err
	}
	id := season.ID
	return &id, nil
}

// AllowedUnits returns the unit counts pd accepts for u. A disabled time
// unit allows nothing.
func (s *Set) AllowedUnits(pd *database.PriceDefinition, u types.TimeUnit) UnitSet {
	key := allowedKey{pd.ID, u}
	if set, ok := s.allowed[key]; ok {
		cacheHits.WithLabelValues("allowed_units").Inc()
		return set
	}
	cacheMisses.WithLabelValues("allowed_units").Inc()

	enabled, list := pd.TimeUnitConfig(u)
	set := UnitSet{}
	if enabled {
		set = ParseUnitList(list)
	}
	s.allowed[key] = set
	return set
}
