// Package importer reconciles one import row into a price record.
package importer

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/parsers"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/resolvers"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/timeunit"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

// Upserter persists a price record, reporting success
type Upserter interface {
	Upsert(ctx context.Context, attrs database.Price) bool
}

// Service validates, resolves and persists rows. It shares the resolver
// caches of its Set and so belongs to a single run.
type Service struct {
	resolvers *resolvers.Set
	prices    Upserter
	logger    zerolog.Logger
	metrics   *MetricsRecorder
}

// NewService creates a row importer
func NewService(set *resolvers.Set, prices Upserter, logger zerolog.Logger) *Service {
	return &Service{
		resolvers: set,
		prices:    prices,
		logger:    logger.With().Str("component", "importer").Logger(),
		metrics:   NewMetricsRecorder(),
	}
}

// Import returns nil when the row was persisted, otherwise a *RowError.
// Panics and store failures are reported as ReasonUnexpected.
func (s *Service) Import(ctx context.Context, row types.RawPriceRow) error {
	start := time.Now()
	rowErr := s.importRow(ctx, row)
	s.metrics.RecordRow(rowErr, time.Since(start))

	if rowErr != nil {
		s.logger.Debug().
			Int("row", row.RowNumber).
			Str("reason", string(rowErr.Reason)).
			Str("detail", rowErr.Detail).
			Msg("Row rejected")
		return rowErr
	}
	return nil
}

func (s *Service) importRow(ctx context.Context, row types.RawPriceRow) (rowErr *RowError) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Int("row", row.RowNumber).Interface("panic", r).Msg("Row import panicked")
			rowErr = rowError(ReasonUnexpected, "%v", r)
		}
	}()

	// 1. price definition
	pd, err := s.resolvers.PriceDefinition(ctx, row.CategoryCode, row.LocationName, row.RateTypeName)
	if err != nil {
		var nf *resolvers.NotFoundError
		if errors.As(err, &nf) {
			return rowError(ReasonPriceDefinitionNotFound, "%s", nf.Error())
		}
		return s.unexpected(row, err)
	}

	// 2. time unit and unit count
	unit, ok := timeunit.ParsePtr(row.TimeUnitLabel)
	if !ok {
		return rowError(ReasonInvalidTimeOrUnits, "time_measurement %q not recognized", types.Deref(row.TimeUnitLabel))
	}
	units, ok := parseUnits(row.UnitCount)
	if !ok {
		return rowError(ReasonInvalidTimeOrUnits, "units %q is not an integer", types.Deref(row.UnitCount))
	}

	// 3. season
	seasonID, err := s.resolvers.SeasonID(ctx, row.SeasonName)
	if errors.Is(err, resolvers.ErrSeasonNotFound) {
		return rowError(ReasonInvalidSeasonName, "season %q not found", types.Deref(row.SeasonName))
	}
	if err != nil {
		return s.unexpected(row, err)
	}

	// 4. season coherence
	switch {
	case seasonID == nil && pd.Seasonal():
		return &RowError{Reason: ReasonSeasonDefinitionMismatch, Detail: DetailSeasonRequired}
	case seasonID != nil && !pd.Seasonal():
		return &RowError{Reason: ReasonSeasonDefinitionMismatch, Detail: DetailSeasonForbidden}
	}

	// 5. units allowed by the price definition
	allowed := s.resolvers.AllowedUnits(pd, unit)
	if !allowed.Contains(units) {
		if len(allowed) == 0 {
			return rowError(ReasonUnitNotAllowed, "%s are not enabled for this price definition", unit.Word())
		}
		return rowError(ReasonUnitNotAllowed, "units %d not allowed for %s (allowed: %s)", units, unit.Word(), allowed)
	}

	// 6. money
	price, ok := parseMoney(row.Price)
	if !ok {
		return rowError(ReasonInvalidPrice, "price %q is not a decimal number", types.Deref(row.Price))
	}
	var extra *decimal.Decimal
	if row.ExtraDistancePrice != nil {
		v, ok := parseMoney(row.ExtraDistancePrice)
		if !ok {
			return rowError(ReasonInvalidPrice, "extra_km_price %q is not a decimal number", *row.ExtraDistancePrice)
		}
		extra = &v
	}
	var includedKm *int
	if n, ok := parseUnits(row.IncludedDistance); ok {
		includedKm = &n
	}

	// 7. persist
	attrs := database.Price{
		PriceDefinitionID: pd.ID,
		SeasonID:          seasonID,
		TimeMeasurement:   unit,
		Units:             units,
		Price:             price,
		IncludedKm:        includedKm,
		ExtraKmPrice:      extra,
	}
	if !s.prices.Upsert(ctx, attrs) {
		return rowError(ReasonPersistenceFailed, "price record could not be saved")
	}
	return nil
}

func (s *Service) unexpected(row types.RawPriceRow, err error) *RowError {
	s.logger.Error().Err(err).Int("row", row.RowNumber).Msg("Row import failed")
	return rowError(ReasonUnexpected, "%v", err)
}

func parseUnits(v *string) (int, bool) {
	if v == nil {
		return 0, false
	}
	s := strings.TrimSpace(*v)
	if !parsers.IsInteger(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseMoney accepts a plain decimal with either separator. Exponents,
// thousands separators and signs other than a leading minus are rejected.
func parseMoney(v *string) (decimal.Decimal, bool) {
	if v == nil {
		return decimal.Decimal{}, false
	}
	s := strings.ReplaceAll(strings.TrimSpace(*v), ",", ".")
	if !parsers.IsDecimal(s) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
