// Package resources holds write-side resources used by the importer.
package resources

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
)

// PricesResource upserts price records by their composite key
type PricesResource struct {
	repo   database.PriceRepository
	logger zerolog.Logger
}

// NewPricesResource creates a resource over repo
func NewPricesResource(repo database.PriceRepository, logger zerolog.Logger) *PricesResource {
	return &PricesResource{
		repo:   repo,
		logger: logger.With().Str("component", "prices_resource").Logger(),
	}
}

// Upsert updates the non-key attributes of the record matching attrs' key,
// or creates it. Failures are logged and reported as false.
func (r *PricesResource) Upsert(ctx context.Context, attrs database.Price) bool {
	key := attrs.Key()

	existing, err := r.repo.FindByKey(ctx, key)
	switch {
	case errors.Is(err, database.ErrNotFound):
		if err := r.repo.Create(ctx, &attrs); err != nil {
			r.logFailure(err, "create", key)
			return false
		}
		r.logger.Debug().Int64("price_id", attrs.ID).Msg("Price created")
		return true
	case err != nil:
		r.logFailure(err, "find", key)
		return false
	}

	existing.Price = attrs.Price
	existing.IncludedKm = attrs.IncludedKm
	existing.ExtraKmPrice = attrs.ExtraKmPrice
	if err := r.repo.Update(ctx, existing); err != nil {
		r.logFailure(err, "update", key)
		return false
	}
	r.logger.Debug().Int64("price_id", existing.ID).Msg("Price updated")
	return true
}

func (r *PricesResource) logFailure(err error, op string, key database.PriceKey) {
	ev := r.logger.Error().Err(err).
		Str("op", op).
		Int64("price_definition_id", key.PriceDefinitionID).
		Int("time_measurement", int(key.TimeMeasurement)).
		Int("units", key.Units)
	if key.SeasonID != nil {
		ev = ev.Int64("season_id", *key.SeasonID)
	}
	ev.Msg("Price upsert failed")
}
