package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

// PriceRepository persists price records by composite key
type PriceRepository interface {
	FindByKey(ctx context.Context, key PriceKey) (*Price, error)
	Create(ctx context.Context, p *Price) error
	Update(ctx context.Context, p *Price) error
}

// PostgresPriceRepository implements PriceRepository with pgx
type PostgresPriceRepository struct {
	db DBTX
}

// NewPostgresPriceRepository creates a price repository on db
func NewPostgresPriceRepository(db DBTX) *PostgresPriceRepository {
	return &PostgresPriceRepository{db: db}
}

// FindByKey matches a NULL season only against a NULL season
func (r *PostgresPriceRepository) FindByKey(ctx context.Context, key PriceKey) (*Price, error) {
	var (
		p     Price
		tm    int
		extra decimal.NullDecimal
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, price_definition_id, season_id, time_measurement, units,
		       price, included_km, extra_km_price, created_at, updated_at
		FROM prices
		WHERE price_definition_id = $1
		  AND season_id IS NOT DISTINCT FROM $2
		  AND time_measurement = $3
		  AND units = $4
		ORDER BY id
		LIMIT 1
	`, key.PriceDefinitionID, key.SeasonID, int(key.TimeMeasurement), key.Units).Scan(
		&p.ID, &p.PriceDefinitionID, &p.SeasonID, &tm, &p.Units,
		&p.Price, &p.IncludedKm, &extra, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err, "price")
	}
	p.TimeMeasurement = types.TimeUnit(tm)
	if extra.Valid {
		p.ExtraKmPrice = &extra.Decimal
	}
	return &p, nil
}

// Create inserts p and sets its ID and timestamps
func (r *PostgresPriceRepository) Create(ctx context.Context, p *Price) error {
	now := time.Now()
	err := r.db.QueryRow(ctx, `
		INSERT INTO prices (
			price_definition_id, season_id, time_measurement, units,
			price, included_km, extra_km_price, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id
	`, p.PriceDefinitionID, p.SeasonID, int(p.TimeMeasurement), p.Units,
		p.Price, p.IncludedKm, nullDecimal(p.ExtraKmPrice), now,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to insert price: %w", err)
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// Update rewrites the non-key attributes of p
func (r *PostgresPriceRepository) Update(ctx context.Context, p *Price) error {
	now := time.Now()
	tag, err := r.db.Exec(ctx, `
		UPDATE prices
		SET price = $2, included_km = $3, extra_km_price = $4, updated_at = $5
		WHERE id = $1
	`, p.ID, p.Price, p.IncludedKm, nullDecimal(p.ExtraKmPrice), now)
	if err != nil {
		return fmt.Errorf("failed to update price %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	p.UpdatedAt = now
	return nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
