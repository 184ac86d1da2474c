package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

// ExportSource lists price rows for export
type ExportSource interface {
	ListExportRows(ctx context.Context, filter ExportFilter, fn func(ExportRow) error) error
}

// ListExportRows streams one row per price, ordered so that rows of the same
// (category, location, rate type, time measurement) are adjacent. Price
// definitions without matching prices yield a single row with empty pricing.
func (s *PostgresReferenceStore) ListExportRows(ctx context.Context, filter ExportFilter, fn func(ExportRow) error) error {
	var tmFilter *int
	if filter.TimeMeasurement != nil {
		v := int(*filter.TimeMeasurement)
		tmFilter = &v
	}

	rows, err := s.db.Query(ctx, `
		SELECT c.code, rl.name, rt.name, se.name,
		       p.time_measurement, p.units, p.price, p.included_km, p.extra_km_price
		FROM category_rental_location_rate_types b
		JOIN categories c        ON c.id = b.category_id
		JOIN rental_locations rl ON rl.id = b.rental_location_id
		JOIN rate_types rt       ON rt.id = b.rate_type_id
		JOIN price_definitions pd ON pd.id = b.price_definition_id
		LEFT JOIN prices p ON p.price_definition_id = pd.id
		     AND ($4::bigint IS NULL OR p.season_id = $4)
		     AND ($5::int IS NULL OR p.time_measurement = $5)
		LEFT JOIN seasons se ON se.id = p.season_id
		WHERE ($1::bigint IS NULL OR b.rental_location_id = $1)
		  AND ($2::bigint IS NULL OR b.rate_type_id = $2)
		  AND ($3::bigint IS NULL OR pd.season_definition_id = $3)
		ORDER BY c.code, rl.name, rt.name, p.time_measurement NULLS LAST,
		         se.name NULLS FIRST, p.units, p.id
	`, filter.RentalLocationID, filter.RateTypeID, filter.SeasonDefinitionID, filter.SeasonID, tmFilter)
	if err != nil {
		return fmt.Errorf("failed to query export rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			row   ExportRow
			tm    *int
			price decimal.NullDecimal
			extra decimal.NullDecimal
		)
		if err := rows.Scan(
			&row.CategoryCode, &row.RentalLocationName, &row.RateTypeName, &row.SeasonName,
			&tm, &row.Units, &price, &row.IncludedKm, &extra,
		); err != nil {
			return fmt.Errorf("failed to scan export row: %w", err)
		}
		if tm != nil {
			u := types.TimeUnit(*tm)
			row.TimeMeasurement = &u
		}
		if price.Valid {
			row.Price = &price.Decimal
		}
		if extra.Valid {
			row.ExtraKmPrice = &extra.Decimal
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return rows.Err()
}
