package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ReferenceStore looks up pricing reference data by the names used in
// import files. Lookups are exact; a miss returns ErrNotFound.
type ReferenceStore interface {
	FindCategoryByCode(ctx context.Context, code string) (*Category, error)
	FindRentalLocationByName(ctx context.Context, name string) (*RentalLocation, error)
	FindRateTypeByName(ctx context.Context, name string) (*RateType, error)
	FindSeasonByName(ctx context.Context, name string) (*Season, error)
	FindBridge(ctx context.Context, categoryID, rentalLocationID, rateTypeID int64) (*CategoryRentalLocationRateType, error)
	FindPriceDefinition(ctx context.Context, id int64) (*PriceDefinition, error)
}

// PostgresReferenceStore implements ReferenceStore with pgx
type PostgresReferenceStore struct {
	db DBTX
}

// NewPostgresReferenceStore creates a reference store on db
func NewPostgresReferenceStore(db DBTX) *PostgresReferenceStore {
	return &PostgresReferenceStore{db: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to query %s: %w", what, err)
}

func (s *PostgresReferenceStore) FindCategoryByCode(ctx context.Context, code string) (*Category, error) {
	var c Category
	err := s.db.QueryRow(ctx, `
		SELECT id, code, name FROM categories WHERE code = $1 LIMIT 1
	`, code).Scan(&c.ID, &c.Code, &c.Name)
	if err != nil {
		return nil, notFound(err, "category")
	}
	return &c, nil
}

func (s *PostgresReferenceStore) FindRentalLocationByName(ctx context.Context, name string) (*RentalLocation, error) {
	var l RentalLocation
	err := s.db.QueryRow(ctx, `
		SELECT id, name FROM rental_locations WHERE name = $1 LIMIT 1
	`, name).Scan(&l.ID, &l.Name)
	if err != nil {
		return nil, notFound(err, "rental location")
	}
	return &l, nil
}

func (s *PostgresReferenceStore) FindRateTypeByName(ctx context.Context, name string) (*RateType, error) {
	var r RateType
	err := s.db.QueryRow(ctx, `
		SELECT id, name FROM rate_types WHERE name = $1 LIMIT 1
	`, name).Scan(&r.ID, &r.Name)
	if err != nil {
		return nil, notFound(err, "rate type")
	}
	return &r, nil
}

// FindSeasonByName returns the lowest-id season with that name
func (s *PostgresReferenceStore) FindSeasonByName(ctx context.Context, name string) (*Season, error) {
	var season Season
	err := s.db.QueryRow(ctx, `
		SELECT id, season_definition_id, name FROM seasons WHERE name = $1 ORDER BY id LIMIT 1
	`, name).Scan(&season.ID, &season.SeasonDefinitionID, &season.Name)
	if err != nil {
		return nil, notFound(err, "season")
	}
	return &season, nil
}

func (s *PostgresReferenceStore) FindBridge(ctx context.Context, categoryID, rentalLocationID, rateTypeID int64) (*CategoryRentalLocationRateType, error) {
	var b CategoryRentalLocationRateType
	err := s.db.QueryRow(ctx, `
		SELECT id, category_id, rental_location_id, rate_type_id, price_definition_id
		FROM category_rental_location_rate_types
		WHERE category_id = $1 AND rental_location_id = $2 AND rate_type_id = $3
		LIMIT 1
	`, categoryID, rentalLocationID, rateTypeID).Scan(
		&b.ID, &b.CategoryID, &b.RentalLocationID, &b.RateTypeID, &b.PriceDefinitionID,
	)
	if err != nil {
		return nil, notFound(err, "category/location/rate type binding")
	}
	return &b, nil
}

func (s *PostgresReferenceStore) FindPriceDefinition(ctx context.Context, id int64) (*PriceDefinition, error) {
	var pd PriceDefinition
	err := s.db.QueryRow(ctx, `
		SELECT id, name, season_definition_id,
		       time_measurement_months, time_measurement_days,
		       time_measurement_hours, time_measurement_minutes,
		       units_management_value_months_list, units_management_value_days_list,
		       units_management_value_hours_list, units_management_value_minutes_list
		FROM price_definitions
		WHERE id = $1
	`, id).Scan(
		&pd.ID, &pd.Name, &pd.SeasonDefinitionID,
		&pd.TimeMeasurementMonths, &pd.TimeMeasurementDays,
		&pd.TimeMeasurementHours, &pd.TimeMeasurementMinutes,
		&pd.UnitsManagementValueMonthsList, &pd.UnitsManagementValueDaysList,
		&pd.UnitsManagementValueHoursList, &pd.UnitsManagementValueMinutesList,
	)
	if err != nil {
		return nil, notFound(err, "price definition")
	}
	return &pd, nil
}
