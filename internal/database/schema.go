package database

import (
	"context"
	"fmt"
)

// Schema creates the pricing tables when absent
const Schema = `
CREATE TABLE IF NOT EXISTS categories (
	id   BIGSERIAL PRIMARY KEY,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS rental_locations (
	id   BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS rate_types (
	id   BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS season_definitions (
	id   BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS seasons (
	id                   BIGSERIAL PRIMARY KEY,
	season_definition_id BIGINT NOT NULL REFERENCES season_definitions(id),
	name                 TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_seasons_name ON seasons(name);

CREATE TABLE IF NOT EXISTS price_definitions (
	id                                  BIGSERIAL PRIMARY KEY,
	name                                TEXT NOT NULL DEFAULT '',
	season_definition_id                BIGINT REFERENCES season_definitions(id),
	time_measurement_months             BOOLEAN NOT NULL DEFAULT FALSE,
	time_measurement_days               BOOLEAN NOT NULL DEFAULT TRUE,
	time_measurement_hours              BOOLEAN NOT NULL DEFAULT FALSE,
	time_measurement_minutes            BOOLEAN NOT NULL DEFAULT FALSE,
	units_management_value_months_list  TEXT NOT NULL DEFAULT '',
	units_management_value_days_list    TEXT NOT NULL DEFAULT '',
	units_management_value_hours_list   TEXT NOT NULL DEFAULT '',
	units_management_value_minutes_list TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS category_rental_location_rate_types (
	id                  BIGSERIAL PRIMARY KEY,
	category_id         BIGINT NOT NULL REFERENCES categories(id),
	rental_location_id  BIGINT NOT NULL REFERENCES rental_locations(id),
	rate_type_id        BIGINT NOT NULL REFERENCES rate_types(id),
	price_definition_id BIGINT NOT NULL REFERENCES price_definitions(id),
	UNIQUE (category_id, rental_location_id, rate_type_id)
);

CREATE TABLE IF NOT EXISTS prices (
	id                  BIGSERIAL PRIMARY KEY,
	price_definition_id BIGINT NOT NULL REFERENCES price_definitions(id),
	season_id           BIGINT REFERENCES seasons(id),
	time_measurement    INTEGER NOT NULL DEFAULT 2,
	units               INTEGER NOT NULL,
	price               NUMERIC(10,2) NOT NULL,
	included_km         INTEGER,
	extra_km_price      NUMERIC(10,2),
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_prices_key
	ON prices (price_definition_id, COALESCE(season_id, 0), time_measurement, units);

CREATE TABLE IF NOT EXISTS import_runs (
	id           TEXT PRIMARY KEY,
	filename     TEXT NOT NULL,
	format       TEXT NOT NULL,
	archive_path TEXT,
	checksum     TEXT,
	status       TEXT NOT NULL,
	imported     INTEGER NOT NULL DEFAULT 0,
	total        INTEGER NOT NULL DEFAULT 0,
	message      TEXT,
	started_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at TIMESTAMPTZ
);
`

// Migrate applies Schema
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
