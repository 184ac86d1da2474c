package database

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

// ErrNotFound is returned by lookups that match no record
var ErrNotFound = errors.New("record not found")

// Category is a vehicle or product category, addressed by code in import files
type Category struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// RentalLocation is a branch where rentals start
type RentalLocation struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RateType is a commercial rate (standard, premium, ...)
type RateType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SeasonDefinition groups the seasons a price definition is priced by
type SeasonDefinition struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Season is one named period of a season definition
type Season struct {
	ID                 int64  `json:"id"`
	SeasonDefinitionID int64  `json:"season_definition_id"`
	Name               string `json:"name"`
}

// CategoryRentalLocationRateType binds a (category, location, rate type)
// triple to the price definition that prices it.
type CategoryRentalLocationRateType struct {
	ID                int64 `json:"id"`
	CategoryID        int64 `json:"category_id"`
	RentalLocationID  int64 `json:"rental_location_id"`
	RateTypeID        int64 `json:"rate_type_id"`
	PriceDefinitionID int64 `json:"price_definition_id"`
}

// PriceDefinition holds the pricing rules shared by its price records.
// A nil SeasonDefinitionID means its prices carry no season.
type PriceDefinition struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	SeasonDefinitionID *int64 `json:"season_definition_id"`

	TimeMeasurementMonths  bool `json:"time_measurement_months"`
	TimeMeasurementDays    bool `json:"time_measurement_days"`
	TimeMeasurementHours   bool `json:"time_measurement_hours"`
	TimeMeasurementMinutes bool `json:"time_measurement_minutes"`

	// Comma separated unit counts, e.g. "1,2,3,7"
	UnitsManagementValueMonthsList  string `json:"units_management_value_months_list"`
	UnitsManagementValueDaysList    string `json:"units_management_value_days_list"`
	UnitsManagementValueHoursList   string `json:"units_management_value_hours_list"`
	UnitsManagementValueMinutesList string `json:"units_management_value_minutes_list"`
}

// TimeUnitConfig returns the enable flag and the unit whitelist for u
func (pd *PriceDefinition) TimeUnitConfig(u types.TimeUnit) (bool, string) {
	switch u {
	case types.TimeUnitMonth:
		return pd.TimeMeasurementMonths, pd.UnitsManagementValueMonthsList
	case types.TimeUnitDay:
		return pd.TimeMeasurementDays, pd.UnitsManagementValueDaysList
	case types.TimeUnitHour:
		return pd.TimeMeasurementHours, pd.UnitsManagementValueHoursList
	case types.TimeUnitMinute:
		return pd.TimeMeasurementMinutes, pd.UnitsManagementValueMinutesList
	}
	return false, ""
}

// Seasonal reports whether prices of this definition must carry a season
func (pd *PriceDefinition) Seasonal() bool {
	return pd.SeasonDefinitionID != nil
}

// PriceKey identifies a price record
type PriceKey struct {
	PriceDefinitionID int64
	SeasonID          *int64
	TimeMeasurement   types.TimeUnit
	Units             int
}

// Price is one price record. The key fields never change after creation.
type Price struct {
	ID                int64            `json:"id"`
	PriceDefinitionID int64            `json:"price_definition_id"`
	SeasonID          *int64           `json:"season_id"`
	TimeMeasurement   types.TimeUnit   `json:"time_measurement"`
	Units             int              `json:"units"`
	Price             decimal.Decimal  `json:"price"`
	IncludedKm        *int             `json:"included_km"`
	ExtraKmPrice      *decimal.Decimal `json:"extra_km_price"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Key returns the composite identity of p
func (p *Price) Key() PriceKey {
	return PriceKey{
		PriceDefinitionID: p.PriceDefinitionID,
		SeasonID:          p.SeasonID,
		TimeMeasurement:   p.TimeMeasurement,
		Units:             p.Units,
	}
}

// Import run statuses besides the final ImportStatus values
const (
	RunStatusRunning     = "running"
	RunStatusInterrupted = "interrupted"
)

// ImportRun records one batch import
type ImportRun struct {
	ID          string     `json:"id"`
	Filename    string     `json:"filename"`
	Format      string     `json:"format"`
	ArchivePath *string    `json:"archive_path"`
	Checksum    *string    `json:"checksum"`
	Status      string     `json:"status"` // 'running' | ImportStatus | 'interrupted'
	Imported    int        `json:"imported"`
	Total       int        `json:"total"`
	Message     *string    `json:"message"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// ExportRow is one flattened line of the price export
type ExportRow struct {
	CategoryCode       string
	RentalLocationName string
	RateTypeName       string
	SeasonName         *string
	TimeMeasurement    *types.TimeUnit
	Units              *int
	Price              *decimal.Decimal
	IncludedKm         *int
	ExtraKmPrice       *decimal.Decimal
}

// ExportFilter narrows the export. Nil fields do not filter.
type ExportFilter struct {
	RentalLocationID   *int64
	RateTypeID         *int64
	SeasonDefinitionID *int64
	SeasonID           *int64
	TimeMeasurement    *types.TimeUnit
}
