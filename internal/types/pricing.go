package types

import "strings"

// TimeUnit is the canonical code for a rental time measurement
type TimeUnit int

const (
	TimeUnitMonth  TimeUnit = 1
	TimeUnitDay    TimeUnit = 2
	TimeUnitHour   TimeUnit = 3
	TimeUnitMinute TimeUnit = 4
)

// TimeUnits lists every valid time unit in code order
var TimeUnits = []TimeUnit{TimeUnitMonth, TimeUnitDay, TimeUnitHour, TimeUnitMinute}

// Valid reports whether u is one of the four canonical codes
func (u TimeUnit) Valid() bool {
	return u >= TimeUnitMonth && u <= TimeUnitMinute
}

// Word returns the English plural used in price definition column names
// (time_measurement_<word>, units_management_value_<word>_list).
func (u TimeUnit) Word() string {
	switch u {
	case TimeUnitMonth:
		return "months"
	case TimeUnitDay:
		return "days"
	case TimeUnitHour:
		return "hours"
	case TimeUnitMinute:
		return "minutes"
	}
	return ""
}

// Label returns the Spanish plural written to export files
func (u TimeUnit) Label() string {
	switch u {
	case TimeUnitMonth:
		return "meses"
	case TimeUnitDay:
		return "días"
	case TimeUnitHour:
		return "horas"
	case TimeUnitMinute:
		return "minutos"
	}
	return "Sin Medida"
}

// Column names of the import/export header, in export order
const (
	ColCategoryCode       = "category_code"
	ColRentalLocationName = "rental_location_name"
	ColRateTypeName       = "rate_type_name"
	ColSeasonName         = "season_name"
	ColTimeMeasurement    = "time_measurement"
	ColUnits              = "units"
	ColPrice              = "price"
	ColIncludedKm         = "included_km"
	ColExtraKmPrice       = "extra_km_price"
)

// PriceColumns is the full import header in export order
var PriceColumns = []string{
	ColCategoryCode,
	ColRentalLocationName,
	ColRateTypeName,
	ColSeasonName,
	ColTimeMeasurement,
	ColUnits,
	ColPrice,
	ColIncludedKm,
	ColExtraKmPrice,
}

// RawPriceRow is one decoded input row. Every field is trimmed, nil when blank.
type RawPriceRow struct {
	RowNumber          int     `json:"row"`
	CategoryCode       *string `json:"category_code"`
	LocationName       *string `json:"rental_location_name"`
	RateTypeName       *string `json:"rate_type_name"`
	SeasonName         *string `json:"season_name"`
	TimeUnitLabel      *string `json:"time_measurement"`
	UnitCount          *string `json:"units"`
	Price              *string `json:"price"`
	IncludedDistance   *string `json:"included_km"`
	ExtraDistancePrice *string `json:"extra_km_price"`
}

func (r RawPriceRow) fields() []*string {
	return []*string{
		r.CategoryCode,
		r.LocationName,
		r.RateTypeName,
		r.SeasonName,
		r.TimeUnitLabel,
		r.UnitCount,
		r.Price,
		r.IncludedDistance,
		r.ExtraDistancePrice,
	}
}

// IsBlank reports whether every field of the row is empty
func (r RawPriceRow) IsBlank() bool {
	for _, f := range r.fields() {
		if f != nil && strings.TrimSpace(*f) != "" {
			return false
		}
	}
	return true
}

// Values returns a snapshot of the row keyed by column name. Nil fields become "".
func (r RawPriceRow) Values() map[string]string {
	out := make(map[string]string, len(PriceColumns))
	for i, f := range r.fields() {
		out[PriceColumns[i]] = Deref(f)
	}
	return out
}

// ImportStatus classifies a finished batch
type ImportStatus string

const (
	StatusSuccess        ImportStatus = "success"
	StatusPartialSuccess ImportStatus = "partial_success"
	StatusError          ImportStatus = "error"
)

// ClassifyStatus applies the batch status law
func ClassifyStatus(imported, total int) ImportStatus {
	switch {
	case imported == 0:
		return StatusError
	case imported == total:
		return StatusSuccess
	default:
		return StatusPartialSuccess
	}
}

// RowErrorEntry is one failed row in a batch report
type RowErrorEntry struct {
	Row    int               `json:"row"`
	Values map[string]string `json:"values"`
	Reason string            `json:"reason"`
	Detail string            `json:"detail,omitempty"`
}

// BatchReport is the aggregate outcome of one import run
type BatchReport struct {
	RunID    string          `json:"run_id,omitempty"`
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Imported int             `json:"imported"`
	Total    int             `json:"total"`
	Errors   []RowErrorEntry `json:"errors"`
	Status   ImportStatus    `json:"status"`
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "" for nil
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
