package importer

import "fmt"

// Reason classifies why a row was not imported
type Reason string

const (
	ReasonPriceDefinitionNotFound  Reason = "price_definition_not_found"
	ReasonInvalidTimeOrUnits       Reason = "invalid_time_measurement_or_units"
	ReasonInvalidSeasonName        Reason = "invalid_season_name"
	ReasonSeasonDefinitionMismatch Reason = "season_definition_mismatch"
	ReasonUnitNotAllowed           Reason = "unit_not_allowed_by_price_definition"
	ReasonInvalidPrice             Reason = "invalid_price"
	ReasonPersistenceFailed        Reason = "persistence_failed"
	ReasonUnexpected               Reason = "unexpected_error"
)

// Reasons lists every reason in pipeline order
var Reasons = []Reason{
	ReasonPriceDefinitionNotFound,
	ReasonInvalidTimeOrUnits,
	ReasonInvalidSeasonName,
	ReasonSeasonDefinitionMismatch,
	ReasonUnitNotAllowed,
	ReasonInvalidPrice,
	ReasonPersistenceFailed,
	ReasonUnexpected,
}

func (r Reason) String() string {
	return string(r)
}

// Mismatch details
const (
	DetailSeasonRequired  = "price_definition has season_definition but season_id is null"
	DetailSeasonForbidden = "price_definition has no season_definition but season_id is present"
)

// RowError is the outcome of a row that was not imported
type RowError struct {
	Reason Reason
	Detail string
}

func (e *RowError) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func rowError(reason Reason, format string, args ...any) *RowError {
	return &RowError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
