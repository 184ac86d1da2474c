package resolvers

import (
	"errors"
	"fmt"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
)

// ErrSeasonNotFound is returned for a season name that is neither blank,
// the no-season label, nor a known season.
var ErrSeasonNotFound = errors.New("season not found")

// Entities named by NotFoundError
const (
	EntityCategory        = "category"
	EntityRentalLocation  = "rental_location"
	EntityRateType        = "rate_type"
	EntityBridge          = "category_rental_location_rate_type"
	EntityPriceDefinition = "price_definition"
)

// NotFoundError names the lookup that failed while resolving a price definition
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not given", e.Entity)
	}
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return database.ErrNotFound
}
