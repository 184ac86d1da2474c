// Package parsers holds the header contract and cell rules shared by the
// CSV and XLSX price row readers.
package parsers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

// ErrEmptyInput is returned when the input has no header row
var ErrEmptyInput = errors.New("input has no header row")

// HeaderError reports required columns absent from the header row
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Header maps each required column to its index in the input
type Header map[string]int

// ParseHeader matches header cells case-insensitively and in any order.
// Extra columns are ignored.
func ParseHeader(cells []string) (Header, error) {
	h := make(Header, len(types.PriceColumns))
	for i, cell := range cells {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
		if _, dup := h[name]; dup {
			continue
		}
		h[name] = i
	}

	var missing []string
	for _, col := range types.PriceColumns {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &HeaderError{Missing: missing}
	}
	return h, nil
}

func (h Header) cell(cells []string, col string) string {
	idx, ok := h[col]
	if !ok || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// BuildRow converts raw cells into a RawPriceRow using the cell rules
func (h Header) BuildRow(rowNumber int, cells []string) types.RawPriceRow {
	return types.RawPriceRow{
		RowNumber:          rowNumber,
		CategoryCode:       Text(h.cell(cells, types.ColCategoryCode)),
		LocationName:       Text(h.cell(cells, types.ColRentalLocationName)),
		RateTypeName:       Text(h.cell(cells, types.ColRateTypeName)),
		SeasonName:         Text(h.cell(cells, types.ColSeasonName)),
		TimeUnitLabel:      Text(h.cell(cells, types.ColTimeMeasurement)),
		UnitCount:          Integer(h.cell(cells, types.ColUnits)),
		Price:              Decimal(h.cell(cells, types.ColPrice)),
		IncludedDistance:   Integer(h.cell(cells, types.ColIncludedKm)),
		ExtraDistancePrice: Decimal(h.cell(cells, types.ColExtraKmPrice)),
	}
}

// IsBlank reports whether every mapped cell is empty. Unmapped extra
// columns are not considered.
func (h Header) IsBlank(cells []string) bool {
	for _, col := range types.PriceColumns {
		if strings.TrimSpace(h.cell(cells, col)) != "" {
			return false
		}
	}
	return true
}
