// Package timeunit maps free-text time measurement labels to canonical codes.
package timeunit

import (
	"regexp"
	"strconv"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/matching"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

var digitsRe = regexp.MustCompile(`^\d+$`)

var labels = map[string]types.TimeUnit{
	"mes":     types.TimeUnitMonth,
	"meses":   types.TimeUnitMonth,
	"día":     types.TimeUnitDay,
	"días":    types.TimeUnitDay,
	"dia":     types.TimeUnitDay,
	"dias":    types.TimeUnitDay,
	"día(s)":  types.TimeUnitDay,
	"hora":    types.TimeUnitHour,
	"horas":   types.TimeUnitHour,
	"minuto":  types.TimeUnitMinute,
	"minutos": types.TimeUnitMinute,
}

// folded holds the same table keyed by the diacritic-free spelling
var folded = func() map[string]types.TimeUnit {
	m := make(map[string]types.TimeUnit, len(labels))
	for k, v := range labels {
		m[matching.RemoveDiacritics(k)] = v
	}
	return m
}()

// Parse returns the canonical unit for label. Digit strings are read as the
// code itself and accepted only when in range.
func Parse(label string) (types.TimeUnit, bool) {
	s := matching.NormalizeLabel(label)
	if s == "" {
		return 0, false
	}

	if digitsRe.MatchString(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		u := types.TimeUnit(n)
		return u, u.Valid()
	}

	if u, ok := labels[s]; ok {
		return u, true
	}
	if u, ok := folded[matching.RemoveDiacritics(s)]; ok {
		return u, true
	}
	return 0, false
}

// ParsePtr is Parse for optional cells
func ParsePtr(label *string) (types.TimeUnit, bool) {
	if label == nil {
		return 0, false
	}
	return Parse(*label)
}
