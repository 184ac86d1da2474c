package resolvers

import (
	"sort"
	"strconv"
	"strings"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/parsers"
)

// UnitSet is the set of unit counts a price definition accepts for one time unit
type UnitSet map[int]struct{}

// ParseUnitList reads a comma separated whitelist. Blank and non-integer
// entries are dropped.
func ParseUnitList(list string) UnitSet {
	set := make(UnitSet)
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" || !parsers.IsInteger(part) {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// Contains reports whether n is allowed
func (s UnitSet) Contains(n int) bool {
	_, ok := s[n]
	return ok
}

// Sorted returns the allowed counts in ascending order
func (s UnitSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// String renders the set as a whitelist, e.g. "1,3,7"
func (s UnitSet) String() string {
	parts := make([]string, 0, len(s))
	for _, n := range s.Sorted() {
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ",")
}
