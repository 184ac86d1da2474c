package parsers

import (
	"regexp"
	"strings"
)

var (
	integerRe = regexp.MustCompile(`^-?\d+$`)
	decimalRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// Text trims a cell; blank becomes nil
func Text(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Integer keeps a cell only when it is a plain signed integer
func Integer(s string) *string {
	v := Text(s)
	if v == nil || !integerRe.MatchString(*v) {
		return nil
	}
	return v
}

// Decimal normalizes a decimal comma to a dot. Values that still do not
// look like a plain decimal are passed through unchanged so that later
// validation can report them.
func Decimal(s string) *string {
	v := Text(s)
	if v == nil {
		return nil
	}
	normalized := strings.ReplaceAll(*v, ",", ".")
	if decimalRe.MatchString(normalized) {
		return &normalized
	}
	return v
}

// IsInteger reports whether s is a plain signed integer
func IsInteger(s string) bool {
	return integerRe.MatchString(s)
}

// IsDecimal reports whether s is a plain signed decimal with a dot separator
func IsDecimal(s string) bool {
	return decimalRe.MatchString(s)
}
