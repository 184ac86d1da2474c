// Package exporter writes price rows in the import file layout, so an
// export can be edited and imported back.
package exporter

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type groupKey struct {
	category, location, rateType string
	unit                         types.TimeUnit
	hasUnit                      bool
}

// CSVWriter writes a BOM-prefixed, fully quoted CSV. Consecutive rows that
// differ in category, location, rate type or time unit are separated by a
// blank line.
type CSVWriter struct {
	w             *bufio.Writer
	noSeasonLabel string
	last          *groupKey
	rows          int
	err           error
}

// NewCSVWriter writes the BOM and header to w. noSeasonLabel is written for
// prices without a season.
func NewCSVWriter(w io.Writer, noSeasonLabel string) *CSVWriter {
	cw := &CSVWriter{
		w:             bufio.NewWriter(w),
		noSeasonLabel: noSeasonLabel,
	}
	cw.write(utf8BOM)
	cw.record(types.PriceColumns)
	return cw
}

// Write appends one export row
func (c *CSVWriter) Write(row database.ExportRow) error {
	key := groupKey{
		category: row.CategoryCode,
		location: row.RentalLocationName,
		rateType: row.RateTypeName,
	}
	if row.TimeMeasurement != nil {
		key.unit, key.hasUnit = *row.TimeMeasurement, true
	}
	if c.last != nil && *c.last != key {
		c.write([]byte("\n"))
	}
	c.last = &key

	season := c.noSeasonLabel
	if row.SeasonName != nil {
		season = *row.SeasonName
	}
	unit := types.TimeUnit(0).Label()
	if row.TimeMeasurement != nil {
		unit = row.TimeMeasurement.Label()
	}

	c.record([]string{
		row.CategoryCode,
		row.RentalLocationName,
		row.RateTypeName,
		season,
		unit,
		optionalInt(row.Units),
		optionalMoney(row.Price),
		optionalInt(row.IncludedKm),
		optionalMoney(row.ExtraKmPrice),
	})
	if c.err == nil {
		c.rows++
	}
	return c.err
}

// Rows returns the number of data rows written
func (c *CSVWriter) Rows() int {
	return c.rows
}

// Flush writes buffered data and reports the first write error
func (c *CSVWriter) Flush() error {
	if c.err != nil {
		return c.err
	}
	return c.w.Flush()
}

func (c *CSVWriter) record(fields []string) {
	for i, f := range fields {
		if i > 0 {
			c.write([]byte(","))
		}
		c.write([]byte(quote(f)))
	}
	c.write([]byte("\n"))
}

func (c *CSVWriter) write(b []byte) {
	if c.err != nil {
		return
	}
	_, c.err = c.w.Write(b)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalMoney(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.StringFixed(2)
}
