// Package xlsx reads price rows from Excel workbooks.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/parsers"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

// Options configures the workbook reader
type Options struct {
	// Sheet is the worksheet to read. Empty selects the first sheet.
	Sheet string
}

// Reader yields price rows from one worksheet in row order
type Reader struct {
	file   *excelize.File
	rows   *excelize.Rows
	header parsers.Header
	sheet  string
	pos    int
}

// NewReader opens the workbook and validates the header row
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheet, err := selectSheet(f, opts.Sheet)
	if err != nil {
		f.Close()
		return nil, err
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheet, err)
	}

	rd := &Reader{file: f, rows: rows, sheet: sheet}

	if !rows.Next() {
		err := rows.Error()
		rd.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		return nil, parsers.ErrEmptyInput
	}
	cells, err := rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		rd.Close()
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	header, err := parsers.ParseHeader(cells)
	if err != nil {
		rd.Close()
		return nil, err
	}
	rd.header = header
	return rd, nil
}

func selectSheet(f *excelize.File, name string) (string, error) {
	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return "", errors.New("workbook has no sheets")
	}
	if name == "" {
		return sheetList[0], nil
	}
	for _, s := range sheetList {
		if s == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found. Available sheets: %s", name, strings.Join(sheetList, ", "))
}

// Next returns the next non-blank row, or io.EOF at the end of the sheet
func (r *Reader) Next() (types.RawPriceRow, error) {
	for r.rows.Next() {
		cells, err := r.rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return types.RawPriceRow{}, fmt.Errorf("failed to read row %d: %w", r.pos+1, err)
		}
		r.pos++

		if r.header.IsBlank(cells) {
			continue
		}
		return r.header.BuildRow(r.pos, cells), nil
	}
	if err := r.rows.Error(); err != nil {
		return types.RawPriceRow{}, fmt.Errorf("failed to read worksheet %q: %w", r.sheet, err)
	}
	return types.RawPriceRow{}, io.EOF
}

// Sheet returns the worksheet being read
func (r *Reader) Sheet() string {
	return r.sheet
}

// Close releases the workbook
func (r *Reader) Close() error {
	var errs []error
	if r.rows != nil {
		errs = append(errs, r.rows.Close())
	}
	if r.file != nil {
		errs = append(errs, r.file.Close())
	}
	return errors.Join(errs...)
}
