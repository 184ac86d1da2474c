package usecase

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/parsers/csv"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/parsers/xlsx"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

// Format identifies an upload file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX
var ErrUnsupportedFormat = errors.New("unsupported file format")

// RowSource yields decoded rows in file order and io.EOF at the end
type RowSource interface {
	Next() (types.RawPriceRow, error)
}

// FormatFromFilename picks the format from the file extension
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
}

// Extension returns the file extension for f, including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// OpenRowSource builds the reader for format over r. The returned close
// function releases reader resources and is never nil.
func OpenRowSource(r io.Reader, format Format) (RowSource, func() error, error) {
	noop := func() error { return nil }

	switch format {
	case FormatCSV:
		src, err := csv.NewReader(r)
		if err != nil {
			return nil, noop, err
		}
		return src, noop, nil
	case FormatXLSX:
		src, err := xlsx.NewReader(r, xlsx.Options{})
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil
	}
	return nil, noop, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
