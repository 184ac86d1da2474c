// Package csv reads price rows from delimited text files.
package csv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/parsers"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/parsers/charset"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

const sampleSize = 4096

// Reader yields price rows in file order. It is not safe for concurrent use
// and cannot be restarted.
type Reader struct {
	cr        *csv.Reader
	header    parsers.Header
	pos       int
	encoding  charset.Encoding
	delimiter rune
}

// NewReader consumes and validates the header row. A missing required
// column fails the whole input.
func NewReader(r io.Reader) (*Reader, error) {
	utf, enc, err := charset.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}

	br := bufio.NewReaderSize(utf, sampleSize)
	sample, err := br.Peek(sampleSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	delim := DetectDelimiter(string(sample))

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	cells, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, parsers.ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	header, err := parsers.ParseHeader(cells)
	if err != nil {
		return nil, err
	}

	return &Reader{
		cr:        cr,
		header:    header,
		encoding:  enc,
		delimiter: delim,
	}, nil
}

// Next returns the next non-blank row, or io.EOF when the input is exhausted.
// Blank rows still advance the row position.
func (r *Reader) Next() (types.RawPriceRow, error) {
	for {
		cells, err := r.cr.Read()
		if errors.Is(err, io.EOF) {
			return types.RawPriceRow{}, io.EOF
		}
		if err != nil {
			return types.RawPriceRow{}, fmt.Errorf("failed to read row %d: %w", r.pos+1, err)
		}
		r.pos++

		if r.header.IsBlank(cells) {
			continue
		}
		return r.header.BuildRow(r.pos, cells), nil
	}
}

// Encoding reports the detected source encoding
func (r *Reader) Encoding() charset.Encoding {
	return r.encoding
}

// Delimiter reports the detected field delimiter
func (r *Reader) Delimiter() rune {
	return r.delimiter
}
