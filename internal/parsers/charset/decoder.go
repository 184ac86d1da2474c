package charset

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding represents a text encoding
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1252 Encoding = "windows-1252"
)

const sniffSize = 8 << 10

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectEncoding detects the encoding of a sample taken from the start of a file.
// Spreadsheet exports that are not valid UTF-8 are assumed to be Windows-1252.
func DetectEncoding(sample []byte) Encoding {
	if bytes.HasPrefix(sample, utf8BOM) {
		return EncodingUTF8
	}
	if utf8.Valid(dropPartialRune(sample)) {
		return EncodingUTF8
	}
	return EncodingWindows1252
}

// dropPartialRune trims a multi-byte sequence cut off by the end of the sample
func dropPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && len(b)-i <= utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			return b
		}
	}
	return b
}

// ErrInvalidUTF8 is returned by readers from NewUTF8Reader when input sniffed
// as UTF-8 holds an invalid byte sequence past the sniffed head.
var ErrInvalidUTF8 = encoding.ErrInvalidUTF8

// NewUTF8Reader sniffs the head of r and returns a reader producing UTF-8
// without a leading byte order mark. Input sniffed as UTF-8 is validated to
// the end; a later invalid sequence fails the read with ErrInvalidUTF8.
func NewUTF8Reader(r io.Reader) (io.Reader, Encoding, error) {
	br := bufio.NewReaderSize(r, sniffSize)
	sample, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", err
	}

	enc := DetectEncoding(sample)
	if enc == EncodingWindows1252 {
		return transform.NewReader(br, charmap.Windows1252.NewDecoder()), enc, nil
	}

	if bytes.HasPrefix(sample, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, "", err
		}
	}
	return transform.NewReader(br, encoding.UTF8Validator), enc, nil
}
