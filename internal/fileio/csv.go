package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// legacyCharsets maps chardet names to decoders. Anything else is read as UTF-8.
var legacyCharsets = map[string]encoding.Encoding{
	"windows-1251": charmap.Windows1251,
	"cp1251":       charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.Windows1252,
}

// readCSV reads a CSV export with headerRow (1-based). Legacy single-byte
// encodings are detected and converted to UTF-8; the delimiter may be ',', ';'
// (European Excel) or tab.
func readCSV(r io.Reader, headerRow int) (Table, error) {
	br := bufio.NewReader(r)
	peek, _ := br.Peek(4096)

	var src io.Reader = br
	if len(peek) > 0 && !looksUTF8(peek) {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			if enc, ok := legacyCharsets[strings.ToLower(det.Charset)]; ok {
				src = transform.NewReader(br, enc.NewDecoder())
			}
		}
	}

	cr := csv.NewReader(src)
	cr.Comma = sniffDelimiter(peek)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return toTable(rows, headerRow)
}

// sniffDelimiter picks the most frequent of ',', ';' and tab on the first line,
// preferring ',' on a tie.
func sniffDelimiter(peek []byte) rune {
	line := peek
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		line = peek[:i]
	}
	best, bestN := ',', bytes.Count(line, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte{byte(d)}); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

// looksUTF8 reports whether b is valid UTF-8, tolerating a rune cut off by Peek.
func looksUTF8(b []byte) bool {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return true
		}
		b = b[:len(b)-1]
	}
	return utf8.Valid(b)
}
