package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"iter"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadCSV streams the records of a UTF-8 CSV file. A leading byte order mark
// is dropped; invalid UTF-8 is a read error. Blank lines between records are
// returned as empty rows so row numbers match the file; trailing blank lines
// are dropped.
func ReadCSV(path string) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(nil, sourceError("", path, err))
			return
		}
		defer f.Close()

		dec := transform.NewReader(f, transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder()))
		r := csv.NewReader(dec)
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		next := 1 // line the next record starts on when no blank lines intervene
		for {
			record, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, readError(path, err))
				return
			}

			start, _ := r.FieldPos(0)
			for ; next < start; next++ {
				if !yield([]string{}, nil) {
					return
				}
			}
			last := len(record) - 1
			end, _ := r.FieldPos(last)
			next = end + strings.Count(record[last], "\n") + 1

			if !yield(record, nil) {
				return
			}
		}
	}
}
