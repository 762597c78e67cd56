// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev
package csv

import (
	"bufio"
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Option adjusts how [Read] parses its input.
type Option func(*readOptions)

type readOptions struct {
	comma       rune
	wantHeaders []string
}

// WithComma sets the field delimiter. The default is a comma.
func WithComma(comma rune) Option {
	return func(o *readOptions) {
		o.comma = comma
	}
}

// WithHeaders names columns the header row must contain. The header is
// located by scanning for the first record that carries all of them
// (after cleaning), which skips title lines and report preambles that
// spreadsheet exports put above the real header.
func WithHeaders(names ...string) Option {
	return func(o *readOptions) {
		o.wantHeaders = names
	}
}

// Read parses CSV data into a [Document].
//
// The reader tolerates the usual spreadsheet-export mess: a UTF-8 BOM,
// ragged records, lazy quoting, non-header preamble lines and fully empty
// rows. Records shorter than the header are padded with empty values;
// cells beyond the header width are dropped. For duplicate cleaned
// headers the first column wins.
func Read(r io.Reader, opts ...Option) (*Document, error) {
	options := readOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	reader := stdcsv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if options.comma != 0 {
		reader.Comma = options.comma
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading csv: %w", err)
	}

	headerIdx, err := FindHeaderRow(records, options.wantHeaders)
	if err != nil {
		return nil, err
	}

	headers := make([]string, len(records[headerIdx]))
	for i, cell := range records[headerIdx] {
		headers[i] = CleanHeader(cell)
	}

	doc := &Document{
		Headers:    headers,
		Rows:       []Row{},
		HeaderLine: headerIdx + 1,
	}

	for i, record := range records[headerIdx+1:] {
		if recordEmpty(record) {
			continue
		}

		row := make(Row, len(headers))
		for col, name := range headers {
			if _, taken := row[name]; taken {
				continue
			}
			if col < len(record) {
				row[name] = CleanCell(record[col])
			} else {
				row[name] = ""
			}
		}

		doc.Rows = append(doc.Rows, row)
		doc.lines = append(doc.lines, headerIdx+1+i+1)
	}

	return doc, nil
}

// ReadFile is [Read] over the contents of the named file.
func ReadFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening csv file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, opts...)
}

// FindHeaderRow returns the index of the header record. With wanted
// columns given, it is the first record containing all of them after
// cleaning; otherwise the first record with any non-empty cell. Returns
// [ErrHeaderNotFound] if no record qualifies.
func FindHeaderRow(records [][]string, want []string) (int, error) {
	if len(want) == 0 {
		for i, record := range records {
			if !recordEmpty(record) {
				return i, nil
			}
		}
		return 0, ErrHeaderNotFound
	}

	cleanedWant := make([]string, len(want))
	for i, name := range want {
		cleanedWant[i] = CleanHeader(name)
	}

	for i, record := range records {
		have := make(map[string]struct{}, len(record))
		for _, cell := range record {
			have[CleanHeader(cell)] = struct{}{}
		}

		found := true
		for _, name := range cleanedWant {
			if _, ok := have[name]; !ok {
				found = false
				break
			}
		}
		if found {
			return i, nil
		}
	}

	return 0, ErrHeaderNotFound
}

// skipBOM discards a leading UTF-8 BOM so it cannot glue itself to the
// first header cell. Windows spreadsheet exports add it routinely.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(3); err == nil && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	return br
}

func recordEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
