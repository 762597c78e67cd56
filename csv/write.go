package csv

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"os"
)

// StatusColumn is the name of the column [Failures] prepends to rejected
// records.
const StatusColumn = "status"

// Write renders records as CSV.
func Write(w io.Writer, records [][]string) error {
	writer := stdcsv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("error writing csv: %w", err)
	}
	return nil
}

// WriteFile is [Write] into the named file, which is created or
// truncated.
func WriteFile(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating csv file: %w", err)
	}

	if err := Write(f, records); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Failures accumulates rejected rows for a failure file that operators
// can fix up and re-submit. The output keeps the original column order
// and carries the rejection reason in a prepended status column.
type Failures struct {
	headers []string
	records [][]string
}

// NewFailures starts a failure file for a document with the given
// headers.
func NewFailures(headers []string) *Failures {
	header := append([]string{StatusColumn}, headers...)
	return &Failures{
		headers: headers,
		records: [][]string{header},
	}
}

// Add appends a rejected row with its reason.
func (f *Failures) Add(reason string, row Row) {
	record := make([]string, 0, len(f.headers)+1)
	record = append(record, reason)
	for _, name := range f.headers {
		record = append(record, row[name])
	}
	f.records = append(f.records, record)
}

// Empty reports whether no rows were rejected.
func (f *Failures) Empty() bool {
	return len(f.records) <= 1
}

// Records returns the failure file contents: the status header followed
// by every rejected row.
func (f *Failures) Records() [][]string {
	return f.records
}

// Write renders the failure file.
func (f *Failures) Write(w io.Writer) error {
	return Write(w, f.records)
}
