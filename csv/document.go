package csv

import (
	"context"
	"fmt"
)

// contextCheckInterval is how often (in rows) [Document.Each] checks for
// context cancellation. Checking every row would be wasteful; every 100
// rows keeps cancellation prompt at sub-millisecond granularity.
const contextCheckInterval = 100

// Row is one data record keyed by cleaned header name.
type Row map[string]string

// Document is a parsed CSV file: the cleaned header names in column
// order, the data rows as header-keyed maps, and the position of the
// header record in the source.
type Document struct {
	// Headers are the cleaned header cells in their original column order,
	// duplicates included.
	Headers []string

	// Rows are the non-empty data records after the header. For duplicate
	// header names only the first column is kept.
	Rows []Row

	// HeaderLine is the 1-based record number of the header row.
	HeaderLine int

	// lines holds the 1-based source record number of each row. Kept
	// separately because empty records are skipped during parsing.
	lines []int
}

// Line returns the 1-based source record number of Rows[i], suitable for
// user-facing error messages.
func (d *Document) Line(i int) int {
	if i < 0 || i >= len(d.lines) {
		return 0
	}
	return d.lines[i]
}

// Each calls fn for every row in order, passing the row's source line
// number. The context is checked every few rows; on cancellation Each
// stops and returns an error wrapping ctx.Err(). A non-nil error from fn
// stops the iteration and is returned as is.
func (d *Document) Each(ctx context.Context, fn func(line int, row Row) error) error {
	for i, row := range d.Rows {
		if i%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("processing cancelled at line %d: %w", d.Line(i), err)
			}
		}

		if err := fn(d.Line(i), row); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks every row against the given field specs and collects
// all violations. The context is honored the same way as in [Each].
func (d *Document) Validate(ctx context.Context, specs []FieldSpec) ([]RowError, error) {
	var rowErrs []RowError

	err := d.Each(ctx, func(line int, row Row) error {
		rowErrs = append(rowErrs, ValidateRow(line, row, specs)...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rowErrs, nil
}
