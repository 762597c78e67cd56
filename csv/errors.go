package csv

import "errors"

// ErrHeaderNotFound is returned when no record in the input qualifies as
// the header row.
var ErrHeaderNotFound = errors.New("csv header row not found")
