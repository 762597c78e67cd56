// Package csv turns messy spreadsheet exports into validated row maps.
//
// The package wraps the standard CSV reader with the cleanup real-world
// files need: BOM stripping, Excel formula artifacts, preamble lines
// above the header, ragged and empty records. Parsed documents expose
// rows as maps keyed by cleaned header names; [FieldSpec] validation and
// the ParseDate/ParseNumeric/ParseBool value parsers cover the usual
// import-pipeline checks, and [Failures] collects rejected rows into a
// re-submittable failure file.
package csv
