package csv

import (
	"fmt"
	"strings"
)

// FieldType names the expected data type of a CSV column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
	FieldNumeric
	FieldBool
)

func (t FieldType) String() string {
	switch t {
	case FieldText:
		return "text"
	case FieldEnum:
		return "enum"
	case FieldDate:
		return "date"
	case FieldNumeric:
		return "numeric"
	case FieldBool:
		return "bool"
	default:
		return "value"
	}
}

// FieldSpec defines validation rules for a single CSV column.
type FieldSpec struct {
	// Name is the column header; matched against cleaned headers, so any
	// capitalization works.
	Name string

	// Type is the expected data type of the column values.
	Type FieldType

	// Required marks the column as mandatory: it must exist in the header
	// and, unless AllowEmpty is set, every row must carry a value.
	Required bool

	// AllowEmpty permits empty values in a Required column (they usually
	// become NULL downstream).
	AllowEmpty bool

	// Enum lists the accepted values for FieldEnum columns. Matching is
	// case-insensitive.
	Enum []string

	// Normalize, when set, transforms the raw value before validation.
	Normalize func(string) string
}

// RowError describes one validation failure in one row.
type RowError struct {
	Line   int
	Field  string
	Reason string
}

func (e RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Reason)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ValidateRow checks a row against the field specs and returns every
// violation found, so callers can report all of a row's problems at once.
// line is stamped into the returned errors.
func ValidateRow(line int, row Row, specs []FieldSpec) []RowError {
	var rowErrs []RowError

	for _, spec := range specs {
		value, ok := row[CleanHeader(spec.Name)]
		if !ok {
			if spec.Required {
				rowErrs = append(rowErrs, RowError{Line: line, Field: spec.Name, Reason: "missing required column"})
			}
			continue
		}

		if value == "" {
			if spec.Required && !spec.AllowEmpty {
				rowErrs = append(rowErrs, RowError{Line: line, Field: spec.Name, Reason: "required field is empty"})
			}
			continue
		}

		if spec.Normalize != nil {
			value = spec.Normalize(value)
		}

		if reason := validateValue(value, spec); reason != "" {
			rowErrs = append(rowErrs, RowError{Line: line, Field: spec.Name, Reason: reason})
		}
	}

	return rowErrs
}

// ValidateHeaders checks that every required column exists among the
// given cleaned headers.
func ValidateHeaders(headers []string, specs []FieldSpec) error {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}

	var missing []string
	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := present[CleanHeader(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return nil
}

func validateValue(value string, spec FieldSpec) string {
	switch spec.Type {
	case FieldDate:
		if _, err := ParseDate(value); err != nil {
			return fmt.Sprintf("invalid date: %q", value)
		}
	case FieldNumeric:
		if _, err := ParseNumeric(value); err != nil {
			return fmt.Sprintf("invalid number: %q", value)
		}
	case FieldBool:
		if _, err := ParseBool(value); err != nil {
			return fmt.Sprintf("invalid bool: %q (use yes/no, true/false or 1/0)", value)
		}
	case FieldEnum:
		for _, allowed := range spec.Enum {
			if strings.EqualFold(allowed, value) {
				return ""
			}
		}
		return fmt.Sprintf("value must be one of: %s", strings.Join(spec.Enum, ", "))
	case FieldText:
		// no-op
	}

	return ""
}
