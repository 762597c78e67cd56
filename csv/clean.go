package csv

import "strings"

// CleanCell removes common CSV artifacts from a cell value:
//   - leading UTF-8 BOM
//   - surrounding whitespace
//   - Excel formula wrapper (="...")
//   - stray surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// CleanHeader canonicalizes a header cell for matching: artifacts are
// stripped like [CleanCell], the result is lowercased and inner whitespace
// is collapsed to single spaces. Row maps and [FieldSpec.Name] lookups are
// keyed by this form, so "Order ID", "order id" and an Excel-mangled
// `="Order  ID"` all address the same column.
func CleanHeader(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(CleanCell(s))), " ")
}
