// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package csv

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TwoDigitYearPivot defines how 2-digit years are interpreted. A parsed
// year more than this many years in the future is assumed to belong to
// the previous century: with pivot 20 in 2026, "47" is 1947 and "25" is
// 2025.
var TwoDigitYearPivot = 20

// numericRegex validates the cleaned numeric form: integers, decimals and
// scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Date layouts split by year format, because 2-digit years need the pivot
// adjustment and 4-digit ones must win when both could match.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// ParseDate parses the spreadsheet date formats seen in real exports.
// Unambiguous 4-digit-year layouts are tried first; 2-digit years get the
// [TwoDigitYearPivot] century adjustment.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("cannot parse empty string as date")
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		// time.Parse maps 2-digit years onto 1969-2068; apply our own
		// consistent pivot instead.
		if t.Year() > pivotYear {
			t = t.AddDate(-100, 0, 0)
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("cannot parse %q as date", s)
}

// ParseNumeric parses a number the way finance exports write them:
// accounting negatives "(123.45)", currency symbols and thousands
// separators are all tolerated.
func ParseNumeric(s string) (float64, error) {
	cleaned, err := NormalizeNumeric(s)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as number", s)
	}

	return value, nil
}

// NormalizeNumeric strips accounting artifacts from a numeric string and
// returns the canonical form ("(1,234.50)" becomes "-1234.50"). Callers
// that must not lose precision (money columns bound for NUMERIC database
// types) can pass the result on instead of going through float64.
func NormalizeNumeric(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("cannot parse empty string as number")
	}

	// Accounting format: "(123.45)" means -123.45.
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // евро
	s = strings.ReplaceAll(s, "£", "") // фунт
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if negative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return "", fmt.Errorf("cannot parse %q as number", s)
	}

	return s, nil
}

// ParseBool parses the common spreadsheet boolean spellings:
// true/false, t/f, yes/no, y/n, 1/0, case-insensitive.
func ParseBool(s string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	default:
		return false, fmt.Errorf("cannot parse %q as bool", s)
	}
}
