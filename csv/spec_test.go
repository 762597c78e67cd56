package csv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRow(t *testing.T) {
	tests := []struct {
		name        string
		row         Row
		specs       []FieldSpec
		wantReasons []string
	}{
		{
			name: "Valid row passes every type",
			row:  Row{"name": "alice", "amount": "(1,234.50)", "signed up": "12/31/2024", "active": "Y", "tier": "Gold"},
			specs: []FieldSpec{
				{Name: "Name", Type: FieldText, Required: true},
				{Name: "Amount", Type: FieldNumeric, Required: true},
				{Name: "Signed Up", Type: FieldDate, Required: true},
				{Name: "Active", Type: FieldBool, Required: true},
				{Name: "Tier", Type: FieldEnum, Required: true, Enum: []string{"gold", "silver"}},
			},
			wantReasons: nil,
		},
		{
			name:        "Missing required column",
			row:         Row{"name": "alice"},
			specs:       []FieldSpec{{Name: "Amount", Type: FieldNumeric, Required: true}},
			wantReasons: []string{"missing required column"},
		},
		{
			name:        "Missing optional column is fine",
			row:         Row{"name": "alice"},
			specs:       []FieldSpec{{Name: "Amount", Type: FieldNumeric}},
			wantReasons: nil,
		},
		{
			name:        "Empty required field",
			row:         Row{"amount": ""},
			specs:       []FieldSpec{{Name: "Amount", Type: FieldNumeric, Required: true}},
			wantReasons: []string{"required field is empty"},
		},
		{
			name:        "Empty required field with AllowEmpty",
			row:         Row{"amount": ""},
			specs:       []FieldSpec{{Name: "Amount", Type: FieldNumeric, Required: true, AllowEmpty: true}},
			wantReasons: nil,
		},
		{
			name:        "Empty optional field skips type checks",
			row:         Row{"amount": ""},
			specs:       []FieldSpec{{Name: "Amount", Type: FieldNumeric}},
			wantReasons: nil,
		},
		{
			name:        "Invalid date",
			row:         Row{"signed up": "tomorrow"},
			specs:       []FieldSpec{{Name: "Signed Up", Type: FieldDate}},
			wantReasons: []string{`invalid date: "tomorrow"`},
		},
		{
			name:        "Invalid bool",
			row:         Row{"active": "maybe"},
			specs:       []FieldSpec{{Name: "Active", Type: FieldBool}},
			wantReasons: []string{`invalid bool: "maybe" (use yes/no, true/false or 1/0)`},
		},
		{
			name:        "Enum match is case-insensitive",
			row:         Row{"tier": "GOLD"},
			specs:       []FieldSpec{{Name: "Tier", Type: FieldEnum, Enum: []string{"gold", "silver"}}},
			wantReasons: nil,
		},
		{
			name:        "Enum mismatch lists accepted values",
			row:         Row{"tier": "bronze"},
			specs:       []FieldSpec{{Name: "Tier", Type: FieldEnum, Enum: []string{"gold", "silver"}}},
			wantReasons: []string{"value must be one of: gold, silver"},
		},
		{
			name: "Normalize runs before validation",
			row:  Row{"amount": "~12~"},
			specs: []FieldSpec{{
				Name: "Amount", Type: FieldNumeric,
				Normalize: func(s string) string { return strings.Trim(s, "~") },
			}},
			wantReasons: nil,
		},
		{
			name: "Multiple violations in one row",
			row:  Row{"amount": "ten", "active": "maybe"},
			specs: []FieldSpec{
				{Name: "Amount", Type: FieldNumeric},
				{Name: "Active", Type: FieldBool},
				{Name: "Name", Type: FieldText, Required: true},
			},
			wantReasons: []string{`invalid number: "ten"`, `invalid bool: "maybe" (use yes/no, true/false or 1/0)`, "missing required column"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rowErrs := ValidateRow(7, tt.row, tt.specs)

			require.Len(t, rowErrs, len(tt.wantReasons))
			for i, want := range tt.wantReasons {
				assert.Equal(t, want, rowErrs[i].Reason)
				assert.Equal(t, 7, rowErrs[i].Line)
			}
		})
	}
}

func TestValidateHeaders(t *testing.T) {
	specs := []FieldSpec{
		{Name: "Name", Required: true},
		{Name: "Amount", Required: true},
		{Name: "Comment"},
	}

	assert.NoError(t, ValidateHeaders([]string{"name", "amount"}, specs))

	err := ValidateHeaders([]string{"name"}, specs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns: Amount")
}

func TestRowError_Error(t *testing.T) {
	assert.Equal(t, "line 3: Amount: invalid number", RowError{Line: 3, Field: "Amount", Reason: "invalid number"}.Error())
	assert.Equal(t, "line 3: row rejected", RowError{Line: 3, Reason: "row rejected"}.Error())
}

func TestFieldType_String(t *testing.T) {
	assert.Equal(t, "text", FieldText.String())
	assert.Equal(t, "enum", FieldEnum.String())
	assert.Equal(t, "date", FieldDate.String())
	assert.Equal(t, "numeric", FieldNumeric.String())
	assert.Equal(t, "bool", FieldBool.String())
	assert.Equal(t, "value", FieldType(99).String())
}
