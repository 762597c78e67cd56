package csv

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(t *testing.T, input string) *Document {
	t.Helper()

	doc, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	return doc
}

func TestDocument_Each(t *testing.T) {
	doc := testDocument(t, "name\nalice\nbob\ncarol\n")

	var lines []int
	var names []string
	err := doc.Each(context.Background(), func(line int, row Row) error {
		lines = append(lines, line)
		names = append(names, row["name"])
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, lines)
	assert.Equal(t, []string{"alice", "bob", "carol"}, names)
}

func TestDocument_Each_StopsOnCallbackError(t *testing.T) {
	doc := testDocument(t, "name\nalice\nbob\n")

	calls := 0
	wantErr := errors.New("row rejected")
	err := doc.Each(context.Background(), func(int, Row) error {
		calls++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestDocument_Each_StopsOnCancelledContext(t *testing.T) {
	doc := testDocument(t, "name\nalice\nbob\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := doc.Each(ctx, func(int, Row) error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestDocument_Line_OutOfRange(t *testing.T) {
	doc := testDocument(t, "name\nalice\n")

	assert.Zero(t, doc.Line(-1))
	assert.Zero(t, doc.Line(5))
}

func TestDocument_Validate(t *testing.T) {
	doc := testDocument(t, "name,amount\nalice,10\nbob,ten\n,5\n")

	specs := []FieldSpec{
		{Name: "name", Type: FieldText, Required: true},
		{Name: "amount", Type: FieldNumeric, Required: true},
	}

	rowErrs, err := doc.Validate(context.Background(), specs)

	require.NoError(t, err)
	require.Len(t, rowErrs, 2)
	assert.Equal(t, RowError{Line: 3, Field: "amount", Reason: `invalid number: "ten"`}, rowErrs[0])
	assert.Equal(t, RowError{Line: 4, Field: "name", Reason: "required field is empty"}, rowErrs[1])
}

func TestDocument_Validate_CancelledContext(t *testing.T) {
	doc := testDocument(t, "name\nalice\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := doc.Validate(ctx, []FieldSpec{{Name: "name", Required: true}})

	assert.ErrorIs(t, err, context.Canceled)
}
