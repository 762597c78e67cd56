package csv

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_SimpleDocument(t *testing.T) {
	// arrange
	input := "Name,Amount,Active\nalice,10.50,yes\nbob,3,no\n"

	// act
	doc, err := Read(strings.NewReader(input))

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "amount", "active"}, doc.Headers)
	assert.Equal(t, 1, doc.HeaderLine)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, Row{"name": "alice", "amount": "10.50", "active": "yes"}, doc.Rows[0])
	assert.Equal(t, Row{"name": "bob", "amount": "3", "active": "no"}, doc.Rows[1])
	assert.Equal(t, 2, doc.Line(0))
	assert.Equal(t, 3, doc.Line(1))
}

func TestRead_SkipsPreambleWithWantedHeaders(t *testing.T) {
	// отчётные выгрузки часто содержат заголовок отчёта перед шапкой таблицы
	input := "Quarterly Report\nGenerated 2026-01-01\nName,Amount\nalice,1\n"

	doc, err := Read(strings.NewReader(input), WithHeaders("Name", "Amount"))

	require.NoError(t, err)
	assert.Equal(t, 3, doc.HeaderLine)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "alice", doc.Rows[0]["name"])
	assert.Equal(t, 4, doc.Line(0))
}

func TestRead_StripsBOM(t *testing.T) {
	input := "\uFEFFName,Amount\nalice,1\n"

	doc, err := Read(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"name", "amount"}, doc.Headers)
}

func TestRead_ExcelArtifacts(t *testing.T) {
	input := "Name,Order ID\nalice,\"=\"\"00042\"\"\"\n"

	doc, err := Read(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, "00042", doc.Rows[0]["order id"])
}

func TestRead_RaggedRows(t *testing.T) {
	// short rows are padded, long rows are trimmed to the header width
	input := "a,b,c\n1\n1,2,3,4\n"

	doc, err := Read(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, Row{"a": "1", "b": "", "c": ""}, doc.Rows[0])
	assert.Equal(t, Row{"a": "1", "b": "2", "c": "3"}, doc.Rows[1])
}

func TestRead_SkipsEmptyRowsKeepingLineNumbers(t *testing.T) {
	input := "a,b\n1,2\n,\n  ,  \n3,4\n"

	doc, err := Read(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, 2, doc.Line(0))
	assert.Equal(t, 5, doc.Line(1))
}

func TestRead_DuplicateHeadersKeepFirstColumn(t *testing.T) {
	input := "name,name\nfirst,second\n"

	doc, err := Read(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"name", "name"}, doc.Headers)
	assert.Equal(t, "first", doc.Rows[0]["name"])
}

func TestRead_HeaderOnlyDocument(t *testing.T) {
	doc, err := Read(strings.NewReader("a,b,c\n"))

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, doc.Headers)
	assert.Empty(t, doc.Rows)
}

func TestRead_HeaderNotFound(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []Option
	}{
		{
			name:  "Empty input",
			input: "",
		},
		{
			name:  "Only empty records",
			input: ",\n,\n",
		},
		{
			name:  "Wanted headers never appear",
			input: "a,b\n1,2\n",
			opts:  []Option{WithHeaders("name", "amount")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.opts...)

			assert.ErrorIs(t, err, ErrHeaderNotFound)
		})
	}
}

func TestRead_CustomComma(t *testing.T) {
	input := "a;b\n1;2\n"

	doc, err := Read(strings.NewReader(input), WithComma(';'))

	require.NoError(t, err)
	assert.Equal(t, Row{"a": "1", "b": "2"}, doc.Rows[0])
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, WriteFile(path, [][]string{{"Name", "Amount"}, {"alice", "1"}}))

	doc, err := ReadFile(path)

	require.NoError(t, err)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "alice", doc.Rows[0]["name"])
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))

	assert.Error(t, err)
}

func TestFindHeaderRow(t *testing.T) {
	records := [][]string{
		{"Some Report"},
		{""},
		{"Name", "Amount", "Active"},
		{"alice", "1", "yes"},
	}

	tests := []struct {
		name    string
		want    []string
		wantIdx int
		wantErr error
	}{
		{
			name:    "No wanted headers returns first non-empty record",
			want:    nil,
			wantIdx: 0,
		},
		{
			name:    "Wanted headers locate the real header",
			want:    []string{"name", "amount"},
			wantIdx: 2,
		},
		{
			name:    "Matching ignores case and order",
			want:    []string{"ACTIVE", "Name"},
			wantIdx: 2,
		},
		{
			name:    "Unknown header",
			want:    []string{"name", "total"},
			wantErr: ErrHeaderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := FindHeaderRow(records, tt.want)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIdx, idx)
		})
	}
}
