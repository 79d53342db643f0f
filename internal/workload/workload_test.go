package workload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Arrivals
	}{
		{
			name:  "six field rows",
			input: "1, 10, 0, 50, 10, 5\n2, 5, 3, 20, 5, 2\n",
			want:  Arrivals{1: 0, 2: 3},
		},
		{
			name:  "row order does not matter",
			input: "7, 1, 40, 1, 1, 1\n3, 1, 12, 1, 1, 1\n5,1,0,1,1,1",
			want:  Arrivals{3: 12, 5: 0, 7: 40},
		},
		{
			name:  "blank and short lines are skipped",
			input: "\n   \n1, 2\n4, 8, 9, 10, 1, 1\n",
			want:  Arrivals{4: 9},
		},
		{
			name:  "three fields are enough",
			input: "9,0,17",
			want:  Arrivals{9: 17},
		},
		{
			name:  "duplicate pid keeps the last row",
			input: "1, 1, 5, 1, 1, 1\n1, 1, 8, 1, 1, 1\n",
			want:  Arrivals{1: 8},
		},
		{
			name:  "empty input",
			input: "",
			want:  Arrivals{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_MalformedField(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad pid", "x, 1, 0, 1, 1, 1"},
		{"bad arrival", "1, 1, soon, 1, 1, 1"},
		{"empty arrival", "1, 1, , 1, 1, 1"},
		{"bad row after good row", "1, 1, 0, 1, 1, 1\n2, 1, 2.5, 1, 1, 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedField)
			assert.Nil(t, got)
		})
	}
}

func TestParse_IgnoresUnusedColumns(t *testing.T) {
	got, err := Parse(strings.NewReader("1, big, 4, ?, ?, ?"))
	require.NoError(t, err)
	assert.Equal(t, Arrivals{1: 4}, got)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input_data.txt")
	require.NoError(t, os.WriteFile(path, []byte("1, 10, 0, 5, 2, 1\n2, 10, 6, 5, 2, 1\n"), 0o644))

	got, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, Arrivals{1: 0, 2: 6}, got)

	arrival, ok := got.Lookup(2)
	assert.True(t, ok)
	assert.Equal(t, 6, arrival)
	_, ok = got.Lookup(3)
	assert.False(t, ok)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_LongLine(t *testing.T) {
	input := "1, 10, 0, 5, 2, 1," + strings.Repeat(" ", 70<<10) + "\n2, 10, 3, 5, 2, 1\n"
	got, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Arrivals{1: 0, 2: 3}, got)
}

func TestParse_MalformedFieldReportsLine(t *testing.T) {
	_, err := Parse(strings.NewReader("\n1, 1, 0, 1, 1, 1\n2, 1, x, 1, 1, 1"))
	require.ErrorIs(t, err, ErrMalformedField)
	assert.Contains(t, err.Error(), "line 3")
}
