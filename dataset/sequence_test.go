package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence("3 1 -1 2 -1 -1 4 -1 -2")
	require.Nil(t, err)
	assert.Equal(t, Sequence{{1, 3}, {2}, {4}}, seq)
	assert.Equal(t, 4, seq.ItemLength())

	seq, err = ParseSequence("")
	require.Nil(t, err)
	assert.Equal(t, 0, seq.ItemLength())

	_, err = ParseSequence("1 x -1 -2")
	assert.NotNil(t, err)
}

func TestSupport(t *testing.T) {
	db := make([]Sequence, 0)
	for _, line := range []string{
		"1 2 -1 3 -1 -2",
		"1 -1 3 -1 2 -1 -2",
		"3 -1 1 -1 -2",
		"1 2 3 -1 -2",
	} {
		seq, err := ParseSequence(line)
		require.Nil(t, err)
		db = append(db, seq)
	}

	tests := []struct {
		pattern string
		want    int
	}{
		{"1 -1", 4},
		{"1 -1 3 -1", 2},
		{"1 2 -1", 2},
		{"3 -1 1 -1", 1},
		{"4 -1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := ParseSequence(tt.pattern)
			require.Nil(t, err)
			assert.Equal(t, tt.want, p.Support(db))
		})
	}
}
