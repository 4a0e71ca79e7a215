package vcbound

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSBound(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"duplicates count once", []string{"1 2 3 -1 -2", "4 5 -1 6 -1 -2", "7 -1 -2", "1 2 3 -1 -2", "8 9 10 11 -1 -2"}, 3},
		{"short transactions", []string{"1 -1 -2", "2 -1 -2"}, 1},
		{"evicts the shortest", []string{"1 -1 -2", "1 2 -1 -2", "3 -1 4 -1 -2"}, 2},
		{"empty", []string{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := NewSBound()
			for _, line := range tt.lines {
				require.Nil(t, sb.Add(line))
			}
			assert.Equal(t, tt.want, sb.Value())
			assert.Equal(t, len(tt.lines), sb.Size())
		})
	}
	assert.NotNil(t, NewSBound().Add("1 x -1 -2"))
}

func TestSBoundEvictsOldestOfTies(t *testing.T) {
	sb := NewSBound()
	for _, line := range []string{"1 2 -1 -2", "3 4 -1 -2", "5 6 7 -1 -2"} {
		require.Nil(t, sb.Add(line))
	}
	assert.Equal(t, 2, sb.Value())
	lines := make([]string, 0, len(sb.ordered))
	for _, c := range sb.ordered {
		lines = append(lines, c.line)
	}
	assert.Equal(t, []string{"5 6 7 -1 -2", "3 4 -1 -2"}, lines)
	assert.NotContains(t, sb.seen, "1 2 -1 -2")
	assert.Contains(t, sb.seen, "3 4 -1 -2")

	// The evicted line is dropped by length on repeat, the kept one as a
	// duplicate.
	require.Nil(t, sb.Add("1 2 -1 -2"))
	require.Nil(t, sb.Add("3 4 -1 -2"))
	assert.Equal(t, 2, sb.Value())
	assert.Equal(t, 5, sb.Size())
	assert.Len(t, sb.ordered, 2)
}

func TestComputeAndDeviation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.txt")
	lines := []string{"1 2 3 -1 -2", "4 5 -1 6 -1 -2", "7 -1 -2", "1 2 3 -1 -2", "8 9 10 11 -1 -2"}
	require.Nil(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))

	stats, err := Compute(path)
	require.Nil(t, err)
	assert.Equal(t, Stats{DatasetSize: 5, SBound: 3}, stats)

	dev, err := MaxDeviation(stats, 0.1)
	require.Nil(t, err)
	assert.InDelta(t, math.Sqrt((3+math.Log(10))/10), dev, 1e-12)

	size, err := SampleSize(stats, 0.1, 0.1)
	require.Nil(t, err)
	assert.Equal(t, 1061, size)

	_, err = Compute(filepath.Join(t.TempDir(), "none.txt"))
	assert.NotNil(t, err)
}

func TestInvalidParameters(t *testing.T) {
	stats := Stats{DatasetSize: 10, SBound: 2}
	_, err := MaxDeviation(stats, 0)
	assert.True(t, errors.Is(err, ErrInvalidConfidence))
	_, err = MaxDeviation(Stats{}, 0.1)
	assert.True(t, errors.Is(err, ErrEmptyDataset))
	_, err = SampleSize(stats, 0, 0.1)
	assert.True(t, errors.Is(err, ErrInvalidError))
	_, err = SampleSize(stats, 0.1, 1)
	assert.True(t, errors.Is(err, ErrInvalidConfidence))
}
