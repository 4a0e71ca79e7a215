package bound

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcentrationTerm(t *testing.T) {
	term, err := ConcentrationTerm(1000, 0.1)
	require.Nil(t, err)
	assert.InDelta(t, math.Sqrt(2*math.Log(20)/1000), term, 1e-15)

	_, err = ConcentrationTerm(0, 0.1)
	assert.True(t, errors.Is(err, ErrInvalidSampleSize))
	_, err = ConcentrationTerm(-5, 0.1)
	assert.True(t, errors.Is(err, ErrInvalidSampleSize))
	for _, delta := range []float64{0, 1, -0.1, 1.5} {
		_, err = ConcentrationTerm(100, delta)
		assert.True(t, errors.Is(err, ErrInvalidConfidence), "delta %v", delta)
	}
}

func TestGap(t *testing.T) {
	gap, err := Gap(0.06, 1000, 0.1)
	require.Nil(t, err)
	term, _ := ConcentrationTerm(1000, 0.1)
	assert.InDelta(t, 0.12+term, gap, 1e-15)

	_, err = Gap(-0.01, 1000, 0.1)
	assert.True(t, errors.Is(err, ErrInvalidEstimate))
	_, err = Gap(math.Inf(1), 1000, 0.1)
	assert.True(t, errors.Is(err, ErrInvalidEstimate))
	_, err = Gap(math.NaN(), 1000, 0.1)
	assert.True(t, errors.Is(err, ErrInvalidEstimate))
}

func TestGapMonotonicity(t *testing.T) {
	deltas := []float64{0.5, 0.2, 0.1, 0.05, 0.01, 0.001}
	prev := -1.0
	for _, delta := range deltas {
		gap, err := Gap(0.03, 500, delta)
		require.Nil(t, err)
		assert.True(t, gap > prev, "smaller delta must widen the gap")
		prev = gap
	}

	prev = math.Inf(1)
	for _, n := range []float64{10, 100, 1000, 10000} {
		gap, err := Gap(0.03, n, 0.1)
		require.Nil(t, err)
		assert.True(t, gap < prev, "larger samples must narrow the gap")
		prev = gap
	}

	low, _ := Gap(0.01, 500, 0.1)
	high, _ := Gap(0.02, 500, 0.1)
	assert.True(t, high > low)
}
