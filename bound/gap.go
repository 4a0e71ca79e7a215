package bound

import (
	"math"

	E "github.com/pkg/errors"

	U "tfsp/util"
)

// ConcentrationTerm is sqrt(2 ln(2/delta) / n), the deviation allowed by the
// bounded differences inequality at confidence 1-delta.
func ConcentrationTerm(n, delta float64) (float64, error) {
	if err := validateConfidence(delta); err != nil {
		return 0, err
	}
	if !(n > 0) || math.IsInf(n, 0) {
		return 0, E.Wrapf(ErrInvalidSampleSize, "n=%v", n)
	}
	return math.Sqrt((2.0 * math.Log(2.0/delta)) / n), nil
}

// Gap combines a complexity estimate with the concentration term:
// 2*complexity + sqrt(2 ln(2/delta) / n).
func Gap(complexity, n, delta float64) (float64, error) {
	if !U.IsFiniteNonNegative(complexity) {
		return 0, E.Wrapf(ErrInvalidEstimate, "complexity=%v", complexity)
	}
	term, err := ConcentrationTerm(n, delta)
	if err != nil {
		return 0, err
	}
	return 2.0*complexity + term, nil
}

func validateConfidence(delta float64) error {
	if !(delta > 0 && delta < 1) {
		return E.Wrapf(ErrInvalidConfidence, "delta=%v", delta)
	}
	return nil
}
