package bound

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfidence = errors.New("confidence delta must lie in (0,1)")
	ErrInvalidSampleSize = errors.New("sample size must be positive")
	ErrInvalidEstimate   = errors.New("complexity estimate must be finite and non-negative")
	ErrInvalidRange      = errors.New("empty item-length threshold range")
	// ErrDegenerateThreshold is returned when the contraction step would push
	// the support threshold to zero or below.
	ErrDegenerateThreshold = errors.New("support threshold is no longer positive")
	ErrNotConverged        = errors.New("threshold search did not converge")
)

// NotConvergedError reports an exhausted empirical search.
type NotConvergedError struct {
	Iterations int
	LastKappa  float64
	LastRade   float64
}

func (e *NotConvergedError) Error() string {
	return fmt.Sprintf("%v after %d iterations (kappa=%v, approx=%v)",
		ErrNotConverged, e.Iterations, e.LastKappa, e.LastRade)
}

func (e *NotConvergedError) Unwrap() error {
	return ErrNotConverged
}
