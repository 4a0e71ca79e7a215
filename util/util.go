package util

import (
	"math"

	"github.com/google/uuid"
)

func GetUUID() string {
	return uuid.New().String()
}

// IsFiniteNonNegative reports whether v is usable as a complexity estimate.
func IsFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
