// Package kernel defines the numeric kernels the bound search drives and
// their command line implementations.
package kernel

import (
	"context"
)

// InfToken is the literal an analytic kernel prints when its bound is
// infinite.
const InfToken = "inf"

// Lengths bounds the item-length threshold range of the analytic search.
// Min is the mean item-length of the transactions, Max the largest one.
type Lengths struct {
	Min float64
	Max float64
}

// Approximation is the output of the empirical kernel.
type Approximation struct {
	Rade        float64
	DatasetSize float64
}

type LengthStatistics interface {
	Lengths(ctx context.Context, datasetPath string) (Lengths, error)
}

// AnalyticKernel returns the raw bound token for one item-length threshold:
// a decimal number or InfToken. Parsing is left to the caller, which decides
// how to treat unusable tokens.
type AnalyticKernel interface {
	UpperBound(ctx context.Context, datasetPath string, delta float64, eta int) (string, error)
}

// EmpiricalKernel approximates the Rademacher complexity from the patterns
// mined on both sample halves.
type EmpiricalKernel interface {
	Approximate(ctx context.Context, originalPath, halfBPath, patternsAPath, patternsBPath string) (Approximation, error)
}
