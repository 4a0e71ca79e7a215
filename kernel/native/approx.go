package native

import (
	"context"
	"fmt"

	"tfsp/dataset"
	"tfsp/kernel"
	"tfsp/pattern"
)

// ApproxRade approximates the Rademacher complexity in-process.
type ApproxRade struct {
	Cache *DatasetCache
}

var _ kernel.EmpiricalKernel = (*ApproxRade)(nil)

func (a *ApproxRade) Approximate(ctx context.Context, originalPath, halfBPath, patternsAPath, patternsBPath string) (kernel.Approximation, error) {
	original, err := a.Cache.Load(originalPath)
	if err != nil {
		return kernel.Approximation{}, err
	}
	halfB, err := a.Cache.Load(halfBPath)
	if err != nil {
		return kernel.Approximation{}, err
	}
	patternsA, err := pattern.ReadPatternFile(patternsAPath)
	if err != nil {
		return kernel.Approximation{}, err
	}
	patternsB, err := pattern.ReadPatternFile(patternsBPath)
	if err != nil {
		return kernel.Approximation{}, err
	}
	return ApproximateRade(ctx, original, halfB, patternsA, patternsB)
}

// ApproximateRade returns max over patterns p frequent in half A of
// sup_A(p) - sup_B(p), divided by |D|. Supports of patterns not frequent in
// half B are counted directly on half B. The maximum starts at zero.
func ApproximateRade(ctx context.Context, original, halfB *dataset.Dataset, patternsA, patternsB []pattern.Pattern) (kernel.Approximation, error) {
	if original.Size() == 0 {
		return kernel.Approximation{}, fmt.Errorf("dataset %s has no transactions", original.Path)
	}
	supportsB := pattern.Index(patternsB)
	maxDifference := 0
	for _, p := range patternsA {
		if err := ctx.Err(); err != nil {
			return kernel.Approximation{}, err
		}
		supportB, ok := supportsB[p.Key()]
		if !ok {
			seq, err := p.Sequence()
			if err != nil {
				return kernel.Approximation{}, err
			}
			supportB = seq.Support(halfB.Sequences)
		}
		if diff := p.Support - supportB; diff > maxDifference {
			maxDifference = diff
		}
	}
	n := float64(original.Size())
	return kernel.Approximation{Rade: float64(maxDifference) / n, DatasetSize: n}, nil
}
