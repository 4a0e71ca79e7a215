package bound

import (
	"context"

	E "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"tfsp/dataset"
	"tfsp/kernel"
	"tfsp/pattern"
	U "tfsp/util"
)

const (
	DefaultInitialKappa  = 10.0
	DefaultMaxIterations = 64
	// contractionEpsilon keeps the contracted threshold strictly below the
	// observed approximation.
	contractionEpsilon = 1e-8
)

// Iteration records one step of the empirical search.
type Iteration struct {
	Kappa       float64
	Rade        float64
	PatternsA   string
	PatternsB   string
	Transition  string
	DatasetSize float64
}

// Transitions of the empirical search.
const (
	TransitionHalve    = "halve"
	TransitionStop     = "stop"
	TransitionContract = "contract"
)

// EmpiricalResult holds the approximation that stopped the search.
type EmpiricalResult struct {
	Rade        float64
	Kappa       float64
	DatasetSize float64
	Iterations  int
	Trace       []Iteration
}

// EmpiricalSearch looks for a support threshold kappa (in percent) at which
// the approximated complexity is at least kappa/100.
type EmpiricalSearch struct {
	Oracle        pattern.Oracle
	Kernel        kernel.EmpiricalKernel
	InitialKappa  float64
	MaxIterations int
}

// PatternFilePath names the patterns mined from a half at kappa, e.g.
// "data/S1_sx_10.0.txt".
func PatternFilePath(halfStem string, kappa float64) string {
	return halfStem + "_" + U.FormatFloat(kappa) + ".txt"
}

// Run mines both halves of split at kappa and approximates the complexity
// until a fixed point is reached. Every kernel or oracle failure aborts.
func (s *EmpiricalSearch) Run(ctx context.Context, split dataset.SplitResult, originalPath string) (EmpiricalResult, error) {
	kappa := s.InitialKappa
	if kappa <= 0 {
		kappa = DefaultInitialKappa
	}
	maxIterations := s.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	res := EmpiricalResult{}
	for i := 1; i <= maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		step := Iteration{
			Kappa:     kappa,
			PatternsA: PatternFilePath(split.StemA, kappa),
			PatternsB: PatternFilePath(split.StemB, kappa),
		}
		if err := s.Oracle.Mine(ctx, split.HalfA, step.PatternsA, kappa); err != nil {
			return res, E.Wrapf(err, "failed to mine %s", split.HalfA)
		}
		if err := s.Oracle.Mine(ctx, split.HalfB, step.PatternsB, kappa); err != nil {
			return res, E.Wrapf(err, "failed to mine %s", split.HalfB)
		}
		approx, err := s.Kernel.Approximate(ctx, originalPath, split.HalfB, step.PatternsA, step.PatternsB)
		if err != nil {
			return res, E.Wrapf(err, "failed to approximate complexity of %s", originalPath)
		}
		if !U.IsFiniteNonNegative(approx.Rade) {
			return res, E.Wrapf(ErrInvalidEstimate, "approximation %v at kappa %v", approx.Rade, kappa)
		}
		step.Rade, step.DatasetSize = approx.Rade, approx.DatasetSize
		res.Iterations = i
		res.Rade, res.Kappa, res.DatasetSize = approx.Rade, kappa, approx.DatasetSize

		logCtx := log.WithFields(log.Fields{"dataset": originalPath, "iteration": i,
			"kappa": kappa, "approx": approx.Rade})
		switch {
		case approx.Rade == 0:
			step.Transition = TransitionHalve
			kappa /= 2.0
		case approx.Rade >= kappa/100.0:
			step.Transition = TransitionStop
		default:
			step.Transition = TransitionContract
			kappa = (approx.Rade - contractionEpsilon) * 100.0
		}
		res.Trace = append(res.Trace, step)
		logCtx.WithField("transition", step.Transition).Info("Empirical search step.")

		if step.Transition == TransitionStop {
			return res, nil
		}
		if kappa <= 0 {
			return res, E.Wrapf(ErrDegenerateThreshold, "approximation %v at kappa %v", approx.Rade, step.Kappa)
		}
	}
	return res, &NotConvergedError{Iterations: res.Iterations, LastKappa: res.Kappa, LastRade: res.Rade}
}
