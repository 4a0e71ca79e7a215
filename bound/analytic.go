package bound

import (
	"context"
	"errors"
	"math"
	"strings"

	E "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	C "tfsp/config"
	"tfsp/kernel"
	U "tfsp/util"
)

// NoBoundSentinel is reported when no item-length threshold of the range
// produced a usable bound. It is a deviation of 100%, so certifying with it
// never yields a lower threshold.
const NoBoundSentinel = 100.0

// AnalyticResult is the outcome of one analytic threshold scan.
type AnalyticResult struct {
	Bound     float64
	// Eta is the threshold that produced Bound, -1 when Sentinel is set.
	Eta       int
	Sentinel  bool
	MinEta    int
	MaxEta    int
	// Evaluated counts the thresholds whose bound was accepted, Skipped the
	// ones whose token was unusable.
	Evaluated int
	Skipped   int
}

// AnalyticSearch scans the item-length thresholds of a dataset and keeps the
// smallest analytic bound.
type AnalyticSearch struct {
	Lengths   kernel.LengthStatistics
	Kernel    kernel.AnalyticKernel
	// InfPolicy is C.InfPolicySkip or C.InfPolicyLegacy. Empty means skip.
	InfPolicy string
}

// EtaRange returns [ceil(min)+beta1, min(beta2, max)], the upper end
// truncated to an integer.
func EtaRange(lengths kernel.Lengths, beta1, beta2 int) (int, int, error) {
	if math.IsNaN(lengths.Min) || math.IsNaN(lengths.Max) || lengths.Min < 0 || lengths.Max < 0 {
		return 0, 0, E.Wrapf(ErrInvalidRange, "lengths min=%v max=%v", lengths.Min, lengths.Max)
	}
	minEta := int(math.Ceil(lengths.Min)) + beta1
	maxEta := int(math.Min(float64(beta2), lengths.Max))
	return minEta, maxEta, nil
}

// Run evaluates every threshold of the range in ascending order. Unusable
// kernel output is skipped with a warning; a failing kernel process aborts
// the scan.
func (s *AnalyticSearch) Run(ctx context.Context, datasetPath string, delta float64, beta1, beta2 int) (AnalyticResult, error) {
	if err := validateConfidence(delta); err != nil {
		return AnalyticResult{}, err
	}
	lengths, err := s.Lengths.Lengths(ctx, datasetPath)
	if err != nil {
		return AnalyticResult{}, E.Wrapf(err, "failed to compute lengths of %s", datasetPath)
	}
	minEta, maxEta, err := EtaRange(lengths, beta1, beta2)
	if err != nil {
		return AnalyticResult{}, err
	}
	etas := make([]int, 0)
	for eta := minEta; eta <= maxEta; eta++ {
		etas = append(etas, eta)
	}
	res, err := s.scan(ctx, datasetPath, delta, etas)
	res.MinEta, res.MaxEta = minEta, maxEta
	return res, err
}

func (s *AnalyticSearch) scan(ctx context.Context, datasetPath string, delta float64, etas []int) (AnalyticResult, error) {
	res := AnalyticResult{Bound: NoBoundSentinel, Eta: -1}
	found := false
	for _, eta := range etas {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		logCtx := log.WithFields(log.Fields{"dataset": datasetPath, "eta": eta})

		token, err := s.Kernel.UpperBound(ctx, datasetPath, delta, eta)
		if err != nil {
			var parseErr *U.ParseError
			if errors.As(err, &parseErr) {
				logCtx.WithError(err).Warn("The result cannot be converted in float.")
				res.Skipped++
				continue
			}
			return res, E.Wrapf(err, "analytic kernel failed on %s at eta %d", datasetPath, eta)
		}

		var value float64
		if strings.EqualFold(strings.TrimSpace(token), kernel.InfToken) {
			if s.InfPolicy != C.InfPolicyLegacy {
				logCtx.WithField("token", token).Warn("Infinite bound skipped.")
				res.Skipped++
				continue
			}
			value = math.Inf(1)
		} else {
			value, err = U.ParseFloatToken(datasetPath, token, 1)
			if err != nil {
				logCtx.WithField("token", token).WithError(err).Warn("The result cannot be converted in float.")
				res.Skipped++
				continue
			}
		}

		res.Evaluated++
		logCtx.WithField("bound", value).Debug("Evaluated analytic bound.")
		// The tracked minimum starts at the sentinel, so bounds above it
		// are never selected.
		if math.IsInf(value, 1) || value <= res.Bound {
			res.Bound, res.Eta = value, eta
			found = true
		}
	}

	if !found {
		res.Sentinel = true
		log.WithFields(log.Fields{"dataset": datasetPath, "skipped": res.Skipped,
			"sentinel": NoBoundSentinel}).Warn("No valid bound in the threshold range.")
		return res, nil
	}
	log.WithFields(log.Fields{"dataset": datasetPath, "bound": res.Bound,
		"eta": res.Eta}).Info("Analytic bound found.")
	return res, nil
}
