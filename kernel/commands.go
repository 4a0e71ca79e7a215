package kernel

import (
	"context"
	"strconv"

	log "github.com/sirupsen/logrus"

	"tfsp/command"
	U "tfsp/util"
)

// LengthsCommand runs `<binary> <dataset>` and reads "min max".
type LengthsCommand struct {
	Runner *command.Runner
	Binary string
}

// RadeBoundCommand runs `<binary> <dataset> <delta> <eta>` and returns the
// second output token.
type RadeBoundCommand struct {
	Runner *command.Runner
	Binary string
}

// ApproxRadeCommand runs `<binary> <original> <halfB> <patternsA> <patternsB>`
// and reads "approx size".
type ApproxRadeCommand struct {
	Runner *command.Runner
	Binary string
}

var (
	_ LengthStatistics = (*LengthsCommand)(nil)
	_ AnalyticKernel   = (*RadeBoundCommand)(nil)
	_ EmpiricalKernel  = (*ApproxRadeCommand)(nil)
)

func (c *LengthsCommand) Lengths(ctx context.Context, datasetPath string) (Lengths, error) {
	out, err := c.Runner.Run(ctx, c.Binary, datasetPath)
	if err != nil {
		return Lengths{}, err
	}
	min, max, err := U.ParseFloatPair(c.Binary, out)
	if err != nil {
		log.WithFields(log.Fields{"dataset": datasetPath, "output": out}).
			WithError(err).Error("Unreadable length statistics.")
		return Lengths{}, err
	}
	return Lengths{Min: min, Max: max}, nil
}

func (c *RadeBoundCommand) UpperBound(ctx context.Context, datasetPath string, delta float64, eta int) (string, error) {
	out, err := c.Runner.Run(ctx, c.Binary, datasetPath, U.FormatFloat(delta), strconv.Itoa(eta))
	if err != nil {
		return "", err
	}
	// The kernel prints "<dataset> <bound>", or a message when its
	// optimisation fails; either way token 1 is handed back unparsed.
	return U.TokenAt(c.Binary, out, 1)
}

func (c *ApproxRadeCommand) Approximate(ctx context.Context, originalPath, halfBPath, patternsAPath, patternsBPath string) (Approximation, error) {
	out, err := c.Runner.Run(ctx, c.Binary, originalPath, halfBPath, patternsAPath, patternsBPath)
	if err != nil {
		return Approximation{}, err
	}
	rade, size, err := U.ParseFloatPair(c.Binary, out)
	if err != nil {
		log.WithFields(log.Fields{"dataset": originalPath, "output": out}).
			WithError(err).Error("Unreadable complexity approximation.")
		return Approximation{}, err
	}
	return Approximation{Rade: rade, DatasetSize: size}, nil
}
