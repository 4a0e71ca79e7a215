package pattern

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"tfsp/command"
	U "tfsp/util"
)

// Oracle mines every pattern of datasetPath with support of at least
// minSupport percent and writes them to outputPath, one per line.
type Oracle interface {
	Mine(ctx context.Context, datasetPath, outputPath string, minSupport float64) error
}

// SPMFOracle runs a miner from the SPMF jar:
// java -Xmx<heap> -jar <jar> run <algorithm> <in> <out> <support>%
type SPMFOracle struct {
	Runner    *command.Runner
	Java      string
	MaxHeap   string
	Jar       string
	Algorithm string
}

var _ Oracle = (*SPMFOracle)(nil)

func (o *SPMFOracle) Args(datasetPath, outputPath string, minSupport float64) []string {
	args := make([]string, 0, 8)
	if o.MaxHeap != "" {
		args = append(args, "-Xmx"+o.MaxHeap)
	}
	return append(args, "-jar", o.Jar, "run", o.Algorithm,
		datasetPath, outputPath, U.FormatPercent(minSupport))
}

func (o *SPMFOracle) Mine(ctx context.Context, datasetPath, outputPath string, minSupport float64) error {
	if minSupport < 0 {
		return fmt.Errorf("negative minimum support %v for %s", minSupport, datasetPath)
	}
	logCtx := log.WithFields(log.Fields{"dataset": datasetPath, "output": outputPath,
		"min_support": U.FormatPercent(minSupport)})
	logCtx.Debug("Mining frequent patterns.")
	if _, err := o.Runner.Run(ctx, o.Java, o.Args(datasetPath, outputPath, minSupport)...); err != nil {
		logCtx.WithError(err).Error("Mining failed.")
		return err
	}
	return nil
}
