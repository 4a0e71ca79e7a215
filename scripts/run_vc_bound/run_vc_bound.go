package main

// VC-dimension deviation bound of one dataset, then mining of the
// certified pattern sets.
// go run run_vc_bound.go data/BIBLE.txt 0.1 0.1

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"

	C "tfsp/config"
	T "tfsp/task"
	U "tfsp/util"
	"tfsp/vcbound"
)

func main() {
	flags := C.RegisterFlags(flag.CommandLine)
	eps := flag.Float64("eps", 0, "Optional: also report the sample size needed for this error")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <dataset> <theta> <delta>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(2)
	}

	datasetPath := flag.Arg(0)
	theta, err := strconv.ParseFloat(flag.Arg(1), 64)
	if err != nil {
		log.WithError(err).Fatal("Invalid theta.")
	}
	delta, err := strconv.ParseFloat(flag.Arg(2), 64)
	if err != nil {
		log.WithError(err).Fatal("Invalid delta.")
	}

	config, err := C.LoadWithFlags(flag.CommandLine, flags, "run_vc_bound")
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration.")
	}
	if err := C.InitConf(config); err != nil {
		log.WithError(err).Fatal("Failed to initialize config.")
	}
	comps, err := T.NewComponents(config)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize components.")
	}

	if *eps > 0 {
		stats, err := vcbound.Compute(datasetPath)
		if err != nil {
			log.WithError(err).Fatal("Failed to compute s-bound.")
		}
		size, err := vcbound.SampleSize(stats, *eps, delta)
		if err != nil {
			log.WithError(err).Fatal("Failed to compute sample size.")
		}
		log.WithFields(log.Fields{"dataset": datasetPath, "size": stats.DatasetSize,
			"sample_size": size}).Info("Sample size.")
	}

	report, err := T.VCBoundSingle(context.Background(), comps, datasetPath, theta, delta)
	if err != nil {
		log.WithFields(log.Fields{"dataset": datasetPath, "theta": theta,
			"delta": delta}).WithError(err).Error("VC bound failed.")
		os.Exit(1)
	}
	log.WithFields(log.Fields{"dataset": datasetPath, "max_dev": U.FormatFloat(report.Gap),
		"fn": report.Certification.FN.Path, "fn_skipped": report.Certification.FN.Skipped,
		"fp": report.Certification.FP.Path}).Info("Certified pattern sets mined.")
}
