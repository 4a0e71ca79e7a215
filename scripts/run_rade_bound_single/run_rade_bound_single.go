package main

// Analytic Rademacher bound of one dataset, then mining of the certified
// pattern sets.
// go run run_rade_bound_single.go data/BIBLE.txt 0.1 0.1 20 120

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
)

func main() {
	flags := C.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <dataset> <theta> <delta> <beta1> <beta2>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 5 {
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
	beta1, err := strconv.Atoi(flag.Arg(3))
	if err != nil {
		log.WithError(err).Fatal("Invalid beta1.")
	}
	beta2, err := strconv.Atoi(flag.Arg(4))
	if err != nil {
		log.WithError(err).Fatal("Invalid beta2.")
	}

	config, err := C.LoadWithFlags(flag.CommandLine, flags, "run_rade_bound_single")
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

	report, err := T.RadeBoundSingle(context.Background(), comps, datasetPath, theta, delta, beta1, beta2)
	if err != nil {
		log.WithFields(log.Fields{"dataset": datasetPath, "theta": theta, "delta": delta,
			"beta1": beta1, "beta2": beta2}).WithError(err).Error("Analytic bound failed.")
		os.Exit(1)
	}
	log.WithFields(log.Fields{"dataset": datasetPath, "bound": U.FormatFloat(report.Gap),
		"sentinel": report.Sentinel, "eta": report.Analytic.Eta,
		"fn": report.Certification.FN.Path, "fn_skipped": report.Certification.FN.Skipped,
		"fp": report.Certification.FP.Path}).Info("Certified pattern sets mined.")
}
