package main

// Empirical Rademacher gap of every sample of a sweep plan.
// go run run_rade_approx.go --plan=plan.yaml

import (
	"context"
	"flag"
	"os"

	log "github.com/sirupsen/logrus"

	C "tfsp/config"
	"tfsp/sweep"
	T "tfsp/task"
)

func main() {
	flags := C.RegisterFlags(flag.CommandLine)
	planFile := flag.String("plan", "", "Optional YAML sweep plan")
	flag.Parse()

	appName := "run_rade_approx"
	config, err := C.LoadWithFlags(flag.CommandLine, flags, appName)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration.")
	}
	if err := C.InitConf(config); err != nil {
		log.WithError(err).Fatal("Failed to initialize config.")
	}

	plan, err := sweep.LoadPlan(*planFile)
	if err != nil {
		log.WithError(err).Fatal("Failed to load sweep plan.")
	}
	comps, err := T.NewComponents(config)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize components.")
	}

	report, err := T.RadeApproxSweep(context.Background(), comps, plan)
	if err != nil {
		log.WithFields(log.Fields{"plan": *planFile}).WithError(err).Error("Empirical sweep failed.")
		os.Exit(1)
	}
	log.WithFields(log.Fields{"log": report.LogPath, "runs": len(report.Results)}).Info("Empirical sweep done.")
}
