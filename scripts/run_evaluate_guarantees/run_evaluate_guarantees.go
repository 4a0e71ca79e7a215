package main

// Compares mined pattern sets with the true frequent patterns.
// go run run_evaluate_guarantees.go --truth=data/BIBLE_GT1.txt --mined=a.txt,b.txt

import (
	"flag"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	C "tfsp/config"
	T "tfsp/task"
)

func main() {
	env := flag.String("env", C.DEVELOPMENT, "")
	truth := flag.String("truth", "", "Pattern file of the true frequent patterns")
	mined := flag.String("mined", "", "Comma separated pattern files to evaluate")
	flag.Parse()

	if *truth == "" || *mined == "" {
		log.Fatal("Both --truth and --mined are required.")
	}
	config := C.Default()
	config.AppName = "run_evaluate_guarantees"
	config.Env = *env
	if err := C.InitConf(config); err != nil {
		log.WithError(err).Fatal("Failed to initialize config.")
	}

	minedPaths := make([]string, 0)
	for _, p := range strings.Split(*mined, ",") {
		if p = strings.TrimSpace(p); p != "" {
			minedPaths = append(minedPaths, p)
		}
	}

	eval, err := T.EvaluateGuarantees(*truth, minedPaths)
	if err != nil {
		log.WithFields(log.Fields{"truth": *truth}).WithError(err).Error("Evaluation failed.")
		os.Exit(1)
	}
	log.WithFields(log.Fields{"tfsp": eval.TruePatterns, "times_fp": eval.TimesFP,
		"times_fn": eval.TimesFN}).Info("Evaluation done.")
}
