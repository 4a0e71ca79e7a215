package task

import (
	"context"

	log "github.com/sirupsen/logrus"

	"tfsp/bound"
	"tfsp/sweep"
	U "tfsp/util"
)

// SweepReport is the outcome of a batch job.
type SweepReport struct {
	Results   []sweep.Result
	Summaries []sweep.Summary
	LogPath   string
}

// SingleReport is the outcome of a single dataset job.
type SingleReport struct {
	Dataset       string
	Gap           float64
	Sentinel      bool
	Analytic      *bound.AnalyticResult
	Empirical     *bound.EmpiricalResult
	Certification bound.Certification
	LogPath       string
}

// RadeBoundSweep computes the analytic bound of every sample of plan and
// writes one line per sample to radeBound.txt.
func RadeBoundSweep(ctx context.Context, comps *Components, plan sweep.Plan) (*SweepReport, error) {
	search := comps.analyticSearch()
	jobs := plan.Jobs()
	taskLog.WithFields(log.Fields{"jobs": len(jobs), "workers": comps.Conf.Workers}).Info("Starting analytic sweep.")

	results, err := sweep.Run(ctx, jobs, comps.Conf.Workers, func(ctx context.Context, job sweep.Job) (sweep.Outcome, error) {
		res, err := search.Run(ctx, job.Path, plan.Delta, plan.Beta1, plan.Beta2)
		if err != nil {
			return sweep.Outcome{}, err
		}
		return sweep.Outcome{Value: res.Bound, Sentinel: res.Sentinel}, nil
	})
	if err != nil {
		return nil, err
	}
	return finishSweep(comps, results, bound.MethodAnalytic, RadeBoundLog)
}

func finishSweep(comps *Components, results []sweep.Result, method, logName string) (*SweepReport, error) {
	collector := bound.NewResultCollector()
	for _, r := range results {
		if r.Err != nil {
			collector.AddFailure(r.Dataset, method, r.Err)
			continue
		}
		collector.Add(r.Dataset, method, r.Value, r.Sentinel)
	}
	logPath, err := collector.Persist(comps.Files, logName)
	if err != nil {
		return nil, err
	}

	report := &SweepReport{Results: results, Summaries: sweep.Summarize(results), LogPath: logPath}
	for _, s := range report.Summaries {
		taskLog.WithFields(log.Fields{"dataset": s.Dataset, "method": method, "runs": s.Runs,
			"failures": s.Failures, "avg": U.FormatFloat(s.Mean), "max": U.FormatFloat(s.Max),
			"std": U.FormatFloat(s.StdDev)}).Info("Sweep summary.")
	}
	return report, nil
}

// RadeBoundSingle computes the analytic bound of one dataset, logs it to
// radeBound_singleDataset.txt and certifies the dataset with it.
func RadeBoundSingle(ctx context.Context, comps *Components, datasetPath string,
	theta, delta float64, beta1, beta2 int) (*SingleReport, error) {

	res, err := comps.analyticSearch().Run(ctx, datasetPath, delta, beta1, beta2)
	if err != nil {
		return nil, err
	}
	report := &SingleReport{Dataset: datasetPath, Gap: res.Bound, Sentinel: res.Sentinel, Analytic: &res}

	collector := bound.NewResultCollector()
	collector.Add(U.DatasetName(datasetPath), bound.MethodAnalytic, res.Bound, res.Sentinel)
	if report.LogPath, err = collector.Persist(comps.Files, RadeBoundSingleLog); err != nil {
		return report, err
	}
	if res.Sentinel {
		taskLog.WithField("dataset", datasetPath).Warn("Certifying with the no-bound sentinel.")
	}

	report.Certification, err = comps.certifier().Certify(ctx, datasetPath, theta, res.Bound)
	return report, err
}
