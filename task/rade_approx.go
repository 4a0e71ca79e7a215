package task

import (
	"context"

	E "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"tfsp/bound"
	"tfsp/dataset"
	"tfsp/sweep"
	U "tfsp/util"
)

// approximateGap splits datasetPath with splitter, runs the empirical search
// on the halves and turns the approximation into a gap.
func approximateGap(ctx context.Context, comps *Components, splitter *dataset.Splitter, datasetPath string, delta float64) (float64, *bound.EmpiricalResult, error) {
	split, err := splitter.Split(ctx, datasetPath)
	if err != nil {
		return 0, nil, err
	}
	res, err := comps.empiricalSearch().Run(ctx, split, datasetPath)
	if err != nil {
		return 0, nil, err
	}
	gap, err := bound.Gap(res.Rade, res.DatasetSize, delta)
	if err != nil {
		return 0, &res, E.Wrapf(err, "failed to compute gap of %s", datasetPath)
	}
	taskLog.WithFields(log.Fields{"dataset": datasetPath, "approx": res.Rade, "kappa": res.Kappa,
		"iterations": res.Iterations, "gap": gap}).Info("Empirical gap found.")
	return gap, &res, nil
}

// RadeApproxSweep computes the empirical gap of every sample of plan and
// writes one line per sample to radeApprox.txt.
func RadeApproxSweep(ctx context.Context, comps *Components, plan sweep.Plan) (*SweepReport, error) {
	jobs := plan.Jobs()
	taskLog.WithFields(log.Fields{"jobs": len(jobs), "workers": comps.Conf.Workers}).Info("Starting empirical sweep.")

	results, err := sweep.Run(ctx, jobs, comps.Conf.Workers, func(ctx context.Context, job sweep.Job) (sweep.Outcome, error) {
		gap, _, err := approximateGap(ctx, comps, comps.Splitter.Stream(job.Index), job.Path, plan.Delta)
		if err != nil {
			return sweep.Outcome{}, err
		}
		return sweep.Outcome{Value: gap}, nil
	})
	if err != nil {
		return nil, err
	}
	return finishSweep(comps, results, bound.MethodEmpirical, RadeApproxLog)
}

// RadeApproxSingle computes the empirical gap of one dataset, logs it to
// radeApprox_singleDataset.txt and certifies the dataset with it.
func RadeApproxSingle(ctx context.Context, comps *Components, datasetPath string, theta, delta float64) (*SingleReport, error) {
	gap, res, err := approximateGap(ctx, comps, comps.Splitter, datasetPath, delta)
	if err != nil {
		return nil, err
	}
	report := &SingleReport{Dataset: datasetPath, Gap: gap, Empirical: res}

	collector := bound.NewResultCollector()
	collector.Add(U.DatasetName(datasetPath), bound.MethodEmpirical, gap, false)
	if report.LogPath, err = collector.Persist(comps.Files, RadeApproxSingleLog); err != nil {
		return report, err
	}
	report.Certification, err = comps.certifier().Certify(ctx, datasetPath, theta, gap)
	return report, err
}
