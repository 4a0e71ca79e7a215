// Package sweep runs a bound computation over every sample of a plan and
// summarises the results per dataset.
package sweep

import (
	"context"
	"math"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Outcome is what a job reports on success.
type Outcome struct {
	Value    float64
	Sentinel bool
}

type JobFunc func(ctx context.Context, job Job) (Outcome, error)

type Result struct {
	Job
	Outcome
	Err error
}

// Run executes fn for every job with at most workers jobs in flight. The
// returned slice is in job order whatever the completion order. A failing
// job is recorded in its slot and the sweep goes on; only cancellation of
// ctx stops it early.
func Run(ctx context.Context, jobs []Job, workers int, fn JobFunc) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range jobs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Job: jobs[i], Err: err}
				return err
			}
			out, err := fn(gctx, jobs[i])
			results[i] = Result{Job: jobs[i], Outcome: out, Err: err}
			if err != nil {
				log.WithFields(log.Fields{"dataset": jobs[i].Dataset, "repetition": jobs[i].Repetition,
					"path": jobs[i].Path}).WithError(err).Error("Sweep job failed.")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// Summary aggregates the successful results of one dataset.
type Summary struct {
	Dataset  string
	Runs     int
	Failures int
	Mean     float64
	Max      float64
	StdDev   float64
}

// Summarize groups results by dataset in the order datasets first appear.
// Failed and non-finite results only count as failures.
func Summarize(results []Result) []Summary {
	order := make([]string, 0)
	values := make(map[string][]float64)
	failures := make(map[string]int)
	for _, r := range results {
		if _, ok := values[r.Dataset]; !ok {
			order = append(order, r.Dataset)
			values[r.Dataset] = make([]float64, 0)
		}
		if r.Err != nil || math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			failures[r.Dataset]++
			continue
		}
		values[r.Dataset] = append(values[r.Dataset], r.Value)
	}

	summaries := make([]Summary, 0, len(order))
	for _, ds := range order {
		s := Summary{Dataset: ds, Runs: len(values[ds]), Failures: failures[ds]}
		if s.Runs > 0 {
			data := stats.Float64Data(values[ds])
			s.Mean, _ = stats.Mean(data)
			s.Max, _ = stats.Max(data)
			s.StdDev, _ = stats.StandardDeviationPopulation(data)
		}
		summaries = append(summaries, s)
	}
	return summaries
}
