package task

import (
	"context"

	log "github.com/sirupsen/logrus"

	"tfsp/bound"
	"tfsp/filestore"
	U "tfsp/util"
	"tfsp/vcbound"
)

// VCBoundSingle bounds the maximum deviation of one dataset through its
// s-bound and certifies the dataset with it.
func VCBoundSingle(ctx context.Context, comps *Components, datasetPath string, theta, delta float64) (*SingleReport, error) {
	stats, err := vcbound.Compute(datasetPath)
	if err != nil {
		return nil, err
	}
	maxDev, err := vcbound.MaxDeviation(stats, delta)
	if err != nil {
		return nil, err
	}
	taskLog.WithFields(log.Fields{"dataset": datasetPath, "s_bound": stats.SBound,
		"size": stats.DatasetSize, "max_dev": maxDev}).Info("VC deviation bound found.")
	report := &SingleReport{Dataset: datasetPath, Gap: maxDev}

	collector := bound.NewResultCollector()
	collector.Add(U.DatasetName(datasetPath), bound.MethodVC, maxDev, false)
	if report.LogPath, err = collector.Persist(comps.Files, VCBoundSingleLog); err != nil {
		return report, err
	}
	certifier := comps.certifier()
	certifier.BoundName = filestore.BoundVC
	report.Certification, err = certifier.Certify(ctx, datasetPath, theta, maxDev)
	return report, err
}
