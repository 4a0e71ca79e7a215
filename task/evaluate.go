package task

import (
	log "github.com/sirupsen/logrus"

	"tfsp/pattern"
)

// Evaluation compares several mined sets against one ground truth.
type Evaluation struct {
	TruePatterns int
	Comparisons  map[string]pattern.Comparison
	// TimesFP and TimesFN are the percentages of mined sets holding at
	// least one false positive, respectively false negative.
	TimesFP      float64
	TimesFN      float64
}

// EvaluateGuarantees reads the true frequent patterns from truthPath and
// checks every mined set against them.
func EvaluateGuarantees(truthPath string, minedPaths []string) (*Evaluation, error) {
	truth, err := pattern.ReadPatternFile(truthPath)
	if err != nil {
		return nil, err
	}
	eval := &Evaluation{
		TruePatterns: len(pattern.Index(truth)),
		Comparisons:  make(map[string]pattern.Comparison, len(minedPaths)),
	}
	if len(minedPaths) == 0 {
		return eval, nil
	}

	withFP, withFN := 0, 0
	for _, path := range minedPaths {
		mined, err := pattern.ReadPatternFile(path)
		if err != nil {
			return nil, err
		}
		c := pattern.Compare(truth, mined)
		eval.Comparisons[path] = c
		if c.HasFalsePositives() {
			withFP++
		}
		if c.HasFalseNegatives() {
			withFN++
		}
		taskLog.WithFields(log.Fields{"mined": path, "reported": c.Reported,
			"fp": c.FalsePositives, "fn": c.FalseNegatives}).Info("Compared mined set.")
	}
	eval.TimesFP = float64(withFP) / float64(len(minedPaths)) * 100.0
	eval.TimesFN = float64(withFN) / float64(len(minedPaths)) * 100.0
	return eval, nil
}
