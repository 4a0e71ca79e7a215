package pattern

// Comparison counts the disagreements between a mined pattern set and the
// true frequent patterns.
type Comparison struct {
	TruePatterns   int
	Reported       int
	FalsePositives int
	FalseNegatives int
}

func (c Comparison) HasFalsePositives() bool {
	return c.FalsePositives > 0
}

func (c Comparison) HasFalseNegatives() bool {
	return c.FalseNegatives > 0
}

// Recall is the fraction of true patterns that were reported.
func (c Comparison) Recall() float64 {
	if c.TruePatterns == 0 {
		return 1.0
	}
	return float64(c.TruePatterns-c.FalseNegatives) / float64(c.TruePatterns)
}

// Compare matches patterns by their normalised text; supports are ignored.
func Compare(truth, mined []Pattern) Comparison {
	truthIdx := Index(truth)
	minedIdx := Index(mined)
	c := Comparison{TruePatterns: len(truthIdx), Reported: len(minedIdx)}
	for k := range truthIdx {
		if _, ok := minedIdx[k]; !ok {
			c.FalseNegatives++
		}
	}
	for k := range minedIdx {
		if _, ok := truthIdx[k]; !ok {
			c.FalsePositives++
		}
	}
	return c
}
