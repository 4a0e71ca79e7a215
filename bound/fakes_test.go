package bound

import (
	"context"
	"fmt"
	"sync"

	"tfsp/kernel"
	U "tfsp/util"
)

type fakeLengths struct {
	lengths kernel.Lengths
	err     error
}

func (f *fakeLengths) Lengths(ctx context.Context, datasetPath string) (kernel.Lengths, error) {
	return f.lengths, f.err
}

// fakeAnalytic returns tokens[eta]; etas in errs fail like a crashed
// process, missing etas like unreadable output.
type fakeAnalytic struct {
	tokens map[int]string
	errs   map[int]error
	calls  []int
}

func (f *fakeAnalytic) UpperBound(ctx context.Context, datasetPath string, delta float64, eta int) (string, error) {
	f.calls = append(f.calls, eta)
	if err, ok := f.errs[eta]; ok {
		return "", err
	}
	token, ok := f.tokens[eta]
	if !ok {
		return "", &U.ParseError{Source: "fake", Index: 1}
	}
	return token, nil
}

type mineCall struct {
	dataset string
	output  string
	support float64
}

type fakeOracle struct {
	mu    sync.Mutex
	calls []mineCall
	err   error
}

func (f *fakeOracle) Mine(ctx context.Context, datasetPath, outputPath string, minSupport float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, mineCall{datasetPath, outputPath, minSupport})
	return f.err
}

// fakeEmpirical replays approximations in order.
type fakeEmpirical struct {
	rades []float64
	size  float64
	calls [][]string
}

func (f *fakeEmpirical) Approximate(ctx context.Context, originalPath, halfBPath, patternsAPath, patternsBPath string) (kernel.Approximation, error) {
	f.calls = append(f.calls, []string{originalPath, halfBPath, patternsAPath, patternsBPath})
	if len(f.calls) > len(f.rades) {
		return kernel.Approximation{}, fmt.Errorf("unexpected call %d", len(f.calls))
	}
	return kernel.Approximation{Rade: f.rades[len(f.calls)-1], DatasetSize: f.size}, nil
}
