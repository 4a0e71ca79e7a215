package dataset

import (
	"bufio"
	"context"
	"math/rand"
	"os"
	"sync"
	"time"

	E "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	U "tfsp/util"
)

// Suffixes of the two halves. Half A ("sx") is the +1 labelled half, half B
// ("dx") the -1 labelled one.
const (
	HalfASuffix = "_sx"
	HalfBSuffix = "_dx"
)

// SplitResult describes the two persisted halves of one dataset.
type SplitResult struct {
	Source   string
	HalfA    string
	HalfB    string
	SizeA    int
	SizeB    int
	StemA    string
	StemB    string
	Original int
}

// Splitter assigns every transaction to one of two halves by a fair coin.
// It is safe for concurrent use, but concurrent splits share one stream of
// flips; use Stream to give each job its own.
type Splitter struct {
	mu     sync.Mutex
	rng    *rand.Rand
	seed   int64
	seeded bool
}

// NewSplitter uses rng for every coin flip. A nil rng falls back to a time
// seeded source, so consecutive runs give different splits.
func NewSplitter(rng *rand.Rand) *Splitter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Splitter{rng: rng}
}

// NewSplitterWithSeed returns a splitter whose flips, and those of every
// stream derived from it, are fixed by seed.
func NewSplitterWithSeed(seed int64) *Splitter {
	return &Splitter{rng: rand.New(rand.NewSource(seed)), seed: seed, seeded: true}
}

// Stream returns an independent splitter for job index. Streams depend only
// on the base seed and the index, never on the order jobs run in. A splitter
// built without a seed draws its base seed once from its own source.
func (s *Splitter) Stream(index int) *Splitter {
	s.mu.Lock()
	if !s.seeded {
		s.seed, s.seeded = s.rng.Int63(), true
	}
	base := s.seed
	s.mu.Unlock()
	return NewSplitterWithSeed(streamSeed(base, index))
}

// streamSeed mixes base and index with the splitmix64 finalizer.
func streamSeed(base int64, index int) int64 {
	z := uint64(base) + uint64(index+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// HalfPaths returns where the halves of source are written, next to it:
// "data/S1.txt" -> "data/S1_sx.txt", "data/S1_dx.txt".
func HalfPaths(source string) (string, string) {
	stem := U.StemBeforeFirstDot(source)
	return stem + HalfASuffix + ".txt", stem + HalfBSuffix + ".txt"
}

// Split reads source line by line and writes each line to exactly one half.
func (s *Splitter) Split(ctx context.Context, source string) (SplitResult, error) {
	pathA, pathB := HalfPaths(source)
	stem := U.StemBeforeFirstDot(source)
	res := SplitResult{Source: source, HalfA: pathA, HalfB: pathB,
		StemA: stem + HalfASuffix, StemB: stem + HalfBSuffix}

	in, err := os.Open(source)
	if err != nil {
		return res, E.Wrapf(err, "failed to open dataset %s", source)
	}
	defer in.Close()

	outA, err := os.Create(pathA)
	if err != nil {
		return res, E.Wrapf(err, "failed to create sample half %s", pathA)
	}
	defer outA.Close()
	outB, err := os.Create(pathB)
	if err != nil {
		return res, E.Wrapf(err, "failed to create sample half %s", pathB)
	}
	defer outB.Close()

	wA := bufio.NewWriter(outA)
	wB := bufio.NewWriter(outB)
	scanner := U.CreateScannerFromReader(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		line := scanner.Text() + "\n"
		if s.flip() {
			_, err = wA.WriteString(line)
			res.SizeA++
		} else {
			_, err = wB.WriteString(line)
			res.SizeB++
		}
		if err != nil {
			return res, E.Wrap(err, "failed to write sample half")
		}
		res.Original++
	}
	if err := scanner.Err(); err != nil {
		return res, E.Wrapf(err, "failed to read dataset %s", source)
	}
	if err := wA.Flush(); err != nil {
		return res, E.Wrapf(err, "failed to write sample half %s", pathA)
	}
	if err := wB.Flush(); err != nil {
		return res, E.Wrapf(err, "failed to write sample half %s", pathB)
	}

	log.WithFields(log.Fields{"dataset": source, "size_a": res.SizeA,
		"size_b": res.SizeB}).Info("Split dataset into sample halves.")
	return res, nil
}

func (s *Splitter) flip() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(2) == 1
}
