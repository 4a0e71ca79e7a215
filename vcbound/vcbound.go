// Package vcbound bounds the maximum deviation of sequential pattern
// supports through the s-bound on the VC-dimension.
package vcbound

import (
	"math"
	"os"
	"sort"

	E "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"tfsp/dataset"
	U "tfsp/util"
)

var (
	ErrInvalidConfidence = E.New("confidence delta must lie in (0,1)")
	ErrInvalidError      = E.New("error eps must be positive")
	ErrEmptyDataset      = E.New("dataset has no transactions")
)

// Stats is what a single pass over a dataset yields.
type Stats struct {
	DatasetSize int
	SBound      int
}

type candidate struct {
	line   string
	length int
}

// SBound is the largest d such that the dataset holds at least d distinct
// transactions of item-length at least d.
type SBound struct {
	bound   int
	ordered []candidate
	seen    map[string]struct{}
	size    int
}

func NewSBound() *SBound {
	return &SBound{seen: make(map[string]struct{})}
}

// Add accounts one transaction given as its raw line.
func (s *SBound) Add(line string) error {
	s.size++
	if _, ok := s.seen[line]; ok {
		return nil
	}
	seq, err := dataset.ParseSequence(line)
	if err != nil {
		return err
	}
	length := seq.ItemLength()
	if length <= s.bound {
		return nil
	}
	s.seen[line] = struct{}{}
	// ordered is kept by decreasing length, a new line ahead of its ties, so
	// the oldest of the shortest lines is evicted first.
	i := sort.Search(len(s.ordered), func(i int) bool { return s.ordered[i].length <= length })
	s.ordered = append(s.ordered, candidate{})
	copy(s.ordered[i+1:], s.ordered[i:])
	s.ordered[i] = candidate{line: line, length: length}

	if last := s.ordered[len(s.ordered)-1]; last.length > s.bound {
		s.bound++
		return nil
	}
	removed := s.ordered[len(s.ordered)-1]
	s.ordered = s.ordered[:len(s.ordered)-1]
	delete(s.seen, removed.line)
	return nil
}

func (s *SBound) Value() int {
	return s.bound
}

func (s *SBound) Size() int {
	return s.size
}

// Compute reads the dataset at path once.
func Compute(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, E.Wrapf(err, "failed to open dataset %s", path)
	}
	defer f.Close()

	sb := NewSBound()
	scanner := U.CreateScannerFromReader(f)
	for scanner.Scan() {
		if err := sb.Add(scanner.Text()); err != nil {
			return Stats{}, E.Wrapf(err, "invalid transaction %d of %s", sb.Size(), path)
		}
	}
	if err := scanner.Err(); err != nil {
		return Stats{}, E.Wrapf(err, "failed to read dataset %s", path)
	}
	stats := Stats{DatasetSize: sb.Size(), SBound: sb.Value()}
	log.WithFields(log.Fields{"dataset": path, "size": stats.DatasetSize,
		"s_bound": stats.SBound}).Debug("Computed s-bound.")
	return stats, nil
}

// MaxDeviation is sqrt((sBound + ln(1/delta)) / (2n)).
func MaxDeviation(stats Stats, delta float64) (float64, error) {
	if !(delta > 0 && delta < 1) {
		return 0, E.Wrapf(ErrInvalidConfidence, "delta=%v", delta)
	}
	if stats.DatasetSize <= 0 {
		return 0, ErrEmptyDataset
	}
	return math.Sqrt(1.0 / (2.0 * float64(stats.DatasetSize)) * (float64(stats.SBound) + math.Log(1.0/delta))), nil
}

// SampleSize is the number of transactions a sample needs so that every
// support is estimated within eps with probability 1-delta.
func SampleSize(stats Stats, eps, delta float64) (int, error) {
	if !(delta > 0 && delta < 1) {
		return 0, E.Wrapf(ErrInvalidConfidence, "delta=%v", delta)
	}
	if !(eps > 0) {
		return 0, E.Wrapf(ErrInvalidError, "eps=%v", eps)
	}
	return int(math.Ceil(2.0 / (eps * eps) * (float64(stats.SBound) + math.Log(1.0/delta)))), nil
}
