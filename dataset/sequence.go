package dataset

import (
	"sort"
	"strconv"
	"strings"

	E "github.com/pkg/errors"
)

// SPMF sequence format separators.
const (
	EndOfItemset  = "-1"
	EndOfSequence = "-2"
)

// Itemset is a sorted set of distinct items.
type Itemset []int

// Sequence is one transaction: an ordered list of itemsets.
type Sequence []Itemset

func newItemset(items map[int]struct{}) Itemset {
	is := make(Itemset, 0, len(items))
	for item := range items {
		is = append(is, item)
	}
	sort.Ints(is)
	return is
}

// Contains reports whether every item of other is in the itemset.
func (is Itemset) Contains(other Itemset) bool {
	i := 0
	for _, item := range other {
		for i < len(is) && is[i] < item {
			i++
		}
		if i == len(is) || is[i] != item {
			return false
		}
	}
	return true
}

// ParseSequence reads one SPMF line, e.g. "1 2 -1 3 -1 -2". Items after the
// last -1 are ignored, as are empty itemsets produced by repeated -1s.
func ParseSequence(line string) (Sequence, error) {
	seq := make(Sequence, 0)
	current := make(map[int]struct{})
	for _, token := range strings.Fields(line) {
		switch token {
		case EndOfItemset:
			if len(current) > 0 {
				seq = append(seq, newItemset(current))
				current = make(map[int]struct{})
			}
		case EndOfSequence:
			return seq, nil
		default:
			item, err := strconv.Atoi(token)
			if err != nil {
				return nil, E.Wrapf(err, "invalid item %q", token)
			}
			current[item] = struct{}{}
		}
	}
	return seq, nil
}

// ItemLength is the number of items counted with multiplicity across itemsets.
func (s Sequence) ItemLength() int {
	n := 0
	for _, is := range s {
		n += len(is)
	}
	return n
}

// IsContainedIn reports whether s is a subsequence of t: its itemsets are
// contained, in order, in distinct itemsets of t.
func (s Sequence) IsContainedIn(t Sequence) bool {
	if len(s) > len(t) {
		return false
	}
	next := 0
	for _, is := range s {
		found := false
		for j := next; j < len(t); j++ {
			if t[j].Contains(is) {
				next = j + 1
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Support counts the transactions of db that contain s.
func (s Sequence) Support(db []Sequence) int {
	count := 0
	for _, t := range db {
		if s.IsContainedIn(t) {
			count++
		}
	}
	return count
}
