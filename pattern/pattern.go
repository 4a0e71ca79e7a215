package pattern

import (
	"os"
	"strconv"
	"strings"

	E "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"tfsp/dataset"
	U "tfsp/util"
)

// SupportMarker separates a pattern from its support in miner output,
// e.g. "1 -1 2 3 -1 #SUP: 42".
const SupportMarker = "#SUP:"

// Pattern is one line of a frequent pattern file.
type Pattern struct {
	// Items is the pattern in SPMF notation without the support suffix.
	Items   string
	Support int
}

// Key normalises the pattern text so that the same pattern read from two
// files compares equal.
func (p Pattern) Key() string {
	return strings.Join(strings.Fields(p.Items), " ")
}

// Sequence parses the pattern into itemsets.
func (p Pattern) Sequence() (dataset.Sequence, error) {
	return dataset.ParseSequence(p.Items)
}

func ParsePatternLine(line string) (Pattern, error) {
	idx := strings.Index(line, SupportMarker)
	if idx < 0 {
		return Pattern{}, E.Errorf("missing %s in pattern line %q", SupportMarker, line)
	}
	support, err := strconv.Atoi(strings.TrimSpace(line[idx+len(SupportMarker):]))
	if err != nil {
		return Pattern{}, E.Wrapf(err, "invalid support in pattern line %q", line)
	}
	return Pattern{Items: strings.TrimSpace(line[:idx]), Support: support}, nil
}

// ReadPatternFile parses every non blank line of a miner output file.
func ReadPatternFile(path string) ([]Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		log.WithError(err).Errorf("error opening file:%s", path)
		return nil, E.Wrapf(err, "failed to open pattern file %s", path)
	}
	defer f.Close()

	patterns := make([]Pattern, 0)
	scanner := U.CreateScannerFromReader(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := ParsePatternLine(line)
		if err != nil {
			log.WithFields(log.Fields{"file": path, "line": line, "err": err}).Error("Read failed")
			return nil, err
		}
		patterns = append(patterns, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, E.Wrapf(err, "failed to read pattern file %s", path)
	}
	return patterns, nil
}

// Index maps pattern keys to supports.
func Index(patterns []Pattern) map[string]int {
	idx := make(map[string]int, len(patterns))
	for _, p := range patterns {
		idx[p.Key()] = p.Support
	}
	return idx
}
