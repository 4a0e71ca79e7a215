package dataset

import (
	"os"
	"strings"

	E "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	U "tfsp/util"
)

// Dataset is a parsed transaction file. Raw keeps the original lines so
// that distinct transactions can be told apart exactly as written.
type Dataset struct {
	Path      string
	Sequences []Sequence
	Raw       []string
}

func (d *Dataset) Size() int {
	return len(d.Sequences)
}

// Load reads and parses an SPMF formatted dataset. Blank lines are kept as
// empty transactions so that |D| matches the number of lines.
func Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, E.Wrapf(err, "failed to open dataset %s", path)
	}
	defer file.Close()

	ds := &Dataset{Path: path, Sequences: make([]Sequence, 0), Raw: make([]string, 0)}
	scanner := U.CreateScannerFromReader(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		seq, err := ParseSequence(line)
		if err != nil {
			log.WithFields(log.Fields{"file": path, "line": lineNum}).WithError(err).
				Error("Failed to parse transaction.")
			return nil, E.Wrapf(err, "%s:%d", path, lineNum)
		}
		ds.Sequences = append(ds.Sequences, seq)
		ds.Raw = append(ds.Raw, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, E.Wrapf(err, "failed to read dataset %s", path)
	}
	return ds, nil
}
