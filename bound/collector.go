package bound

import (
	"bytes"
	"math"
	"strings"
	"sync"

	E "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"tfsp/filestore"
	U "tfsp/util"
)

// Methods recorded in a result log.
const (
	MethodAnalytic  = "analytic"
	MethodEmpirical = "empirical"
	MethodVC        = "vc"
)

// Record is one line of a result log.
type Record struct {
	Run      string
	Dataset  string
	Method   string
	Value    float64
	Sentinel bool
	Err      error
}

// ResultCollector accumulates the per-run values of a sweep in the order
// they are added. A failed run keeps its slot and is written as "nan".
type ResultCollector struct {
	mu      sync.Mutex
	records []Record
}

func NewResultCollector() *ResultCollector {
	return &ResultCollector{records: make([]Record, 0)}
}

func (rc *ResultCollector) Add(datasetName, method string, value float64, sentinel bool) Record {
	return rc.append(Record{Dataset: datasetName, Method: method, Value: value, Sentinel: sentinel})
}

func (rc *ResultCollector) AddFailure(datasetName, method string, err error) Record {
	return rc.append(Record{Dataset: datasetName, Method: method, Value: math.NaN(), Err: err})
}

func (rc *ResultCollector) append(r Record) Record {
	r.Run = U.GetUUID()
	rc.mu.Lock()
	rc.records = append(rc.records, r)
	rc.mu.Unlock()
	return r
}

func (rc *ResultCollector) Records() []Record {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	out := make([]Record, len(rc.records))
	copy(out, rc.records)
	return out
}

// Lines renders one decimal per record.
func (rc *ResultCollector) Lines() []string {
	records := rc.Records()
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, U.FormatFloat(r.Value))
	}
	return lines
}

// String is the content of the result log, every line newline terminated.
func (rc *ResultCollector) String() string {
	lines := rc.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Persist writes the result log through fm and returns where it went.
func (rc *ResultCollector) Persist(fm filestore.FileManager, logName string) (string, error) {
	dir, name := fm.GetResultLogFilePathAndName(logName)
	if err := fm.Create(dir, name, bytes.NewReader([]byte(rc.String()))); err != nil {
		log.WithFields(log.Fields{"dir": dir, "name": name}).WithError(err).Error("Failed to persist result log.")
		return "", E.Wrapf(err, "failed to persist result log %s", logName)
	}
	log.WithFields(log.Fields{"dir": dir, "name": name, "records": len(rc.Records())}).Info("Persisted result log.")
	return dir + name, nil
}
