package sweep

import (
	"fmt"
	"io/ioutil"
	"path/filepath"

	E "github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Plan lists the sample files of a batch sweep: for every dataset and
// repetition j in [1, Repetitions] the file
// <SampleDir>/fmt.Sprintf(NamePattern, dataset, j).
type Plan struct {
	Datasets    []string `yaml:"datasets"`
	Repetitions int      `yaml:"repetitions"`
	SampleDir   string   `yaml:"sample_dir"`
	NamePattern string   `yaml:"name_pattern"`
	Delta       float64  `yaml:"delta"`
	Beta1       int      `yaml:"beta1"`
	Beta2       int      `yaml:"beta2"`
}

// Job is one sample of a sweep. Index is its position in the result log.
type Job struct {
	Index      int
	Dataset    string
	Repetition int
	Path       string
}

func DefaultPlan() Plan {
	return Plan{
		Datasets:    []string{"BIBLE", "BMS1", "BMS2", "KOSARAK", "LEVIATHAN", "MSNBC"},
		Repetitions: 4,
		SampleDir:   "data/TFSP/samples",
		NamePattern: "%s_S%d.txt",
		Delta:       0.1,
		Beta1:       20,
		Beta2:       120,
	}
}

// LoadPlan reads a YAML plan. Fields missing from the file keep the values
// of DefaultPlan.
func LoadPlan(path string) (Plan, error) {
	plan := DefaultPlan()
	if path == "" {
		return plan, nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return plan, E.Wrapf(err, "failed to read sweep plan %s", path)
	}
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return plan, E.Wrapf(err, "failed to parse sweep plan %s", path)
	}
	return plan, plan.Validate()
}

func (p Plan) Validate() error {
	if len(p.Datasets) == 0 {
		return E.New("sweep plan has no datasets")
	}
	if p.Repetitions <= 0 {
		return E.Errorf("invalid repetitions %d", p.Repetitions)
	}
	if !(p.Delta > 0 && p.Delta < 1) {
		return E.Errorf("invalid delta %v", p.Delta)
	}
	if p.NamePattern == "" {
		return E.New("sweep plan has no name pattern")
	}
	return nil
}

// Jobs enumerates the samples dataset by dataset, repetitions ascending.
func (p Plan) Jobs() []Job {
	jobs := make([]Job, 0, len(p.Datasets)*p.Repetitions)
	for _, ds := range p.Datasets {
		for j := 1; j <= p.Repetitions; j++ {
			jobs = append(jobs, Job{
				Index:      len(jobs),
				Dataset:    ds,
				Repetition: j,
				Path:       filepath.Join(p.SampleDir, fmt.Sprintf(p.NamePattern, ds, j)),
			})
		}
	}
	return jobs
}
