package bound

import (
	"errors"
	"io/ioutil"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serviceDisk "tfsp/services/disk"
)

func TestResultCollector(t *testing.T) {
	rc := NewResultCollector()
	rc.Add("BIBLE_S1", MethodAnalytic, 3.2, false)
	rc.AddFailure("BIBLE_S2", MethodAnalytic, errors.New("kernel crashed"))
	rc.Add("BIBLE_S3", MethodAnalytic, NoBoundSentinel, true)
	rc.Add("BIBLE_S4", MethodAnalytic, math.Inf(1), false)

	assert.Equal(t, []string{"3.2", "nan", "100.0", "inf"}, rc.Lines())
	assert.Equal(t, "3.2\nnan\n100.0\ninf\n", rc.String())

	records := rc.Records()
	require.Len(t, records, 4)
	assert.NotEqual(t, records[0].Run, records[1].Run)
	assert.True(t, records[2].Sentinel)
	assert.NotNil(t, records[1].Err)
	assert.Equal(t, "", NewResultCollector().String())
}

func TestResultCollectorPersist(t *testing.T) {
	dir := t.TempDir()
	fm := serviceDisk.New(dir)
	rc := NewResultCollector()
	rc.Add("S1", MethodEmpirical, 0.25, false)
	rc.Add("S2", MethodEmpirical, 0.5, false)

	path, err := rc.Persist(fm, "radeApprox.txt")
	require.Nil(t, err)

	reader, err := fm.Get(fm.GetResultLogFilePathAndName("radeApprox.txt"))
	require.Nil(t, err)
	defer reader.Close()
	raw, err := ioutil.ReadAll(reader)
	require.Nil(t, err)
	assert.Equal(t, "0.25\n0.5\n", string(raw))
	assert.Contains(t, path, "radeApprox.txt")
}
