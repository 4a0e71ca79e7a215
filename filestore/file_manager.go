package filestore

import (
	"io"
)

// Kinds of certified pattern sets.
const (
	GuaranteeFN = "FN"
	GuaranteeFP = "FP"
)

// Bounds a certified set can be mined with.
const (
	BoundRademacher = "RB"
	BoundVC         = "VC"
)

type FileManager interface {
	Create(dir, fileName string, reader io.ReadSeeker) error
	Get(dir, fileName string) (io.ReadCloser, error)
	GetResultsDir() string
	// GetResultLogFilePathAndName locates a flat result log, e.g. radeBound.txt.
	GetResultLogFilePathAndName(logName string) (string, string)
	// GetGuaranteeFilePathAndName locates the certified pattern set of the
	// given bound and kind (GuaranteeFN or GuaranteeFP) for a dataset.
	GetGuaranteeFilePathAndName(datasetName, boundName, kind string) (string, string)
}

// GuaranteeFileName is the name every driver uses for certified sets,
// e.g. BIBLE_RB_FN_guarantees.txt.
func GuaranteeFileName(datasetName, boundName, kind string) string {
	if boundName == "" {
		boundName = BoundRademacher
	}
	return datasetName + "_" + boundName + "_" + kind + "_guarantees.txt"
}
