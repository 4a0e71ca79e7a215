package disk

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"tfsp/filestore"
)

var _ filestore.FileManager = (*DiskDriver)(nil)

type DiskDriver struct {
	// Root directory for every file, analogous to a bucket name.
	baseDir string
}

func New(baseDir string) *DiskDriver {
	return &DiskDriver{baseDir: baseDir}
}

func MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (dd *DiskDriver) Create(path, fileName string, reader io.ReadSeeker) error {
	err := MkdirAll(path)
	if err != nil {
		log.WithError(err).Errorln("Failed to create dir")
		return err
	}

	file, err := os.Create(filepath.Join(path, fileName))
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(file, reader)
	return err
}

// Get opens a file in read only mode.
// Caller should take care of closing the returned io.ReadCloser.
func (dd *DiskDriver) Get(path, fileName string) (io.ReadCloser, error) {
	log.WithFields(log.Fields{
		"Path":     path,
		"FileName": fileName,
	}).Debug("DiskDriver Opening file")

	return os.OpenFile(filepath.Join(path, fileName), os.O_RDONLY, 0444)
}

func (dd *DiskDriver) GetBucketName() string {
	return dd.baseDir
}

func (dd *DiskDriver) GetResultsDir() string {
	if dd.baseDir == "" {
		return "." + string(filepath.Separator)
	}
	if !strings.HasSuffix(dd.baseDir, string(filepath.Separator)) {
		return dd.baseDir + string(filepath.Separator)
	}
	return dd.baseDir
}

func (dd *DiskDriver) GetResultLogFilePathAndName(logName string) (string, string) {
	return dd.GetResultsDir(), logName
}

func (dd *DiskDriver) GetGuaranteeFilePathAndName(datasetName, boundName, kind string) (string, string) {
	return dd.GetResultsDir(), filestore.GuaranteeFileName(datasetName, boundName, kind)
}
