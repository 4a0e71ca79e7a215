package gcstorage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"tfsp/filestore"
)

const (
	separator = "/"
)

var _ filestore.FileManager = (*GCSDriver)(nil)

type GCSDriver struct {
	client     *storage.Client
	BucketName string
	Prefix     string
}

func New(bucketName string) (*GCSDriver, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	d := &GCSDriver{
		BucketName: bucketName,
		Prefix:     "tfsp",
		client:     client,
	}
	return d, nil
}

func (gcsd *GCSDriver) Create(dir, fileName string, reader io.ReadSeeker) error {
	ctx := context.Background()
	obj := gcsd.client.Bucket(gcsd.BucketName).Object(dir + fileName)
	w := obj.NewWriter(ctx)
	if _, err := io.Copy(w, reader); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (gcsd *GCSDriver) Get(dir, fileName string) (io.ReadCloser, error) {
	ctx := context.Background()
	obj := gcsd.client.Bucket(gcsd.BucketName).Object(dir + fileName)
	return obj.NewReader(ctx)
}

func (gcsd *GCSDriver) GetResultsDir() string {
	return resultsDir(gcsd.Prefix)
}

func (gcsd *GCSDriver) GetResultLogFilePathAndName(logName string) (string, string) {
	return gcsd.GetResultsDir() + "logs" + separator, logName
}

func (gcsd *GCSDriver) GetGuaranteeFilePathAndName(datasetName, boundName, kind string) (string, string) {
	path := fmt.Sprintf("%sguarantees%s%s%s", gcsd.GetResultsDir(), separator, datasetName, separator)
	return path, filestore.GuaranteeFileName(datasetName, boundName, kind)
}

func resultsDir(prefix string) string {
	if prefix == "" {
		return ""
	}
	return prefix + separator
}
