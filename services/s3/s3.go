package s3

import (
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	log "github.com/sirupsen/logrus"

	"tfsp/filestore"
)

const (
	separator = "/"
)

var _ filestore.FileManager = (*S3Driver)(nil)

type S3Driver struct {
	s3         s3iface.S3API
	BucketName string
	Region     string
	Prefix     string
}

func New(bucketName, region string) (*S3Driver, error) {
	sess, err := session.NewSession(aws.NewConfig().WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewWithClient(s3.New(sess), bucketName, region), nil
}

// NewWithClient wraps an existing S3 API client.
func NewWithClient(client s3iface.S3API, bucketName, region string) *S3Driver {
	return &S3Driver{s3: client, BucketName: bucketName, Region: region, Prefix: "tfsp"}
}

func (sd *S3Driver) Create(dir, fileName string, reader io.ReadSeeker) error {
	log.WithFields(log.Fields{
		"Dir":        dir,
		"FileName":   fileName,
		"BucketName": sd.BucketName,
		"Region":     sd.Region,
	}).Debug("S3Driver Creating file")

	input := &s3.PutObjectInput{
		Bucket:      aws.String(sd.BucketName),
		Body:        reader,
		Key:         aws.String(dir + fileName),
		ContentType: aws.String("text/plain"),
	}
	_, err := sd.s3.PutObject(input)
	return err
}

func (sd *S3Driver) Get(dir, fileName string) (io.ReadCloser, error) {
	input := s3.GetObjectInput{
		Bucket: aws.String(sd.BucketName),
		Key:    aws.String(dir + fileName),
	}
	op, err := sd.s3.GetObject(&input)
	if err != nil {
		return nil, err
	}
	return op.Body, nil
}

func (sd *S3Driver) GetResultsDir() string {
	if sd.Prefix == "" {
		return ""
	}
	return sd.Prefix + separator
}

func (sd *S3Driver) GetResultLogFilePathAndName(logName string) (string, string) {
	return sd.GetResultsDir() + "logs" + separator, logName
}

func (sd *S3Driver) GetGuaranteeFilePathAndName(datasetName, boundName, kind string) (string, string) {
	path := fmt.Sprintf("%sguarantees%s%s%s", sd.GetResultsDir(), separator, datasetName, separator)
	return path, filestore.GuaranteeFileName(datasetName, boundName, kind)
}
