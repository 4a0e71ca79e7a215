package s3

import (
	"bytes"
	"io/ioutil"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryS3 keeps objects in a map.
type memoryS3 struct {
	s3iface.S3API
	objects map[string][]byte
}

func (m *memoryS3) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	raw, err := ioutil.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.StringValue(input.Bucket)+"/"+aws.StringValue(input.Key)] = raw
	return &s3.PutObjectOutput{}, nil
}

func (m *memoryS3) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	raw, ok := m.objects[aws.StringValue(input.Bucket)+"/"+aws.StringValue(input.Key)]
	if !ok {
		return nil, assert.AnError
	}
	return &s3.GetObjectOutput{Body: ioutil.NopCloser(bytes.NewReader(raw))}, nil
}

func TestCreateAndGet(t *testing.T) {
	client := &memoryS3{objects: make(map[string][]byte)}
	sd := NewWithClient(client, "tfsp-test", "us-east-1")

	dir, name := sd.GetResultLogFilePathAndName("radeApprox.txt")
	require.Nil(t, sd.Create(dir, name, bytes.NewReader([]byte("0.5\n"))))
	assert.Contains(t, client.objects, "tfsp-test/tfsp/logs/radeApprox.txt")

	reader, err := sd.Get(dir, name)
	require.Nil(t, err)
	defer reader.Close()
	raw, err := ioutil.ReadAll(reader)
	require.Nil(t, err)
	assert.Equal(t, "0.5\n", string(raw))

	_, err = sd.Get(dir, "missing.txt")
	assert.NotNil(t, err)
}

func TestGetGuaranteeFilePathAndName(t *testing.T) {
	sd := NewWithClient(nil, "tfsp-test", "us-east-1")
	path, name := sd.GetGuaranteeFilePathAndName("BMS1", "VC", "FN")
	assert.Equal(t, "tfsp/guarantees/BMS1/", path)
	assert.Equal(t, "BMS1_VC_FN_guarantees.txt", name)
}
