package testsupport

import (
	"bytes"
	"io/ioutil"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Fake is an in-memory stand-in for the handful of S3 object operations
// the snapshot store uses. Calling any other method panics.
type S3Fake struct {
	s3iface.S3API

	mutex   sync.Mutex
	objects map[[2]string][]byte
}

func NewS3Fake() *S3Fake {
	return &S3Fake{objects: map[[2]string][]byte{}}
}

func (f *S3Fake) PutObject(
	input *s3.PutObjectInput,
) (*s3.PutObjectOutput, error) {
	data, err := ioutil.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.objects[[2]string{*input.Bucket, *input.Key}] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *S3Fake) GetObject(
	input *s3.GetObjectInput,
) (*s3.GetObjectOutput, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	data, found := f.objects[[2]string{*input.Bucket, *input.Key}]
	if !found {
		return nil, awserr.New(
			s3.ErrCodeNoSuchKey,
			"The specified key does not exist.",
			nil,
		)
	}
	return &s3.GetObjectOutput{
		Body:          ioutil.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func (f *S3Fake) HeadObject(
	input *s3.HeadObjectInput,
) (*s3.HeadObjectOutput, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	data, found := f.objects[[2]string{*input.Bucket, *input.Key}]
	if !found {
		return nil, awserr.New("NotFound", "Not Found", nil)
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func (f *S3Fake) ListObjectsPages(
	input *s3.ListObjectsInput,
	fn func(*s3.ListObjectsOutput, bool) bool,
) error {
	f.mutex.Lock()
	var keys []string
	for key := range f.objects {
		if key[0] == *input.Bucket && strings.HasPrefix(key[1], *input.Prefix) {
			keys = append(keys, key[1])
		}
	}
	f.mutex.Unlock()

	sort.Strings(keys)
	var output s3.ListObjectsOutput
	for _, key := range keys {
		output.Contents = append(output.Contents, &s3.Object{Key: aws.String(key)})
	}
	fn(&output, true)
	return nil
}

func (f *S3Fake) DeleteObject(
	input *s3.DeleteObjectInput,
) (*s3.DeleteObjectOutput, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	delete(f.objects, [2]string{*input.Bucket, *input.Key})
	return &s3.DeleteObjectOutput{}, nil
}

// Keys lists every stored key in `bucket`.
func (f *S3Fake) Keys(bucket string) []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	var keys []string
	for key := range f.objects {
		if key[0] == bucket {
			keys = append(keys, key[1])
		}
	}
	sort.Strings(keys)
	return keys
}
