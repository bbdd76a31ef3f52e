package snapshot

import (
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Store keeps snapshots as objects under `Prefix` in an S3 bucket.
type S3Store struct {
	Client s3iface.S3API
	Bucket string
	Prefix string
}

func (ss *S3Store) key(name string) string { return ss.Prefix + name }

func (ss *S3Store) Put(name string, data io.ReadSeeker) error {
	key := ss.key(name)
	if _, err := ss.Client.PutObject(&s3.PutObjectInput{
		Bucket: &ss.Bucket,
		Key:    &key,
		Body:   data,
	}); err != nil {
		return fmt.Errorf(
			"putting object in bucket `%s` at key `%s`: %w",
			ss.Bucket,
			key,
			err,
		)
	}
	return nil
}

func (ss *S3Store) Get(name string) (io.ReadCloser, error) {
	key := ss.key(name)
	rsp, err := ss.Client.GetObject(&s3.GetObjectInput{
		Bucket: &ss.Bucket,
		Key:    &key,
	})
	if err != nil {
		if err, ok := err.(awserr.Error); ok {
			if err.Code() == s3.ErrCodeNoSuchKey {
				return nil, &NotFoundErr{Name: name}
			}
		}
		return nil, fmt.Errorf(
			"getting object from bucket `%s` at key `%s`: %w",
			ss.Bucket,
			key,
			err,
		)
	}
	return rsp.Body, nil
}

func (ss *S3Store) List(prefix string) ([]string, error) {
	var names []string
	keyPrefix := ss.key(prefix)
	if err := ss.Client.ListObjectsPages(
		&s3.ListObjectsInput{
			Bucket: &ss.Bucket,
			Prefix: &keyPrefix,
		},
		func(rsp *s3.ListObjectsOutput, lastPage bool) bool {
			for _, object := range rsp.Contents {
				names = append(names, strings.TrimPrefix(*object.Key, ss.Prefix))
			}
			return true
		},
	); err != nil {
		return names, fmt.Errorf(
			"listing objects in bucket `%s` with prefix `%s`: %w",
			ss.Bucket,
			keyPrefix,
			err,
		)
	}
	return names, nil
}

// Delete removes a snapshot. S3 doesn't report missing keys on delete, so
// the object's existence is checked first.
func (ss *S3Store) Delete(name string) error {
	key := ss.key(name)
	if _, err := ss.Client.HeadObject(&s3.HeadObjectInput{
		Bucket: &ss.Bucket,
		Key:    &key,
	}); err != nil {
		if err, ok := err.(awserr.Error); ok && isMissing(err.Code()) {
			return &NotFoundErr{Name: name}
		}
		return fmt.Errorf("deleting object `%s`: %w", key, err)
	}

	if _, err := ss.Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &ss.Bucket,
		Key:    &key,
	}); err != nil {
		return fmt.Errorf("deleting object `%s`: %w", key, err)
	}
	return nil
}

// isMissing reports whether an S3 error code means the object doesn't exist.
// HEAD responses have no body, so they report a bare "NotFound".
func isMissing(code string) bool {
	return code == s3.ErrCodeNoSuchKey || code == "NotFound"
}
