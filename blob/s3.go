package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/awantoch/kwanixflow/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	s3URLPrefix = "s3://"
	s3KeyPrefix = "exports/"
)

// S3BlobStore archives exports in a private bucket under exports/.
type S3BlobStore struct {
	client *s3.Client
	bucket string
	region string
}

// NewS3BlobStore uses the default AWS credential chain.
func NewS3BlobStore(ctx context.Context, bucket, region string) (*S3BlobStore, error) {
	if bucket == "" || region == "" {
		return nil, utils.Errorf("bucket and region must be non-empty")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg)
	return &S3BlobStore{client: client, bucket: bucket, region: region}, nil
}

// Put uploads one export and returns its s3://bucket/key URL. The object
// downloads as a plain attachment, like the HTTP export route.
func (s *S3BlobStore) Put(ctx context.Context, data []byte, mime, filename string) (string, error) {
	key := s3KeyPrefix + path.Base(filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentType:        aws.String(mime),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", path.Base(filename))),
		ACL:                types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", utils.Errorf("s3 put %s: %w", key, err)
	}
	return s3URLPrefix + s.bucket + "/" + key, nil
}

func (s *S3BlobStore) Get(ctx context.Context, url string) ([]byte, error) {
	bucket, key, err := parseS3URL(url)
	if err != nil {
		return nil, err
	}
	if bucket != s.bucket {
		return nil, fmt.Errorf("export %s is not in bucket %s", url, s.bucket)
	}
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// parseS3URL splits s3://bucket/key.
func parseS3URL(url string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(url, s3URLPrefix)
	if !ok {
		return "", "", fmt.Errorf("invalid s3 URL: %s", url)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 URL: %s", url)
	}
	return bucket, key, nil
}
