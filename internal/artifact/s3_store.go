package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config configures an S3-compatible bucket.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// S3Store reads files that dependency jobs uploaded under
// <prefix>/<run id>/<name>.
type S3Store struct {
	client *minio.Client
	bucket string
	prefix string
	runID  string
}

// NewS3Store validates cfg and builds the client. No request is made.
func NewS3Store(cfg S3Config, runID string) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, errors.New("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if strings.TrimSpace(runID) == "" {
		return nil, errors.New("run id is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		runID:  strings.TrimSpace(runID),
	}, nil
}

// Get reads the object for name.
func (s *S3Store) Get(ctx context.Context, name string) ([]byte, error) {
	key := s.objectKey(name)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.translate(name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.translate(name, err)
	}
	return data, nil
}

func (s *S3Store) translate(name string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return fmt.Errorf("reading s3://%s/%s: %w", s.bucket, s.objectKey(name), err)
}

func (s *S3Store) objectKey(name string) string {
	normalized := strings.TrimLeft(strings.TrimSpace(name), "/")
	if s.prefix == "" {
		return s.runID + "/" + normalized
	}
	return s.prefix + "/" + s.runID + "/" + normalized
}
