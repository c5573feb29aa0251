package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	appconfig "go-vault/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

// S3Store keeps blobs in an S3 (or MinIO-compatible) bucket. Upload targets
// and resolved URLs are presigned, so callers talk to the bucket directly.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func NewS3Store(cfg *appconfig.Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
	}, nil
}

func storageKey() string {
	d := time.Now()
	return fmt.Sprintf("blobs/%d/%02d/%v", d.Year(), d.Month(), uuid.New())
}

func (s *S3Store) IssueUploadTarget(ctx context.Context) (*UploadTarget, error) {
	key := storageKey()
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("presigning upload: %w", err)
	}
	return &UploadTarget{BlobRef: key, URL: req.URL}, nil
}

func (s *S3Store) Save(ctx context.Context, blobRef string, r io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &s.bucket,
		Key:           &blobRef,
		Body:          r,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("putting object %s: %w", blobRef, err)
	}
	return nil
}

func (s *S3Store) ResolveURL(ctx context.Context, blobRef string) (string, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &s.bucket,
		Key:    &blobRef,
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return "", nil
		}
		return "", fmt.Errorf("heading object %s: %w", blobRef, err)
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &blobRef,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("presigning download: %w", err)
	}
	return req.URL, nil
}

func (s *S3Store) Delete(ctx context.Context, blobRef string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &blobRef,
	})
	if err != nil {
		return fmt.Errorf("deleting object %s: %w", blobRef, err)
	}
	return nil
}
