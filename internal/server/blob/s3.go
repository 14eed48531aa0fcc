package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	sc "github.com/SE-UUlm/snowballr-mock-backend/internal/server/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// objectAPI is the part of *s3.Client the store uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3 keeps PDFs in an S3-compatible bucket (MinIO in development). Every Put
// writes a fresh object; the key of the latest object per paper is kept in
// memory, so blobs do not survive a restart of the mock.
type S3 struct {
	client objectAPI
	bucket string

	mu   sync.RWMutex
	keys map[string]string
}

// NewS3 connects to the bucket described by cfg.
func NewS3(ctx context.Context, cfg *sc.Config) (*S3, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3{client: client, bucket: cfg.S3Bucket, keys: make(map[string]string)}, nil
}

// storageKey spreads objects by day like "papers/2025/3/14/<uuid>.pdf".
func storageKey() string {
	d := time.Now()
	return fmt.Sprintf("papers/%d/%d/%d/%v.pdf", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *S3) Put(ctx context.Context, key string, data []byte) error {
	objectKey := storageKey()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}

	s.mu.Lock()
	s.keys[key] = objectKey
	s.mu.Unlock()
	return nil
}

func (s *S3) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	objectKey, ok := s.keys[key]
	s.mu.RUnlock()
	if !ok {
		return nil, common.NewNotFound("pdf", key)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, common.NewNotFound("pdf", key)
		}
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}
