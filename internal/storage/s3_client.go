package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultPresignTTL = 15 * time.Minute

type S3Config struct {
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	PublicBase string
	PresignTTL time.Duration
}

// AttachmentStore issues presigned uploads into the chat attachments bucket.
type AttachmentStore struct {
	cfg     S3Config
	presign *s3.PresignClient
}

func NewAttachmentStore(ctx context.Context, cfg S3Config) (*AttachmentStore, error) {
	if cfg.Region == "" || cfg.Bucket == "" {
		return nil, errors.New("s3 region and bucket are required")
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = defaultPresignTTL
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	// A custom endpoint means MinIO or another S3 compatible store, which wants path style.
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(strings.TrimRight(cfg.Endpoint, "/"))
			o.UsePathStyle = true
		}
	})

	return &AttachmentStore{
		cfg:     cfg,
		presign: s3.NewPresignClient(client),
	}, nil
}

// PresignPut returns a URL the client can PUT the file to, plus the headers it must send.
func (s *AttachmentStore) PresignPut(ctx context.Context, key, contentType string, sizeBytes int64) (string, map[string]string, error) {
	if s == nil {
		return "", nil, errors.New("attachment store not initialized")
	}
	if key == "" {
		return "", nil, errors.New("object key is required")
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}
	if sizeBytes > 0 {
		input.ContentLength = aws.Int64(sizeBytes)
	}

	req, err := s.presign.PresignPutObject(ctx, input, s3.WithPresignExpires(s.cfg.PresignTTL))
	if err != nil {
		return "", nil, fmt.Errorf("presign put %s: %w", key, err)
	}

	headers := map[string]string{"Content-Type": contentType}
	if sizeBytes > 0 {
		headers["Content-Length"] = strconv.FormatInt(sizeBytes, 10)
	}
	return req.URL, headers, nil
}

// FileURL is where a stored attachment can be read once uploaded. Empty without a public base.
func (s *AttachmentStore) FileURL(key string) string {
	if s == nil || key == "" || s.cfg.PublicBase == "" {
		return ""
	}
	return strings.TrimRight(s.cfg.PublicBase, "/") + "/" + strings.TrimLeft(key, "/")
}
