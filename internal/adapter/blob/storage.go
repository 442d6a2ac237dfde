// Package blob stores entry images in S3-compatible object storage and
// derives public URLs and storage paths for them.
package blob

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/metrics"
)

// PublicMarker separates the public base URL from the storage path.
const PublicMarker = "/public-files/"

// objectAPI is the subset of the S3 client used here.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Config holds the storage connection settings.
type Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// Storage uploads and removes objects in a single bucket.
type Storage struct {
	api        objectAPI
	bucket     string
	publicBase string
	log        *slog.Logger
}

// New builds an S3 client for cfg. Path-style addressing is used so that
// MinIO and the BaaS storage endpoint work without DNS buckets.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return newStorage(client, cfg.Bucket, cfg.PublicBaseURL, logger), nil
}

func newStorage(api objectAPI, bucket, publicBase string, logger *slog.Logger) *Storage {
	return &Storage{
		api:        api,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
		log:        logger.With("adapter", "blob"),
	}
}

// Upload writes body under path and returns its public URL.
func (s *Storage) Upload(ctx context.Context, path, contentType string, body io.Reader) (url string, err error) {
	defer func(start time.Time) { metrics.ObserveGatewayCall("blob_upload", start, err) }(time.Now())

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err = s.api.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}

	s.log.DebugContext(ctx, "object uploaded", slog.String("path", path))
	return s.PublicURL(path), nil
}

// Remove deletes the object at path.
func (s *Storage) Remove(ctx context.Context, path string) (err error) {
	defer func(start time.Time) { metrics.ObserveGatewayCall("blob_remove", start, err) }(time.Now())

	_, err = s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// PublicURL returns the URL under which path is served.
func (s *Storage) PublicURL(path string) string {
	return s.publicBase + PublicMarker + path
}

// StoragePathFromURL returns everything after the public marker.
func StoragePathFromURL(url string) (string, error) {
	i := strings.Index(url, PublicMarker)
	if i < 0 {
		return "", fmt.Errorf("%q: %w", url, domain.ErrInvalidStoragePath)
	}
	path := url[i+len(PublicMarker):]
	if path == "" {
		return "", fmt.Errorf("%q: %w", url, domain.ErrInvalidStoragePath)
	}
	return path, nil
}

// ImagePath is the storage path of an image uploaded for entryID at t.
func ImagePath(entryID uuid.UUID, t time.Time, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("entry-images/%s/%d.%s", entryID, t.UnixMilli(), strings.ToLower(ext))
}
