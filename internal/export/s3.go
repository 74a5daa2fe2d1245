package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"codeberg.org/snonux/codewise/internal"
	"codeberg.org/snonux/codewise/internal/dataset"
)

// S3Config configures upload of the JSON document to S3 compatible storage.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
	// Root is the walked directory, used to name the object.
	Root string
}

// S3Exporter uploads the dataset as JSON to a bucket.
type S3Exporter struct {
	client *minio.Client
	cfg    S3Config
}

// NewS3Exporter creates an S3 exporter.
func NewS3Exporter(cfg S3Config) (*S3Exporter, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("S3 endpoint not configured")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	return &S3Exporter{client: client, cfg: cfg}, nil
}

func (e *S3Exporter) Name() string { return "s3:" + e.cfg.Bucket }

// ObjectName returns the key the next export is stored under.
func (e *S3Exporter) ObjectName() string {
	return objectName(e.cfg.Prefix, e.cfg.Root, internal.GenerateRunID(e.cfg.Root))
}

func objectName(prefix, root, runID string) string {
	name := internal.SanitizeFilename(path.Base(path.Clean("/" + root)))
	if name == "" || name == "_" {
		name = "dataset"
	}
	return path.Join(prefix, name, runID+".json")
}

// Export uploads the JSON document, creating the bucket when missing.
func (e *S3Exporter) Export(ctx context.Context, ds *dataset.Dataset) error {
	exists, err := e.client.BucketExists(ctx, e.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := e.client.MakeBucket(ctx, e.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, ds); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	_, err = e.client.PutObject(ctx, e.cfg.Bucket, e.ObjectName(), &buf, int64(buf.Len()),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload dataset: %w", err)
	}
	return nil
}
