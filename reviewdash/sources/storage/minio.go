package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"reviewdash/reviewdash/config"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient connects and creates the archive bucket if needed.
// It returns nil, nil when no endpoint is configured.
func NewMinIOClient(ctx context.Context, cfg config.Config) (*MinIOClient, error) {
	if cfg.MinIOEndpoint == "" {
		return nil, nil
	}
	bucket := cfg.MinIOBucket
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: cfg.MinIOUseSSL,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}
	return &MinIOClient{client: client, bucket: bucket}, nil
}

// ArchiveKey is the object key for an imported source file.
func ArchiveKey(kind, runID, sourcePath string) string {
	return path.Join("imports", kind, runID, filepath.Base(sourcePath))
}

func contentType(sourcePath string) string {
	switch strings.ToLower(filepath.Ext(sourcePath)) {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}

// ArchiveImport uploads the source file of an import run and returns its key.
func (m *MinIOClient) ArchiveImport(ctx context.Context, kind, runID, sourcePath string) (string, error) {
	key := ArchiveKey(kind, runID, sourcePath)
	_, err := m.client.FPutObject(ctx, m.bucket, key, sourcePath, minio.PutObjectOptions{ContentType: contentType(sourcePath)})
	if err != nil {
		return "", err
	}
	return key, nil
}

// GetArchive reads back an archived source file.
func (m *MinIOClient) GetArchive(ctx context.Context, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}
