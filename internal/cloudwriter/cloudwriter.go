package cloudwriter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/rs/zerolog/log"
)

type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(ctx context.Context, bucket, objectPath string) (CloudWriter, error)
}

// NewFactory returns the writer factory for the configured provider, or nil when uploads are disabled.
func NewFactory(ctx context.Context, cfg models.CloudStorageConfig) (CloudWriterFactory, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "s3":
		if cfg.BucketName == "" {
			return nil, fmt.Errorf("cloud storage: bucket_name is required for provider s3")
		}
		f, err := NewS3WriterFactory(ctx, cfg.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.Provider)
	}
}

// ObjectPath builds prefix/runID/<file name>.
func ObjectPath(prefix, runID, file string) string {
	return path.Join(prefix, runID, filepath.Base(file))
}

// UploadFile copies the local file at src into bucket under objectPath.
func UploadFile(ctx context.Context, factory CloudWriterFactory, bucket, objectPath, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("upload %s: %w", src, err)
	}
	defer f.Close()

	w, err := factory.NewWriter(ctx, bucket, objectPath)
	if err != nil {
		return fmt.Errorf("upload %s: %w", src, err)
	}

	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("upload %s: %w", src, err)
	}
	return w.Close()
}

// UploadRun uploads every generated file of a run, each bounded by timeout.
// Failures are logged and counted.
func UploadRun(ctx context.Context, factory CloudWriterFactory, cfg models.CloudStorageConfig, timeout time.Duration, runID string, files ...string) int {
	failed := 0
	for _, f := range files {
		key := ObjectPath(cfg.Prefix, runID, f)
		if err := uploadWithTimeout(ctx, factory, cfg.BucketName, key, f, timeout); err != nil {
			failed++
			log.Error().Err(err).Str("file", f).Msg("upload failed")
			continue
		}
		log.Info().Str("bucket", cfg.BucketName).Str("key", key).Msg("uploaded")
	}
	return failed
}

func uploadWithTimeout(ctx context.Context, factory CloudWriterFactory, bucket, key, src string, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return UploadFile(ctx, factory, bucket, key, src)
}
