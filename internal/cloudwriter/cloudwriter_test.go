package cloudwriter

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects   map[string]string
	err       error
	deadlines []bool
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	_, ok := ctx.Deadline()
	f.deadlines = append(f.deadlines, ok)
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func TestObjectPath(t *testing.T) {
	assert.Equal(t, "commutes/run1/report.html", ObjectPath("commutes", "run1", "out/dir/report.html"))
	assert.Equal(t, "run1/a.csv", ObjectPath("", "run1", "a.csv"))
}

func TestNewFactory(t *testing.T) {
	ctx := context.Background()
	f, err := NewFactory(ctx, models.CloudStorageConfig{})
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = NewFactory(ctx, models.CloudStorageConfig{Provider: "s3"})
	assert.Error(t, err)

	_, err = NewFactory(ctx, models.CloudStorageConfig{Provider: "gcs", BucketName: "b"})
	assert.Error(t, err)
}

func TestUploadRun(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "transit_analysis.csv")
	require.NoError(t, os.WriteFile(a, []byte("home_address\n"), 0o644))

	fake := &fakeS3{objects: map[string]string{}}
	factory := &S3WriterFactory{client: fake}
	cfg := models.CloudStorageConfig{Provider: "s3", BucketName: "reports", Prefix: "commutes"}

	failed := UploadRun(context.Background(), factory, cfg, 5*time.Second, "run1", a, filepath.Join(dir, "missing.html"))

	assert.Equal(t, 1, failed)
	assert.Equal(t, map[string]string{"reports/commutes/run1/transit_analysis.csv": "home_address\n"}, fake.objects)
	assert.Equal(t, []bool{true}, fake.deadlines, "each upload runs under the request timeout")
}

func TestUploadFile_PutError(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.csv")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	factory := &S3WriterFactory{client: &fakeS3{err: errors.New("access denied")}}
	err := UploadFile(context.Background(), factory, "b", "k", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
