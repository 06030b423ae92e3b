package publisher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11yaudit/a11yaudit/internal/adapters/outbound/publisher"
)

type fakeUploader struct {
	keys []string
	fail string
}

func (f *fakeUploader) FPutObject(_ context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if object == f.fail {
		return minio.UploadInfo{}, errors.New("boom")
	}
	f.keys = append(f.keys, object+"|"+opts.ContentType)
	return minio.UploadInfo{Bucket: bucket, Key: object}, nil
}

func reportDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range []string{"report.html", "accessibility-summary.csv", "data/report-data.json", "data/metrics.prom", "browser-results/chromium-results.json.tmp"} {
		p := filepath.Join(dir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
	return dir
}

func TestObjectKeys(t *testing.T) {
	objs, err := publisher.ObjectKeys(reportDir(t), "a11y/qa")
	require.NoError(t, err)

	var keys []string
	for _, o := range objs {
		keys = append(keys, o.Key)
	}
	assert.ElementsMatch(t, []string{
		"a11y/qa/report.html",
		"a11y/qa/accessibility-summary.csv",
		"a11y/qa/data/report-data.json",
		"a11y/qa/data/metrics.prom",
	}, keys)
}

func TestPublish(t *testing.T) {
	up := &fakeUploader{}
	p := publisher.NewWithUploader(up, "reports", "/nightly/")

	urls, err := p.Publish(context.Background(), reportDir(t))
	require.NoError(t, err)
	assert.Len(t, urls, 4)
	assert.Contains(t, urls, "s3://reports/nightly/report.html")
	assert.Contains(t, up.keys, "nightly/accessibility-summary.csv|text/csv; charset=utf-8")
}

func TestPublish_StopsOnUploadError(t *testing.T) {
	up := &fakeUploader{fail: "data/metrics.prom"}
	_, err := publisher.NewWithUploader(up, "reports", "").Publish(context.Background(), reportDir(t))
	assert.ErrorContains(t, err, "uploading data/metrics.prom")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/plain; version=0.0.4", publisher.ContentType("metrics.prom"))
	assert.Contains(t, publisher.ContentType("report.html"), "text/html")
	assert.Equal(t, "application/octet-stream", publisher.ContentType("LICENSE"))
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := publisher.New(context.Background(), publisher.Config{Endpoint: "localhost:9000"})
	assert.Error(t, err)
}
