package publisher

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config locates the S3-compatible bucket reports are published to.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// Prefix is prepended to every object key, e.g. "a11y/qa".
	Prefix string
}

// Uploader is the subset of *minio.Client used for publishing.
type Uploader interface {
	FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Publisher implements domain.Publisher on top of MinIO / S3.
type Publisher struct {
	uploader Uploader
	bucket   string
	prefix   string
	baseURL  string
}

// New connects to the endpoint and makes sure the bucket exists.
func New(ctx context.Context, cfg Config) (*Publisher, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("publish: endpoint and bucket are required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("creating bucket %s: %w", cfg.Bucket, err)
		}
	}

	p := NewWithUploader(cli, cfg.Bucket, cfg.Prefix)
	p.baseURL = cli.EndpointURL().String()
	return p, nil
}

// NewWithUploader creates a publisher over an existing client.
func NewWithUploader(u Uploader, bucket, prefix string) *Publisher {
	return &Publisher{uploader: u, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Publish uploads every file under dir and returns the object URLs.
func (p *Publisher) Publish(ctx context.Context, dir string) ([]string, error) {
	files, err := ObjectKeys(dir, p.prefix)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return urls, err
		}
		_, err := p.uploader.FPutObject(ctx, p.bucket, f.Key, f.Path, minio.PutObjectOptions{
			ContentType: ContentType(f.Path),
		})
		if err != nil {
			return urls, fmt.Errorf("uploading %s: %w", f.Key, err)
		}
		urls = append(urls, p.objectURL(f.Key))
	}
	return urls, nil
}

func (p *Publisher) objectURL(key string) string {
	if p.baseURL == "" {
		return "s3://" + p.bucket + "/" + key
	}
	return strings.TrimRight(p.baseURL, "/") + "/" + p.bucket + "/" + key
}

// Object pairs a local file with its destination key.
type Object struct {
	Path string
	Key  string
}

// ObjectKeys walks dir and maps each regular file to a slash-separated key
// under prefix. Temporary files are skipped.
func ObjectKeys(dir, prefix string) ([]Object, error) {
	var out []Object
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(p, ".tmp") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix != "" {
			key = path.Join(prefix, key)
		}
		out = append(out, Object{Path: p, Key: key})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return out, nil
}

// ContentType guesses an object's content type from its extension.
func ContentType(file string) string {
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".prom":
		return "text/plain; version=0.0.4"
	case ".csv":
		return "text/csv; charset=utf-8"
	case "":
		return "application/octet-stream"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
