package quote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

type S3Path struct {
	Bucket string
	Key    string
}

func (p *S3Path) String() string {
	return fmt.Sprintf("s3://%s/%s", p.Bucket, p.Key)
}

func ParseS3(path string) (*S3Path, error) {
	if !strings.HasPrefix(path, "s3://") {
		return nil, fmt.Errorf("path must start with s3://")
	}

	path = strings.TrimPrefix(path, "s3://")
	bucket, key, _ := strings.Cut(path, "/")

	if bucket == "" {
		return nil, fmt.Errorf("missing bucket in s3 path")
	}

	key = strings.Trim(key, "/")
	if key == "" {
		return nil, fmt.Errorf("missing object key in s3 path")
	}

	return &S3Path{Bucket: bucket, Key: key}, nil
}

// S3API is the part of the S3 client used to fetch quote files.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func NewS3Client(ctx context.Context, profile, region string) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" && profile != "default" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg), nil
}

// Fetcher copies a quote file from a local path, an http(s) URL or an
// s3:// object to a local file.
type Fetcher struct {
	HTTP *http.Client
	S3   S3API
	Log  zerolog.Logger
}

// Fetch returns a local path for location and a func removing any temporary copy.
func (f *Fetcher) Fetch(ctx context.Context, location, pattern string) (string, func(), error) {
	switch {
	case strings.HasPrefix(location, "s3://"):
		return f.fetchS3(ctx, location, pattern)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return f.fetchHTTP(ctx, location, pattern)
	}

	if _, err := os.Stat(location); err != nil {
		return "", nil, err
	}

	return location, func() {}, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url, pattern string) (string, func(), error) {
	f.Log.Debug().Str("url", url).Msg("fetching")

	client := f.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("failed to get data: http %d", resp.StatusCode)
	}

	return f.toTemp(resp.Body, pattern)
}

func (f *Fetcher) fetchS3(ctx context.Context, location, pattern string) (string, func(), error) {
	src, err := ParseS3(location)
	if err != nil {
		return "", nil, err
	}

	if f.S3 == nil {
		return "", nil, fmt.Errorf("no s3 client configured for %s", src)
	}

	f.Log.Debug().Str("bucket", src.Bucket).Str("key", src.Key).Msg("fetching from s3")

	out, err := f.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(src.Bucket),
		Key:    aws.String(src.Key),
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to download %s: %w", src, err)
	}
	defer out.Body.Close()

	return f.toTemp(out.Body, pattern)
}

func (f *Fetcher) toTemp(r io.Reader, pattern string) (string, func(), error) {
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmp.Close()

	cleanup := func() { os.Remove(tmp.Name()) }

	size, err := io.Copy(tmp, r)
	if err != nil {
		cleanup()
		return "", nil, err
	}

	f.Log.Debug().Int64("bytes", size).Str("path", filepath.Base(tmp.Name())).Msg("downloaded")

	return tmp.Name(), cleanup, nil
}
