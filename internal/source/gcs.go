package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
)

const gcsPrefix = "gs://"

// Open resolves ref into a Payload. A gs://bucket/object reference is
// fetched into cacheDir first so the transfer reads from a stable local
// copy; anything else is treated as a local file path.
func Open(ctx context.Context, ref, cacheDir string) (*Payload, error) {
	if strings.HasPrefix(ref, gcsPrefix) {
		return openGCS(ctx, ref, cacheDir)
	}
	return openLocal(ref)
}

func parseObjectRef(ref string) (bucket, object string, err error) {
	rest := strings.TrimPrefix(ref, gcsPrefix)
	bucket, object, found := strings.Cut(rest, "/")
	if !found || bucket == "" || object == "" {
		return "", "", fmt.Errorf("invalid object reference %q, want gs://bucket/object", ref)
	}
	return bucket, object, nil
}

func openGCS(ctx context.Context, ref, cacheDir string) (*Payload, error) {
	bucket, object, err := parseObjectRef(ref)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	defer func() { _ = client.Close() }()

	localPath, err := downloadObject(ctx, client, bucket, object, cacheDir)
	if err != nil {
		return nil, err
	}

	payload, err := openLocal(localPath)
	if err != nil {
		return nil, err
	}
	payload.Name = path.Base(object)
	payload.ContentType = ContentType(object)
	return payload, nil
}

// downloadObject always fetches a fresh copy: a cached file could have
// drifted from the object, and the session is sized against exact bytes.
func downloadObject(ctx context.Context, client *storage.Client, bucket, object, cacheDir string) (string, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read gs://%s/%s: %w", bucket, object, err)
	}
	defer func() { _ = r.Close() }()

	f, err := os.CreateTemp(cacheDir, "clipcast-*-"+path.Base(object))
	if err != nil {
		return "", fmt.Errorf("failed to create local file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to download object: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to finish download: %w", err)
	}

	return f.Name(), nil
}
