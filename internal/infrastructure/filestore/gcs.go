package filestore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GCS stores uploads in a Google Cloud Storage bucket and returns the public
// object URL.
type GCS struct {
	client *storage.Client
	bucket string
}

// NewGCS builds a GCS store. With an empty credsPath, Application Default
// Credentials are used.
func NewGCS(ctx context.Context, bucket, credsPath string) (*GCS, error) {
	var client *storage.Client
	var err error
	if credsPath == "" {
		client, err = storage.NewClient(ctx)
	} else {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
	}
	if err != nil {
		return nil, err
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (s *GCS) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	object := path.Join("profile-images", uuid.NewString()+strings.ToLower(path.Ext(name)))

	wc := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // small files, skip chunked upload
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object), nil
}

func (s *GCS) Close() error { return s.client.Close() }
