// Package storage adapts the external object store.  Product images are
// uploaded directly by the client through a short-lived signed URL; this
// service never proxies image bytes.
package storage

import (
	"context"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// UploadURLExpiry bounds how long a signed upload URL stays valid.
const UploadURLExpiry = 60 * time.Second

// UploadURLSigner issues time-limited URLs for client-side uploads.
// Failures are surfaced to the caller untouched and are not retried at
// this layer.
type UploadURLSigner interface {
	SignUploadURL(ctx context.Context, fileName, fileType string) (string, error)
}

// GCSSigner signs upload URLs against a Google Cloud Storage bucket.
type GCSSigner struct {
	bucket string
	client *gcs.Client
}

// NewGCSSigner opens a GCS client for the given bucket.  With an empty
// credentials path, application default credentials are used.
func NewGCSSigner(ctx context.Context, bucket, credsFile string) (*GCSSigner, error) {
	var opts []option.ClientOption
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCSSigner{bucket: bucket, client: client}, nil
}

// SignUploadURL returns a V4 signed PUT URL for the object named
// fileName, bound to the given content type and valid for
// UploadURLExpiry.
func (s *GCSSigner) SignUploadURL(_ context.Context, fileName, fileType string) (string, error) {
	return s.client.Bucket(s.bucket).SignedURL(fileName, &gcs.SignedURLOptions{
		Scheme:      gcs.SigningSchemeV4,
		Method:      http.MethodPut,
		ContentType: fileType,
		Expires:     time.Now().Add(UploadURLExpiry),
	})
}
