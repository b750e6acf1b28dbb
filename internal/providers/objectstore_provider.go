package providers

import (
	"context"
	"fmt"
	"net/url"
	"scopewatch/internal/structures"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// SignerInterface issues time-limited GET URLs for objects.
type SignerInterface interface {
	Sign(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}

type MinioSigner struct {
	client *minio.Client
}

// NewObjectStoreProvider builds an S3 v4 presigner. The region is pinned so
// presigning never asks the server for the bucket location.
func NewObjectStoreProvider(conf *structures.Config, logger Logger) (SignerInterface, error) {
	endpoint, secure, err := normalizeEndpoint(conf.ObjectStore.Endpoint, conf.ObjectStore.Secure)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.ObjectStore.AccessKey, conf.ObjectStore.SecretKey, ""),
		Secure: secure,
		Region: conf.ObjectStore.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create object store client: %w", err)
	}

	logger.Infof(TypeApp, "Object store signer ready: %s, bucket %s", endpoint, conf.ObjectStore.Bucket)
	return &MinioSigner{client: client}, nil
}

// normalizeEndpoint accepts both "host:port" and "https://host:port".
// An explicit scheme overrides the secure flag.
func normalizeEndpoint(raw string, secure bool) (string, bool, error) {
	if !strings.Contains(raw, "://") {
		return raw, secure, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("invalid object store endpoint %q: %w", raw, err)
	}
	switch u.Scheme {
	case "https":
		return u.Host, true, nil
	case "http":
		return u.Host, false, nil
	}
	return "", false, fmt.Errorf("invalid object store endpoint scheme %q", u.Scheme)
}

func (s *MinioSigner) Sign(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, bucket, key, expires, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
