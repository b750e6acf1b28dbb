package services

import (
	"context"
	"fmt"
	"scopewatch/internal/models"
	"scopewatch/internal/providers"
	"scopewatch/internal/structures"
	"time"
)

const DefaultURLExpiry = 300 * time.Second

type SignedURLServiceInterface interface {
	IssueAccessURL(ctx context.Context, objectKey string) (models.AccessURL, error)
	IssueAccessURLWithExpiry(ctx context.Context, objectKey string, expires time.Duration) (models.AccessURL, error)
}

type SignedURLService struct {
	signer  providers.SignerInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
	bucket  string
	expiry  time.Duration
}

func NewSignedURLService(conf *structures.Config, signer providers.SignerInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) SignedURLServiceInterface {
	expiry := conf.ObjectStore.URLExpiry
	if expiry <= 0 {
		expiry = DefaultURLExpiry
	}
	return &SignedURLService{
		signer:  signer,
		metrics: metrics,
		logger:  logger,
		bucket:  conf.ObjectStore.Bucket,
		expiry:  expiry,
	}
}

func (s *SignedURLService) IssueAccessURL(ctx context.Context, objectKey string) (models.AccessURL, error) {
	return s.IssueAccessURLWithExpiry(ctx, objectKey, s.expiry)
}

// IssueAccessURLWithExpiry signs a fresh GET URL on every call. Whether the
// object exists is only discovered when the URL is fetched.
func (s *SignedURLService) IssueAccessURLWithExpiry(ctx context.Context, objectKey string, expires time.Duration) (models.AccessURL, error) {
	if expires <= 0 {
		expires = s.expiry
	}
	if objectKey == "" {
		s.metrics.IncSignedURLs("error")
		return models.AccessURL{}, fmt.Errorf("%w: empty object key", ErrSigningFailure)
	}

	signed, err := s.signer.Sign(ctx, s.bucket, objectKey, expires)
	if err != nil {
		s.metrics.IncSignedURLs("error")
		s.logger.Errorf(providers.TypeSign, "Unable to sign %s/%s: %v", s.bucket, objectKey, err)
		return models.AccessURL{}, signError(err)
	}

	s.metrics.IncSignedURLs("ok")
	s.logger.Debugf(providers.TypeSign, "Signed %s/%s for %s", s.bucket, objectKey, expires)
	return models.AccessURL{URL: signed, ExpiresInSeconds: int(expires / time.Second)}, nil
}
