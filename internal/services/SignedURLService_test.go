package services

import (
	"context"
	"errors"
	"scopewatch/internal/structures"
	"scopewatch/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signerConfig(expiry time.Duration) *structures.Config {
	return &structures.Config{
		ObjectStore: structures.ObjectStoreConfig{Bucket: "monitoring-storage", URLExpiry: expiry},
	}
}

func TestSignedURLService_DefaultExpiry(t *testing.T) {
	signer := &testutil.MockSigner{}
	metrics := testutil.NewMockMetrics()
	svc := NewSignedURLService(signerConfig(0), signer, metrics, &testutil.MockLogger{})

	access, err := svc.IssueAccessURL(context.Background(), "frontdoor/2024-01-15.mp4")
	require.NoError(t, err)
	assert.Contains(t, access.URL, "frontdoor/2024-01-15.mp4")
	assert.Equal(t, 300, access.ExpiresInSeconds)
	require.Len(t, signer.Calls, 1)
	assert.Equal(t, "monitoring-storage", signer.Calls[0].Bucket)
	assert.Equal(t, DefaultURLExpiry, signer.Calls[0].Expires)
	assert.Equal(t, 1, metrics.SignedURLs["ok"])
}

func TestSignedURLService_ExplicitExpiry(t *testing.T) {
	signer := &testutil.MockSigner{}
	svc := NewSignedURLService(signerConfig(5*time.Minute), signer, testutil.NewMockMetrics(), &testutil.MockLogger{})

	access, err := svc.IssueAccessURLWithExpiry(context.Background(), "k.mp4", 90*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 90, access.ExpiresInSeconds)

	access, err = svc.IssueAccessURLWithExpiry(context.Background(), "k.mp4", -time.Second)
	require.NoError(t, err)
	assert.Equal(t, 300, access.ExpiresInSeconds)
}

func TestSignedURLService_FreshURLEveryCall(t *testing.T) {
	signer := &testutil.MockSigner{}
	svc := NewSignedURLService(signerConfig(5*time.Minute), signer, testutil.NewMockMetrics(), &testutil.MockLogger{})

	_, _ = svc.IssueAccessURL(context.Background(), "k.mp4")
	_, _ = svc.IssueAccessURL(context.Background(), "k.mp4")
	assert.Equal(t, 2, signer.CallCount())
}

func TestSignedURLService_EmptyKey(t *testing.T) {
	signer := &testutil.MockSigner{}
	metrics := testutil.NewMockMetrics()
	svc := NewSignedURLService(signerConfig(5*time.Minute), signer, metrics, &testutil.MockLogger{})

	_, err := svc.IssueAccessURL(context.Background(), "")
	assert.ErrorIs(t, err, ErrSigningFailure)
	assert.Equal(t, 0, signer.CallCount())
	assert.Equal(t, 1, metrics.SignedURLs["error"])
}

func TestSignedURLService_SignerRejects(t *testing.T) {
	signer := &testutil.MockSigner{SignFn: func(_, _ string, _ time.Duration) (string, error) {
		return "", errors.New("invalid bucket name")
	}}
	logger := &testutil.MockLogger{}
	svc := NewSignedURLService(signerConfig(5*time.Minute), signer, testutil.NewMockMetrics(), logger)

	_, err := svc.IssueAccessURL(context.Background(), "k.mp4")
	assert.ErrorIs(t, err, ErrSigningFailure)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, logger.Count("error"))
}

func TestSignedURLService_CancelledContextIsUpstream(t *testing.T) {
	signer := &testutil.MockSigner{SignFn: func(_, _ string, _ time.Duration) (string, error) {
		return "", context.DeadlineExceeded
	}}
	svc := NewSignedURLService(signerConfig(5*time.Minute), signer, testutil.NewMockMetrics(), &testutil.MockLogger{})

	_, err := svc.IssueAccessURL(context.Background(), "k.mp4")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
