package testutil

import (
	"context"
	"fmt"
	"scopewatch/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface and remembers the TTL
// of every Set.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	TTLs map[string]time.Duration
	Gets int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte), TTLs: make(map[string]time.Duration)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	m.TTLs[key] = ttl
}

// MockCompressor implements providers.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu           sync.Mutex
	SignedURLs   map[string]int
	StoreQueries map[string]int
	Monitors     int
	Scopes       map[string]int
	CacheHits    int
	CacheMisses  int
	Requests     map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		SignedURLs:   make(map[string]int),
		StoreQueries: make(map[string]int),
		Scopes:       make(map[string]int),
		Requests:     make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[fmt.Sprintf("%s %d", endpoint, status)]++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObserveStoreQuery(operation string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreQueries[operation]++
}

func (m *MockMetrics) IncSignedURLs(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SignedURLs[result]++
}

func (m *MockMetrics) SetMonitorsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Monitors = count
}

func (m *MockMetrics) SetScopesTotal(status string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scopes[status] = count
}

// MockSigner implements providers.SignerInterface. Without SignFn it returns a
// deterministic fake URL embedding bucket, key and expiry.
type MockSigner struct {
	mu     sync.Mutex
	SignFn func(bucket, key string, expires time.Duration) (string, error)
	Calls  []SignCall
}

type SignCall struct {
	Bucket  string
	Key     string
	Expires time.Duration
}

func (m *MockSigner) Sign(_ context.Context, bucket, key string, expires time.Duration) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, SignCall{Bucket: bucket, Key: key, Expires: expires})
	m.mu.Unlock()

	if m.SignFn != nil {
		return m.SignFn(bucket, key, expires)
	}
	return fmt.Sprintf("https://objects.test/%s/%s?X-Amz-Expires=%d", bucket, key, int(expires.Seconds())), nil
}

func (m *MockSigner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
