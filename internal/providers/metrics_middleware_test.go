package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMetrics struct {
	noopMetrics
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }

type mockHTTPLogger struct {
	cacheTestLogger
	infos  []string
	warns  []string
	errors []string
}

func (m *mockHTTPLogger) Infof(_ TypeEnum, format string, _ ...interface{}) {
	m.infos = append(m.infos, format)
}
func (m *mockHTTPLogger) Warnf(_ TypeEnum, format string, _ ...interface{}) {
	m.warns = append(m.warns, format)
}
func (m *mockHTTPLogger) Errorf(_ TypeEnum, format string, _ ...interface{}) {
	m.errors = append(m.errors, format)
}

func TestMetricsMiddleware_CapturesStatusAndEndpoint(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	mw := MetricsMiddleware(metrics, handler)

	req := httptest.NewRequest(http.MethodGet, "/list", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, "/list", metrics.requestEndpoint)
	assert.Equal(t, http.StatusCreated, metrics.requestStatus)
	assert.Equal(t, 1, metrics.durationCalls)
}

func TestMetricsMiddleware_DefaultStatus200(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mw := MetricsMiddleware(metrics, handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
}

func TestMetricsMiddleware_UsesChiRoutePattern(t *testing.T) {
	metrics := &mockMetrics{}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler { return MetricsMiddleware(metrics, next) })
	r.Get("/monitor/{name}/scope/{value}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/monitor/frontdoor/scope/2024-01-15", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "/monitor/{name}/scope/{value}", metrics.requestEndpoint)
	assert.Equal(t, http.StatusNotFound, metrics.requestStatus)
}

func TestStatusWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := newStatusWriter(rr)

	sw.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, sw.status)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatusWriter_CountsBytes(t *testing.T) {
	sw := newStatusWriter(httptest.NewRecorder())

	_, err := sw.Write([]byte("hello"))
	require.NoError(t, err)
	_, err = sw.Write([]byte(" world"))
	require.NoError(t, err)

	assert.Equal(t, int64(11), sw.written)
	assert.Equal(t, http.StatusOK, sw.status)
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	logger := &mockHTTPLogger{}
	var seen string
	handler := RequestLogger(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.Header().Get(RequestIDHeader)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rr.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, seen)
	assert.Len(t, logger.infos, 1)
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	logger := &mockHTTPLogger{}
	handler := RequestLogger(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		infos  int
		warns  int
		errors int
	}{
		{http.StatusOK, 1, 0, 0},
		{http.StatusNotFound, 0, 1, 0},
		{http.StatusServiceUnavailable, 0, 0, 1},
	}
	for _, tt := range tests {
		logger := &mockHTTPLogger{}
		status := tt.status
		handler := RequestLogger(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/monitor/x", nil))

		assert.Len(t, logger.infos, tt.infos, "status %d", tt.status)
		assert.Len(t, logger.warns, tt.warns, "status %d", tt.status)
		assert.Len(t, logger.errors, tt.errors, "status %d", tt.status)
	}
}
