package providers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger logs every request on the http channel. 4xx responses are
// logged as warnings and 5xx as errors.
func RequestLogger(logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)

		log := logger.Infof
		switch {
		case sw.status >= http.StatusInternalServerError:
			log = logger.Errorf
		case sw.status >= http.StatusBadRequest:
			log = logger.Warnf
		}
		log(TypeHTTP, "%s %s status=%d duration=%s bytes=%d request_id=%s remote=%s",
			r.Method, r.URL.RequestURI(), sw.status, time.Since(start), sw.written, requestID, r.RemoteAddr)
	})
}
