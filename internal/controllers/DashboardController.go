package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"scopewatch/internal/models"
	"scopewatch/internal/providers"
	"scopewatch/internal/services"
	"scopewatch/internal/structures"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

type DashboardController struct {
	logger  providers.Logger
	service services.DashboardServiceInterface
	cache   services.ResponseCacheInterface
	conf    *structures.Config
}

func NewDashboardController(conf *structures.Config, logger providers.Logger, service services.DashboardServiceInterface, cache services.ResponseCacheInterface) *DashboardController {
	return &DashboardController{
		logger:  logger,
		service: service,
		cache:   cache,
		conf:    conf,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (dc *DashboardController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, endpoint, key string, compute func() (any, error)) {
	body, err := dc.cache.Cached(key, dc.conf.EndpointTTL(endpoint), compute)
	if err != nil {
		dc.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (dc *DashboardController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		dc.logger.Errorf(providers.TypeHTTP, "%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		dc.logger.Debugf(providers.TypeHTTP, "%s %s: %v", r.Method, r.URL.Path, err)
	}

	body, mErr := json.Marshal(errorResponse{Error: message})
	if mErr != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, body)
}

// errorStatus maps service error kinds onto HTTP statuses. Messages of server
// side failures are not exposed.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrInvalidArgument):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, services.ErrUpstreamUnavailable.Error()
	case errors.Is(err, services.ErrSigningFailure):
		return http.StatusBadGateway, services.ErrSigningFailure.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// pathParam returns a decoded route parameter. chi routes on RawPath when the
// request carried escaped slashes, so only then is the segment still escaped.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// cacheKey is scoped by endpoint and built from the escaped path so that a
// name holding "/" cannot alias another route.
func cacheKey(endpoint string, r *http.Request, unit *models.TimeUnit) string {
	return services.CacheKey(endpoint, r.URL.EscapedPath(), unit)
}

func (dc *DashboardController) Home(w http.ResponseWriter, r *http.Request) {
	dc.serveFromCacheOrCompute(w, r, "home", cacheKey("home", r, nil), func() (any, error) {
		return dc.service.GetMonitors(r.Context())
	})
}

// MonitorDetail serves /monitor/{name} (page 1) and /monitor/{name}/{page}.
func (dc *DashboardController) MonitorDetail(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	page := 1
	if raw := chi.URLParam(r, "page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			dc.writeError(w, r, fmt.Errorf("%w: page %q is not a number", services.ErrInvalidArgument, raw))
			return
		}
		page = n
	}

	rawUnit := r.URL.Query().Get("unit")
	unit, err := models.ParseOptionalTimeUnit(rawUnit)
	if err != nil {
		dc.writeError(w, r, fmt.Errorf("%w: %w", services.ErrInvalidArgument, err))
		return
	}

	dc.serveFromCacheOrCompute(w, r, "monitor_detail", cacheKey("monitor_detail", r, unit), func() (any, error) {
		return dc.service.GetMonitorDetail(r.Context(), name, page, rawUnit)
	})
}

func (dc *DashboardController) MonitorScopes(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	dc.serveFromCacheOrCompute(w, r, "monitor_scopes", cacheKey("monitor_scopes", r, nil), func() (any, error) {
		return dc.service.GetMonitorScopes(r.Context(), name, dc.conf.Dashboard.ScopesPageSize)
	})
}

func (dc *DashboardController) ScopeWatch(w http.ResponseWriter, r *http.Request) {
	name, value := pathParam(r, "name"), pathParam(r, "value")
	dc.serveFromCacheOrCompute(w, r, "scope_watch", cacheKey("scope_watch", r, nil), func() (any, error) {
		return dc.service.GetScopeWatchView(r.Context(), name, value)
	})
}

func (dc *DashboardController) ScopeURL(w http.ResponseWriter, r *http.Request) {
	name, value := pathParam(r, "name"), pathParam(r, "value")
	dc.serveFromCacheOrCompute(w, r, "scope_url", cacheKey("scope_url", r, nil), func() (any, error) {
		return dc.service.GetScopeAccessURL(r.Context(), name, value)
	})
}
