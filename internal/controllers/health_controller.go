package controllers

import (
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"scopewatch/internal/scheduler/interfaces"
	"scopewatch/internal/storage"
	"time"
)

const healthPingTimeout = 2 * time.Second

type HealthController struct {
	store     storage.EntityStoreInterface
	scheduler interfaces.SchedulerInterface
	startTime time.Time
}

type healthResponse struct {
	Status             string     `json:"status"`
	Uptime             string     `json:"uptime"`
	UptimeSeconds      float64    `json:"uptime_seconds"`
	Database           string     `json:"database"`
	LastCatalogRefresh *time.Time `json:"last_catalog_refresh,omitempty"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Database:      "ok",
	}
	code := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()
	if err := hc.store.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "unavailable"
		code = http.StatusServiceUnavailable
	}

	if last := hc.scheduler.LastRefresh(); !last.IsZero() {
		resp.LastCatalogRefresh = &last
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store storage.EntityStoreInterface, scheduler interfaces.SchedulerInterface) *HealthController {
	return &HealthController{
		store:     store,
		scheduler: scheduler,
		startTime: time.Now(),
	}
}
