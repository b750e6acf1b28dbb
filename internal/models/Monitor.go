package models

import "time"

type Monitor struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	LastScanAt *time.Time `json:"lastScanAt,omitempty"`
	Width      *int       `json:"width,omitempty"`
	Height     *int       `json:"height,omitempty"`
}

type MonitoringScope struct {
	ID         int64       `json:"id"`
	MonitorID  int64       `json:"monitorId"`
	Unit       TimeUnit    `json:"unit"`
	Value      string      `json:"value"`
	StartsAt   time.Time   `json:"startsAt"`
	EndsAt     time.Time   `json:"endsAt"`
	Path       string      `json:"path"`
	FilesCount int         `json:"filesCount"`
	Status     ScopeStatus `json:"status"`
	Output     *string     `json:"output,omitempty"`
}

// HasOutput reports whether the scope points at an archived artifact.
func (s *MonitoringScope) HasOutput() bool {
	return s.Output != nil && *s.Output != ""
}
