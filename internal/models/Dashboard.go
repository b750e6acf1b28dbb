package models

type MonitorView struct {
	Monitor
	ThumbnailURL string `json:"thumbnailUrl"`
}

type MonitorDetail struct {
	Monitor                *Monitor          `json:"monitor"`
	Scopes                 []MonitoringScope `json:"scopes"`
	TotalCount             int               `json:"totalCount"`
	PageNumber             int               `json:"pageNumber"`
	PageSize               int               `json:"pageSize"`
	NumPages               int               `json:"numPages"`
	Unit                   *TimeUnit         `json:"unit,omitempty"`
	Statuses               StatusHistogram   `json:"statuses"`
	ArchivedDailyFileCount *int64            `json:"archivedDailyFileCount"`
}

type AccessURL struct {
	URL              string `json:"url"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
}

type ScopeAccess struct {
	AccessURL
}

type ScopeWatch struct {
	AccessURL
	Monitor *Monitor         `json:"monitor"`
	Scope   *MonitoringScope `json:"scope"`
	FPS     int              `json:"fps"`
}
