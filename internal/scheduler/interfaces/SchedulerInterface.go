package interfaces

import "time"

type SchedulerInterface interface {
	Init()
	Stop()
	Refresh() error
	LastRefresh() time.Time
}
