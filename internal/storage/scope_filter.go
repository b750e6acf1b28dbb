package storage

import (
	"scopewatch/internal/models"
	"strings"
)

// ScopeFilter selects the scopes of one monitor. Nil fields are not applied.
type ScopeFilter struct {
	MonitorID int64
	Unit      *models.TimeUnit
	Status    *models.ScopeStatus
}

func NewScopeFilter(monitorID int64) ScopeFilter {
	return ScopeFilter{MonitorID: monitorID}
}

func (f ScopeFilter) WithUnit(unit *models.TimeUnit) ScopeFilter {
	f.Unit = unit
	return f
}

func (f ScopeFilter) WithStatus(status models.ScopeStatus) ScopeFilter {
	f.Status = &status
	return f
}

// buildScopeWhere AND-combines the present predicates. Placeholders are numbered
// from startArg so the caller can append LIMIT/OFFSET after the returned args.
func buildScopeWhere(f ScopeFilter, d Dialect, startArg int) (string, []any) {
	var conditions []string
	var args []any
	add := func(column string, value any) {
		conditions = append(conditions, column+" = "+d.Placeholder(startArg+len(args)))
		args = append(args, value)
	}

	add("monitor_id", f.MonitorID)
	if f.Unit != nil {
		add("unit", string(*f.Unit))
	}
	if f.Status != nil {
		add("status", string(*f.Status))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
