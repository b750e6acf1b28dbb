package models

import (
	"errors"
	"fmt"
)

var ErrUnknownScopeStatus = errors.New("unknown scope status")

// ScopeStatus is the position of a scope in the external processing pipeline.
type ScopeStatus string

const (
	StatusIncomplete ScopeStatus = "INCOMPLETE"
	StatusPending    ScopeStatus = "PENDING"
	StatusVoid       ScopeStatus = "VOID"
	StatusProcessed  ScopeStatus = "PROCESSED"
	StatusArchived   ScopeStatus = "ARCHIVED"
	StatusError      ScopeStatus = "ERROR"
)

const DefaultScopeStatus = StatusIncomplete

var ScopeStatuses = []ScopeStatus{
	StatusIncomplete,
	StatusPending,
	StatusVoid,
	StatusProcessed,
	StatusArchived,
	StatusError,
}

func (s ScopeStatus) String() string {
	return string(s)
}

func (s ScopeStatus) Valid() bool {
	switch s {
	case StatusIncomplete, StatusPending, StatusVoid, StatusProcessed, StatusArchived, StatusError:
		return true
	}
	return false
}

// ParseScopeStatus maps a blank value to DefaultScopeStatus.
func ParseScopeStatus(s string) (ScopeStatus, error) {
	if s == "" {
		return DefaultScopeStatus, nil
	}
	st := ScopeStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownScopeStatus, s)
	}
	return st, nil
}

// StatusHistogram counts scopes per status. Statuses without scopes are absent.
type StatusHistogram map[ScopeStatus]int

func (h StatusHistogram) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}
