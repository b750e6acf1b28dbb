package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownTimeUnit = errors.New("unknown time unit")

// TimeUnit is the granularity a monitoring scope covers.
type TimeUnit string

const (
	UnitDay   TimeUnit = "DAY"
	UnitWeek  TimeUnit = "WEEK"
	UnitMonth TimeUnit = "MONTH"
)

var TimeUnits = []TimeUnit{UnitDay, UnitWeek, UnitMonth}

func (u TimeUnit) String() string {
	return string(u)
}

func (u TimeUnit) Valid() bool {
	switch u {
	case UnitDay, UnitWeek, UnitMonth:
		return true
	}
	return false
}

func ParseTimeUnit(s string) (TimeUnit, error) {
	u := TimeUnit(s)
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTimeUnit, s)
	}
	return u, nil
}

// ParseOptionalTimeUnit treats a blank value as "all units" and returns nil.
func ParseOptionalTimeUnit(s string) (*TimeUnit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	u, err := ParseTimeUnit(s)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
