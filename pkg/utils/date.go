package utils

import (
	"sync"
	"time"
)

var (
	locationMu sync.RWMutex
	location   = time.UTC
)

// SetLocation sets the process-wide local zone used for day boundaries.
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	locationMu.Lock()
	location = loc
	locationMu.Unlock()
	return nil
}

// GetLocation returns the configured local zone.
func GetLocation() *time.Location {
	locationMu.RLock()
	defer locationMu.RUnlock()
	return location
}

// StartOfDay returns local midnight of the day containing t. A nil loc means UTC.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}
