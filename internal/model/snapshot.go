package model

import "time"

// TimerSnapshot is the remote service's timer state as observed at one
// instant. The zero value means "no timer running".
type TimerSnapshot struct {
	Running     bool
	EntryID     int64
	ProjectID   int64
	ProjectName string
	StartedAt   time.Time
	Hours       float64
	Notes       string
}
