package harvest

import "errors"

var (
	// ErrServiceUnavailable wraps transport failures, timeouts, and 5xx
	// responses. Callers treat the observation as unknown and retry later
	// instead of assuming no timer is running.
	ErrServiceUnavailable = errors.New("time-tracking service unavailable")

	// ErrNotFound means no matching time entry exists.
	ErrNotFound = errors.New("time entry not found")

	// ErrNoRunningTimer means a stop was requested while no timer is active.
	ErrNoRunningTimer = errors.New("no running timer")

	// ErrTimerRunning means a start was requested while a timer is already
	// active.
	ErrTimerRunning = errors.New("timer already running")
)
