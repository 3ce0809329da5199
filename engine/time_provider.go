package engine

import "time"

// Clock supplies frame timestamps to the host loop
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock with its monotonic component
type SystemClock struct{}

// NewSystemClock creates a clock backed by time.Now
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}
