package types

import "time"

// LogEntry is a request log record queued for the async logger.
type LogEntry struct {
	ID         uint
	Method     string
	Path       string
	ClientIP   string
	StatusCode int
	LatencyMs  int64
	CreatedAt  time.Time
}
