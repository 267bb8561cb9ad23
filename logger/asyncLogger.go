package logger

import (
	"log"

	"gorm.io/gorm"

	log_model "somadhan-booking/models/log"
	"somadhan-booking/types"
)

// AsyncLogger drains request log entries into the local database without
// blocking the request path.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
	}
}

func (logger *AsyncLogger) ProcessLog() {
	log.Println("Starting asynchronous logger...")

	for logEntry := range logger.channel {
		dbLog := log_model.Log{
			Method:     logEntry.Method,
			Path:       logEntry.Path,
			ClientIP:   logEntry.ClientIP,
			StatusCode: logEntry.StatusCode,
			LatencyMs:  logEntry.LatencyMs,
			CreatedAt:  logEntry.CreatedAt,
		}

		if err := logger.db.Create(&dbLog).Error; err != nil {
			log.Printf("Failed to insert new log entry: %v", err)
		}
	}
}

// Log pushes a log entry into the channel; entries are dropped when the
// buffer is full rather than stalling a request.
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	select {
	case logger.channel <- entry:
	default:
	}
}
