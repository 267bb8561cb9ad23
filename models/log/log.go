package log

import (
	"time"
)

// Log represents an HTTP request log entry.
type Log struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Method     string    `gorm:"type:varchar(10);not null" json:"method"`
	Path       string    `gorm:"type:text;not null" json:"path"`
	ClientIP   string    `gorm:"type:varchar(64)" json:"client_ip"`
	StatusCode int       `gorm:"type:int" json:"status_code"`
	LatencyMs  int64     `gorm:"type:bigint" json:"latency_ms"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
