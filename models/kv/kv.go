package kv

import (
	"time"
)

// Entry is one row of the local fallback store: an opaque string value
// under a fixed key. The enquiry list, display preferences and the admin
// session each occupy one entry.
type Entry struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Entry model.
func (Entry) TableName() string {
	return "kv_entries"
}
