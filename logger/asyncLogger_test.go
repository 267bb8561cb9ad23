package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	log_model "somadhan-booking/models/log"
	"somadhan-booking/types"
)

func TestAsyncLoggerPersistsEntries(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&log_model.Log{}))

	asyncLogger := NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	asyncLogger.Log(types.LogEntry{
		Method:     "POST",
		Path:       "/api/enquiries",
		ClientIP:   "127.0.0.1",
		StatusCode: 201,
		LatencyMs:  12,
		CreatedAt:  time.Now(),
	})

	require.Eventually(t, func() bool {
		var count int64
		db.Model(&log_model.Log{}).Count(&count)
		return count == 1
	}, 2*time.Second, 10*time.Millisecond)

	var stored log_model.Log
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "POST", stored.Method)
	assert.Equal(t, "/api/enquiries", stored.Path)
	assert.Equal(t, 201, stored.StatusCode)
}

func TestLogDropsWhenBufferFull(t *testing.T) {
	// No drain goroutine: the buffer fills and further entries are dropped
	// without blocking.
	asyncLogger := NewAsyncLogger(nil)
	for i := 0; i < 200; i++ {
		asyncLogger.Log(types.LogEntry{Method: "GET", Path: "/health"})
	}
	assert.Len(t, asyncLogger.channel, 100)
}
