package database

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"somadhan-booking/logger"
	"somadhan-booking/models/kv"
	"somadhan-booking/models/log"
)

var DB *gorm.DB

// InitDB opens the local store backing the fallback cache and the request
// log. It is an embedded sqlite file by default; LOCAL_DB_URL may point it
// at postgres for shared deployments. The remote record store is separate
// and reached over HTTP.
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	dsn := os.Getenv("LOCAL_DB_URL")
	if dsn == "" {
		dsn = "somadhan.db"
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logger.Error("Failed to open the local store", err)
		return nil, err
	}
	logger.Success("Local store opened")

	if err := DB.AutoMigrate(&kv.Entry{}, &log.Log{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}
	logger.Success("Local store migrations completed")

	return DB, nil
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
