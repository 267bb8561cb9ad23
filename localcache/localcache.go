package localcache

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"somadhan-booking/constants"
	"somadhan-booking/logger"
	enquiryModel "somadhan-booking/models/enquiry"
	"somadhan-booking/models/kv"
)

// Cache persists JSON-serialized record lists and plain-string preferences
// in the local key-value store. It is the fallback when the remote record
// store is unavailable. Writes overwrite unconditionally: no merge, no
// versioning, and no migration across schema changes.
type Cache struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Cache {
	return &Cache{db: db}
}

// ReadEnquiries returns the cached enquiry list. A missing key or a payload
// that fails to parse yields an empty list, never an error.
func (c *Cache) ReadEnquiries() []enquiryModel.Enquiry {
	value, err := c.GetString(constants.KeyEnquiries)
	if err != nil || value == "" {
		return []enquiryModel.Enquiry{}
	}

	var records []enquiryModel.Enquiry
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		logger.Warning("Discarding corrupt enquiry cache: " + err.Error())
		return []enquiryModel.Enquiry{}
	}
	return records
}

// WriteEnquiries serializes and overwrites the cached enquiry list.
func (c *Cache) WriteEnquiries(records []enquiryModel.Enquiry) error {
	if records == nil {
		records = []enquiryModel.Enquiry{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.SetString(constants.KeyEnquiries, string(payload))
}

// GetString returns the value stored under key, or "" when absent.
func (c *Cache) GetString(key string) (string, error) {
	var entry kv.Entry
	err := c.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// SetString overwrites the value stored under key.
func (c *Cache) SetString(key, value string) error {
	entry := kv.Entry{Key: key, Value: value}
	return c.db.Save(&entry).Error
}

// Delete removes the entry under key; a missing key is not an error.
func (c *Cache) Delete(key string) error {
	return c.db.Delete(&kv.Entry{}, "key = ?", key).Error
}
