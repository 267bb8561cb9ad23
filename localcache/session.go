package localcache

import (
	"somadhan-booking/constants"
	"somadhan-booking/utils"
)

// AdminSessionStore persists the admin store-session token in the local
// cache, encrypted at rest. It satisfies the record store's SessionStore.
type AdminSessionStore struct {
	cache *Cache
}

func NewAdminSessionStore(cache *Cache) *AdminSessionStore {
	return &AdminSessionStore{cache: cache}
}

func (s *AdminSessionStore) Load() (string, error) {
	stored, err := s.cache.GetString(constants.KeyAdminSession)
	if err != nil || stored == "" {
		return "", err
	}
	return utils.DecryptData(stored)
}

func (s *AdminSessionStore) Save(token string) error {
	encrypted, err := utils.EncryptData(token)
	if err != nil {
		return err
	}
	return s.cache.SetString(constants.KeyAdminSession, encrypted)
}

func (s *AdminSessionStore) Clear() error {
	return s.cache.Delete(constants.KeyAdminSession)
}
