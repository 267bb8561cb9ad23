package localcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"somadhan-booking/constants"
	enquiryModel "somadhan-booking/models/enquiry"
	"somadhan-booking/models/kv"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&kv.Entry{}))
	return New(db)
}

func TestStringRoundTrip(t *testing.T) {
	cache := testCache(t)

	value, err := cache.GetString(constants.KeyLanguage)
	require.NoError(t, err)
	assert.Empty(t, value, "missing key reads as empty")

	require.NoError(t, cache.SetString(constants.KeyLanguage, "bn"))
	value, err = cache.GetString(constants.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "bn", value)

	require.NoError(t, cache.SetString(constants.KeyLanguage, "en"))
	value, err = cache.GetString(constants.KeyLanguage)
	require.NoError(t, err)
	assert.Equal(t, "en", value, "set overwrites")
}

func TestDelete(t *testing.T) {
	cache := testCache(t)

	require.NoError(t, cache.SetString(constants.KeyTheme, "dark"))
	require.NoError(t, cache.Delete(constants.KeyTheme))

	value, err := cache.GetString(constants.KeyTheme)
	require.NoError(t, err)
	assert.Empty(t, value)

	assert.NoError(t, cache.Delete("never-existed"))
}

func TestEnquiriesRoundTrip(t *testing.T) {
	cache := testCache(t)

	assert.Empty(t, cache.ReadEnquiries(), "empty cache reads as empty list")

	name := "Asha"
	records := []enquiryModel.Enquiry{
		{ID: "e1", Service: enquiryModel.ServicePlumber, Category: "Repair", Phone: "9876543210", Name: &name, Status: enquiryModel.StatusNew},
		{ID: "e2", Service: enquiryModel.ServiceGrill, Category: "New", Phone: "9842057907", Status: enquiryModel.StatusContacted},
	}
	require.NoError(t, cache.WriteEnquiries(records))

	got := cache.ReadEnquiries()
	require.Len(t, got, 2)
	assert.Equal(t, records, got)
}

func TestWriteEnquiriesNilBecomesEmptyList(t *testing.T) {
	cache := testCache(t)

	require.NoError(t, cache.WriteEnquiries(nil))
	assert.Equal(t, []enquiryModel.Enquiry{}, cache.ReadEnquiries())
}

func TestCorruptEnquiryPayloadReadsEmpty(t *testing.T) {
	cache := testCache(t)

	require.NoError(t, cache.SetString(constants.KeyEnquiries, "{not json"))
	assert.Empty(t, cache.ReadEnquiries())
}

func TestAdminSessionStoreRoundTrip(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "!0123456789abcdef0123456789abcde")
	cache := testCache(t)
	sessions := NewAdminSessionStore(cache)

	token, err := sessions.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "no persisted session reads as empty")

	require.NoError(t, sessions.Save("session-jwt"))

	stored, err := cache.GetString(constants.KeyAdminSession)
	require.NoError(t, err)
	assert.NotEqual(t, "session-jwt", stored, "token must not be stored in the clear")

	token, err = sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, "session-jwt", token)

	require.NoError(t, sessions.Clear())
	token, err = sessions.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
