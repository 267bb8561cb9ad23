package constants

// Keys for the local fallback cache. These mirror the browser-local entries
// of the web client, so a cache produced by either side reads the same.
const (
	KeyEnquiries    = "somadhan_enquiries"
	KeyAdminSession = "somadhan_admin_token"
	KeyLanguage     = "somadhan_language"
	KeyTheme        = "somadhan_theme"
)

// OwnerWhatsApp is the fixed destination for the notification relay.
const OwnerWhatsApp = "918420745907"

// Remote store collections.
const (
	CollectionEnquiries = "enquiries"
	CollectionAdmins    = "admins"
)

// Preference values accepted by the prefs endpoints.
var (
	Languages = []string{"en", "bn"}
	Themes    = []string{"dark", "light"}
)
