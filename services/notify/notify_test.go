package notify

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"somadhan-booking/constants"
	enquiryModel "somadhan-booking/models/enquiry"
)

func ptr(s string) *string { return &s }

func sampleEnquiry() enquiryModel.Enquiry {
	return enquiryModel.Enquiry{
		ID:            "e1",
		Service:       enquiryModel.ServicePlumber,
		Category:      "Repair",
		Phone:         "9876543210",
		Name:          ptr("Asha"),
		Address:       ptr("12 Lake Rd"),
		PreferredDate: ptr("2026-09-01"),
		PreferredTime: ptr("9 AM"),
		Status:        enquiryModel.StatusNew,
	}
}

func TestSummary(t *testing.T) {
	text := Summary(sampleEnquiry())

	lines := strings.Split(text, "\n")
	require.GreaterOrEqual(t, len(lines), 7)
	assert.Equal(t, "Somadhan • New Service Request", lines[0])
	assert.Contains(t, text, "Client: Asha")
	assert.Contains(t, text, "Phone: 9876543210")
	assert.Contains(t, text, "Service: Plumber (Repair)")
	assert.Contains(t, text, "Location: 12 Lake Rd")
	assert.Contains(t, text, "Preferred: 2026-09-01 9 AM")
	assert.Contains(t, text, "Please confirm availability and pricing.")
	assert.NotContains(t, text, "Notes:")
}

func TestSummaryOptionalFields(t *testing.T) {
	e := sampleEnquiry()
	e.PreferredDate = nil
	e.PreferredTime = nil
	e.Notes = ptr("leaky kitchen tap")

	text := Summary(e)
	assert.Contains(t, text, "Preferred: N/A")
	assert.Contains(t, text, "Notes: leaky kitchen tap")
}

func TestSummaryLandCondition(t *testing.T) {
	e := sampleEnquiry()
	e.Service = enquiryModel.ServiceLand
	e.Category = "Buy"
	e.LandCondition = ptr("Old")

	assert.Contains(t, Summary(e), "Service: Land (Buy) • Old")
}

func TestDeepLink(t *testing.T) {
	relay := NewRelay(constants.OwnerWhatsApp)
	link := relay.DeepLink(sampleEnquiry())

	require.True(t, strings.HasPrefix(link, "https://wa.me/"+constants.OwnerWhatsApp+"?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, Summary(sampleEnquiry()), parsed.Query().Get("text"))
}
