package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"somadhan-booking/logger"
	enquiryModel "somadhan-booking/models/enquiry"
)

const brand = "Somadhan"

// Relay composes the owner notification for a newly created enquiry and
// hands it off. Delivery is fire-and-forget: no confirmation, no retry, and
// a failed hand-off is never an application error.
type Relay struct {
	owner      string
	gatewayURL string
	httpClient *http.Client
}

// NewRelay targets the fixed owner number. RELAY_GATEWAY_URL optionally
// names an HTTP gateway that forwards the summary; without it the relay
// only builds the deep link.
func NewRelay(owner string) *Relay {
	return &Relay{
		owner:      owner,
		gatewayURL: os.Getenv("RELAY_GATEWAY_URL"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Summary renders the plain-text message the owner receives.
func Summary(e enquiryModel.Enquiry) string {
	service := string(e.Service)
	if e.Category != "" {
		service += " (" + e.Category + ")"
	}
	if e.LandCondition != nil {
		service += " • " + *e.LandCondition
	}

	date := deref(e.PreferredDate)
	if date == "" {
		date = "N/A"
	}
	preferred := strings.TrimSpace(date + " " + deref(e.PreferredTime))

	lines := []string{
		brand + " • New Service Request",
		"",
		"Client: " + deref(e.Name),
		"Phone: " + e.Phone,
		"Service: " + service,
		"Location: " + deref(e.Address),
		"Preferred: " + preferred,
	}
	if notes := deref(e.Notes); notes != "" {
		lines = append(lines, "Notes: "+notes)
	}
	lines = append(lines, "", "Please confirm availability and pricing.")
	return strings.Join(lines, "\n")
}

// DeepLink builds the wa.me URL pre-filled with the summary.
func (r *Relay) DeepLink(e enquiryModel.Enquiry) string {
	return "https://wa.me/" + r.owner + "?text=" + url.QueryEscape(Summary(e))
}

// Send forwards the summary to the configured gateway from a goroutine.
// Errors are logged, never surfaced.
func (r *Relay) Send(e enquiryModel.Enquiry) {
	if r.gatewayURL == "" {
		return
	}

	go func() {
		payload, err := json.Marshal(map[string]string{
			"to":   r.owner,
			"text": Summary(e),
		})
		if err != nil {
			logger.Error("Failed to encode relay payload", err)
			return
		}

		resp, err := r.httpClient.Post(r.gatewayURL, "application/json", bytes.NewBuffer(payload))
		if err != nil {
			logger.Warning("Notification relay failed: " + err.Error())
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			logger.Warning("Notification relay returned " + resp.Status)
		}
	}()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
