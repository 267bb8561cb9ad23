package enquiry

// Enquiry represents a customer's service-booking request. The record of
// truth lives in the remote store; the same shape is serialized into the
// local fallback cache, so JSON tags follow the client-side camelCase names.
type Enquiry struct {
	ID            string        `json:"id"`
	Service       ServiceType   `json:"service"`
	Category      string        `json:"category"`
	LandCondition *string       `json:"landCondition,omitempty"`
	Phone         string        `json:"phone"`
	Name          *string       `json:"name,omitempty"`
	Address       *string       `json:"address,omitempty"`
	PreferredDate *string       `json:"preferredDate,omitempty"`
	PreferredTime *string       `json:"preferredTime,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
	CreatedAt     string        `json:"createdAt"`
	Status        EnquiryStatus `json:"status"`
}
