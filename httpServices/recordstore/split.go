package recordstore

import (
	"context"

	enquiryModel "somadhan-booking/models/enquiry"
)

// SplitClient routes lifecycle operations to the right client variant:
// public inserts go through the anon client so submissions never carry a
// session, everything else uses the session client.
type SplitClient struct {
	Anon    *Client
	Session *Client
}

func (s *SplitClient) ListEnquiries(ctx context.Context) ([]enquiryModel.Enquiry, error) {
	return s.Session.ListEnquiries(ctx)
}

func (s *SplitClient) InsertEnquiry(ctx context.Context, record enquiryModel.Enquiry) (enquiryModel.Enquiry, error) {
	return s.Anon.InsertEnquiry(ctx, record)
}

func (s *SplitClient) UpdateEnquiryStatus(ctx context.Context, id string, status enquiryModel.EnquiryStatus) error {
	return s.Session.UpdateEnquiryStatus(ctx, id, status)
}

func (s *SplitClient) DeleteEnquiry(ctx context.Context, id string) error {
	return s.Session.DeleteEnquiry(ctx, id)
}
