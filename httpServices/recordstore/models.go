package recordstore

import (
	enquiryModel "somadhan-booking/models/enquiry"
)

// enquiryRow is the remote shape of an enquiry. The hosted store uses
// snake_case column names; the adapter owns the mapping to the local entity.
type enquiryRow struct {
	ID            string  `json:"id,omitempty"`
	Service       string  `json:"service"`
	Category      string  `json:"category"`
	LandCondition *string `json:"land_condition,omitempty"`
	Phone         string  `json:"phone"`
	Name          *string `json:"name,omitempty"`
	Address       *string `json:"address,omitempty"`
	PreferredDate *string `json:"preferred_date,omitempty"`
	PreferredTime *string `json:"preferred_time,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
	Status        string  `json:"status"`
}

func rowFromModel(e enquiryModel.Enquiry) enquiryRow {
	return enquiryRow{
		ID:            e.ID,
		Service:       string(e.Service),
		Category:      e.Category,
		LandCondition: e.LandCondition,
		Phone:         e.Phone,
		Name:          e.Name,
		Address:       e.Address,
		PreferredDate: e.PreferredDate,
		PreferredTime: e.PreferredTime,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
		Status:        string(e.Status),
	}
}

func (r enquiryRow) toModel() enquiryModel.Enquiry {
	return enquiryModel.Enquiry{
		ID:            r.ID,
		Service:       enquiryModel.ServiceType(r.Service),
		Category:      r.Category,
		LandCondition: r.LandCondition,
		Phone:         r.Phone,
		Name:          r.Name,
		Address:       r.Address,
		PreferredDate: r.PreferredDate,
		PreferredTime: r.PreferredTime,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		Status:        enquiryModel.EnquiryStatus(r.Status),
	}
}

// Session is the result of a password sign-in against the store.
type Session struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
}

// ChangeEvent is one observed mutation on a collection. Consumers refetch
// the whole collection on any event; only the kind matters to them.
type ChangeEvent struct {
	Kind   string `json:"kind"` // INSERT, UPDATE or DELETE
	Cursor string `json:"cursor"`
}

// SessionStore persists the admin session token across restarts. The anon
// client never touches one.
type SessionStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
