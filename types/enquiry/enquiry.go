package enquiry

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"somadhan-booking/constants"
	enquiryModel "somadhan-booking/models/enquiry"
	"somadhan-booking/utils"
)

// EnquiryDraft is the public submission payload: an Enquiry lacking
// id, createdAt and status.
type EnquiryDraft struct {
	Service       enquiryModel.ServiceType `json:"service" validate:"required"`
	Category      string                   `json:"category" validate:"required"`
	LandCondition string                   `json:"land_condition" validate:"omitempty,oneof=Old New"`
	Phone         string                   `json:"phone" validate:"required,min=10"`
	Name          string                   `json:"name" validate:"omitempty,max=255"`
	Address       string                   `json:"address" validate:"omitempty,max=255"`
	PreferredDate string                   `json:"preferred_date" validate:"omitempty"`
	PreferredTime string                   `json:"preferred_time" validate:"omitempty"`
	Notes         string                   `json:"notes" validate:"omitempty"`
}

// Normalize strips non-digits from the phone and trims every free-text
// field in place. It runs before Validate so the rules see canonical values.
func (d *EnquiryDraft) Normalize() {
	d.Phone = utils.NormalizePhone(d.Phone)
	d.Category = strings.TrimSpace(d.Category)
	d.LandCondition = strings.TrimSpace(d.LandCondition)
	d.Name = strings.TrimSpace(d.Name)
	d.Address = strings.TrimSpace(d.Address)
	d.PreferredDate = strings.TrimSpace(d.PreferredDate)
	d.PreferredTime = strings.TrimSpace(d.PreferredTime)
	d.Notes = strings.TrimSpace(d.Notes)
}

// Validate checks the draft against the service-definition table.
func (d EnquiryDraft) Validate() error {
	def, ok := constants.FindService(d.Service)
	if !ok {
		return fmt.Errorf("unknown service %q", d.Service)
	}
	if d.Category != "" && d.Category != enquiryModel.CategoryGeneral && !def.AllowsCategory(d.Category) {
		return fmt.Errorf("category %q is not offered for service %q", d.Category, d.Service)
	}
	if def.RequiresLandStep {
		if d.LandCondition != enquiryModel.LandConditionOld && d.LandCondition != enquiryModel.LandConditionNew {
			return fmt.Errorf("land condition must be %q or %q for service %q",
				enquiryModel.LandConditionOld, enquiryModel.LandConditionNew, d.Service)
		}
	} else if d.LandCondition != "" {
		return fmt.Errorf("land condition is not applicable to service %q", d.Service)
	}
	if len(d.Phone) < 10 {
		return fmt.Errorf("phone must contain at least 10 digits")
	}
	if d.Service == enquiryModel.ServiceEvent && d.Notes == "" {
		return fmt.Errorf("a brief description is required for %q", enquiryModel.ServiceEvent)
	}
	if d.PreferredDate != "" {
		if err := validatePreferredDate(d.PreferredDate); err != nil {
			return err
		}
	}
	if d.PreferredTime != "" {
		if err := validatePreferredTime(d.PreferredTime); err != nil {
			return err
		}
	}
	return nil
}

// NormalizedCategory maps anything outside the four storable categories
// (notably General or an empty value) to New.
func (d EnquiryDraft) NormalizedCategory() string {
	switch d.Category {
	case enquiryModel.CategoryRepair, enquiryModel.CategoryNew, enquiryModel.CategoryBuy, enquiryModel.CategorySell:
		return d.Category
	default:
		return enquiryModel.CategoryNew
	}
}

// validatePreferredDate enforces the minimum-date floor: no past dates.
func validatePreferredDate(value string) error {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return fmt.Errorf("preferred date must be YYYY-MM-DD")
	}
	if parsed.Before(now.BeginningOfDay()) {
		return fmt.Errorf("preferred date cannot be in the past")
	}
	return nil
}

// validatePreferredTime accepts an hour of 1-12 followed by AM or PM,
// e.g. "9 AM" or "12 PM".
func validatePreferredTime(value string) error {
	fields := strings.Fields(strings.ToUpper(value))
	if len(fields) != 2 || (fields[1] != "AM" && fields[1] != "PM") {
		return fmt.Errorf("preferred time must be like '9 AM' or '3 PM'")
	}
	var hour int
	if _, err := fmt.Sscanf(fields[0], "%d", &hour); err != nil || hour < 1 || hour > 12 {
		return fmt.Errorf("preferred time hour must be between 1 and 12")
	}
	return nil
}

// UpdateStatusRequest changes the triage status of one enquiry.
type UpdateStatusRequest struct {
	Status enquiryModel.EnquiryStatus `json:"status" validate:"required"`
}

func (r UpdateStatusRequest) Validate() error {
	if !r.Status.IsValid() {
		return fmt.Errorf("invalid status %q", r.Status)
	}
	return nil
}

// DeleteRequest carries the explicit confirmation the dashboard collects
// before destroying a record.
type DeleteRequest struct {
	Confirm bool `json:"confirm"`
}

func (r DeleteRequest) Validate() error {
	if !r.Confirm {
		return fmt.Errorf("deletion requires confirmation")
	}
	return nil
}

// LoginRequest authenticates an admin against the remote store.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// IntakeRequest is a pasted free-text message to be parsed into a draft.
type IntakeRequest struct {
	Text string `json:"text" validate:"required"`
}

func (r IntakeRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

// PrefsRequest updates the persisted display preferences.
type PrefsRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=en bn"`
	Theme    string `json:"theme" validate:"omitempty,oneof=dark light"`
}

func (r PrefsRequest) Validate() error {
	if r.Language != "" && !contains(constants.Languages, r.Language) {
		return fmt.Errorf("language must be one of %v", constants.Languages)
	}
	if r.Theme != "" && !contains(constants.Themes, r.Theme) {
		return fmt.Errorf("theme must be one of %v", constants.Themes)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
