package enquiry

// ServiceType identifies one of the fixed service offerings.
type ServiceType string

const (
	ServiceMason          ServiceType = "Mason"
	ServiceCarpenter      ServiceType = "Carpenter"
	ServiceMarble         ServiceType = "Marble"
	ServiceGrill          ServiceType = "Grill"
	ServiceElectrician    ServiceType = "Electrician"
	ServicePlumber        ServiceType = "Plumber"
	ServicePaint          ServiceType = "Paint"
	ServiceModularKitchen ServiceType = "Modular Kitchen"
	ServiceFalseCeiling   ServiceType = "False Ceiling"
	ServiceEvent          ServiceType = "Any Event"
	ServiceLand           ServiceType = "Land"
	ServiceAya            ServiceType = "Aya"
	ServiceACRepair       ServiceType = "AC Repair"
)

func (st ServiceType) String() string {
	return string(st)
}

// EnquiryStatus is the triage state an admin assigns to an enquiry.
type EnquiryStatus string

const (
	StatusNew       EnquiryStatus = "New"
	StatusContacted EnquiryStatus = "Contacted"
	StatusAssigned  EnquiryStatus = "Assigned"
	StatusCompleted EnquiryStatus = "Completed"
)

func (es EnquiryStatus) String() string {
	return string(es)
}

// IsValid reports whether es is one of the known statuses. There is no
// ordering between statuses; any admin may set any value at any time.
func (es EnquiryStatus) IsValid() bool {
	switch es {
	case StatusNew, StatusContacted, StatusAssigned, StatusCompleted:
		return true
	default:
		return false
	}
}

// GetAllStatuses returns every valid enquiry status.
func GetAllStatuses() []EnquiryStatus {
	return []EnquiryStatus{
		StatusNew,
		StatusContacted,
		StatusAssigned,
		StatusCompleted,
	}
}

// LandCondition values for the Land service sub-step.
const (
	LandConditionOld = "Old"
	LandConditionNew = "New"
)

// Category values. General is accepted on input but normalized to New
// before a record reaches the store.
const (
	CategoryRepair  = "Repair"
	CategoryNew     = "New"
	CategoryBuy     = "Buy"
	CategorySell    = "Sell"
	CategoryGeneral = "General"
)
