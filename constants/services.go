package constants

import (
	enquiryModel "somadhan-booking/models/enquiry"
)

// ServiceDefinition maps a service offering to the category options the
// booking flow presents and whether the flow must collect a land condition.
// The table is loaded at process start and never mutated.
type ServiceDefinition struct {
	Type             enquiryModel.ServiceType `json:"type"`
	Options          []string                 `json:"options"`
	RequiresLandStep bool                     `json:"requires_land_step,omitempty"`
}

// Booking flow step names, in the order the form walks them.
const (
	StepService       = "service"
	StepContractType  = "contract_type"
	StepLandCondition = "land_condition"
	StepContact       = "contact"
	StepDone          = "done"
)

var Services = []ServiceDefinition{
	{Type: enquiryModel.ServiceMason, Options: []string{enquiryModel.CategoryRepair, enquiryModel.CategoryNew}},
	{Type: enquiryModel.ServiceCarpenter, Options: []string{enquiryModel.CategoryRepair, enquiryModel.CategoryNew}},
	{Type: enquiryModel.ServiceMarble, Options: []string{enquiryModel.CategoryNew}},
	{Type: enquiryModel.ServiceGrill, Options: []string{enquiryModel.CategoryNew}},
	{Type: enquiryModel.ServiceElectrician, Options: []string{enquiryModel.CategoryRepair, enquiryModel.CategoryNew}},
	{Type: enquiryModel.ServicePlumber, Options: []string{enquiryModel.CategoryRepair, enquiryModel.CategoryNew}},
	{Type: enquiryModel.ServicePaint, Options: []string{enquiryModel.CategoryRepair, enquiryModel.CategoryNew}},
	{Type: enquiryModel.ServiceModularKitchen, Options: []string{enquiryModel.CategoryNew}},
	{Type: enquiryModel.ServiceFalseCeiling, Options: []string{enquiryModel.CategoryNew}},
	{Type: enquiryModel.ServiceEvent, Options: []string{enquiryModel.CategoryNew}},
	{Type: enquiryModel.ServiceLand, Options: []string{enquiryModel.CategoryBuy, enquiryModel.CategorySell}, RequiresLandStep: true},
	{Type: enquiryModel.ServiceAya, Options: []string{enquiryModel.CategoryNew}},
	{Type: enquiryModel.ServiceACRepair, Options: []string{enquiryModel.CategoryRepair}},
}

// FindService looks up the definition for a service type.
func FindService(t enquiryModel.ServiceType) (ServiceDefinition, bool) {
	for _, s := range Services {
		if s.Type == t {
			return s, true
		}
	}
	return ServiceDefinition{}, false
}

// AllowsCategory reports whether category is a valid option for the service.
func (sd ServiceDefinition) AllowsCategory(category string) bool {
	for _, opt := range sd.Options {
		if opt == category {
			return true
		}
	}
	return false
}

// Steps returns the ordered step sequence the booking form walks for this
// service. Services with a single category option and no land step skip the
// contract-type step; the land-condition step always precedes contact.
func (sd ServiceDefinition) Steps() []string {
	steps := []string{StepService}
	if len(sd.Options) > 1 || sd.RequiresLandStep {
		steps = append(steps, StepContractType)
	}
	if sd.RequiresLandStep {
		steps = append(steps, StepLandCondition)
	}
	return append(steps, StepContact, StepDone)
}
