package enquiry

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"somadhan-booking/constants"
	"somadhan-booking/localcache"
	"somadhan-booking/logger"
	"somadhan-booking/metrics"
	enquiryService "somadhan-booking/services/enquiry"
	"somadhan-booking/services/notify"
	"somadhan-booking/types"
	enquiryTypes "somadhan-booking/types/enquiry"
)

// EnquiryController handles the public booking flow.
type EnquiryController struct {
	Manager *enquiryService.Manager
	Relay   *notify.Relay
	Cache   *localcache.Cache
}

func NewEnquiryController(manager *enquiryService.Manager, relay *notify.Relay, cache *localcache.Cache) *EnquiryController {
	return &EnquiryController{
		Manager: manager,
		Relay:   relay,
		Cache:   cache,
	}
}

// ListServices returns the static service-definition table together with
// the ordered step sequence each service walks in the booking form.
func (ec *EnquiryController) ListServices(c *fiber.Ctx) error {
	definitions := make([]fiber.Map, 0, len(constants.Services))
	for _, sd := range constants.Services {
		definitions = append(definitions, fiber.Map{
			"type":               sd.Type,
			"options":            sd.Options,
			"requires_land_step": sd.RequiresLandStep,
			"steps":              sd.Steps(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Service definitions",
		Data:    definitions,
	})
}

// Store accepts a draft enquiry from the booking form.
func (ec *EnquiryController) Store(c *fiber.Ctx) error {
	var draft enquiryTypes.EnquiryDraft
	if err := c.BodyParser(&draft); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	result, err := ec.Manager.Save(c.UserContext(), draft)
	if err != nil {
		if errors.Is(err, enquiryService.ErrStoreUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
				Status:  fiber.StatusBadGateway,
				Message: "Submit failed. Please try again.",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	metrics.CountEnquiryCreated(result.Synced)
	ec.Relay.Send(result.Enquiry)
	logger.Success(fmt.Sprintf("Enquiry created with ID: %s (synced=%t)", result.Enquiry.ID, result.Synced))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Enquiry created successfully",
		Data: fiber.Map{
			"enquiry":      result.Enquiry,
			"synced":       result.Synced,
			"whatsapp_url": ec.Relay.DeepLink(result.Enquiry),
		},
	})
}

// GetPrefs returns the persisted display preferences.
func (ec *EnquiryController) GetPrefs(c *fiber.Ctx) error {
	language, err := ec.Cache.GetString(constants.KeyLanguage)
	if err != nil {
		logger.Error("Failed to read language preference", err)
	}
	theme, err := ec.Cache.GetString(constants.KeyTheme)
	if err != nil {
		logger.Error("Failed to read theme preference", err)
	}
	if language == "" {
		language = "en"
	}
	if theme == "" {
		theme = "dark"
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Preferences",
		Data:    fiber.Map{"language": language, "theme": theme},
	})
}

// UpdatePrefs stores the display preferences.
func (ec *EnquiryController) UpdatePrefs(c *fiber.Ctx) error {
	var req enquiryTypes.PrefsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if req.Language != "" {
		if err := ec.Cache.SetString(constants.KeyLanguage, req.Language); err != nil {
			logger.Error("Failed to store language preference", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to store preferences",
			})
		}
	}
	if req.Theme != "" {
		if err := ec.Cache.SetString(constants.KeyTheme, req.Theme); err != nil {
			logger.Error("Failed to store theme preference", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to store preferences",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Preferences updated",
	})
}
