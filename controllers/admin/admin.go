package admin

import (
	"bufio"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"somadhan-booking/constants"
	"somadhan-booking/httpServices/recordstore"
	"somadhan-booking/logger"
	enquiryService "somadhan-booking/services/enquiry"
	"somadhan-booking/services/intake"
	"somadhan-booking/types"
	enquiryTypes "somadhan-booking/types/enquiry"
)

// AdminController serves the dashboard: filtered views over the enquiry
// list, status transitions, deletes and the change-event stream.
type AdminController struct {
	Manager *enquiryService.Manager
	Store   *recordstore.Client // session client; nil when unconfigured
	Parser  *intake.Parser
}

func NewAdminController(manager *enquiryService.Manager, store *recordstore.Client, parser *intake.Parser) *AdminController {
	return &AdminController{
		Manager: manager,
		Store:   store,
		Parser:  parser,
	}
}

// Index lists enquiries, optionally filtered by ?status=. The manager is
// refreshed from the store first so the view reflects server truth; when
// that fails the optimistic snapshot is served instead.
func (ac *AdminController) Index(c *fiber.Ctx) error {
	if err := ac.Manager.Refresh(c.UserContext()); err != nil {
		logger.Warning("Serving cached enquiries: " + err.Error())
	}

	records := ac.Manager.Filter(c.Query("status", "ALL"))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Enquiries",
		Data:    records,
	})
}

// UpdateStatus applies a status transition. The update is optimistic; a
// refetch afterwards reconciles with concurrent admin sessions.
func (ac *AdminController) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req enquiryTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
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

	syncResult := ac.Manager.UpdateStatus(c.UserContext(), id, req.Status)
	if err := <-syncResult; err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to update status",
		})
	}

	if err := ac.Manager.Refresh(c.UserContext()); err != nil {
		logger.Warning("Refetch after status update failed: " + err.Error())
	}

	logger.Success(fmt.Sprintf("Enquiry %s moved to %s", id, req.Status))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Status updated",
	})
}

// Delete removes an enquiry after explicit confirmation.
func (ac *AdminController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	var req enquiryTypes.DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
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

	syncResult := ac.Manager.Delete(c.UserContext(), id)
	if err := <-syncResult; err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to delete enquiry",
		})
	}

	if err := ac.Manager.Refresh(c.UserContext()); err != nil {
		logger.Warning("Refetch after delete failed: " + err.Error())
	}

	logger.Success("Enquiry deleted: " + id)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Enquiry deleted",
	})
}

// Stream bridges the store's change feed to the dashboard over SSE. Every
// observed insert/update/delete on the enquiries collection emits one
// "refetch" event; clients reload the full list rather than patching.
func (ac *AdminController) Stream(c *fiber.Ctx) error {
	if ac.Store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.ApiResponse{
			Status:  fiber.StatusServiceUnavailable,
			Message: "Record store is not configured",
		})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	ctx, cancel := context.WithCancel(context.Background())
	events := ac.Store.SubscribeChanges(ctx, constants.CollectionEnquiries)

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for event := range events {
			if _, err := fmt.Fprintf(w, "event: refetch\ndata: %s\n\n", event.Kind); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
	return nil
}

// Intake parses a pasted free-text message into a draft and saves it
// through the normal lifecycle.
func (ac *AdminController) Intake(c *fiber.Ctx) error {
	if ac.Parser == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.ApiResponse{
			Status:  fiber.StatusServiceUnavailable,
			Message: "Intake parsing is not configured",
		})
	}

	var req enquiryTypes.IntakeRequest
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

	draft, err := ac.Parser.Parse(c.UserContext(), req.Text)
	if err != nil {
		logger.Error("Intake parsing failed", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to parse message",
		})
	}

	result, err := ac.Manager.Save(c.UserContext(), draft)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Enquiry created from message",
		Data:    result,
	})
}
