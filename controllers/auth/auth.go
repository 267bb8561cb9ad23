package auth

import (
	"github.com/gofiber/fiber/v2"

	"somadhan-booking/httpServices/recordstore"
	"somadhan-booking/logger"
	"somadhan-booking/types"
	enquiryTypes "somadhan-booking/types/enquiry"
	"somadhan-booking/utils"
)

// AuthController signs admins in against the remote store and issues the
// session tokens the dashboard routes require.
type AuthController struct {
	store *recordstore.Client // session client; nil when unconfigured
}

func NewAuthController(store *recordstore.Client) *AuthController {
	return &AuthController{store: store}
}

// Login verifies credentials with the store, then requires the identity to
// appear in the admins collection before granting dashboard access.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req enquiryTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	if h.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.ErrorResponse{
			Message: "System not connected to command center",
			Status:  fiber.StatusServiceUnavailable,
		})
	}

	session, err := h.store.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		logger.Error("Admin sign-in failed", err)
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Access denied: invalid credentials",
			Status:  fiber.StatusUnauthorized,
		})
	}

	isAdmin, err := h.store.IsAdmin(c.UserContext(), session.UserID)
	if err != nil {
		logger.Error("Admin lookup failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to verify admin access",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if !isAdmin {
		// Not in the authorized set: terminate the store session.
		if err := h.store.SignOut(c.UserContext()); err != nil {
			logger.Error("Forced sign-out failed", err)
		}
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "Access denied: not authorized for admin panel",
			Status:  fiber.StatusForbidden,
		})
	}

	token, err := utils.GenerateToken(session.UserID, session.Email)
	if err != nil {
		logger.Error("Failed to issue session token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to issue session token",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Admin signed in: " + session.Email)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Token:   token,
		Data: fiber.Map{
			"user_id": session.UserID,
			"email":   session.Email,
		},
	})
}

// LogOut terminates the store session and clears the persisted token.
func (h *AuthController) LogOut(c *fiber.Ctx) error {
	if h.store != nil {
		if err := h.store.SignOut(c.UserContext()); err != nil {
			logger.Error("Store sign-out failed", err)
		}
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Logged out",
	})
}
