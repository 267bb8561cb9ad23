package server

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"somadhan-booking/types"
)

// HealthController reports process health: the local store must answer,
// the remote store is allowed to be unconfigured.
type HealthController struct {
	db              *gorm.DB
	storeConfigured bool
}

func NewHealthController(db *gorm.DB, storeConfigured bool) *HealthController {
	return &HealthController{db: db, storeConfigured: storeConfigured}
}

func (hc *HealthController) Health(c *fiber.Ctx) error {
	if err := hc.db.Exec("SELECT 1").Error; err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.ApiResponse{
			Status:  fiber.StatusServiceUnavailable,
			Message: "Local store unavailable",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data: fiber.Map{
			"store_configured": hc.storeConfigured,
		},
	})
}
