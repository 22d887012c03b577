package handlers

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/novacare/schedula-backend/database"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	Version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		Version: version,
	}
}

// Root returns a short service banner
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "Schedula Backend",
		"version": h.Version,
		"status":  "running",
	})
}

// Check returns the health status of the service and its dependencies
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "not configured"
	if database.DB != nil {
		dbStatus = "connected"
		if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "unreachable"
		}
	}

	llmStatus := "not configured"
	if os.Getenv("OPENAI_API_KEY") != "" {
		llmStatus = "configured"
	}

	twilioStatus := "not configured"
	if os.Getenv("TWILIO_ACCOUNT_SID") != "" && os.Getenv("TWILIO_AUTH_TOKEN") != "" {
		twilioStatus = "configured"
	}

	return c.JSON(fiber.Map{
		"status":   "OK",
		"service":  "Schedula Backend",
		"version":  h.Version,
		"database": dbStatus,
		"llm":      llmStatus,
		"twilio":   twilioStatus,
	})
}
