package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/novacare/schedula-backend/internal/models"
	"github.com/novacare/schedula-backend/internal/storage"
)

// AppointmentHandler handles appointment-related requests
type AppointmentHandler struct {
	store storage.Store
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(store storage.Store) *AppointmentHandler {
	return &AppointmentHandler{store: store}
}

// CreateAppointmentRequest is the payload for creating an appointment directly
type CreateAppointmentRequest struct {
	UserID          uint      `json:"user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	AppointmentDate time.Time `json:"appointment_date"`
	DurationMinutes int       `json:"duration_minutes"`
	AppointmentType string    `json:"appointment_type"`
	Location        *string   `json:"location"`
	Notes           *string   `json:"notes"`
}

// CreateAppointment creates an appointment without going through the chat flow
func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	var req CreateAppointmentRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User ID is required",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if req.AppointmentDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Appointment date is required",
		})
	}

	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 60
	}
	if req.AppointmentType == "" {
		req.AppointmentType = models.AppointmentTypeGeneral
	}

	draft := &models.AppointmentDraft{
		Title:           req.Title,
		Description:     req.Description,
		AppointmentDate: req.AppointmentDate,
		DurationMinutes: req.DurationMinutes,
		AppointmentType: req.AppointmentType,
		Location:        req.Location,
		Notes:           req.Notes,
	}

	appointment, err := h.store.CreateAppointment(req.UserID, draft)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create appointment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Appointment created successfully",
		"appointment": appointment,
	})
}

// GetUserAppointments retrieves all appointments for a user
func (h *AppointmentHandler) GetUserAppointments(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil || userID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid user ID is required",
		})
	}

	limit := c.QueryInt("limit", 50)

	appointments, err := h.store.GetAppointmentsByUser(uint(userID), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve appointments",
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetAppointment retrieves a single appointment by ID
func (h *AppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid appointment ID is required",
		})
	}

	appointment, err := h.store.GetAppointment(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	return c.JSON(appointment)
}

// UpdateStatusRequest is the payload for a status change
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

var validStatuses = map[string]bool{
	models.AppointmentStatusPending:   true,
	models.AppointmentStatusConfirmed: true,
	models.AppointmentStatusCancelled: true,
	models.AppointmentStatusCompleted: true,
}

// UpdateAppointmentStatus changes an appointment's status
func (h *AppointmentHandler) UpdateAppointmentStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Valid appointment ID is required",
		})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if !validStatuses[req.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be one of: pending, confirmed, cancelled, completed",
		})
	}

	if err := h.store.UpdateAppointmentStatus(uint(id), req.Status); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Appointment status updated successfully",
		"status":  req.Status,
	})
}
