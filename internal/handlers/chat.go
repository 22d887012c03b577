package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/novacare/schedula-backend/internal/services"
)

// ChatHandler handles conversational chat requests
type ChatHandler struct {
	chatbot *services.ChatbotService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatbot *services.ChatbotService) *ChatHandler {
	return &ChatHandler{chatbot: chatbot}
}

// ChatRequest is the payload for a single chat turn
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	UserID    uint   `json:"user_id"`
}

// HandleChat processes one user message and returns the assistant reply
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req ChatRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}
	if req.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User ID is required",
		})
	}

	result, err := h.chatbot.ProcessMessage(c.Context(), req.SessionID, req.UserID, req.Message)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		log.Printf("❌ Chat processing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process message",
		})
	}

	return c.JSON(fiber.Map{
		"message":    result.Message,
		"metadata":   result.Metadata,
		"session_id": result.SessionID,
	})
}
