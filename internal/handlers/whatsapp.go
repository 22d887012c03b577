package handlers

import (
	"log"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/novacare/schedula-backend/internal/services"
	"github.com/novacare/schedula-backend/internal/storage"
)

// WhatsAppHandler handles WhatsApp webhook requests
type WhatsAppHandler struct {
	store         storage.Store
	chatbot       *services.ChatbotService
	twilioService *services.TwilioService

	// Active session per phone number, so a conversation keeps its history
	sessionMu sync.Mutex
	sessions  map[string]string
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(store storage.Store, chatbot *services.ChatbotService) *WhatsAppHandler {
	twilioSvc, err := services.NewTwilioService()
	if err != nil {
		log.Printf("⚠️  Warning: Twilio service not initialized: %v", err)
		// Continue without Twilio for testing
	}

	return &WhatsAppHandler{
		store:         store,
		chatbot:       chatbot,
		twilioService: twilioSvc,
		sessions:      make(map[string]string),
	}
}

// TwilioWebhookPayload represents an incoming WhatsApp message from Twilio
type TwilioWebhookPayload struct {
	MessageSid          string `form:"MessageSid"`
	AccountSid          string `form:"AccountSid"`
	MessagingServiceSid string `form:"MessagingServiceSid"`
	From                string `form:"From"` // whatsapp:+14155551234
	To                  string `form:"To"`
	Body                string `form:"Body"`
	NumMedia            string `form:"NumMedia"`
}

// HandleWebhook processes incoming WhatsApp messages
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload

	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	log.Printf("📱 WhatsApp message from %s: %s", payload.From, payload.Body)

	// Status callbacks arrive on the same endpoint with no body
	if payload.Body != "" && payload.From != "" {
		from := strings.TrimPrefix(payload.From, "whatsapp:")

		response, err := h.processMessage(c, from, payload.Body)
		if err != nil {
			log.Printf("Error processing message: %v", err)
			response = "❌ Sorry, something went wrong. Please try again."
		}

		if h.twilioService != nil && response != "" {
			if err := h.twilioService.SendWhatsAppMessage(from, response); err != nil {
				log.Printf("❌ Failed to send WhatsApp response: %v", err)
			} else {
				log.Printf("✅ Response sent to %s", from)
			}
		} else {
			log.Printf("📤 Response (not sent - Twilio not configured): %s", response)
		}
	}

	return c.SendStatus(fiber.StatusOK)
}

// processMessage resolves the phone number to a user and runs the chat flow
func (h *WhatsAppHandler) processMessage(c *fiber.Ctx, phone, body string) (string, error) {
	user, err := h.store.GetOrCreateUserByPhone(phone)
	if err != nil {
		return "", err
	}

	result, err := h.chatbot.ProcessMessage(c.Context(), h.sessionFor(phone), user.ID, body)
	if err != nil {
		// Stale session IDs happen when the backing store is wiped
		h.forgetSession(phone)
		return "", err
	}

	h.rememberSession(phone, result.SessionID)
	return result.Message, nil
}

func (h *WhatsAppHandler) sessionFor(phone string) string {
	h.sessionMu.Lock()
	defer h.sessionMu.Unlock()
	return h.sessions[phone]
}

func (h *WhatsAppHandler) rememberSession(phone, sessionID string) {
	h.sessionMu.Lock()
	defer h.sessionMu.Unlock()
	h.sessions[phone] = sessionID
}

func (h *WhatsAppHandler) forgetSession(phone string) {
	h.sessionMu.Lock()
	defer h.sessionMu.Unlock()
	delete(h.sessions, phone)
}

// TestWebhookPayload is a JSON stand-in for the Twilio form payload
type TestWebhookPayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// HandleTestWebhook processes test WhatsApp messages (for development)
func (h *WhatsAppHandler) HandleTestWebhook(c *fiber.Ctx) error {
	var payload TestWebhookPayload

	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test payload",
		})
	}

	if payload.From == "" || payload.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "From and message are required",
		})
	}

	log.Printf("🧪 Test webhook received from %s: %s", payload.From, payload.Message)

	response, err := h.processMessage(c, payload.From, payload.Message)
	if err != nil {
		log.Printf("Error processing message: %v", err)
		response = "❌ Sorry, something went wrong. Please try again."
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"response": response,
	})
}
