package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/novacare/schedula-backend/internal/handlers"
	"github.com/novacare/schedula-backend/internal/middleware"
	"github.com/novacare/schedula-backend/internal/services"
	"github.com/novacare/schedula-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, chatbot *services.ChatbotService) {
	healthHandler := handlers.NewHealthHandler("1.0.0")
	chatHandler := handlers.NewChatHandler(chatbot)
	appointmentHandler := handlers.NewAppointmentHandler(store)
	whatsappHandler := handlers.NewWhatsAppHandler(store, chatbot)

	// Root and health endpoints
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)

	// API routes
	api := app.Group("/api")

	api.Post("/chat", chatHandler.HandleChat)

	appointments := api.Group("/appointments")
	appointments.Post("/", appointmentHandler.CreateAppointment)
	appointments.Get("/user/:userId", appointmentHandler.GetUserAppointments)
	appointments.Get("/:id", appointmentHandler.GetAppointment)
	appointments.Patch("/:id/status", appointmentHandler.UpdateAppointmentStatus)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	// WhatsApp webhook - ENVIRONMENT-AWARE VALIDATION
	if os.Getenv("ENVIRONMENT") == "development" || os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		webhooks.Post("/whatsapp", whatsappHandler.HandleWebhook)
		if os.Getenv("ENVIRONMENT") == "development" {
			println("⚠️  WhatsApp webhook validation DISABLED for development")
		}
	} else {
		webhooks.Post("/whatsapp", middleware.ValidateTwilioSignature(), whatsappHandler.HandleWebhook)
	}

	// ========== TEST ROUTES (Development Only) ==========
	app.Post("/test/whatsapp", whatsappHandler.HandleTestWebhook)
}
