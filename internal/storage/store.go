package storage

import (
	"time"

	"github.com/novacare/schedula-backend/internal/models"
)

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// Appointment operations
	CreateAppointment(userID uint, draft *models.AppointmentDraft) (*models.Appointment, error)
	GetAppointment(id uint) (*models.Appointment, error)
	GetAppointmentsByUser(userID uint, limit int) ([]*models.Appointment, error)
	UpdateAppointmentStatus(id uint, status string) error
	GetUpcomingAppointments(within time.Duration) ([]*models.Appointment, error)
	MarkReminderSent(id uint) error

	// Chat session operations
	CreateChatSession(userID uint) (*models.ChatSession, error)
	GetChatSession(sessionID string) (*models.ChatSession, error)
	LinkSessionAppointment(sessionID string, appointmentID uint) error

	// Chat message operations
	AppendMessage(sessionID, role, content, metadata string) (*models.ChatMessage, error)
	GetRecentMessages(sessionID string, limit int) ([]*models.ChatMessage, error)

	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	GetOrCreateUserByPhone(phone string) (*models.User, error)
}
