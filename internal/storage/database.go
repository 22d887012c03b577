package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novacare/schedula-backend/internal/models"
)

// DatabaseStore implements Store backed by PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a new database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Appointment operations

func (d *DatabaseStore) CreateAppointment(userID uint, draft *models.AppointmentDraft) (*models.Appointment, error) {
	appointment := &models.Appointment{
		UserID:          userID,
		Title:           draft.Title,
		Description:     draft.Description,
		AppointmentDate: draft.AppointmentDate,
		DurationMinutes: draft.DurationMinutes,
		AppointmentType: draft.AppointmentType,
		Location:        draft.Location,
		Notes:           draft.Notes,
		Status:          models.AppointmentStatusPending,
	}

	if err := d.db.Create(appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

func (d *DatabaseStore) GetAppointment(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := d.db.First(&appointment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("appointment not found")
		}
		return nil, err
	}
	return &appointment, nil
}

func (d *DatabaseStore) GetAppointmentsByUser(userID uint, limit int) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	query := d.db.Where("user_id = ?", userID).Order("appointment_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (d *DatabaseStore) UpdateAppointmentStatus(id uint, status string) error {
	result := d.db.Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}

func (d *DatabaseStore) GetUpcomingAppointments(within time.Duration) ([]*models.Appointment, error) {
	now := time.Now()
	var appointments []*models.Appointment
	err := d.db.
		Where("appointment_date > ? AND appointment_date < ?", now, now.Add(within)).
		Where("status IN ?", []string{models.AppointmentStatusPending, models.AppointmentStatusConfirmed}).
		Where("reminder_sent = ?", false).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (d *DatabaseStore) MarkReminderSent(id uint) error {
	return d.db.Model(&models.Appointment{}).Where("id = ?", id).Update("reminder_sent", true).Error
}

// Chat session operations

func (d *DatabaseStore) CreateChatSession(userID uint) (*models.ChatSession, error) {
	session := &models.ChatSession{
		SessionID: uuid.New().String(),
		UserID:    userID,
	}
	if err := d.db.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	return session, nil
}

func (d *DatabaseStore) GetChatSession(sessionID string) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := d.db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, err
	}
	return &session, nil
}

func (d *DatabaseStore) LinkSessionAppointment(sessionID string, appointmentID uint) error {
	result := d.db.Model(&models.ChatSession{}).
		Where("session_id = ?", sessionID).
		Update("appointment_id", appointmentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

// Chat message operations

func (d *DatabaseStore) AppendMessage(sessionID, role, content, metadata string) (*models.ChatMessage, error) {
	message := &models.ChatMessage{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Metadata:  metadata,
	}
	if err := d.db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return message, nil
}

func (d *DatabaseStore) GetRecentMessages(sessionID string, limit int) ([]*models.ChatMessage, error) {
	// Take the newest N, then flip back to chronological order
	var newest []*models.ChatMessage
	query := d.db.Where("session_id = ?", sessionID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&newest).Error; err != nil {
		return nil, err
	}

	messages := make([]*models.ChatMessage, len(newest))
	for i, msg := range newest {
		messages[len(newest)-1-i] = msg
	}
	return messages, nil
}

// User operations

func (d *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if err := d.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (d *DatabaseStore) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := d.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (d *DatabaseStore) GetOrCreateUserByPhone(phone string) (*models.User, error) {
	var user models.User
	err := d.db.Where("phone = ?", phone).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user = models.User{Phone: phone}
	if err := d.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}
