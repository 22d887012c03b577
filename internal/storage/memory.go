package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/novacare/schedula-backend/internal/models"
)

// MemoryStore holds all data in memory for tests and local development
type MemoryStore struct {
	appointments map[uint]*models.Appointment
	sessions     map[string]*models.ChatSession
	messages     map[string][]*models.ChatMessage // keyed by session ID, insertion order
	users        map[uint]*models.User

	// Mutexes for thread safety
	appointmentMu sync.RWMutex
	sessionMu     sync.RWMutex
	messageMu     sync.RWMutex
	userMu        sync.RWMutex

	// Counters for ID generation
	appointmentCounter uint
	sessionCounter     uint
	messageCounter     uint
	userCounter        uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		appointments: make(map[uint]*models.Appointment),
		sessions:     make(map[string]*models.ChatSession),
		messages:     make(map[string][]*models.ChatMessage),
		users:        make(map[uint]*models.User),
	}
}

// Appointment operations

func (m *MemoryStore) CreateAppointment(userID uint, draft *models.AppointmentDraft) (*models.Appointment, error) {
	m.appointmentMu.Lock()
	defer m.appointmentMu.Unlock()

	m.appointmentCounter++
	now := time.Now()

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
	appointment.ID = m.appointmentCounter
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	m.appointments[appointment.ID] = appointment
	return appointment, nil
}

func (m *MemoryStore) GetAppointment(id uint) (*models.Appointment, error) {
	m.appointmentMu.RLock()
	defer m.appointmentMu.RUnlock()

	appointment, exists := m.appointments[id]
	if !exists {
		return nil, fmt.Errorf("appointment not found")
	}
	return appointment, nil
}

func (m *MemoryStore) GetAppointmentsByUser(userID uint, limit int) ([]*models.Appointment, error) {
	m.appointmentMu.RLock()
	defer m.appointmentMu.RUnlock()

	var results []*models.Appointment
	for _, appointment := range m.appointments {
		if appointment.UserID == userID {
			results = append(results, appointment)
		}
	}

	// Newest appointment date first
	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			if results[j].AppointmentDate.After(results[i].AppointmentDate) {
				results[i], results[j] = results[j], results[i]
			}
		}
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (m *MemoryStore) UpdateAppointmentStatus(id uint, status string) error {
	m.appointmentMu.Lock()
	defer m.appointmentMu.Unlock()

	appointment, exists := m.appointments[id]
	if !exists {
		return fmt.Errorf("appointment not found")
	}
	appointment.Status = status
	appointment.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) GetUpcomingAppointments(within time.Duration) ([]*models.Appointment, error) {
	m.appointmentMu.RLock()
	defer m.appointmentMu.RUnlock()

	now := time.Now()
	cutoff := now.Add(within)

	var results []*models.Appointment
	for _, appointment := range m.appointments {
		if appointment.ReminderSent {
			continue
		}
		if appointment.Status != models.AppointmentStatusPending && appointment.Status != models.AppointmentStatusConfirmed {
			continue
		}
		if appointment.AppointmentDate.After(now) && appointment.AppointmentDate.Before(cutoff) {
			results = append(results, appointment)
		}
	}
	return results, nil
}

func (m *MemoryStore) MarkReminderSent(id uint) error {
	m.appointmentMu.Lock()
	defer m.appointmentMu.Unlock()

	appointment, exists := m.appointments[id]
	if !exists {
		return fmt.Errorf("appointment not found")
	}
	appointment.ReminderSent = true
	return nil
}

// Chat session operations

func (m *MemoryStore) CreateChatSession(userID uint) (*models.ChatSession, error) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	m.sessionCounter++
	now := time.Now()

	session := &models.ChatSession{
		SessionID: uuid.New().String(),
		UserID:    userID,
	}
	session.ID = m.sessionCounter
	session.CreatedAt = now
	session.UpdatedAt = now

	m.sessions[session.SessionID] = session
	return session, nil
}

func (m *MemoryStore) GetChatSession(sessionID string) (*models.ChatSession, error) {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("session not found")
	}
	return session, nil
}

func (m *MemoryStore) LinkSessionAppointment(sessionID string, appointmentID uint) error {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return fmt.Errorf("session not found")
	}
	session.AppointmentID = &appointmentID
	session.UpdatedAt = time.Now()
	return nil
}

// Chat message operations

func (m *MemoryStore) AppendMessage(sessionID, role, content, metadata string) (*models.ChatMessage, error) {
	if _, err := m.GetChatSession(sessionID); err != nil {
		return nil, err
	}

	m.messageMu.Lock()
	defer m.messageMu.Unlock()

	m.messageCounter++
	now := time.Now()

	message := &models.ChatMessage{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Metadata:  metadata,
	}
	message.ID = m.messageCounter
	message.CreatedAt = now
	message.UpdatedAt = now

	m.messages[sessionID] = append(m.messages[sessionID], message)
	return message, nil
}

func (m *MemoryStore) GetRecentMessages(sessionID string, limit int) ([]*models.ChatMessage, error) {
	m.messageMu.RLock()
	defer m.messageMu.RUnlock()

	history := m.messages[sessionID]
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	// Copy so callers never observe later appends
	results := make([]*models.ChatMessage, len(history))
	copy(results, history)
	return results, nil
}

// User operations

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	m.userCounter++
	now := time.Now()
	user.ID = m.userCounter
	user.CreatedAt = now
	user.UpdatedAt = now

	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) GetUser(id uint) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

func (m *MemoryStore) GetOrCreateUserByPhone(phone string) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	for _, user := range m.users {
		if user.Phone == phone {
			return user, nil
		}
	}

	m.userCounter++
	now := time.Now()
	user := &models.User{Phone: phone}
	user.ID = m.userCounter
	user.CreatedAt = now
	user.UpdatedAt = now

	m.users[user.ID] = user
	return user, nil
}
