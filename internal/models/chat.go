package models

import "gorm.io/gorm"

// ChatSession groups the messages of one conversation
type ChatSession struct {
	gorm.Model
	SessionID     string `json:"session_id" gorm:"uniqueIndex"`
	UserID        uint   `json:"user_id" gorm:"index"`
	AppointmentID *uint  `json:"appointment_id"` // set once the conversation produced an appointment
}

// ChatMessage is a single turn in a conversation, insertion order significant
type ChatMessage struct {
	gorm.Model
	SessionID string `json:"session_id" gorm:"index"`
	Role      string `json:"role"` // "user" or "assistant"
	Content   string `json:"content" gorm:"type:text"`
	Metadata  string `json:"metadata" gorm:"type:text"` // JSON string
}

// Message role constants
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HistoryLimit is the maximum number of stored turns forwarded to the LLM
const HistoryLimit = 20
