package models

import (
	"time"

	"gorm.io/gorm"
)

// Appointment represents a scheduled appointment created from a conversation
type Appointment struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"index"`
	Title           string    `json:"title"`
	Description     string    `json:"description" gorm:"type:text"`
	AppointmentDate time.Time `json:"appointment_date"`
	DurationMinutes int       `json:"duration_minutes" gorm:"default:60"`
	AppointmentType string    `json:"appointment_type" gorm:"default:general"`
	Location        *string   `json:"location"`
	Notes           *string   `json:"notes"`
	Status          string    `json:"status" gorm:"default:pending"`
	ReminderSent    bool      `json:"-" gorm:"default:false"`
}

// AppointmentDraft is the output of the extraction pipeline. It has no
// identity until the store persists it as an Appointment.
type AppointmentDraft struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	AppointmentType string    `json:"appointment_type"`
	DurationMinutes int       `json:"duration_minutes"`
	Location        *string   `json:"location"`
	Notes           *string   `json:"notes"`
	AppointmentDate time.Time `json:"appointment_date"`
}

// Appointment type constants
const (
	AppointmentTypeGeneral      = "general"
	AppointmentTypeMedical      = "medical"
	AppointmentTypeConsultation = "consultation"
	AppointmentTypeFollowUp     = "follow-up"
)

// Appointment status constants
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"
)
