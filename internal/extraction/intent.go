package extraction

import (
	"strings"

	"github.com/novacare/schedula-backend/internal/models"
)

// Classification is the intent classifier's verdict for one turn
type Classification struct {
	ShouldCreate    bool
	AppointmentType string
	Title           string
	DurationMinutes int
}

// schedulingKeywords gate the classifier: without one of these in the user
// text no appointment is ever created.
var schedulingKeywords = []string{
	"schedule", "book", "appointment", "meeting", "consultation",
	"checkup", "visit", "session", "reservation", "make an appointment",
}

// confirmationKeywords in the assistant reply indicate the bot committed to
// scheduling.
var confirmationKeywords = []string{
	"scheduled", "booked", "confirmed", "appointment created",
	"i've scheduled", "your appointment is", "appointment has been",
	"i'll schedule", "let me schedule", "i can schedule",
}

// detailKeywords indicate the user supplied concrete scheduling details.
// These are plain substring checks, so "am" also matches inside longer words;
// the original service behaves the same way.
var detailKeywords = []string{
	"tomorrow", "today", "next week", "monday", "tuesday", "wednesday",
	"thursday", "friday", "saturday", "sunday", "am", "pm", "morning",
	"afternoon", "evening", "medical", "consultation", "checkup",
}

var durationKeywords = []struct {
	phrase  string
	minutes int
}{
	{"30 minutes", 30},
	{"half hour", 30},
	{"45 minutes", 45},
	{"90 minutes", 90},
	{"1.5 hours", 90},
	{"2 hours", 120},
	{"120 minutes", 120},
}

// Classify decides whether a turn should produce an appointment and extracts
// its coarse attributes. Like the date parser it never fails; unknown input
// degrades to defaults.
func Classify(userText, assistantText string) Classification {
	userLower := strings.ToLower(userText)

	if !containsAny(userLower, schedulingKeywords) {
		return Classification{}
	}

	hasDetails := containsAny(userLower, detailKeywords)
	botConfirms := containsAny(strings.ToLower(assistantText), confirmationKeywords)
	if !hasDetails && !botConfirms {
		return Classification{}
	}

	result := Classification{
		ShouldCreate:    true,
		AppointmentType: models.AppointmentTypeGeneral,
		Title:           "Appointment",
		DurationMinutes: 60,
	}

	// Type priority is deterministic: medical beats consultation beats follow-up
	switch {
	case containsAny(userLower, []string{"medical", "doctor", "checkup", "health"}):
		result.AppointmentType = models.AppointmentTypeMedical
		result.Title = "Medical Appointment"
	case containsAny(userLower, []string{"consultation", "consult"}):
		result.AppointmentType = models.AppointmentTypeConsultation
		result.Title = "Consultation"
	case containsAny(userLower, []string{"follow", "follow-up"}):
		result.AppointmentType = models.AppointmentTypeFollowUp
		result.Title = "Follow-up Appointment"
	}

	for _, d := range durationKeywords {
		if strings.Contains(userLower, d.phrase) {
			result.DurationMinutes = d.minutes
			break
		}
	}

	return result
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
