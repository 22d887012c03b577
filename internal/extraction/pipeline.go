package extraction

import (
	"time"

	"github.com/novacare/schedula-backend/internal/models"
)

// Extract runs the intent classifier and date/time parser over a single
// conversational turn. It returns a complete, persistable draft when
// scheduling intent is present and nil otherwise. "No appointment detected"
// is a normal outcome, not an error, and the pipeline never persists
// anything itself; that is the caller's job.
func Extract(userText, assistantText string, referenceNow time.Time) *models.AppointmentDraft {
	verdict := Classify(userText, assistantText)
	if !verdict.ShouldCreate {
		return nil
	}

	return &models.AppointmentDraft{
		Title:           verdict.Title,
		Description:     userText,
		AppointmentType: verdict.AppointmentType,
		DurationMinutes: verdict.DurationMinutes,
		AppointmentDate: ExtractDateTime(userText, referenceNow),
	}
}
