package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/novacare/schedula-backend/internal/models"
)

func testDraft(date time.Time) *models.AppointmentDraft {
	return &models.AppointmentDraft{
		Title:           "General Appointment",
		Description:     "booked via chat",
		AppointmentDate: date,
		DurationMinutes: 60,
		AppointmentType: models.AppointmentTypeGeneral,
	}
}

func TestMemoryStore_AppointmentLifecycle(t *testing.T) {
	store := NewMemoryStore()
	date := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	created, err := store.CreateAppointment(1, testDraft(date))
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected a non-zero ID")
	}
	if created.Status != models.AppointmentStatusPending {
		t.Errorf("status = %q, want pending", created.Status)
	}

	fetched, err := store.GetAppointment(created.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if fetched.Title != "General Appointment" || !fetched.AppointmentDate.Equal(date) {
		t.Errorf("unexpected appointment: %+v", fetched)
	}

	if err := store.UpdateAppointmentStatus(created.ID, models.AppointmentStatusConfirmed); err != nil {
		t.Fatalf("UpdateAppointmentStatus: %v", err)
	}
	fetched, _ = store.GetAppointment(created.ID)
	if fetched.Status != models.AppointmentStatusConfirmed {
		t.Errorf("status = %q, want confirmed", fetched.Status)
	}

	if _, err := store.GetAppointment(999); err == nil {
		t.Error("expected error for missing appointment")
	}
	if err := store.UpdateAppointmentStatus(999, models.AppointmentStatusCancelled); err == nil {
		t.Error("expected error updating missing appointment")
	}
}

func TestMemoryStore_GetAppointmentsByUser(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if _, err := store.CreateAppointment(1, testDraft(base.AddDate(0, 0, i))); err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}
	}
	if _, err := store.CreateAppointment(2, testDraft(base)); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}

	results, err := store.GetAppointmentsByUser(1, 0)
	if err != nil {
		t.Fatalf("GetAppointmentsByUser: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 appointments for user 1, got %d", len(results))
	}
	// Newest appointment date first
	for i := 1; i < len(results); i++ {
		if results[i].AppointmentDate.After(results[i-1].AppointmentDate) {
			t.Error("expected results ordered by date descending")
		}
	}

	limited, _ := store.GetAppointmentsByUser(1, 2)
	if len(limited) != 2 {
		t.Errorf("expected limit to cap results at 2, got %d", len(limited))
	}
}

func TestMemoryStore_UpcomingAndReminders(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()

	soon, _ := store.CreateAppointment(1, testDraft(now.Add(2*time.Hour)))
	store.CreateAppointment(1, testDraft(now.Add(48*time.Hour)))  // outside window
	store.CreateAppointment(1, testDraft(now.Add(-1*time.Hour)))  // already past
	cancelled, _ := store.CreateAppointment(1, testDraft(now.Add(3*time.Hour)))
	store.UpdateAppointmentStatus(cancelled.ID, models.AppointmentStatusCancelled)

	upcoming, err := store.GetUpcomingAppointments(24 * time.Hour)
	if err != nil {
		t.Fatalf("GetUpcomingAppointments: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != soon.ID {
		t.Fatalf("expected only the 2h appointment, got %d results", len(upcoming))
	}

	if err := store.MarkReminderSent(soon.ID); err != nil {
		t.Fatalf("MarkReminderSent: %v", err)
	}
	upcoming, _ = store.GetUpcomingAppointments(24 * time.Hour)
	if len(upcoming) != 0 {
		t.Errorf("expected reminded appointment to be excluded, got %d", len(upcoming))
	}
}

func TestMemoryStore_ChatSessions(t *testing.T) {
	store := NewMemoryStore()

	session, err := store.CreateChatSession(1)
	if err != nil {
		t.Fatalf("CreateChatSession: %v", err)
	}
	if session.SessionID == "" {
		t.Error("expected a generated session ID")
	}

	fetched, err := store.GetChatSession(session.SessionID)
	if err != nil {
		t.Fatalf("GetChatSession: %v", err)
	}
	if fetched.UserID != 1 {
		t.Errorf("user = %d, want 1", fetched.UserID)
	}

	appointment, _ := store.CreateAppointment(1, testDraft(time.Now()))
	if err := store.LinkSessionAppointment(session.SessionID, appointment.ID); err != nil {
		t.Fatalf("LinkSessionAppointment: %v", err)
	}
	fetched, _ = store.GetChatSession(session.SessionID)
	if fetched.AppointmentID == nil || *fetched.AppointmentID != appointment.ID {
		t.Error("expected session linked to appointment")
	}

	if _, err := store.GetChatSession("missing"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestMemoryStore_MessageHistory(t *testing.T) {
	store := NewMemoryStore()
	session, _ := store.CreateChatSession(1)

	for i := 0; i < 25; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		if _, err := store.AppendMessage(session.SessionID, role, fmt.Sprintf("msg %d", i), ""); err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
	}

	history, err := store.GetRecentMessages(session.SessionID, 20)
	if err != nil {
		t.Fatalf("GetRecentMessages: %v", err)
	}
	if len(history) != 20 {
		t.Fatalf("expected 20 messages, got %d", len(history))
	}
	if history[0].Content != "msg 5" || history[19].Content != "msg 24" {
		t.Errorf("expected the most recent window oldest-first, got %q .. %q",
			history[0].Content, history[19].Content)
	}

	if _, err := store.AppendMessage("missing", models.RoleUser, "hi", ""); err == nil {
		t.Error("expected error appending to unknown session")
	}
}
