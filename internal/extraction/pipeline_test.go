package extraction

import (
	"testing"
	"time"

	"github.com/novacare/schedula-backend/internal/models"
)

func TestExtract_EndToEnd(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	draft := Extract("Can I schedule a consultation tomorrow at 2:30 PM for 45 minutes", "", now)
	if draft == nil {
		t.Fatal("expected a draft")
	}

	if draft.AppointmentType != models.AppointmentTypeConsultation {
		t.Errorf("type = %q, want consultation", draft.AppointmentType)
	}
	if draft.Title != "Consultation" {
		t.Errorf("title = %q, want Consultation", draft.Title)
	}
	if draft.DurationMinutes != 45 {
		t.Errorf("duration = %d, want 45", draft.DurationMinutes)
	}
	want := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)
	if !draft.AppointmentDate.Equal(want) {
		t.Errorf("date = %v, want %v", draft.AppointmentDate, want)
	}
	if draft.Description != "Can I schedule a consultation tomorrow at 2:30 PM for 45 minutes" {
		t.Errorf("description should be the triggering utterance, got %q", draft.Description)
	}
	if draft.Location != nil || draft.Notes != nil {
		t.Error("location and notes should default to absent")
	}
}

func TestExtract_NoIntentReturnsNil(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if draft := Extract("hello", "hi there", now); draft != nil {
		t.Errorf("expected nil draft, got %+v", draft)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := Extract("book a checkup friday morning", "", now)
	second := Extract("book a checkup friday morning", "", now)
	if first == nil || second == nil {
		t.Fatal("expected drafts")
	}
	if *first != *second {
		t.Errorf("pure function produced different drafts: %+v vs %+v", first, second)
	}
}

func TestExtract_DraftIsComplete(t *testing.T) {
	// No partial drafts escape the pipeline: every returned draft carries a
	// type, title, positive duration and a timestamp.
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	inputs := []string{
		"schedule something today",
		"book me in for a session next week",
		"make an appointment for tuesday evening",
	}
	for _, input := range inputs {
		draft := Extract(input, "I've scheduled it", now)
		if draft == nil {
			t.Fatalf("Extract(%q) returned nil", input)
		}
		if draft.Title == "" || draft.AppointmentType == "" {
			t.Errorf("Extract(%q) produced partial draft: %+v", input, draft)
		}
		if draft.DurationMinutes <= 0 {
			t.Errorf("Extract(%q) duration = %d", input, draft.DurationMinutes)
		}
		if draft.AppointmentDate.IsZero() {
			t.Errorf("Extract(%q) has zero timestamp", input)
		}
	}
}
