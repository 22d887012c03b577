package extraction

import (
	"testing"
	"time"
)

// Monday 2024-01-01, midnight
var refNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestExtractDateTime_DefaultsToTomorrowTen(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no signal at all", "hello there"},
		{"scheduling words only", "can you book something for me"},
		{"empty text", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDateTime(tt.text, refNow)
			want := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
			if !got.Equal(want) {
				t.Errorf("ExtractDateTime(%q) = %v, want %v", tt.text, got, want)
			}
		})
	}
}

func TestExtractDateTime_BaseDates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"today", "today please", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"tomorrow", "tomorrow works", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)},
		{"friday", "next friday", time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)},
		{"sunday", "on sunday", time.Date(2024, 1, 7, 10, 0, 0, 0, time.UTC)},
		{"today beats weekday", "today or friday", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"tomorrow beats weekday", "tomorrow or friday", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDateTime(tt.text, refNow)
			if !got.Equal(tt.want) {
				t.Errorf("ExtractDateTime(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractDateTime_SameWeekdayRollsForward(t *testing.T) {
	// refNow is a Monday; "monday" must resolve to +7 days, never same-day
	got := ExtractDateTime("monday", refNow)
	want := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ExtractDateTime(monday) = %v, want %v", got, want)
	}
}

func TestExtractDateTime_ClockTimes(t *testing.T) {
	tests := []struct {
		name               string
		text               string
		wantHour, wantMins int
	}{
		{"colon with pm", "tomorrow at 2:30 pm", 14, 30},
		{"colon without space", "tomorrow at 2:30pm", 14, 30},
		{"24 hour", "tomorrow at 14:30", 14, 30},
		{"hour with pm", "tomorrow at 2pm", 14, 0},
		{"hour with am", "tomorrow at 9 am", 9, 0},
		{"noon", "tomorrow at 12pm", 12, 0},
		{"midnight", "tomorrow at 12am", 0, 0},
		{"o'clock", "tomorrow at 2 o'clock", 2, 0},
		{"oclock no apostrophe", "tomorrow at 2 oclock", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDateTime(tt.text, refNow)
			if got.Hour() != tt.wantHour || got.Minute() != tt.wantMins {
				t.Errorf("ExtractDateTime(%q) = %02d:%02d, want %02d:%02d",
					tt.text, got.Hour(), got.Minute(), tt.wantHour, tt.wantMins)
			}
		})
	}
}

func TestExtractDateTime_FirstClockPatternWins(t *testing.T) {
	// The H:MM pattern matches first; the later bare-hour pattern is ignored
	got := ExtractDateTime("between 2:30 pm and 5pm tomorrow", refNow)
	if got.Hour() != 14 || got.Minute() != 30 {
		t.Errorf("got %02d:%02d, want 14:30", got.Hour(), got.Minute())
	}
}

func TestExtractDateTime_KeywordOverridesExplicitTime(t *testing.T) {
	tests := []struct {
		name               string
		text               string
		wantHour, wantMins int
	}{
		{"morning beats 3pm", "Monday at 3pm in the morning", 9, 0},
		{"morning", "tomorrow morning", 9, 0},
		{"afternoon", "tomorrow afternoon", 14, 0},
		{"evening", "tomorrow evening", 18, 0},
		{"morning beats minutes too", "tomorrow at 3:45 pm, morning preferred", 9, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDateTime(tt.text, refNow)
			if got.Hour() != tt.wantHour || got.Minute() != tt.wantMins {
				t.Errorf("ExtractDateTime(%q) = %02d:%02d, want %02d:%02d",
					tt.text, got.Hour(), got.Minute(), tt.wantHour, tt.wantMins)
			}
		})
	}
}

func TestExtractDateTime_TodayCanResolveToThePast(t *testing.T) {
	// Known quirk kept from the original service: "today" processed after
	// 10:00 yields a timestamp earlier than the reference instant.
	lateNow := time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC)
	got := ExtractDateTime("today", lateNow)
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if !got.Before(lateNow) {
		t.Errorf("expected resolved time before reference, got %v vs %v", got, lateNow)
	}
}

func TestExtractDateTime_SecondsZeroed(t *testing.T) {
	now := time.Date(2024, 3, 15, 11, 22, 33, 444555666, time.UTC)
	got := ExtractDateTime("tomorrow at 2pm", now)
	if got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("expected zeroed seconds, got %v", got)
	}
}

func TestExtractDateTime_Deterministic(t *testing.T) {
	first := ExtractDateTime("friday at 3:15 pm", refNow)
	second := ExtractDateTime("friday at 3:15 pm", refNow)
	if !first.Equal(second) {
		t.Errorf("same input produced different output: %v vs %v", first, second)
	}
}

func TestExtractDateTime_NeverPanics(t *testing.T) {
	inputs := []string{
		"", "   ", "999:999", "25pm", "0:00am", ":30", "o'clock",
		"tomorrow tomorrow tomorrow", "日曜日", "13:37 on friday the 32nd",
		string([]byte{0xff, 0xfe}), "am pm morning evening 12:61",
	}
	for _, input := range inputs {
		got := ExtractDateTime(input, refNow)
		if got.IsZero() {
			t.Errorf("ExtractDateTime(%q) returned zero time", input)
		}
	}
}
