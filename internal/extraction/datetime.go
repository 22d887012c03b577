package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Default time of day when the text names a date but no time
const (
	defaultHour   = 10
	morningHour   = 9
	afternoonHour = 14
	eveningHour   = 18
)

// weekdayNames is scanned in this fixed order; the first name found anywhere
// in the text wins, regardless of its position.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

// Clock patterns checked in priority order; the first pattern that matches
// anywhere in the text wins and the rest are not considered.
var clockPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)?`), // 2:30 pm, 14:30
	regexp.MustCompile(`(\d{1,2})\s*(am|pm)`),          // 2 pm, 2pm
	regexp.MustCompile(`(\d{1,2})\s*o'?clock`),         // 2 o'clock
}

// ExtractDateTime parses informal scheduling language into a concrete
// timestamp relative to referenceNow. It never fails: text with no
// recognizable signal resolves to tomorrow at 10:00. The reference instant is
// always injected so parsing stays deterministic; this function must not read
// the system clock.
func ExtractDateTime(text string, referenceNow time.Time) time.Time {
	lower := strings.ToLower(text)

	// Base date: today > tomorrow > next named weekday > tomorrow
	base := referenceNow.AddDate(0, 0, 1)
	if strings.Contains(lower, "today") {
		base = referenceNow
	} else if strings.Contains(lower, "tomorrow") {
		base = referenceNow.AddDate(0, 0, 1)
	} else {
		for _, wd := range weekdayNames {
			if strings.Contains(lower, wd.name) {
				daysAhead := (int(wd.day) - int(referenceNow.Weekday()) + 7) % 7
				if daysAhead == 0 {
					// Naming today's weekday means next week, never same-day
					daysAhead = 7
				}
				base = referenceNow.AddDate(0, 0, daysAhead)
				break
			}
		}
	}

	hour, minute := defaultHour, 0

	// Explicit clock time overrides the default time of day
	for _, pattern := range clockPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		if strings.Contains(match[0], ":") {
			hour, _ = strconv.Atoi(match[1])
			minute, _ = strconv.Atoi(match[2])
			if len(match) > 3 {
				hour = to24Hour(hour, match[3])
			}
		} else {
			hour, _ = strconv.Atoi(match[1])
			minute = 0
			if len(match) > 2 {
				hour = to24Hour(hour, match[2])
			}
		}
		break
	}

	// Time-of-day keywords win over everything, including explicit times
	if strings.Contains(lower, "morning") {
		hour, minute = morningHour, 0
	} else if strings.Contains(lower, "afternoon") {
		hour, minute = afternoonHour, 0
	} else if strings.Contains(lower, "evening") {
		hour, minute = eveningHour, 0
	}

	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, referenceNow.Location())
}

// to24Hour normalizes an am/pm-qualified hour: 12pm stays 12, 12am becomes 0
func to24Hour(hour int, ampm string) int {
	switch ampm {
	case "pm":
		if hour != 12 {
			return hour + 12
		}
	case "am":
		if hour == 12 {
			return 0
		}
	}
	return hour
}
