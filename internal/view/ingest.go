package view

import (
	"strings"
	"time"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/domain"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"15:04:05",
	"15:04",
}

// clockLabel renders the wall-clock HH:MM embedded in a timestamp string.
// The offset in the string is kept as-is, never converted to the local zone.
// Unparseable values degrade to "".
func clockLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format("15:04")
		}
	}
	return ""
}

// IngestSlot normalizes one raw slot into a Meeting.
func IngestSlot(slot domain.ScheduleSlot) domain.Meeting {
	start := clockLabel(slot.StartTime)
	end := clockLabel(slot.EndTime)
	return domain.Meeting{
		SectionNumber: slot.SectionNumber,
		Day:           strings.TrimSpace(slot.DayOfWeek),
		TimeSpan:      start + "-" + end,
		StartLabel:    start,
		Room:          resolveRoom(slot),
	}
}

// resolveRoom walks the fallback chain: attached lab room, then a fixed-room
// candidate for the same day and section, then any candidate with a room,
// then "" (the renderer shows a pending-assignment placeholder).
func resolveRoom(slot domain.ScheduleSlot) string {
	if slot.Laboratory != nil {
		if room := strings.TrimSpace(slot.Laboratory.Room); room != "" {
			return room
		}
	}
	day := strings.TrimSpace(slot.DayOfWeek)
	for _, fixed := range slot.TimeFixedCourses {
		room := strings.TrimSpace(fixed.RoomFix)
		if room == "" {
			continue
		}
		if strings.TrimSpace(fixed.DayOfWeek) == day && fixed.Section == slot.SectionNumber {
			return room
		}
	}
	for _, fixed := range slot.TimeFixedCourses {
		if room := strings.TrimSpace(fixed.RoomFix); room != "" {
			return room
		}
	}
	return ""
}

// NormalizeInstructors trims and deduplicates names keeping first-seen
// order. A nil or empty input yields an empty, non-nil slice.
func NormalizeInstructors(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
