// Package schedule turns raw timetable documents (HTML tables or legacy
// monospaced dumps) into normalized weekly time-slot records and merges slot
// sets from many sources into one deduplicated schedule.
package schedule

import (
	"fmt"
	"strings"
)

// Day is one of the five recognized weekdays.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

var dayLabels = [...]string{"Pon", "Uto", "Str", "Stv", "Pia"}

// String returns the source-locale abbreviation of the day.
func (d Day) String() string {
	if d < Monday || d > Friday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayLabels[d]
}

// ParseDay maps a source-locale abbreviation to a Day. The legacy "Štv"
// spelling normalizes to Thursday.
func ParseDay(s string) (Day, bool) {
	switch s {
	case "Pon":
		return Monday, true
	case "Uto":
		return Tuesday, true
	case "Str":
		return Wednesday, true
	case "Stv", "Štv":
		return Thursday, true
	case "Pia":
		return Friday, true
	}
	return 0, false
}

// Slot is one atomic parsed timetable entry. Slots are created only by
// extraction and are immutable afterwards; an extractor never emits a slot
// with StartMin >= EndMin.
type Slot struct {
	Day       Day    `json:"day"`
	StartMin  int    `json:"startMin"`
	EndMin    int    `json:"endMin"`
	Title     string `json:"title"`
	Room      string `json:"room,omitempty"`
	SourceURL string `json:"sourceUrl"`
}

// Key is the identity of a slot for merging: two slots with equal keys
// represent the same timetable entry.
func (s Slot) Key() string {
	return fmt.Sprintf("%s|%d|%d|%s|%s", s.Day, s.StartMin, s.EndMin, s.Title, s.Room)
}

// MergedRow is a Slot extended with the ordered set of distinct source
// labels that reported an identical slot.
type MergedRow struct {
	Slot
	Groups []string `json:"groups"`
}

// IsElectiveTitle reports whether a title carries one of the reserved
// elective markers. The classification is a pure function of the title;
// callers recompute it, it is never stored.
func IsElectiveTitle(title string) bool {
	t := strings.TrimSpace(title)
	return strings.HasPrefix(t, "@") || strings.HasPrefix(t, "#")
}

// FormatHM renders minutes since midnight as HH:MM.
func FormatHM(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
