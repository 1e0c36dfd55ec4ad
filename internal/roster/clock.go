package roster

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day, stored as "HH:MM".
type ClockTime string

// ParseClockTime accepts H:MM, HH:MM or HH:MM:SS and normalises to HH:MM.
func ParseClockTime(s string) (ClockTime, error) {
	m, ok := ClockTime(strings.TrimSpace(s)).Minutes()
	if !ok {
		return "", fmt.Errorf("invalid clock time %q", s)
	}
	return ClockFromMinutes(m), nil
}

func ClockFromMinutes(m int) ClockTime {
	return ClockTime(fmt.Sprintf("%02d:%02d", m/60, m%60))
}

// Minutes returns minutes since midnight. ok is false for blank or malformed
// values.
func (t ClockTime) Minutes() (int, bool) {
	parts := strings.Split(string(t), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, false
	}
	return h*60 + m, true
}

func (t ClockTime) IsZero() bool {
	return strings.TrimSpace(string(t)) == ""
}

// On places t on the calendar day of day, in day's location.
func (t ClockTime) On(day time.Time) (time.Time, bool) {
	m, ok := t.Minutes()
	if !ok {
		return time.Time{}, false
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, day.Location()), true
}

// ParseDate parses YYYY-MM-DD as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}
