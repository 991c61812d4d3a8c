package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time expressed in seconds since midnight.
type TimeOfDay int

const (
	TimeLayout = "15:04:05"
	DateLayout = "2006-01-02"
)

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// TimeOfDayFromTime drops the date part of t, keeping its wall-clock time in t's zone.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS". Hours may have a single digit, which is
// how some drivers render TIME columns.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	limits := []int{23, 59, 59}
	values := make([]int, 3)
	for i, part := range parts {
		// MySQL may append fractional seconds
		if i == 2 {
			part, _, _ = strings.Cut(part, ".")
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > limits[i] {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		values[i] = n
	}

	return NewTimeOfDay(values[0], values[1], values[2]), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

// Minutes returns whole minutes since midnight; seconds are truncated.
func (t TimeOfDay) Minutes() int {
	return int(t) / 60
}

// On places the time of day on the given calendar date.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, date.Location())
}

// Format12h renders the time like "09:05 AM".
func (t TimeOfDay) Format12h() string {
	return t.On(time.Time{}).Format("03:04 PM")
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatReportDate renders a calendar date the way the report shows it,
// e.g. "05 marzo del 2024".
func FormatReportDate(date time.Time) string {
	return fmt.Sprintf("%02d %s del %d", date.Day(), spanishMonths[date.Month()-1], date.Year())
}
