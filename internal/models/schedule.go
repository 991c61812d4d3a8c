package models

import "time"

// WeeklySchedule maps each weekday to the expected arrival time at a location.
type WeeklySchedule map[time.Weekday]TimeOfDay

// weekSchedule builds a full week table where Monday to Friday share one time.
func weekSchedule(weekday, saturday, sunday TimeOfDay) WeeklySchedule {
	s := WeeklySchedule{
		time.Saturday: saturday,
		time.Sunday:   sunday,
	}
	for d := time.Monday; d <= time.Friday; d++ {
		s[d] = weekday
	}
	return s
}

// ExpectedOn returns the expected arrival for the weekday of date.
func (s WeeklySchedule) ExpectedOn(date time.Time) (TimeOfDay, bool) {
	expected, ok := s[date.Weekday()]
	return expected, ok
}

// ExpectedTime returns the expected arrival at the location for the given date. It
// reports false when the location is unknown or its table has no entry for the weekday.
func (l Location) ExpectedTime(date time.Time) (TimeOfDay, bool) {
	schedule := l.Schedule()
	if schedule == nil {
		return 0, false
	}
	return schedule.ExpectedOn(date)
}

// ExpectedTime looks up the expected arrival by location code.
func ExpectedTime(code string, date time.Time) (TimeOfDay, bool) {
	loc, ok := LocationFromCode(code)
	if !ok {
		return 0, false
	}
	return loc.ExpectedTime(date)
}
