package models

import "time"

// ArrivalRecord is one stored arrival row. Only first-of-day rows are ever written.
type ArrivalRecord struct {
	Location Location
	// Date is the calendar date at midnight in the recorder's zone.
	Date time.Time
	// ArrivalTime is nil when the stored value is missing or unreadable.
	ArrivalTime *TimeOfDay
	FirstOfDay  bool
}

// NewFirstArrival builds the record logged for an arrival instant.
func NewFirstArrival(loc Location, at time.Time) ArrivalRecord {
	y, m, d := at.Date()
	tod := TimeOfDayFromTime(at)
	return ArrivalRecord{
		Location:    loc,
		Date:        time.Date(y, m, d, 0, 0, 0, 0, at.Location()),
		ArrivalTime: &tod,
		FirstOfDay:  true,
	}
}
