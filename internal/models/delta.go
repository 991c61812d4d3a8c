package models

import "time"

// DeltaRow is one line of the arrival report.
type DeltaRow struct {
	Date     time.Time
	Actual   *TimeOfDay
	Expected *TimeOfDay
	// Delta is actual minus expected in minutes; nil when either side is missing.
	Delta *int
}

// DeltaReport holds the per-day deltas for one location and their sum.
type DeltaReport struct {
	Location     Location
	Rows         []DeltaRow
	TotalMinutes int
}

// ComputeDeltas compares each record against the location's weekly schedule. Rows keep
// the order of records. Rows without a delta do not count towards the total.
func ComputeDeltas(loc Location, records []ArrivalRecord) DeltaReport {
	report := DeltaReport{
		Location: loc,
		Rows:     make([]DeltaRow, 0, len(records)),
	}

	for _, record := range records {
		row := DeltaRow{
			Date:   record.Date,
			Actual: record.ArrivalTime,
		}
		if expected, ok := loc.ExpectedTime(record.Date); ok {
			row.Expected = &expected
		}
		if row.Actual != nil && row.Expected != nil {
			delta := ArrivalDelta(*row.Actual, *row.Expected)
			row.Delta = &delta
			report.TotalMinutes += delta
		}
		report.Rows = append(report.Rows, row)
	}

	return report
}

// ArrivalDelta is the signed lateness in minutes; negative means early.
func ArrivalDelta(actual, expected TimeOfDay) int {
	return actual.Minutes() - expected.Minutes()
}

// SplitMinutes decomposes a minute total with floor division, so minutes is always in
// [0, 59] and the sign is carried by hours: -10 becomes (-1, 50).
func SplitMinutes(total int) (hours, minutes int) {
	hours = total / 60
	minutes = total % 60
	if minutes < 0 {
		hours--
		minutes += 60
	}
	return hours, minutes
}

// Hours and Minutes split the report total with SplitMinutes.
func (r DeltaReport) Hours() int {
	h, _ := SplitMinutes(r.TotalMinutes)
	return h
}

func (r DeltaReport) Minutes() int {
	_, m := SplitMinutes(r.TotalMinutes)
	return m
}
