package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arrivalOn(loc Location, date time.Time, tod TimeOfDay) ArrivalRecord {
	return ArrivalRecord{Location: loc, Date: date, ArrivalTime: &tod, FirstOfDay: true}
}

func TestArrivalDelta(t *testing.T) {
	monday := weekdayDate(time.Monday)
	expected, ok := Visto.ExpectedTime(monday)
	require.True(t, ok)

	assert.Equal(t, 15, ArrivalDelta(NewTimeOfDay(9, 15, 0), expected))
	assert.Equal(t, -10, ArrivalDelta(NewTimeOfDay(8, 50, 0), expected))
	assert.Equal(t, 0, ArrivalDelta(NewTimeOfDay(9, 0, 59), expected), "seconds are truncated")
}

func TestComputeDeltas(t *testing.T) {
	monday := weekdayDate(time.Monday)
	saturday := weekdayDate(time.Saturday)

	records := []ArrivalRecord{
		arrivalOn(Visto, monday, NewTimeOfDay(9, 15, 0)),
		arrivalOn(Visto, saturday, NewTimeOfDay(9, 20, 0)),
		{Location: Visto, Date: weekdayDate(time.Tuesday), FirstOfDay: true},
	}

	report := ComputeDeltas(Visto, records)
	require.Len(t, report.Rows, 3)

	require.NotNil(t, report.Rows[0].Delta)
	assert.Equal(t, 15, *report.Rows[0].Delta)
	assert.Equal(t, monday, report.Rows[0].Date)

	require.NotNil(t, report.Rows[1].Delta)
	assert.Equal(t, -10, *report.Rows[1].Delta)

	assert.Nil(t, report.Rows[2].Delta, "missing actual time has no delta")
	assert.NotNil(t, report.Rows[2].Expected)

	assert.Equal(t, 5, report.TotalMinutes)
}

func TestComputeDeltasUnknownLocation(t *testing.T) {
	records := []ArrivalRecord{arrivalOn(LocationUnknown, weekdayDate(time.Monday), NewTimeOfDay(9, 0, 0))}

	report := ComputeDeltas(LocationUnknown, records)
	require.Len(t, report.Rows, 1)
	assert.Nil(t, report.Rows[0].Expected)
	assert.Nil(t, report.Rows[0].Delta)
	assert.Zero(t, report.TotalMinutes)
}

func TestComputeDeltasEmpty(t *testing.T) {
	report := ComputeDeltas(SanJose, nil)
	assert.Empty(t, report.Rows)
	assert.Zero(t, report.TotalMinutes)
	assert.Zero(t, report.Hours())
	assert.Zero(t, report.Minutes())
}

func TestSplitMinutes(t *testing.T) {
	tests := []struct {
		total, hours, minutes int
	}{
		{125, 2, 5},
		{60, 1, 0},
		{0, 0, 0},
		{59, 0, 59},
		{-10, -1, 50},
		{-60, -1, 0},
		{-61, -2, 59},
	}
	for _, tt := range tests {
		h, m := SplitMinutes(tt.total)
		assert.Equal(t, tt.hours, h, "hours for %d", tt.total)
		assert.Equal(t, tt.minutes, m, "minutes for %d", tt.total)
		assert.Equal(t, tt.total, h*60+m)
	}
}

func TestNewDeltaReportModel(t *testing.T) {
	monday := weekdayDate(time.Monday)
	report := ComputeDeltas(Visto, []ArrivalRecord{
		arrivalOn(Visto, monday, NewTimeOfDay(8, 50, 0)),
	})

	model := NewDeltaReportModel(report)
	assert.Equal(t, "VIS", model.LocationCode)
	assert.Equal(t, "Visto", model.LocationName)
	require.Len(t, model.Arrivals, 1)
	assert.Equal(t, "2024-03-04", model.Arrivals[0].Date)
	assert.Equal(t, "08:50:00", model.Arrivals[0].ArrivalTime)
	assert.Equal(t, "09:00:00", model.Arrivals[0].ExpectedTime)
	require.NotNil(t, model.Arrivals[0].DeltaMinutes)
	assert.Equal(t, -10, *model.Arrivals[0].DeltaMinutes)
	assert.Equal(t, -10, model.TotalMinutes)
	assert.Equal(t, -1, model.TotalHours)
	assert.Equal(t, 50, model.RemainderMinutes)
}

func TestNewFirstArrival(t *testing.T) {
	zone := time.FixedZone("COT", -5*3600)
	at := time.Date(2024, 3, 4, 8, 55, 0, 0, zone)

	record := NewFirstArrival(LoNuestro, at)
	assert.Equal(t, LoNuestro, record.Location)
	assert.True(t, record.FirstOfDay)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, zone), record.Date)
	require.NotNil(t, record.ArrivalTime)
	assert.Equal(t, NewTimeOfDay(8, 55, 0), *record.ArrivalTime)
}
