package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitAnalysisValues(t *testing.T) {
	row := &TransitAnalysis{
		HomeAddress:        "1 Home Rd",
		StationName:        "Ardmore",
		StationAddress:     "Ardmore, PA",
		DestinationStation: "Penn Medicine",
		DriveTimeMins:      7.26,
		DriveDistanceMiles: 2.04,
		TransitTimeMins:    25,
		WalkTimeMins:       4.5,
		WalkDistanceMiles:  0.256,
		TotalTimeMins:      36.76,
		Transfers:          1,
		ArrivalTime:        "08:47 AM",
		DepartureTime:      "Leave home at 08:10 AM",
		CommuteType:        CommuteTypeMorning,
		RunID:              "run1",
	}

	vals := row.Values()
	assert.Len(t, vals, len(row.Header()))
	assert.Equal(t, []string{
		"1 Home Rd", "Ardmore", "Ardmore, PA", "Penn Medicine",
		"7.3", "2.0", "25.0", "4.5", "0.26", "36.8", "1",
		"08:47 AM", "Leave home at 08:10 AM", "Morning", "run1",
	}, vals)
	assert.Equal(t, "1 Home Rd", row.Key())
}

func TestDriveCommuteValues(t *testing.T) {
	row := &DriveCommute{Origin: "a", Destination: "b", CommuteTime: "34 mins", DriveTimeMins: Float64(34.2), DriveDistanceMiles: Float64(12.04), Timestamp: "ts", RunID: "r"}
	assert.Equal(t, []string{"a", "b", "34 mins", "34.2", "12.0", "ts", "r"}, row.Values())
	assert.Len(t, row.Header(), 7)
}

func TestDriveCommuteValues_NoResult(t *testing.T) {
	row := &DriveCommute{Origin: "2 B St", Destination: "Penn Medicine", Timestamp: "ts", RunID: "r"}
	assert.Equal(t, []string{"2 B St", "Penn Medicine", "", "", "", "ts", "r"}, row.Values())

	zero := &DriveCommute{Origin: "2 B St", DriveTimeMins: Float64(0), DriveDistanceMiles: Float64(0)}
	assert.Equal(t, "0.0", zero.Values()[3], "a real zero stays distinguishable from a failure")

	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"drive_time_mins":null`)
	assert.Contains(t, string(b), `"drive_distance_miles":null`)
}

func TestDepartureLabel(t *testing.T) {
	ts := time.Date(2024, 3, 4, 7, 41, 0, 0, time.UTC)
	assert.Equal(t, "Leave home at 07:41 AM", DepartureLabel(ts, true))
	assert.Equal(t, "Leave work at 07:41 AM", DepartureLabel(ts, false))
	assert.Equal(t, "05:02 PM", ClockTime(time.Date(2024, 3, 4, 17, 2, 0, 0, time.UTC)))
}

func TestHumanDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{40 * time.Second, "1 min"},
		{34 * time.Minute, "34 mins"},
		{time.Hour, "1 hour"},
		{65 * time.Minute, "1 hour 5 mins"},
		{2*time.Hour + time.Minute, "2 hours 1 min"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanDuration(tt.in), tt.in.String())
	}
}
