package models

import (
	"fmt"
	"strconv"
	"time"
)

const (
	TopicDriveCommutes   = "drive_commutes"
	TopicTransitAnalyses = "transit_analyses"
	CommuteTypeMorning   = "Morning"
	CommuteTypeEvening   = "Evening"
	clockLayout          = "03:04 PM"
)

// Record is a flat output row that knows its own column order.
type Record interface {
	Header() []string
	Values() []string
	Key() string
}

type DriveCommute struct {
	Origin             string   `json:"origin" parquet:"name=origin, type=BYTE_ARRAY, convertedtype=UTF8"`
	Destination        string   `json:"destination" parquet:"name=destination, type=BYTE_ARRAY, convertedtype=UTF8"`
	CommuteTime        string   `json:"commute_time" parquet:"name=commute_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	// nil when the lookup failed
	DriveTimeMins      *float64 `json:"drive_time_mins" parquet:"name=drive_time_mins, type=DOUBLE, repetitiontype=OPTIONAL"`
	DriveDistanceMiles *float64 `json:"drive_distance_miles" parquet:"name=drive_distance_miles, type=DOUBLE, repetitiontype=OPTIONAL"`
	Timestamp          string   `json:"timestamp" parquet:"name=timestamp, type=BYTE_ARRAY, convertedtype=UTF8"`
	RunID              string   `json:"run_id" parquet:"name=run_id, type=BYTE_ARRAY, convertedtype=UTF8"`
}

var driveCommuteHeader = []string{
	"origin", "destination", "commute_time", "drive_time_mins",
	"drive_distance_miles", "timestamp", "run_id",
}

func (d *DriveCommute) Header() []string { return driveCommuteHeader }

func (d *DriveCommute) Key() string { return d.Origin }

func (d *DriveCommute) Values() []string {
	return []string{
		d.Origin,
		d.Destination,
		d.CommuteTime,
		formatOptional(d.DriveTimeMins, 1),
		formatOptional(d.DriveDistanceMiles, 1),
		d.Timestamp,
		d.RunID,
	}
}

type TransitAnalysis struct {
	HomeAddress        string  `json:"home_address" parquet:"name=home_address, type=BYTE_ARRAY, convertedtype=UTF8"`
	StationName        string  `json:"station_name" parquet:"name=station_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	StationAddress     string  `json:"station_address" parquet:"name=station_address, type=BYTE_ARRAY, convertedtype=UTF8"`
	DestinationStation string  `json:"destination_station" parquet:"name=destination_station, type=BYTE_ARRAY, convertedtype=UTF8"`
	DriveTimeMins      float64 `json:"drive_time_mins" parquet:"name=drive_time_mins, type=DOUBLE"`
	DriveDistanceMiles float64 `json:"drive_distance_miles" parquet:"name=drive_distance_miles, type=DOUBLE"`
	TransitTimeMins    float64 `json:"transit_time_mins" parquet:"name=transit_time_mins, type=DOUBLE"`
	WalkTimeMins       float64 `json:"walk_time_mins" parquet:"name=walk_time_mins, type=DOUBLE"`
	WalkDistanceMiles  float64 `json:"walk_distance_miles" parquet:"name=walk_distance_miles, type=DOUBLE"`
	TotalTimeMins      float64 `json:"total_time_mins" parquet:"name=total_time_mins, type=DOUBLE"`
	Transfers          int64   `json:"transfers" parquet:"name=transfers, type=INT64"`
	ArrivalTime        string  `json:"arrival_time" parquet:"name=arrival_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	DepartureTime      string  `json:"departure_time" parquet:"name=departure_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	CommuteType        string  `json:"commute_type" parquet:"name=commute_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	RunID              string  `json:"run_id" parquet:"name=run_id, type=BYTE_ARRAY, convertedtype=UTF8"`
}

var TransitAnalysisHeader = []string{
	"home_address", "station_name", "station_address", "destination_station",
	"drive_time_mins", "drive_distance_miles", "transit_time_mins", "walk_time_mins",
	"walk_distance_miles", "total_time_mins", "transfers", "arrival_time",
	"departure_time", "commute_type", "run_id",
}

func (t *TransitAnalysis) Header() []string { return TransitAnalysisHeader }

func (t *TransitAnalysis) Key() string { return t.HomeAddress }

func (t *TransitAnalysis) Values() []string {
	return []string{
		t.HomeAddress,
		t.StationName,
		t.StationAddress,
		t.DestinationStation,
		formatFloat(t.DriveTimeMins, 1),
		formatFloat(t.DriveDistanceMiles, 1),
		formatFloat(t.TransitTimeMins, 1),
		formatFloat(t.WalkTimeMins, 1),
		formatFloat(t.WalkDistanceMiles, 2),
		formatFloat(t.TotalTimeMins, 1),
		strconv.FormatInt(t.Transfers, 10),
		t.ArrivalTime,
		t.DepartureTime,
		t.CommuteType,
		t.RunID,
	}
}

// ClockTime renders t as a 12-hour clock, e.g. "08:47 AM".
func ClockTime(t time.Time) string {
	return t.Format(clockLayout)
}

// DepartureLabel renders the departure column for the given direction.
func DepartureLabel(t time.Time, morning bool) string {
	if morning {
		return "Leave home at " + ClockTime(t)
	}
	return "Leave work at " + ClockTime(t)
}

// HumanDuration renders d the way the mapping service words durations, e.g. "1 hour 5 mins".
func HumanDuration(d time.Duration) string {
	mins := int((d + 30*time.Second) / time.Minute)
	hours, mins := mins/60, mins%60

	unit := func(n int, one, many string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, one)
		}
		return fmt.Sprintf("%d %s", n, many)
	}

	switch {
	case hours == 0:
		return unit(mins, "min", "mins")
	case mins == 0:
		return unit(hours, "hour", "hours")
	default:
		return unit(hours, "hour", "hours") + " " + unit(mins, "min", "mins")
	}
}

// Float64 returns a pointer to v, for the optional columns of DriveCommute.
func Float64(v float64) *float64 { return &v }

func formatOptional(v *float64, places int) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v, places)
}

func formatFloat(v float64, places int) string {
	return strconv.FormatFloat(Round(v, places), 'f', places, 64)
}
