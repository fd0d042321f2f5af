package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommuteTime(t *testing.T) {
	ctx := context.Background()
	p := new(mockProvider)
	p.On("DistanceMatrix", ctx, "home", "work", time.Time{}).Return(models.MatrixElement{
		Status:            "OK",
		Duration:          30 * time.Minute,
		DurationInTraffic: 34 * time.Minute,
		DistanceM:         20000,
	}, nil)
	p.On("DistanceMatrix", ctx, "home", "nowhere", time.Time{}).Return(models.MatrixElement{Status: "NOT_FOUND"}, nil)
	p.On("DistanceMatrix", ctx, "home", "broken", time.Time{}).Return(models.MatrixElement{}, errors.New("boom"))

	a := New(p, testConfig())

	el, ok := a.CommuteTime(ctx, "home", "work", time.Time{})
	require.True(t, ok)
	assert.Equal(t, 34*time.Minute, el.TrafficDuration())

	_, ok = a.CommuteTime(ctx, "home", "nowhere", time.Time{})
	assert.False(t, ok)

	_, ok = a.CommuteTime(ctx, "home", "broken", time.Time{})
	assert.False(t, ok)
}

func TestRunDrive(t *testing.T) {
	ctx := context.Background()
	p := new(mockProvider)
	p.On("DistanceMatrix", ctx, "1 A St", "City Hall", time.Time{}).Return(models.MatrixElement{
		Status:            "OK",
		Duration:          30 * time.Minute,
		DurationInTraffic: 34 * time.Minute,
		DistanceM:         20000,
	}, nil)
	p.On("DistanceMatrix", ctx, "2 B St", "Penn Medicine", time.Time{}).Return(models.MatrixElement{}, errors.New("quota"))

	a := New(p, testConfig(), WithClock(fixedClock), WithRunID("r1"))

	rows := a.RunDrive(ctx, []models.Address{
		{Address: "1 A St", Destination: "City Hall"},
		{Address: "2 B St"},
	}, nil)

	require.Len(t, rows, 2)
	assert.Equal(t, &models.DriveCommute{
		Origin:             "1 A St",
		Destination:        "City Hall",
		CommuteTime:        "34 mins",
		DriveTimeMins:      models.Float64(34),
		DriveDistanceMiles: models.Float64(12.4),
		Timestamp:          "2024-03-03T12:00:00-05:00",
		RunID:              "r1",
	}, rows[0])

	assert.Equal(t, "Penn Medicine", rows[1].Destination, "falls back to the configured destination")
	assert.Empty(t, rows[1].CommuteTime)
	assert.Nil(t, rows[1].DriveTimeMins)
	assert.Nil(t, rows[1].DriveDistanceMiles)
	vals := rows[1].Values()
	assert.Equal(t, "", vals[3], "failed lookup has no drive time")
	assert.Equal(t, "", vals[4], "failed lookup has no distance")
	p.AssertExpectations(t)
}
