package analyzer

import (
	"context"
	"io"
	"time"

	"github.com/chrisdamba/commutetracker/internal/mapsapi"
	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/rs/zerolog/log"
)

// StationDrive is the driving leg between home and a station.
type StationDrive struct {
	Minutes float64
	Miles   float64
}

// FindNearbyStations geocodes address and searches for train stations around it.
// Failures are logged and produce an empty list.
func (a *Analyzer) FindNearbyStations(ctx context.Context, address string) []models.Station {
	loc, err := a.geocoder.Geocode(ctx, address)
	if err != nil {
		log.Error().Err(err).Str("address", address).Msg("error finding stations")
		return nil
	}

	stations, err := a.maps.NearbyStations(ctx, loc, a.cfg.StationSearchRadius, a.cfg.StationKeyword)
	if err != nil {
		log.Error().Err(err).Str("address", address).Msg("error finding stations")
		return nil
	}

	log.Info().Int("count", len(stations)).Str("address", address).Msg("found stations")
	for _, s := range stations {
		log.Info().Str("station", s.Name).Str("vicinity", s.Vicinity).Msg("station")
	}
	return stations
}

// TargetArrival returns the morning or evening arrival on the next travel day in the configured timezone.
func (a *Analyzer) TargetArrival(morning bool) (time.Time, error) {
	h, m, err := a.cfg.ArrivalClock(morning)
	if err != nil {
		return time.Time{}, err
	}

	loc := a.cfg.Location()
	day := a.now().In(loc).AddDate(0, 0, 1)
	if a.cfg.SkipWeekends {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc), nil
}

// TransitOption finds the best allowed rail route between station and the final destination.
// Morning runs station -> destination; evening runs destination -> station.
func (a *Analyzer) TransitOption(ctx context.Context, station models.Station, arrival time.Time, morning bool) (TransitOption, bool) {
	q := mapsapi.DirectionsQuery{
		Mode:         models.TravelModeTransit,
		ArrivalTime:  arrival,
		Alternatives: true,
		RailOnly:     true,
	}
	if morning {
		q.Origin, q.Destination = station.Location.String(), a.cfg.FinalDestination
	} else {
		q.Origin, q.Destination = a.cfg.FinalDestination, station.Location.String()
	}
	log.Debug().Str("origin", q.Origin).Str("destination", q.Destination).Time("arrival", arrival).Msg("analyzing transit route")

	routes, err := a.maps.Directions(ctx, q)
	if err != nil {
		log.Error().Err(err).Str("station", station.Name).Msg("error getting transit details")
		return TransitOption{}, false
	}
	if len(routes) == 0 {
		log.Debug().Str("station", station.Name).Msg("no routes found")
		return TransitOption{}, false
	}

	return bestRoute(routes, a.cfg.AllowedLines)
}

// DriveToStation measures the drive between home and station with traffic at departure.
// Morning drives home -> station, evening station -> home.
func (a *Analyzer) DriveToStation(ctx context.Context, home string, station models.Station, departure time.Time, morning bool) (StationDrive, bool) {
	q := mapsapi.DirectionsQuery{
		Mode:          models.TravelModeDriving,
		DepartureTime: departure,
		BestGuess:     true,
	}
	if morning {
		q.Origin, q.Destination = home, station.Location.String()
	} else {
		q.Origin, q.Destination = station.Location.String(), home
	}

	routes, err := a.maps.Directions(ctx, q)
	if err != nil {
		log.Error().Err(err).Str("station", station.Name).Msg("error getting drive time to station")
		return StationDrive{}, false
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return StationDrive{}, false
	}

	leg := routes[0].Legs[0]
	return StationDrive{
		Minutes: leg.TrafficDuration().Minutes(),
		Miles:   models.MetersToMiles(leg.DistanceM),
	}, true
}

// AnalyzeCommute returns the best commute for home in one direction, or false when no station works.
func (a *Analyzer) AnalyzeCommute(ctx context.Context, home string, morning bool) (*models.TransitAnalysis, bool) {
	return a.analyzeStations(ctx, home, a.FindNearbyStations(ctx, home), morning)
}

func (a *Analyzer) analyzeStations(ctx context.Context, home string, stations []models.Station, morning bool) (*models.TransitAnalysis, bool) {
	if len(stations) == 0 {
		log.Debug().Str("address", home).Msg("no stations found near address")
		return nil, false
	}

	arrival, err := a.TargetArrival(morning)
	if err != nil {
		log.Error().Err(err).Msg("error computing target arrival")
		return nil, false
	}

	loc := a.cfg.Location()
	commuteType := models.CommuteTypeEvening
	if morning {
		commuteType = models.CommuteTypeMorning
	}

	var options []*models.TransitAnalysis
	for _, station := range orderStations(stations, a.cfg.PreferredStation, a.cfg.FallbackStations) {
		if ctx.Err() != nil {
			break
		}
		log.Debug().Str("station", station.Name).Str("commute_type", commuteType).Msg("analyzing station")

		opt, ok := a.TransitOption(ctx, station, arrival, morning)
		if !ok {
			log.Debug().Str("station", station.Name).Msg("no valid transit routes found")
			continue
		}

		driveDeparture := opt.Departure
		if !morning {
			driveDeparture = opt.Arrival
		}
		drive, ok := a.DriveToStation(ctx, home, station, driveDeparture, morning)
		if !ok {
			continue
		}

		leave := opt.Departure.In(loc)
		if morning {
			leave = leave.Add(-time.Duration(drive.Minutes * float64(time.Minute)))
		}

		options = append(options, &models.TransitAnalysis{
			HomeAddress:        home,
			StationName:        station.Name,
			StationAddress:     station.Vicinity,
			DestinationStation: opt.DestinationStation,
			DriveTimeMins:      models.Round(drive.Minutes, 1),
			DriveDistanceMiles: models.Round(drive.Miles, 1),
			TransitTimeMins:    models.Round(opt.TransitMins, 1),
			WalkTimeMins:       models.Round(opt.WalkMins, 1),
			WalkDistanceMiles:  models.Round(opt.WalkMiles, 2),
			TotalTimeMins:      models.Round(drive.Minutes+opt.TransitMins+opt.WalkMins, 1),
			Transfers:          int64(opt.Transfers),
			ArrivalTime:        models.ClockTime(opt.Arrival.In(loc)),
			DepartureTime:      models.DepartureLabel(leave, morning),
			CommuteType:        commuteType,
			RunID:              a.runID,
		})
	}

	best := chooseBest(options)
	return best, best != nil
}

// RunTransit analyses every address morning then evening and returns rows sorted for output.
func (a *Analyzer) RunTransit(ctx context.Context, addrs []models.Address, progress io.Writer) []*models.TransitAnalysis {
	bar := newProgress(progress, len(addrs), "Analyzing commutes")

	var rows []*models.TransitAnalysis
	for _, addr := range addrs {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msg("transit run interrupted")
			break
		}

		stations := a.FindNearbyStations(ctx, addr.Address)
		for _, morning := range []bool{true, false} {
			if row, ok := a.analyzeStations(ctx, addr.Address, stations, morning); ok {
				rows = append(rows, row)
			}
		}
		_ = bar.Add(1)
	}

	SortAnalyses(rows)
	return rows
}
