package analyzer

import (
	"sort"
	"strings"
	"time"

	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/rs/zerolog/log"
)

// TransitOption is the evaluated form of one rail alternative.
type TransitOption struct {
	Route              models.Route
	TransitMins        float64
	WalkMins           float64
	WalkMiles          float64
	Transfers          int
	DestinationStation string
	Departure          time.Time
	Arrival            time.Time
}

func (o TransitOption) Minutes() float64 {
	return o.TransitMins + o.WalkMins
}

// hasAllowedLine reports whether any transit step runs on an allowed line.
// An empty allow-list accepts every line.
func hasAllowedLine(steps []models.Step, allowed []string) bool {
	if len(allowed) == 0 {
		return len(steps) > 0
	}
	for _, s := range steps {
		for _, line := range allowed {
			if strings.Contains(s.LineName, line) {
				return true
			}
		}
	}
	return false
}

// evaluateRoute reduces a directions route to a TransitOption, rejecting routes without an allowed line.
func evaluateRoute(r models.Route, allowed []string) (TransitOption, bool) {
	transit := r.TransitSteps()
	for _, s := range transit {
		log.Debug().
			Str("line", s.LineName).
			Str("vehicle", s.VehicleName).
			Str("from", s.DepartureStop).
			Str("to", s.ArrivalStop).
			Msg("transit step")
	}

	if !hasAllowedLine(transit, allowed) {
		log.Debug().Str("route", r.Summary).Msg("rejected: no allowed rail line")
		return TransitOption{}, false
	}

	opt := TransitOption{
		Route:              r,
		Transfers:          len(transit) - 1,
		DestinationStation: transit[len(transit)-1].ArrivalStop,
	}
	for _, s := range transit {
		opt.TransitMins += s.Duration.Minutes()
	}
	for _, s := range r.FinalWalk() {
		opt.WalkMins += s.Duration.Minutes()
		opt.WalkMiles += models.MetersToMiles(s.DistanceM)
	}

	if len(r.Legs) > 0 {
		opt.Departure = r.Legs[0].DepartureTime
		opt.Arrival = r.Legs[len(r.Legs)-1].ArrivalTime
	}

	log.Debug().
		Float64("transit_mins", opt.TransitMins).
		Float64("walk_mins", opt.WalkMins).
		Msg("valid route found")
	return opt, true
}

// bestRoute picks the allowed alternative with the least transit plus final walk time.
func bestRoute(routes []models.Route, allowed []string) (TransitOption, bool) {
	var best TransitOption
	found := false
	for _, r := range routes {
		opt, ok := evaluateRoute(r, allowed)
		if !ok {
			continue
		}
		if !found || opt.Minutes() < best.Minutes() {
			best, found = opt, true
		}
	}
	return best, found
}

// chooseBest prefers fewer transfers, then the shorter total time. Earlier candidates win ties.
func chooseBest(rows []*models.TransitAnalysis) *models.TransitAnalysis {
	var best *models.TransitAnalysis
	for _, r := range rows {
		if best == nil ||
			r.Transfers < best.Transfers ||
			(r.Transfers == best.Transfers && r.TotalTimeMins < best.TotalTimeMins) {
			best = r
		}
	}
	return best
}

// orderStations applies the preferred and fallback station names. When any of them
// match, only the matching stations are returned, in preference order.
func orderStations(stations []models.Station, preferred string, fallbacks []string) []models.Station {
	var names []string
	if p := strings.TrimSpace(preferred); p != "" {
		names = append(names, p)
	}
	names = append(names, fallbacks...)
	if len(names) == 0 {
		return stations
	}

	used := make(map[int]bool)
	var out []models.Station
	for _, name := range names {
		needle := strings.ToLower(name)
		for i, s := range stations {
			if used[i] || !strings.Contains(strings.ToLower(s.Name), needle) {
				continue
			}
			used[i] = true
			out = append(out, s)
		}
	}

	if len(out) == 0 {
		return stations
	}
	return out
}

func commuteRank(t string) int {
	if t == models.CommuteTypeMorning {
		return 0
	}
	return 1
}

// SortAnalyses orders rows by home address, then Morning before Evening.
func SortAnalyses(rows []*models.TransitAnalysis) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].HomeAddress != rows[j].HomeAddress {
			return rows[i].HomeAddress < rows[j].HomeAddress
		}
		return commuteRank(rows[i].CommuteType) < commuteRank(rows[j].CommuteType)
	})
}
