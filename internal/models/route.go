package models

import "time"

type TravelMode string

const (
	TravelModeTransit TravelMode = "TRANSIT"
	TravelModeWalking TravelMode = "WALKING"
	TravelModeDriving TravelMode = "DRIVING"
)

// Step mirrors one step of a directions leg. Transit fields are empty for non-transit steps.
type Step struct {
	TravelMode    TravelMode    `json:"travel_mode"`
	Duration      time.Duration `json:"duration"`
	DistanceM     int           `json:"distance_m"`
	Instructions  string        `json:"instructions,omitempty"`
	LineName      string        `json:"line_name,omitempty"`
	VehicleName   string        `json:"vehicle_name,omitempty"`
	DepartureStop string        `json:"departure_stop,omitempty"`
	ArrivalStop   string        `json:"arrival_stop,omitempty"`
}

type Leg struct {
	StartAddress      string        `json:"start_address"`
	EndAddress        string        `json:"end_address"`
	StartLocation     Location      `json:"start_location"`
	EndLocation       Location      `json:"end_location"`
	Duration          time.Duration `json:"duration"`
	DurationInTraffic time.Duration `json:"duration_in_traffic"`
	DistanceM         int           `json:"distance_m"`
	DepartureTime     time.Time     `json:"departure_time"`
	ArrivalTime       time.Time     `json:"arrival_time"`
	Steps             []Step        `json:"steps"`
}

// TrafficDuration prefers the traffic-aware duration when the service returned one.
func (l Leg) TrafficDuration() time.Duration {
	if l.DurationInTraffic > 0 {
		return l.DurationInTraffic
	}
	return l.Duration
}

type Route struct {
	Summary  string     `json:"summary"`
	Legs     []Leg      `json:"legs"`
	Polyline []Location `json:"-"`
}

// TransitSteps returns the route's transit steps in travel order.
func (r Route) TransitSteps() []Step {
	var out []Step
	for _, leg := range r.Legs {
		for _, s := range leg.Steps {
			if s.TravelMode == TravelModeTransit {
				out = append(out, s)
			}
		}
	}
	return out
}

// FinalWalk returns the walking steps that follow the last transit step.
func (r Route) FinalWalk() []Step {
	var steps []Step
	for _, leg := range r.Legs {
		steps = append(steps, leg.Steps...)
	}

	last := -1
	for i, s := range steps {
		if s.TravelMode == TravelModeTransit {
			last = i
		}
	}

	var out []Step
	for _, s := range steps[last+1:] {
		if s.TravelMode == TravelModeWalking {
			out = append(out, s)
		}
	}
	return out
}

// MatrixElement is one origin/destination cell of a distance matrix.
type MatrixElement struct {
	Status            string        `json:"status"`
	Duration          time.Duration `json:"duration"`
	DurationInTraffic time.Duration `json:"duration_in_traffic"`
	DistanceM         int           `json:"distance_m"`
}

func (e MatrixElement) TrafficDuration() time.Duration {
	if e.DurationInTraffic > 0 {
		return e.DurationInTraffic
	}
	return e.Duration
}
