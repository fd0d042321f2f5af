package mapsapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chrisdamba/commutetracker/internal/models"
	"github.com/chrisdamba/commutetracker/internal/platform/obs"
	"googlemaps.github.io/maps"
)

type GoogleProvider struct {
	client  *maps.Client
	timeout time.Duration
}

type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

func WithHTTPClient(c *http.Client) Option { return func(o *options) { o.httpClient = c } }

// WithTimeout bounds every outbound call. Zero disables the bound.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

func NewGoogleProvider(apiKey string, opts ...Option) (*GoogleProvider, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	clientOpts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(o.baseURL))
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, maps.WithHTTPClient(o.httpClient))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("mapsapi: new client: %w", err)
	}

	return &GoogleProvider{client: client, timeout: o.timeout}, nil
}

func (p *GoogleProvider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

func (p *GoogleProvider) Geocode(ctx context.Context, address string) (loc models.Location, err error) {
	defer obs.Time(ctx, "geocode")(&err)

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	results, err := p.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return models.Location{}, fmt.Errorf("geocode: %q: %w", address, err)
	}
	if len(results) == 0 {
		return models.Location{}, fmt.Errorf("geocode: %q: %w", address, ErrNoResults)
	}

	return fromLatLng(results[0].Geometry.Location), nil
}

func (p *GoogleProvider) NearbyStations(ctx context.Context, center models.Location, radiusM int, keyword string) (stations []models.Station, err error) {
	defer obs.Time(ctx, "nearby_search")(&err)

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	resp, err := p.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: toLatLng(center),
		Radius:   uint(radiusM),
		Keyword:  keyword,
		Type:     maps.PlaceTypeTrainStation,
	})
	if err != nil {
		return nil, fmt.Errorf("nearby search: %s: %w", center, err)
	}

	stations = make([]models.Station, 0, len(resp.Results))
	for _, r := range resp.Results {
		stations = append(stations, models.Station{
			Name:     r.Name,
			Vicinity: r.Vicinity,
			PlaceID:  r.PlaceID,
			Location: fromLatLng(r.Geometry.Location),
		})
	}
	return stations, nil
}

func (p *GoogleProvider) Directions(ctx context.Context, q DirectionsQuery) (routes []models.Route, err error) {
	defer obs.Time(ctx, "directions")(&err)

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	req := &maps.DirectionsRequest{
		Origin:       q.Origin,
		Destination:  q.Destination,
		Mode:         toMode(q.Mode),
		Alternatives: q.Alternatives,
	}
	if !q.DepartureTime.IsZero() {
		req.DepartureTime = unixString(q.DepartureTime)
	}
	if !q.ArrivalTime.IsZero() {
		req.ArrivalTime = unixString(q.ArrivalTime)
	}
	if q.RailOnly {
		req.TransitMode = []maps.TransitMode{maps.TransitModeRail}
	}
	if q.BestGuess {
		if req.DepartureTime == "" {
			req.DepartureTime = "now"
		}
		req.TrafficModel = maps.TrafficModelBestGuess
	}

	res, _, err := p.client.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("directions: %s -> %s: %w", q.Origin, q.Destination, err)
	}

	routes = make([]models.Route, 0, len(res))
	for i := range res {
		routes = append(routes, fromRoute(&res[i]))
	}
	return routes, nil
}

// DistanceMatrix looks up a single origin/destination cell. A zero departure means "now".
func (p *GoogleProvider) DistanceMatrix(ctx context.Context, origin, destination string, departure time.Time) (el models.MatrixElement, err error) {
	defer obs.Time(ctx, "distance_matrix")(&err)

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	dep := "now"
	if !departure.IsZero() {
		dep = unixString(departure)
	}

	resp, err := p.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:       []string{origin},
		Destinations:  []string{destination},
		Mode:          maps.TravelModeDriving,
		DepartureTime: dep,
		TrafficModel:  maps.TrafficModelBestGuess,
	})
	if err != nil {
		return models.MatrixElement{}, fmt.Errorf("distance matrix: %s -> %s: %w", origin, destination, err)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return models.MatrixElement{}, fmt.Errorf("distance matrix: %s -> %s: %w", origin, destination, ErrNoResults)
	}

	e := resp.Rows[0].Elements[0]
	return models.MatrixElement{
		Status:            e.Status,
		Duration:          e.Duration,
		DurationInTraffic: e.DurationInTraffic,
		DistanceM:         e.Distance.Meters,
	}, nil
}

func unixString(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
