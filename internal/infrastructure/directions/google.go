package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/core/geo"
	"github.com/nearshop/geocore/internal/core/ports"
)

const (
	defaultBaseURL = "https://maps.googleapis.com"
	defaultTimeout = 10 * time.Second

	statusOK = "OK"
)

// Config captures the settings for talking to the Google Maps web APIs.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// GoogleClient implements ports.Directions against the Google Maps
// Geocoding and Directions web APIs. A non-"OK" provider status is a
// failure even when the HTTP layer returned 200.
type GoogleClient struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewGoogleClient builds a client with sane defaults for anything left
// unset in cfg.
func NewGoogleClient(cfg Config, log zerolog.Logger) *GoogleClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GoogleClient{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// --- Provider response shapes ---

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress  string             `json:"formatted_address"`
		AddressComponents []addressComponent `json:"address_components"`
		Geometry          struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
			StartAddress string `json:"start_address"`
			EndAddress   string `json:"end_address"`
		} `json:"legs"`
	} `json:"routes"`
}

// Geocode resolves a free-text address to a coordinate.
func (g *GoogleClient) Geocode(ctx context.Context, address string) (*ports.GeocodeResult, error) {
	q := url.Values{}
	q.Set("address", address)

	var resp geocodeResponse
	if err := g.getJSON(ctx, "/maps/api/geocode/json", q, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeocodeFailed, err)
	}
	if resp.Status != statusOK || len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: provider status %s", domain.ErrGeocodeFailed, resp.Status)
	}

	best := resp.Results[0]
	return &ports.GeocodeResult{
		Coordinate: domain.Coordinate{
			Lat: best.Geometry.Location.Lat,
			Lng: best.Geometry.Location.Lng,
		},
		FormattedAddress: best.FormattedAddress,
		Components:       toComponents(best.AddressComponents),
	}, nil
}

// ReverseGeocode resolves a coordinate to its nearest street address.
func (g *GoogleClient) ReverseGeocode(ctx context.Context, at domain.Coordinate) (*ports.ReverseGeocodeResult, error) {
	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%f,%f", at.Lat, at.Lng))

	var resp geocodeResponse
	if err := g.getJSON(ctx, "/maps/api/geocode/json", q, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeocodeFailed, err)
	}
	if resp.Status != statusOK || len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: provider status %s", domain.ErrGeocodeFailed, resp.Status)
	}

	best := resp.Results[0]
	return &ports.ReverseGeocodeResult{
		Address:    best.FormattedAddress,
		Components: toComponents(best.AddressComponents),
	}, nil
}

// Route asks for a driving route between two coordinates.
func (g *GoogleClient) Route(ctx context.Context, from, to domain.Coordinate) (*domain.RouteSummary, error) {
	q := url.Values{}
	q.Set("origin", fmt.Sprintf("%f,%f", from.Lat, from.Lng))
	q.Set("destination", fmt.Sprintf("%f,%f", to.Lat, to.Lng))
	q.Set("mode", "driving")

	var resp directionsResponse
	if err := g.getJSON(ctx, "/maps/api/directions/json", q, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRouteFailed, err)
	}
	if resp.Status != statusOK || len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("%w: provider status %s", domain.ErrRouteFailed, resp.Status)
	}

	route := resp.Routes[0]
	leg := route.Legs[0]

	path, err := geo.DecodePolyline(route.OverviewPolyline.Points)
	if err != nil {
		// A corrupt polyline degrades the drawn path, not the summary.
		g.log.Warn().Err(err).Msg("overview polyline decode failed")
		path = []domain.Coordinate{from, to}
	}

	return &domain.RouteSummary{
		DistanceText: leg.Distance.Text,
		DurationText: leg.Duration.Text,
		StartAddress: leg.StartAddress,
		EndAddress:   leg.EndAddress,
		Polyline:     path,
	}, nil
}

// getJSON performs a GET against the provider and decodes the body.
func (g *GoogleClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := g.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func toComponents(in []addressComponent) []ports.AddressComponent {
	out := make([]ports.AddressComponent, 0, len(in))
	for _, comp := range in {
		out = append(out, ports.AddressComponent{
			LongName:  comp.LongName,
			ShortName: comp.ShortName,
			Types:     comp.Types,
		})
	}
	return out
}
