// Package geo resolves locations and nearby healthcare facilities using
// OpenStreetMap services (Nominatim for geocoding, Overpass for facility search).
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/truthtriage/truthtriage/internal/models"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultOverpassURL  = "https://overpass-api.de/api/interpreter"
	defaultUserAgent    = "TruthTriageHealthApp/1.0"
)

// Client talks to Nominatim and Overpass. Both services require a descriptive
// User-Agent; requests without one get rate-limited aggressively.
type Client struct {
	nominatimURL string
	overpassURL  string
	userAgent    string
	httpClient   *http.Client
	logger       *zap.Logger // optional
}

// ClientConfig configures a geo client.
type ClientConfig struct {
	NominatimURL string
	OverpassURL  string
	UserAgent    string
	Timeout      time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets a logger for error reporting.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a geo client with defaults for any unset config field.
func NewClient(cfg ClientConfig, opts ...Option) *Client {
	if cfg.NominatimURL == "" {
		cfg.NominatimURL = defaultNominatimURL
	}
	if cfg.OverpassURL == "" {
		cfg.OverpassURL = defaultOverpassURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	c := &Client{
		nominatimURL: cfg.NominatimURL,
		overpassURL:  cfg.OverpassURL,
		userAgent:    cfg.UserAgent,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-form location name to coordinates. Returns nil
// coordinates (not an error) when the location cannot be resolved; callers
// treat that as "unknown place".
func (c *Client) Geocode(ctx context.Context, location string) (*models.Coordinates, error) {
	places, err := c.nominatimSearch(ctx, location, 1)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", places[0].Lon, err)
	}
	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}

// SearchFacilitiesByText is the last-resort lookup: a free-text Nominatim
// search for "<specialization> doctor in <location>", capped at limit results.
// The returned facilities carry only a display name and coordinates.
func (c *Client) SearchFacilitiesByText(ctx context.Context, specialization, location string, limit int) ([]*models.Facility, error) {
	query := fmt.Sprintf("%s doctor in %s", specialization, location)
	places, err := c.nominatimSearch(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	facilities := make([]*models.Facility, 0, len(places))
	for _, p := range places {
		lat, latErr := strconv.ParseFloat(p.Lat, 64)
		lon, lonErr := strconv.ParseFloat(p.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		name := p.DisplayName
		if name == "" {
			name = "Unknown"
		}
		facilities = append(facilities, &models.Facility{
			Name:           name,
			Specialization: specialization,
			Latitude:       lat,
			Longitude:      lon,
		})
	}
	return facilities, nil
}

func (c *Client) nominatimSearch(ctx context.Context, query string, limit int) ([]nominatimPlace, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nominatimURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned %s", resp.Status)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}
	return places, nil
}
