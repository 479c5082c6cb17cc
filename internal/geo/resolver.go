package geo

import (
	"context"

	"go.uber.org/zap"

	"github.com/truthtriage/truthtriage/internal/models"
)

// Resolver finds healthcare facilities for a specialization near a named
// location. It degrades step by step: geocode, then a radius search, then a
// free-text search, then an empty list. It never returns an error; the caller
// always gets a usable (possibly empty) facility list.
type Resolver struct {
	client          *Client
	radiusMeters    int
	maxFacilities   int
	maxTextFallback int
	logger          *zap.Logger // optional
}

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	RadiusMeters    int
	MaxFacilities   int
	MaxTextFallback int
}

// NewResolver creates a resolver over the given client.
func NewResolver(client *Client, cfg ResolverConfig, logger *zap.Logger) *Resolver {
	if cfg.RadiusMeters <= 0 {
		cfg.RadiusMeters = 5000
	}
	if cfg.MaxFacilities <= 0 {
		cfg.MaxFacilities = 15
	}
	if cfg.MaxTextFallback <= 0 {
		cfg.MaxTextFallback = 5
	}
	return &Resolver{
		client:          client,
		radiusMeters:    cfg.RadiusMeters,
		maxFacilities:   cfg.MaxFacilities,
		maxTextFallback: cfg.MaxTextFallback,
		logger:          logger,
	}
}

// Resolve finds facilities for the specialization near the location.
// An unresolvable location yields an empty list, matching the contract that
// facility lookup never fails outright.
func (r *Resolver) Resolve(ctx context.Context, specialization, location string) []*models.Facility {
	coords, err := r.client.Geocode(ctx, location)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("geocoding failed", zap.String("location", location), zap.Error(err))
		}
		return []*models.Facility{}
	}
	if coords == nil {
		if r.logger != nil {
			r.logger.Warn("location not found", zap.String("location", location))
		}
		return []*models.Facility{}
	}

	facilities := r.client.FindFacilities(ctx, *coords, specialization, r.radiusMeters, r.maxFacilities)
	if len(facilities) > 0 {
		return facilities
	}

	fallback, err := r.client.SearchFacilitiesByText(ctx, specialization, location, r.maxTextFallback)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("free-text facility search failed", zap.Error(err))
		}
		return []*models.Facility{}
	}
	if fallback == nil {
		return []*models.Facility{}
	}
	return fallback
}
