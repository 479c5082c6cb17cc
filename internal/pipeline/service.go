// Package pipeline wires retrieval, synthesis, extraction, classification,
// and facility resolution into the two top-level operations: answering a
// medical query and finding specialist facilities.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/truthtriage/truthtriage/internal/geo"
	"github.com/truthtriage/truthtriage/internal/medicine"
	"github.com/truthtriage/truthtriage/internal/models"
	"github.com/truthtriage/truthtriage/internal/retrieval"
	"github.com/truthtriage/truthtriage/internal/specialization"
	"github.com/truthtriage/truthtriage/internal/synthesis"
)

// Service runs the full question answering pipeline. All request state is
// local to each call; the service is safe for concurrent use.
type Service struct {
	ranker      *retrieval.Ranker
	synthesizer *synthesis.Synthesizer
	resolver    *geo.Resolver
	logger      *zap.Logger // optional
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a logger for request-level events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates the pipeline service.
func NewService(ranker *retrieval.Ranker, synthesizer *synthesis.Synthesizer, resolver *geo.Resolver, opts ...Option) *Service {
	s := &Service{
		ranker:      ranker,
		synthesizer: synthesizer,
		resolver:    resolver,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer runs a query through retrieval, synthesis, and medicine extraction.
// Failures along the way degrade instead of erroring: retrieval failure yields
// an error-flagged answer with no sources, generation failure yields an
// error-flagged answer with sources intact.
func (s *Service) Answer(ctx context.Context, query string) *models.ChatResponse {
	specialistType := specialization.Classify(query)

	res, err := s.ranker.Retrieve(ctx, query)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("retrieval failed", zap.Error(err))
		}
		return &models.ChatResponse{
			Answer:         "Error processing query: " + err.Error(),
			Sources:        []*models.ScoredSource{},
			SpecialistType: specialistType,
		}
	}

	answer := s.synthesizer.Answer(ctx, query, res.Chunks)

	medicines := medicine.ExtractFromAnswer(answer)
	if len(medicines) == 0 && len(res.Sources) > 0 {
		medicines = medicine.ExtractFromSources(res.Sources)
	}
	if len(medicines) == 0 {
		medicines = nil
	}

	return &models.ChatResponse{
		Answer:         answer,
		Sources:        res.Sources,
		Medicines:      medicines,
		SpecialistType: specialistType,
	}
}

// FindFacilities resolves specialist facilities near a named location. The
// specialization comes from classifying the query; resolution failures yield
// an empty doctors list.
func (s *Service) FindFacilities(ctx context.Context, query, location string) *models.DoctorResponse {
	spec := specialization.Classify(query)
	doctors := s.resolver.Resolve(ctx, spec, location)
	if doctors == nil {
		doctors = []*models.Facility{}
	}
	return &models.DoctorResponse{
		Doctors:        doctors,
		Location:       location,
		Specialization: spec,
	}
}
