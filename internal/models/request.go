package models

import "fmt"

// ChatRequest is a medical query submitted to the answering pipeline.
type ChatRequest struct {
	Query string `json:"query"`
}

// Validate ensures the request has a non-empty query.
func (r *ChatRequest) Validate() error {
	if r.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}
	return nil
}

// ChatResponse is the full pipeline result for a query.
// Medicines is nil when neither extraction strategy found entries.
type ChatResponse struct {
	Answer         string           `json:"answer"`
	Sources        []*ScoredSource  `json:"sources"`
	Medicines      []*MedicineEntry `json:"medicines"`
	SpecialistType string           `json:"specialist_type"`
}

// DoctorRequest asks for specialist facilities near a free-text location.
type DoctorRequest struct {
	Query    string `json:"query"`
	Location string `json:"location"`
}

// Validate ensures the request has a location. An empty query is allowed and
// classifies to the default specialization.
func (r *DoctorRequest) Validate() error {
	if r.Location == "" {
		return fmt.Errorf("location cannot be empty")
	}
	return nil
}

// DoctorResponse echoes the requested location alongside resolved facilities.
// Doctors may be empty when geocoding or the facility lookup found nothing.
type DoctorResponse struct {
	Doctors        []*Facility `json:"doctors"`
	Location       string      `json:"location"`
	Specialization string      `json:"specialization"`
}
