package models

// Coordinates is a geocoded point. Callers receive *Coordinates; nil means the
// location could not be resolved, which is a valid non-error state.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Facility is a healthcare facility resolved from external geodata.
// Facilities are created per lookup and never persisted.
type Facility struct {
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Address        string  `json:"address,omitempty"`
	Phone          string  `json:"phone,omitempty"`
}
