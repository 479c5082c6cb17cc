package models

// MedicineEntry is one structured medicine suggestion parsed out of an answer
// or out of retrieved source text. Within a single extraction no two entries
// share a case-insensitive name.
type MedicineEntry struct {
	Name   string `json:"name"`
	Usage  string `json:"usage"`
	Source string `json:"source"`
}
