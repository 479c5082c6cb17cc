package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/truthtriage/truthtriage/internal/models"
)

// fakeOSM serves canned Nominatim and Overpass responses.
type fakeOSM struct {
	nominatim *httptest.Server
	overpass  *httptest.Server

	geocodeHits  []map[string]string
	textHits     []map[string]string
	overpassBody overpassResponse

	overpassCalls  int
	nominatimCalls int
}

func newFakeOSM(t *testing.T) *fakeOSM {
	t.Helper()
	f := &fakeOSM{}
	f.nominatim = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.nominatimCalls++
		if r.Header.Get("User-Agent") == "" {
			t.Error("nominatim request missing User-Agent")
		}
		// geocoding asks for a single hit; the free-text fallback asks for more
		hits := f.geocodeHits
		if r.URL.Query().Get("limit") != "1" {
			hits = f.textHits
		}
		_ = json.NewEncoder(w).Encode(hits)
	}))
	f.overpass = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.overpassCalls++
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("data") == "" {
			t.Error("overpass request missing data field")
		}
		_ = json.NewEncoder(w).Encode(f.overpassBody)
	}))
	t.Cleanup(func() {
		f.nominatim.Close()
		f.overpass.Close()
	})
	return f
}

func (f *fakeOSM) client() *Client {
	return NewClient(ClientConfig{
		NominatimURL: f.nominatim.URL,
		OverpassURL:  f.overpass.URL,
	})
}

func TestResolver_radiusSearch(t *testing.T) {
	f := newFakeOSM(t)
	f.geocodeHits = []map[string]string{{"lat": "12.9716", "lon": "77.5946"}}
	f.overpassBody = overpassResponse{Elements: []overpassElement{
		{
			Lat: 12.97, Lon: 77.59,
			Tags: map[string]string{
				"name":        "City Heart Clinic",
				"addr:street": "MG Road",
				"addr:city":   "Bengaluru",
				"phone":       "+91 80 1234",
			},
		},
		{
			Center: &overpassCenter{Lat: 12.96, Lon: 77.60},
			Tags: map[string]string{
				"operator":              "Apollo",
				"healthcare:speciality": "cardiologist;general",
			},
		},
	}}

	r := NewResolver(f.client(), ResolverConfig{}, nil)
	facilities := r.Resolve(context.Background(), "cardiologist", "Bengaluru")
	if len(facilities) != 2 {
		t.Fatalf("got %d facilities", len(facilities))
	}
	if facilities[0].Name != "City Heart Clinic" {
		t.Errorf("name = %q", facilities[0].Name)
	}
	if facilities[0].Address != "MG Road, Bengaluru" {
		t.Errorf("address = %q", facilities[0].Address)
	}
	if facilities[0].Phone != "+91 80 1234" {
		t.Errorf("phone = %q", facilities[0].Phone)
	}
	// requested specialization matches the facility tags
	if facilities[1].Specialization != "cardiologist" {
		t.Errorf("specialization = %q", facilities[1].Specialization)
	}
	// way element takes centroid coordinates
	if facilities[1].Latitude != 12.96 || facilities[1].Longitude != 77.60 {
		t.Errorf("coordinates = %v, %v", facilities[1].Latitude, facilities[1].Longitude)
	}
	if facilities[1].Name != "Apollo" {
		t.Errorf("operator fallback name = %q", facilities[1].Name)
	}
}

func TestResolver_unknownLocationEmptyList(t *testing.T) {
	f := newFakeOSM(t)
	f.geocodeHits = nil // nominatim finds nothing

	r := NewResolver(f.client(), ResolverConfig{}, nil)
	facilities := r.Resolve(context.Background(), "dermatologist", "Nowhereville")
	if facilities == nil {
		t.Fatal("expected empty list, got nil")
	}
	if len(facilities) != 0 {
		t.Errorf("got %d facilities", len(facilities))
	}
	if f.overpassCalls != 0 {
		t.Error("overpass should not be queried when geocoding fails")
	}
}

func TestResolver_freeTextFallback(t *testing.T) {
	f := newFakeOSM(t)
	f.geocodeHits = []map[string]string{{"lat": "51.5", "lon": "-0.12"}}
	f.overpassBody = overpassResponse{} // no facilities in radius
	f.textHits = []map[string]string{
		{"lat": "51.51", "lon": "-0.11", "display_name": "London Skin Centre, Camden"},
	}

	r := NewResolver(f.client(), ResolverConfig{}, nil)
	facilities := r.Resolve(context.Background(), "dermatologist", "London")
	if len(facilities) != 1 {
		t.Fatalf("got %d facilities", len(facilities))
	}
	if facilities[0].Name != "London Skin Centre, Camden" {
		t.Errorf("name = %q", facilities[0].Name)
	}
	if facilities[0].Specialization != "dermatologist" {
		t.Errorf("specialization = %q", facilities[0].Specialization)
	}
	if f.overpassCalls != 1 {
		t.Errorf("overpass calls = %d", f.overpassCalls)
	}
}

func TestResolver_facilityLimit(t *testing.T) {
	f := newFakeOSM(t)
	f.geocodeHits = []map[string]string{{"lat": "1", "lon": "1"}}
	elements := make([]overpassElement, 20)
	for i := range elements {
		elements[i] = overpassElement{Lat: 1.1, Lon: 1.1, Tags: map[string]string{"name": "Clinic"}}
	}
	f.overpassBody = overpassResponse{Elements: elements}

	r := NewResolver(f.client(), ResolverConfig{MaxFacilities: 15}, nil)
	facilities := r.Resolve(context.Background(), "general physician", "Town")
	if len(facilities) != 15 {
		t.Errorf("got %d facilities, want capped at 15", len(facilities))
	}
}

func TestClient_geocode(t *testing.T) {
	f := newFakeOSM(t)
	f.geocodeHits = []map[string]string{{"lat": "48.8566", "lon": "2.3522"}}

	coords, err := f.client().Geocode(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if coords == nil || coords.Latitude != 48.8566 || coords.Longitude != 2.3522 {
		t.Errorf("coords = %+v", coords)
	}
}

func TestClient_overpassErrorDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{OverpassURL: srv.URL, NominatimURL: srv.URL})
	facilities := c.FindFacilities(context.Background(), models.Coordinates{Latitude: 10, Longitude: 10}, "ent", 5000, 15)
	if facilities != nil {
		t.Errorf("got %+v, want nil on service error", facilities)
	}
}
