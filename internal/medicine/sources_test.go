package medicine

import (
	"strings"
	"testing"

	"github.com/truthtriage/truthtriage/internal/models"
)

func source(content, path string) *models.ScoredSource {
	return &models.ScoredSource{
		Content:  content,
		Metadata: map[string]interface{}{"source": path},
	}
}

func TestExtractFromSources_knownMedicines(t *testing.T) {
	sources := []*models.ScoredSource{
		source("For fever, paracetamol is recommended at standard doses.", "/corpus/who-fever.pdf"),
	}
	meds := ExtractFromSources(sources)
	if len(meds) != 1 {
		t.Fatalf("got %d medicines: %+v", len(meds), meds)
	}
	if meds[0].Name != "Paracetamol" {
		t.Errorf("name = %q, want title-cased Paracetamol", meds[0].Name)
	}
	if meds[0].Source != "who-fever.pdf" {
		t.Errorf("source = %q", meds[0].Source)
	}
	if !strings.Contains(meds[0].Usage, "paracetamol is recommended") {
		t.Errorf("usage context = %q", meds[0].Usage)
	}
}

func TestExtractFromSources_dosagePattern(t *testing.T) {
	sources := []*models.ScoredSource{
		source("Adults may take Brufencap 400 mg every eight hours with food.", "/corpus/pain.pdf"),
	}
	meds := ExtractFromSources(sources)
	if len(meds) != 1 {
		t.Fatalf("got %d medicines: %+v", len(meds), meds)
	}
	if meds[0].Name != "Brufencap" {
		t.Errorf("name = %q", meds[0].Name)
	}
}

func TestExtractFromSources_dosageFormsSkipped(t *testing.T) {
	sources := []*models.ScoredSource{
		source("Each Tablet 500 mg should be swallowed whole. Maximum 4 g daily.", "/corpus/dosing.pdf"),
	}
	if meds := ExtractFromSources(sources); len(meds) != 0 {
		t.Errorf("dosage forms extracted as medicines: %+v", meds)
	}
}

func TestExtractFromSources_dedupAcrossSources(t *testing.T) {
	sources := []*models.ScoredSource{
		source("aspirin thins the blood", "/corpus/a.pdf"),
		source("aspirin is also an analgesic", "/corpus/b.pdf"),
	}
	meds := ExtractFromSources(sources)
	if len(meds) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(meds), meds)
	}
	if meds[0].Source != "a.pdf" {
		t.Errorf("source = %q, want the higher-ranked a.pdf", meds[0].Source)
	}
}

func TestExtractFromSources_capped(t *testing.T) {
	content := "paracetamol aspirin ibuprofen naproxen diclofenac warfarin heparin metformin insulin amoxicillin"
	meds := ExtractFromSources([]*models.ScoredSource{source(content, "/corpus/many.pdf")})
	if len(meds) > 8 {
		t.Errorf("got %d entries, cap is 8", len(meds))
	}
}

func TestExtractFromSources_empty(t *testing.T) {
	if meds := ExtractFromSources(nil); len(meds) != 0 {
		t.Errorf("got %+v", meds)
	}
	if meds := ExtractFromSources([]*models.ScoredSource{source("", "/x.pdf")}); len(meds) != 0 {
		t.Errorf("got %+v", meds)
	}
}
