// Package medicine extracts medicine mentions from generated answers, with a
// fallback scan over retrieved sources when the answer yields nothing.
package medicine

import (
	"regexp"
	"strings"

	"github.com/truthtriage/truthtriage/internal/models"
	"github.com/truthtriage/truthtriage/pkg/utils"
)

// answerSourceLabel marks entries extracted from the generated answer rather
// than a specific corpus document.
const answerSourceLabel = "Verified Sources"

const (
	minNameLen  = 2  // exclusive
	maxNameLen  = 60 // exclusive
	maxUsageLen = 200
)

// sectionHeaders are answer-template labels that match the extraction patterns
// but are not medicines.
var sectionHeaders = map[string]struct{}{
	"risk level":             {},
	"condition analysis":     {},
	"recommended specialist": {},
	"suggested medicines":    {},
	"precautions":            {},
	"recommendation":         {},
	"medicine name":          {},
	"note":                   {},
	"important":              {},
	"warning":                {},
	"low":                    {},
	"moderate":               {},
	"high":                   {},
	"query":                  {},
	"response":               {},
	"retrieved context":      {},
}

// Extraction patterns, tried in order against the full answer text. All three
// share one dedup set, so the earliest pattern to find a name wins.
var (
	// **MedicineName** — usage
	boldPattern = regexp.MustCompile(`\*\*([A-Za-z][A-Za-z\s\-/()0-9]+?)\*\*\s*[—\-–:]+\s*(.+?)(?:\n|$)`)
	// - MedicineName: usage  or  - MedicineName (usage)
	bulletPattern = regexp.MustCompile(`[-•*]\s+([A-Z][A-Za-z\s\-/]+?)\s*[:(]\s*(.+?)(?:\)|\n|$)`)
	// 1. MedicineName - usage
	numberedPattern = regexp.MustCompile(`\d+\.\s+\*?\*?([A-Z][A-Za-z\s\-/]+?)\*?\*?\s*[-–—:]\s*(.+?)(?:\n|$)`)
)

// ExtractFromAnswer parses medicine entries out of the generated answer text.
// Returns nil when nothing matches.
func ExtractFromAnswer(text string) []*models.MedicineEntry {
	var medicines []*models.MedicineEntry
	seen := make(map[string]struct{})

	for _, pattern := range []*regexp.Regexp{boldPattern, bulletPattern, numberedPattern} {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			usage := strings.TrimSpace(m[2])
			lower := strings.ToLower(name)
			if _, isHeader := sectionHeaders[lower]; isHeader {
				continue
			}
			if len(name) <= minNameLen || len(name) >= maxNameLen {
				continue
			}
			if _, dup := seen[lower]; dup {
				continue
			}
			seen[lower] = struct{}{}
			medicines = append(medicines, &models.MedicineEntry{
				Name:   name,
				Usage:  utils.Truncate(usage, maxUsageLen),
				Source: answerSourceLabel,
			})
		}
	}
	return medicines
}
