package medicine

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/truthtriage/truthtriage/internal/models"
	"github.com/truthtriage/truthtriage/pkg/utils"
)

const maxFallbackEntries = 8

// knownMedicines are common drug names looked for in retrieved source text
// when the answer itself yielded no extractable entries.
var knownMedicines = []string{
	"paracetamol", "acetaminophen", "aspirin", "ibuprofen", "naproxen",
	"diclofenac", "warfarin", "heparin", "metformin", "insulin",
	"amoxicillin", "azithromycin", "ciprofloxacin", "doxycycline",
	"metronidazole", "cephalexin", "penicillin", "erythromycin",
	"omeprazole", "pantoprazole", "ranitidine", "famotidine",
	"atorvastatin", "rosuvastatin", "simvastatin", "losartan",
	"amlodipine", "enalapril", "lisinopril", "ramipril",
	"metoprolol", "atenolol", "propranolol", "carvedilol",
	"hydrochlorothiazide", "furosemide", "spironolactone",
	"prednisolone", "prednisone", "dexamethasone", "hydrocortisone",
	"salbutamol", "albuterol", "montelukast", "fluticasone",
	"cetirizine", "loratadine", "fexofenadine", "chlorpheniramine",
	"morphine", "codeine", "tramadol", "fentanyl",
	"diazepam", "lorazepam", "alprazolam", "clonazepam",
	"sertraline", "fluoxetine", "escitalopram", "paroxetine",
	"gabapentin", "pregabalin", "carbamazepine", "valproate",
	"phenytoin", "levetiracetam", "lamotrigine",
	"levothyroxine", "carbimazole", "propylthiouracil",
	"clopidogrel", "ticagrelor", "rivaroxaban", "apixaban",
	"enoxaparin", "dabigatran", "methotrexate", "hydroxychloroquine",
	"sulfasalazine", "cyclophosphamide", "azathioprine",
	"tacrolimus", "cyclosporine", "mycophenolate",
	"levofloxacin", "moxifloxacin",
	"fluconazole", "ketoconazole", "clotrimazole",
	"acyclovir", "oseltamivir", "tenofovir", "zidovudine",
	"artemether", "lumefantrine", "chloroquine", "quinine",
	"albendazole", "mebendazole", "ivermectin", "praziquantel",
	"ondansetron", "domperidone", "metoclopramide", "loperamide",
	"digoxin", "amiodarone", "verapamil", "diltiazem",
	"nitroglycerin", "isosorbide", "nifedipine", "telmisartan",
	"glimepiride", "glipizide", "gliclazide", "pioglitazone",
	"sitagliptin", "vildagliptin", "empagliflozin", "dapagliflozin",
	"vitamin", "calcium", "iron", "folic acid", "zinc",
}

// dosagePattern matches capitalized words followed by a dose, e.g. "Ibuprofen 400mg".
var dosagePattern = regexp.MustCompile(`\b([A-Z][a-z]{3,20})\s*\d+\s*(?:mg|mcg|ml|g|IU)\b`)

// dosageFormSkip filters dosage-pattern matches that are units, forms, or
// generic dosing words rather than drug names.
var dosageFormSkip = map[string]struct{}{
	"tablet": {}, "tablets": {}, "capsule": {}, "capsules": {}, "injection": {}, "injections": {},
	"syrup": {}, "solution": {}, "suspension": {}, "cream": {}, "ointment": {}, "drops": {},
	"oral": {}, "topical": {}, "each": {}, "dose": {}, "maximum": {}, "minimum": {},
	"adult": {}, "child": {}, "children": {}, "body": {}, "weight": {}, "daily": {},
	"every": {}, "once": {}, "twice": {}, "three": {}, "four": {}, "times": {},
	"contains": {}, "approximately": {}, "about": {}, "less": {}, "more": {}, "than": {},
}

// ExtractFromSources is the fallback path: scan ranked source previews for
// known medicine names and dosage mentions. Sources are walked in rank order
// and the result is capped, so higher-ranked sources fill the slots first.
func ExtractFromSources(sources []*models.ScoredSource) []*models.MedicineEntry {
	var medicines []*models.MedicineEntry
	seen := make(map[string]struct{})
	// Caser carries state and must not be shared between goroutines.
	titleCaser := cases.Title(language.English)

	for _, src := range sources {
		content := src.Content
		if content == "" {
			continue
		}
		sourceName := src.SourceDocumentName()
		contentLower := strings.ToLower(content)

		for _, med := range knownMedicines {
			if _, dup := seen[med]; dup {
				continue
			}
			idx := strings.Index(contentLower, med)
			if idx < 0 {
				continue
			}
			seen[med] = struct{}{}
			medicines = append(medicines, &models.MedicineEntry{
				Name:   titleCaser.String(med),
				Usage:  utils.Truncate(surroundingContext(content, idx, len(med)), maxUsageLen),
				Source: sourceName,
			})
		}

		for _, m := range dosagePattern.FindAllStringSubmatch(content, -1) {
			name := strings.TrimSpace(m[1])
			lower := strings.ToLower(name)
			if _, dup := seen[lower]; dup {
				continue
			}
			if _, skip := dosageFormSkip[lower]; skip {
				continue
			}
			if len(name) <= 3 {
				continue
			}
			seen[lower] = struct{}{}
			idx := strings.Index(content, name)
			medicines = append(medicines, &models.MedicineEntry{
				Name:   name,
				Usage:  utils.Truncate(surroundingContext(content, idx, len(name)), maxUsageLen),
				Source: sourceName,
			})
		}

		if len(medicines) >= maxFallbackEntries {
			break
		}
	}

	if len(medicines) > maxFallbackEntries {
		medicines = medicines[:maxFallbackEntries]
	}
	return medicines
}

// surroundingContext returns the text around a match (20 chars before, 100
// after) with newlines collapsed, as the usage hint for the entry.
func surroundingContext(content string, idx, matchLen int) string {
	start := idx - 20
	if start < 0 {
		start = 0
	}
	end := idx + matchLen + 100
	if end > len(content) {
		end = len(content)
	}
	ctx := strings.ReplaceAll(content[start:end], "\n", " ")
	return strings.TrimSpace(ctx)
}
