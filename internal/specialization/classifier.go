// Package specialization maps medical queries to doctor specializations.
package specialization

import "strings"

// DefaultSpecialization is returned when no keyword matches.
const DefaultSpecialization = "general physician"

// mapping pairs a query keyword with the specialization it implies.
type mapping struct {
	keyword        string
	specialization string
}

// mappings is checked in order; the first keyword found as a substring of the
// lowercased query wins. Specific complaints come first, broad catch-alls like
// "pain" and "medicine" last so they only apply when nothing else matched.
var mappings = []mapping{
	{"heart", "cardiologist"},
	{"cardiac", "cardiologist"},
	{"chest pain", "cardiologist"},
	{"blood pressure", "cardiologist"},
	{"hypertension", "cardiologist"},
	{"palpitation", "cardiologist"},
	{"skin", "dermatologist"},
	{"rash", "dermatologist"},
	{"acne", "dermatologist"},
	{"eczema", "dermatologist"},
	{"bone", "orthopedic"},
	{"joint", "orthopedic"},
	{"fracture", "orthopedic"},
	{"arthritis", "orthopedic"},
	{"back pain", "orthopedic"},
	{"brain", "neurologist"},
	{"nerve", "neurologist"},
	{"headache", "neurologist"},
	{"migraine", "neurologist"},
	{"seizure", "neurologist"},
	{"stroke", "neurologist"},
	{"eye", "ophthalmologist"},
	{"vision", "ophthalmologist"},
	{"ear", "ent"},
	{"nose", "ent"},
	{"throat", "ent"},
	{"sinus", "ent"},
	{"child", "pediatrician"},
	{"infant", "pediatrician"},
	{"baby", "pediatrician"},
	{"kidney", "nephrologist"},
	{"urine", "urologist"},
	{"prostate", "urologist"},
	{"diabetes", "endocrinologist"},
	{"thyroid", "endocrinologist"},
	{"hormone", "endocrinologist"},
	{"cancer", "oncologist"},
	{"tumor", "oncologist"},
	{"lung", "pulmonologist"},
	{"breathing", "pulmonologist"},
	{"asthma", "pulmonologist"},
	{"stomach", "gastroenterologist"},
	{"liver", "hepatologist"},
	{"digestion", "gastroenterologist"},
	{"ulcer", "gastroenterologist"},
	{"teeth", "dentist"},
	{"dental", "dentist"},
	{"tooth", "dentist"},
	{"mental", "psychiatrist"},
	{"depression", "psychiatrist"},
	{"anxiety", "psychiatrist"},
	{"insomnia", "psychiatrist"},
	{"pregnancy", "gynecologist"},
	{"woman", "gynecologist"},
	{"menstrual", "gynecologist"},
	{"allergy", "allergist"},
	{"fever", "general physician"},
	{"cold", "general physician"},
	{"cough", "general physician"},
	{"infection", "general physician"},
	{"pain", "general physician"},
	{"medicine", "general physician"},
	{"drug", "general physician"},
}

// Classify returns the specialization for a medical query.
// Matching is case-insensitive substring; ties go to the earlier mapping so
// "heart pain" resolves to cardiologist, not general physician.
func Classify(query string) string {
	q := strings.ToLower(query)
	for _, m := range mappings {
		if strings.Contains(q, m.keyword) {
			return m.specialization
		}
	}
	return DefaultSpecialization
}
