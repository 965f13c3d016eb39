package records

import (
	"sort"
	"strings"
)

// Medicine es una fila del catálogo síntoma -> medicamento.
type Medicine struct {
	Index    int    `json:"index"`
	Symptom  string `json:"symptom"`
	Medicine string `json:"medicine"`
	Dosage   string `json:"dosage"`
	Notes    string `json:"notes"`
}

var medicineCatalog = []Medicine{
	{Symptom: "Fever", Medicine: "Paracetamol / Acetaminophen", Dosage: "10-15 mg/kg", Notes: "Effective for fever reduction"},
	{Symptom: "Cough", Medicine: "Terramycin / Oxytetracycline", Dosage: "50-100 mg/kg", Notes: "Broad-spectrum antibiotic"},
	{Symptom: "Diarrhea", Medicine: "Gatorade / Electrolyte Solution", Dosage: "Ad libitum", Notes: "Rehydration solution"},
	{Symptom: "Respiratory Infection", Medicine: "Enrofloxacin (Baytril)", Dosage: "10 mg/kg", Notes: "Fluoroquinolone antibiotic"},
	{Symptom: "Bacterial Infection", Medicine: "Amoxicillin", Dosage: "15 mg/kg", Notes: "General bacterial infection"},
	{Symptom: "Vitamin Deficiency", Medicine: "Vitamin B Complex", Dosage: "Follow label", Notes: "Improve immunity"},
	{Symptom: "Worm Infestation", Medicine: "Levamisole", Dosage: "5-10 mg/kg", Notes: "Deworming agent"},
	{Symptom: "Wounds/Cuts", Medicine: "Hydrogen Peroxide + Iodine", Dosage: "Topical", Notes: "Disinfection"},
	{Symptom: "Lameness", Medicine: "Vitamin A + Calcium", Dosage: "Follow label", Notes: "Bone health"},
}

func init() {
	for i := range medicineCatalog {
		medicineCatalog[i].Index = i
	}
}

// SearchMedicines filtra por síntoma (contains, case-insensitive). Query vacía => todo.
func SearchMedicines(symptomQuery string) []Medicine {
	q := strings.ToLower(strings.TrimSpace(symptomQuery))
	out := make([]Medicine, 0, len(medicineCatalog))
	for _, m := range medicineCatalog {
		if q == "" || strings.Contains(strings.ToLower(m.Symptom), q) {
			out = append(out, m)
		}
	}
	return out
}

// MedicineAt devuelve la fila por índice del catálogo.
func MedicineAt(i int) (Medicine, bool) {
	if i < 0 || i >= len(medicineCatalog) {
		return Medicine{}, false
	}
	return medicineCatalog[i], true
}

// Symptoms devuelve los síntomas únicos, ordenados.
func Symptoms() []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(medicineCatalog))
	for _, m := range medicineCatalog {
		if m.Symptom == "" {
			continue
		}
		if _, ok := seen[m.Symptom]; ok {
			continue
		}
		seen[m.Symptom] = struct{}{}
		out = append(out, m.Symptom)
	}
	sort.Strings(out)
	return out
}

// DosageOptions: dosis únicas de los medicamentos cuyo nombre contiene la query.
func DosageOptions(medicineQuery string) []string {
	q := strings.ToLower(strings.TrimSpace(medicineQuery))
	if q == "" {
		return []string{}
	}
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, m := range medicineCatalog {
		if !strings.Contains(strings.ToLower(m.Medicine), q) || m.Dosage == "" {
			continue
		}
		if _, ok := seen[m.Dosage]; ok {
			continue
		}
		seen[m.Dosage] = struct{}{}
		out = append(out, m.Dosage)
	}
	return out
}
