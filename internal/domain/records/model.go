package records

// Entry es una línea de una colección: campos con nombre -> valores primitivos
// (string, number, date-string). No tiene identidad más allá de su posición.
type Entry map[string]any

// Key identifica una colección persistida. Cada feature es dueño de exactamente una.
type Key string

const (
	KeyTemperature        Key = "daily_temperature_records"
	KeyFeed               Key = "feed_records"
	KeyWaterUsage         Key = "water_usage_records"
	KeyVaccination        Key = "vaccination_records"
	KeyMedicineSuggestion Key = "medicine_suggestions"
	KeyProduction         Key = "production_records"
	KeySubscriptions      Key = "subscriptions"

	// Slots singleton (un solo valor, se sobrescribe al escribir).
	KeyPendingPayment Key = "pending_payment"
	KeyWaterReminder  Key = "water_reminder_time"
)

// AllKeys lista todas las keys del almacenamiento local.
func AllKeys() []Key {
	return []Key{
		KeyTemperature,
		KeyFeed,
		KeyWaterUsage,
		KeyVaccination,
		KeyMedicineSuggestion,
		KeyProduction,
		KeySubscriptions,
		KeyPendingPayment,
		KeyWaterReminder,
	}
}

type FieldKind string

const (
	KindText   FieldKind = "text"
	KindNumber FieldKind = "number"
	KindDate   FieldKind = "date" // YYYY-MM-DD; vacío => hoy
)

type Field struct {
	Name     string    `json:"name"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required,omitempty"`

	// Options son sugerencias para el form; no se validan (se permite valor custom).
	Options []string `json:"options,omitempty"`
}

// Feature es la configuración de una colección de formulario: key + campos.
type Feature struct {
	Name   string  `json:"name"`
	Key    Key     `json:"key"`
	Fields []Field `json:"fields"`
}

var FeedTypes = []string{
	"Grower mash",
	"Layer mash",
	"Broiler mash",
	"Chick starter",
	"Pullet grower",
	"Calcium supplement",
	"Protein supplement",
	"Vitamin premix",
}

var VaccineTypes = []string{
	"Newcastle Disease (ND)",
	"Infectious Bursal Disease (IBD)",
	"Infectious Bronchitis (IB)",
	"Avian Influenza (AI)",
	"Marek's Disease",
	"Fowl Pox",
	"Salmonella",
	"E. coli Vaccine",
	"Coccidiosis Vaccine",
	"Vitamin A Supplement",
	"Vitamin B Complex",
	"Calcium Supplement",
	"Probiotics",
}

const (
	FeatureTemperature = "temperature"
	FeatureFeed        = "feed"
	FeatureWater       = "water"
	FeatureVaccination = "vaccination"
	FeatureProduction  = "production"
	FeatureSuggestions = "suggestions"
)

var features = []Feature{
	{
		Name: FeatureTemperature,
		Key:  KeyTemperature,
		Fields: []Field{
			{Name: "date", Kind: KindDate},
			{Name: "minTemp", Kind: KindNumber},
			{Name: "maxTemp", Kind: KindNumber},
			{Name: "avgTemp", Kind: KindNumber},
			{Name: "notes", Kind: KindText},
		},
	},
	{
		Name: FeatureFeed,
		Key:  KeyFeed,
		Fields: []Field{
			{Name: "date", Kind: KindDate},
			{Name: "type", Kind: KindText, Required: true, Options: FeedTypes},
			{Name: "quantity", Kind: KindNumber},
			{Name: "cost", Kind: KindNumber},
		},
	},
	{
		Name: FeatureWater,
		Key:  KeyWaterUsage,
		Fields: []Field{
			{Name: "date", Kind: KindDate},
			{Name: "liters", Kind: KindNumber},
		},
	},
	{
		Name: FeatureVaccination,
		Key:  KeyVaccination,
		Fields: []Field{
			{Name: "date", Kind: KindDate},
			{Name: "vaccine", Kind: KindText, Required: true, Options: VaccineTypes},
			{Name: "dosage", Kind: KindText},
			{Name: "mortality", Kind: KindNumber},
		},
	},
	{
		Name: FeatureProduction,
		Key:  KeyProduction,
		Fields: []Field{
			{Name: "date", Kind: KindDate},
			{Name: "quantity", Kind: KindNumber},
		},
	},
	{
		Name: FeatureSuggestions,
		Key:  KeyMedicineSuggestion,
		Fields: []Field{
			{Name: "symptom", Kind: KindText, Required: true},
			{Name: "medicine", Kind: KindText, Required: true},
			{Name: "dosage", Kind: KindText},
			{Name: "notes", Kind: KindText},
			{Name: "dateAdded", Kind: KindDate},
		},
	},
}

// Features devuelve el catálogo en orden estable.
func Features() []Feature {
	out := make([]Feature, len(features))
	copy(out, features)
	return out
}

func FeatureByName(name string) (Feature, bool) {
	for _, f := range features {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}
