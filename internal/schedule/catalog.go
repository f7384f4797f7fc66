package schedule

type Frequency string

const (
	FrequencySemiannual Frequency = "semiannual"
	FrequencyAnnual     Frequency = "annual"
	FrequencyBiennial   Frequency = "biennial"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencyAsNeeded   Frequency = "as_needed"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type AppointmentTemplate struct {
	Type       string
	CategoryID string
	Duration   string
	Frequency  Frequency
	Priority   string
}

// catalog задает фиксированный набор архетипов приемов, из которого собирается
// годовое расписание.
var catalog = []AppointmentTemplate{
	{Type: "Dental Checkup", CategoryID: "dental", Duration: "60 min", Frequency: FrequencySemiannual, Priority: PriorityHigh},
	{Type: "Annual Physical", CategoryID: "medical", Duration: "30 min", Frequency: FrequencyAnnual, Priority: PriorityHigh},
	{Type: "Eye Exam", CategoryID: "vision", Duration: "45 min", Frequency: FrequencyBiennial, Priority: PriorityMedium},
	{Type: "Physiotherapy Session", CategoryID: "physiotherapy", Duration: "45 min", Frequency: FrequencyAsNeeded, Priority: PriorityMedium},
	{Type: "Mental Health Check-in", CategoryID: "mental", Duration: "50 min", Frequency: FrequencyQuarterly, Priority: PriorityMedium},
	{Type: "Massage Therapy", CategoryID: "massage", Duration: "60 min", Frequency: FrequencyMonthly, Priority: PriorityLow},
	{Type: "Chiropractic Adjustment", CategoryID: "chiropractic", Duration: "30 min", Frequency: FrequencyAsNeeded, Priority: PriorityLow},
}

// categoryLabels сопоставляет идентификатор категории с пользовательским
// названием услуги, как оно отображается в предпочтениях.
var categoryLabels = map[string]string{
	"dental":        "Dental care",
	"vision":        "Vision care",
	"medical":       "General medicine",
	"physiotherapy": "Physiotherapy",
	"massage":       "Massage therapy",
	"mental":        "Mental health",
	"chiropractic":  "Chiropractic care",
	"naturopathy":   "Naturopathy",
	"acupuncture":   "Acupuncture",
	"podiatry":      "Podiatry",
	"osteopathy":    "Osteopathy",
}

const fallbackProvider = "HealthSync Partner Clinic"

var categoryProviders = map[string][]string{
	"dental":        {"Bright Smile Dental", "Downtown Dental Group"},
	"vision":        {"ClearView Optometry"},
	"medical":       {"Maple Family Practice"},
	"physiotherapy": {"Active Life Physiotherapy"},
	"massage":       {"Wellness Massage Studio"},
	"mental":        {"Mindful Path Counselling"},
	"chiropractic":  {"Align Chiropractic Clinic"},
}

// Catalog возвращает копию каталога архетипов.
func Catalog() []AppointmentTemplate {
	templates := make([]AppointmentTemplate, len(catalog))
	copy(templates, catalog)
	return templates
}

// CategoryLabel возвращает пользовательское название категории.
func CategoryLabel(categoryID string) (string, bool) {
	label, ok := categoryLabels[categoryID]
	return label, ok
}

// ProviderFor выбирает первого провайдера, закрепленного за категорией.
func ProviderFor(categoryID string) string {
	providers, ok := categoryProviders[categoryID]
	if !ok || len(providers) == 0 {
		return fallbackProvider
	}
	return providers[0]
}
