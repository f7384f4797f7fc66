package schedule

import (
	"math/rand"
	"sort"
	"time"

	"example.com/healthsync/backend/internal/coverage"
)

const (
	dateLayout = "2006-01-02"

	// StatusProposed присваивается каждому новому приему в момент сборки.
	StatusProposed = "proposed"
)

type Preferences struct {
	ImportantServices []string
	TimePreference    string
}

type GeneratedAppointment struct {
	Date          string `json:"date"`
	Type          string `json:"type"`
	Provider      string `json:"provider"`
	Duration      string `json:"duration"`
	EstimatedCost string `json:"estimated_cost"`
	Status        string `json:"status"`
	Category      string `json:"category"`
	TimeOfDay     string `json:"time_of_day,omitempty"`
}

// Assemble собирает годовое расписание: отфильтрованные архетипы
// разворачиваются в даты, оцениваются по покрытию и получают провайдера.
// Итог отсортирован по дате; при равенстве дат сохраняется порядок
// каталога и опорных дат. Поле TimeOfDay на выбор даты не влияет.
func Assemble(coverageMap coverage.CoverageMap, preferences Preferences, year int, rng *rand.Rand) []GeneratedAppointment {
	appointments := make([]GeneratedAppointment, 0, len(catalog)*2)

	for _, template := range catalog {
		if !Relevant(template, coverageMap, preferences.ImportantServices) {
			continue
		}

		estimatedCost := EstimateCost(template.CategoryID, coverageMap)
		provider := ProviderFor(template.CategoryID)

		for _, date := range Dates(template.Frequency, year, rng) {
			appointments = append(appointments, GeneratedAppointment{
				Date:          date.Format(dateLayout),
				Type:          template.Type,
				Provider:      provider,
				Duration:      template.Duration,
				EstimatedCost: estimatedCost,
				Status:        StatusProposed,
				Category:      template.CategoryID,
				TimeOfDay:     preferences.TimePreference,
			})
		}
	}

	sortByDate(appointments)
	return appointments
}

// Regenerate пересобирает даты существующего расписания: к каждой дате
// применяется тот же сдвиг и перенос с выходных, состав приемов не
// меняется, длина результата равна длине входа.
func Regenerate(appointments []GeneratedAppointment, rng *rand.Rand) []GeneratedAppointment {
	regenerated := make([]GeneratedAppointment, len(appointments))
	copy(regenerated, appointments)

	for i := range regenerated {
		parsed, err := time.Parse(dateLayout, regenerated[i].Date)
		if err != nil {
			continue
		}
		regenerated[i].Date = snapToWeekday(applyJitter(parsed, rng)).Format(dateLayout)
	}

	sortByDate(regenerated)
	return regenerated
}

func sortByDate(appointments []GeneratedAppointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Date < appointments[j].Date
	})
}
