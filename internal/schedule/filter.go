package schedule

import (
	"strings"

	"example.com/healthsync/backend/internal/coverage"
)

// Relevant решает, попадает ли архетип в расписание пользователя.
// Правила проверяются по порядку: высокий приоритет, явно выбранная
// услуга, наличие покрытия; иначе архетип исключается.
func Relevant(template AppointmentTemplate, coverageMap coverage.CoverageMap, importantServices []string) bool {
	if template.Priority == PriorityHigh {
		return true
	}

	if label, ok := CategoryLabel(template.CategoryID); ok {
		for _, service := range importantServices {
			if strings.EqualFold(strings.TrimSpace(service), label) {
				return true
			}
		}
	}

	_, covered := coverageMap[template.CategoryID]
	return covered
}
