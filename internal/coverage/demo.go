package coverage

func intPtr(value int) *int {
	return &value
}

// DemoAnalysis возвращает фиксированный демонстрационный набор категорий.
// Используется, когда внешний анализ недоступен или в документе нет
// никаких свидетельств покрытия; результат всегда одинаков.
func DemoAnalysis() Analysis {
	return Analysis{
		Categories: []HealthCategory{
			{
				CategoryID:         "dental",
				DisplayLabel:       "Dental Care",
				Covered:            true,
				CoveragePercentage: 80,
				AnnualLimit:        intPtr(1500),
				FrequencyLabel:     "every 6 months",
				Priority:           "high",
			},
			{
				CategoryID:         "vision",
				DisplayLabel:       "Vision Care",
				Covered:            true,
				CoveragePercentage: 100,
				FrequencyLabel:     "every 2 years",
				Priority:           "medium",
			},
			{
				CategoryID:         "physiotherapy",
				DisplayLabel:       "Physiotherapy",
				Covered:            true,
				CoveragePercentage: 100,
				AnnualLimit:        intPtr(2000),
				FrequencyLabel:     "as needed",
				Priority:           "medium",
			},
			{
				CategoryID:         "massage",
				DisplayLabel:       "Massage Therapy",
				Covered:            true,
				CoveragePercentage: 80,
				AnnualLimit:        intPtr(500),
				FrequencyLabel:     "monthly",
				Priority:           "low",
			},
		},
		Recommendations: []string{
			"Coverage analysis was unavailable, so a demo coverage profile was created.",
		},
		Confidence: ConfidenceDemo,
		Summary:    "Demo coverage profile: the analysis service did not return usable coverage data.",
	}
}
