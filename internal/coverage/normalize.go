package coverage

type CoverageEntry struct {
	Percentage     int    `json:"percentage"`
	AnnualLimit    *int   `json:"annualLimit,omitempty"`
	FrequencyLabel string `json:"frequency"`
}

type CoverageMap map[string]CoverageEntry

// Normalize сводит категории к канонической карте покрытия.
// В карту попадают только категории с covered = true; преобразование
// детерминировано и идемпотентно.
func Normalize(categories []HealthCategory) CoverageMap {
	coverageMap := make(CoverageMap, len(categories))
	for _, category := range categories {
		if !category.Covered {
			continue
		}

		coverageMap[category.CategoryID] = CoverageEntry{
			Percentage:     category.CoveragePercentage,
			AnnualLimit:    category.AnnualLimit,
			FrequencyLabel: category.FrequencyLabel,
		}
	}

	return coverageMap
}
