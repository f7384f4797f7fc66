package coverage

// scoreConfidence оценивает, насколько структурированные свидетельства
// подтверждают извлечение: от 80 high, от 50 medium, иначе low.
func scoreConfidence(categories []HealthCategory) Confidence {
	score := 0

	if len(categories) > 0 {
		score += 40
	}

	for _, category := range categories {
		if category.CoveragePercentage != defaultPercentage {
			score += 30
			break
		}
	}

	for _, category := range categories {
		if category.AnnualLimit != nil {
			score += 30
			break
		}
	}

	switch {
	case score >= 80:
		return ConfidenceHigh
	case score >= 50:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
