package coverage

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceDemo   Confidence = "demo"
)

const (
	defaultPercentage     = 80
	defaultFrequencyLabel = "as needed"
	defaultPriority       = "medium"
)

type HealthCategory struct {
	CategoryID         string `json:"category"`
	DisplayLabel       string `json:"displayName"`
	Covered            bool   `json:"covered"`
	CoveragePercentage int    `json:"coveragePercentage"`
	AnnualLimit        *int   `json:"annualLimit"`
	FrequencyLabel     string `json:"frequency"`
	Priority           string `json:"priority"`
}

type Analysis struct {
	PlanName        string           `json:"planName,omitempty"`
	PolicyNumber    string           `json:"policyNumber,omitempty"`
	Categories      []HealthCategory `json:"healthCategories"`
	Recommendations []string         `json:"recommendations,omitempty"`
	Confidence      Confidence       `json:"confidence"`
	Summary         string           `json:"aiSummary,omitempty"`
}

// rawAnalysis принимает обе допустимые формы ответа анализатора:
// массив категорий или плоскую карту покрытия.
type rawAnalysis struct {
	PlanName         string                      `json:"planName"`
	PolicyNumber     string                      `json:"policyNumber"`
	HealthCategories []rawCategory               `json:"healthCategories"`
	Coverage         map[string]rawCoverageEntry `json:"coverage"`
	Recommendations  []string                    `json:"recommendations"`
}

type rawCategory struct {
	Category           string   `json:"category"`
	DisplayName        string   `json:"displayName"`
	Covered            *bool    `json:"covered"`
	CoveragePercentage *float64 `json:"coveragePercentage"`
	AnnualLimit        *float64 `json:"annualLimit"`
	Frequency          string   `json:"frequency"`
	Priority           string   `json:"priority"`
}

type rawCoverageEntry struct {
	Percentage  *float64 `json:"percentage"`
	AnnualLimit *float64 `json:"annualLimit"`
	Frequency   string   `json:"frequency"`
}

// Extract разбирает текст анализа страховки в нормализованный результат.
// Функция тотальна: при отсутствии каких-либо свидетельств покрытия
// возвращается фиксированный демонстрационный набор категорий.
func Extract(documentText string) Analysis {
	trimmed := strings.TrimSpace(documentText)
	if trimmed == "" {
		return DemoAnalysis()
	}

	if analysis, ok := extractStructured(trimmed); ok {
		return analysis
	}

	categories := extractByKeywords(trimmed)
	if len(categories) == 0 {
		return DemoAnalysis()
	}

	return Analysis{
		Categories: categories,
		Confidence: scoreConfidence(categories),
	}
}

func extractStructured(text string) (Analysis, bool) {
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return Analysis{}, false
	}

	categories := make([]HealthCategory, 0, len(raw.HealthCategories))
	for _, entry := range raw.HealthCategories {
		categoryID := normalizeCategoryID(entry.Category)
		if categoryID == "" {
			continue
		}
		categories = append(categories, coerceCategory(categoryID, entry))
	}

	if len(categories) == 0 && len(raw.Coverage) > 0 {
		for key, entry := range raw.Coverage {
			categoryID := normalizeCategoryID(key)
			if categoryID == "" {
				continue
			}
			categories = append(categories, coerceCoverageEntry(categoryID, entry))
		}
	}

	if len(categories) == 0 {
		return Analysis{}, false
	}

	return Analysis{
		PlanName:        strings.TrimSpace(raw.PlanName),
		PolicyNumber:    strings.TrimSpace(raw.PolicyNumber),
		Categories:      categories,
		Recommendations: raw.Recommendations,
		Confidence:      scoreConfidence(categories),
	}, true
}

func coerceCategory(categoryID string, raw rawCategory) HealthCategory {
	category := HealthCategory{
		CategoryID:         categoryID,
		DisplayLabel:       strings.TrimSpace(raw.DisplayName),
		Covered:            true,
		CoveragePercentage: defaultPercentage,
		FrequencyLabel:     defaultFrequencyLabel,
		Priority:           defaultPriority,
	}

	if raw.Covered != nil {
		category.Covered = *raw.Covered
	}
	if raw.CoveragePercentage != nil {
		category.CoveragePercentage = clampPercentage(*raw.CoveragePercentage)
	}
	if raw.AnnualLimit != nil {
		limit := int(math.Round(*raw.AnnualLimit))
		category.AnnualLimit = &limit
	}
	if frequency := strings.TrimSpace(raw.Frequency); frequency != "" {
		category.FrequencyLabel = frequency
	}
	if priority := normalizePriority(raw.Priority); priority != "" {
		category.Priority = priority
	}
	if category.DisplayLabel == "" {
		category.DisplayLabel = displayLabelFor(categoryID)
	}

	return category
}

func coerceCoverageEntry(categoryID string, raw rawCoverageEntry) HealthCategory {
	category := HealthCategory{
		CategoryID:         categoryID,
		DisplayLabel:       displayLabelFor(categoryID),
		Covered:            true,
		CoveragePercentage: defaultPercentage,
		FrequencyLabel:     defaultFrequencyLabel,
		Priority:           defaultPriority,
	}

	if raw.Percentage != nil {
		category.CoveragePercentage = clampPercentage(*raw.Percentage)
	}
	if raw.AnnualLimit != nil {
		limit := int(math.Round(*raw.AnnualLimit))
		category.AnnualLimit = &limit
	}
	if frequency := strings.TrimSpace(raw.Frequency); frequency != "" {
		category.FrequencyLabel = frequency
	}

	return category
}

func extractByKeywords(text string) []HealthCategory {
	lowered := strings.ToLower(text)
	lines := strings.Split(lowered, "\n")

	categories := make([]HealthCategory, 0, len(categoryRules))
	for _, rule := range categoryRules {
		evidence, ok := findEvidenceLine(lines, rule.Keywords)
		if !ok {
			continue
		}

		category := HealthCategory{
			CategoryID:         rule.CategoryID,
			DisplayLabel:       rule.DisplayLabel,
			Covered:            true,
			CoveragePercentage: defaultPercentage,
			FrequencyLabel:     frequencyFromLine(evidence),
			Priority:           rule.Priority,
		}

		if percentage, ok := parsePercentage(evidence); ok {
			category.CoveragePercentage = percentage
		}
		if limit, ok := parseDollarAmount(evidence); ok {
			category.AnnualLimit = &limit
		}

		categories = append(categories, category)
	}

	return categories
}

func findEvidenceLine(lines []string, keywords []string) (string, bool) {
	for _, line := range lines {
		for _, keyword := range keywords {
			if strings.Contains(line, keyword) {
				return line, true
			}
		}
	}
	return "", false
}

func parsePercentage(line string) (int, bool) {
	match := percentPattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	return clampPercentage(float64(value)), true
}

func parseDollarAmount(line string) (int, bool) {
	match := dollarPattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}

	value, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	if err != nil {
		return 0, false
	}

	return value, true
}

func clampPercentage(value float64) int {
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func normalizeCategoryID(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func normalizePriority(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return "high"
	case "medium":
		return "medium"
	case "low":
		return "low"
	default:
		return ""
	}
}
