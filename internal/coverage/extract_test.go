package coverage

import (
	"reflect"
	"testing"
)

// TestExtractKeywordLine проверяет извлечение процента, лимита и периодичности из строки.
func TestExtractKeywordLine(t *testing.T) {
	analysis := Extract("Dental Care: 80% coverage up to $1,500 annually")

	if analysis.Confidence == ConfidenceDemo {
		t.Fatal("expected keyword extraction, got demo fallback")
	}
	if len(analysis.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(analysis.Categories))
	}

	category := analysis.Categories[0]
	if category.CategoryID != "dental" {
		t.Fatalf("expected dental, got %s", category.CategoryID)
	}
	if category.CoveragePercentage != 80 {
		t.Fatalf("expected 80%%, got %d", category.CoveragePercentage)
	}
	if category.AnnualLimit == nil || *category.AnnualLimit != 1500 {
		t.Fatalf("expected limit 1500, got %v", category.AnnualLimit)
	}
	if category.FrequencyLabel != "annually" {
		t.Fatalf("expected annually, got %s", category.FrequencyLabel)
	}
	if !category.Covered {
		t.Fatal("expected category to be covered")
	}
}

// TestExtractDefaults проверяет значения по умолчанию при отсутствии цифр в строке.
func TestExtractDefaults(t *testing.T) {
	analysis := Extract("The plan includes massage therapy for all members")

	if len(analysis.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(analysis.Categories))
	}

	category := analysis.Categories[0]
	if category.CategoryID != "massage" {
		t.Fatalf("expected massage, got %s", category.CategoryID)
	}
	if category.CoveragePercentage != 80 {
		t.Fatalf("expected default 80%%, got %d", category.CoveragePercentage)
	}
	if category.AnnualLimit != nil {
		t.Fatalf("expected nil limit, got %v", *category.AnnualLimit)
	}
	if category.FrequencyLabel != "as needed" {
		t.Fatalf("expected as needed, got %s", category.FrequencyLabel)
	}
}

// TestExtractEvidenceIsFirstLine проверяет, что свидетельством становится первая строка с ключевым словом.
func TestExtractEvidenceIsFirstLine(t *testing.T) {
	text := "Vision coverage is 100% biennial\nVision extras: 50% up to $200 monthly"
	analysis := Extract(text)

	if len(analysis.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(analysis.Categories))
	}

	category := analysis.Categories[0]
	if category.CoveragePercentage != 100 {
		t.Fatalf("expected 100%% from first line, got %d", category.CoveragePercentage)
	}
	if category.FrequencyLabel != "every 2 years" {
		t.Fatalf("expected every 2 years, got %s", category.FrequencyLabel)
	}
	if category.AnnualLimit != nil {
		t.Fatal("expected no limit from first line")
	}
}

// TestExtractOmitsCategoriesWithoutEvidence проверяет, что категории без ключевых слов не попадают в результат.
func TestExtractOmitsCategoriesWithoutEvidence(t *testing.T) {
	analysis := Extract("Dental checkups covered at 50%")

	for _, category := range analysis.Categories {
		if category.CategoryID != "dental" {
			t.Fatalf("unexpected category %s", category.CategoryID)
		}
	}
	if len(analysis.Categories) != 1 {
		t.Fatalf("expected only dental, got %d categories", len(analysis.Categories))
	}
}

// TestExtractFallbackDeterminism проверяет одинаковый демо-набор для пустого и бессодержательного текста.
func TestExtractFallbackDeterminism(t *testing.T) {
	first := Extract("")
	second := Extract("nothing about insurance here")

	if first.Confidence != ConfidenceDemo || second.Confidence != ConfidenceDemo {
		t.Fatalf("expected demo confidence, got %s and %s", first.Confidence, second.Confidence)
	}

	if !reflect.DeepEqual(first.Categories, second.Categories) {
		t.Fatal("expected identical demo category sets")
	}

	if len(first.Categories) != 4 {
		t.Fatalf("expected 4 demo categories, got %d", len(first.Categories))
	}
}

// TestExtractStructuredCategories проверяет разбор JSON с массивом категорий.
func TestExtractStructuredCategories(t *testing.T) {
	payload := `{
		"planName": "Sun Life Extended",
		"policyNumber": "SL-12345",
		"healthCategories": [
			{"category": "dental", "displayName": "Dental", "coveragePercentage": 90, "annualLimit": 1200, "frequency": "every 6 months", "priority": "high"},
			{"category": "vision"}
		]
	}`

	analysis := Extract(payload)

	if analysis.PlanName != "Sun Life Extended" {
		t.Fatalf("unexpected plan name %q", analysis.PlanName)
	}
	if analysis.PolicyNumber != "SL-12345" {
		t.Fatalf("unexpected policy number %q", analysis.PolicyNumber)
	}
	if len(analysis.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(analysis.Categories))
	}

	dental := analysis.Categories[0]
	if dental.CoveragePercentage != 90 || dental.AnnualLimit == nil || *dental.AnnualLimit != 1200 {
		t.Fatalf("unexpected dental coercion: %+v", dental)
	}

	vision := analysis.Categories[1]
	if vision.CoveragePercentage != 80 {
		t.Fatalf("expected default percentage, got %d", vision.CoveragePercentage)
	}
	if vision.AnnualLimit != nil {
		t.Fatal("expected nil default limit")
	}
	if vision.FrequencyLabel != "as needed" {
		t.Fatalf("expected default frequency, got %s", vision.FrequencyLabel)
	}
	if !vision.Covered {
		t.Fatal("expected covered to default to true")
	}
}

// TestExtractStructuredCoverageMap проверяет разбор плоской карты покрытия.
func TestExtractStructuredCoverageMap(t *testing.T) {
	payload := `{"coverage": {"dental": {"percentage": 70, "annualLimit": 900}, "vision": {}}}`

	analysis := Extract(payload)

	if len(analysis.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(analysis.Categories))
	}

	coverageMap := Normalize(analysis.Categories)
	entry, ok := coverageMap["dental"]
	if !ok {
		t.Fatal("expected dental entry")
	}
	if entry.Percentage != 70 || entry.AnnualLimit == nil || *entry.AnnualLimit != 900 {
		t.Fatalf("unexpected dental entry: %+v", entry)
	}
}

// TestExtractJSONWithoutCoverageFallsBack проверяет переход к эвристике для JSON без категорий.
func TestExtractJSONWithoutCoverageFallsBack(t *testing.T) {
	analysis := Extract(`{"note": "dental coverage at 60%"}`)

	if analysis.Confidence == ConfidenceDemo {
		t.Fatal("expected keyword extraction for json without categories")
	}
	if len(analysis.Categories) != 1 || analysis.Categories[0].CategoryID != "dental" {
		t.Fatalf("unexpected categories: %+v", analysis.Categories)
	}
	if analysis.Categories[0].CoveragePercentage != 60 {
		t.Fatalf("expected 60%%, got %d", analysis.Categories[0].CoveragePercentage)
	}
}

// TestFrequencyFromLine проверяет порядок правил периодичности.
func TestFrequencyFromLine(t *testing.T) {
	cases := map[string]string{
		"covered yearly":         "annually",
		"covered every 6 months": "every 6 months",
		"biennial exams":         "every 2 years",
		"every 2 years max":      "every 2 years",
		"billed monthly":         "monthly",
		"whenever needed":        "as needed",
		"semi-annual cleanings":  "annually",
	}

	for line, want := range cases {
		if got := frequencyFromLine(line); got != want {
			t.Fatalf("line %q: expected %s, got %s", line, want, got)
		}
	}
}
