package coverage

import (
	"reflect"
	"testing"
)

// TestNormalizeSkipsUncovered проверяет, что непокрытые категории не попадают в карту.
func TestNormalizeSkipsUncovered(t *testing.T) {
	categories := []HealthCategory{
		{CategoryID: "dental", Covered: true, CoveragePercentage: 80, FrequencyLabel: "annually"},
		{CategoryID: "vision", Covered: false, CoveragePercentage: 100},
	}

	coverageMap := Normalize(categories)

	if len(coverageMap) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(coverageMap))
	}
	if _, ok := coverageMap["vision"]; ok {
		t.Fatal("expected vision to be excluded")
	}

	entry := coverageMap["dental"]
	if entry.Percentage != 80 || entry.FrequencyLabel != "annually" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

// TestNormalizeIdempotent проверяет идемпотентность нормализации.
func TestNormalizeIdempotent(t *testing.T) {
	limit := 1500
	categories := []HealthCategory{
		{CategoryID: "dental", Covered: true, CoveragePercentage: 80, AnnualLimit: &limit, FrequencyLabel: "every 6 months"},
		{CategoryID: "massage", Covered: true, CoveragePercentage: 50, FrequencyLabel: "monthly"},
	}

	first := Normalize(categories)
	second := Normalize(categories)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical coverage maps")
	}
}

// TestNormalizeOrderIndependent проверяет независимость карты от порядка категорий.
func TestNormalizeOrderIndependent(t *testing.T) {
	a := HealthCategory{CategoryID: "dental", Covered: true, CoveragePercentage: 80}
	b := HealthCategory{CategoryID: "vision", Covered: true, CoveragePercentage: 100}

	forward := Normalize([]HealthCategory{a, b})
	reversed := Normalize([]HealthCategory{b, a})

	if !reflect.DeepEqual(forward, reversed) {
		t.Fatal("expected order-independent coverage maps")
	}
}
