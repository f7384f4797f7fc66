package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"example.com/healthsync/backend/internal/coverage"
)

// TestEstimateCostAfterInsurance проверяет расчет доли пациента при частичном покрытии.
func TestEstimateCostAfterInsurance(t *testing.T) {
	coverageMap := coverage.CoverageMap{"dental": {Percentage: 80}}

	if got := EstimateCost("dental", coverageMap); got != "$30 (after insurance)" {
		t.Fatalf("expected $30 (after insurance), got %s", got)
	}
}

// TestEstimateCostFullyCovered проверяет формат при 100% покрытии.
func TestEstimateCostFullyCovered(t *testing.T) {
	coverageMap := coverage.CoverageMap{"vision": {Percentage: 100}}

	if got := EstimateCost("vision", coverageMap); got != "$0 (fully covered)" {
		t.Fatalf("expected $0 (fully covered), got %s", got)
	}
}

// TestEstimateCostNoCoverage проверяет формат при отсутствии покрытия.
func TestEstimateCostNoCoverage(t *testing.T) {
	if got := EstimateCost("dental", coverage.CoverageMap{}); got != "$150 (no coverage)" {
		t.Fatalf("expected $150 (no coverage), got %s", got)
	}
}

// TestEstimateCostUnknownCategory проверяет базовую стоимость для неизвестной категории.
func TestEstimateCostUnknownCategory(t *testing.T) {
	if got := BaseCost("homeopathy"); got != 100 {
		t.Fatalf("expected default base cost 100, got %d", got)
	}

	coverageMap := coverage.CoverageMap{"homeopathy": {Percentage: 50}}
	if got := EstimateCost("homeopathy", coverageMap); got != "$50 (after insurance)" {
		t.Fatalf("expected $50 (after insurance), got %s", got)
	}
}

// TestEstimateCostMonotonic проверяет невозрастание доли пациента с ростом покрытия.
func TestEstimateCostMonotonic(t *testing.T) {
	previous := BaseCost("dental") + 1

	for percentage := 0; percentage <= 100; percentage++ {
		coverageMap := coverage.CoverageMap{"dental": {Percentage: percentage}}
		cost := parsePatientCost(t, EstimateCost("dental", coverageMap))

		if cost > previous {
			t.Fatalf("patient cost increased at %d%%: %d > %d", percentage, cost, previous)
		}
		previous = cost
	}
}

func parsePatientCost(t *testing.T, formatted string) int {
	t.Helper()

	amount, found := strings.CutPrefix(formatted, "$")
	if !found {
		t.Fatalf("unexpected cost format: %s", formatted)
	}
	amount, _, _ = strings.Cut(amount, " ")

	value, err := strconv.Atoi(amount)
	if err != nil {
		t.Fatalf("cannot parse cost %q: %v", formatted, err)
	}
	return value
}

// TestEstimateCostRounding проверяет округление до ближайшего доллара.
func TestEstimateCostRounding(t *testing.T) {
	// physiotherapy: база 85, покрытие 67% → 28.05 → $28.
	coverageMap := coverage.CoverageMap{"physiotherapy": {Percentage: 67}}
	if got := EstimateCost("physiotherapy", coverageMap); got != fmt.Sprintf("$%d (after insurance)", 28) {
		t.Fatalf("expected $28 (after insurance), got %s", got)
	}
}
