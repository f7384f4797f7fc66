package schedule

import (
	"fmt"

	"example.com/healthsync/backend/internal/coverage"
)

const defaultBaseCost = 100

var baseCosts = map[string]int{
	"dental":        150,
	"vision":        120,
	"physiotherapy": 85,
	"massage":       120,
	"medical":       200,
	"mental":        180,
	"chiropractic":  90,
}

// BaseCost возвращает базовую стоимость приема для категории.
func BaseCost(categoryID string) int {
	if cost, ok := baseCosts[categoryID]; ok {
		return cost
	}
	return defaultBaseCost
}

// EstimateCost форматирует ожидаемую долю пациента с учетом покрытия.
// Округление до ближайшего целого доллара.
func EstimateCost(categoryID string, coverageMap coverage.CoverageMap) string {
	baseCost := BaseCost(categoryID)

	entry, ok := coverageMap[categoryID]
	if !ok {
		return fmt.Sprintf("$%d (no coverage)", baseCost)
	}

	patientCost := (baseCost*(100-entry.Percentage) + 50) / 100
	if patientCost == 0 {
		return "$0 (fully covered)"
	}

	return fmt.Sprintf("$%d (after insurance)", patientCost)
}
