package schedule

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"example.com/healthsync/backend/internal/coverage"
)

// TestAssembleSortedProposed проверяет сортировку по дате и статус proposed.
func TestAssembleSortedProposed(t *testing.T) {
	coverageMap := coverage.CoverageMap{
		"dental":  {Percentage: 80},
		"massage": {Percentage: 50},
	}
	rng := rand.New(rand.NewSource(11))

	appointments := Assemble(coverageMap, Preferences{}, 2025, rng)
	if len(appointments) == 0 {
		t.Fatal("expected appointments")
	}

	if !sort.SliceIsSorted(appointments, func(i, j int) bool {
		return appointments[i].Date < appointments[j].Date
	}) {
		t.Fatal("expected appointments sorted by date")
	}

	for _, appointment := range appointments {
		if appointment.Status != StatusProposed {
			t.Fatalf("expected status proposed, got %s", appointment.Status)
		}
		if appointment.Provider == "" {
			t.Fatal("expected provider to be assigned")
		}
		if _, err := time.Parse(dateLayout, appointment.Date); err != nil {
			t.Fatalf("invalid date %q: %v", appointment.Date, err)
		}
	}
}

// TestAssembleEmptyCoverageKeepsHighPriority проверяет, что без покрытия остаются только high-архетипы.
func TestAssembleEmptyCoverageKeepsHighPriority(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	appointments := Assemble(coverage.CoverageMap{}, Preferences{}, 2025, rng)

	if len(appointments) == 0 {
		t.Fatal("expected high priority appointments")
	}
	for _, appointment := range appointments {
		if appointment.Category != "dental" && appointment.Category != "medical" {
			t.Fatalf("unexpected category %s without coverage", appointment.Category)
		}
	}
}

// TestAssembleCostAndProvider проверяет стоимость и провайдера в собранном расписании.
func TestAssembleCostAndProvider(t *testing.T) {
	coverageMap := coverage.CoverageMap{"dental": {Percentage: 80}}
	rng := rand.New(rand.NewSource(5))

	appointments := Assemble(coverageMap, Preferences{}, 2025, rng)

	for _, appointment := range appointments {
		if appointment.Category != "dental" {
			continue
		}
		if appointment.EstimatedCost != "$30 (after insurance)" {
			t.Fatalf("expected $30 (after insurance), got %s", appointment.EstimatedCost)
		}
		if appointment.Provider != "Bright Smile Dental" {
			t.Fatalf("expected first dental provider, got %s", appointment.Provider)
		}
	}
}

// TestAssembleTimePreferenceDisplayOnly проверяет, что предпочтение времени не влияет на даты.
func TestAssembleTimePreferenceDisplayOnly(t *testing.T) {
	coverageMap := coverage.CoverageMap{"dental": {Percentage: 80}}

	plain := Assemble(coverageMap, Preferences{}, 2025, rand.New(rand.NewSource(9)))
	timed := Assemble(coverageMap, Preferences{TimePreference: "morning"}, 2025, rand.New(rand.NewSource(9)))

	if len(plain) != len(timed) {
		t.Fatalf("expected equal lengths, got %d and %d", len(plain), len(timed))
	}
	for i := range plain {
		if plain[i].Date != timed[i].Date {
			t.Fatalf("date %d changed with time preference: %s vs %s", i, plain[i].Date, timed[i].Date)
		}
		if timed[i].TimeOfDay != "morning" {
			t.Fatalf("expected time_of_day morning, got %s", timed[i].TimeOfDay)
		}
	}
}

// TestRegeneratePreservesComposition проверяет сохранение состава расписания при регенерации.
func TestRegeneratePreservesComposition(t *testing.T) {
	coverageMap := coverage.CoverageMap{
		"dental": {Percentage: 80},
		"vision": {Percentage: 100},
	}
	original := Assemble(coverageMap, Preferences{}, 2025, rand.New(rand.NewSource(17)))

	pairs := func(appointments []GeneratedAppointment) map[string]int {
		counts := make(map[string]int)
		for _, appointment := range appointments {
			counts[appointment.Type+"|"+appointment.Category]++
		}
		return counts
	}
	want := pairs(original)

	rng := rand.New(rand.NewSource(99))
	current := original
	for i := 0; i < 100; i++ {
		current = Regenerate(current, rng)

		if len(current) != len(original) {
			t.Fatalf("iteration %d: expected length %d, got %d", i, len(original), len(current))
		}

		for _, appointment := range current {
			parsed, err := time.Parse(dateLayout, appointment.Date)
			if err != nil {
				t.Fatalf("iteration %d: invalid date %q", i, appointment.Date)
			}
			if parsed.Weekday() == time.Saturday || parsed.Weekday() == time.Sunday {
				t.Fatalf("iteration %d: date %s is a weekend", i, appointment.Date)
			}
		}

		got := pairs(current)
		for key, count := range want {
			if got[key] != count {
				t.Fatalf("iteration %d: pair %s count %d, want %d", i, key, got[key], count)
			}
		}
	}
}

// TestRegenerateKeepsMalformedDate проверяет, что нечитаемая дата остается без изменений.
func TestRegenerateKeepsMalformedDate(t *testing.T) {
	appointments := []GeneratedAppointment{{Date: "not-a-date", Type: "Dental Checkup", Category: "dental"}}

	regenerated := Regenerate(appointments, rand.New(rand.NewSource(1)))

	if len(regenerated) != 1 || regenerated[0].Date != "not-a-date" {
		t.Fatalf("expected malformed date to be preserved, got %+v", regenerated)
	}
}
