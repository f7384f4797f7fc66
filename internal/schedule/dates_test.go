package schedule

import (
	"math/rand"
	"testing"
	"time"
)

// TestDatesWeekdayInvariant проверяет, что сгенерированные даты не попадают на выходные.
func TestDatesWeekdayInvariant(t *testing.T) {
	frequencies := []Frequency{
		FrequencySemiannual, FrequencyAnnual, FrequencyBiennial,
		FrequencyMonthly, FrequencyQuarterly, FrequencyAsNeeded,
	}

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for _, frequency := range frequencies {
			for _, date := range Dates(frequency, 2025, rng) {
				if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
					t.Fatalf("seed %d, frequency %s: date %s is a weekend", seed, frequency, date.Format(dateLayout))
				}
			}
		}
	}
}

// TestDatesJitterBound проверяет ограничение сдвига от опорной даты.
func TestDatesJitterBound(t *testing.T) {
	anchor := dateOf(2025, time.June, 20)

	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		dates := Dates(FrequencyAnnual, 2025, rng)
		if len(dates) != 1 {
			t.Fatalf("expected 1 annual date, got %d", len(dates))
		}

		diff := dates[0].Sub(anchor).Hours() / 24
		if diff < -7 || diff > 9 {
			t.Fatalf("seed %d: date %s is %v days from anchor", seed, dates[0].Format(dateLayout), diff)
		}
	}
}

// TestDatesAnchorCounts проверяет количество дат для каждого класса периодичности.
func TestDatesAnchorCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	counts := map[Frequency]int{
		FrequencySemiannual: 2,
		FrequencyAnnual:     1,
		FrequencyMonthly:    6,
		FrequencyQuarterly:  4,
		FrequencyAsNeeded:   2,
	}

	for frequency, want := range counts {
		if got := len(Dates(frequency, 2025, rng)); got != want {
			t.Fatalf("frequency %s: expected %d dates, got %d", frequency, want, got)
		}
	}
}

// TestDatesBiennialOddYearsOnly проверяет, что biennial дает дату только в нечетные годы.
func TestDatesBiennialOddYearsOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	odd := Dates(FrequencyBiennial, 2025, rng)
	if len(odd) != 1 {
		t.Fatalf("expected 1 date in odd year, got %d", len(odd))
	}
	if odd[0].Month() != time.January && odd[0].Month() != time.February {
		t.Fatalf("expected a january anchor, got %s", odd[0].Format(dateLayout))
	}

	even := Dates(FrequencyBiennial, 2026, rng)
	if len(even) != 0 {
		t.Fatalf("expected no dates in even year, got %d", len(even))
	}
}

// TestSnapToWeekdayForwardOnly проверяет перенос выходных только вперед и не более чем на два дня.
func TestSnapToWeekdayForwardOnly(t *testing.T) {
	saturday := dateOf(2025, time.June, 21)
	snapped := snapToWeekday(saturday)

	if snapped.Weekday() != time.Monday {
		t.Fatalf("expected monday, got %s", snapped.Weekday())
	}
	if snapped.Sub(saturday).Hours()/24 != 2 {
		t.Fatalf("expected 2 day adjustment, got %v", snapped.Sub(saturday))
	}

	monday := dateOf(2025, time.June, 23)
	if !snapToWeekday(monday).Equal(monday) {
		t.Fatal("expected weekday to be unchanged")
	}
}

// TestDatesDeterministicWithSeed проверяет воспроизводимость дат при одинаковом seed.
func TestDatesDeterministicWithSeed(t *testing.T) {
	first := Dates(FrequencyMonthly, 2025, rand.New(rand.NewSource(42)))
	second := Dates(FrequencyMonthly, 2025, rand.New(rand.NewSource(42)))

	if len(first) != len(second) {
		t.Fatalf("expected equal lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("date %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}
