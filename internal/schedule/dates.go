package schedule

import (
	"math/rand"
	"time"
)

const jitterDays = 7

// Dates разворачивает класс периодичности в набор дат целевого года.
// К каждой опорной дате применяется случайный сдвиг в [-7,+7] дней, после
// чего дата, попавшая на выходной, передвигается вперед до ближайшего
// буднего дня. Класс biennial дает дату только в нечетные годы.
func Dates(frequency Frequency, year int, rng *rand.Rand) []time.Time {
	anchors := anchorsFor(frequency, year)

	dates := make([]time.Time, 0, len(anchors))
	for _, anchor := range anchors {
		dates = append(dates, snapToWeekday(applyJitter(anchor, rng)))
	}

	return dates
}

func anchorsFor(frequency Frequency, year int) []time.Time {
	switch frequency {
	case FrequencySemiannual:
		return []time.Time{
			dateOf(year, time.January, 15),
			dateOf(year, time.June, 15),
		}
	case FrequencyAnnual:
		return []time.Time{dateOf(year, time.June, 20)}
	case FrequencyBiennial:
		if year%2 == 0 {
			return nil
		}
		return []time.Time{dateOf(year, time.January, 28)}
	case FrequencyMonthly:
		months := []time.Month{time.January, time.March, time.May, time.July, time.September, time.November}
		anchors := make([]time.Time, 0, len(months))
		for _, month := range months {
			anchors = append(anchors, dateOf(year, month, 15))
		}
		return anchors
	case FrequencyQuarterly:
		months := []time.Month{time.January, time.April, time.July, time.October}
		anchors := make([]time.Time, 0, len(months))
		for _, month := range months {
			anchors = append(anchors, dateOf(year, month, 15))
		}
		return anchors
	case FrequencyAsNeeded:
		return []time.Time{
			dateOf(year, time.March, 10),
			dateOf(year, time.August, 14),
		}
	default:
		return nil
	}
}

func applyJitter(anchor time.Time, rng *rand.Rand) time.Time {
	offset := rng.Intn(2*jitterDays+1) - jitterDays
	return anchor.AddDate(0, 0, offset)
}

func snapToWeekday(date time.Time) time.Time {
	for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

func dateOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
