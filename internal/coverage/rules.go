package coverage

import (
	"regexp"
	"strings"
)

// categoryRule описывает одну группу ключевых слов эвристического
// извлечения: первая строка документа с любым из ключевых слов становится
// строкой-свидетельством категории.
type categoryRule struct {
	CategoryID   string
	DisplayLabel string
	Keywords     []string
	Priority     string
}

var categoryRules = []categoryRule{
	{
		CategoryID:   "dental",
		DisplayLabel: "Dental Care",
		Keywords:     []string{"dental", "dentist", "orthodont"},
		Priority:     "high",
	},
	{
		CategoryID:   "vision",
		DisplayLabel: "Vision Care",
		Keywords:     []string{"vision", "optical", "eye exam", "glasses", "optometr"},
		Priority:     "medium",
	},
	{
		CategoryID:   "physiotherapy",
		DisplayLabel: "Physiotherapy",
		Keywords:     []string{"physiotherap", "physio", "physical therapy"},
		Priority:     "medium",
	},
	{
		CategoryID:   "massage",
		DisplayLabel: "Massage Therapy",
		Keywords:     []string{"massage"},
		Priority:     "low",
	},
	{
		CategoryID:   "mental",
		DisplayLabel: "Mental Health",
		Keywords:     []string{"mental health", "psycholog", "counsell", "counseling", "psychotherap"},
		Priority:     "medium",
	},
	{
		CategoryID:   "chiropractic",
		DisplayLabel: "Chiropractic Care",
		Keywords:     []string{"chiropract"},
		Priority:     "low",
	},
	{
		CategoryID:   "naturopathy",
		DisplayLabel: "Naturopathy",
		Keywords:     []string{"naturopath"},
		Priority:     "low",
	},
	{
		CategoryID:   "acupuncture",
		DisplayLabel: "Acupuncture",
		Keywords:     []string{"acupunctur"},
		Priority:     "low",
	},
	{
		CategoryID:   "podiatry",
		DisplayLabel: "Podiatry",
		Keywords:     []string{"podiatr", "foot care"},
		Priority:     "low",
	},
	{
		CategoryID:   "osteopathy",
		DisplayLabel: "Osteopathy",
		Keywords:     []string{"osteopath"},
		Priority:     "low",
	},
}

var (
	percentPattern = regexp.MustCompile(`(\d+)%`)
	dollarPattern  = regexp.MustCompile(`\$([0-9][0-9,]*)`)
)

// frequencyRule сопоставляет подстроки строки-свидетельства с меткой
// периодичности; правила проверяются по порядку, первая сработавшая
// побеждает.
type frequencyRule struct {
	Substrings []string
	Label      string
}

var frequencyRules = []frequencyRule{
	{Substrings: []string{"annual", "yearly"}, Label: "annually"},
	{Substrings: []string{"6 month", "semi-annual"}, Label: "every 6 months"},
	{Substrings: []string{"2 year", "biennial"}, Label: "every 2 years"},
	{Substrings: []string{"monthly"}, Label: "monthly"},
}

// frequencyFromLine выводит метку периодичности из строки-свидетельства.
// Правила проверяются по порядку, выигрывает первое совпадение.
func frequencyFromLine(line string) string {
	for _, rule := range frequencyRules {
		for _, substring := range rule.Substrings {
			if strings.Contains(line, substring) {
				return rule.Label
			}
		}
	}
	return defaultFrequencyLabel
}

var displayLabels = func() map[string]string {
	labels := make(map[string]string, len(categoryRules))
	for _, rule := range categoryRules {
		labels[rule.CategoryID] = rule.DisplayLabel
	}
	labels["medical"] = "General Medicine"
	return labels
}()

func displayLabelFor(categoryID string) string {
	if label, ok := displayLabels[categoryID]; ok {
		return label
	}
	return categoryID
}
