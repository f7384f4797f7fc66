package coverage

import "testing"

// TestScoreConfidenceTiers проверяет пороги high/medium/low.
func TestScoreConfidenceTiers(t *testing.T) {
	limit := 500

	if got := scoreConfidence(nil); got != ConfidenceLow {
		t.Fatalf("expected low for empty set, got %s", got)
	}

	defaultsOnly := []HealthCategory{{CategoryID: "dental", Covered: true, CoveragePercentage: defaultPercentage}}
	if got := scoreConfidence(defaultsOnly); got != ConfidenceLow {
		t.Fatalf("expected low for defaults only, got %s", got)
	}

	withPercentage := []HealthCategory{{CategoryID: "dental", Covered: true, CoveragePercentage: 90}}
	if got := scoreConfidence(withPercentage); got != ConfidenceMedium {
		t.Fatalf("expected medium with explicit percentage, got %s", got)
	}

	withLimit := []HealthCategory{{CategoryID: "dental", Covered: true, CoveragePercentage: defaultPercentage, AnnualLimit: &limit}}
	if got := scoreConfidence(withLimit); got != ConfidenceMedium {
		t.Fatalf("expected medium with limit, got %s", got)
	}

	full := []HealthCategory{{CategoryID: "dental", Covered: true, CoveragePercentage: 90, AnnualLimit: &limit}}
	if got := scoreConfidence(full); got != ConfidenceHigh {
		t.Fatalf("expected high with percentage and limit, got %s", got)
	}
}
