package schedule

import (
	"testing"

	"example.com/healthsync/backend/internal/coverage"
)

// TestRelevantHighPriority проверяет включение высокоприоритетного архетипа без покрытия.
func TestRelevantHighPriority(t *testing.T) {
	template := AppointmentTemplate{Type: "Dental Checkup", CategoryID: "dental", Priority: PriorityHigh}

	if !Relevant(template, coverage.CoverageMap{}, nil) {
		t.Fatal("expected high priority template to be included")
	}
}

// TestRelevantImportantService проверяет включение по выбранной пользователем услуге.
func TestRelevantImportantService(t *testing.T) {
	template := AppointmentTemplate{Type: "Massage Therapy", CategoryID: "massage", Priority: PriorityLow}

	if !Relevant(template, coverage.CoverageMap{}, []string{"Massage therapy"}) {
		t.Fatal("expected important service to be included")
	}

	if !Relevant(template, coverage.CoverageMap{}, []string{"  massage THERAPY "}) {
		t.Fatal("expected label match to ignore case and spacing")
	}
}

// TestRelevantCoverageEntry проверяет включение при наличии покрытия.
func TestRelevantCoverageEntry(t *testing.T) {
	template := AppointmentTemplate{Type: "Eye Exam", CategoryID: "vision", Priority: PriorityMedium}
	coverageMap := coverage.CoverageMap{"vision": {Percentage: 100}}

	if !Relevant(template, coverageMap, nil) {
		t.Fatal("expected covered category to be included")
	}
}

// TestRelevantExcluded проверяет исключение без приоритета, выбора и покрытия.
func TestRelevantExcluded(t *testing.T) {
	template := AppointmentTemplate{Type: "Chiropractic Adjustment", CategoryID: "chiropractic", Priority: PriorityLow}

	if Relevant(template, coverage.CoverageMap{}, []string{"Vision care"}) {
		t.Fatal("expected template to be excluded")
	}
}
