package handlers

import (
	"testing"

	"example.com/healthsync/backend/internal/models"
	"example.com/healthsync/backend/internal/schedule"
)

// TestMapAppointmentStatus проверяет маппинг статусов приема.
func TestMapAppointmentStatus(t *testing.T) {
	value, ok := mapAppointmentStatus("proposed")
	if !ok || value != models.AppointmentProposed {
		t.Fatalf("expected proposed, got %v (ok=%v)", value, ok)
	}

	value, ok = mapAppointmentStatus("confirmed")
	if !ok || value != models.AppointmentConfirmed {
		t.Fatalf("expected confirmed, got %v (ok=%v)", value, ok)
	}

	value, ok = mapAppointmentStatus("completed")
	if !ok || value != models.AppointmentCompleted {
		t.Fatalf("expected completed, got %v (ok=%v)", value, ok)
	}

	value, ok = mapAppointmentStatus("cancelled")
	if !ok || value != models.AppointmentCancelled {
		t.Fatalf("expected cancelled, got %v (ok=%v)", value, ok)
	}

	if _, ok := mapAppointmentStatus("rescheduled"); ok {
		t.Fatal("expected invalid status")
	}
}

// TestToAppointmentInputs проверяет преобразование сгенерированных приемов.
func TestToAppointmentInputs(t *testing.T) {
	generated := []schedule.GeneratedAppointment{
		{
			Date:          "2025-06-20",
			Type:          "Annual Physical",
			Provider:      "HealthSync Partner Clinic",
			Duration:      "30 min",
			EstimatedCost: "$40 (after insurance)",
			Status:        "proposed",
			Category:      "medical",
		},
	}

	inputs, err := toAppointmentInputs(generated)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(inputs) != 1 {
		t.Fatalf("expected 1 input, got %d", len(inputs))
	}

	if inputs[0].Date.Format(dateLayout) != "2025-06-20" {
		t.Fatalf("unexpected date: %s", inputs[0].Date.Format(dateLayout))
	}
	if inputs[0].Status != models.AppointmentProposed {
		t.Fatalf("unexpected status: %s", inputs[0].Status)
	}
}

// TestToAppointmentInputsInvalidDate проверяет ошибку на битой дате.
func TestToAppointmentInputsInvalidDate(t *testing.T) {
	generated := []schedule.GeneratedAppointment{
		{Date: "June 20, 2025", Type: "Eye Exam", Status: "proposed", Category: "vision"},
	}

	if _, err := toAppointmentInputs(generated); err == nil {
		t.Fatal("expected error for invalid date format")
	}
}

// TestToCategoryPriority проверяет нормализацию приоритета категории.
func TestToCategoryPriority(t *testing.T) {
	if got := toCategoryPriority("high"); got != models.PriorityHigh {
		t.Fatalf("expected high, got %s", got)
	}

	if got := toCategoryPriority(" LOW "); got != models.PriorityLow {
		t.Fatalf("expected low, got %s", got)
	}

	if got := toCategoryPriority("unknown"); got != models.PriorityMedium {
		t.Fatalf("expected medium fallback, got %s", got)
	}
}
