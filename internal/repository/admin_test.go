package repository

import (
	"testing"

	"github.com/google/uuid"
)

// TestBuildAIRequestWhereEmpty проверяет пустой фильтр.
func TestBuildAIRequestWhereEmpty(t *testing.T) {
	where, args := buildAIRequestWhere(AIRequestFilter{})

	if where != "" {
		t.Fatalf("expected empty where clause, got %q", where)
	}

	if len(args) != 0 {
		t.Fatalf("expected no args, got %d", len(args))
	}
}

// TestBuildAIRequestWhereAllFilters проверяет нумерацию параметров.
func TestBuildAIRequestWhereAllFilters(t *testing.T) {
	userID := uuid.New()
	success := true
	requestType := "analyze_insurance"

	where, args := buildAIRequestWhere(AIRequestFilter{
		UserID:      &userID,
		Success:     &success,
		RequestType: &requestType,
	})

	want := " WHERE user_id = $1 AND success = $2 AND request_type = $3"
	if where != want {
		t.Fatalf("expected %q, got %q", want, where)
	}

	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
}
