package ai

import (
	"strings"
	"testing"
)

// TestExtractJSONCodeFence проверяет извлечение JSON из markdown-блока.
func TestExtractJSONCodeFence(t *testing.T) {
	input := "```json\n{\"planName\": \"Acme Health\"}\n```"

	got := extractJSON(input)
	want := `{"planName": "Acme Health"}`

	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

// TestExtractJSONSurroundingText проверяет извлечение JSON из текста с префиксом.
func TestExtractJSONSurroundingText(t *testing.T) {
	input := "Here is the result: {\"planName\": \"Acme\"} hope it helps"

	got := extractJSON(input)
	if !strings.HasPrefix(got, "{") || !strings.HasSuffix(got, "}") {
		t.Fatalf("expected json object, got %s", got)
	}
}

// TestExtractJSONMissing проверяет пустой результат без JSON.
func TestExtractJSONMissing(t *testing.T) {
	if got := extractJSON("no structured data here"); got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}

// TestValidateAnalysisResponse проверяет валидацию ответа анализа.
func TestValidateAnalysisResponse(t *testing.T) {
	valid := AnalysisResponse{
		HealthCategories: []AnalysisCategory{
			{Category: "dental", CoveragePercentage: 80, Priority: "high"},
		},
	}
	if err := validateAnalysisResponse(valid); err != nil {
		t.Fatalf("expected valid response, got %v", err)
	}

	empty := AnalysisResponse{}
	if err := validateAnalysisResponse(empty); err == nil {
		t.Fatal("expected error for missing categories")
	}

	badPercentage := AnalysisResponse{
		HealthCategories: []AnalysisCategory{
			{Category: "vision", CoveragePercentage: 150},
		},
	}
	if err := validateAnalysisResponse(badPercentage); err == nil {
		t.Fatal("expected error for percentage above 100")
	}

	badPriority := AnalysisResponse{
		HealthCategories: []AnalysisCategory{
			{Category: "massage", CoveragePercentage: 50, Priority: "urgent"},
		},
	}
	if err := validateAnalysisResponse(badPriority); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}

// TestBuildAnalyzePromptRequiresDocument проверяет обязательность текста документа.
func TestBuildAnalyzePromptRequiresDocument(t *testing.T) {
	if _, err := buildAnalyzePrompt(AnalyzeInsuranceInput{DocumentText: "  "}); err == nil {
		t.Fatal("expected error for empty document")
	}

	prompt, err := buildAnalyzePrompt(AnalyzeInsuranceInput{DocumentText: "Dental 80%"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(prompt, "Dental 80%") {
		t.Fatal("expected document text in prompt")
	}
}
