package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	priorityHigh   = "high"
	priorityMedium = "medium"
	priorityLow    = "low"
)

// AnalysisResponse is the JSON document the model is asked to produce.
type AnalysisResponse struct {
	PlanName         string             `json:"planName"`
	PolicyNumber     string             `json:"policyNumber"`
	HealthCategories []AnalysisCategory `json:"healthCategories"`
	Recommendations  []string           `json:"recommendations"`
	Summary          string             `json:"summary"`
}

type AnalysisCategory struct {
	Category           string `json:"category"`
	DisplayName        string `json:"displayName"`
	Covered            bool   `json:"covered"`
	CoveragePercentage int    `json:"coveragePercentage"`
	AnnualLimit        *int   `json:"annualLimit"`
	Frequency          string `json:"frequency"`
	Priority           string `json:"priority"`
}

type AnalyzeInsuranceInput struct {
	DocumentText string `json:"document_text"`
}

type Service struct {
	client Client
}

// NewService создает сервис работы с AI-клиентом.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// AnalyzeInsurance запрашивает у AI разбор страхового документа и валидирует ответ.
// Возвращает очищенный JSON ответа, промпт и сырой ответ API.
func (s *Service) AnalyzeInsurance(ctx context.Context, input AnalyzeInsuranceInput) (string, string, []byte, error) {
	prompt, err := buildAnalyzePrompt(input)
	if err != nil {
		return "", "", nil, err
	}

	messages := []Message{
		{Role: "system", Content: "You are a health insurance analyst. Respond with JSON only, without extra text."},
		{Role: "user", Content: prompt},
	}

	content, raw, err := s.client.Chat(ctx, messages)
	if err != nil {
		return "", prompt, raw, err
	}

	payload := extractJSON(content)
	if payload == "" {
		return "", prompt, raw, errors.New("ai response does not contain json")
	}

	var response AnalysisResponse
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		return "", prompt, raw, err
	}

	if err := validateAnalysisResponse(response); err != nil {
		return "", prompt, raw, err
	}

	return payload, prompt, raw, nil
}

func buildAnalyzePrompt(input AnalyzeInsuranceInput) (string, error) {
	if strings.TrimSpace(input.DocumentText) == "" {
		return "", errors.New("document text is required")
	}

	prompt := fmt.Sprintf(`Extract health coverage details from an insurance document and return them as JSON.

Requirements:
- Output JSON only, no code fences, no extra text.
- Keep JSON compact (no extra whitespace).
- Schema:
{
  "planName": string,
  "policyNumber": string,
  "healthCategories": [
    {
      "category": string,
      "displayName": string,
      "covered": boolean,
      "coveragePercentage": integer,
      "annualLimit": integer or null,
      "frequency": string,
      "priority": "high" | "medium" | "low"
    }
  ],
  "recommendations": [string],
  "summary": string
}
- Use lowercase identifiers for "category" (dental, vision, physiotherapy, massage, mental, chiropractic, medical).
- coveragePercentage is an integer between 0 and 100.
- annualLimit is a whole dollar amount or null when the document states no cap.
- frequency is a short phrase like "every 6 months", "annually", "monthly", "as needed".
- Include only categories the document mentions.
- Provide 2-4 recommendations and keep the summary under 300 chars.

Document:
%s`, input.DocumentText)

	return prompt, nil
}

func extractJSON(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "json")
		trimmed = strings.TrimSpace(trimmed)
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return trimmed[start : end+1]
}

func validateAnalysisResponse(response AnalysisResponse) error {
	if len(response.HealthCategories) == 0 {
		return errors.New("health categories are required")
	}
	if len(response.HealthCategories) > 15 {
		return errors.New("too many health categories")
	}

	for _, category := range response.HealthCategories {
		if strings.TrimSpace(category.Category) == "" {
			return errors.New("category identifier is required")
		}
		if len(category.Category) > 50 {
			return errors.New("category identifier is too long")
		}
		if category.CoveragePercentage < 0 || category.CoveragePercentage > 100 {
			return fmt.Errorf("invalid coverage percentage: %d", category.CoveragePercentage)
		}
		if category.AnnualLimit != nil && *category.AnnualLimit < 0 {
			return errors.New("annual limit must not be negative")
		}
		if strings.TrimSpace(category.Priority) != "" && !isPriority(category.Priority) {
			return fmt.Errorf("invalid priority: %s", category.Priority)
		}
	}

	for _, recommendation := range response.Recommendations {
		if strings.TrimSpace(recommendation) == "" {
			return errors.New("recommendation content is required")
		}
	}

	return nil
}

func isPriority(value string) bool {
	switch strings.TrimSpace(value) {
	case priorityHigh, priorityMedium, priorityLow:
		return true
	default:
		return false
	}
}
