package handlers

import (
	"context"

	"github.com/google/uuid"

	"example.com/healthsync/backend/internal/coverage"
	"example.com/healthsync/backend/internal/models"
	"example.com/healthsync/backend/internal/repository"
)

type HealthCategoryResponse struct {
	ID                 uuid.UUID `json:"id"`
	Category           string    `json:"category"`
	DisplayLabel       string    `json:"display_label"`
	Covered            bool      `json:"covered"`
	CoveragePercentage int       `json:"coverage_percentage"`
	AnnualLimit        *int      `json:"annual_limit,omitempty"`
	Frequency          string    `json:"frequency"`
	Priority           string    `json:"priority"`
	SortOrder          int       `json:"sort_order"`
}

type RecommendationResponse struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	RecType   string    `json:"rec_type"`
	SortOrder int       `json:"sort_order"`
	CreatedAt string    `json:"created_at"`
}

type AnalysisDetailResponse struct {
	Analysis         AnalysisResponse         `json:"analysis"`
	HealthCategories []HealthCategoryResponse `json:"health_categories"`
	Coverage         coverage.CoverageMap     `json:"coverage"`
	Recommendations  []RecommendationResponse `json:"recommendations"`
}

func buildAnalysisDetailResponse(ctx context.Context, analyses *repository.AnalysisRepository, analysis models.InsuranceAnalysis) (AnalysisDetailResponse, error) {
	categories, err := analyses.ListCategories(ctx, analysis.ID)
	if err != nil {
		return AnalysisDetailResponse{}, err
	}

	recommendations, err := analyses.ListRecommendations(ctx, analysis.ID)
	if err != nil {
		return AnalysisDetailResponse{}, err
	}

	categoryResponses := make([]HealthCategoryResponse, 0, len(categories))
	for _, category := range categories {
		categoryResponses = append(categoryResponses, HealthCategoryResponse{
			ID:                 category.ID,
			Category:           category.CategoryID,
			DisplayLabel:       category.DisplayLabel,
			Covered:            category.Covered,
			CoveragePercentage: category.CoveragePercentage,
			AnnualLimit:        category.AnnualLimit,
			Frequency:          category.FrequencyLabel,
			Priority:           string(category.Priority),
			SortOrder:          category.SortOrder,
		})
	}

	recommendationResponses := make([]RecommendationResponse, 0, len(recommendations))
	for _, recommendation := range recommendations {
		recommendationResponses = append(recommendationResponses, toRecommendationResponse(recommendation))
	}

	return AnalysisDetailResponse{
		Analysis:         toAnalysisResponse(analysis),
		HealthCategories: categoryResponses,
		Coverage:         coverage.Normalize(toCoverageCategories(categories)),
		Recommendations:  recommendationResponses,
	}, nil
}

func toRecommendationResponse(recommendation models.Recommendation) RecommendationResponse {
	return RecommendationResponse{
		ID:        recommendation.ID,
		Content:   recommendation.Content,
		RecType:   string(recommendation.RecType),
		SortOrder: recommendation.SortOrder,
		CreatedAt: recommendation.CreatedAt.Format(timeLayout),
	}
}
