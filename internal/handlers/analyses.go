package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/healthsync/backend/internal/ai"
	"example.com/healthsync/backend/internal/auth"
	"example.com/healthsync/backend/internal/coverage"
	"example.com/healthsync/backend/internal/models"
	"example.com/healthsync/backend/internal/notifications"
	"example.com/healthsync/backend/internal/repository"
)

const aiRequestAnalyzeInsurance = "analyze_insurance"

const (
	analysisSourceAI    = "ai"
	analysisSourceLocal = "local"
	analysisSourceDemo  = "demo"
	providerLocal       = "local"
)

type AnalysisHandler struct {
	Service  *ai.Service
	Analyses *repository.AnalysisRepository
	AIRepo   *repository.AIRepository
	Notifier *notifications.Hub
	Provider string
	Model    string
}

// NewAnalysisHandler создает обработчик разборов страховых документов.
func NewAnalysisHandler(service *ai.Service, analyses *repository.AnalysisRepository, aiRepo *repository.AIRepository, notifier *notifications.Hub, provider, model string) *AnalysisHandler {
	return &AnalysisHandler{
		Service:  service,
		Analyses: analyses,
		AIRepo:   aiRepo,
		Notifier: notifier,
		Provider: provider,
		Model:    model,
	}
}

type SubmitAnalysisRequest struct {
	DocumentText string `json:"document_text" validate:"max=100000"`
}

type AnalysisResponse struct {
	ID           uuid.UUID `json:"id"`
	PlanName     *string   `json:"plan_name,omitempty"`
	PolicyNumber *string   `json:"policy_number,omitempty"`
	Confidence   string    `json:"confidence"`
	AISummary    *string   `json:"ai_summary,omitempty"`
	Source       string    `json:"source"`
	CreatedAt    string    `json:"created_at"`
}

type AnalysisListResponse struct {
	Analyses []AnalysisResponse `json:"analyses"`
}

// Submit разбирает страховой документ и сохраняет результат.
func (h *AnalysisHandler) Submit(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req SubmitAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	analysis, source := h.analyzeDocument(c.Request().Context(), userID, req.DocumentText)

	planName := optionalString(analysis.PlanName)
	policyNumber := optionalString(analysis.PolicyNumber)
	summary := optionalString(analysis.Summary)

	categories := make([]repository.AnalysisCategoryInput, 0, len(analysis.Categories))
	for _, category := range analysis.Categories {
		categories = append(categories, repository.AnalysisCategoryInput{
			CategoryID:         category.CategoryID,
			DisplayLabel:       category.DisplayLabel,
			Covered:            category.Covered,
			CoveragePercentage: category.CoveragePercentage,
			AnnualLimit:        category.AnnualLimit,
			FrequencyLabel:     category.FrequencyLabel,
			Priority:           toCategoryPriority(category.Priority),
		})
	}

	recommendations := make([]repository.AnalysisRecommendationInput, 0, len(analysis.Recommendations))
	for _, content := range analysis.Recommendations {
		recommendations = append(recommendations, repository.AnalysisRecommendationInput{
			Content: content,
			RecType: models.RecommendationAI,
		})
	}

	stored, err := h.Analyses.Create(c.Request().Context(), userID, planName, policyNumber, string(analysis.Confidence), summary, source, categories, recommendations)
	if err != nil {
		return serverError(c)
	}

	slog.Info("insurance analysis stored",
		slog.String("analysis_id", stored.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("source", source),
		slog.String("confidence", string(analysis.Confidence)),
	)

	response, err := buildAnalysisDetailResponse(c.Request().Context(), h.Analyses, stored)
	if err != nil {
		return serverError(c)
	}

	publishAnalysisCompleted(h.Notifier, userID, stored.ID, string(analysis.Confidence))
	return c.JSON(http.StatusCreated, response)
}

// List возвращает разборы пользователя.
func (h *AnalysisHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	analyses, err := h.Analyses.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := make([]AnalysisResponse, 0, len(analyses))
	for _, analysis := range analyses {
		response = append(response, toAnalysisResponse(analysis))
	}

	return c.JSON(http.StatusOK, AnalysisListResponse{Analyses: response})
}

// Get возвращает разбор с категориями и рекомендациями.
func (h *AnalysisHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid analysis id")
	}

	analysis, err := h.Analyses.GetByID(c.Request().Context(), userID, analysisID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "analysis not found")
		}
		return serverError(c)
	}

	response, err := buildAnalysisDetailResponse(c.Request().Context(), h.Analyses, analysis)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, response)
}

// GetCoverage возвращает карту покрытия разбора.
func (h *AnalysisHandler) GetCoverage(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid analysis id")
	}

	analysis, err := h.Analyses.GetByID(c.Request().Context(), userID, analysisID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "analysis not found")
		}
		return serverError(c)
	}

	categories, err := h.Analyses.ListCategories(c.Request().Context(), analysis.ID)
	if err != nil {
		return serverError(c)
	}

	coverageMap := coverage.Normalize(toCoverageCategories(categories))
	return c.JSON(http.StatusOK, map[string]coverage.CoverageMap{"coverage": coverageMap})
}

// Delete удаляет разбор пользователя.
func (h *AnalysisHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid analysis id")
	}

	if err := h.Analyses.Delete(c.Request().Context(), userID, analysisID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "analysis not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// analyzeDocument выбирает путь разбора: удаленный AI либо локальные
// эвристики. Любая ошибка AI приводит к локальному разбору того же
// документа, поэтому результат есть всегда.
func (h *AnalysisHandler) analyzeDocument(ctx context.Context, userID uuid.UUID, documentText string) (coverage.Analysis, string) {
	if h.Provider == providerLocal || h.Service == nil {
		return h.localAnalysis(documentText)
	}

	if strings.TrimSpace(documentText) == "" {
		return coverage.DemoAnalysis(), analysisSourceDemo
	}

	payload, prompt, raw, err := h.Service.AnalyzeInsurance(ctx, ai.AnalyzeInsuranceInput{DocumentText: documentText})
	h.logAIRequest(ctx, userID, prompt, documentText, payload, raw, err)

	if err != nil {
		slog.Warn("ai analysis failed, falling back to local extraction",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return h.localAnalysis(documentText)
	}

	analysis := coverage.Extract(payload)
	if analysis.Confidence == coverage.ConfidenceDemo {
		return analysis, analysisSourceDemo
	}

	return analysis, analysisSourceAI
}

func (h *AnalysisHandler) localAnalysis(documentText string) (coverage.Analysis, string) {
	analysis := coverage.Extract(documentText)
	if analysis.Confidence == coverage.ConfidenceDemo {
		return analysis, analysisSourceDemo
	}

	return analysis, analysisSourceLocal
}

func (h *AnalysisHandler) logAIRequest(ctx context.Context, userID uuid.UUID, prompt, documentText, payload string, raw []byte, err error) {
	requestPayload, _ := json.Marshal(map[string]string{"document_text": documentText})

	log := repository.AIRequestLog{
		UserID:         userID,
		RequestType:    aiRequestAnalyzeInsurance,
		Provider:       h.Provider,
		Model:          h.Model,
		Prompt:         prompt,
		RequestPayload: requestPayload,
		RawResponse:    string(raw),
		Success:        err == nil,
	}
	if err == nil {
		log.ResponsePayload = []byte(payload)
	}
	if err != nil {
		errMsg := err.Error()
		log.ErrorMessage = &errMsg
	}

	_ = h.AIRepo.LogRequest(ctx, log)
}

func toAnalysisResponse(analysis models.InsuranceAnalysis) AnalysisResponse {
	return AnalysisResponse{
		ID:           analysis.ID,
		PlanName:     analysis.PlanName,
		PolicyNumber: analysis.PolicyNumber,
		Confidence:   analysis.Confidence,
		AISummary:    analysis.AISummary,
		Source:       analysis.Source,
		CreatedAt:    analysis.CreatedAt.Format(timeLayout),
	}
}

func toCategoryPriority(value string) models.CategoryPriority {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(models.PriorityHigh):
		return models.PriorityHigh
	case string(models.PriorityLow):
		return models.PriorityLow
	default:
		return models.PriorityMedium
	}
}

func toCoverageCategories(categories []models.HealthCategory) []coverage.HealthCategory {
	out := make([]coverage.HealthCategory, 0, len(categories))
	for _, category := range categories {
		out = append(out, coverage.HealthCategory{
			CategoryID:         category.CategoryID,
			DisplayLabel:       category.DisplayLabel,
			Covered:            category.Covered,
			CoveragePercentage: category.CoveragePercentage,
			AnnualLimit:        category.AnnualLimit,
			FrequencyLabel:     category.FrequencyLabel,
			Priority:           string(category.Priority),
		})
	}
	return out
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
