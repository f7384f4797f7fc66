package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/healthsync/backend/internal/auth"
	"example.com/healthsync/backend/internal/models"
	"example.com/healthsync/backend/internal/repository"
)

type AddRecommendationRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// AddRecommendation добавляет пользовательскую рекомендацию к разбору.
func (h *AnalysisHandler) AddRecommendation(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid analysis id")
	}

	var req AddRecommendationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	recommendation, err := h.Analyses.AddRecommendation(c.Request().Context(), userID, analysisID, req.Content, models.RecommendationUser)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "analysis not found")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "content is required")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, toRecommendationResponse(recommendation))
}

// DeleteRecommendation удаляет рекомендацию разбора.
func (h *AnalysisHandler) DeleteRecommendation(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	recommendationID, err := uuid.Parse(c.Param("recommendationId"))
	if err != nil {
		return badRequest(c, "invalid recommendation id")
	}

	if err := h.Analyses.DeleteRecommendation(c.Request().Context(), userID, recommendationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "recommendation not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
