package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/healthsync/backend/internal/auth"
	"example.com/healthsync/backend/internal/models"
	"example.com/healthsync/backend/internal/repository"
)

type PreferencesHandler struct {
	Preferences *repository.PreferencesRepository
}

// NewPreferencesHandler создает обработчик настроек пользователя.
func NewPreferencesHandler(preferences *repository.PreferencesRepository) *PreferencesHandler {
	return &PreferencesHandler{Preferences: preferences}
}

type UpdatePreferencesRequest struct {
	ImportantServices []string `json:"important_services" validate:"max=50,dive,max=100"`
	TimePreference    string   `json:"time_preference" validate:"omitempty,oneof=morning afternoon evening"`
}

type PreferencesResponse struct {
	ImportantServices []string `json:"important_services"`
	TimePreference    string   `json:"time_preference,omitempty"`
	UpdatedAt         string   `json:"updated_at,omitempty"`
}

// Get возвращает настройки пользователя.
// При отсутствии сохраненных настроек возвращается пустой набор.
func (h *PreferencesHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	preferences, err := h.Preferences.Get(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, PreferencesResponse{ImportantServices: []string{}})
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toPreferencesResponse(preferences))
}

// Update сохраняет настройки пользователя.
func (h *PreferencesHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	services := make([]string, 0, len(req.ImportantServices))
	for _, service := range req.ImportantServices {
		trimmed := strings.TrimSpace(service)
		if trimmed == "" {
			continue
		}
		services = append(services, trimmed)
	}

	preferences, err := h.Preferences.Upsert(c.Request().Context(), userID, services, strings.TrimSpace(req.TimePreference))
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toPreferencesResponse(preferences))
}

func toPreferencesResponse(preferences models.UserPreferences) PreferencesResponse {
	services := preferences.ImportantServices
	if services == nil {
		services = []string{}
	}

	return PreferencesResponse{
		ImportantServices: services,
		TimePreference:    preferences.TimePreference,
		UpdatedAt:         preferences.UpdatedAt.Format(timeLayout),
	}
}
