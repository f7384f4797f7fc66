package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/healthsync/backend/internal/auth"
	"example.com/healthsync/backend/internal/repository"
)

type StatsHandler struct {
	Stats *repository.StatsRepository
}

// NewStatsHandler создает обработчик статистики.
func NewStatsHandler(stats *repository.StatsRepository) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

type OverviewResponse struct {
	TotalAnalyses         int `json:"total_analyses"`
	TotalSchedules        int `json:"total_schedules"`
	TotalAppointments     int `json:"total_appointments"`
	UpcomingAppointments  int `json:"upcoming_appointments"`
	CompletedAppointments int `json:"completed_appointments"`
}

type CategoryActivityResponse struct {
	Categories []CategoryActivityItem `json:"categories"`
}

type CategoryActivityItem struct {
	Category         string  `json:"category"`
	AppointmentCount int     `json:"appointment_count"`
	NextDate         *string `json:"next_date,omitempty"`
}

// Overview возвращает сводную статистику пользователя.
func (h *StatsHandler) Overview(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	stats, err := h.Stats.Overview(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, OverviewResponse{
		TotalAnalyses:         stats.TotalAnalyses,
		TotalSchedules:        stats.TotalSchedules,
		TotalAppointments:     stats.TotalAppointments,
		UpcomingAppointments:  stats.UpcomingAppointments,
		CompletedAppointments: stats.CompletedAppointments,
	})
}

// ByCategory возвращает активность пользователя по категориям.
func (h *StatsHandler) ByCategory(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	items, err := h.Stats.ActivityByCategory(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	categories := make([]CategoryActivityItem, 0, len(items))
	for _, item := range items {
		category := CategoryActivityItem{
			Category:         item.Category,
			AppointmentCount: item.AppointmentCount,
		}
		if item.NextDate != nil {
			formatted := item.NextDate.Format(dateLayout)
			category.NextDate = &formatted
		}
		categories = append(categories, category)
	}

	return c.JSON(http.StatusOK, CategoryActivityResponse{Categories: categories})
}
