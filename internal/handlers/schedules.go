package handlers

import (
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/healthsync/backend/internal/auth"
	"example.com/healthsync/backend/internal/coverage"
	"example.com/healthsync/backend/internal/models"
	"example.com/healthsync/backend/internal/notifications"
	"example.com/healthsync/backend/internal/repository"
	"example.com/healthsync/backend/internal/schedule"
)

const dateLayout = "2006-01-02"

type ScheduleHandler struct {
	Schedules   *repository.ScheduleRepository
	Analyses    *repository.AnalysisRepository
	Preferences *repository.PreferencesRepository
	Notifier    *notifications.Hub
}

// NewScheduleHandler создает обработчик графиков приемов.
func NewScheduleHandler(schedules *repository.ScheduleRepository, analyses *repository.AnalysisRepository, preferences *repository.PreferencesRepository, notifier *notifications.Hub) *ScheduleHandler {
	return &ScheduleHandler{
		Schedules:   schedules,
		Analyses:    analyses,
		Preferences: preferences,
		Notifier:    notifier,
	}
}

type GenerateScheduleRequest struct {
	AnalysisID string `json:"analysis_id" validate:"required"`
	Year       int    `json:"year" validate:"required,gte=2000,lte=2100"`
}

// Generate собирает годовой график приемов по карте покрытия разбора.
func (h *ScheduleHandler) Generate(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req GenerateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	analysisID, err := uuid.Parse(req.AnalysisID)
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
	preferences := h.loadPreferences(c, userID)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	generated := schedule.Assemble(coverageMap, preferences, req.Year, rng)

	appointments, err := toAppointmentInputs(generated)
	if err != nil {
		return serverError(c)
	}

	stored, err := h.Schedules.Create(c.Request().Context(), userID, analysis.ID, req.Year, preferences.TimePreference, appointments)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "analysis not found")
		}
		return serverError(c)
	}

	slog.Info("schedule generated",
		slog.String("schedule_id", stored.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("year", req.Year),
		slog.Int("appointments", len(generated)),
	)

	response, err := buildScheduleDetailResponse(c.Request().Context(), h.Schedules, stored)
	if err != nil {
		return serverError(c)
	}

	publishScheduleEvent(h.Notifier, userID, notifications.EventScheduleGenerated, stored.ID, len(generated))
	return c.JSON(http.StatusCreated, response)
}

// Regenerate пересобирает даты существующего графика.
func (h *ScheduleHandler) Regenerate(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid schedule id")
	}

	stored, err := h.Schedules.GetByID(c.Request().Context(), userID, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "schedule not found")
		}
		return serverError(c)
	}

	existing, err := h.Schedules.ListAppointments(c.Request().Context(), stored.ID)
	if err != nil {
		return serverError(c)
	}

	generated := make([]schedule.GeneratedAppointment, 0, len(existing))
	for _, appointment := range existing {
		generated = append(generated, schedule.GeneratedAppointment{
			Date:          appointment.Date.Format(dateLayout),
			Type:          appointment.Type,
			Provider:      appointment.Provider,
			Duration:      appointment.Duration,
			EstimatedCost: appointment.EstimatedCost,
			Status:        string(appointment.Status),
			Category:      appointment.Category,
			TimeOfDay:     stored.TimePreference,
		})
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	regenerated := schedule.Regenerate(generated, rng)

	appointments, err := toAppointmentInputs(regenerated)
	if err != nil {
		return serverError(c)
	}

	if err := h.Schedules.ReplaceAppointments(c.Request().Context(), userID, stored.ID, appointments); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "schedule not found")
		}
		return serverError(c)
	}

	slog.Info("schedule regenerated",
		slog.String("schedule_id", stored.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("appointments", len(regenerated)),
	)

	response, err := buildScheduleDetailResponse(c.Request().Context(), h.Schedules, stored)
	if err != nil {
		return serverError(c)
	}

	publishScheduleEvent(h.Notifier, userID, notifications.EventScheduleUpdated, stored.ID, len(regenerated))
	return c.JSON(http.StatusOK, response)
}

// List возвращает графики пользователя.
func (h *ScheduleHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	schedules, err := h.Schedules.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := make([]ScheduleResponse, 0, len(schedules))
	for _, item := range schedules {
		response = append(response, toScheduleResponse(item.Schedule, item.AppointmentCount))
	}

	return c.JSON(http.StatusOK, ScheduleListResponse{Schedules: response})
}

// Get возвращает график с приемами.
func (h *ScheduleHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid schedule id")
	}

	stored, err := h.Schedules.GetByID(c.Request().Context(), userID, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "schedule not found")
		}
		return serverError(c)
	}

	response, err := buildScheduleDetailResponse(c.Request().Context(), h.Schedules, stored)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, response)
}

// Delete удаляет график пользователя.
func (h *ScheduleHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid schedule id")
	}

	if err := h.Schedules.Delete(c.Request().Context(), userID, scheduleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "schedule not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateAppointmentStatus меняет статус приема.
func (h *ScheduleHandler) UpdateAppointmentStatus(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	var req UpdateAppointmentStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	status, ok := mapAppointmentStatus(req.Status)
	if !ok {
		return badRequest(c, "invalid status")
	}

	appointment, err := h.Schedules.UpdateAppointmentStatus(c.Request().Context(), userID, appointmentID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "appointment not found")
		}
		return serverError(c)
	}

	publishAppointmentUpdated(h.Notifier, userID, appointment.ID, string(appointment.Status))
	return c.JSON(http.StatusOK, toAppointmentResponse(appointment))
}

func (h *ScheduleHandler) loadPreferences(c echo.Context, userID uuid.UUID) schedule.Preferences {
	stored, err := h.Preferences.Get(c.Request().Context(), userID)
	if err != nil {
		return schedule.Preferences{}
	}

	return schedule.Preferences{
		ImportantServices: stored.ImportantServices,
		TimePreference:    stored.TimePreference,
	}
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func mapAppointmentStatus(value string) (models.AppointmentStatus, bool) {
	switch models.AppointmentStatus(value) {
	case models.AppointmentProposed:
		return models.AppointmentProposed, true
	case models.AppointmentConfirmed:
		return models.AppointmentConfirmed, true
	case models.AppointmentCompleted:
		return models.AppointmentCompleted, true
	case models.AppointmentCancelled:
		return models.AppointmentCancelled, true
	default:
		return "", false
	}
}

func toAppointmentInputs(generated []schedule.GeneratedAppointment) ([]repository.AppointmentInput, error) {
	appointments := make([]repository.AppointmentInput, 0, len(generated))
	for _, item := range generated {
		date, err := time.Parse(dateLayout, item.Date)
		if err != nil {
			return nil, err
		}

		appointments = append(appointments, repository.AppointmentInput{
			Date:          date,
			Type:          item.Type,
			Provider:      item.Provider,
			Duration:      item.Duration,
			EstimatedCost: item.EstimatedCost,
			Status:        models.AppointmentStatus(item.Status),
			Category:      item.Category,
		})
	}

	return appointments, nil
}
