package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/healthsync/backend/internal/auth"
	"example.com/healthsync/backend/internal/repository"
)

const timeLayout = time.RFC3339

// ExportJSON выгружает график в JSON-файл.
func (h *ScheduleHandler) ExportJSON(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid schedule id")
	}

	schedule, err := h.Schedules.GetByID(c.Request().Context(), userID, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "schedule not found")
		}
		return serverError(c)
	}

	response, err := buildScheduleDetailResponse(c.Request().Context(), h.Schedules, schedule)
	if err != nil {
		return serverError(c)
	}

	filename := "schedule-" + schedule.ID.String() + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, response)
}

// ExportCSV выгружает приемы графика в CSV-файл.
func (h *ScheduleHandler) ExportCSV(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid schedule id")
	}

	schedule, err := h.Schedules.GetByID(c.Request().Context(), userID, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "schedule not found")
		}
		return serverError(c)
	}

	response, err := buildScheduleDetailResponse(c.Request().Context(), h.Schedules, schedule)
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeAppointmentsCSV(writer, response); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "schedule-" + schedule.ID.String() + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeAppointmentsCSV(writer *csv.Writer, response ScheduleDetailResponse) error {
	header := []string{
		"schedule_id",
		"year",
		"date",
		"type",
		"provider",
		"duration",
		"estimated_cost",
		"status",
		"category",
		"sort_order",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, appointment := range response.Appointments {
		record := []string{
			response.Schedule.ID.String(),
			formatInt(response.Schedule.Year),
			appointment.Date,
			appointment.Type,
			appointment.Provider,
			appointment.Duration,
			appointment.EstimatedCost,
			appointment.Status,
			appointment.Category,
			formatInt(appointment.SortOrder),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatInt(value int) string {
	return strconv.Itoa(value)
}
