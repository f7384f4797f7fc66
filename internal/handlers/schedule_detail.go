package handlers

import (
	"context"

	"github.com/google/uuid"

	"example.com/healthsync/backend/internal/models"
	"example.com/healthsync/backend/internal/repository"
)

type ScheduleResponse struct {
	ID               uuid.UUID `json:"id"`
	AnalysisID       uuid.UUID `json:"analysis_id"`
	Year             int       `json:"year"`
	TimePreference   string    `json:"time_preference,omitempty"`
	AppointmentCount int       `json:"appointment_count"`
	CreatedAt        string    `json:"created_at"`
	UpdatedAt        string    `json:"updated_at"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

type AppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	Date          string    `json:"date"`
	Type          string    `json:"type"`
	Provider      string    `json:"provider"`
	Duration      string    `json:"duration"`
	EstimatedCost string    `json:"estimated_cost"`
	Status        string    `json:"status"`
	Category      string    `json:"category"`
	SortOrder     int       `json:"sort_order"`
}

type ScheduleDetailResponse struct {
	Schedule     ScheduleResponse      `json:"schedule"`
	Appointments []AppointmentResponse `json:"appointments"`
}

func buildScheduleDetailResponse(ctx context.Context, schedules *repository.ScheduleRepository, schedule models.Schedule) (ScheduleDetailResponse, error) {
	appointments, err := schedules.ListAppointments(ctx, schedule.ID)
	if err != nil {
		return ScheduleDetailResponse{}, err
	}

	appointmentResponses := make([]AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		appointmentResponses = append(appointmentResponses, toAppointmentResponse(appointment))
	}

	return ScheduleDetailResponse{
		Schedule:     toScheduleResponse(schedule, len(appointments)),
		Appointments: appointmentResponses,
	}, nil
}

func toScheduleResponse(schedule models.Schedule, appointmentCount int) ScheduleResponse {
	return ScheduleResponse{
		ID:               schedule.ID,
		AnalysisID:       schedule.AnalysisID,
		Year:             schedule.Year,
		TimePreference:   schedule.TimePreference,
		AppointmentCount: appointmentCount,
		CreatedAt:        schedule.CreatedAt.Format(timeLayout),
		UpdatedAt:        schedule.UpdatedAt.Format(timeLayout),
	}
}

func toAppointmentResponse(appointment models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            appointment.ID,
		Date:          appointment.Date.Format(dateLayout),
		Type:          appointment.Type,
		Provider:      appointment.Provider,
		Duration:      appointment.Duration,
		EstimatedCost: appointment.EstimatedCost,
		Status:        string(appointment.Status),
		Category:      appointment.Category,
		SortOrder:     appointment.SortOrder,
	}
}
