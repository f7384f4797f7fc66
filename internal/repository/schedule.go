package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/healthsync/backend/internal/models"
)

type ScheduleRepository struct {
	db *pgxpool.Pool
}

type AppointmentInput struct {
	Date          time.Time
	Type          string
	Provider      string
	Duration      string
	EstimatedCost string
	Status        models.AppointmentStatus
	Category      string
}

type ScheduleWithCount struct {
	Schedule         models.Schedule
	AppointmentCount int
}

// NewScheduleRepository создает репозиторий графиков приемов.
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create сохраняет график вместе с приемами.
func (r *ScheduleRepository) Create(ctx context.Context, userID, analysisID uuid.UUID, year int, timePreference string, appointments []AppointmentInput) (models.Schedule, error) {
	var schedule models.Schedule

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return schedule, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM insurance_analyses WHERE id = $1 AND user_id = $2
		 )`,
		analysisID, userID,
	).Scan(&exists)
	if err != nil {
		return schedule, err
	}
	if !exists {
		return schedule, ErrNotFound
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO schedules (user_id, analysis_id, year, time_preference)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, analysis_id, year, time_preference, created_at, updated_at`,
		userID, analysisID, year, timePreference,
	).Scan(&schedule.ID, &schedule.UserID, &schedule.AnalysisID, &schedule.Year, &schedule.TimePreference, &schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		return schedule, err
	}

	if err := insertAppointments(ctx, tx, schedule.ID, appointments); err != nil {
		return schedule, err
	}

	if err := tx.Commit(ctx); err != nil {
		return schedule, err
	}

	return schedule, nil
}

// GetByID возвращает график пользователя по идентификатору.
func (r *ScheduleRepository) GetByID(ctx context.Context, userID, scheduleID uuid.UUID) (models.Schedule, error) {
	var schedule models.Schedule

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, analysis_id, year, time_preference, created_at, updated_at
		 FROM schedules
		 WHERE id = $1 AND user_id = $2`,
		scheduleID, userID,
	).Scan(&schedule.ID, &schedule.UserID, &schedule.AnalysisID, &schedule.Year, &schedule.TimePreference, &schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule, ErrNotFound
		}
		return schedule, err
	}

	return schedule, nil
}

// ListByUser возвращает графики пользователя с числом приемов.
func (r *ScheduleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]ScheduleWithCount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.user_id, s.analysis_id, s.year, s.time_preference, s.created_at, s.updated_at,
		        COUNT(a.id) AS appointment_count
		 FROM schedules s
		 LEFT JOIN appointments a ON a.schedule_id = s.id
		 WHERE s.user_id = $1
		 GROUP BY s.id, s.user_id, s.analysis_id, s.year, s.time_preference, s.created_at, s.updated_at
		 ORDER BY s.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]ScheduleWithCount, 0)
	for rows.Next() {
		var schedule models.Schedule
		var count int

		err := rows.Scan(&schedule.ID, &schedule.UserID, &schedule.AnalysisID, &schedule.Year, &schedule.TimePreference, &schedule.CreatedAt, &schedule.UpdatedAt, &count)
		if err != nil {
			return nil, err
		}

		schedules = append(schedules, ScheduleWithCount{Schedule: schedule, AppointmentCount: count})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// ListAppointments возвращает приемы графика в сохраненном порядке.
func (r *ScheduleRepository) ListAppointments(ctx context.Context, scheduleID uuid.UUID) ([]models.Appointment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, schedule_id, date, type, provider, duration, estimated_cost, status, category, sort_order, created_at, updated_at
		 FROM appointments
		 WHERE schedule_id = $1
		 ORDER BY sort_order, created_at`,
		scheduleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]models.Appointment, 0)
	for rows.Next() {
		var appointment models.Appointment

		err := rows.Scan(&appointment.ID, &appointment.ScheduleID, &appointment.Date, &appointment.Type, &appointment.Provider, &appointment.Duration, &appointment.EstimatedCost, &appointment.Status, &appointment.Category, &appointment.SortOrder, &appointment.CreatedAt, &appointment.UpdatedAt)
		if err != nil {
			return nil, err
		}

		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

// ReplaceAppointments заменяет приемы графика новым набором.
func (r *ScheduleRepository) ReplaceAppointments(ctx context.Context, userID, scheduleID uuid.UUID, appointments []AppointmentInput) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM schedules WHERE id = $1 AND user_id = $2
		 )`,
		scheduleID, userID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM appointments WHERE schedule_id = $1`,
		scheduleID,
	)
	if err != nil {
		return err
	}

	if err := insertAppointments(ctx, tx, scheduleID, appointments); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE schedules SET updated_at = NOW() WHERE id = $1`,
		scheduleID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateAppointmentStatus меняет статус приема пользователя.
func (r *ScheduleRepository) UpdateAppointmentStatus(ctx context.Context, userID, appointmentID uuid.UUID, status models.AppointmentStatus) (models.Appointment, error) {
	var appointment models.Appointment

	err := r.db.QueryRow(ctx,
		`UPDATE appointments AS a
		 SET status = $3, updated_at = NOW()
		 FROM schedules s
		 WHERE a.id = $1 AND a.schedule_id = s.id AND s.user_id = $2
		 RETURNING a.id, a.schedule_id, a.date, a.type, a.provider, a.duration, a.estimated_cost, a.status, a.category, a.sort_order, a.created_at, a.updated_at`,
		appointmentID, userID, status,
	).Scan(&appointment.ID, &appointment.ScheduleID, &appointment.Date, &appointment.Type, &appointment.Provider, &appointment.Duration, &appointment.EstimatedCost, &appointment.Status, &appointment.Category, &appointment.SortOrder, &appointment.CreatedAt, &appointment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return appointment, ErrNotFound
		}
		return appointment, err
	}

	return appointment, nil
}

// Delete удаляет график пользователя вместе с приемами.
func (r *ScheduleRepository) Delete(ctx context.Context, userID, scheduleID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM schedules
		 WHERE id = $1 AND user_id = $2`,
		scheduleID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func insertAppointments(ctx context.Context, tx pgx.Tx, scheduleID uuid.UUID, appointments []AppointmentInput) error {
	for idx, appointment := range appointments {
		if strings.TrimSpace(appointment.Type) == "" || appointment.Date.IsZero() {
			return ErrInvalid
		}

		status := appointment.Status
		if status == "" {
			status = models.AppointmentProposed
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO appointments (id, schedule_id, date, type, provider, duration, estimated_cost, status, category, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			uuid.New(), scheduleID, appointment.Date, appointment.Type, appointment.Provider, appointment.Duration, appointment.EstimatedCost, status, appointment.Category, idx,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
