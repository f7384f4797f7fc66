package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	db *pgxpool.Pool
}

type OverviewStats struct {
	TotalAnalyses         int
	TotalSchedules        int
	TotalAppointments     int
	UpcomingAppointments  int
	CompletedAppointments int
}

type CategoryActivity struct {
	Category         string
	AppointmentCount int
	NextDate         *time.Time
}

// NewStatsRepository создает репозиторий статистики.
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Overview возвращает сводную статистику пользователя.
func (r *StatsRepository) Overview(ctx context.Context, userID uuid.UUID) (OverviewStats, error) {
	var stats OverviewStats

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM insurance_analyses WHERE user_id = $1`,
		userID,
	).Scan(&stats.TotalAnalyses)
	if err != nil {
		return stats, err
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM schedules WHERE user_id = $1`,
		userID,
	).Scan(&stats.TotalSchedules)
	if err != nil {
		return stats, err
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE a.date >= CURRENT_DATE AND a.status NOT IN ('cancelled', 'completed')),
		        COUNT(*) FILTER (WHERE a.status = 'completed')
		 FROM appointments a
		 JOIN schedules s ON s.id = a.schedule_id
		 WHERE s.user_id = $1`,
		userID,
	).Scan(&stats.TotalAppointments, &stats.UpcomingAppointments, &stats.CompletedAppointments)
	if err != nil {
		return stats, err
	}

	return stats, nil
}

// ActivityByCategory возвращает приемы пользователя в разрезе категорий.
func (r *StatsRepository) ActivityByCategory(ctx context.Context, userID uuid.UUID) ([]CategoryActivity, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.category,
		        COUNT(*) AS appointment_count,
		        MIN(a.date) FILTER (WHERE a.date >= CURRENT_DATE AND a.status NOT IN ('cancelled', 'completed')) AS next_date
		 FROM appointments a
		 JOIN schedules s ON s.id = a.schedule_id
		 WHERE s.user_id = $1
		 GROUP BY a.category
		 ORDER BY appointment_count DESC, a.category`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activity := make([]CategoryActivity, 0)
	for rows.Next() {
		var row CategoryActivity
		err := rows.Scan(&row.Category, &row.AppointmentCount, &row.NextDate)
		if err != nil {
			return nil, err
		}
		activity = append(activity, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activity, nil
}
