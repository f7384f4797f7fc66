package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/healthsync/backend/internal/models"
)

type PreferencesRepository struct {
	db *pgxpool.Pool
}

// NewPreferencesRepository создает репозиторий настроек пользователя.
func NewPreferencesRepository(db *pgxpool.Pool) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// Get возвращает настройки пользователя.
func (r *PreferencesRepository) Get(ctx context.Context, userID uuid.UUID) (models.UserPreferences, error) {
	var preferences models.UserPreferences

	err := r.db.QueryRow(ctx,
		`SELECT user_id, important_services, time_preference, updated_at
		 FROM user_preferences
		 WHERE user_id = $1`,
		userID,
	).Scan(&preferences.UserID, &preferences.ImportantServices, &preferences.TimePreference, &preferences.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return preferences, ErrNotFound
		}
		return preferences, err
	}

	return preferences, nil
}

// Upsert сохраняет настройки пользователя, создавая запись при отсутствии.
func (r *PreferencesRepository) Upsert(ctx context.Context, userID uuid.UUID, importantServices []string, timePreference string) (models.UserPreferences, error) {
	var preferences models.UserPreferences

	if importantServices == nil {
		importantServices = []string{}
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO user_preferences (user_id, important_services, time_preference)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET important_services = EXCLUDED.important_services,
		     time_preference = EXCLUDED.time_preference,
		     updated_at = NOW()
		 RETURNING user_id, important_services, time_preference, updated_at`,
		userID, importantServices, timePreference,
	).Scan(&preferences.UserID, &preferences.ImportantServices, &preferences.TimePreference, &preferences.UpdatedAt)
	if err != nil {
		return preferences, err
	}

	return preferences, nil
}
