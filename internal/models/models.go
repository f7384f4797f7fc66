package models

import (
	"time"

	"github.com/google/uuid"
)

type CategoryPriority string

type AppointmentStatus string

type RecommendationType string

const (
	PriorityHigh   CategoryPriority = "high"
	PriorityMedium CategoryPriority = "medium"
	PriorityLow    CategoryPriority = "low"

	AppointmentProposed  AppointmentStatus = "proposed"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"

	RecommendationAI   RecommendationType = "ai"
	RecommendationUser RecommendationType = "user"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}

type InsuranceAnalysis struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	PlanName     *string   `json:"plan_name,omitempty"`
	PolicyNumber *string   `json:"policy_number,omitempty"`
	Confidence   string    `json:"confidence"`
	AISummary    *string   `json:"ai_summary,omitempty"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"created_at"`
}

type HealthCategory struct {
	ID                 uuid.UUID        `json:"id"`
	AnalysisID         uuid.UUID        `json:"analysis_id"`
	CategoryID         string           `json:"category_id"`
	DisplayLabel       string           `json:"display_label"`
	Covered            bool             `json:"covered"`
	CoveragePercentage int              `json:"coverage_percentage"`
	AnnualLimit        *int             `json:"annual_limit,omitempty"`
	FrequencyLabel     string           `json:"frequency_label"`
	Priority           CategoryPriority `json:"priority"`
	SortOrder          int              `json:"sort_order"`
	CreatedAt          time.Time        `json:"created_at"`
}

type Recommendation struct {
	ID         uuid.UUID          `json:"id"`
	AnalysisID uuid.UUID          `json:"analysis_id"`
	Content    string             `json:"content"`
	RecType    RecommendationType `json:"rec_type"`
	SortOrder  int                `json:"sort_order"`
	CreatedAt  time.Time          `json:"created_at"`
}

type UserPreferences struct {
	UserID            uuid.UUID `json:"user_id"`
	ImportantServices []string  `json:"important_services"`
	TimePreference    string    `json:"time_preference"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Schedule struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	AnalysisID     uuid.UUID `json:"analysis_id"`
	Year           int       `json:"year"`
	TimePreference string    `json:"time_preference"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Appointment struct {
	ID            uuid.UUID         `json:"id"`
	ScheduleID    uuid.UUID         `json:"schedule_id"`
	Date          time.Time         `json:"date"`
	Type          string            `json:"type"`
	Provider      string            `json:"provider"`
	Duration      string            `json:"duration"`
	EstimatedCost string            `json:"estimated_cost"`
	Status        AppointmentStatus `json:"status"`
	Category      string            `json:"category"`
	SortOrder     int               `json:"sort_order"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
