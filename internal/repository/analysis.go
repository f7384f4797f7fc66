package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/healthsync/backend/internal/models"
)

type AnalysisRepository struct {
	db *pgxpool.Pool
}

type AnalysisCategoryInput struct {
	CategoryID         string
	DisplayLabel       string
	Covered            bool
	CoveragePercentage int
	AnnualLimit        *int
	FrequencyLabel     string
	Priority           models.CategoryPriority
}

type AnalysisRecommendationInput struct {
	Content string
	RecType models.RecommendationType
}

// NewAnalysisRepository создает репозиторий разборов страховых документов.
func NewAnalysisRepository(db *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create сохраняет разбор вместе с категориями покрытия и рекомендациями.
func (r *AnalysisRepository) Create(ctx context.Context, userID uuid.UUID, planName, policyNumber *string, confidence string, summary *string, source string, categories []AnalysisCategoryInput, recommendations []AnalysisRecommendationInput) (models.InsuranceAnalysis, error) {
	var analysis models.InsuranceAnalysis

	if len(categories) == 0 {
		return analysis, ErrInvalid
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return analysis, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO insurance_analyses (user_id, plan_name, policy_number, confidence, ai_summary, source)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, plan_name, policy_number, confidence, ai_summary, source, created_at`,
		userID, planName, policyNumber, confidence, summary, source,
	).Scan(&analysis.ID, &analysis.UserID, &analysis.PlanName, &analysis.PolicyNumber, &analysis.Confidence, &analysis.AISummary, &analysis.Source, &analysis.CreatedAt)
	if err != nil {
		return analysis, err
	}

	for idx, category := range categories {
		if strings.TrimSpace(category.CategoryID) == "" {
			return analysis, ErrInvalid
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO health_categories (id, analysis_id, category_id, display_label, covered, coverage_percentage, annual_limit, frequency_label, priority, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			uuid.New(), analysis.ID, category.CategoryID, category.DisplayLabel, category.Covered, category.CoveragePercentage, category.AnnualLimit, category.FrequencyLabel, category.Priority, idx,
		)
		if err != nil {
			return analysis, err
		}
	}

	for idx, recommendation := range recommendations {
		if strings.TrimSpace(recommendation.Content) == "" {
			return analysis, ErrInvalid
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO recommendations (id, analysis_id, content, rec_type, sort_order)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), analysis.ID, recommendation.Content, recommendation.RecType, idx,
		)
		if err != nil {
			return analysis, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return analysis, err
	}

	return analysis, nil
}

// GetByID возвращает разбор пользователя по идентификатору.
func (r *AnalysisRepository) GetByID(ctx context.Context, userID, analysisID uuid.UUID) (models.InsuranceAnalysis, error) {
	var analysis models.InsuranceAnalysis

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, plan_name, policy_number, confidence, ai_summary, source, created_at
		 FROM insurance_analyses
		 WHERE id = $1 AND user_id = $2`,
		analysisID, userID,
	).Scan(&analysis.ID, &analysis.UserID, &analysis.PlanName, &analysis.PolicyNumber, &analysis.Confidence, &analysis.AISummary, &analysis.Source, &analysis.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return analysis, ErrNotFound
		}
		return analysis, err
	}

	return analysis, nil
}

// ListByUser возвращает разборы пользователя, новые первыми.
func (r *AnalysisRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.InsuranceAnalysis, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, plan_name, policy_number, confidence, ai_summary, source, created_at
		 FROM insurance_analyses
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	analyses := make([]models.InsuranceAnalysis, 0)
	for rows.Next() {
		var analysis models.InsuranceAnalysis

		err := rows.Scan(&analysis.ID, &analysis.UserID, &analysis.PlanName, &analysis.PolicyNumber, &analysis.Confidence, &analysis.AISummary, &analysis.Source, &analysis.CreatedAt)
		if err != nil {
			return nil, err
		}

		analyses = append(analyses, analysis)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return analyses, nil
}

// ListCategories возвращает категории покрытия разбора.
func (r *AnalysisRepository) ListCategories(ctx context.Context, analysisID uuid.UUID) ([]models.HealthCategory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, analysis_id, category_id, display_label, covered, coverage_percentage, annual_limit, frequency_label, priority, sort_order, created_at
		 FROM health_categories
		 WHERE analysis_id = $1
		 ORDER BY sort_order, created_at`,
		analysisID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.HealthCategory, 0)
	for rows.Next() {
		var category models.HealthCategory

		err := rows.Scan(&category.ID, &category.AnalysisID, &category.CategoryID, &category.DisplayLabel, &category.Covered, &category.CoveragePercentage, &category.AnnualLimit, &category.FrequencyLabel, &category.Priority, &category.SortOrder, &category.CreatedAt)
		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// ListRecommendations возвращает рекомендации разбора.
func (r *AnalysisRepository) ListRecommendations(ctx context.Context, analysisID uuid.UUID) ([]models.Recommendation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, analysis_id, content, rec_type, sort_order, created_at
		 FROM recommendations
		 WHERE analysis_id = $1
		 ORDER BY sort_order, created_at`,
		analysisID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recommendations := make([]models.Recommendation, 0)
	for rows.Next() {
		var recommendation models.Recommendation

		err := rows.Scan(&recommendation.ID, &recommendation.AnalysisID, &recommendation.Content, &recommendation.RecType, &recommendation.SortOrder, &recommendation.CreatedAt)
		if err != nil {
			return nil, err
		}

		recommendations = append(recommendations, recommendation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recommendations, nil
}

// AddRecommendation добавляет пользовательскую рекомендацию к разбору.
func (r *AnalysisRepository) AddRecommendation(ctx context.Context, userID, analysisID uuid.UUID, content string, recType models.RecommendationType) (models.Recommendation, error) {
	var recommendation models.Recommendation

	if strings.TrimSpace(content) == "" {
		return recommendation, ErrInvalid
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return recommendation, err
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
		return recommendation, err
	}
	if !exists {
		return recommendation, ErrNotFound
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO recommendations (id, analysis_id, content, rec_type, sort_order)
		 VALUES ($1, $2, $3, $4, (
			SELECT COALESCE(MAX(sort_order), -1) + 1 FROM recommendations WHERE analysis_id = $2
		 ))
		 RETURNING id, analysis_id, content, rec_type, sort_order, created_at`,
		uuid.New(), analysisID, content, recType,
	).Scan(&recommendation.ID, &recommendation.AnalysisID, &recommendation.Content, &recommendation.RecType, &recommendation.SortOrder, &recommendation.CreatedAt)
	if err != nil {
		return recommendation, err
	}

	if err := tx.Commit(ctx); err != nil {
		return recommendation, err
	}

	return recommendation, nil
}

// DeleteRecommendation удаляет рекомендацию разбора пользователя.
func (r *AnalysisRepository) DeleteRecommendation(ctx context.Context, userID, recommendationID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM recommendations r
		 USING insurance_analyses a
		 WHERE r.id = $1 AND r.analysis_id = a.id AND a.user_id = $2`,
		recommendationID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete удаляет разбор пользователя вместе с зависимыми записями.
func (r *AnalysisRepository) Delete(ctx context.Context, userID, analysisID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM insurance_analyses
		 WHERE id = $1 AND user_id = $2`,
		analysisID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
