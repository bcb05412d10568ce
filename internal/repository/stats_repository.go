package repository

import (
	"context"
	"fmt"

	"expert-test/internal/domain"
	"expert-test/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

type sqlxStatsRepository struct {
	db *sqlx.DB
}

// NewSQLXStatsRepository creates the repository behind the admin dashboard
// and the database health check.
func NewSQLXStatsRepository(db *sqlx.DB) domain.StatsRepository {
	return &sqlxStatsRepository{db: db}
}

func (r *sqlxStatsRepository) GetAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	query := `SELECT
	    (SELECT COUNT(*) FROM users) AS total_users,
	    (SELECT COUNT(*) FROM questions) AS total_questions,
	    (SELECT COUNT(*) FROM answers) AS total_answers,
	    (SELECT COUNT(*) FROM user_answers) AS total_user_answers`

	var stats models.AdminStats
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get admin stats: %w", err)
	}
	return &domain.AdminStats{
		TotalUsers:       stats.TotalUsers,
		TotalQuestions:   stats.TotalQuestions,
		TotalAnswers:     stats.TotalAnswers,
		TotalUserAnswers: stats.TotalUserAnswers,
	}, nil
}

func (r *sqlxStatsRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
