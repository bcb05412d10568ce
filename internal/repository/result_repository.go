package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"expert-test/internal/domain"
	"expert-test/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const testResultColumns = `id, user_id, total_questions, total_score, percentage::float8 AS percentage, completed_at`

// sqlxResultRepository implements domain.ResultRepository using sqlx.
type sqlxResultRepository struct {
	db *sqlx.DB
}

// NewSQLXResultRepository creates a new result repository.
func NewSQLXResultRepository(db *sqlx.DB) domain.ResultRepository {
	return &sqlxResultRepository{db: db}
}

func toDomainAttempt(m *models.TestResult) *domain.TestAttempt {
	return &domain.TestAttempt{
		ID:             m.ID,
		UserID:         m.UserID,
		TotalQuestions: m.TotalQuestions,
		TotalScore:     m.TotalScore,
		Percentage:     m.Percentage,
		CompletedAt:    m.CompletedAt,
	}
}

func toDomainCompetenceResults(rows []models.CompetenceResult) []domain.CompetenceResult {
	out := make([]domain.CompetenceResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.CompetenceResult{
			ID:             r.ID,
			TestResultID:   r.TestResultID,
			Competence:     r.Competence,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Percentage:     r.Percentage,
		})
	}
	return out
}

// SaveAttempt inserts the attempt and its child rows and sets attempt.ID.
// It must run inside a transaction for the writes to be atomic.
func (r *sqlxResultRepository) SaveAttempt(ctx context.Context, attempt *domain.TestAttempt, competences []domain.CompetenceResult, answers []domain.SubmittedAnswer) error {
	exec := GetExecutor(ctx, r.db)

	insertAttempt := `INSERT INTO test_results (user_id, total_questions, total_score, percentage, completed_at)
	                  VALUES ($1, $2, $3, $4, $5)
	                  RETURNING id`
	err := exec.QueryRowxContext(ctx, insertAttempt,
		attempt.UserID, attempt.TotalQuestions, attempt.TotalScore, attempt.Percentage, attempt.CompletedAt,
	).Scan(&attempt.ID)
	if err != nil {
		return fmt.Errorf("failed to insert test result: %w", err)
	}

	if len(answers) > 0 {
		rows := make([]models.UserAnswer, 0, len(answers))
		for i := range answers {
			answers[i].TestResultID = attempt.ID
			rows = append(rows, models.UserAnswer{
				TestResultID: attempt.ID,
				QuestionID:   answers[i].QuestionID,
				AnswerID:     answers[i].AnswerID,
				IsCorrect:    answers[i].IsCorrect,
			})
		}
		insertAnswers := `INSERT INTO user_answers (test_result_id, question_id, answer_id, is_correct)
		                  VALUES (:test_result_id, :question_id, :answer_id, :is_correct)`
		if _, err := exec.NamedExecContext(ctx, insertAnswers, rows); err != nil {
			if isForeignKeyViolation(err) {
				return domain.NewReferenceInUseError("Submitted answer refers to a question or answer that no longer exists", err)
			}
			return fmt.Errorf("failed to insert user answers: %w", err)
		}
	}

	if len(competences) > 0 {
		rows := make([]models.CompetenceResult, 0, len(competences))
		for i := range competences {
			competences[i].TestResultID = attempt.ID
			rows = append(rows, models.CompetenceResult{
				TestResultID:   attempt.ID,
				Competence:     competences[i].Competence,
				Score:          competences[i].Score,
				TotalQuestions: competences[i].TotalQuestions,
				Percentage:     competences[i].Percentage,
			})
		}
		insertCompetences := `INSERT INTO competence_results (test_result_id, competence, score, total_questions, percentage)
		                      VALUES (:test_result_id, :competence, :score, :total_questions, :percentage)`
		if _, err := exec.NamedExecContext(ctx, insertCompetences, rows); err != nil {
			return fmt.Errorf("failed to insert competence results: %w", err)
		}
	}

	return nil
}

// GetAttempt returns nil, nil when the attempt does not exist or belongs to
// another user.
func (r *sqlxResultRepository) GetAttempt(ctx context.Context, userID, attemptID int64) (*domain.TestAttempt, error) {
	var row models.TestResult
	query := `SELECT ` + testResultColumns + ` FROM test_results WHERE id = $1 AND user_id = $2`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, attemptID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get test result %d: %w", attemptID, err)
	}
	return toDomainAttempt(&row), nil
}

// ListAttempts returns the user's attempts, newest first. limit <= 0 means all.
func (r *sqlxResultRepository) ListAttempts(ctx context.Context, userID int64, limit int) ([]domain.TestAttempt, error) {
	query := `SELECT ` + testResultColumns + ` FROM test_results WHERE user_id = $1 ORDER BY completed_at DESC, id DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	var rows []models.TestResult
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list test results: %w", err)
	}

	attempts := make([]domain.TestAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, *toDomainAttempt(&rows[i]))
	}
	return attempts, nil
}

// GetCompetenceResults returns the breakdown of one attempt ordered by competence.
func (r *sqlxResultRepository) GetCompetenceResults(ctx context.Context, attemptID int64) ([]domain.CompetenceResult, error) {
	query := `SELECT id, test_result_id, competence, score, total_questions, percentage::float8 AS percentage
	          FROM competence_results
	          WHERE test_result_id = $1
	          ORDER BY competence`

	var rows []models.CompetenceResult
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get competence results: %w", err)
	}
	return toDomainCompetenceResults(rows), nil
}

// ListUserCompetenceResults returns every competence row across all of the
// user's attempts.
func (r *sqlxResultRepository) ListUserCompetenceResults(ctx context.Context, userID int64) ([]domain.CompetenceResult, error) {
	query := `SELECT cr.id, cr.test_result_id, cr.competence, cr.score, cr.total_questions, cr.percentage::float8 AS percentage
	          FROM competence_results cr
	          JOIN test_results tr ON tr.id = cr.test_result_id
	          WHERE tr.user_id = $1
	          ORDER BY cr.competence, cr.id`

	var rows []models.CompetenceResult
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list competence results: %w", err)
	}
	return toDomainCompetenceResults(rows), nil
}

func (r *sqlxResultRepository) GetSubmittedAnswerRows(ctx context.Context, attemptID int64) ([]domain.SubmittedAnswerRow, error) {
	query := `SELECT ua.question_id, q.question_text, q.competence, q.question_type,
	                 ua.answer_id, a.answer_text, ua.is_correct
	          FROM user_answers ua
	          JOIN questions q ON q.id = ua.question_id
	          JOIN answers a ON a.id = ua.answer_id
	          WHERE ua.test_result_id = $1
	          ORDER BY ua.question_id, ua.id`

	var rows []models.SubmittedAnswerRow
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get submitted answers: %w", err)
	}

	out := make([]domain.SubmittedAnswerRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.SubmittedAnswerRow{
			QuestionID:   row.QuestionID,
			QuestionText: row.QuestionText,
			Competence:   row.Competence,
			QuestionType: domain.QuestionType(row.QuestionType),
			AnswerID:     row.AnswerID,
			AnswerText:   row.AnswerText,
			IsCorrect:    row.IsCorrect,
		})
	}
	return out, nil
}

// GetCorrectAnswerRows returns the correct answer texts of every question
// that has a submitted answer in the attempt.
func (r *sqlxResultRepository) GetCorrectAnswerRows(ctx context.Context, attemptID int64) ([]domain.CorrectAnswerRow, error) {
	query := `SELECT a.question_id, a.answer_text
	          FROM answers a
	          WHERE a.is_correct = TRUE
	            AND a.question_id IN (SELECT DISTINCT question_id FROM user_answers WHERE test_result_id = $1)
	          ORDER BY a.question_id, a.id`

	var rows []models.CorrectAnswerRow
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get correct answers: %w", err)
	}

	out := make([]domain.CorrectAnswerRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CorrectAnswerRow{QuestionID: row.QuestionID, AnswerText: row.AnswerText})
	}
	return out, nil
}

func (r *sqlxResultRepository) GetUserStats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	query := `SELECT COUNT(*) AS tests_completed,
	                 COALESCE(AVG(percentage), 0)::float8 AS avg_percentage,
	                 COALESCE(SUM(total_score), 0) AS total_correct,
	                 COALESCE(SUM(total_questions), 0) AS total_questions
	          FROM test_results
	          WHERE user_id = $1`

	var stats models.UserStats
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &stats, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}
	return &domain.UserStats{
		TestsCompleted: stats.TestsCompleted,
		AvgPercentage:  stats.AvgPercentage,
		TotalCorrect:   stats.TotalCorrect,
		TotalQuestions: stats.TotalQuestions,
	}, nil
}
