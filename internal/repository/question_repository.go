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

const questionAnswerSelect = `SELECT q.id AS question_id, q.question_text, q.competence, q.question_type,
       q.created_at AS question_created_at, q.updated_at AS question_updated_at,
       a.id AS answer_id, a.answer_text, a.is_correct AS answer_is_correct, a.created_at AS answer_created_at
FROM questions q
LEFT JOIN answers a ON a.question_id = q.id`

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXQuestionRepository creates a new question repository.
func NewSQLXQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

func toDomainQuestionRows(rows []models.QuestionAnswerRow) []domain.QuestionAnswerRow {
	out := make([]domain.QuestionAnswerRow, 0, len(rows))
	for _, r := range rows {
		row := domain.QuestionAnswerRow{
			QuestionID:        r.QuestionID,
			QuestionText:      r.QuestionText,
			Competence:        r.Competence,
			QuestionType:      domain.QuestionType(r.QuestionType),
			QuestionCreatedAt: r.QuestionCreatedAt,
			QuestionUpdatedAt: r.QuestionUpdatedAt,
		}
		if r.AnswerID.Valid {
			id := r.AnswerID.Int64
			text := r.AnswerText.String
			correct := r.AnswerIsCorrect.Bool
			row.AnswerID = &id
			row.AnswerText = &text
			row.AnswerIsCorrect = &correct
			if r.AnswerCreatedAt.Valid {
				created := r.AnswerCreatedAt.Time
				row.AnswerCreatedAt = &created
			}
		}
		out = append(out, row)
	}
	return out
}

func toDomainAnswer(m *models.Answer) *domain.Answer {
	return &domain.Answer{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		Text:       m.AnswerText,
		IsCorrect:  m.IsCorrect,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *sqlxQuestionRepository) selectQuestions(ctx context.Context, query string, args ...interface{}) ([]domain.Question, error) {
	var rows []models.QuestionAnswerRow
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return domain.GroupQuestionRows(toDomainQuestionRows(rows)), nil
}

// ListQuestionsWithAnswers returns every question with its answers, ordered by ID.
func (r *sqlxQuestionRepository) ListQuestionsWithAnswers(ctx context.Context) ([]domain.Question, error) {
	questions, err := r.selectQuestions(ctx, questionAnswerSelect+` ORDER BY q.id, a.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// GetQuestionsWithAnswers loads the given questions. IDs that do not exist
// are simply absent from the result.
func (r *sqlxQuestionRepository) GetQuestionsWithAnswers(ctx context.Context, ids []int64) ([]domain.Question, error) {
	if len(ids) == 0 {
		return []domain.Question{}, nil
	}

	query, args, err := sqlx.In(questionAnswerSelect+` WHERE q.id IN (?) ORDER BY q.id, a.id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build question query: %w", err)
	}
	exec := GetExecutor(ctx, r.db)
	questions, err := r.selectQuestions(ctx, exec.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return questions, nil
}

// GetQuestionByID returns nil, nil when the question does not exist.
func (r *sqlxQuestionRepository) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	questions, err := r.selectQuestions(ctx, questionAnswerSelect+` WHERE q.id = $1 ORDER BY a.id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}
	if len(questions) == 0 {
		return nil, nil
	}
	return &questions[0], nil
}

func (r *sqlxQuestionRepository) CreateQuestion(ctx context.Context, q *domain.Question) error {
	query := `INSERT INTO questions (question_text, competence, question_type)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at, updated_at`

	err := GetExecutor(ctx, r.db).
		QueryRowxContext(ctx, query, q.Text, q.Competence, string(q.Type)).
		Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	if q.Answers == nil {
		q.Answers = []domain.Answer{}
	}
	return nil
}

// UpdateQuestion returns sql.ErrNoRows when the question does not exist.
func (r *sqlxQuestionRepository) UpdateQuestion(ctx context.Context, q *domain.Question) error {
	query := `UPDATE questions
	          SET question_text = $1, competence = $2, question_type = $3, updated_at = NOW()
	          WHERE id = $4
	          RETURNING created_at, updated_at`

	err := GetExecutor(ctx, r.db).
		QueryRowxContext(ctx, query, q.Text, q.Competence, string(q.Type), q.ID).
		Scan(&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("failed to update question %d: %w", q.ID, err)
	}
	return nil
}

// DeleteQuestion removes submitted answers, answers and the question itself,
// in that order. It returns sql.ErrNoRows when the question does not exist.
func (r *sqlxQuestionRepository) DeleteQuestion(ctx context.Context, id int64) (*domain.QuestionDeletion, error) {
	exec := GetExecutor(ctx, r.db)
	deletion := &domain.QuestionDeletion{}

	res, err := exec.ExecContext(ctx, `DELETE FROM user_answers WHERE question_id = $1`, id)
	if err != nil {
		return nil, r.translateDeleteError(err, id)
	}
	if deletion.UserAnswersDeleted, err = res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	res, err = exec.ExecContext(ctx, `DELETE FROM answers WHERE question_id = $1`, id)
	if err != nil {
		return nil, r.translateDeleteError(err, id)
	}
	if deletion.AnswersDeleted, err = res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	res, err = exec.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return nil, r.translateDeleteError(err, id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return nil, sql.ErrNoRows
	}
	return deletion, nil
}

func (r *sqlxQuestionRepository) translateDeleteError(err error, id int64) error {
	if isForeignKeyViolation(err) {
		return domain.NewReferenceInUseError("Cannot delete question: it is referenced by other records", err).
			WithContext("question_id", id)
	}
	return fmt.Errorf("failed to delete question %d: %w", id, err)
}

func (r *sqlxQuestionRepository) GetQuestionUsage(ctx context.Context, id int64) (*domain.QuestionUsage, error) {
	query := `SELECT
	    (SELECT COUNT(DISTINCT ua.test_result_id) FROM user_answers ua WHERE ua.question_id = $1) AS used_in_tests,
	    (SELECT COUNT(DISTINCT tr.user_id) FROM user_answers ua
	        JOIN test_results tr ON tr.id = ua.test_result_id
	        WHERE ua.question_id = $1) AS used_by_users,
	    (SELECT COUNT(*) FROM answers WHERE question_id = $1) AS answers_count`

	var usage models.QuestionUsage
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &usage, query, id); err != nil {
		return nil, fmt.Errorf("failed to get usage of question %d: %w", id, err)
	}
	return &domain.QuestionUsage{
		UsedInTests:  usage.UsedInTests,
		UsedByUsers:  usage.UsedByUsers,
		AnswersCount: usage.AnswersCount,
	}, nil
}

// GetAnswerByID returns nil, nil when the answer does not exist.
func (r *sqlxQuestionRepository) GetAnswerByID(ctx context.Context, id int64) (*domain.Answer, error) {
	var answer models.Answer
	query := `SELECT id, question_id, answer_text, is_correct, created_at FROM answers WHERE id = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &answer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get answer %d: %w", id, err)
	}
	return toDomainAnswer(&answer), nil
}

func (r *sqlxQuestionRepository) CreateAnswer(ctx context.Context, a *domain.Answer) error {
	query := `INSERT INTO answers (question_id, answer_text, is_correct)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`

	err := GetExecutor(ctx, r.db).
		QueryRowxContext(ctx, query, a.QuestionID, a.Text, a.IsCorrect).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewQuestionNotFoundError(a.QuestionID)
		}
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}

// UpdateAnswer returns sql.ErrNoRows when the answer does not exist.
func (r *sqlxQuestionRepository) UpdateAnswer(ctx context.Context, a *domain.Answer) error {
	query := `UPDATE answers SET answer_text = $1, is_correct = $2
	          WHERE id = $3
	          RETURNING question_id, created_at`

	err := GetExecutor(ctx, r.db).
		QueryRowxContext(ctx, query, a.Text, a.IsCorrect, a.ID).
		Scan(&a.QuestionID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("failed to update answer %d: %w", a.ID, err)
	}
	return nil
}

// DeleteAnswer returns sql.ErrNoRows when the answer does not exist and a
// REFERENCE_IN_USE domain error when submitted results point at it.
func (r *sqlxQuestionRepository) DeleteAnswer(ctx context.Context, id int64) error {
	res, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM answers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewReferenceInUseError("Cannot delete answer: it is used in saved test results", err).
				WithContext("answer_id", id)
		}
		return fmt.Errorf("failed to delete answer %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
