package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"expert-test/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testResultRowColumns = []string{"id", "user_id", "total_questions", "total_score", "percentage", "completed_at"}

func TestResultRepository_SaveAttemptInTransaction(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXResultRepository(db)
	tm := NewTransactionManagerAdapter(db)
	completedAt := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)

	attempt := &domain.TestAttempt{UserID: 42, TotalQuestions: 2, TotalScore: 1, Percentage: 50, CompletedAt: completedAt}
	competences := []domain.CompetenceResult{{Competence: "Go", Score: 1, TotalQuestions: 2, Percentage: 50}}
	answers := []domain.SubmittedAnswer{
		{QuestionID: 1, AnswerID: 10, IsCorrect: true},
		{QuestionID: 2, AnswerID: 20, IsCorrect: false},
		{QuestionID: 2, AnswerID: 21, IsCorrect: false},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO test_results (user_id, total_questions, total_score, percentage, completed_at)")).
		WithArgs(int64(42), 2, 1, 50.0, completedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_answers (test_result_id, question_id, answer_id, is_correct)")).
		WithArgs(int64(100), int64(1), int64(10), true, int64(100), int64(2), int64(20), false, int64(100), int64(2), int64(21), false).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO competence_results (test_result_id, competence, score, total_questions, percentage)")).
		WithArgs(int64(100), "Go", 1, 2, 50.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return repo.SaveAttempt(ctx, attempt, competences, answers)
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), attempt.ID)
	assert.Equal(t, int64(100), competences[0].TestResultID)
	assert.Equal(t, int64(100), answers[2].TestResultID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepository_SaveAttemptRollsBackOnFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXResultRepository(db)
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO test_results")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_answers")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return repo.SaveAttempt(ctx,
			&domain.TestAttempt{UserID: 1, TotalQuestions: 1, CompletedAt: time.Now()},
			[]domain.CompetenceResult{{Competence: "Go", TotalQuestions: 1}},
			[]domain.SubmittedAnswer{{QuestionID: 1, AnswerID: 2}},
		)
	})

	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepository_SaveAttemptWithoutAnswers(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXResultRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO test_results")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	err := repo.SaveAttempt(context.Background(), &domain.TestAttempt{UserID: 1, CompletedAt: time.Now()}, nil, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepository_GetAttempt(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXResultRepository(db)
	now := time.Now().Truncate(time.Second)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM test_results WHERE id = $1 AND user_id = $2")).
			WithArgs(int64(100), int64(42)).
			WillReturnRows(sqlmock.NewRows(testResultRowColumns).AddRow(100, 42, 10, 5, 50.0, now))

		attempt, err := repo.GetAttempt(context.Background(), 42, 100)
		require.NoError(t, err)
		assert.Equal(t, &domain.TestAttempt{ID: 100, UserID: 42, TotalQuestions: 10, TotalScore: 5, Percentage: 50, CompletedAt: now}, attempt)
	})

	t.Run("OtherUser", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM test_results WHERE id = $1 AND user_id = $2")).
			WithArgs(int64(100), int64(7)).
			WillReturnRows(sqlmock.NewRows(testResultRowColumns))

		attempt, err := repo.GetAttempt(context.Background(), 7, 100)
		assert.NoError(t, err)
		assert.Nil(t, attempt)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepository_ListAttempts(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXResultRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY completed_at DESC, id DESC LIMIT $2")).
		WithArgs(int64(42), 10).
		WillReturnRows(sqlmock.NewRows(testResultRowColumns).
			AddRow(2, 42, 4, 4, 100.0, now).
			AddRow(1, 42, 4, 2, 50.0, now.Add(-time.Hour)))

	attempts, err := repo.ListAttempts(context.Background(), 42, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, int64(2), attempts[0].ID)

	mock.ExpectQuery(`ORDER BY completed_at DESC, id DESC$`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(testResultRowColumns))

	attempts, err = repo.ListAttempts(context.Background(), 42, 0)
	require.NoError(t, err)
	assert.Empty(t, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepository_AttemptDetailReads(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXResultRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("FROM competence_results WHERE test_result_id = $1 ORDER BY competence")).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "test_result_id", "competence", "score", "total_questions", "percentage"}).
			AddRow(1, 100, "Go", 1, 2, 50.0).
			AddRow(2, 100, "SQL", 0, 1, 0.0))

	competences, err := repo.GetCompetenceResults(ctx, 100)
	require.NoError(t, err)
	require.Len(t, competences, 2)
	assert.Equal(t, "Go", competences[0].Competence)
	assert.Equal(t, 50.0, competences[0].Percentage)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_answers ua JOIN questions q ON q.id = ua.question_id")).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"question_id", "question_text", "competence", "question_type", "answer_id", "answer_text", "is_correct"}).
			AddRow(1, "Q1", "Go", "multiple_choice", 10, "a", true).
			AddRow(1, "Q1", "Go", "multiple_choice", 11, "b", true))

	rows, err := repo.GetSubmittedAnswerRows(ctx, 100)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.QuestionTypeMultipleChoice, rows[0].QuestionType)
	assert.Equal(t, "b", rows[1].AnswerText)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.is_correct = TRUE")).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"question_id", "answer_text"}).AddRow(1, "a").AddRow(1, "b"))

	correct, err := repo.GetCorrectAnswerRows(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []domain.CorrectAnswerRow{{QuestionID: 1, AnswerText: "a"}, {QuestionID: 1, AnswerText: "b"}}, correct)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepository_UserAggregates(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXResultRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) AS tests_completed")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"tests_completed", "avg_percentage", "total_correct", "total_questions"}).
			AddRow(3, 61.11, 11, 18))

	stats, err := repo.GetUserStats(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStats{TestsCompleted: 3, AvgPercentage: 61.11, TotalCorrect: 11, TotalQuestions: 18}, *stats)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN test_results tr ON tr.id = cr.test_result_id WHERE tr.user_id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "test_result_id", "competence", "score", "total_questions", "percentage"}).
			AddRow(1, 100, "Go", 1, 2, 50.0))

	all, err := repo.ListUserCompetenceResults(ctx, 42)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(100), all[0].TestResultID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
