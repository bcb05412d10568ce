package domain

import "context"

// TransactionManager runs fn inside one database transaction. Repositories
// called with the ctx passed to fn join that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// QuestionRepository persists questions and their answers.
type QuestionRepository interface {
	ListQuestionsWithAnswers(ctx context.Context) ([]Question, error)
	GetQuestionsWithAnswers(ctx context.Context, ids []int64) ([]Question, error)
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)
	CreateQuestion(ctx context.Context, q *Question) error
	UpdateQuestion(ctx context.Context, q *Question) error
	// DeleteQuestion removes the question, its answers and every submitted
	// answer that references it. Call it inside a transaction.
	DeleteQuestion(ctx context.Context, id int64) (*QuestionDeletion, error)
	GetQuestionUsage(ctx context.Context, id int64) (*QuestionUsage, error)

	GetAnswerByID(ctx context.Context, id int64) (*Answer, error)
	CreateAnswer(ctx context.Context, a *Answer) error
	UpdateAnswer(ctx context.Context, a *Answer) error
	DeleteAnswer(ctx context.Context, id int64) error
}

// ResultRepository persists and reads scored test attempts.
type ResultRepository interface {
	// SaveAttempt writes the attempt, its competence breakdown and submitted
	// answers, filling in generated IDs. Call it inside a transaction.
	SaveAttempt(ctx context.Context, attempt *TestAttempt, competences []CompetenceResult, answers []SubmittedAnswer) error

	GetAttempt(ctx context.Context, userID, attemptID int64) (*TestAttempt, error)
	ListAttempts(ctx context.Context, userID int64, limit int) ([]TestAttempt, error)
	GetCompetenceResults(ctx context.Context, attemptID int64) ([]CompetenceResult, error)
	ListUserCompetenceResults(ctx context.Context, userID int64) ([]CompetenceResult, error)
	GetSubmittedAnswerRows(ctx context.Context, attemptID int64) ([]SubmittedAnswerRow, error)
	GetCorrectAnswerRows(ctx context.Context, attemptID int64) ([]CorrectAnswerRow, error)
	GetUserStats(ctx context.Context, userID int64) (*UserStats, error)
}

// AdminStats counts the main tables for the admin dashboard.
type AdminStats struct {
	TotalUsers       int
	TotalQuestions   int
	TotalAnswers     int
	TotalUserAnswers int
}

// StatsRepository reads dashboard counters and checks connectivity.
type StatsRepository interface {
	GetAdminStats(ctx context.Context) (*AdminStats, error)
	Ping(ctx context.Context) error
}
