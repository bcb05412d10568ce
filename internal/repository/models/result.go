package models

import "time"

// TestResult maps the test_results table.
type TestResult struct {
	ID             int64     `db:"id"`
	UserID         int64     `db:"user_id"`
	TotalQuestions int       `db:"total_questions"`
	TotalScore     int       `db:"total_score"`
	Percentage     float64   `db:"percentage"`
	CompletedAt    time.Time `db:"completed_at"`
}

// CompetenceResult maps the competence_results table.
type CompetenceResult struct {
	ID             int64   `db:"id"`
	TestResultID   int64   `db:"test_result_id"`
	Competence     string  `db:"competence"`
	Score          int     `db:"score"`
	TotalQuestions int     `db:"total_questions"`
	Percentage     float64 `db:"percentage"`
}

// UserAnswer maps the user_answers table.
type UserAnswer struct {
	ID           int64 `db:"id"`
	TestResultID int64 `db:"test_result_id"`
	QuestionID   int64 `db:"question_id"`
	AnswerID     int64 `db:"answer_id"`
	IsCorrect    bool  `db:"is_correct"`
}

// SubmittedAnswerRow is user_answers joined with question and answer text.
type SubmittedAnswerRow struct {
	QuestionID   int64  `db:"question_id"`
	QuestionText string `db:"question_text"`
	Competence   string `db:"competence"`
	QuestionType string `db:"question_type"`
	AnswerID     int64  `db:"answer_id"`
	AnswerText   string `db:"answer_text"`
	IsCorrect    bool   `db:"is_correct"`
}

// CorrectAnswerRow is one correct answer text of a question.
type CorrectAnswerRow struct {
	QuestionID int64  `db:"question_id"`
	AnswerText string `db:"answer_text"`
}

// UserStats is the aggregate over a user's test_results.
type UserStats struct {
	TestsCompleted int     `db:"tests_completed"`
	AvgPercentage  float64 `db:"avg_percentage"`
	TotalCorrect   int     `db:"total_correct"`
	TotalQuestions int     `db:"total_questions"`
}

// AdminStats holds the table counters of the admin dashboard.
type AdminStats struct {
	TotalUsers       int `db:"total_users"`
	TotalQuestions   int `db:"total_questions"`
	TotalAnswers     int `db:"total_answers"`
	TotalUserAnswers int `db:"total_user_answers"`
}
