package domain

import (
	"time"

	"expert-test/internal/util"
)

// TestAttempt is one completed test of a user.
type TestAttempt struct {
	ID             int64
	UserID         int64
	TotalQuestions int
	TotalScore     int
	Percentage     float64
	CompletedAt    time.Time
}

// CompetenceResult is the stored per-competence breakdown of an attempt.
type CompetenceResult struct {
	ID             int64
	TestResultID   int64
	Competence     string
	Score          int
	TotalQuestions int
	Percentage     float64
}

// SubmittedAnswer is one selected answer of an attempt. IsCorrect carries
// the verdict of the whole question, not of the single option.
type SubmittedAnswer struct {
	ID           int64
	TestResultID int64
	QuestionID   int64
	AnswerID     int64
	IsCorrect    bool
}

// NewAttempt builds the rows to persist for a scored attempt.
func NewAttempt(userID int64, score ScoreResult, completedAt time.Time) (*TestAttempt, []CompetenceResult, []SubmittedAnswer) {
	attempt := &TestAttempt{
		UserID:         userID,
		TotalQuestions: score.TotalQuestions,
		TotalScore:     score.TotalScore,
		Percentage:     score.Percentage,
		CompletedAt:    completedAt,
	}

	competences := make([]CompetenceResult, 0, len(score.Competences))
	for _, c := range score.Competences {
		competences = append(competences, CompetenceResult{
			Competence:     c.Competence,
			Score:          c.Score,
			TotalQuestions: c.Total,
			Percentage:     c.Percentage,
		})
	}

	answers := make([]SubmittedAnswer, 0)
	for _, v := range score.Verdicts {
		for _, answerID := range v.AnswerIDs {
			answers = append(answers, SubmittedAnswer{
				QuestionID: v.QuestionID,
				AnswerID:   answerID,
				IsCorrect:  v.IsCorrect,
			})
		}
	}

	return attempt, competences, answers
}

// UserStats aggregates all attempts of a user.
type UserStats struct {
	TestsCompleted int
	AvgPercentage  float64
	TotalCorrect   int
	TotalQuestions int
}

// SuccessRate is the share of correctly answered questions over all
// attempts, in percent with one decimal.
func (s UserStats) SuccessRate() float64 {
	if s.TotalQuestions <= 0 {
		return 0
	}
	return util.Round(100*float64(s.TotalCorrect)/float64(s.TotalQuestions), 1)
}
