package domain

import (
	"strings"
	"time"
)

// QuestionType selects the correctness rule applied to a question.
type QuestionType string

const (
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	return t == QuestionTypeSingleChoice || t == QuestionTypeMultipleChoice
}

// ParseQuestionType maps raw input to a QuestionType. Empty input defaults
// to single_choice.
func ParseQuestionType(raw string) (QuestionType, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return QuestionTypeSingleChoice, true
	}
	t := QuestionType(raw)
	return t, t.Valid()
}

// Question is an authored test item. Answers are ordered by ID.
type Question struct {
	ID         int64
	Text       string
	Competence string
	Type       QuestionType
	Answers    []Answer
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Answer is one selectable option of a question.
type Answer struct {
	ID         int64
	QuestionID int64
	Text       string
	IsCorrect  bool
	CreatedAt  time.Time
}

// CorrectAnswerIDs returns the IDs of the answers flagged correct.
func (q *Question) CorrectAnswerIDs() []int64 {
	ids := make([]int64, 0, len(q.Answers))
	for _, a := range q.Answers {
		if a.IsCorrect {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// HasAnswer reports whether answerID belongs to the question.
func (q *Question) HasAnswer(answerID int64) bool {
	for _, a := range q.Answers {
		if a.ID == answerID {
			return true
		}
	}
	return false
}

// QuestionAnswerRow is the flat shape of a questions LEFT JOIN answers
// query. Answer fields are nil when the question has no answers.
type QuestionAnswerRow struct {
	QuestionID        int64
	QuestionText      string
	Competence        string
	QuestionType      QuestionType
	QuestionCreatedAt time.Time
	QuestionUpdatedAt time.Time
	AnswerID          *int64
	AnswerText        *string
	AnswerIsCorrect   *bool
	AnswerCreatedAt   *time.Time
}

// GroupQuestionRows folds joined rows into questions with their answers.
// Question order follows first appearance in rows.
func GroupQuestionRows(rows []QuestionAnswerRow) []Question {
	index := make(map[int64]int)
	questions := make([]Question, 0)

	for _, row := range rows {
		pos, ok := index[row.QuestionID]
		if !ok {
			questions = append(questions, Question{
				ID:         row.QuestionID,
				Text:       row.QuestionText,
				Competence: row.Competence,
				Type:       row.QuestionType,
				Answers:    []Answer{},
				CreatedAt:  row.QuestionCreatedAt,
				UpdatedAt:  row.QuestionUpdatedAt,
			})
			pos = len(questions) - 1
			index[row.QuestionID] = pos
		}

		if row.AnswerID == nil {
			continue
		}
		answer := Answer{ID: *row.AnswerID, QuestionID: row.QuestionID}
		if row.AnswerText != nil {
			answer.Text = *row.AnswerText
		}
		if row.AnswerIsCorrect != nil {
			answer.IsCorrect = *row.AnswerIsCorrect
		}
		if row.AnswerCreatedAt != nil {
			answer.CreatedAt = *row.AnswerCreatedAt
		}
		questions[pos].Answers = append(questions[pos].Answers, answer)
	}

	return questions
}

// QuestionUsage summarises how often a question appears in submitted results.
type QuestionUsage struct {
	UsedInTests  int
	UsedByUsers  int
	AnswersCount int
}

// CanDelete is true when no submitted result references the question.
func (u QuestionUsage) CanDelete() bool {
	return u.UsedInTests == 0
}

// QuestionDeletion reports what a cascading question delete removed.
type QuestionDeletion struct {
	AnswersDeleted     int64
	UserAnswersDeleted int64
}
