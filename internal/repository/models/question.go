package models

import (
	"database/sql"
	"time"
)

// QuestionAnswerRow is one row of questions LEFT JOIN answers.
type QuestionAnswerRow struct {
	QuestionID        int64          `db:"question_id"`
	QuestionText      string         `db:"question_text"`
	Competence        string         `db:"competence"`
	QuestionType      string         `db:"question_type"`
	QuestionCreatedAt time.Time      `db:"question_created_at"`
	QuestionUpdatedAt time.Time      `db:"question_updated_at"`
	AnswerID          sql.NullInt64  `db:"answer_id"`
	AnswerText        sql.NullString `db:"answer_text"`
	AnswerIsCorrect   sql.NullBool   `db:"answer_is_correct"`
	AnswerCreatedAt   sql.NullTime   `db:"answer_created_at"`
}

// Answer maps the answers table.
type Answer struct {
	ID         int64     `db:"id"`
	QuestionID int64     `db:"question_id"`
	AnswerText string    `db:"answer_text"`
	IsCorrect  bool      `db:"is_correct"`
	CreatedAt  time.Time `db:"created_at"`
}

// QuestionUsage is the result of the delete pre-check query.
type QuestionUsage struct {
	UsedInTests  int `db:"used_in_tests"`
	UsedByUsers  int `db:"used_by_users"`
	AnswersCount int `db:"answers_count"`
}
