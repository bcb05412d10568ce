package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionType(t *testing.T) {
	qt, ok := ParseQuestionType("")
	assert.True(t, ok)
	assert.Equal(t, QuestionTypeSingleChoice, qt)

	qt, ok = ParseQuestionType(" multiple_choice ")
	assert.True(t, ok)
	assert.Equal(t, QuestionTypeMultipleChoice, qt)

	_, ok = ParseQuestionType("essay")
	assert.False(t, ok)
}

func TestGroupQuestionRows(t *testing.T) {
	id := func(v int64) *int64 { return &v }
	text := func(v string) *string { return &v }
	flag := func(v bool) *bool { return &v }
	now := time.Now()

	rows := []QuestionAnswerRow{
		{QuestionID: 1, QuestionText: "Q1", Competence: "Go", QuestionType: QuestionTypeSingleChoice, AnswerID: id(10), AnswerText: text("A"), AnswerIsCorrect: flag(true), AnswerCreatedAt: &now},
		{QuestionID: 1, QuestionText: "Q1", Competence: "Go", QuestionType: QuestionTypeSingleChoice, AnswerID: id(11), AnswerText: text("B"), AnswerIsCorrect: flag(false)},
		{QuestionID: 2, QuestionText: "Q2", Competence: "SQL", QuestionType: QuestionTypeMultipleChoice},
		{QuestionID: 3, QuestionText: "Q3", Competence: "SQL", QuestionType: QuestionTypeSingleChoice, AnswerID: id(30), AnswerText: text("C"), AnswerIsCorrect: flag(true)},
	}

	questions := GroupQuestionRows(rows)

	require.Len(t, questions, 3)
	assert.Equal(t, int64(1), questions[0].ID)
	require.Len(t, questions[0].Answers, 2)
	assert.Equal(t, Answer{ID: 10, QuestionID: 1, Text: "A", IsCorrect: true, CreatedAt: now}, questions[0].Answers[0])
	assert.Equal(t, []int64{10}, questions[0].CorrectAnswerIDs())
	assert.True(t, questions[0].HasAnswer(11))
	assert.False(t, questions[0].HasAnswer(30))

	assert.NotNil(t, questions[1].Answers)
	assert.Empty(t, questions[1].Answers)
	assert.Empty(t, questions[1].CorrectAnswerIDs())
	assert.Equal(t, "Q3", questions[2].Text)
}

func TestQuestionUsage_CanDelete(t *testing.T) {
	assert.True(t, QuestionUsage{}.CanDelete())
	assert.False(t, QuestionUsage{UsedInTests: 2, UsedByUsers: 1}.CanDelete())
}
