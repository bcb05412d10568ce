package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)

func TestBuildQuestionHistory(t *testing.T) {
	rows := []SubmittedAnswerRow{
		{QuestionID: 1, QuestionText: "Pick primes", Competence: "Math", QuestionType: QuestionTypeMultipleChoice, AnswerID: 10, AnswerText: "2", IsCorrect: true},
		{QuestionID: 1, QuestionText: "Pick primes", Competence: "Math", QuestionType: QuestionTypeMultipleChoice, AnswerID: 11, AnswerText: "3", IsCorrect: true},
		{QuestionID: 2, QuestionText: "Capital of France", Competence: "Geo", QuestionType: QuestionTypeSingleChoice, AnswerID: 21, AnswerText: "Lyon", IsCorrect: false},
	}
	correct := []CorrectAnswerRow{
		{QuestionID: 1, AnswerText: "2"},
		{QuestionID: 1, AnswerText: "3"},
		{QuestionID: 2, AnswerText: "Paris"},
	}

	history := BuildQuestionHistory(rows, correct)

	require.Len(t, history, 2)
	assert.Equal(t, QuestionHistoryEntry{
		QuestionID:     1,
		QuestionText:   "Pick primes",
		Competence:     "Math",
		QuestionType:   QuestionTypeMultipleChoice,
		UserAnswers:    "2; 3",
		IsCorrect:      true,
		CorrectAnswers: "2; 3",
	}, history[0])
	assert.Equal(t, "Lyon", history[1].UserAnswers)
	assert.Equal(t, "Paris", history[1].CorrectAnswers)
	assert.False(t, history[1].IsCorrect)
}

func TestBuildQuestionHistory_Empty(t *testing.T) {
	history := BuildQuestionHistory(nil, nil)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestBuildQuestionHistory_MatchesScorerVerdict(t *testing.T) {
	q := multipleChoice(1, "Go", []int64{10, 11}, 12)
	q.Answers[0].Text, q.Answers[1].Text, q.Answers[2].Text = "a", "b", "c"

	res := Score([]Question{q}, []AnswerSubmission{{QuestionID: 1, AnswerIDs: []int64{10, 12}}})
	_, _, answers := NewAttempt(1, res, fixedTime)

	texts := map[int64]string{10: "a", 11: "b", 12: "c"}
	rows := make([]SubmittedAnswerRow, 0, len(answers))
	for _, a := range answers {
		rows = append(rows, SubmittedAnswerRow{QuestionID: a.QuestionID, AnswerID: a.AnswerID, AnswerText: texts[a.AnswerID], IsCorrect: a.IsCorrect})
	}

	history := BuildQuestionHistory(rows, []CorrectAnswerRow{{QuestionID: 1, AnswerText: "a"}, {QuestionID: 1, AnswerText: "b"}})

	require.Len(t, history, 1)
	assert.Equal(t, res.Verdicts[0].IsCorrect, history[0].IsCorrect)
	assert.Equal(t, "a; c", history[0].UserAnswers)
}

func TestRankCompetences(t *testing.T) {
	results := []CompetenceResult{
		{Competence: "Go", Percentage: 100},
		{Competence: "Go", Percentage: 50},
		{Competence: "SQL", Percentage: 80},
		{Competence: "Docker", Percentage: 33.33},
		{Competence: "Linux", Percentage: 75},
		{Competence: "Kafka", Percentage: 80},
	}

	top := RankCompetences(results, 3)

	require.Len(t, top, 3)
	assert.Equal(t, CompetenceRanking{Competence: "Kafka", AvgPercentage: 80, TimesTested: 1}, top[0])
	assert.Equal(t, CompetenceRanking{Competence: "SQL", AvgPercentage: 80, TimesTested: 1}, top[1])
	assert.Equal(t, CompetenceRanking{Competence: "Go", AvgPercentage: 75, TimesTested: 2}, top[2])
}

func TestRankCompetences_RoundsToOneDecimal(t *testing.T) {
	top := RankCompetences([]CompetenceResult{
		{Competence: "Go", Percentage: 66.67},
		{Competence: "Go", Percentage: 33.33},
		{Competence: "Go", Percentage: 33.33},
	}, 3)

	require.Len(t, top, 1)
	assert.Equal(t, 44.4, top[0].AvgPercentage)
	assert.Equal(t, 3, top[0].TimesTested)
}

func TestRankCompetences_NoResults(t *testing.T) {
	assert.Empty(t, RankCompetences(nil, 3))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "05.03.2024 14:07", FormatTimestamp(fixedTime, nil))

	moscow := time.FixedZone("MSK", 3*60*60)
	assert.Equal(t, "05.03.2024 17:07", FormatTimestamp(fixedTime, moscow))
}

func TestSplitDate(t *testing.T) {
	assert.Equal(t, DateParts{Day: 5, Month: "March", Year: 2024}, SplitDate(fixedTime, nil))

	lateUTC := time.Date(2023, time.December, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, DateParts{Day: 1, Month: "January", Year: 2024}, SplitDate(lateUTC, time.FixedZone("MSK", 3*60*60)))
}

func TestUserStats_SuccessRate(t *testing.T) {
	assert.Equal(t, 0.0, UserStats{}.SuccessRate())
	assert.Equal(t, 62.5, UserStats{TotalCorrect: 5, TotalQuestions: 8}.SuccessRate())
}
