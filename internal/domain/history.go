package domain

import (
	"sort"
	"strings"
	"time"

	"expert-test/internal/util"
)

// HistoryTextSeparator joins answer texts in a question history entry.
const HistoryTextSeparator = "; "

// SubmittedAnswerRow is one stored submitted answer joined with its
// question and answer text.
type SubmittedAnswerRow struct {
	QuestionID   int64
	QuestionText string
	Competence   string
	QuestionType QuestionType
	AnswerID     int64
	AnswerText   string
	IsCorrect    bool
}

// CorrectAnswerRow is one correct answer of a question in an attempt.
type CorrectAnswerRow struct {
	QuestionID int64
	AnswerText string
}

// QuestionHistoryEntry is the per-question view of an attempt.
type QuestionHistoryEntry struct {
	QuestionID     int64
	QuestionText   string
	Competence     string
	QuestionType   QuestionType
	UserAnswers    string
	IsCorrect      bool
	CorrectAnswers string
}

// BuildQuestionHistory groups submitted answer rows per question. Entry
// order follows the first row of each question. IsCorrect is true if any
// row of the question is flagged correct; rows of one question always
// carry the same verdict.
func BuildQuestionHistory(rows []SubmittedAnswerRow, correct []CorrectAnswerRow) []QuestionHistoryEntry {
	correctTexts := make(map[int64][]string)
	for _, c := range correct {
		correctTexts[c.QuestionID] = append(correctTexts[c.QuestionID], c.AnswerText)
	}

	index := make(map[int64]int)
	selected := make([][]string, 0)
	entries := make([]QuestionHistoryEntry, 0)

	for _, row := range rows {
		pos, ok := index[row.QuestionID]
		if !ok {
			entries = append(entries, QuestionHistoryEntry{
				QuestionID:     row.QuestionID,
				QuestionText:   row.QuestionText,
				Competence:     row.Competence,
				QuestionType:   row.QuestionType,
				CorrectAnswers: strings.Join(correctTexts[row.QuestionID], HistoryTextSeparator),
			})
			selected = append(selected, nil)
			pos = len(entries) - 1
			index[row.QuestionID] = pos
		}
		selected[pos] = append(selected[pos], row.AnswerText)
		entries[pos].IsCorrect = entries[pos].IsCorrect || row.IsCorrect
	}

	for i := range entries {
		entries[i].UserAnswers = strings.Join(selected[i], HistoryTextSeparator)
	}
	return entries
}

// CompetenceRanking is the average result of a user in one competence.
type CompetenceRanking struct {
	Competence    string
	AvgPercentage float64
	TimesTested   int
}

// RankCompetences averages per-competence percentages over all results and
// returns the best k, highest average first. Ties are ordered by name.
func RankCompetences(results []CompetenceResult, k int) []CompetenceRanking {
	type acc struct {
		sum   float64
		count int
	}
	byName := make(map[string]*acc)
	order := make([]string, 0)
	for _, r := range results {
		a, ok := byName[r.Competence]
		if !ok {
			a = &acc{}
			byName[r.Competence] = a
			order = append(order, r.Competence)
		}
		a.sum += r.Percentage
		a.count++
	}

	ranking := make([]CompetenceRanking, 0, len(order))
	for _, name := range order {
		a := byName[name]
		ranking = append(ranking, CompetenceRanking{
			Competence:    name,
			AvgPercentage: util.Round(a.sum/float64(a.count), 1),
			TimesTested:   a.count,
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].AvgPercentage != ranking[j].AvgPercentage {
			return ranking[i].AvgPercentage > ranking[j].AvgPercentage
		}
		return ranking[i].Competence < ranking[j].Competence
	})

	if k >= 0 && len(ranking) > k {
		ranking = ranking[:k]
	}
	return ranking
}

// DateParts is a calendar breakdown of an attempt timestamp.
type DateParts struct {
	Day   int
	Month string
	Year  int
}

// FormatTimestamp renders t as DD.MM.YYYY HH:MM in loc.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02.01.2006 15:04")
}

// SplitDate returns the day, English month name and year of t in loc.
func SplitDate(t time.Time, loc *time.Location) DateParts {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return DateParts{Day: local.Day(), Month: local.Month().String(), Year: local.Year()}
}
