package domain

import "expert-test/internal/util"

// AnswerSubmission is one submitted answer group of a test attempt.
type AnswerSubmission struct {
	QuestionID int64
	AnswerIDs  []int64
}

// QuestionVerdict is the scored outcome of one question. AnswerIDs holds the
// distinct submitted IDs that belong to the question; each becomes a stored
// submitted-answer row tagged with IsCorrect.
type QuestionVerdict struct {
	QuestionID int64
	Competence string
	AnswerIDs  []int64
	IsCorrect  bool
}

// CompetenceScore is the per-competence tally of an attempt.
type CompetenceScore struct {
	Competence string
	Score      int
	Total      int
	Percentage float64
}

// ScoreResult is everything the result writer needs to persist an attempt.
type ScoreResult struct {
	TotalScore     int
	TotalQuestions int
	Percentage     float64
	Competences    []CompetenceScore
	Verdicts       []QuestionVerdict
}

// Percentage returns round(100*score/total, 2), or 0 when total is 0.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return util.Round(100*float64(score)/float64(total), 2)
}

// Score evaluates an attempt.
//
// questions are the attempt's questions as currently stored; a submission
// whose question is not among them is ignored. Only submitted IDs that
// belong to the question take part in its verdict, so the verdict always
// matches the rows that get stored. TotalQuestions and the overall
// percentage cover every stored question the client was shown, with an
// unanswered one counting as incorrect. Competence tallies cover only the
// questions that have a non-empty answer group, each counted once no matter
// how many IDs or duplicate groups were submitted for it.
func Score(questions []Question, submissions []AnswerSubmission) ScoreResult {
	submitted := make(map[int64][]int64, len(submissions))
	seenAnswer := make(map[int64]map[int64]struct{}, len(submissions))
	for _, s := range submissions {
		if _, ok := seenAnswer[s.QuestionID]; !ok {
			seenAnswer[s.QuestionID] = make(map[int64]struct{})
		}
		for _, id := range s.AnswerIDs {
			if _, dup := seenAnswer[s.QuestionID][id]; dup {
				continue
			}
			seenAnswer[s.QuestionID][id] = struct{}{}
			submitted[s.QuestionID] = append(submitted[s.QuestionID], id)
		}
	}

	result := ScoreResult{
		Competences: []CompetenceScore{},
		Verdicts:    make([]QuestionVerdict, 0, len(questions)),
	}
	competenceIdx := make(map[string]int)
	processed := make(map[int64]struct{}, len(questions))

	for i := range questions {
		q := &questions[i]
		if _, done := processed[q.ID]; done {
			continue
		}
		processed[q.ID] = struct{}{}
		result.TotalQuestions++

		owned := make([]int64, 0, len(submitted[q.ID]))
		for _, id := range submitted[q.ID] {
			if q.HasAnswer(id) {
				owned = append(owned, id)
			}
		}
		correct := len(owned) > 0 && IsCorrect(q.Type, q.CorrectAnswerIDs(), owned)
		result.Verdicts = append(result.Verdicts, QuestionVerdict{
			QuestionID: q.ID,
			Competence: q.Competence,
			AnswerIDs:  owned,
			IsCorrect:  correct,
		})
		if correct {
			result.TotalScore++
		}
		if len(owned) == 0 {
			continue
		}

		pos, ok := competenceIdx[q.Competence]
		if !ok {
			result.Competences = append(result.Competences, CompetenceScore{Competence: q.Competence})
			pos = len(result.Competences) - 1
			competenceIdx[q.Competence] = pos
		}
		result.Competences[pos].Total++
		if correct {
			result.Competences[pos].Score++
		}
	}

	for i := range result.Competences {
		c := &result.Competences[i]
		c.Percentage = Percentage(c.Score, c.Total)
	}
	result.Percentage = Percentage(result.TotalScore, result.TotalQuestions)

	return result
}
