package domain

// IsCorrect decides whether a submitted answer set is correct for a question.
// Both ID lists are treated as sets.
//
// single_choice requires exactly one correct answer and exactly one
// submitted answer, and they must match. Any other type requires the two
// sets to be identical. A question without correct answers is never
// answered correctly.
func IsCorrect(questionType QuestionType, correctIDs, submittedIDs []int64) bool {
	correct := toSet(correctIDs)
	submitted := toSet(submittedIDs)

	if len(correct) == 0 {
		return false
	}

	if questionType == QuestionTypeSingleChoice {
		if len(correct) != 1 || len(submitted) != 1 {
			return false
		}
		for id := range submitted {
			_, ok := correct[id]
			return ok
		}
		return false
	}

	if len(correct) != len(submitted) {
		return false
	}
	for id := range submitted {
		if _, ok := correct[id]; !ok {
			return false
		}
	}
	return true
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
