package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name      string
		qType     QuestionType
		correct   []int64
		submitted []int64
		want      bool
	}{
		{"single choice match", QuestionTypeSingleChoice, []int64{5}, []int64{5}, true},
		{"single choice wrong answer", QuestionTypeSingleChoice, []int64{5}, []int64{6}, false},
		{"single choice two submitted", QuestionTypeSingleChoice, []int64{5}, []int64{5, 6}, false},
		{"single choice duplicate id counts once", QuestionTypeSingleChoice, []int64{5}, []int64{5, 5}, true},
		{"single choice with two correct answers", QuestionTypeSingleChoice, []int64{5, 6}, []int64{5}, false},
		{"single choice nothing submitted", QuestionTypeSingleChoice, []int64{5}, nil, false},
		{"multiple choice same set other order", QuestionTypeMultipleChoice, []int64{2, 3}, []int64{3, 2}, true},
		{"multiple choice subset", QuestionTypeMultipleChoice, []int64{2, 3}, []int64{2}, false},
		{"multiple choice superset", QuestionTypeMultipleChoice, []int64{2, 3}, []int64{2, 3, 4}, false},
		{"multiple choice disjoint same size", QuestionTypeMultipleChoice, []int64{2, 3}, []int64{4, 5}, false},
		{"multiple choice single correct", QuestionTypeMultipleChoice, []int64{7}, []int64{7}, true},
		{"no correct answers", QuestionTypeMultipleChoice, nil, []int64{1}, false},
		{"no correct answers nothing submitted", QuestionTypeMultipleChoice, []int64{}, []int64{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCorrect(tt.qType, tt.correct, tt.submitted))
		})
	}
}

func TestIsCorrect_IsPureAndOrderInsensitive(t *testing.T) {
	correct := []int64{4, 1, 9}
	submitted := []int64{9, 4, 1}

	first := IsCorrect(QuestionTypeMultipleChoice, correct, submitted)
	second := IsCorrect(QuestionTypeMultipleChoice, correct, submitted)
	reversed := IsCorrect(QuestionTypeMultipleChoice, []int64{9, 1, 4}, []int64{1, 4, 9})

	assert.True(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, first, reversed)
	assert.Equal(t, []int64{4, 1, 9}, correct, "inputs must not be mutated")
	assert.Equal(t, []int64{9, 4, 1}, submitted, "inputs must not be mutated")
}
