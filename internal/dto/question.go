package dto

import "time"

// AnswerResponse represents an answer option in API responses.
// @Description Answer option
type AnswerResponse struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"question_id"`
	AnswerText string    `json:"answer_text"`
	IsCorrect  bool      `json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuestionResponse represents a question with all of its answers.
// @Description Question with answers
type QuestionResponse struct {
	ID           int64            `json:"id"`
	QuestionText string           `json:"question_text"`
	Competence   string           `json:"competence"`
	QuestionType string           `json:"question_type"`
	Answers      []AnswerResponse `json:"answers"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// QuestionListResponse is returned by the test and admin question lists.
type QuestionListResponse struct {
	Success   bool               `json:"success"`
	Questions []QuestionResponse `json:"questions"`
	Count     int                `json:"count"`
}

// QuestionRequest is the body of question create and update.
// @Description Request body for creating or updating a question
type QuestionRequest struct {
	QuestionText string `json:"question_text"`
	Competence   string `json:"competence"`
	QuestionType string `json:"question_type"` // defaults to single_choice
}

// AnswerRequest is the body of answer create and update. QuestionID is
// ignored on update.
// @Description Request body for creating or updating an answer
type AnswerRequest struct {
	QuestionID int64  `json:"question_id"`
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
}

type QuestionEnvelope struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Question QuestionResponse `json:"question"`
}

type AnswerEnvelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Answer  AnswerResponse `json:"answer"`
}

// QuestionUsageResponse tells the admin what deleting a question removes.
type QuestionUsageResponse struct {
	Success      bool   `json:"success"`
	QuestionID   int64  `json:"questionId"`
	UsedInTests  int    `json:"usedInTests"`
	UsedByUsers  int    `json:"usedByUsers"`
	AnswersCount int    `json:"answersCount"`
	CanDelete    bool   `json:"canDelete"`
	Message      string `json:"message"`
}

// DeleteQuestionResponse reports how many dependent rows went with the question.
type DeleteQuestionResponse struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	DeletedAnswers     int64  `json:"deletedAnswers"`
	DeletedUserAnswers int64  `json:"deletedUserAnswers"`
}

// AdminStats holds table counters for the admin dashboard.
type AdminStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalQuestions   int `json:"totalQuestions"`
	TotalAnswers     int `json:"totalAnswers"`
	TotalUserAnswers int `json:"totalUserAnswers"`
}

type AdminStatsResponse struct {
	Success bool       `json:"success"`
	Stats   AdminStats `json:"stats"`
}
