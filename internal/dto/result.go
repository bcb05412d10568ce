package dto

// SubmittedAnswerRequest is one answered question of a submission.
type SubmittedAnswerRequest struct {
	QuestionID int64   `json:"questionId"`
	AnswerIDs  []int64 `json:"answerIds"`
}

// SubmittedQuestionRequest echoes a question the client was shown. Only the
// ID is trusted; text, competence and type are re-read from storage.
type SubmittedQuestionRequest struct {
	ID           int64  `json:"id"`
	QuestionText string `json:"question_text,omitempty"`
	Competence   string `json:"competence,omitempty"`
	QuestionType string `json:"question_type,omitempty"`
}

// SaveResultsRequest is the body of POST /api/results/save.
// @Description Submitted test attempt
type SaveResultsRequest struct {
	Answers   []SubmittedAnswerRequest   `json:"answers"`
	Questions []SubmittedQuestionRequest `json:"questions"`
}

// SaveResultsResponse reports the scored attempt.
// @Description Scored and stored test attempt
type SaveResultsResponse struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
	TestResultID   int64   `json:"testResultId"`
	TotalScore     int     `json:"totalScore"`
	TotalQuestions int     `json:"totalQuestions"`
	Percentage     float64 `json:"percentage"`
}

// TestResultSummary is one attempt in a history list. CompletedAt is
// formatted as DD.MM.YYYY HH:MM in the configured timezone.
type TestResultSummary struct {
	ID             int64   `json:"id"`
	TotalScore     int     `json:"total_score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
	CompletedAt    string  `json:"completed_at"`
}

type CompetenceResultResponse struct {
	Competence     string  `json:"competence"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
}

// QuestionHistoryResponse is the review line of one question of an attempt.
// UserAnswers and CorrectAnswers join answer texts with "; ".
type QuestionHistoryResponse struct {
	QuestionID     int64  `json:"question_id"`
	QuestionText   string `json:"question_text"`
	Competence     string `json:"competence"`
	QuestionType   string `json:"question_type"`
	UserAnswers    string `json:"user_answers"`
	IsCorrect      bool   `json:"is_correct"`
	CorrectAnswers string `json:"correct_answers"`
}

type AttemptStats struct {
	TotalQuestions   int     `json:"totalQuestions"`
	CorrectAnswers   int     `json:"correctAnswers"`
	IncorrectAnswers int     `json:"incorrectAnswers"`
	Percentage       float64 `json:"percentage"`
}

// LastTestDetails is the newest attempt with its breakdown, flattened the
// way the results page reads it.
type LastTestDetails struct {
	TestResultSummary
	CompetenceResults []CompetenceResultResponse `json:"competenceResults"`
	QuestionHistory   []QuestionHistoryResponse  `json:"questionHistory"`
}

// ResultDetailResponse is returned by GET /api/results/:id.
// @Description Full review of one attempt
type ResultDetailResponse struct {
	Success           bool                       `json:"success"`
	TestInfo          TestResultSummary          `json:"testInfo"`
	CompetenceResults []CompetenceResultResponse `json:"competenceResults"`
	QuestionHistory   []QuestionHistoryResponse  `json:"questionHistory"`
	Stats             AttemptStats               `json:"stats"`
}

// AllResultsResponse is returned by GET /api/results/all. LastTestDetails is
// null when the user has no attempts.
type AllResultsResponse struct {
	Success         bool                `json:"success"`
	TestResults     []TestResultSummary `json:"testResults"`
	LastTestDetails *LastTestDetails    `json:"lastTestDetails"`
}
