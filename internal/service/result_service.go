package service

import (
	"context"
	"time"

	"expert-test/internal/domain"
	"expert-test/internal/dto"
	"expert-test/internal/logger"
	"expert-test/internal/metrics"
	"expert-test/internal/validation"

	"go.uber.org/zap"
)

// ResultService scores submitted tests and serves the result history.
type ResultService interface {
	SaveResults(ctx context.Context, userID int64, req *dto.SaveResultsRequest) (*dto.SaveResultsResponse, error)
	GetAllResults(ctx context.Context, userID int64) (*dto.AllResultsResponse, error)
	GetResultDetail(ctx context.Context, userID, attemptID int64) (*dto.ResultDetailResponse, error)
}

type resultService struct {
	questionRepo domain.QuestionRepository
	resultRepo   domain.ResultRepository
	txManager    domain.TransactionManager
	metrics      *metrics.Metrics
	validator    *validation.Validator
	loc          *time.Location
	now          func() time.Time
}

func NewResultService(
	questionRepo domain.QuestionRepository,
	resultRepo domain.ResultRepository,
	txManager domain.TransactionManager,
	m *metrics.Metrics,
	loc *time.Location,
) ResultService {
	if loc == nil {
		loc = time.UTC
	}
	return &resultService{
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		txManager:    txManager,
		metrics:      m,
		validator:    validation.NewValidator(),
		loc:          loc,
		now:          time.Now,
	}
}

// attemptQuestionIDs is the ordered, duplicate-free union of the questions
// the client was shown and the questions it answered.
func attemptQuestionIDs(req *dto.SaveResultsRequest) []int64 {
	seen := make(map[int64]struct{}, len(req.Questions)+len(req.Answers))
	ids := make([]int64, 0, len(req.Questions)+len(req.Answers))
	add := func(id int64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, q := range req.Questions {
		add(q.ID)
	}
	for _, a := range req.Answers {
		add(a.QuestionID)
	}
	return ids
}

// SaveResults scores the submission against the questions as currently
// stored and persists the attempt in one transaction. Questions that no
// longer exist are skipped.
func (s *resultService) SaveResults(ctx context.Context, userID int64, req *dto.SaveResultsRequest) (*dto.SaveResultsResponse, error) {
	if errs := s.validator.ValidateSaveResults(req); len(errs) > 0 {
		return nil, errs
	}

	ids := attemptQuestionIDs(req)
	stored, err := s.questionRepo.GetQuestionsWithAnswers(ctx, ids)
	if err != nil {
		return nil, domain.NewInternalError("Failed to save test results", err)
	}

	byID := make(map[int64]domain.Question, len(stored))
	for _, q := range stored {
		byID[q.ID] = q
	}
	questions := make([]domain.Question, 0, len(stored))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			questions = append(questions, q)
		}
	}

	submissions := make([]domain.AnswerSubmission, 0, len(req.Answers))
	for _, a := range req.Answers {
		submissions = append(submissions, domain.AnswerSubmission{QuestionID: a.QuestionID, AnswerIDs: a.AnswerIDs})
	}

	score := domain.Score(questions, submissions)
	attempt, competences, answers := domain.NewAttempt(userID, score, s.now())

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.resultRepo.SaveAttempt(txCtx, attempt, competences, answers)
	})
	if err != nil {
		if domainErr, ok := asDomainError(err); ok {
			return nil, domainErr
		}
		return nil, domain.NewInternalError("Failed to save test results", err)
	}

	s.metrics.ObserveSubmission(attempt.Percentage)
	logger.Get().Info("Test results saved",
		zap.Int64("userID", userID),
		zap.Int64("testResultID", attempt.ID),
		zap.Int("totalScore", attempt.TotalScore),
		zap.Int("totalQuestions", attempt.TotalQuestions),
		zap.Int("skippedQuestions", len(ids)-len(questions)),
	)

	return &dto.SaveResultsResponse{
		Success:        true,
		Message:        "Test results saved successfully",
		TestResultID:   attempt.ID,
		TotalScore:     attempt.TotalScore,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     attempt.Percentage,
	}, nil
}

func (s *resultService) toSummary(a domain.TestAttempt) dto.TestResultSummary {
	return dto.TestResultSummary{
		ID:             a.ID,
		TotalScore:     a.TotalScore,
		TotalQuestions: a.TotalQuestions,
		Percentage:     a.Percentage,
		CompletedAt:    domain.FormatTimestamp(a.CompletedAt, s.loc),
	}
}

func toCompetenceResponses(results []domain.CompetenceResult) []dto.CompetenceResultResponse {
	out := make([]dto.CompetenceResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.CompetenceResultResponse{
			Competence:     r.Competence,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Percentage:     r.Percentage,
		})
	}
	return out
}

func attemptStats(a *domain.TestAttempt) dto.AttemptStats {
	return dto.AttemptStats{
		TotalQuestions:   a.TotalQuestions,
		CorrectAnswers:   a.TotalScore,
		IncorrectAnswers: a.TotalQuestions - a.TotalScore,
		Percentage:       a.Percentage,
	}
}

// buildDetail loads the competence breakdown and question history of an
// attempt the caller already owns.
func (s *resultService) buildDetail(ctx context.Context, attempt *domain.TestAttempt) (*dto.LastTestDetails, error) {
	competences, err := s.resultRepo.GetCompetenceResults(ctx, attempt.ID)
	if err != nil {
		return nil, err
	}
	rows, err := s.resultRepo.GetSubmittedAnswerRows(ctx, attempt.ID)
	if err != nil {
		return nil, err
	}
	correct, err := s.resultRepo.GetCorrectAnswerRows(ctx, attempt.ID)
	if err != nil {
		return nil, err
	}

	entries := domain.BuildQuestionHistory(rows, correct)
	history := make([]dto.QuestionHistoryResponse, 0, len(entries))
	for _, e := range entries {
		history = append(history, dto.QuestionHistoryResponse{
			QuestionID:     e.QuestionID,
			QuestionText:   e.QuestionText,
			Competence:     e.Competence,
			QuestionType:   string(e.QuestionType),
			UserAnswers:    e.UserAnswers,
			IsCorrect:      e.IsCorrect,
			CorrectAnswers: e.CorrectAnswers,
		})
	}

	return &dto.LastTestDetails{
		TestResultSummary: s.toSummary(*attempt),
		CompetenceResults: toCompetenceResponses(competences),
		QuestionHistory:   history,
	}, nil
}

// GetAllResults returns the user's attempts, newest first, with the full
// detail of the most recent one.
func (s *resultService) GetAllResults(ctx context.Context, userID int64) (*dto.AllResultsResponse, error) {
	attempts, err := s.resultRepo.ListAttempts(ctx, userID, 0)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load test results", err)
	}

	resp := &dto.AllResultsResponse{
		Success:     true,
		TestResults: make([]dto.TestResultSummary, 0, len(attempts)),
	}
	for _, a := range attempts {
		resp.TestResults = append(resp.TestResults, s.toSummary(a))
	}

	if len(attempts) > 0 {
		detail, err := s.buildDetail(ctx, &attempts[0])
		if err != nil {
			return nil, domain.NewInternalError("Failed to load test results", err)
		}
		resp.LastTestDetails = detail
	}
	return resp, nil
}

// GetResultDetail answers 404 both for missing attempts and for attempts of
// other users.
func (s *resultService) GetResultDetail(ctx context.Context, userID, attemptID int64) (*dto.ResultDetailResponse, error) {
	attempt, err := s.resultRepo.GetAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load test result", err)
	}
	if attempt == nil {
		return nil, domain.NewAttemptNotFoundError(attemptID)
	}

	detail, err := s.buildDetail(ctx, attempt)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load test result", err)
	}
	return &dto.ResultDetailResponse{
		Success:           true,
		TestInfo:          detail.TestResultSummary,
		CompetenceResults: detail.CompetenceResults,
		QuestionHistory:   detail.QuestionHistory,
		Stats:             attemptStats(attempt),
	}, nil
}
