package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"expert-test/internal/cache"
	"expert-test/internal/domain"
	"expert-test/internal/dto"
	"expert-test/internal/logger"
	"expert-test/internal/metrics"
	"expert-test/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultCatalogTTL = 10 * time.Minute

// QuestionService serves the question catalog to test takers and the
// question/answer CRUD of the admin panel.
type QuestionService interface {
	GetCatalog(ctx context.Context) (*dto.QuestionListResponse, error)
	ListQuestions(ctx context.Context) (*dto.QuestionListResponse, error)
	CreateQuestion(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionEnvelope, error)
	UpdateQuestion(ctx context.Context, id int64, req *dto.QuestionRequest) (*dto.QuestionEnvelope, error)
	DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error)
	CheckQuestionUsage(ctx context.Context, id int64) (*dto.QuestionUsageResponse, error)
	CreateAnswer(ctx context.Context, req *dto.AnswerRequest) (*dto.AnswerEnvelope, error)
	UpdateAnswer(ctx context.Context, id int64, req *dto.AnswerRequest) (*dto.AnswerEnvelope, error)
	DeleteAnswer(ctx context.Context, id int64) (*dto.MessageResponse, error)
	GetAdminStats(ctx context.Context) (*dto.AdminStatsResponse, error)
}

type questionService struct {
	repo      domain.QuestionRepository
	statsRepo domain.StatsRepository
	txManager domain.TransactionManager
	cache     domain.Cache
	cacheTTL  time.Duration
	metrics   *metrics.Metrics
	validator *validation.Validator
	group     singleflight.Group
}

// NewQuestionService wires the question service. cache must not be nil; use
// adapter.NewNoopCache when Redis is not configured.
func NewQuestionService(
	repo domain.QuestionRepository,
	statsRepo domain.StatsRepository,
	txManager domain.TransactionManager,
	cache domain.Cache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
) QuestionService {
	if cacheTTL <= 0 {
		cacheTTL = defaultCatalogTTL
	}
	return &questionService{
		repo:      repo,
		statsRepo: statsRepo,
		txManager: txManager,
		cache:     cache,
		cacheTTL:  cacheTTL,
		metrics:   m,
		validator: validation.NewValidator(),
	}
}

func toAnswerResponse(a domain.Answer) dto.AnswerResponse {
	return dto.AnswerResponse{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		AnswerText: a.Text,
		IsCorrect:  a.IsCorrect,
		CreatedAt:  a.CreatedAt,
	}
}

func toQuestionResponse(q domain.Question) dto.QuestionResponse {
	answers := make([]dto.AnswerResponse, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, toAnswerResponse(a))
	}
	return dto.QuestionResponse{
		ID:           q.ID,
		QuestionText: q.Text,
		Competence:   q.Competence,
		QuestionType: string(q.Type),
		Answers:      answers,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func toQuestionList(questions []domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, toQuestionResponse(q))
	}
	return out
}

// GetCatalog returns every question with answers, served from the cache
// when possible. Concurrent misses share one database read.
func (s *questionService) GetCatalog(ctx context.Context) (*dto.QuestionListResponse, error) {
	key := cache.QuestionCatalogKey()
	appLogger := logger.Get()

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var questions []dto.QuestionResponse
		jsonErr := json.Unmarshal([]byte(cached), &questions)
		if jsonErr == nil {
			s.metrics.ObserveCatalogLookup(true)
			return &dto.QuestionListResponse{Success: true, Questions: questions, Count: len(questions)}, nil
		}
		appLogger.Warn("Discarding undecodable question catalog cache entry", zap.Error(jsonErr))
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		appLogger.Warn("Question catalog cache read failed", zap.Error(err))
	}
	s.metrics.ObserveCatalogLookup(false)

	// The shared load must outlive the first caller's request.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		questions, err := s.repo.ListQuestionsWithAnswers(loadCtx)
		if err != nil {
			return nil, err
		}
		list := toQuestionList(questions)

		if payload, jsonErr := json.Marshal(list); jsonErr == nil {
			if setErr := s.cache.Set(loadCtx, key, string(payload), s.cacheTTL); setErr != nil {
				appLogger.Warn("Question catalog cache write failed", zap.Error(setErr))
			}
		}
		return list, nil
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to load questions", err)
	}

	questions := v.([]dto.QuestionResponse)
	return &dto.QuestionListResponse{Success: true, Questions: questions, Count: len(questions)}, nil
}

func (s *questionService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.QuestionCatalogKey()); err != nil {
		logger.Get().Warn("Failed to invalidate question catalog cache", zap.Error(err))
	}
}

// ListQuestions is the admin view and always reads from the database.
func (s *questionService) ListQuestions(ctx context.Context) (*dto.QuestionListResponse, error) {
	questions, err := s.repo.ListQuestionsWithAnswers(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load questions", err)
	}
	list := toQuestionList(questions)
	return &dto.QuestionListResponse{Success: true, Questions: list, Count: len(list)}, nil
}

func (s *questionService) CreateQuestion(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionEnvelope, error) {
	qType, errs := s.validator.ValidateQuestion(req)
	if len(errs) > 0 {
		return nil, errs
	}

	q := &domain.Question{
		Text:       strings.TrimSpace(req.QuestionText),
		Competence: strings.TrimSpace(req.Competence),
		Type:       qType,
	}
	if err := s.repo.CreateQuestion(ctx, q); err != nil {
		return nil, domain.NewInternalError("Failed to create question", err)
	}
	s.invalidateCatalog(ctx)

	logger.Get().Info("Question created", zap.Int64("questionID", q.ID), zap.String("competence", q.Competence))
	return &dto.QuestionEnvelope{Success: true, Message: "Question created successfully", Question: toQuestionResponse(*q)}, nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, id int64, req *dto.QuestionRequest) (*dto.QuestionEnvelope, error) {
	qType, errs := s.validator.ValidateQuestion(req)
	if len(errs) > 0 {
		return nil, errs
	}

	q := &domain.Question{
		ID:         id,
		Text:       strings.TrimSpace(req.QuestionText),
		Competence: strings.TrimSpace(req.Competence),
		Type:       qType,
	}
	if err := s.repo.UpdateQuestion(ctx, q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewQuestionNotFoundError(id)
		}
		return nil, domain.NewInternalError("Failed to update question", err)
	}
	s.invalidateCatalog(ctx)

	updated, err := s.repo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load updated question", err)
	}
	if updated == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return &dto.QuestionEnvelope{Success: true, Message: "Question updated successfully", Question: toQuestionResponse(*updated)}, nil
}

// DeleteQuestion removes the question with its answers and every submitted
// answer that references it in one transaction.
func (s *questionService) DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error) {
	var deletion *domain.QuestionDeletion
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		deletion, err = s.repo.DeleteQuestion(txCtx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewQuestionNotFoundError(id)
		}
		if domainErr, ok := asDomainError(err); ok {
			return nil, domainErr
		}
		return nil, domain.NewInternalError("Failed to delete question", err)
	}
	s.invalidateCatalog(ctx)

	logger.Get().Info("Question deleted",
		zap.Int64("questionID", id),
		zap.Int64("answersDeleted", deletion.AnswersDeleted),
		zap.Int64("userAnswersDeleted", deletion.UserAnswersDeleted),
	)
	return &dto.DeleteQuestionResponse{
		Success:            true,
		Message:            "Question deleted successfully",
		DeletedAnswers:     deletion.AnswersDeleted,
		DeletedUserAnswers: deletion.UserAnswersDeleted,
	}, nil
}

func (s *questionService) CheckQuestionUsage(ctx context.Context, id int64) (*dto.QuestionUsageResponse, error) {
	q, err := s.repo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check question usage", err)
	}
	if q == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}

	usage, err := s.repo.GetQuestionUsage(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check question usage", err)
	}

	message := "Question is not used in any test results and can be deleted"
	if !usage.CanDelete() {
		message = "Question is used in saved test results; deleting it also removes those submitted answers"
	}
	return &dto.QuestionUsageResponse{
		Success:      true,
		QuestionID:   id,
		UsedInTests:  usage.UsedInTests,
		UsedByUsers:  usage.UsedByUsers,
		AnswersCount: usage.AnswersCount,
		CanDelete:    usage.CanDelete(),
		Message:      message,
	}, nil
}

func (s *questionService) CreateAnswer(ctx context.Context, req *dto.AnswerRequest) (*dto.AnswerEnvelope, error) {
	if errs := s.validator.ValidateAnswer(req, true); len(errs) > 0 {
		return nil, errs
	}

	a := &domain.Answer{
		QuestionID: req.QuestionID,
		Text:       strings.TrimSpace(req.AnswerText),
		IsCorrect:  req.IsCorrect,
	}
	if err := s.repo.CreateAnswer(ctx, a); err != nil {
		if domainErr, ok := asDomainError(err); ok {
			return nil, domainErr
		}
		return nil, domain.NewInternalError("Failed to create answer", err)
	}
	s.invalidateCatalog(ctx)

	return &dto.AnswerEnvelope{Success: true, Message: "Answer created successfully", Answer: toAnswerResponse(*a)}, nil
}

func (s *questionService) UpdateAnswer(ctx context.Context, id int64, req *dto.AnswerRequest) (*dto.AnswerEnvelope, error) {
	if errs := s.validator.ValidateAnswer(req, false); len(errs) > 0 {
		return nil, errs
	}

	a := &domain.Answer{
		ID:        id,
		Text:      strings.TrimSpace(req.AnswerText),
		IsCorrect: req.IsCorrect,
	}
	if err := s.repo.UpdateAnswer(ctx, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewAnswerNotFoundError(id)
		}
		return nil, domain.NewInternalError("Failed to update answer", err)
	}
	s.invalidateCatalog(ctx)

	return &dto.AnswerEnvelope{Success: true, Message: "Answer updated successfully", Answer: toAnswerResponse(*a)}, nil
}

// DeleteAnswer refuses answers referenced by saved results with a
// REFERENCE_IN_USE error.
func (s *questionService) DeleteAnswer(ctx context.Context, id int64) (*dto.MessageResponse, error) {
	existing, err := s.repo.GetAnswerByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to delete answer", err)
	}
	if existing == nil {
		return nil, domain.NewAnswerNotFoundError(id)
	}

	if err := s.repo.DeleteAnswer(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewAnswerNotFoundError(id)
		}
		if domainErr, ok := asDomainError(err); ok {
			return nil, domainErr
		}
		return nil, domain.NewInternalError("Failed to delete answer", err)
	}
	s.invalidateCatalog(ctx)
	logger.Get().Info("Answer deleted", zap.Int64("answerID", id), zap.Int64("questionID", existing.QuestionID))

	return &dto.MessageResponse{Success: true, Message: "Answer deleted successfully"}, nil
}

func (s *questionService) GetAdminStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	stats, err := s.statsRepo.GetAdminStats(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load statistics", err)
	}
	return &dto.AdminStatsResponse{
		Success: true,
		Stats: dto.AdminStats{
			TotalUsers:       stats.TotalUsers,
			TotalQuestions:   stats.TotalQuestions,
			TotalAnswers:     stats.TotalAnswers,
			TotalUserAnswers: stats.TotalUserAnswers,
		},
	}, nil
}
