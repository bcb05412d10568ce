package service

import (
	"context"
	"time"

	"expert-test/internal/domain"
	"expert-test/internal/dto"
	"expert-test/internal/util"
)

const (
	recentTestsLimit    = 10
	topCompetencesLimit = 3
)

// ProfileService builds the profile page: account, aggregate statistics,
// recent attempts and strongest competences.
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	GetProfileTest(ctx context.Context, userID, attemptID int64) (*dto.ProfileTestResponse, error)
}

type profileService struct {
	userRepo   domain.UserRepository
	resultRepo domain.ResultRepository
	loc        *time.Location
}

func NewProfileService(userRepo domain.UserRepository, resultRepo domain.ResultRepository, loc *time.Location) ProfileService {
	if loc == nil {
		loc = time.UTC
	}
	return &profileService{userRepo: userRepo, resultRepo: resultRepo, loc: loc}
}

func (s *profileService) toHistoryEntry(a domain.TestAttempt) dto.TestHistoryEntry {
	parts := domain.SplitDate(a.CompletedAt, s.loc)
	return dto.TestHistoryEntry{
		ID:         a.ID,
		Score:      a.TotalScore,
		Total:      a.TotalQuestions,
		Percentage: a.Percentage,
		Date:       domain.FormatTimestamp(a.CompletedAt, s.loc),
		DateParts:  dto.DateParts{Day: parts.Day, Month: parts.Month, Year: parts.Year},
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load profile", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError()
	}

	stats, err := s.resultRepo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load profile", err)
	}
	attempts, err := s.resultRepo.ListAttempts(ctx, userID, recentTestsLimit)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load profile", err)
	}
	competences, err := s.resultRepo.ListUserCompetenceResults(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load profile", err)
	}

	history := make([]dto.TestHistoryEntry, 0, len(attempts))
	for _, a := range attempts {
		history = append(history, s.toHistoryEntry(a))
	}

	ranking := domain.RankCompetences(competences, topCompetencesLimit)
	best := make([]dto.BestCompetence, 0, len(ranking))
	for _, r := range ranking {
		best = append(best, dto.BestCompetence{
			Competence:    r.Competence,
			AvgPercentage: r.AvgPercentage,
			TimesTested:   r.TimesTested,
		})
	}

	avg := util.Round(stats.AvgPercentage, 1)
	summary := dto.ProfileSummary{
		TotalTests:    stats.TestsCompleted,
		AvgPercentage: avg,
		SuccessRate:   stats.SuccessRate(),
	}
	if len(best) > 0 {
		summary.BestCompetence = best[0].Competence
	}
	if len(history) > 0 {
		summary.LastTestDate = history[0].Date
	}

	return &dto.ProfileResponse{
		Success: true,
		User:    toUserResponse(user),
		Stats: dto.ProfileStats{
			TestsCompleted: stats.TestsCompleted,
			AvgResult:      avg,
			TotalCorrect:   stats.TotalCorrect,
			TotalQuestions: stats.TotalQuestions,
		},
		TestHistory:     history,
		BestCompetences: best,
		Summary:         summary,
	}, nil
}

// GetProfileTest returns the metrics of one of the caller's attempts.
func (s *profileService) GetProfileTest(ctx context.Context, userID, attemptID int64) (*dto.ProfileTestResponse, error) {
	attempt, err := s.resultRepo.GetAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load test result", err)
	}
	if attempt == nil {
		return nil, domain.NewAttemptNotFoundError(attemptID)
	}

	competences, err := s.resultRepo.GetCompetenceResults(ctx, attemptID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load test result", err)
	}

	return &dto.ProfileTestResponse{
		Success: true,
		TestInfo: dto.ProfileTestInfo{
			TestID:      attempt.ID,
			Date:        domain.FormatTimestamp(attempt.CompletedAt, s.loc),
			Score:       attempt.TotalScore,
			Total:       attempt.TotalQuestions,
			Percentage:  attempt.Percentage,
			CompletedAt: attempt.CompletedAt,
		},
		CompetenceResults: toCompetenceResponses(competences),
		Summary:           attemptStats(attempt),
	}, nil
}
