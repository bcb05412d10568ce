package service

import (
	"context"
	"time"

	"expert-test/internal/domain"
	"expert-test/internal/dto"
	"expert-test/internal/logger"

	"go.uber.org/zap"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	GetUser(ctx context.Context, userID int64) (*dto.UserEnvelope, error)
	ListUsers(ctx context.Context) (*dto.UserListResponse, error)
	CheckDatabase(ctx context.Context) (*dto.DBTestResponse, error)
}

type userServiceImpl struct {
	userRepo  domain.UserRepository
	statsRepo domain.StatsRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository, statsRepo domain.StatsRepository) UserService {
	return &userServiceImpl{userRepo: userRepo, statsRepo: statsRepo}
}

// GetUser returns the account record behind the caller's token.
func (s *userServiceImpl) GetUser(ctx context.Context, userID int64) (*dto.UserEnvelope, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Get().Error("Failed to get user", zap.Int64("userID", userID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to retrieve user", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError()
	}
	return &dto.UserEnvelope{Success: true, User: toUserResponse(user)}, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to retrieve users", err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return &dto.UserListResponse{Success: true, Users: out, Count: len(out)}, nil
}

// CheckDatabase pings the database and counts users.
func (s *userServiceImpl) CheckDatabase(ctx context.Context) (*dto.DBTestResponse, error) {
	if err := s.statsRepo.Ping(ctx); err != nil {
		return nil, domain.NewInternalError("Database connection failed", err)
	}
	count, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Database query failed", err)
	}
	return &dto.DBTestResponse{
		Success:    true,
		Message:    "Database connection OK",
		UsersCount: count,
		Timestamp:  time.Now().UTC(),
	}, nil
}
