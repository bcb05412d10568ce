package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"expert-test/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, new(MockStatsRepository))
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	repo.On("GetUserByID", mock.Anything, int64(1)).
		Return(&domain.User{ID: 1, Username: "alice", Email: "a@example.com", PasswordHash: "hash", Role: domain.RoleUser, CreatedAt: created}, nil)
	repo.On("GetUserByID", mock.Anything, int64(2)).Return(nil, nil)
	repo.On("GetUserByID", mock.Anything, int64(3)).Return(nil, errors.New("db down"))

	resp, err := svc.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, created, resp.User.CreatedAt)

	_, err = svc.GetUser(context.Background(), 2)
	assertDomainCode(t, err, domain.CodeUserNotFound)

	_, err = svc.GetUser(context.Background(), 3)
	assertDomainCode(t, err, domain.CodeInternal)
}

func TestUserService_ListUsers(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, new(MockStatsRepository))

	repo.On("ListUsers", mock.Anything).Return([]domain.User{
		{ID: 1, Username: "admin", Role: domain.RoleAdmin},
		{ID: 2, Username: "alice", Role: domain.RoleUser},
	}, nil)

	resp, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, domain.RoleAdmin, resp.Users[0].Role)
}

func TestUserService_CheckDatabase(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		repo := new(MockUserRepository)
		stats := new(MockStatsRepository)
		stats.On("Ping", mock.Anything).Return(nil)
		repo.On("CountUsers", mock.Anything).Return(5, nil)

		resp, err := NewUserService(repo, stats).CheckDatabase(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 5, resp.UsersCount)
	})

	t.Run("PingFails", func(t *testing.T) {
		stats := new(MockStatsRepository)
		stats.On("Ping", mock.Anything).Return(errors.New("refused"))

		_, err := NewUserService(new(MockUserRepository), stats).CheckDatabase(context.Background())
		assertDomainCode(t, err, domain.CodeInternal)
	})
}
