package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"expert-test/internal/config"
	"expert-test/internal/domain"
	"expert-test/internal/dto"
	"expert-test/internal/handler"
	"expert-test/internal/metrics"
	"expert-test/internal/middleware"
	"expert-test/internal/rbac"
	"expert-test/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Embedded interfaces panic on any method the test does not override.
type stubQuestionService struct{ service.QuestionService }

func (stubQuestionService) GetAdminStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	return &dto.AdminStatsResponse{Success: true}, nil
}

func (stubQuestionService) GetCatalog(ctx context.Context) (*dto.QuestionListResponse, error) {
	return &dto.QuestionListResponse{Success: true, Questions: []dto.QuestionResponse{}}, nil
}

type stubUserService struct{ service.UserService }

func (stubUserService) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	return &dto.UserListResponse{Success: true, Users: []dto.UserResponse{}}, nil
}

type stubResultService struct{ service.ResultService }

type stubProfileService struct{ service.ProfileService }

type stubAuthService struct{ service.AuthService }

func (stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{Success: true}, nil
}

// tokenRoles maps bearer tokens to roles.
type tokenRoles map[string]string

func (t tokenRoles) ValidateJWT(ctx context.Context, token string) (*dto.AuthClaims, error) {
	role, ok := t[token]
	if !ok {
		return nil, domain.NewUnauthorizedError("Invalid token")
	}
	return &dto.AuthClaims{UserID: 1, Email: "x@example.com", Role: role, TokenType: "access"}, nil
}

func newTestRouter(t *testing.T) (*fiber.App, *prometheus.Registry) {
	t.Helper()
	cfg := &config.Config{
		App:    config.AppConfig{Name: "expert-test"},
		Server: config.ServerConfig{AllowOrigins: "*"},
	}
	userSvc := stubUserService{}
	questionSvc := stubQuestionService{}
	reg := prometheus.NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := newRouter(routerDeps{
		cfg: cfg,
		handlers: handlers{
			auth:    handler.NewAuthHandler(stubAuthService{}, userSvc),
			user:    handler.NewUserHandler(userSvc),
			test:    handler.NewTestHandler(questionSvc),
			result:  handler.NewResultHandler(stubResultService{}),
			profile: handler.NewProfileHandler(stubProfileService{}),
			admin:   handler.NewAdminHandler(questionSvc),
			system:  handler.NewSystemHandler(userSvc, cfg.App.Name),
		},
		validator:   tokenRoles{"user-token": "user", "admin-token": "admin", "guest-token": "guest"},
		checker:     rbac.NewChecker(nil),
		authLimiter: middleware.NewRateLimiter(ctx, 2, time.Minute),
		metrics:     metrics.New(reg),
		gatherer:    reg,
	})
	return app, reg
}

func TestRouter_PermissionGates(t *testing.T) {
	app, _ := newTestRouter(t)

	tests := []struct {
		path   string
		token  string
		status int
	}{
		{"/api/admin/stats", "", fiber.StatusUnauthorized},
		{"/api/admin/stats", "bogus", fiber.StatusUnauthorized},
		{"/api/admin/stats", "user-token", fiber.StatusForbidden},
		{"/api/admin/stats", "admin-token", fiber.StatusOK},
		{"/api/users", "user-token", fiber.StatusForbidden},
		{"/api/users", "admin-token", fiber.StatusOK},
		{"/api/test/questions", "user-token", fiber.StatusOK},
		{"/api/test/questions", "admin-token", fiber.StatusOK},
		{"/api/test/questions", "guest-token", fiber.StatusForbidden},
		{"/api/results/abc", "user-token", fiber.StatusBadRequest},
		{"/api/unknown", "", fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path+"/"+tt.token, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	app, _ := newTestRouter(t)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.co","password":"secret1"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
	}
	assert.Equal(t, []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}, statuses)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	app, _ := newTestRouter(t)

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/test", nil), -1)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestServe_ShutsDownWhenContextIsDone(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.Hooks().OnListen(func(fiber.ListenData) error {
		cancel()
		return nil
	})

	assert.NoError(t, serve(ctx, app, "127.0.0.1:0", time.Second))
}

func TestServe_ReturnsListenError(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	err := serve(context.Background(), app, "127.0.0.1:-1", time.Second)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start server")
}
