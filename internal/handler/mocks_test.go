package handler_test

import (
	"context"

	"expert-test/internal/domain"
	"expert-test/internal/dto"
)

// --- Manual Mocks ---

type MockAuthService struct {
	RegisterFunc    func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	LoginFunc       func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWTFunc   func(ctx context.Context, user *domain.User) (string, error)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	panic("MockAuthService.RegisterFunc not implemented")
}
func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	panic("MockAuthService.LoginFunc not implemented")
}
func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	panic("MockAuthService.ValidateJWTFunc not implemented")
}
func (m *MockAuthService) CreateJWT(ctx context.Context, user *domain.User) (string, error) {
	if m.CreateJWTFunc != nil {
		return m.CreateJWTFunc(ctx, user)
	}
	panic("MockAuthService.CreateJWTFunc not implemented")
}

type MockUserService struct {
	GetUserFunc       func(ctx context.Context, userID int64) (*dto.UserEnvelope, error)
	ListUsersFunc     func(ctx context.Context) (*dto.UserListResponse, error)
	CheckDatabaseFunc func(ctx context.Context) (*dto.DBTestResponse, error)
}

func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*dto.UserEnvelope, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	panic("MockUserService.GetUserFunc not implemented")
}
func (m *MockUserService) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	panic("MockUserService.ListUsersFunc not implemented")
}
func (m *MockUserService) CheckDatabase(ctx context.Context) (*dto.DBTestResponse, error) {
	if m.CheckDatabaseFunc != nil {
		return m.CheckDatabaseFunc(ctx)
	}
	panic("MockUserService.CheckDatabaseFunc not implemented")
}

type MockQuestionService struct {
	GetCatalogFunc         func(ctx context.Context) (*dto.QuestionListResponse, error)
	ListQuestionsFunc      func(ctx context.Context) (*dto.QuestionListResponse, error)
	CreateQuestionFunc     func(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionEnvelope, error)
	UpdateQuestionFunc     func(ctx context.Context, id int64, req *dto.QuestionRequest) (*dto.QuestionEnvelope, error)
	DeleteQuestionFunc     func(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error)
	CheckQuestionUsageFunc func(ctx context.Context, id int64) (*dto.QuestionUsageResponse, error)
	CreateAnswerFunc       func(ctx context.Context, req *dto.AnswerRequest) (*dto.AnswerEnvelope, error)
	UpdateAnswerFunc       func(ctx context.Context, id int64, req *dto.AnswerRequest) (*dto.AnswerEnvelope, error)
	DeleteAnswerFunc       func(ctx context.Context, id int64) (*dto.MessageResponse, error)
	GetAdminStatsFunc      func(ctx context.Context) (*dto.AdminStatsResponse, error)
}

func (m *MockQuestionService) GetCatalog(ctx context.Context) (*dto.QuestionListResponse, error) {
	if m.GetCatalogFunc != nil {
		return m.GetCatalogFunc(ctx)
	}
	panic("MockQuestionService.GetCatalogFunc not implemented")
}
func (m *MockQuestionService) ListQuestions(ctx context.Context) (*dto.QuestionListResponse, error) {
	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx)
	}
	panic("MockQuestionService.ListQuestionsFunc not implemented")
}
func (m *MockQuestionService) CreateQuestion(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionEnvelope, error) {
	if m.CreateQuestionFunc != nil {
		return m.CreateQuestionFunc(ctx, req)
	}
	panic("MockQuestionService.CreateQuestionFunc not implemented")
}
func (m *MockQuestionService) UpdateQuestion(ctx context.Context, id int64, req *dto.QuestionRequest) (*dto.QuestionEnvelope, error) {
	if m.UpdateQuestionFunc != nil {
		return m.UpdateQuestionFunc(ctx, id, req)
	}
	panic("MockQuestionService.UpdateQuestionFunc not implemented")
}
func (m *MockQuestionService) DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error) {
	if m.DeleteQuestionFunc != nil {
		return m.DeleteQuestionFunc(ctx, id)
	}
	panic("MockQuestionService.DeleteQuestionFunc not implemented")
}
func (m *MockQuestionService) CheckQuestionUsage(ctx context.Context, id int64) (*dto.QuestionUsageResponse, error) {
	if m.CheckQuestionUsageFunc != nil {
		return m.CheckQuestionUsageFunc(ctx, id)
	}
	panic("MockQuestionService.CheckQuestionUsageFunc not implemented")
}
func (m *MockQuestionService) CreateAnswer(ctx context.Context, req *dto.AnswerRequest) (*dto.AnswerEnvelope, error) {
	if m.CreateAnswerFunc != nil {
		return m.CreateAnswerFunc(ctx, req)
	}
	panic("MockQuestionService.CreateAnswerFunc not implemented")
}
func (m *MockQuestionService) UpdateAnswer(ctx context.Context, id int64, req *dto.AnswerRequest) (*dto.AnswerEnvelope, error) {
	if m.UpdateAnswerFunc != nil {
		return m.UpdateAnswerFunc(ctx, id, req)
	}
	panic("MockQuestionService.UpdateAnswerFunc not implemented")
}
func (m *MockQuestionService) DeleteAnswer(ctx context.Context, id int64) (*dto.MessageResponse, error) {
	if m.DeleteAnswerFunc != nil {
		return m.DeleteAnswerFunc(ctx, id)
	}
	panic("MockQuestionService.DeleteAnswerFunc not implemented")
}
func (m *MockQuestionService) GetAdminStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	if m.GetAdminStatsFunc != nil {
		return m.GetAdminStatsFunc(ctx)
	}
	panic("MockQuestionService.GetAdminStatsFunc not implemented")
}

type MockResultService struct {
	SaveResultsFunc     func(ctx context.Context, userID int64, req *dto.SaveResultsRequest) (*dto.SaveResultsResponse, error)
	GetAllResultsFunc   func(ctx context.Context, userID int64) (*dto.AllResultsResponse, error)
	GetResultDetailFunc func(ctx context.Context, userID, attemptID int64) (*dto.ResultDetailResponse, error)
}

func (m *MockResultService) SaveResults(ctx context.Context, userID int64, req *dto.SaveResultsRequest) (*dto.SaveResultsResponse, error) {
	if m.SaveResultsFunc != nil {
		return m.SaveResultsFunc(ctx, userID, req)
	}
	panic("MockResultService.SaveResultsFunc not implemented")
}
func (m *MockResultService) GetAllResults(ctx context.Context, userID int64) (*dto.AllResultsResponse, error) {
	if m.GetAllResultsFunc != nil {
		return m.GetAllResultsFunc(ctx, userID)
	}
	panic("MockResultService.GetAllResultsFunc not implemented")
}
func (m *MockResultService) GetResultDetail(ctx context.Context, userID, attemptID int64) (*dto.ResultDetailResponse, error) {
	if m.GetResultDetailFunc != nil {
		return m.GetResultDetailFunc(ctx, userID, attemptID)
	}
	panic("MockResultService.GetResultDetailFunc not implemented")
}

type MockProfileService struct {
	GetProfileFunc     func(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	GetProfileTestFunc func(ctx context.Context, userID, attemptID int64) (*dto.ProfileTestResponse, error)
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	panic("MockProfileService.GetProfileFunc not implemented")
}
func (m *MockProfileService) GetProfileTest(ctx context.Context, userID, attemptID int64) (*dto.ProfileTestResponse, error) {
	if m.GetProfileTestFunc != nil {
		return m.GetProfileTestFunc(ctx, userID, attemptID)
	}
	panic("MockProfileService.GetProfileTestFunc not implemented")
}
