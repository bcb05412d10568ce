package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"expert-test/internal/config"
	"expert-test/internal/domain"
	"expert-test/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWTConfig = config.JWTConfig{
	SecretKey:      "testsecretkeydontuseinproduction32bytes!",
	AccessTokenTTL: time.Hour,
}

func newTestAuthService(t *testing.T, repo *MockUserRepository) *authServiceImpl {
	t.Helper()
	svc, err := NewAuthService(repo, testJWTConfig)
	require.NoError(t, err)
	impl := svc.(*authServiceImpl)
	impl.bcryptCost = bcrypt.MinCost
	return impl
}

func assertDomainCode(t *testing.T, err error, code domain.ErrorCode) {
	t.Helper()
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr), "Error should be a domain.DomainError, got %v", err)
	assert.Equal(t, code, domainErr.Code)
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService(new(MockUserRepository), config.JWTConfig{})
	assert.Error(t, err)
}

func TestAuthService_CreateAndValidateJWT(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))

	token, err := svc.CreateJWT(context.Background(), &domain.User{ID: 42, Email: "a@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestAuthService_ValidateJWT_Expired(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))
	svc.jwtConfig.AccessTokenTTL = -time.Minute

	token, err := svc.CreateJWT(context.Background(), &domain.User{ID: 1, Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), token)
	assertDomainCode(t, err, domain.CodeTokenExpired)
}

func TestAuthService_ValidateJWT_WrongSecretOrAlgorithm(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))

	other := newTestAuthService(t, new(MockUserRepository))
	other.jwtConfig.SecretKey = "another-secret"
	foreign, err := other.CreateJWT(context.Background(), &domain.User{ID: 1})
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), foreign)
	assertDomainCode(t, err, domain.CodeUnauthorized)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, dto.AuthClaims{UserID: 1, TokenType: "access"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), unsigned)
	assertDomainCode(t, err, domain.CodeUnauthorized)
}

func TestAuthService_Register(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(t, repo)

	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "alice" && u.Email == "alice@example.com" && u.Role == domain.RoleUser &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
	})).Run(func(args mock.Arguments) {
		u := args.Get(1).(*domain.User)
		u.ID = 7
		u.CreatedAt = time.Now()
	}).Return(nil)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: " alice ", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(7), resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateJWT(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(t, repo)

	repo.On("CreateUser", mock.Anything, mock.Anything).Return(domain.NewDuplicateUserError(errors.New("23505")))

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	assertDomainCode(t, err, domain.CodeDuplicateUser)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: 3, Username: "bob", Email: "bob@example.com", PasswordHash: hash, Role: domain.RoleUser}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(user, nil)
		svc := newTestAuthService(t, repo)

		resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "bob@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "bob", resp.User.Username)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(user, nil)
		svc := newTestAuthService(t, repo)

		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "bob@example.com", Password: "nope"})
		assertDomainCode(t, err, domain.CodeInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
		svc := newTestAuthService(t, repo)

		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
		assertDomainCode(t, err, domain.CodeInvalidCredentials)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "bob@example.com").Return(nil, errors.New("connection refused"))
		svc := newTestAuthService(t, repo)

		_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "bob@example.com", Password: "secret1"})
		assertDomainCode(t, err, domain.CodeInternal)
	})
}
