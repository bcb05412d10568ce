package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"expert-test/internal/config"
	"expert-test/internal/domain"
	"expert-test/internal/dto"
	"expert-test/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeAccess = "access"

// ErrInvalidJWTToken wraps every token parse or signature failure other
// than expiry.
var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, user *domain.User) (string, error)
}

type authServiceImpl struct {
	userRepo   domain.UserRepository
	jwtConfig  config.JWTConfig
	bcryptCost int
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, jwtConfig config.JWTConfig) (AuthService, error) {
	if len(jwtConfig.SecretKey) == 0 {
		return nil, errors.New("jwt secret key is not configured")
	}
	if jwtConfig.AccessTokenTTL <= 0 {
		jwtConfig.AccessTokenTTL = 720 * time.Hour
	}
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtConfig:  jwtConfig,
		bcryptCost: bcrypt.DefaultCost,
	}, nil
}

// HashPassword hashes a plain password with bcrypt. The seed command uses it
// as well.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to register user", err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if domainErr, ok := asDomainError(err); ok {
			return nil, domainErr
		}
		return nil, domain.NewInternalError("Failed to register user", err)
	}

	token, err := s.CreateJWT(ctx, user)
	if err != nil {
		return nil, domain.NewInternalError("Failed to issue token", err)
	}

	logger.Get().Info("User registered", zap.Int64("userID", user.ID), zap.String("email", user.Email))
	return &dto.AuthResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   token,
		User:    toUserResponse(user),
	}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, domain.NewInternalError("Failed to log in", err)
	}
	if user == nil {
		return nil, domain.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Get().Info("Login rejected", zap.Int64("userID", user.ID))
		return nil, domain.NewInvalidCredentialsError()
	}

	token, err := s.CreateJWT(ctx, user)
	if err != nil {
		return nil, domain.NewInternalError("Failed to issue token", err)
	}

	return &dto.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    toUserResponse(user),
	}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.SecretKey))
}

func tokenSnippet(tokenString string) string {
	return tokenString[:min(len(tokenString), 20)] + "..."
}

// ValidateJWT returns a TOKEN_EXPIRED domain error for expired tokens and an
// UNAUTHORIZED one for anything else that fails verification.
func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Info("JWT token expired", zap.String("token_snippet", tokenSnippet(tokenString)))
			return nil, domain.NewTokenExpiredError(err)
		}
		appLogger.Warn("JWT validation failed",
			zap.Error(err),
			zap.String("token_snippet", tokenSnippet(tokenString)))
		return nil, domain.NewError(domain.CodeUnauthorized, "Invalid token", fmt.Errorf("%w: %v", ErrInvalidJWTToken, err))
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid && claims.UserID > 0 {
		return claims, nil
	}
	return nil, domain.NewError(domain.CodeUnauthorized, "Invalid token", ErrInvalidJWTToken)
}

func toUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
