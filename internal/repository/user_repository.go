package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"expert-test/internal/domain"
	"expert-test/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.Password,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
	}
}

// CreateUser inserts a new user and fills in ID and CreatedAt. A duplicate
// username or email yields a DUPLICATE_USER domain error.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	query := `INSERT INTO users (username, email, password, role)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`

	err := GetExecutor(ctx, r.db).
		QueryRowxContext(ctx, query, user.Username, strings.ToLower(user.Email), user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateUserError(err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.Email = strings.ToLower(user.Email)
	return nil
}

func (r *sqlxUserRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var user models.User
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainUser(&user), nil
}

// GetUserByID returns nil, nil when the user does not exist.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := r.getOne(ctx, `SELECT id, username, email, password, role, created_at FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetUserByEmail returns nil, nil when the user does not exist.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.getOne(ctx, `SELECT id, username, email, password, role, created_at FROM users WHERE email = $1`, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// ListUsers returns all users without password hashes.
func (r *sqlxUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var rows []models.User
	query := `SELECT id, username, email, role, created_at FROM users ORDER BY id`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, *toDomainUser(&rows[i]))
	}
	return users, nil
}

func (r *sqlxUserRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
