package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"expert-test/cmd/seed_initial_data/internal/seedmodels"
	"expert-test/internal/config"
	"expert-test/internal/database"
	"expert-test/internal/domain"
	"expert-test/internal/logger"
	"expert-test/internal/repository"
	"expert-test/internal/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultSeedFilePath = "configs/seed_data/questions.json"

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func main() {
	seedFile := flag.String("file", defaultSeedFilePath, "path to the JSON question seed file")
	adminEmail := flag.String("admin-email", envOr("SEED_ADMIN_EMAIL", "admin@example.com"), "email of the admin account")
	adminPassword := flag.String("admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "password of the admin account; the account is skipped when empty")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXPostgresDB(cfg.DB, cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewSQLXUserRepository(db)
	questionRepo := repository.NewSQLXQuestionRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	if *adminPassword != "" {
		if err := seedAdmin(ctx, userRepo, *adminEmail, *adminPassword, bcrypt.DefaultCost); err != nil {
			log.Fatal("Failed to seed admin user", zap.Error(err))
		}
	} else {
		log.Info("No admin password given, skipping admin account")
	}

	log.Info("Loading seed data from file", zap.String("path", *seedFile))
	byteValue, err := os.ReadFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFile), zap.Error(err))
	}

	var seed seedmodels.SeedFile
	if err := json.Unmarshal(byteValue, &seed); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("questions_loaded", len(seed.Questions)))

	created, err := seedQuestions(ctx, questionRepo, txManager, seed.Questions)
	if err != nil {
		log.Fatal("Failed to seed questions", zap.Error(err))
	}
	log.Info("Initial data seeding process completed.", zap.Int("questions_created", created))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// seedAdmin creates the admin account unless the email is already taken.
func seedAdmin(ctx context.Context, users domain.UserRepository, email, password string, cost int) error {
	existing, err := users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.Get().Info("Admin user exists", zap.String("email", email), zap.String("role", existing.Role))
		return nil
	}

	hash, err := service.HashPassword(password, cost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := users.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin %s: %w", email, err)
	}
	logger.Get().Info("Created admin user", zap.Int64("id", admin.ID), zap.String("email", email))
	return nil
}

// seedQuestions inserts every question whose text is not stored yet, each
// question with its answers in one transaction. Reruns are no-ops.
func seedQuestions(ctx context.Context, repo domain.QuestionRepository, txManager domain.TransactionManager, questions []seedmodels.SeedQuestion) (int, error) {
	log := logger.Get()

	stored, err := repo.ListQuestionsWithAnswers(ctx)
	if err != nil {
		return 0, err
	}
	existing := make(map[string]struct{}, len(stored))
	for _, q := range stored {
		existing[strings.TrimSpace(q.Text)] = struct{}{}
	}

	created := 0
	for _, sq := range questions {
		text := strings.TrimSpace(sq.Text)
		if _, ok := existing[text]; ok {
			log.Info("Question exists, skipping", zap.String("question_preview", firstN(text, 40)))
			continue
		}

		qType, ok := domain.ParseQuestionType(sq.QuestionType)
		if !ok {
			return created, fmt.Errorf("question '%s': unknown question_type %q", firstN(text, 50), sq.QuestionType)
		}

		err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			q := &domain.Question{Text: text, Competence: strings.TrimSpace(sq.Competence), Type: qType}
			if err := repo.CreateQuestion(txCtx, q); err != nil {
				return err
			}
			for _, sa := range sq.Answers {
				a := &domain.Answer{QuestionID: q.ID, Text: strings.TrimSpace(sa.Text), IsCorrect: sa.IsCorrect}
				if err := repo.CreateAnswer(txCtx, a); err != nil {
					return err
				}
			}
			log.Info("Created question", zap.Int64("id", q.ID), zap.Int("answers", len(sq.Answers)))
			return nil
		})
		if err != nil {
			return created, fmt.Errorf("failed to save question '%s': %w", firstN(text, 50), err)
		}
		existing[text] = struct{}{}
		created++
	}
	return created, nil
}
