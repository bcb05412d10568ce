package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"expert-test/internal/config"
	"expert-test/internal/database"
	"expert-test/internal/logger"

	"go.uber.org/zap"
)

const usage = `usage: migrate [--steps N | --all] up|down

  up     apply pending migrations (all by default)
  down   roll back one migration by default, every migration with --all`

func main() {
	steps := flag.Int("steps", 0, "number of migrations to apply or roll back")
	all := flag.Bool("all", false, "with down: roll back every migration")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	dir, n, err := parseArgs(flag.Args(), *steps, *all)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer l.Sync()

	db, err := database.NewSQLXPostgresDB(cfg.DB, cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	l.Info("Running migrations", zap.String("direction", string(dir)), zap.Int("steps", n))
	if err := database.RunMigrations(db.DB, dir, n); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Migrations finished")
}

// parseArgs resolves the direction and step count. A bare "down" rolls back
// a single migration so a typo cannot drop the whole schema.
func parseArgs(args []string, steps int, all bool) (database.Direction, int, error) {
	if len(args) != 1 {
		return "", 0, fmt.Errorf("expected exactly one command, got %d", len(args))
	}
	if steps < 0 {
		return "", 0, fmt.Errorf("--steps must not be negative")
	}
	if steps > 0 && all {
		return "", 0, fmt.Errorf("--steps and --all are mutually exclusive")
	}

	switch database.Direction(args[0]) {
	case database.Up:
		return database.Up, steps, nil
	case database.Down:
		if all {
			return database.Down, 0, nil
		}
		if steps == 0 {
			steps = 1
		}
		return database.Down, steps, nil
	default:
		return "", 0, fmt.Errorf("unknown command %q", args[0])
	}
}
