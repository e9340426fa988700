package main

import (
	"errors"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logrus.Fatal("DATABASE_URL is required")
	}

	// the migrate pgx/v5 driver registers the pgx5:// scheme
	if strings.HasPrefix(dbURL, "postgres://") {
		dbURL = "pgx5://" + strings.TrimPrefix(dbURL, "postgres://")
	}

	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = "migrations"
	}

	m, err := migrate.New("file://"+dir, dbURL)
	if err != nil {
		logrus.Fatalf("open migrations: %v", err)
	}
	defer m.Close()

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	default:
		logrus.Fatalf("unknown direction %q (use up or down)", direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logrus.Fatalf("migrate %s: %v", direction, err)
	}

	logrus.WithField("direction", direction).Info("migrations applied")
}
