package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"donationledger/internal/infra"
	"donationledger/internal/sqlinline"
)

// migrations run in order. Each statement is idempotent.
var migrations = []struct {
	name  string
	query string
}{
	{"create ledger_kv", sqlinline.QCreateKVTable},
}

func main() {
	_ = godotenv.Load()

	var dbURL string
	flag.StringVar(&dbURL, "database-url", os.Getenv("DATABASE_URL"), "postgres connection string (defaults to DATABASE_URL)")
	flag.Parse()

	logger := infra.NewLogger(getEnv("APP_ENV", "development"), os.Getenv("LOG_LEVEL"))

	if err := run(strings.TrimSpace(dbURL)); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	logger.Info().Int("migrations", len(migrations)).Msg("schema is up to date")
}

func run(dbURL string) error {
	if dbURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, m := range migrations {
		if _, err := tx.ExecContext(ctx, m.query); err != nil {
			return fmt.Errorf("%s: %w", m.name, err)
		}
	}
	return tx.Commit()
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
