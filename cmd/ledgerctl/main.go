package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"donationledger/internal/domain"
	"donationledger/internal/host"
	"donationledger/internal/infra"
	"donationledger/internal/store"
)

var (
	databaseURL     string
	dataDir         string
	contractAddress string
	timeout         time.Duration
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:           "ledgerctl",
	Short:         "Inspect and administer the donation ledger",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "postgres connection string (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", os.Getenv("DATA_DIR"), "file store directory used when no database is set (defaults to DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&contractAddress, "contract", envOr("CONTRACT_ADDRESS", "donation-contract"), "address holding the contract funds")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "timeout for the whole command")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log SQL statements")

	rootCmd.AddCommand(initCmd, totalsCmd, donationsCmd, balanceCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withHost opens the store the API would open for the same settings and runs
// fn against a host for the configured contract.
func withHost(cmd *cobra.Command, fn func(ctx context.Context, h *host.Host) error) error {
	cfg := &infra.Config{
		DatabaseURL: strings.TrimSpace(databaseURL),
		DataDir:     strings.TrimSpace(dataDir),
		DBMaxConns:  2,
	}
	if cfg.DatabaseURL == "" && cfg.DataDir == "" {
		return errors.New("--database-url or --data-dir is required")
	}
	contract, err := domain.ParseAddress(contractAddress)
	if err != nil {
		return fmt.Errorf("--contract: %w", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := infra.NewLogger("development", level.String())

	kv, closeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(ctx, host.New(kv, contract, logger, nil))
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
