package store

import (
	"context"

	"github.com/rs/zerolog"

	"donationledger/internal/domain"
	"donationledger/internal/infra"
)

// Open picks the store named by cfg: Postgres when DATABASE_URL is set, a
// snapshot file under DATA_DIR next, memory otherwise. The returned close
// function releases the pool.
func Open(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (domain.TxStore, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
	case cfg.DataDir != "":
		s, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("data_dir", cfg.DataDir).Msg("using the file store")
		return s, func() {}, nil
	default:
		logger.Warn().Msg("DATABASE_URL and DATA_DIR are empty, using the in-memory store")
		return NewMemoryStore(), func() {}, nil
	}
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return NewPostgresStore(infra.NewSQLRunner(pool, logger)), pool.Close, nil
}
