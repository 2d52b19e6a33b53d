package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"donationledger/internal/contract"
	"donationledger/internal/domain"
	"donationledger/internal/host"
	"donationledger/internal/http/handlers"
	httpapi "donationledger/internal/http/httpapi"
	"donationledger/internal/infra"
	"donationledger/internal/middleware"
	"donationledger/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx := context.Background()
	kv, closeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := infra.NewMetrics(reg, cfg.MetricsDenoms...)

	ledgerHost := host.New(kv, cfg.ContractAddress, logger, metrics)

	if cfg.AutoInstantiate() {
		msg := contract.InstantiateMsg{Owner: cfg.OwnerAddress, FeeCollector: cfg.FeeCollectorAddress}
		_, err := ledgerHost.Instantiate(ctx, cfg.OwnerAddress, msg)
		switch {
		case errors.Is(err, domain.ErrAlreadyInitialized):
			logger.Info().Msg("contract already instantiated")
		case err != nil:
			logger.Fatal().Err(err).Msg("failed to instantiate contract")
		default:
			logger.Info().
				Str("owner", cfg.OwnerAddress.String()).
				Str("fee_collector", cfg.FeeCollectorAddress.String()).
				Msg("contract instantiated")
		}
	}

	trusted, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		logger.Fatal().Err(err).Msg("TRUSTED_PROXIES")
	}

	app := handlers.NewApp(ledgerHost, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:          cfg.JWTSecret,
		JWTIssuer:          cfg.JWTIssuer,
		RateLimitPerMinute: cfg.RateLimitPerMin,
		TrustedProxies:     trusted,
		Gatherer:           reg,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("contract", cfg.ContractAddress.String()).Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
