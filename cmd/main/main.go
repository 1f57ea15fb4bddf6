package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"order-intake/internal/catalog"
	"order-intake/internal/config"
	"order-intake/internal/match"
	"order-intake/internal/order/handler"
	"order-intake/internal/order/model"
	"order-intake/internal/order/service"
	serverhttp "order-intake/server/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// логгера ещё нет
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.SetupLogger(cfg)

	start := time.Now()
	idx, err := catalog.Load(cfg.CatalogPath, cfg.CatalogHeaderRow)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("catalog load")
	}
	logger.Info().
		Str("path", cfg.CatalogPath).
		Int("entries", idx.Len()).
		Int("skipped", idx.Skipped()).
		Dur("elapsed", time.Since(start)).
		Msg("catalog loaded")

	var pending []model.PendingShipment
	if cfg.PendingShipmentsPath != "" {
		pending, err = service.LoadPendingShipments(cfg.PendingShipmentsPath, 1)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.PendingShipmentsPath).Msg("pending shipments unavailable, consolidation disabled")
			pending = nil
		} else {
			logger.Info().Int("shipments", len(pending)).Msg("pending shipments loaded")
		}
	}

	app := &handler.App{
		Catalog: catalog.NewStore(idx),
		Intake: &service.Intake{
			Validator:              service.NewValidator(match.New(match.WithThreshold(cfg.MatchThreshold))),
			Pending:                pending,
			ConsolidationThreshold: cfg.ConsolidationThreshold,
		},
		MatchThreshold:   cfg.MatchThreshold,
		BatchWorkers:     cfg.BatchWorkers,
		CatalogPath:      cfg.CatalogPath,
		CatalogHeaderRow: cfg.CatalogHeaderRow,
	}

	r := serverhttp.NewRouter(cfg, logger, app)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
