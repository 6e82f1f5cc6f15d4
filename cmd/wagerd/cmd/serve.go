package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "wager-settlement/internal/adapter/http/handler"

	"github.com/spf13/cobra"
)

func newServeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the settlement client and its HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), rt)
		},
	}
}

func serve(ctx context.Context, rt *runtime) error {
	cfg, log := rt.cfg, rt.log
	if ctx == nil {
		ctx = context.Background()
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("ledger", cfg.Ledger.BaseURL).
		Msg("Starting wager settlement client")

	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	// An unresolved wager from a previous run must be picked up before new ones.
	if err := a.settlement.Resume(ctx); err != nil {
		return fmt.Errorf("resume: %w", err)
	}
	if _, err := a.settlement.RefreshBalance(ctx); err != nil {
		log.Warn().Err(err).Msg("initial balance refresh failed")
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SettlementSvc:  a.settlement,
		Normalizer:     a.normalizer,
		TokenSvc:       a.tokens,
		RateLimitStore: a.rateLimits,
		HealthCheckers: a.healthCheckers,
		AuditSvc:       a.audit,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
	log.Info().Msg("Shutting down server...")

	// In-flight settlement calls finish; Shutdown waits for their handlers.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}
