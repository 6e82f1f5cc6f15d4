package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"wager-settlement/internal/adapter/ledger/ledgertest"
	"wager-settlement/internal/core/domain"

	"github.com/spf13/cobra"
)

func newLedgerSimCmd(rt *runtime) *cobra.Command {
	var (
		addr    string
		balance int64
	)

	cmd := &cobra.Command{
		Use:   "ledger-sim",
		Short: "Run an in-memory ledger for local development",
		Long: "Serves the ledger and game authority protocol from memory. The simulator " +
			"trusts ledger.account_id, ledger.access_key and ledger.secret_key from the " +
			"same config the client uses.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log := rt.cfg, rt.log
			if cfg.Ledger.AccountID == "" || cfg.Ledger.SecretKey == "" {
				return errors.New("ledger.account_id and ledger.secret_key are required")
			}
			if cfg.Ledger.IdentitySecret != "" && cfg.Ledger.IdentitySecret != cfg.Ledger.SecretKey {
				return errors.New("ledger-sim verifies delegations with ledger.secret_key; leave ledger.identity_secret empty")
			}

			sim := ledgertest.New(ledgertest.Options{
				AccountID: cfg.Ledger.AccountID,
				AccessKey: cfg.Ledger.AccessKey,
				Secret:    cfg.Ledger.SecretKey,
				Balance:   domain.FixedPoint(balance),
			})
			srv := &http.Server{
				Addr:              addr,
				Handler:           sim.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().
					Str("addr", addr).
					Str("account_id", cfg.Ledger.AccountID).
					Int64("balance", balance).
					Msg("ledger simulator listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				return fmt.Errorf("ledger simulator: %w", err)
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9090", "listen address")
	cmd.Flags().Int64Var(&balance, "balance", 1_000_000_000, "starting balance in ledger units")
	return cmd
}
