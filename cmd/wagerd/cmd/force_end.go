package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newForceEndCmd(rt *runtime) *cobra.Command {
	var operator string

	cmd := &cobra.Command{
		Use:   "force-end <wager-id>",
		Short: "Discard an unresolved wager on the ledger without a payout",
		Long: "Ends the remote session of a wager stuck in play or awaiting reconciliation. " +
			"The stake is not refunded. Requires the database the server uses.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wagerID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid wager id %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if !rt.cfg.Database.Enabled {
				rt.log.Warn().Msg("database disabled, only a wager known to this process can be found")
			}

			a, err := buildApp(ctx, rt.cfg, rt.log)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.settlement.Resume(ctx); err != nil {
				return fmt.Errorf("resume: %w", err)
			}
			result, err := a.settlement.ForceEndSession(ctx, wagerID, operator)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVar(&operator, "operator", "cli", "operator recorded in the audit log")
	return cmd
}
