package cmd

import (
	"encoding/json"
	"errors"
	"strings"

	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/game"

	"github.com/spf13/cobra"
)

var errCommitmentMismatch = errors.New("server seed does not match the committed hash")

func newVerifyCmd() *cobra.Command {
	var (
		params domain.GameParams
		r      game.Round
		risk   string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Recompute a resolved round from its revealed seeds",
		Example: "  wagerd verify --variant CONCEALMENT_GRID --server-seed <seed> --hash <hash> \\\n" +
			"    --client-seed <seed> --nonce 7 --total-cells 25 --concealed 3",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r.Variant = domain.GameVariant(strings.ToUpper(string(r.Variant)))
			params.Risk = domain.RiskLevel(strings.ToUpper(risk))
			r.Params = params

			audit, err := game.AuditRound(r)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(audit); err != nil {
				return err
			}
			if r.ServerSeedHash != "" && !audit.CommitmentValid {
				return errCommitmentMismatch
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar((*string)(&r.Variant), "variant", string(domain.GameVariantConcealmentGrid), "CONCEALMENT_GRID or WHEEL")
	f.StringVar(&r.ServerSeed, "server-seed", "", "revealed server seed")
	f.StringVar(&r.ServerSeedHash, "hash", "", "server seed hash committed before play")
	f.StringVar(&r.ClientSeed, "client-seed", "", "client seed")
	f.Uint64Var(&r.Nonce, "nonce", 0, "round nonce")
	f.IntVar(&params.TotalCells, "total-cells", 25, "grid size")
	f.IntVar(&params.ConcealedCount, "concealed", 3, "concealed cells")
	f.IntVar(&params.SegmentCount, "segments", 10, "wheel segments")
	f.StringVar(&risk, "risk", string(domain.RiskMedium), "wheel risk: LOW, MEDIUM or HIGH")
	_ = cmd.MarkFlagRequired("server-seed")

	return cmd
}

