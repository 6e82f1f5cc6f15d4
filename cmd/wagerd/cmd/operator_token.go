package cmd

import (
	"errors"
	"time"

	"wager-settlement/internal/adapter/http/middleware"
	"wager-settlement/internal/service"

	"github.com/spf13/cobra"
)

func newOperatorTokenCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "operator-token <operator>",
		Short: "Mint a JWT for the admin API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jwtCfg := rt.cfg.JWT
			if jwtCfg.Secret == "" {
				return errors.New("jwt.secret is required")
			}

			tokens := service.NewJWTTokenService(jwtCfg.Secret, jwtCfg.Expiry, jwtCfg.Issuer)
			token, expiresAt, err := tokens.Generate(args[0], middleware.RoleOperator)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", token)
			cmd.PrintErrf("expires at %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
}
