package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wager-settlement/config"
	"wager-settlement/internal/adapter/http/middleware"
	"wager-settlement/internal/adapter/ledger/ledgertest"
	"wager-settlement/internal/adapter/storage/memory"
	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/game"
	"wager-settlement/internal/service"
	"wager-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVerify_GridRound(t *testing.T) {
	t.Setenv("WSC_LOG_LEVEL", "error")
	seed, err := game.NewServerSeed()
	require.NoError(t, err)

	out, err := execute(t, "verify",
		"--variant", "concealment_grid",
		"--server-seed", seed,
		"--hash", game.HashServerSeed(seed),
		"--client-seed", "client",
		"--nonce", "7",
		"--total-cells", "25",
		"--concealed", "3",
	)
	require.NoError(t, err)

	var audit game.Audit
	require.NoError(t, json.Unmarshal([]byte(out), &audit))
	assert.True(t, audit.CommitmentValid)

	want, err := game.VerifyGrid(seed, "client", 7, 25, 3)
	require.NoError(t, err)
	assert.Equal(t, want, audit.Concealed)
}

func TestVerify_CommitmentMismatch(t *testing.T) {
	t.Setenv("WSC_LOG_LEVEL", "error")

	_, err := execute(t, "verify",
		"--variant", "WHEEL",
		"--server-seed", "revealed",
		"--hash", game.HashServerSeed("something else"),
		"--segments", "10",
		"--risk", "low",
	)
	assert.ErrorIs(t, err, errCommitmentMismatch)
}

func TestVerify_RequiresServerSeed(t *testing.T) {
	_, err := execute(t, "verify")
	assert.Error(t, err)
}

func TestOperatorToken(t *testing.T) {
	t.Setenv("WSC_JWT_SECRET", "operator-secret")

	out, err := execute(t, "operator-token", "ops-1")
	require.NoError(t, err)

	claims, err := service.NewJWTTokenService("operator-secret", time.Hour, "wager-settlement").
		Validate(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops-1", claims.Subject)
	assert.Equal(t, middleware.RoleOperator, claims.Role)
}

func TestOperatorToken_RequiresSecret(t *testing.T) {
	t.Setenv("WSC_JWT_SECRET", "")

	_, err := execute(t, "operator-token", "ops-1")
	assert.Error(t, err)
}

func TestLedgerSim_RequiresCredentials(t *testing.T) {
	t.Setenv("WSC_LEDGER_ACCOUNT_ID", "")

	_, err := execute(t, "ledger-sim")
	assert.Error(t, err)
}

func testConfig(t *testing.T, ledgerURL string) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Ledger.BaseURL = ledgerURL
	cfg.Ledger.AccountID = "acct-cli"
	cfg.Ledger.AccessKey = "ak-cli"
	cfg.Ledger.SecretKey = "cli-secret"
	cfg.Ledger.ScaleFactor = 100
	cfg.Retry.BaseDelay = time.Millisecond
	cfg.Retry.MaxDelay = 5 * time.Millisecond
	return cfg
}

func TestBuildApp_InMemory(t *testing.T) {
	sim := ledgertest.New(ledgertest.Options{
		AccountID: "acct-cli",
		AccessKey: "ak-cli",
		Secret:    "cli-secret",
		Balance:   5_000,
	})
	ts := httptest.NewServer(sim.Handler())
	defer ts.Close()

	cfg := testConfig(t, ts.URL)
	a, err := buildApp(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.tokens)
	require.Len(t, a.healthCheckers, 1)
	assert.Equal(t, "ledger", a.healthCheckers[0].Name())
	assert.NoError(t, a.healthCheckers[0].Ping(context.Background()))
	assert.IsType(t, &memory.RateLimitStore{}, a.rateLimits)

	acct, err := a.settlement.RefreshBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.FixedPoint(5_000), acct.Balance)
	assert.Equal(t, domain.ModeLive, a.settlement.GetMode())

	// Nothing to force-end in a fresh in-memory store.
	_, err = a.settlement.ForceEndSession(context.Background(), uuid.New(), "cli")
	assert.Equal(t, "WAGER_005", apperror.CodeOf(err))
}

func TestBuildApp_RejectsUnknownAuthoritativeVariant(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.Settlement.RemoteAuthoritative = []string{"DICE"}

	_, err := buildApp(context.Background(), cfg, zerolog.Nop())
	assert.ErrorContains(t, err, "DICE")
}

func TestBuildApp_DatabaseNeedsSeedKey(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	cfg.AES.Key = ""

	_, err := seedCipher(cfg, zerolog.Nop())
	require.NoError(t, err)

	cfg.Database.Enabled = true
	_, err = seedCipher(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestIdentitySecretFallsBackToSigningSecret(t *testing.T) {
	cfg := testConfig(t, "")
	assert.Equal(t, "cli-secret", identitySecret(cfg))

	cfg.Ledger.IdentitySecret = "identity"
	assert.Equal(t, "identity", identitySecret(cfg))
}
