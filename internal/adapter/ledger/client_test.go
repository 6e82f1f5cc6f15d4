package ledger_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wager-settlement/internal/adapter/ledger"
	"wager-settlement/internal/adapter/ledger/ledgertest"
	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/ports"
	"wager-settlement/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccount   = "acct-1"
	testAccessKey = "ak_test"
	testSecret    = "ledger-identity-secret"
)

var (
	playerLedger = domain.HandleKey{Identity: domain.IdentityPlayer, Purpose: domain.PurposeLedger}
	anonLedger   = domain.HandleKey{Identity: domain.IdentityAnonymous, Purpose: domain.PurposeLedger}
)

func newDialer(t *testing.T, baseURL string) *ledger.Dialer {
	t.Helper()
	signer, err := service.NewDelegationSigner(testSecret, time.Minute)
	require.NoError(t, err)
	cfg := ledger.Config{
		BaseURL:       baseURL,
		AccountID:     testAccount,
		AccessKey:     testAccessKey,
		SigningSecret: testSecret,
	}
	return ledger.NewDialer(cfg, nil, signer, service.NewHMACSignatureService(), zerolog.New(io.Discard))
}

func startFake(t *testing.T, balance domain.FixedPoint) (*ledgertest.Server, *ledger.Dialer) {
	t.Helper()
	fake := ledgertest.New(ledgertest.Options{
		AccountID: testAccount,
		AccessKey: testAccessKey,
		Secret:    testSecret,
		Balance:   balance,
	})
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)
	return fake, newDialer(t, srv.URL)
}

func dial(t *testing.T, d *ledger.Dialer, key domain.HandleKey) ports.LedgerClient {
	t.Helper()
	client, _, err := d.Dial(context.Background(), key)
	require.NoError(t, err)
	return client
}

func remoteKind(t *testing.T, err error) *ports.RemoteError {
	t.Helper()
	var re *ports.RemoteError
	require.ErrorAs(t, err, &re)
	return re
}

func TestDial_PlayerHandshake(t *testing.T) {
	fake, d := startFake(t, 1000)

	client, capability, err := d.Dial(context.Background(), playerLedger)
	require.NoError(t, err)
	assert.Equal(t, domain.CapabilityAuthenticated, capability)
	assert.Equal(t, 1, fake.Calls(ledgertest.OpHandshake))

	bal, err := client.GetBalance(context.Background(), testAccount)
	require.NoError(t, err)
	assert.Equal(t, domain.FixedPoint(1000), bal)
}

func TestDial_AnonymousIsReadOnly(t *testing.T) {
	fake, d := startFake(t, 500)

	client, capability, err := d.Dial(context.Background(), anonLedger)
	require.NoError(t, err)
	assert.Equal(t, domain.CapabilityReadOnly, capability)
	assert.Zero(t, fake.Calls(ledgertest.OpHandshake))

	bal, err := client.GetBalance(context.Background(), testAccount)
	require.NoError(t, err)
	assert.Equal(t, domain.FixedPoint(500), bal)

	_, err = client.Debit(context.Background(), ports.DebitRequest{WagerID: uuid.New(), AccountID: testAccount, Amount: 10})
	re := remoteKind(t, err)
	assert.Equal(t, ports.RemoteRejected, re.Kind)
	assert.Equal(t, ledger.CodeReadOnly, re.Code)
}

func TestDial_RejectedHandshakeIsCredentialError(t *testing.T) {
	fake, d := startFake(t, 0)
	fake.RejectHandshakes(true)

	_, _, err := d.Dial(context.Background(), playerLedger)
	re := remoteKind(t, err)
	assert.Equal(t, ports.RemoteCredential, re.Kind)
	assert.Equal(t, ledger.CodeCertificateMalformed, re.Code)
}

func TestDial_WrongSecretFailsSignature(t *testing.T) {
	fake := ledgertest.New(ledgertest.Options{AccountID: testAccount, AccessKey: testAccessKey, Secret: "other-secret"})
	srv := httptest.NewServer(fake.Handler())
	defer srv.Close()

	_, _, err := newDialer(t, srv.URL).Dial(context.Background(), playerLedger)
	re := remoteKind(t, err)
	assert.Equal(t, ports.RemoteCredential, re.Kind)
	assert.Equal(t, ledger.CodeSignatureInvalid, re.Code)
}

func TestClient_DebitCreditRoundTrip(t *testing.T) {
	fake, d := startFake(t, 1000)
	client := dial(t, d, playerLedger)
	ctx := context.Background()
	wagerID := uuid.New()

	debit := ports.DebitRequest{
		WagerID:   wagerID,
		AccountID: testAccount,
		Amount:    100,
		Variant:   domain.GameVariantConcealmentGrid,
		Params:    domain.GameParams{TotalCells: 5, ConcealedCount: 1},
	}
	res, err := client.Debit(ctx, debit)
	require.NoError(t, err)
	assert.Equal(t, domain.LegStatusConfirmed, res.Status)
	assert.NotEmpty(t, res.RemoteReference)

	// Replaying the debit returns the first result without moving funds again.
	again, err := client.Debit(ctx, debit)
	require.NoError(t, err)
	assert.Equal(t, res.RemoteReference, again.RemoteReference)
	assert.Equal(t, 1, fake.Applied(domain.LegKindDebit, wagerID))
	assert.Equal(t, domain.FixedPoint(900), fake.Balance(testAccount))

	sess, err := client.GetActiveSession(ctx, testAccount)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.True(t, sess.Matches(wagerID))
	assert.True(t, sess.Open)

	credit, err := client.Credit(ctx, ports.CreditRequest{WagerID: wagerID, AccountID: testAccount, Outcome: domain.TerminalCashedOut, Payout: 120})
	require.NoError(t, err)
	assert.Equal(t, domain.FixedPoint(120), credit.Amount)
	assert.Equal(t, domain.FixedPoint(1020), fake.Balance(testAccount))

	sess, err = client.GetActiveSession(ctx, testAccount)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestClient_DebitInsufficientFunds(t *testing.T) {
	_, d := startFake(t, 50)
	client := dial(t, d, playerLedger)

	_, err := client.Debit(context.Background(), ports.DebitRequest{WagerID: uuid.New(), AccountID: testAccount, Amount: 100})
	re := remoteKind(t, err)
	assert.Equal(t, ports.RemoteRejected, re.Kind)
	assert.Equal(t, ledger.CodeInsufficientFunds, re.Code)
}

func TestClient_ActionPlaysServerRound(t *testing.T) {
	_, d := startFake(t, 1000)
	client := dial(t, d, playerLedger)
	ctx := context.Background()
	wagerID := uuid.New()

	_, err := client.Debit(ctx, ports.DebitRequest{
		WagerID:   wagerID,
		AccountID: testAccount,
		Amount:    100,
		Variant:   domain.GameVariantWheel,
		Params:    domain.GameParams{SegmentCount: 10, Risk: domain.RiskLow},
	})
	require.NoError(t, err)

	sess, err := client.ApplyAction(ctx, wagerID, domain.PlayerAction{Kind: domain.PlayerActionSpin})
	require.NoError(t, err)
	assert.NotEqual(t, domain.TerminalNone, sess.Terminal)
	assert.GreaterOrEqual(t, sess.Position, 0)
	assert.Less(t, sess.Position, 10)

	_, err = client.ApplyAction(ctx, uuid.New(), domain.PlayerAction{Kind: domain.PlayerActionSpin})
	assert.Equal(t, ports.RemoteNotFound, remoteKind(t, err).Kind)
}

func TestClient_ExpiredSessionIsCredentialError(t *testing.T) {
	fake, d := startFake(t, 1000)
	client := dial(t, d, playerLedger)
	fake.ExpireSessions()

	_, err := client.Debit(context.Background(), ports.DebitRequest{WagerID: uuid.New(), AccountID: testAccount, Amount: 10})
	re := remoteKind(t, err)
	assert.Equal(t, ports.RemoteCredential, re.Kind)
	assert.Equal(t, ledger.CodeSessionExpired, re.Code)
}

func TestClient_ForceEnd(t *testing.T) {
	fake, d := startFake(t, 1000)
	client := dial(t, d, playerLedger)
	ctx := context.Background()
	wagerID := uuid.New()

	_, err := client.Debit(ctx, ports.DebitRequest{WagerID: wagerID, AccountID: testAccount, Amount: 100})
	require.NoError(t, err)

	ref, err := client.ForceEndSession(ctx, wagerID)
	require.NoError(t, err)
	assert.NotEmpty(t, ref)
	assert.False(t, fake.Session(wagerID).Open)
	assert.Equal(t, domain.FixedPoint(900), fake.Balance(testAccount))

	_, err = client.ForceEndSession(ctx, wagerID)
	assert.Equal(t, ports.RemoteNotFound, remoteKind(t, err).Kind)
}

func TestClient_InjectedFaults(t *testing.T) {
	fake, d := startFake(t, 1000)
	client := dial(t, d, playerLedger)
	ctx := context.Background()
	wagerID := uuid.New()
	req := ports.DebitRequest{WagerID: wagerID, AccountID: testAccount, Amount: 100}

	fake.Inject(ledgertest.OpDebit, ledgertest.FailBefore, ledgertest.DropAfter)

	_, err := client.Debit(ctx, req)
	assert.Equal(t, ports.RemoteTransient, remoteKind(t, err).Kind)
	assert.Zero(t, fake.Applied(domain.LegKindDebit, wagerID))

	_, err = client.Debit(ctx, req)
	assert.Equal(t, ports.RemoteTransient, remoteKind(t, err).Kind)
	assert.Equal(t, 1, fake.Applied(domain.LegKindDebit, wagerID))

	_, err = client.Debit(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.Applied(domain.LegKindDebit, wagerID))
	assert.Equal(t, 3, fake.Calls(ledgertest.OpDebit))
}

func TestClient_ClassifiesStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ports.RemoteErrorKind
		wantCode string
	}{
		{"server error", http.StatusInternalServerError, `{"error_code":"INTERNAL","message":"boom"}`, ports.RemoteTransient, "INTERNAL"},
		{"bad gateway non-json", http.StatusBadGateway, `<html>bad gateway</html>`, ports.RemoteTransient, ""},
		{"throttled", http.StatusTooManyRequests, `{"error_code":"RATE_LIMITED"}`, ports.RemoteTransient, "RATE_LIMITED"},
		{"expired delegation", http.StatusUnauthorized, `{"error_code":"DELEGATION_EXPIRED"}`, ports.RemoteCredential, ledger.CodeDelegationExpired},
		{"bad signature", http.StatusForbidden, `{"error_code":"SIGNATURE_INVALID"}`, ports.RemoteCredential, ledger.CodeSignatureInvalid},
		{"unauthorized without credential code", http.StatusUnauthorized, `{"error_code":"ACCOUNT_LOCKED"}`, ports.RemoteRejected, "ACCOUNT_LOCKED"},
		{"not found", http.StatusNotFound, `{"error_code":"SESSION_NOT_FOUND"}`, ports.RemoteNotFound, ledger.CodeSessionNotFound},
		{"unprocessable", http.StatusUnprocessableEntity, `{"error_code":"INSUFFICIENT_FUNDS"}`, ports.RemoteRejected, ledger.CodeInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := dial(t, newDialer(t, srv.URL), anonLedger)
			_, err := client.GetBalance(context.Background(), testAccount)

			re := remoteKind(t, err)
			assert.Equal(t, tt.wantKind, re.Kind)
			assert.Equal(t, tt.wantCode, re.Code)
			assert.Equal(t, "balance", re.Op)
		})
	}
}

func TestClient_UndecodableSuccessIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":"not-a-balance"}`))
	}))
	defer srv.Close()

	client := dial(t, newDialer(t, srv.URL), anonLedger)
	_, err := client.GetBalance(context.Background(), testAccount)
	assert.Equal(t, ports.RemoteUnknown, remoteKind(t, err).Kind)
}

func TestClient_TransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := dial(t, newDialer(t, url), anonLedger)
	_, err := client.GetBalance(context.Background(), testAccount)
	assert.Equal(t, ports.RemoteTransient, remoteKind(t, err).Kind)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.GetBalance(ctx, testAccount)
	assert.Equal(t, ports.RemoteUnknown, remoteKind(t, err).Kind)
}

func TestClient_NullSessionDecodesToNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ledger.ActiveSessionPath(testAccount), r.URL.Path)
		assert.Equal(t, testAccessKey, r.Header.Get(ledger.HeaderAccessKey))
		assert.Empty(t, r.Header.Get(ledger.HeaderSignature))
		_, _ = w.Write([]byte(`{"data":null}`))
	}))
	defer srv.Close()

	client := dial(t, newDialer(t, srv.URL), anonLedger)
	sess, err := client.GetActiveSession(context.Background(), testAccount)
	require.NoError(t, err)
	assert.Nil(t, sess)
}
