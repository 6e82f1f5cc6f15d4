package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	httpHandler "wager-settlement/internal/adapter/http/handler"
	"wager-settlement/internal/adapter/http/middleware"
	"wager-settlement/internal/adapter/ledger"
	"wager-settlement/internal/adapter/ledger/ledgertest"
	"wager-settlement/internal/adapter/storage/memory"
	redisStorage "wager-settlement/internal/adapter/storage/redis"
	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/game"
	"wager-settlement/internal/core/ports"
	"wager-settlement/internal/core/settlement"
	"wager-settlement/internal/service"
	"wager-settlement/pkg/logger"
	"wager-settlement/pkg/retry"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	itAccount = "acct-http"
	itKey     = "ak-http"
	itSecret  = "http-secret"
	itBalance = domain.FixedPoint(10_000)
)

// testApp builds the full stack: the real HTTP layer, middleware, handlers
// and services, Redis stores on miniredis, in-memory repositories and the
// fake ledger behind httptest.
type testApp struct {
	server *httptest.Server
	ledger *ledgertest.Server
	redis  *miniredis.Miniredis
	wagers *memory.WagerRepo
	audits *memory.AuditRepo
	seeds  *service.AESSeedCipher
	tokens *service.JWTTokenService
	closer []func()
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	sim := ledgertest.New(ledgertest.Options{
		AccountID: itAccount,
		AccessKey: itKey,
		Secret:    itSecret,
		Balance:   itBalance,
	})
	ledgerSrv := httptest.NewServer(sim.Handler())

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	log := logger.NewWithWriter("error", io.Discard)
	policy := retry.Policy{BaseDelay: time.Millisecond, Multiplier: 2, MaxAttempts: 3, MaxDelay: 10 * time.Millisecond}

	signer, err := service.NewDelegationSigner(itSecret, time.Minute)
	require.NoError(t, err)
	dialer := ledger.NewDialer(ledger.Config{
		BaseURL:       ledgerSrv.URL,
		AccountID:     itAccount,
		AccessKey:     itKey,
		SigningSecret: itSecret,
	}, nil, signer, service.NewHMACSignatureService(), log)

	wagers := memory.NewWagerRepo()
	audits := memory.NewAuditRepo()
	auditSvc := service.NewAuditService(audits, log)
	handles, err := service.NewHandleService(dialer, auditSvc, service.HandleConfig{Retry: policy}, log)
	require.NoError(t, err)

	normalizer, err := service.NewAmountNormalizer(100, domain.AmountBounds{Min: 1, Max: 100_000}, 1000)
	require.NoError(t, err)
	seeds, err := service.NewEphemeralSeedCipher()
	require.NoError(t, err)

	svc := service.NewSettlementService(
		handles,
		wagers,
		memory.NewTransactionRecordRepo(),
		redisStorage.NewLegCache(rdb),
		redisStorage.NewWagerLock(rdb),
		normalizer,
		seeds,
		auditSvc,
		service.SettlementConfig{
			AccountID:   itAccount,
			ScaleFactor: 100,
			Machine:     settlement.Config{MaxAttempts: 3},
			Backoff:     policy,
		},
		log,
	)
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", time.Hour, "test-issuer")

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SettlementSvc:  svc,
		Normalizer:     normalizer,
		TokenSvc:       tokenSvc,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb), ledger.NewHealthCheck(handles, itAccount)},
		AuditSvc:       auditSvc,
		Logger:         log,
	})
	server := httptest.NewServer(router)

	return &testApp{
		server: server,
		ledger: sim,
		redis:  mr,
		wagers: wagers,
		audits: audits,
		seeds:  seeds,
		tokens: tokenSvc,
		closer: []func(){server.Close, ledgerSrv.Close, func() { _ = rdb.Close() }, mr.Close},
	}
}

func (a *testApp) close() {
	for _, c := range a.closer {
		c()
	}
}

type envelope struct {
	Data      map[string]interface{} `json:"data"`
	ErrorCode string                 `json:"error_code"`
	Details   map[string]interface{} `json:"details"`
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, headers ...string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, a.server.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (a *testApp) placeGrid(t *testing.T) uuid.UUID {
	t.Helper()
	status, env := a.do(t, http.MethodPost, "/api/v1/wagers", map[string]interface{}{
		"stake":   "1",
		"variant": "CONCEALMENT_GRID",
		"params":  map[string]int{"total_cells": 25, "concealed_count": 3},
	})
	require.Equal(t, http.StatusCreated, status, env.ErrorCode)
	id, err := uuid.Parse(env.Data["wager_id"].(string))
	require.NoError(t, err)
	return id
}

// safeCell replays the committed seeds to find a cell that is not concealed.
func (a *testApp) safeCell(t *testing.T, wagerID uuid.UUID) int {
	t.Helper()
	w, err := a.wagers.GetByID(context.Background(), wagerID)
	require.NoError(t, err)
	require.NotNil(t, w)
	serverSeed, err := a.seeds.Decrypt(w.Seeds.ServerSeedEncrypted)
	require.NoError(t, err)

	concealed, err := game.VerifyGrid(serverSeed, w.Seeds.ClientSeed, w.Seeds.Nonce, 25, 3)
	require.NoError(t, err)
	for i := 0; i < 25; i++ {
		if !slices.Contains(concealed, i) {
			return i
		}
	}
	t.Fatal("grid has no safe cell")
	return -1
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "LIVE", body["mode"])
	deps := body["dependencies"].(map[string]interface{})
	assert.Contains(t, deps, "redis")
	assert.Contains(t, deps, "ledger")
}

func TestIntegration_GridRoundOverHTTP(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	wagerID := app.placeGrid(t)
	assert.Equal(t, itBalance-100, app.ledger.Balance(itAccount))

	idx := app.safeCell(t, wagerID)
	status, env := app.do(t, http.MethodPost, "/api/v1/wagers/"+wagerID.String()+"/actions",
		map[string]interface{}{"kind": "REVEAL", "index": idx})
	require.Equal(t, http.StatusOK, status, env.ErrorCode)
	assert.Equal(t, "NONE", env.Data["terminal_state"])

	status, env = app.do(t, http.MethodPost, "/api/v1/wagers/"+wagerID.String()+"/cashout", nil)
	require.Equal(t, http.StatusOK, status, env.ErrorCode)
	assert.Equal(t, "RESOLVED", env.Data["status"])
	assert.NotEmpty(t, env.Data["server_seed"])

	payout := domain.FixedPoint(env.Data["payout"].(float64))
	assert.Positive(t, int64(payout))
	assert.Equal(t, itBalance-100+payout, app.ledger.Balance(itAccount))
	assert.Equal(t, 1, app.ledger.Applied(domain.LegKindDebit, wagerID))
	assert.Equal(t, 1, app.ledger.Applied(domain.LegKindCredit, wagerID))

	status, env = app.do(t, http.MethodGet, "/api/v1/balance", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(itBalance-100+payout), env.Data["balance"])

	// The account is free for the next wager.
	app.placeGrid(t)
}

func TestIntegration_ReplayedPlacementDebitsOnce(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	id := uuid.NewString()
	body := map[string]interface{}{
		"wager_id": id,
		"stake":    "2.5",
		"variant":  "CONCEALMENT_GRID",
		"params":   map[string]int{"total_cells": 25, "concealed_count": 3},
	}
	for i := 0; i < 3; i++ {
		status, env := app.do(t, http.MethodPost, "/api/v1/wagers", body)
		require.Equal(t, http.StatusCreated, status, env.ErrorCode)
		assert.Equal(t, id, env.Data["wager_id"])
	}
	assert.Equal(t, itBalance-250, app.ledger.Balance(itAccount))
}

// TestIntegration_ConcurrentPlacements fires many placements at once. Only one
// wager may hold the account, so exactly one stake leaves the ledger.
func TestIntegration_ConcurrentPlacements(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	const concurrency = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		statuses = make(map[int]int)
	)
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, _ := json.Marshal(map[string]interface{}{
				"stake":   "1",
				"variant": "CONCEALMENT_GRID",
				"params":  map[string]int{"total_cells": 25, "concealed_count": 3},
			})
			resp, err := http.Post(app.server.URL+"/api/v1/wagers", "application/json", bytes.NewReader(body))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			_, _ = io.ReadAll(resp.Body)

			mu.Lock()
			statuses[resp.StatusCode]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, statuses[http.StatusCreated], fmt.Sprintf("statuses: %v", statuses))
	assert.Equal(t, concurrency-1, statuses[http.StatusConflict], fmt.Sprintf("statuses: %v", statuses))
	assert.Equal(t, itBalance-100, app.ledger.Balance(itAccount))
}

func TestIntegration_AdminForceEnd(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	wagerID := app.placeGrid(t)
	path := "/api/v1/admin/wagers/" + wagerID.String() + "/force-end"

	status, _ := app.do(t, http.MethodPost, path, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	playerToken, _, err := app.tokens.Generate("someone", "player")
	require.NoError(t, err)
	status, _ = app.do(t, http.MethodPost, path, nil, "Authorization", "Bearer "+playerToken)
	assert.Equal(t, http.StatusUnauthorized, status)

	token, _, err := app.tokens.Generate("ops-1", middleware.RoleOperator)
	require.NoError(t, err)
	status, env := app.do(t, http.MethodPost, path, map[string]string{"reason": "stuck"}, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, status, env.ErrorCode)
	assert.Equal(t, "ABORTED", env.Data["status"])

	// No refund on a forced end.
	assert.Equal(t, itBalance-100, app.ledger.Balance(itAccount))

	assert.Eventually(t, func() bool {
		return slices.Contains(app.audits.Actions(), domain.AuditActionOperatorRequest) &&
			slices.Contains(app.audits.Actions(), domain.AuditActionSessionForceEnded)
	}, time.Second, 10*time.Millisecond)

	status, env = app.do(t, http.MethodPost, path, nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "WAGER_006", env.ErrorCode)
}

func TestIntegration_ReconnectRateLimited(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	for i := 0; i < 10; i++ {
		status, env := app.do(t, http.MethodPost, "/api/v1/mode/reconnect", nil)
		require.Equal(t, http.StatusOK, status, env.ErrorCode)
		assert.Equal(t, "LIVE", env.Data["mode"])
	}

	status, env := app.do(t, http.MethodPost, "/api/v1/mode/reconnect", nil)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_001", env.ErrorCode)
}

func TestIntegration_DemoModeRejectsWagers(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.ledger.RejectHandshakes(true)

	// Reads still work through the anonymous handle.
	status, env := app.do(t, http.MethodPost, "/api/v1/balance/refresh", nil)
	require.Equal(t, http.StatusOK, status, env.ErrorCode)
	assert.Equal(t, float64(itBalance), env.Data["balance"])
	assert.Equal(t, "100", env.Data["display"])

	status, env = app.do(t, http.MethodGet, "/api/v1/mode", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "DEMO", env.Data["mode"])

	status, env = app.do(t, http.MethodPost, "/api/v1/wagers", map[string]interface{}{
		"stake":   "1",
		"variant": "CONCEALMENT_GRID",
		"params":  map[string]int{"total_cells": 25, "concealed_count": 3},
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "LEDGER_003", env.ErrorCode)
	assert.Zero(t, app.ledger.Calls(ledgertest.OpDebit))

	status, env = app.do(t, http.MethodPost, "/api/v1/mode/reconnect", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "DEMO", env.Details["mode"])

	app.ledger.RejectHandshakes(false)
	status, env = app.do(t, http.MethodPost, "/api/v1/mode/reconnect", nil)
	require.Equal(t, http.StatusOK, status, env.ErrorCode)
	assert.Equal(t, "LIVE", env.Data["mode"])
}
