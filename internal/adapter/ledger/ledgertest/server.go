// Package ledgertest is an in-memory ledger and game authority speaking the
// wire protocol of package ledger. Debits and credits are idempotent on the
// wager id. Faults can be injected per operation.
package ledgertest

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"wager-settlement/internal/adapter/ledger"
	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/game"
	"wager-settlement/internal/service"
	"wager-settlement/pkg/apperror"
	"wager-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Operation names, as used by Inject and Calls.
const (
	OpHandshake     = "handshake"
	OpBalance       = "balance"
	OpDebit         = "debit"
	OpActiveSession = "active-session"
	OpAction        = "action"
	OpCredit        = "credit"
	OpForceEnd      = "force-end"
)

// Fault is an injected failure for one call.
type Fault int

const (
	// FailBefore answers 503 without applying the call.
	FailBefore Fault = iota + 1
	// DropAfter applies the call, then answers 503 as if the response was lost.
	DropAfter
)

const ctxSigned = "signed"

// Options configures the fake ledger.
type Options struct {
	AccountID string
	AccessKey string
	// Secret verifies delegation tokens and request signatures.
	Secret     string
	Balance    domain.FixedPoint
	SessionTTL time.Duration
	// RNG decides the rounds the fake plays as game authority. Defaults to crypto/rand.
	RNG game.RNG
	Now func() time.Time
}

type grant struct {
	accountID string
	purpose   domain.Purpose
	expiresAt time.Time
}

type session struct {
	wager  ledger.DebitBody
	open   bool
	grid   *game.GridSession
	wheel  *game.WheelResult
	played bool // the fake decided the round's outcome
}

// Server is the fake ledger.
type Server struct {
	opts   Options
	sigs   *service.HMACSignatureService
	engine *gin.Engine

	mu               sync.Mutex
	balances         map[string]domain.FixedPoint
	sessions         map[uuid.UUID]*session
	open             map[string]uuid.UUID // account -> wager holding it
	debits           map[uuid.UUID]domain.LegResult
	credits          map[uuid.UUID]domain.LegResult
	applied          map[string]int
	grants           map[string]grant
	nonces           map[string]bool
	faults           map[string][]Fault
	calls            map[string]int
	rejectHandshakes bool
}

// New creates a fake ledger holding opts.Balance for opts.AccountID.
func New(opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 10 * time.Minute
	}
	if opts.RNG == nil {
		opts.RNG = game.CryptoRNG{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		opts:     opts,
		sigs:     service.NewHMACSignatureService(),
		balances: map[string]domain.FixedPoint{opts.AccountID: opts.Balance},
		sessions: make(map[uuid.UUID]*session),
		open:     make(map[string]uuid.UUID),
		debits:   make(map[uuid.UUID]domain.LegResult),
		credits:  make(map[uuid.UUID]domain.LegResult),
		applied:  make(map[string]int),
		grants:   make(map[string]grant),
		nonces:   make(map[string]bool),
		faults:   make(map[string][]Fault),
		calls:    make(map[string]int),
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.verifySignature())
	r.POST(ledger.PathHandshake, s.handshake)
	r.GET("/v1/accounts/:account/balance", s.balance)
	r.GET("/v1/accounts/:account/session", s.activeSession)
	r.POST(ledger.PathDebits, s.requireSession, s.debit)
	r.POST(ledger.PathCredits, s.requireSession, s.credit)
	r.POST("/v1/sessions/:wager/actions", s.requireSession, s.action)
	r.POST("/v1/sessions/:wager/force-end", s.requireSession, s.forceEnd)
	s.engine = r
	return s
}

// Handler returns the HTTP handler serving the ledger.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ==================== Control & inspection ====================

// Inject queues faults for the next calls of op, one per call.
func (s *Server) Inject(op string, faults ...Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = append(s.faults[op], faults...)
}

// ExpireSessions invalidates every issued session token.
func (s *Server) ExpireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants = make(map[string]grant)
}

// RejectHandshakes makes every handshake fail with a credential error.
func (s *Server) RejectHandshakes(reject bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectHandshakes = reject
}

func (s *Server) Balance(accountID string) domain.FixedPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[accountID]
}

func (s *Server) SetBalance(accountID string, balance domain.FixedPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[accountID] = balance
}

// Applied counts how many times a leg of the wager moved funds.
func (s *Server) Applied(kind domain.LegKind, wagerID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied[appliedKey(kind, wagerID)]
}

// Calls counts requests received for op, including failed ones.
func (s *Server) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Session returns the fake's view of a wager's session, or nil.
func (s *Server) Session(wagerID uuid.UUID) *domain.RemoteSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[wagerID]
	if !ok {
		return nil
	}
	return sess.view()
}

// ==================== Authentication ====================

// verifySignature checks the HMAC headers when present. Unsigned requests
// pass as anonymous.
func (s *Server) verifySignature() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(ledger.HeaderAccessKey) != s.opts.AccessKey {
			fail(c, http.StatusUnauthorized, ledger.CodeCertificateMalformed, "unknown access key")
			return
		}

		signature := c.GetHeader(ledger.HeaderSignature)
		if signature == "" {
			c.Set(ctxSigned, false)
			c.Next()
			return
		}

		timestamp, err := strconv.ParseInt(c.GetHeader(ledger.HeaderTimestamp), 10, 64)
		if err != nil || !service.TimestampFresh(timestamp, s.opts.Now()) {
			fail(c, http.StatusUnauthorized, ledger.CodeSignatureInvalid, "timestamp outside the allowed window")
			return
		}

		nonce := c.GetHeader(ledger.HeaderNonce)
		s.mu.Lock()
		seen := nonce == "" || s.nonces[nonce]
		s.nonces[nonce] = true
		s.mu.Unlock()
		if seen {
			fail(c, http.StatusUnauthorized, ledger.CodeSignatureInvalid, "nonce missing or reused")
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			fail(c, http.StatusBadRequest, ledger.CodeInvalidRequest, "cannot read request body")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		canonical := s.sigs.BuildCanonicalString(c.Request.Method, c.Request.URL.Path, timestamp, nonce, string(body))
		if !s.sigs.Verify(s.opts.Secret, canonical, signature) {
			fail(c, http.StatusUnauthorized, ledger.CodeSignatureInvalid, "signature mismatch")
			return
		}

		c.Set(ctxSigned, true)
		c.Next()
	}
}

// requireSession admits signed requests carrying a live session token.
func (s *Server) requireSession(c *gin.Context) {
	if !c.GetBool(ctxSigned) {
		fail(c, http.StatusForbidden, ledger.CodeReadOnly, "anonymous access is read-only")
		return
	}
	token := bearer(c)

	s.mu.Lock()
	g, ok := s.grants[token]
	s.mu.Unlock()
	if !ok || !s.opts.Now().Before(g.expiresAt) {
		fail(c, http.StatusUnauthorized, ledger.CodeSessionExpired, "session token expired")
		return
	}
	c.Next()
}

func (s *Server) handshake(c *gin.Context) {
	if s.takeFault(c, OpHandshake) {
		return
	}
	var req ledger.HandshakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ledger.CodeInvalidRequest, err.Error())
		return
	}
	if !c.GetBool(ctxSigned) {
		fail(c, http.StatusUnauthorized, ledger.CodeSignatureInvalid, "handshake must be signed")
		return
	}

	s.mu.Lock()
	reject := s.rejectHandshakes
	s.mu.Unlock()
	if reject {
		fail(c, http.StatusUnauthorized, ledger.CodeCertificateMalformed, "identity rejected")
		return
	}

	accountID, err := service.VerifyDelegation(s.opts.Secret, req.Purpose, bearer(c))
	if err != nil || accountID != req.AccountID {
		fail(c, http.StatusUnauthorized, ledger.CodeDelegationExpired, "delegation invalid or expired")
		return
	}

	token := uuid.NewString()
	expires := s.opts.Now().Add(s.opts.SessionTTL)
	s.mu.Lock()
	s.grants[token] = grant{accountID: accountID, purpose: req.Purpose, expiresAt: expires}
	s.mu.Unlock()

	response.OK(c, ledger.HandshakeResponse{
		SessionToken: token,
		ExpiresAt:    expires.Unix(),
		Capability:   domain.CapabilityAuthenticated,
	})
}

// ==================== Ledger operations ====================

func (s *Server) balance(c *gin.Context) {
	if s.takeFault(c, OpBalance) {
		return
	}
	account := c.Param("account")

	s.mu.Lock()
	bal, ok := s.balances[account]
	s.mu.Unlock()
	if !ok {
		fail(c, http.StatusNotFound, ledger.CodeInvalidRequest, "unknown account")
		return
	}
	response.OK(c, ledger.BalanceResponse{AccountID: account, Balance: bal})
}

func (s *Server) activeSession(c *gin.Context) {
	if s.takeFault(c, OpActiveSession) {
		return
	}

	s.mu.Lock()
	var view *domain.RemoteSession
	if id, ok := s.open[c.Param("account")]; ok {
		view = s.sessions[id].view()
	}
	s.mu.Unlock()
	response.OK(c, view)
}

func (s *Server) debit(c *gin.Context) {
	if s.takeFault(c, OpDebit) {
		return
	}
	var body ledger.DebitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, ledger.CodeInvalidRequest, err.Error())
		return
	}
	if body.Amount <= 0 {
		fail(c, http.StatusBadRequest, ledger.CodeInvalidRequest, "amount must be positive")
		return
	}

	s.mu.Lock()
	res, done := s.debits[body.WagerID]
	if !done {
		if holder, busy := s.open[body.AccountID]; busy && holder != body.WagerID {
			s.mu.Unlock()
			fail(c, http.StatusConflict, ledger.CodeSessionOpen, "account already has an open session")
			return
		}
		bal := s.balances[body.AccountID]
		if bal < body.Amount {
			s.mu.Unlock()
			fail(c, http.StatusUnprocessableEntity, ledger.CodeInsufficientFunds, "insufficient balance")
			return
		}

		s.balances[body.AccountID] = bal - body.Amount
		res = domain.LegResult{Status: domain.LegStatusConfirmed, Amount: body.Amount, RemoteReference: reference("dbt")}
		s.debits[body.WagerID] = res
		s.sessions[body.WagerID] = &session{wager: body, open: true}
		s.open[body.AccountID] = body.WagerID
		s.applied[appliedKey(domain.LegKindDebit, body.WagerID)]++
	}
	s.mu.Unlock()

	s.respond(c, OpDebit, res)
}

func (s *Server) action(c *gin.Context) {
	if s.takeFault(c, OpAction) {
		return
	}
	id, err := uuid.Parse(c.Param("wager"))
	if err != nil {
		fail(c, http.StatusBadRequest, ledger.CodeInvalidRequest, "invalid wager id")
		return
	}
	var act domain.PlayerAction
	if err := c.ShouldBindJSON(&act); err != nil {
		fail(c, http.StatusBadRequest, ledger.CodeInvalidRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || !sess.open {
		fail(c, http.StatusNotFound, ledger.CodeSessionNotFound, "no open session for wager")
		return
	}
	if err := s.play(sess, act); err != nil {
		fail(c, http.StatusConflict, ledger.CodeInvalidRequest, err.Error())
		return
	}
	s.respondLocked(c, OpAction, sess.view())
}

// play advances the fake's own round. Called with s.mu held.
func (s *Server) play(sess *session, act domain.PlayerAction) error {
	w := sess.wager
	switch w.Variant {
	case domain.GameVariantConcealmentGrid:
		if act.Kind != domain.PlayerActionReveal {
			return game.ErrInvalidParams
		}
		if sess.grid == nil {
			g, err := game.StartGrid(w.Params.TotalCells, w.Params.ConcealedCount, w.Amount, s.opts.RNG)
			if err != nil {
				return err
			}
			sess.grid = &g
		}
		next, _, err := sess.grid.Reveal(act.Index)
		if err != nil {
			return err
		}
		sess.grid = &next
	case domain.GameVariantWheel:
		if act.Kind != domain.PlayerActionSpin || sess.wheel != nil {
			return game.ErrNotActive
		}
		res, err := game.Spin(w.Params.SegmentCount, w.Params.Risk, w.Params.ThresholdBps, w.Amount, s.opts.RNG)
		if err != nil {
			return err
		}
		sess.wheel = &res
	default:
		return game.ErrInvalidParams
	}
	sess.played = true
	return nil
}

func (s *Server) credit(c *gin.Context) {
	if s.takeFault(c, OpCredit) {
		return
	}
	var body ledger.CreditBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, ledger.CodeInvalidRequest, err.Error())
		return
	}

	s.mu.Lock()
	res, done := s.credits[body.WagerID]
	if !done {
		sess, ok := s.sessions[body.WagerID]
		if !ok || !sess.open {
			s.mu.Unlock()
			fail(c, http.StatusNotFound, ledger.CodeSessionNotFound, "no open session for wager")
			return
		}

		payout := body.Payout
		if sess.played {
			payout = sess.payout(body.Payout)
		}
		account := sess.wager.AccountID
		s.balances[account] += payout
		res = domain.LegResult{Status: domain.LegStatusConfirmed, Amount: payout, RemoteReference: reference("cdt")}
		s.credits[body.WagerID] = res
		sess.open = false
		delete(s.open, account)
		s.applied[appliedKey(domain.LegKindCredit, body.WagerID)]++
	}
	s.mu.Unlock()

	s.respond(c, OpCredit, res)
}

func (s *Server) forceEnd(c *gin.Context) {
	if s.takeFault(c, OpForceEnd) {
		return
	}
	id, err := uuid.Parse(c.Param("wager"))
	if err != nil {
		fail(c, http.StatusBadRequest, ledger.CodeInvalidRequest, "invalid wager id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || !sess.open {
		fail(c, http.StatusNotFound, ledger.CodeSessionNotFound, "no open session for wager")
		return
	}
	sess.open = false
	delete(s.open, sess.wager.AccountID)
	s.respondLocked(c, OpForceEnd, ledger.ForceEndResponse{RemoteReference: reference("void")})
}

// ==================== Helpers ====================

// takeFault counts the call and answers it with a FailBefore fault if one is
// queued. It reports whether the request was answered.
func (s *Server) takeFault(c *gin.Context, op string) bool {
	s.mu.Lock()
	s.calls[op]++
	q := s.faults[op]
	if len(q) == 0 || q[0] != FailBefore {
		s.mu.Unlock()
		return false
	}
	s.faults[op] = q[1:]
	s.mu.Unlock()

	fail(c, http.StatusServiceUnavailable, ledger.CodeInternal, "injected failure")
	return true
}

// respond sends data unless a DropAfter fault swallows the response.
func (s *Server) respond(c *gin.Context, op string, data interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respondLocked(c, op, data)
}

func (s *Server) respondLocked(c *gin.Context, op string, data interface{}) {
	if q := s.faults[op]; len(q) > 0 && q[0] == DropAfter {
		s.faults[op] = q[1:]
		fail(c, http.StatusServiceUnavailable, ledger.CodeInternal, "response dropped")
		return
	}
	response.OK(c, data)
}

func (sess *session) view() *domain.RemoteSession {
	w := sess.wager
	v := &domain.RemoteSession{
		WagerID:   w.WagerID,
		AccountID: w.AccountID,
		Stake:     w.Amount,
		Variant:   w.Variant,
		Open:      sess.open,
		Terminal:  domain.TerminalNone,
	}
	switch {
	case sess.grid != nil:
		v.Terminal = sess.grid.Terminal()
		v.Revealed = sess.grid.Uncovered()
		v.Concealed = sess.grid.Concealed()
		v.MultiplierBps = sess.grid.Multiplier().Bps()
		v.Payout = sess.grid.Payout()
	case sess.wheel != nil:
		v.Terminal = sess.wheel.Terminal()
		v.Position = sess.wheel.Position
		v.MultiplierBps = sess.wheel.Segment.MultiplierBps
		v.Payout = sess.wheel.Payout
	}
	return v
}

// payout is what the fake credits for a round it played. An open grid round
// is cashed out at its current multiplier.
func (sess *session) payout(claimed domain.FixedPoint) domain.FixedPoint {
	switch {
	case sess.wheel != nil:
		return sess.wheel.Payout
	case sess.grid != nil && sess.grid.IsActive():
		next, p, err := sess.grid.CashOut()
		if err != nil {
			return claimed
		}
		sess.grid = &next
		return p
	case sess.grid != nil:
		return sess.grid.Payout()
	}
	return claimed
}

func fail(c *gin.Context, status int, code, message string) {
	response.Error(c, apperror.New(code, message, status))
	c.Abort()
}

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return h[len("Bearer "):]
}

func appliedKey(kind domain.LegKind, wagerID uuid.UUID) string {
	return string(kind) + ":" + wagerID.String()
}

func reference(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
