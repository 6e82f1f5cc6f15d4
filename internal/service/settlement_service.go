package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/game"
	"wager-settlement/internal/core/ports"
	"wager-settlement/internal/core/settlement"
	"wager-settlement/internal/metrics"
	"wager-settlement/pkg/apperror"
	"wager-settlement/pkg/retry"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	legReceiptTTL = 24 * time.Hour
	wagerLockTTL  = 24 * time.Hour
)

// SettlementConfig holds the driver's settings.
type SettlementConfig struct {
	AccountID   string
	ScaleFactor int64
	Machine     settlement.Config
	// Backoff supplies the waits between leg resubmissions and re-queries.
	Backoff             retry.Policy
	RemoteAuthoritative []domain.GameVariant
	ClientSeed          string
}

// activeWager is the single wager the client is currently driving.
type activeWager struct {
	wager      *domain.Wager
	machine    settlement.Machine
	serverSeed string
	grid       *game.GridSession
	wheel      *game.WheelResult
}

// SettlementServiceImpl implements ports.SettlementService. It drives the
// pure settlement machine, executing its commands against the ledger and the
// local stores.
type SettlementServiceImpl struct {
	handles    ports.HandleProvider
	wagers     ports.WagerRepository
	records    ports.TransactionRecordRepository
	legCache   ports.LegCache
	lock       ports.WagerLock
	normalizer ports.AmountNormalizer
	seeds      ports.EncryptionService
	audit      ports.AuditService
	cfg        SettlementConfig
	delays     []time.Duration
	log        zerolog.Logger

	busy  atomic.Bool
	nonce atomic.Uint64

	mu      sync.Mutex
	active  *activeWager
	balance domain.LedgerAccount
}

// NewSettlementService creates a new SettlementServiceImpl.
func NewSettlementService(
	handles ports.HandleProvider,
	wagers ports.WagerRepository,
	records ports.TransactionRecordRepository,
	legCache ports.LegCache,
	lock ports.WagerLock,
	normalizer ports.AmountNormalizer,
	seeds ports.EncryptionService,
	audit ports.AuditService,
	cfg SettlementConfig,
	log zerolog.Logger,
) *SettlementServiceImpl {
	if cfg.Backoff.MaxAttempts <= 0 {
		cfg.Backoff = retry.DefaultPolicy()
	}
	if cfg.Machine.MaxAttempts <= 0 {
		cfg.Machine.MaxAttempts = 3
	}
	// Leg resubmissions wait one step per extra attempt.
	policy := cfg.Backoff
	policy.MaxAttempts = cfg.Machine.MaxAttempts

	s := &SettlementServiceImpl{
		handles:    handles,
		wagers:     wagers,
		records:    records,
		legCache:   legCache,
		lock:       lock,
		normalizer: normalizer,
		seeds:      seeds,
		audit:      audit,
		cfg:        cfg,
		delays:     policy.Delays(),
		log:        log,
		balance:    domain.LedgerAccount{AccountID: cfg.AccountID, ScaleFactor: cfg.ScaleFactor},
	}
	s.nonce.Store(uint64(time.Now().UnixNano()))
	return s
}

// ==================== Wager lifecycle ====================

// PlaceWager validates the stake, debits it and opens the game round.
func (s *SettlementServiceImpl) PlaceWager(ctx context.Context, req ports.PlaceWagerRequest) (*domain.WagerHandle, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, apperror.ErrSessionBusy()
	}
	defer s.busy.Store(false)

	if err := validateGameParams(req.Variant, req.Params); err != nil {
		return nil, err
	}
	stake, err := s.normalizer.Normalize(req.Stake)
	if err != nil {
		return nil, err
	}
	if s.handles.Mode() == domain.ModeDemo {
		return nil, apperror.ErrDemoMode()
	}

	wagerID := uuid.New()
	if req.WagerID != nil {
		wagerID = *req.WagerID
	}

	// A replayed placement returns the wager it already created.
	existing, err := s.wagers.GetByID(ctx, wagerID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wager: %w", err))
	}
	if existing != nil {
		return s.handleFor(existing), nil
	}

	if s.current() != nil {
		return nil, apperror.ErrActiveWagerExists()
	}
	unresolved, err := s.wagers.GetUnresolvedByAccount(ctx, s.cfg.AccountID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get unresolved wager: %w", err))
	}
	if unresolved != nil {
		return nil, apperror.ErrActiveWagerExists()
	}

	locked, err := s.lock.Acquire(ctx, s.cfg.AccountID, wagerID, wagerLockTTL)
	if err != nil {
		return nil, apperror.ErrLockTimeout(fmt.Errorf("acquire wager lock: %w", err))
	}
	if !locked {
		return nil, apperror.ErrActiveWagerExists()
	}

	remote, err := s.activeSession(ctx)
	if err != nil {
		s.releaseLock(ctx, wagerID)
		return nil, ledgerError(err)
	}
	if remote != nil {
		s.releaseLock(ctx, wagerID)
		s.log.Warn().
			Str("remote_wager_id", remote.WagerID.String()).
			Msg("ledger reports an open session, refusing new wager")
		return nil, apperror.ErrActiveWagerExists()
	}

	aw, err := s.newWager(ctx, wagerID, stake, req)
	if err != nil {
		s.releaseLock(ctx, wagerID)
		return nil, err
	}
	s.setActive(aw)

	s.log.Info().
		Str("wager_id", wagerID.String()).
		Str("variant", string(req.Variant)).
		Int64("stake", int64(stake)).
		Msg("wager placed")
	s.audit.Log(ctx, wagerAudit(domain.AuditActionWagerPlaced, wagerID, ActorPlayer, map[string]interface{}{
		"stake":   stake,
		"variant": req.Variant,
	}))

	if err := s.run(ctx, aw, settlement.Started{}); err != nil {
		return nil, s.protocolError(err)
	}
	return s.handleFor(aw.wager), nil
}

func (s *SettlementServiceImpl) newWager(ctx context.Context, id uuid.UUID, stake domain.FixedPoint, req ports.PlaceWagerRequest) (*activeWager, error) {
	serverSeed, err := game.NewServerSeed()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate server seed: %w", err))
	}
	sealed, err := s.seeds.Encrypt(serverSeed)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(fmt.Errorf("seal server seed: %w", err))
	}

	clientSeed := req.ClientSeed
	if clientSeed == "" {
		clientSeed = s.cfg.ClientSeed
	}
	if clientSeed == "" {
		clientSeed = uuid.NewString()
	}

	w := &domain.Wager{
		ID:        id,
		AccountID: s.cfg.AccountID,
		Stake:     stake,
		Variant:   req.Variant,
		Params:    req.Params,
		Status:    domain.WagerStatusPending,
		Seeds: domain.Seeds{
			ServerSeedHash:      game.HashServerSeed(serverSeed),
			ServerSeedEncrypted: sealed,
			ClientSeed:          clientSeed,
			Nonce:               s.nonce.Add(1),
		},
		Outcome:   domain.TerminalNone,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.wagers.Create(ctx, w); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create wager: %w", err))
	}

	return &activeWager{
		wager:      w,
		machine:    settlement.New(id, stake, s.cfg.Machine),
		serverSeed: serverSeed,
	}, nil
}

// ApplyPlayerAction forwards one move to the round. A move that ends the
// round settles it before returning.
func (s *SettlementServiceImpl) ApplyPlayerAction(ctx context.Context, wagerID uuid.UUID, action domain.PlayerAction) (*domain.SessionSnapshot, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, apperror.ErrSessionBusy()
	}
	defer s.busy.Store(false)

	aw, err := s.inPlay(ctx, wagerID)
	if err != nil {
		return nil, err
	}

	switch aw.wager.Variant {
	case domain.GameVariantConcealmentGrid:
		if action.Kind != domain.PlayerActionReveal {
			return nil, apperror.Validation("concealment grid accepts REVEAL actions only")
		}
		err = s.reveal(ctx, aw, action)
	case domain.GameVariantWheel:
		if action.Kind != domain.PlayerActionSpin {
			return nil, apperror.Validation("wheel accepts SPIN actions only")
		}
		err = s.spin(ctx, aw, action)
	default:
		err = apperror.ErrInvalidGameParams(fmt.Errorf("unknown variant %s", aw.wager.Variant))
	}
	if err != nil {
		return nil, err
	}

	snap := s.snapshot(aw)
	if snap.Terminal == domain.TerminalNone {
		return snap, nil
	}

	result, err := s.settle(ctx, aw, snap.Terminal, snap.Payout)
	snap.Settlement = result
	return snap, err
}

func (s *SettlementServiceImpl) reveal(ctx context.Context, aw *activeWager, action domain.PlayerAction) error {
	if aw.grid == nil {
		return apperror.ErrGameNotActive(game.ErrNotActive)
	}
	next, _, err := aw.grid.Reveal(action.Index)
	if err != nil {
		return gameError(err)
	}

	if s.remoteAuthoritative(aw.wager.Variant) {
		remote, err := s.remoteAction(ctx, aw.wager.ID, action)
		if err != nil {
			return err
		}
		if remote.Terminal != next.Terminal() || !slices.Equal(remote.Revealed, next.Uncovered()) {
			adopted, aerr := aw.grid.Adopt(remote.Revealed, remote.Terminal, remote.Concealed)
			if aerr != nil {
				return apperror.ErrLedgerRejected(fmt.Errorf("adopt remote round: %w", aerr))
			}
			s.diverged(ctx, aw, map[string]interface{}{
				"index":           action.Index,
				"local_terminal":  next.Terminal(),
				"remote_terminal": remote.Terminal,
			})
			next = adopted
		}
	}

	aw.grid = &next
	return nil
}

func (s *SettlementServiceImpl) spin(ctx context.Context, aw *activeWager, action domain.PlayerAction) error {
	if aw.wheel != nil {
		return apperror.ErrGameNotActive(game.ErrNotActive)
	}
	p := aw.wager.Params
	rng := game.NewSeededRNG(aw.serverSeed, aw.wager.Seeds.ClientSeed, aw.wager.Seeds.Nonce)
	res, err := game.Spin(p.SegmentCount, p.Risk, p.ThresholdBps, aw.wager.Stake, rng)
	if err != nil {
		return gameError(err)
	}

	if s.remoteAuthoritative(aw.wager.Variant) {
		remote, err := s.remoteAction(ctx, aw.wager.ID, action)
		if err != nil {
			return err
		}
		if remote.Position != res.Position {
			segments, _ := game.WheelTable(p.SegmentCount, p.Risk)
			if remote.Position < 0 || remote.Position >= len(segments) {
				return apperror.ErrLedgerRejected(fmt.Errorf("remote position %d outside wheel of %d", remote.Position, len(segments)))
			}
			s.diverged(ctx, aw, map[string]interface{}{
				"local_position":  res.Position,
				"remote_position": remote.Position,
			})
			res = game.ResultAt(segments, remote.Position, p.ThresholdBps, aw.wager.Stake)
		}
	}

	aw.wheel = &res
	return nil
}

// CashOut ends an in-play grid round and settles it.
func (s *SettlementServiceImpl) CashOut(ctx context.Context, wagerID uuid.UUID) (*domain.SettlementResult, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, apperror.ErrSessionBusy()
	}
	defer s.busy.Store(false)

	aw, err := s.inPlay(ctx, wagerID)
	if err != nil {
		return nil, err
	}
	if aw.grid == nil {
		return nil, apperror.ErrGameNotActive(fmt.Errorf("%s rounds cannot be cashed out", aw.wager.Variant))
	}

	next, payout, err := aw.grid.CashOut()
	if err != nil {
		return nil, gameError(err)
	}
	aw.grid = &next

	return s.settle(ctx, aw, domain.TerminalCashedOut, payout)
}

// Reconcile resumes settlement of a wager whose debit or credit outcome is unknown.
func (s *SettlementServiceImpl) Reconcile(ctx context.Context, wagerID uuid.UUID) (*domain.SettlementResult, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, apperror.ErrSessionBusy()
	}
	defer s.busy.Store(false)

	aw, err := s.load(ctx, wagerID)
	if err != nil {
		return nil, err
	}
	if aw.machine.IsTerminal() {
		return s.resultOf(aw), nil
	}
	if aw.machine.State != settlement.StateUnreconciled {
		return nil, apperror.ErrWagerNotActive()
	}

	s.log.Info().
		Str("wager_id", wagerID.String()).
		Str("leg", string(aw.machine.PendingLeg)).
		Msg("reconciling wager")

	err = s.run(ctx, aw, settlement.ReconcileRequested{})
	return s.resultOf(aw), s.protocolError(err)
}

// ForceEndSession discards a wager on explicit operator request. The ledger
// is told first; a ledger that no longer knows the session is not an error.
func (s *SettlementServiceImpl) ForceEndSession(ctx context.Context, wagerID uuid.UUID, operator string) (*domain.SettlementResult, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, apperror.ErrSessionBusy()
	}
	defer s.busy.Store(false)

	aw, err := s.load(ctx, wagerID)
	if err != nil {
		return nil, err
	}
	if aw.machine.IsTerminal() {
		return nil, apperror.ErrWagerNotActive()
	}
	before := aw.wager.Status

	var ref string
	err = s.handles.Call(ctx, ports.CallSpec{Op: "force-end", Purpose: domain.PurposeLedger, Write: true, Detached: true},
		func(ctx context.Context, c ports.LedgerClient) error {
			var err error
			ref, err = c.ForceEndSession(ctx, wagerID)
			return err
		})
	if err != nil && ports.RemoteErrorKindOf(err) != ports.RemoteNotFound {
		return nil, ledgerError(err)
	}

	if err := s.run(ctx, aw, settlement.ForceEnded{}); err != nil {
		return nil, s.protocolError(err)
	}

	s.log.Warn().
		Str("wager_id", wagerID.String()).
		Str("operator", operator).
		Str("status_before", string(before)).
		Msg("session force-ended by operator")
	s.audit.Log(ctx, wagerAudit(domain.AuditActionSessionForceEnded, wagerID, operator, map[string]interface{}{
		"remote_reference": ref,
		"status_before":    before,
	}))

	result := s.resultOf(aw)
	result.RemoteReference = ref
	return result, nil
}

// GetWager returns the wager as currently known.
func (s *SettlementServiceImpl) GetWager(ctx context.Context, wagerID uuid.UUID) (*domain.Wager, error) {
	s.mu.Lock()
	if aw := s.active; aw != nil && aw.wager.ID == wagerID {
		w := *aw.wager
		s.mu.Unlock()
		return &w, nil
	}
	s.mu.Unlock()
	w, err := s.wagers.GetByID(ctx, wagerID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wager: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("wager")
	}
	return w, nil
}

// Resume restores the account's unresolved wager after a restart. Rounds in
// play are rebuilt from their seeds and the ledger's record of the cells
// already uncovered.
func (s *SettlementServiceImpl) Resume(ctx context.Context) error {
	w, err := s.wagers.GetUnresolvedByAccount(ctx, s.cfg.AccountID)
	if err != nil {
		return fmt.Errorf("get unresolved wager: %w", err)
	}
	if w == nil {
		return nil
	}

	aw, err := s.restore(w)
	if err != nil {
		return err
	}
	if aw.machine.State == settlement.StateInPlay && aw.grid != nil {
		remote, err := s.activeSession(ctx)
		if err != nil {
			s.log.Warn().Err(err).Str("wager_id", w.ID.String()).Msg("could not read remote round, resuming from seeds only")
		} else if remote.Matches(w.ID) && len(remote.Revealed) > 0 {
			adopted, err := aw.grid.Adopt(remote.Revealed, remote.Terminal, remote.Concealed)
			if err != nil {
				return fmt.Errorf("replay remote round: %w", err)
			}
			aw.grid = &adopted
		}
	}

	s.setActive(aw)
	s.log.Info().
		Str("wager_id", w.ID.String()).
		Str("status", string(w.Status)).
		Msg("resumed unresolved wager")
	return nil
}

// ==================== Balance & mode ====================

// GetCachedBalance returns the last balance read from the ledger.
func (s *SettlementServiceImpl) GetCachedBalance() domain.LedgerAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// RefreshBalance re-reads the balance from the ledger.
func (s *SettlementServiceImpl) RefreshBalance(ctx context.Context) (domain.LedgerAccount, error) {
	if _, err := s.fetchBalance(ctx); err != nil {
		return s.GetCachedBalance(), ledgerError(err)
	}
	return s.GetCachedBalance(), nil
}

func (s *SettlementServiceImpl) GetMode() domain.Mode {
	return s.handles.Mode()
}

// Reconnect retries the player identity and reports the resulting mode.
func (s *SettlementServiceImpl) Reconnect(ctx context.Context) (domain.Mode, error) {
	if err := s.handles.Reconnect(ctx); err != nil {
		return s.handles.Mode(), apperror.ErrLedgerUnavailable(err)
	}
	if _, err := s.fetchBalance(ctx); err != nil {
		s.log.Warn().Err(err).Msg("balance refresh after reconnect failed")
	}
	return s.handles.Mode(), nil
}

// ==================== Protocol driver ====================

// settle feeds the terminal round into the machine. The credit baseline is
// the balance read just before the credit; when that read fails the last
// known balance stands in.
func (s *SettlementServiceImpl) settle(ctx context.Context, aw *activeWager, outcome domain.TerminalState, payout domain.FixedPoint) (*domain.SettlementResult, error) {
	baseline, err := s.fetchBalance(ctx)
	if err != nil {
		baseline = s.GetCachedBalance().Balance
		s.log.Warn().Err(err).Str("wager_id", aw.wager.ID.String()).Msg("pre-credit balance read failed, using cached balance")
	}

	err = s.run(ctx, aw, settlement.GameTerminated{Outcome: outcome, Payout: payout, Baseline: baseline})
	return s.resultOf(aw), s.protocolError(err)
}

// run applies ev and every event produced by executing the resulting commands,
// until the machine stops asking for work. The machine's own error is
// returned after its commands have run.
func (s *SettlementServiceImpl) run(ctx context.Context, aw *activeWager, ev settlement.Event) error {
	queue := []settlement.Event{ev}
	for len(queue) > 0 {
		ev, queue = queue[0], queue[1:]

		prev := aw.machine
		next, cmds, protoErr := prev.Apply(ev)
		if errors.Is(protoErr, settlement.ErrInvalidTransition) {
			return protoErr
		}
		aw.machine = next
		s.persist(ctx, aw)
		s.afterTransition(ctx, aw, prev, protoErr)

		for _, cmd := range cmds {
			follow := s.execute(ctx, aw, cmd)
			if follow != nil {
				queue = append(queue, follow)
			}
		}
		if protoErr != nil {
			return protoErr
		}
	}
	return nil
}

// execute performs one command and returns the event it produced, if any.
func (s *SettlementServiceImpl) execute(ctx context.Context, aw *activeWager, cmd settlement.Command) settlement.Event {
	if n := settlement.BackoffOf(cmd); n > 0 {
		d := s.delay(n)
		s.log.Warn().
			Str("wager_id", aw.wager.ID.String()).
			Str("command", settlement.Name(cmd)).
			Int("attempt", aw.machine.Attempts).
			Dur("wait", d).
			Msg("settlement leg retrying")
		if err := retry.Wait(ctx, d); err != nil {
			return settlement.Cancelled{}
		}
	}

	switch c := cmd.(type) {
	case settlement.FetchBalance:
		bal, err := s.fetchBalance(ctx)
		if err != nil {
			return settlement.QueryFailed{Err: err}
		}
		return settlement.BalanceFetched{Balance: bal}
	case settlement.SubmitDebit:
		return s.submitDebit(ctx, aw)
	case settlement.QueryActiveSession:
		sess, err := s.activeSession(ctx)
		if err != nil {
			return settlement.QueryFailed{Err: err}
		}
		return settlement.ActiveSessionQueried{Session: sess}
	case settlement.StartGame:
		s.startGame(aw)
	case settlement.SubmitCredit:
		return s.submitCredit(ctx, aw, c)
	case settlement.QueryCreditOutcome:
		return s.queryCreditOutcome(ctx, aw)
	case settlement.RefreshBalance:
		if _, err := s.fetchBalance(ctx); err != nil {
			s.log.Warn().Err(err).Msg("balance refresh failed, keeping cached balance")
		}
	case settlement.ReleaseWager:
		s.releaseLock(ctx, aw.wager.ID)
		s.clearActive(aw)
	}
	return nil
}

func (s *SettlementServiceImpl) delay(steps int) time.Duration {
	if len(s.delays) == 0 {
		return 0
	}
	if steps > len(s.delays) {
		steps = len(s.delays)
	}
	return s.delays[steps-1]
}

func (s *SettlementServiceImpl) submitDebit(ctx context.Context, aw *activeWager) settlement.Event {
	w := aw.wager
	key := domain.BuildLegIdempotencyKey(w.ID, domain.LegKindDebit)

	receipt, err := s.confirmedLeg(ctx, key)
	if err != nil {
		// Nothing was sent; the stake cannot have moved.
		return settlement.DebitRejected{Err: err}
	}
	if receipt != nil {
		return settlement.DebitConfirmed{RemoteReference: receipt.RemoteReference}
	}

	record, err := s.pendingRecord(ctx, w.ID, domain.LegKindDebit, w.Stake)
	if err != nil {
		return settlement.DebitRejected{Err: err}
	}

	var res *domain.LegResult
	err = s.handles.Call(ctx, ports.CallSpec{Op: "debit", Purpose: domain.PurposeLedger, Write: true, Once: true, Detached: true},
		func(ctx context.Context, c ports.LedgerClient) error {
			var err error
			res, err = c.Debit(ctx, ports.DebitRequest{
				WagerID:        w.ID,
				AccountID:      w.AccountID,
				Amount:         w.Stake,
				Variant:        w.Variant,
				Params:         w.Params,
				ServerSeedHash: w.Seeds.ServerSeedHash,
			})
			return err
		})
	if err != nil {
		var appErr *apperror.AppError
		if ports.RemoteErrorKindOf(err) == ports.RemoteRejected || errors.As(err, &appErr) {
			s.closeRecord(ctx, record, domain.LegStatusFailed, "")
			return settlement.DebitRejected{Err: err}
		}
		s.log.Warn().Err(err).Str("wager_id", w.ID.String()).Int("attempt", record.Attempts).Msg("debit outcome unknown")
		return settlement.DebitFailed{Err: err}
	}

	s.closeRecord(ctx, record, domain.LegStatusConfirmed, res.RemoteReference)
	s.log.Info().
		Str("wager_id", w.ID.String()).
		Int64("amount", int64(w.Stake)).
		Str("remote_reference", res.RemoteReference).
		Msg("debit confirmed")
	s.audit.Log(ctx, wagerAudit(domain.AuditActionDebitConfirmed, w.ID, ActorSystem, map[string]interface{}{
		"amount":           w.Stake,
		"remote_reference": res.RemoteReference,
	}))
	return settlement.DebitConfirmed{RemoteReference: res.RemoteReference}
}

func (s *SettlementServiceImpl) submitCredit(ctx context.Context, aw *activeWager, c settlement.SubmitCredit) settlement.Event {
	w := aw.wager
	key := domain.BuildLegIdempotencyKey(w.ID, domain.LegKindCredit)

	receipt, err := s.confirmedLeg(ctx, key)
	if err != nil {
		return settlement.CreditFailed{Err: err}
	}
	if receipt != nil {
		return settlement.CreditConfirmed{Payout: receipt.Amount, RemoteReference: receipt.RemoteReference}
	}

	record, err := s.pendingRecord(ctx, w.ID, domain.LegKindCredit, c.Payout)
	if err != nil {
		return settlement.CreditFailed{Err: err}
	}

	var res *domain.LegResult
	err = s.handles.Call(ctx, ports.CallSpec{Op: "credit", Purpose: domain.PurposeLedger, Write: true, Once: true, Detached: true},
		func(ctx context.Context, lc ports.LedgerClient) error {
			var err error
			res, err = lc.Credit(ctx, ports.CreditRequest{
				WagerID:   w.ID,
				AccountID: w.AccountID,
				Outcome:   c.Outcome,
				Payout:    c.Payout,
			})
			return err
		})
	if err != nil {
		s.log.Warn().Err(err).Str("wager_id", w.ID.String()).Int("attempt", record.Attempts).Msg("credit outcome unknown")
		return settlement.CreditFailed{Err: err}
	}

	record.Amount = res.Amount
	s.closeRecord(ctx, record, domain.LegStatusConfirmed, res.RemoteReference)
	if res.Amount != c.Payout {
		s.log.Warn().
			Str("wager_id", w.ID.String()).
			Int64("expected", int64(c.Payout)).
			Int64("applied", int64(res.Amount)).
			Msg("ledger applied a different payout")
	}
	s.log.Info().
		Str("wager_id", w.ID.String()).
		Int64("payout", int64(res.Amount)).
		Str("remote_reference", res.RemoteReference).
		Msg("credit confirmed")
	s.audit.Log(ctx, wagerAudit(domain.AuditActionCreditConfirmed, w.ID, ActorSystem, map[string]interface{}{
		"payout":           res.Amount,
		"outcome":          c.Outcome,
		"remote_reference": res.RemoteReference,
	}))
	return settlement.CreditConfirmed{Payout: res.Amount, RemoteReference: res.RemoteReference}
}

func (s *SettlementServiceImpl) queryCreditOutcome(ctx context.Context, aw *activeWager) settlement.Event {
	bal, err := s.fetchBalance(ctx)
	if err != nil {
		return settlement.QueryFailed{Err: err}
	}
	ev := settlement.CreditOutcomeQueried{Balance: bal}

	sess, err := s.activeSession(ctx)
	if err == nil {
		ev.SessionKnown = true
		ev.SessionOpen = sess.Matches(aw.wager.ID) && sess.Open
	}
	return ev
}

func (s *SettlementServiceImpl) startGame(aw *activeWager) {
	w := aw.wager
	if w.Variant != domain.GameVariantConcealmentGrid || aw.grid != nil {
		return
	}
	rng := game.NewSeededRNG(aw.serverSeed, w.Seeds.ClientSeed, w.Seeds.Nonce)
	g, err := game.StartGrid(w.Params.TotalCells, w.Params.ConcealedCount, w.Stake, rng)
	if err != nil {
		// Parameters were validated at placement; this cannot happen for a persisted wager.
		s.log.Error().Err(err).Str("wager_id", w.ID.String()).Msg("failed to start grid round")
		return
	}
	aw.grid = &g
}

// afterTransition records what a transition means for the ledger legs.
func (s *SettlementServiceImpl) afterTransition(ctx context.Context, aw *activeWager, prev settlement.Machine, protoErr error) {
	m := aw.machine
	id := aw.wager.ID
	if prev.State == m.State {
		return
	}

	switch {
	case prev.State == settlement.StateDebiting && m.State == settlement.StateInPlay:
		metrics.SettlementLegs.WithLabelValues(string(domain.LegKindDebit), string(domain.LegStatusConfirmed)).Inc()
		if m.Recovered {
			s.confirmRecovered(ctx, id, domain.LegKindDebit, aw.wager.Stake)
			s.log.Info().Str("wager_id", id.String()).Msg("debit recovered from ledger session")
			s.audit.Log(ctx, wagerAudit(domain.AuditActionDebitRecovered, id, ActorSystem, nil))
		}
	case prev.State == settlement.StateDebiting && m.State == settlement.StateAborted && !m.Forced:
		metrics.SettlementLegs.WithLabelValues(string(domain.LegKindDebit), string(domain.LegStatusFailed)).Inc()
		s.failRecord(ctx, id, domain.LegKindDebit)
		s.log.Warn().Err(protoErr).Str("wager_id", id.String()).Msg("debit failed, wager aborted")
		s.audit.Log(ctx, wagerAudit(domain.AuditActionDebitFailed, id, ActorSystem, errDetails(protoErr)))
	case m.State == settlement.StateUnreconciled && m.PendingLeg == domain.LegKindDebit:
		s.log.Error().Err(protoErr).Str("wager_id", id.String()).Msg("debit outcome unresolved, wager needs reconciliation")
		s.audit.Log(ctx, wagerAudit(domain.AuditActionDebitUnresolved, id, ActorSystem, errDetails(protoErr)))
	case prev.State == settlement.StateSettling && m.State == settlement.StateDone:
		metrics.SettlementLegs.WithLabelValues(string(domain.LegKindCredit), string(domain.LegStatusConfirmed)).Inc()
		metrics.WagersResolved.WithLabelValues(string(aw.wager.Variant), string(m.Outcome)).Inc()
		if m.Recovered {
			s.confirmRecovered(ctx, id, domain.LegKindCredit, m.Payout)
			s.log.Info().Str("wager_id", id.String()).Msg("credit recovered from ledger state")
			s.audit.Log(ctx, wagerAudit(domain.AuditActionCreditRecovered, id, ActorSystem, map[string]interface{}{
				"payout": m.Payout,
			}))
		}
	case m.State == settlement.StateUnreconciled && m.PendingLeg == domain.LegKindCredit:
		metrics.SettlementLegs.WithLabelValues(string(domain.LegKindCredit), "UNRECONCILED").Inc()
		s.log.Error().Err(protoErr).
			Str("wager_id", id.String()).
			Int64("payout", int64(m.Payout)).
			Msg("credit unconfirmed after retries, wager needs reconciliation")
		s.audit.Log(ctx, wagerAudit(domain.AuditActionCreditUnreconciled, id, ActorSystem, map[string]interface{}{
			"payout": m.Payout,
		}))
	}
}

// persist writes the machine's view onto the wager. A failed write is
// logged: the ledger stays the source of truth and the next transition
// writes again.
func (s *SettlementServiceImpl) persist(ctx context.Context, aw *activeWager) {
	m := aw.machine

	// GetWager reads the active wager without holding busy.
	s.mu.Lock()
	w := aw.wager
	w.Status = m.WagerStatus()
	w.Outcome = m.Outcome
	w.Payout = m.Payout
	w.PreCreditBalance = m.CreditBaseline
	if w.IsTerminal() && w.ResolvedAt == nil {
		now := time.Now().UTC()
		w.ResolvedAt = &now
		if w.Status == domain.WagerStatusResolved {
			w.Seeds.ServerSeed = aw.serverSeed
		}
	}
	snapshot := *w
	s.mu.Unlock()

	if err := s.wagers.Update(context.WithoutCancel(ctx), &snapshot); err != nil {
		s.log.Error().Err(err).Str("wager_id", w.ID.String()).Str("status", string(w.Status)).Msg("failed to persist wager")
	}
}

// ==================== Leg idempotency ====================

// confirmedLeg looks the leg up in the cache, then in the record log.
func (s *SettlementServiceImpl) confirmedLeg(ctx context.Context, key string) (*domain.LegReceipt, error) {
	// Layer 1: Redis leg cache
	if s.legCache != nil {
		receipt, err := s.legCache.Get(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("leg cache lookup failed, falling through to records")
		}
		if receipt != nil {
			return receipt, nil
		}
	}

	// Layer 2: DB record log
	record, err := s.records.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("leg record lookup: %w", err)
	}
	if record != nil && record.IsConfirmed() {
		receipt := domain.ReceiptFromRecord(record)
		s.cacheReceipt(ctx, receipt)
		return receipt, nil
	}
	return nil, nil
}

// pendingRecord writes the leg's PENDING record before the remote call.
func (s *SettlementServiceImpl) pendingRecord(ctx context.Context, wagerID uuid.UUID, kind domain.LegKind, amount domain.FixedPoint) (*domain.TransactionRecord, error) {
	record := domain.NewTransactionRecord(wagerID, kind, amount, time.Now().UTC())
	if err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create leg record: %w", err)
	}
	stored, err := s.records.Get(ctx, record.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("get leg record: %w", err)
	}
	if stored != nil {
		record = stored
	}

	record.Status = domain.LegStatusPending
	record.Amount = amount
	record.Attempts++
	record.UpdatedAt = time.Now().UTC()
	if err := s.records.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("update leg record: %w", err)
	}
	return record, nil
}

func (s *SettlementServiceImpl) closeRecord(ctx context.Context, record *domain.TransactionRecord, status domain.LegStatus, ref string) {
	ctx = context.WithoutCancel(ctx)
	record.Status = status
	record.RemoteReference = ref
	record.UpdatedAt = time.Now().UTC()
	if err := s.records.Update(ctx, record); err != nil {
		s.log.Error().Err(err).Str("key", record.IdempotencyKey).Msg("failed to update leg record")
	}
	if status == domain.LegStatusConfirmed {
		s.cacheReceipt(ctx, domain.ReceiptFromRecord(record))
	}
}

func (s *SettlementServiceImpl) confirmRecovered(ctx context.Context, wagerID uuid.UUID, kind domain.LegKind, amount domain.FixedPoint) {
	record, err := s.records.Get(ctx, domain.BuildLegIdempotencyKey(wagerID, kind))
	if err != nil || record == nil {
		record = domain.NewTransactionRecord(wagerID, kind, amount, time.Now().UTC())
		if cerr := s.records.Create(context.WithoutCancel(ctx), record); cerr != nil {
			s.log.Error().Err(cerr).Str("key", record.IdempotencyKey).Msg("failed to create recovered leg record")
			return
		}
	}
	record.Amount = amount
	s.closeRecord(ctx, record, domain.LegStatusConfirmed, record.RemoteReference)
}

func (s *SettlementServiceImpl) failRecord(ctx context.Context, wagerID uuid.UUID, kind domain.LegKind) {
	record, err := s.records.Get(ctx, domain.BuildLegIdempotencyKey(wagerID, kind))
	if err != nil || record == nil || record.Status != domain.LegStatusPending {
		return
	}
	s.closeRecord(ctx, record, domain.LegStatusFailed, "")
}

func (s *SettlementServiceImpl) cacheReceipt(ctx context.Context, receipt *domain.LegReceipt) {
	if s.legCache == nil {
		return
	}
	if err := s.legCache.Set(ctx, receipt, legReceiptTTL); err != nil {
		s.log.Warn().Err(err).Str("key", receipt.Key).Msg("failed to cache leg receipt")
	}
}

// ==================== Ledger reads ====================

func (s *SettlementServiceImpl) fetchBalance(ctx context.Context) (domain.FixedPoint, error) {
	var bal domain.FixedPoint
	err := s.handles.Call(ctx, ports.CallSpec{Op: "balance", Purpose: domain.PurposeLedger},
		func(ctx context.Context, c ports.LedgerClient) error {
			var err error
			bal, err = c.GetBalance(ctx, s.cfg.AccountID)
			return err
		})
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.balance = domain.LedgerAccount{
		AccountID:    s.cfg.AccountID,
		Balance:      bal,
		ScaleFactor:  s.cfg.ScaleFactor,
		LastSyncedAt: time.Now().UTC(),
	}
	s.mu.Unlock()
	return bal, nil
}

func (s *SettlementServiceImpl) activeSession(ctx context.Context) (*domain.RemoteSession, error) {
	var sess *domain.RemoteSession
	err := s.handles.Call(ctx, ports.CallSpec{Op: "active-session", Purpose: domain.PurposeLedger},
		func(ctx context.Context, c ports.LedgerClient) error {
			var err error
			sess, err = c.GetActiveSession(ctx, s.cfg.AccountID)
			return err
		})
	return sess, err
}

// remoteAction submits a move to the game authority. Moves are not
// idempotent on the remote side, so each submission is a single call: after a
// failure the session is read back, and a move the authority already applied
// is taken from there instead of being sent again.
func (s *SettlementServiceImpl) remoteAction(ctx context.Context, wagerID uuid.UUID, action domain.PlayerAction) (*domain.RemoteSession, error) {
	var sess *domain.RemoteSession
	err := retry.Do(ctx, s.cfg.Backoff, func(ctx context.Context, attempt int) error {
		err := s.handles.Call(ctx, ports.CallSpec{Op: "action", Purpose: domain.PurposeGameAuthority, Write: true, Once: true},
			func(ctx context.Context, c ports.LedgerClient) error {
				var err error
				sess, err = c.ApplyAction(ctx, wagerID, action)
				return err
			})
		if err == nil || !actionMayHaveLanded(err) {
			return err
		}

		remote, qerr := s.activeSession(ctx)
		if qerr != nil {
			s.log.Warn().Err(qerr).Str("wager_id", wagerID.String()).Msg("cannot read back game session after failed action")
			return err
		}
		if !actionApplied(remote, wagerID, action) {
			return err
		}
		s.log.Warn().Err(err).
			Str("wager_id", wagerID.String()).
			Int("attempt", attempt).
			Msg("action response lost, adopting game session state")
		sess = remote
		return nil
	}, ports.IsRetryable, nil)
	if err != nil {
		return nil, ledgerError(err)
	}
	if !sess.Matches(wagerID) {
		return nil, apperror.ErrLedgerRejected(fmt.Errorf("game authority answered for another wager"))
	}
	return sess, nil
}

// actionMayHaveLanded is false for failures that stop a call before the
// authority sees it: local errors such as DEMO mode, credential refusals and
// a missing session.
func actionMayHaveLanded(err error) bool {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return false
	}
	switch ports.RemoteErrorKindOf(err) {
	case ports.RemoteCredential, ports.RemoteNotFound:
		return false
	}
	return true
}

// actionApplied reports whether the remote session already reflects action.
func actionApplied(remote *domain.RemoteSession, wagerID uuid.UUID, action domain.PlayerAction) bool {
	if !remote.Matches(wagerID) {
		return false
	}
	switch action.Kind {
	case domain.PlayerActionSpin:
		return remote.Terminal != domain.TerminalNone
	case domain.PlayerActionReveal:
		return slices.Contains(remote.Revealed, action.Index)
	}
	return false
}

func (s *SettlementServiceImpl) diverged(ctx context.Context, aw *activeWager, details map[string]interface{}) {
	metrics.GameDivergences.WithLabelValues(string(aw.wager.Variant)).Inc()
	s.log.Warn().
		Str("wager_id", aw.wager.ID.String()).
		Interface("details", details).
		Msg("game authority result differs from local engine, adopting remote result")
	s.audit.Log(ctx, wagerAudit(domain.AuditActionOutcomeDiverged, aw.wager.ID, ActorSystem, details))
}

func (s *SettlementServiceImpl) remoteAuthoritative(v domain.GameVariant) bool {
	return slices.Contains(s.cfg.RemoteAuthoritative, v)
}

// ==================== Active wager bookkeeping ====================

func (s *SettlementServiceImpl) current() *activeWager {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *SettlementServiceImpl) setActive(aw *activeWager) {
	s.mu.Lock()
	s.active = aw
	s.mu.Unlock()
}

func (s *SettlementServiceImpl) clearActive(aw *activeWager) {
	s.mu.Lock()
	if s.active == aw {
		s.active = nil
	}
	s.mu.Unlock()
}

func (s *SettlementServiceImpl) releaseLock(ctx context.Context, wagerID uuid.UUID) {
	if err := s.lock.Release(context.WithoutCancel(ctx), s.cfg.AccountID, wagerID); err != nil {
		s.log.Warn().Err(err).Str("wager_id", wagerID.String()).Msg("failed to release wager lock")
	}
}

// inPlay returns the active wager if it is the one asked for and its round is open.
func (s *SettlementServiceImpl) inPlay(ctx context.Context, wagerID uuid.UUID) (*activeWager, error) {
	aw := s.current()
	if aw == nil || aw.wager.ID != wagerID {
		w, err := s.wagers.GetByID(ctx, wagerID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("get wager: %w", err))
		}
		if w == nil {
			return nil, apperror.ErrNotFound("wager")
		}
		return nil, apperror.ErrWagerNotActive()
	}
	if aw.machine.State != settlement.StateInPlay {
		return nil, apperror.ErrWagerNotActive()
	}
	return aw, nil
}

// load returns the active wager or restores a persisted one.
func (s *SettlementServiceImpl) load(ctx context.Context, wagerID uuid.UUID) (*activeWager, error) {
	if aw := s.current(); aw != nil && aw.wager.ID == wagerID {
		return aw, nil
	}
	w, err := s.wagers.GetByID(ctx, wagerID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wager: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("wager")
	}
	aw, err := s.restore(w)
	if err != nil {
		return nil, err
	}
	if !aw.machine.IsTerminal() {
		s.setActive(aw)
	}
	return aw, nil
}

func (s *SettlementServiceImpl) restore(w *domain.Wager) (*activeWager, error) {
	m, err := settlement.Restore(w, s.cfg.Machine)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	aw := &activeWager{wager: w, machine: m}

	if w.Seeds.ServerSeedEncrypted != "" {
		seed, err := s.seeds.Decrypt(w.Seeds.ServerSeedEncrypted)
		if err != nil {
			return nil, apperror.ErrEncryptionFailure(fmt.Errorf("open server seed: %w", err))
		}
		aw.serverSeed = seed
	}
	if m.State == settlement.StateInPlay {
		s.startGame(aw)
	}
	return aw, nil
}

// ==================== Views ====================

func (s *SettlementServiceImpl) handleFor(w *domain.Wager) *domain.WagerHandle {
	return &domain.WagerHandle{
		WagerID:        w.ID,
		Variant:        w.Variant,
		Stake:          w.Stake,
		Status:         w.Status,
		ServerSeedHash: w.Seeds.ServerSeedHash,
		ClientSeed:     w.Seeds.ClientSeed,
		Nonce:          w.Seeds.Nonce,
		Balance:        s.GetCachedBalance().Balance,
	}
}

func (s *SettlementServiceImpl) snapshot(aw *activeWager) *domain.SessionSnapshot {
	snap := &domain.SessionSnapshot{
		WagerID:  aw.wager.ID,
		Variant:  aw.wager.Variant,
		Terminal: domain.TerminalNone,
	}
	switch {
	case aw.grid != nil:
		g := aw.grid
		snap.Terminal = g.Terminal()
		snap.Revealed = g.Uncovered()
		snap.Concealed = g.Concealed()
		snap.Multiplier = g.Multiplier().Float64()
		snap.Ratio = g.Multiplier().String()
		snap.Payout = g.Payout()
	case aw.wheel != nil:
		r := aw.wheel
		pos := r.Position
		snap.Terminal = r.Terminal()
		snap.Position = &pos
		snap.Multiplier = r.Multiplier.Float64()
		snap.Ratio = r.Multiplier.String()
		snap.Payout = r.Payout
	}
	return snap
}

func (s *SettlementServiceImpl) resultOf(aw *activeWager) *domain.SettlementResult {
	w := aw.wager
	return &domain.SettlementResult{
		WagerID:    w.ID,
		Status:     w.Status,
		Outcome:    w.Outcome,
		Payout:     w.Payout,
		Balance:    s.GetCachedBalance().Balance,
		ServerSeed: w.Seeds.ServerSeed,
	}
}

// ==================== Error mapping ====================

// protocolError maps a machine error onto the client-facing codes.
func (s *SettlementServiceImpl) protocolError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	switch {
	case errors.Is(err, settlement.ErrInsufficientFunds):
		return apperror.ErrInsufficientFunds()
	case errors.Is(err, settlement.ErrBalanceUnknown):
		return ledgerError(err)
	case errors.Is(err, settlement.ErrDebitRejected):
		if errors.As(err, &appErr) {
			return appErr
		}
		var re *ports.RemoteError
		if errors.As(err, &re) && re.Code == "INSUFFICIENT_FUNDS" {
			return apperror.ErrInsufficientFunds()
		}
		return apperror.ErrLedgerRejected(err)
	case errors.Is(err, settlement.ErrDebitFailed):
		return apperror.ErrDebitFailed(err)
	case errors.Is(err, settlement.ErrDebitUnresolved):
		return apperror.ErrDebitUnresolved(err)
	case errors.Is(err, settlement.ErrCreditUnconfirmed):
		return apperror.ErrCreditUnconfirmed(err)
	case errors.Is(err, settlement.ErrInvalidTransition):
		return apperror.ErrWagerNotActive()
	}
	return apperror.InternalError(err)
}

// ledgerError maps a failed ledger call.
func ledgerError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch ports.RemoteErrorKindOf(err) {
	case ports.RemoteRejected, ports.RemoteNotFound:
		return apperror.ErrLedgerRejected(err)
	default:
		return apperror.ErrLedgerUnavailable(err)
	}
}

func gameError(err error) error {
	switch {
	case errors.Is(err, game.ErrInvalidIndex):
		return apperror.ErrInvalidIndex(err)
	case errors.Is(err, game.ErrNotActive):
		return apperror.ErrGameNotActive(err)
	case errors.Is(err, game.ErrInvalidParams):
		return apperror.ErrInvalidGameParams(err)
	}
	return apperror.InternalError(err)
}

func validateGameParams(v domain.GameVariant, p domain.GameParams) error {
	switch v {
	case domain.GameVariantConcealmentGrid:
		if err := game.ValidateGrid(p.TotalCells, p.ConcealedCount); err != nil {
			return apperror.ErrInvalidGameParams(err)
		}
	case domain.GameVariantWheel:
		if _, err := game.WheelTable(p.SegmentCount, p.Risk); err != nil {
			return apperror.ErrInvalidGameParams(err)
		}
		if p.ThresholdBps < 0 {
			return apperror.ErrInvalidGameParams(fmt.Errorf("%w: negative threshold", game.ErrInvalidParams))
		}
	default:
		return apperror.Validation(fmt.Sprintf("unknown game variant %q", v))
	}
	return nil
}

func errDetails(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	return map[string]interface{}{"error": err.Error()}
}
