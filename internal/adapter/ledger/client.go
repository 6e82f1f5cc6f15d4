// Package ledger is the HTTP adapter for the remote ledger and game authority.
// Every failure leaves this package as a *ports.RemoteError with its kind
// already decided.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 1 << 20
)

var credentialCodes = []string{
	CodeDelegationExpired,
	CodeSignatureInvalid,
	CodeCertificateMalformed,
	CodeSessionExpired,
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the ledger endpoint and this client's credentials.
type Config struct {
	BaseURL   string
	AccountID string
	AccessKey string
	// SigningSecret keys the HMAC carried by every authenticated request.
	SigningSecret string
}

// Dialer implements ports.LedgerDialer over HTTP.
type Dialer struct {
	cfg         Config
	http        HTTPClient
	delegations ports.DelegationSigner
	sigs        ports.SignatureService
	now         func() time.Time
	log         zerolog.Logger
}

// NewDialer creates a Dialer. A nil httpClient gets a plain client with a
// 10s timeout.
func NewDialer(cfg Config, httpClient HTTPClient, delegations ports.DelegationSigner, sigs ports.SignatureService, log zerolog.Logger) *Dialer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Dialer{
		cfg:         cfg,
		http:        httpClient,
		delegations: delegations,
		sigs:        sigs,
		now:         time.Now,
		log:         log,
	}
}

// Dial returns a client for key. PLAYER clients complete the delegation
// handshake first; anonymous clients are read-only and never handshake.
func (d *Dialer) Dial(ctx context.Context, key domain.HandleKey) (ports.LedgerClient, domain.Capability, error) {
	c := &Client{d: d, key: key}
	if key.Identity != domain.IdentityPlayer {
		return c, domain.CapabilityReadOnly, nil
	}

	delegation, _, err := d.delegations.Mint(key.Purpose, d.cfg.AccountID)
	if err != nil {
		return nil, "", &ports.RemoteError{Kind: ports.RemoteCredential, Op: "handshake", Err: fmt.Errorf("mint delegation: %w", err)}
	}

	var resp HandshakeResponse
	req := HandshakeRequest{AccountID: d.cfg.AccountID, Purpose: key.Purpose}
	if err := c.send(ctx, "handshake", http.MethodPost, PathHandshake, req, &resp, delegation); err != nil {
		return nil, "", err
	}
	if resp.SessionToken == "" {
		return nil, "", &ports.RemoteError{Kind: ports.RemoteCredential, Op: "handshake", Code: CodeCertificateMalformed, Err: errors.New("empty session token")}
	}

	c.session = resp.SessionToken
	capability := resp.Capability
	if capability == "" {
		capability = domain.CapabilityAuthenticated
	}
	d.log.Debug().
		Str("key", key.String()).
		Str("capability", string(capability)).
		Msg("ledger handshake complete")
	return c, capability, nil
}

// Client implements ports.LedgerClient for one identity and purpose.
type Client struct {
	d       *Dialer
	key     domain.HandleKey
	session string
}

func (c *Client) GetBalance(ctx context.Context, accountID string) (domain.FixedPoint, error) {
	var resp BalanceResponse
	if err := c.send(ctx, "balance", http.MethodGet, BalancePath(accountID), nil, &resp, c.session); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

func (c *Client) Debit(ctx context.Context, req ports.DebitRequest) (*domain.LegResult, error) {
	body := DebitBody{
		WagerID:        req.WagerID,
		AccountID:      req.AccountID,
		Amount:         req.Amount,
		Variant:        req.Variant,
		Params:         req.Params,
		ServerSeedHash: req.ServerSeedHash,
	}
	var res domain.LegResult
	if err := c.send(ctx, "debit", http.MethodPost, PathDebits, body, &res, c.session); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetActiveSession returns nil, nil when the ledger holds no open session.
func (c *Client) GetActiveSession(ctx context.Context, accountID string) (*domain.RemoteSession, error) {
	var sess *domain.RemoteSession
	if err := c.send(ctx, "active-session", http.MethodGet, ActiveSessionPath(accountID), nil, &sess, c.session); err != nil {
		return nil, err
	}
	return sess, nil
}

func (c *Client) ApplyAction(ctx context.Context, wagerID uuid.UUID, action domain.PlayerAction) (*domain.RemoteSession, error) {
	var sess domain.RemoteSession
	if err := c.send(ctx, "action", http.MethodPost, ActionPath(wagerID), action, &sess, c.session); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *Client) Credit(ctx context.Context, req ports.CreditRequest) (*domain.LegResult, error) {
	body := CreditBody{
		WagerID:   req.WagerID,
		AccountID: req.AccountID,
		Outcome:   req.Outcome,
		Payout:    req.Payout,
	}
	var res domain.LegResult
	if err := c.send(ctx, "credit", http.MethodPost, PathCredits, body, &res, c.session); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ForceEndSession(ctx context.Context, wagerID uuid.UUID) (string, error) {
	var resp ForceEndResponse
	if err := c.send(ctx, "force-end", http.MethodPost, ForceEndPath(wagerID), nil, &resp, c.session); err != nil {
		return "", err
	}
	return resp.RemoteReference, nil
}

// send performs one request and decodes the envelope's data into out.
func (c *Client) send(ctx context.Context, op, method, path string, in, out interface{}, bearer string) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return &ports.RemoteError{Kind: ports.RemoteUnknown, Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.d.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return &ports.RemoteError{Kind: ports.RemoteUnknown, Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderAccessKey, c.d.cfg.AccessKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if c.key.Identity == domain.IdentityPlayer {
		c.sign(req, method, path, body)
	}

	resp, err := c.d.http.Do(req)
	if err != nil {
		return transportError(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &ports.RemoteError{Kind: ports.RemoteTransient, Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	var env envelope
	// Proxies may answer errors with a non-JSON body; the status still classifies it.
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classify(op, resp.StatusCode, env)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &ports.RemoteError{Kind: ports.RemoteUnknown, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) sign(req *http.Request, method, path string, body []byte) {
	ts := c.d.now().Unix()
	nonce := uuid.NewString()
	canonical := c.d.sigs.BuildCanonicalString(method, path, ts, nonce, string(body))

	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(HeaderNonce, nonce)
	req.Header.Set(HeaderSignature, c.d.sigs.Sign(c.d.cfg.SigningSecret, canonical))
}

// classify maps a non-2xx answer onto a remote error kind.
func classify(op string, status int, env envelope) error {
	msg := env.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	err := fmt.Errorf("status %d: %s", status, msg)

	kind := ports.RemoteRejected
	switch {
	case status >= 500 || status == http.StatusTooManyRequests:
		kind = ports.RemoteTransient
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if slices.Contains(credentialCodes, env.ErrorCode) {
			kind = ports.RemoteCredential
		}
	case status == http.StatusNotFound:
		kind = ports.RemoteNotFound
	}
	return &ports.RemoteError{Kind: kind, Op: op, Code: env.ErrorCode, Err: err}
}

func transportError(op string, err error) error {
	// A caller that gave up cannot tell whether the request was applied.
	if errors.Is(err, context.Canceled) {
		return &ports.RemoteError{Kind: ports.RemoteUnknown, Op: op, Err: err}
	}
	return &ports.RemoteError{Kind: ports.RemoteTransient, Op: op, Err: err}
}
