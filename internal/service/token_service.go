package service

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

// JWTTokenService implements ports.TokenService using HS256 JWT.
// Tokens identify operators allowed to use the admin surface.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewJWTTokenService creates a new JWT token service.
func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate creates a signed JWT for the given operator.
func (s *JWTTokenService) Generate(subject string, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
		"iss":  s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses and validates a JWT token, returning the claims.
func (s *JWTTokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("missing subject claim")
	}

	role, _ := claims["role"].(string)

	return &ports.TokenClaims{
		Subject: sub,
		Role:    role,
	}, nil
}

// DelegationTTL bounds how long a minted delegation may be presented.
const DelegationTTL = 2 * time.Minute

// HKDFDelegationSigner implements ports.DelegationSigner. Each purpose signs
// with its own key derived from the identity secret, so a delegation minted
// for one purpose cannot be replayed for another.
type HKDFDelegationSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewDelegationSigner creates a signer rooted at identitySecret.
func NewDelegationSigner(identitySecret string, ttl time.Duration) (*HKDFDelegationSigner, error) {
	if identitySecret == "" {
		return nil, fmt.Errorf("identity secret is required")
	}
	if ttl <= 0 {
		ttl = DelegationTTL
	}
	return &HKDFDelegationSigner{secret: []byte(identitySecret), ttl: ttl, now: time.Now}, nil
}

// Mint issues a delegation token for accountID scoped to purpose.
func (s *HKDFDelegationSigner) Mint(purpose domain.Purpose, accountID string) (string, time.Time, error) {
	key, err := DerivePurposeKey(s.secret, purpose)
	if err != nil {
		return "", time.Time{}, err
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   accountID,
		Audience:  jwt.ClaimStrings{string(purpose)},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing delegation: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyDelegation checks a delegation token against the key for purpose and
// returns the delegated account id. The fake ledger uses it in its handshake.
func VerifyDelegation(identitySecret string, purpose domain.Purpose, token string) (string, error) {
	key, err := DerivePurposeKey([]byte(identitySecret), purpose)
	if err != nil {
		return "", err
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithAudience(string(purpose)))
	if err != nil {
		return "", fmt.Errorf("parsing delegation: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("delegation has no subject")
	}
	return claims.Subject, nil
}

// DerivePurposeKey expands secret into a 32-byte HMAC key bound to purpose.
func DerivePurposeKey(secret []byte, purpose domain.Purpose) ([]byte, error) {
	r := hkdf.New(sha256.New, secret, nil, []byte("wager-settlement/delegation/"+string(purpose)))
	key := make([]byte, 32)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("deriving %s key: %w", purpose, err)
	}
	return key, nil
}
