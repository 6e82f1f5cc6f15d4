package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// MaxClockSkew is how far a signed ledger request's timestamp may drift.
const MaxClockSkew = 5 * time.Minute

// HMACSignatureService implements ports.SignatureService. Every request to
// the remote ledger is signed over its canonical string with the account's
// secret key.
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign returns the lowercase hex HMAC-SHA256 of payload.
func (s *HMACSignatureService) Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time.
func (s *HMACSignatureService) Verify(secretKey string, payload string, signature string) bool {
	expected := s.Sign(secretKey, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// BuildCanonicalString joins METHOD|PATH|TIMESTAMP|NONCE|BODY. The method is
// upper-cased so callers cannot produce two spellings of one request.
func (s *HMACSignatureService) BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string {
	var b strings.Builder
	b.Grow(len(method) + len(path) + len(nonce) + len(body) + 24)
	b.WriteString(strings.ToUpper(method))
	b.WriteByte('|')
	b.WriteString(path)
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(timestamp, 10))
	b.WriteByte('|')
	b.WriteString(nonce)
	b.WriteByte('|')
	b.WriteString(body)
	return b.String()
}

// TimestampFresh reports whether a unix timestamp is within MaxClockSkew of now.
func TimestampFresh(timestamp int64, now time.Time) bool {
	d := now.Sub(time.Unix(timestamp, 0))
	if d < 0 {
		d = -d
	}
	return d <= MaxClockSkew
}
