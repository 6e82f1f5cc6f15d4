// Package game is a pure simulation of one wager round. It never touches the
// network; randomness comes from an injected RNG.
package game

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
)

// RNG yields uniform integers in [0, n).
type RNG interface {
	Intn(n int) int
}

// SeededRNG derives a reproducible stream from a committed server seed, a
// client seed and a nonce. Block i of the stream is
// HMAC-SHA256(serverSeed, "clientSeed:nonce:i").
type SeededRNG struct {
	serverSeed []byte
	clientSeed string
	nonce      uint64
	cursor     uint64
	buf        []byte
}

// NewSeededRNG returns a stream positioned at its first block.
func NewSeededRNG(serverSeed, clientSeed string, nonce uint64) *SeededRNG {
	return &SeededRNG{
		serverSeed: []byte(serverSeed),
		clientSeed: clientSeed,
		nonce:      nonce,
	}
}

func (r *SeededRNG) next32() uint32 {
	if len(r.buf) < 4 {
		mac := hmac.New(sha256.New, r.serverSeed)
		mac.Write([]byte(r.clientSeed + ":" + strconv.FormatUint(r.nonce, 10) + ":" + strconv.FormatUint(r.cursor, 10)))
		r.buf = mac.Sum(nil)
		r.cursor++
	}
	v := binary.BigEndian.Uint32(r.buf[:4])
	r.buf = r.buf[4:]
	return v
}

// Intn uses rejection sampling so every value in [0, n) is equally likely.
func (r *SeededRNG) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("game: Intn called with n=%d", n))
	}
	const span = uint64(1) << 32
	bound := uint64(n)
	limit := span - span%bound
	for {
		v := uint64(r.next32())
		if v < limit {
			return int(v % bound)
		}
	}
}

// CryptoRNG draws from crypto/rand. Rounds played with it cannot be replayed.
type CryptoRNG struct{}

func (CryptoRNG) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("game: Intn called with n=%d", n))
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("game: reading crypto/rand: %v", err))
	}
	return int(v.Int64())
}

// NewServerSeed returns 32 random bytes, hex encoded.
func NewServerSeed() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating server seed: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashServerSeed is the commitment published before play.
func HashServerSeed(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}

// VerifyCommitment checks a revealed seed against its published hash.
func VerifyCommitment(serverSeed, hash string) bool {
	return hmac.Equal([]byte(HashServerSeed(serverSeed)), []byte(hash))
}
