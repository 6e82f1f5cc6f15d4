package game

import (
	"fmt"

	"wager-settlement/internal/core/domain"
)

// VerifyGrid recomputes the concealed cells of a resolved grid round from its
// revealed server seed.
func VerifyGrid(serverSeed, clientSeed string, nonce uint64, totalCells, concealedCount int) ([]int, error) {
	s, err := StartGrid(totalCells, concealedCount, 1, NewSeededRNG(serverSeed, clientSeed, nonce))
	if err != nil {
		return nil, err
	}
	return s.concealed, nil
}

// VerifySpin recomputes the landing position of a resolved wheel round.
func VerifySpin(serverSeed, clientSeed string, nonce uint64, segmentCount int, risk domain.RiskLevel) (WheelResult, error) {
	return Spin(segmentCount, risk, 0, 1, NewSeededRNG(serverSeed, clientSeed, nonce))
}

// Round describes a resolved round to audit.
type Round struct {
	Variant        domain.GameVariant `json:"variant"`
	Params         domain.GameParams  `json:"params"`
	ServerSeed     string             `json:"server_seed"`
	ServerSeedHash string             `json:"server_seed_hash"`
	ClientSeed     string             `json:"client_seed"`
	Nonce          uint64             `json:"nonce"`
}

// Audit is the recomputed outcome of a round.
type Audit struct {
	CommitmentValid bool  `json:"commitment_valid"`
	Concealed       []int `json:"concealed,omitempty"`
	Position        *int  `json:"position,omitempty"`
	MultiplierBps   int64 `json:"multiplier_bps,omitempty"`
}

// AuditRound checks the seed commitment and replays the round's randomness.
func AuditRound(r Round) (Audit, error) {
	a := Audit{CommitmentValid: VerifyCommitment(r.ServerSeed, r.ServerSeedHash)}
	switch r.Variant {
	case domain.GameVariantConcealmentGrid:
		concealed, err := VerifyGrid(r.ServerSeed, r.ClientSeed, r.Nonce, r.Params.TotalCells, r.Params.ConcealedCount)
		if err != nil {
			return a, err
		}
		a.Concealed = concealed
	case domain.GameVariantWheel:
		res, err := VerifySpin(r.ServerSeed, r.ClientSeed, r.Nonce, r.Params.SegmentCount, r.Params.Risk)
		if err != nil {
			return a, err
		}
		pos := res.Position
		a.Position = &pos
		a.MultiplierBps = res.Segment.MultiplierBps
	default:
		return a, fmt.Errorf("%w: unknown variant %q", ErrInvalidParams, r.Variant)
	}
	return a, nil
}
