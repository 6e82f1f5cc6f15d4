package game

import (
	"strconv"

	"wager-settlement/internal/core/domain"

	"github.com/shopspring/decimal"
)

// BasisPoints is the denominator for multipliers expressed in basis points.
const BasisPoints = 10_000

// Multiplier is an exact payout factor Num/Den.
type Multiplier struct {
	Num int64 `json:"num"`
	Den int64 `json:"den"`
}

// One is the multiplier of a round before any reveal.
func One() Multiplier { return Multiplier{Num: 1, Den: 1} }

// FromBps builds a multiplier from basis points.
func FromBps(bps int64) Multiplier { return Multiplier{Num: bps, Den: BasisPoints} }

func (m Multiplier) Float64() float64 {
	if m.Den == 0 {
		return 0
	}
	f, _ := decimal.NewFromInt(m.Num).DivRound(decimal.NewFromInt(m.Den), 8).Float64()
	return f
}

func (m Multiplier) String() string {
	return strconv.FormatInt(m.Num, 10) + "/" + strconv.FormatInt(m.Den, 10)
}

// Cmp compares two multipliers by value.
func (m Multiplier) Cmp(o Multiplier) int {
	l := decimal.NewFromInt(m.Num).Mul(decimal.NewFromInt(o.Den))
	r := decimal.NewFromInt(o.Num).Mul(decimal.NewFromInt(m.Den))
	return l.Cmp(r)
}

// Bps truncates the multiplier to basis points.
func (m Multiplier) Bps() int64 {
	if m.Den == 0 {
		return 0
	}
	q, _ := decimal.NewFromInt(m.Num).Mul(decimal.NewFromInt(BasisPoints)).QuoRem(decimal.NewFromInt(m.Den), 0)
	return q.IntPart()
}

// Apply returns floor(stake * Num / Den) in ledger units.
func (m Multiplier) Apply(stake domain.FixedPoint) domain.FixedPoint {
	if m.Den == 0 || stake <= 0 || m.Num <= 0 {
		return 0
	}
	q, _ := decimal.NewFromInt(int64(stake)).Mul(decimal.NewFromInt(m.Num)).QuoRem(decimal.NewFromInt(m.Den), 0)
	return domain.FixedPoint(q.IntPart())
}
