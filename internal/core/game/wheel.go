package game

import (
	"fmt"
	"slices"

	"wager-settlement/internal/core/domain"
)

// Segment is one slice of the wheel.
type Segment struct {
	MultiplierBps int64 `json:"multiplier_bps"`
	Weight        int64 `json:"weight"`
}

// SegmentCounts are the wheel sizes the engine supports.
var SegmentCounts = []int{10, 20, 30, 40, 50}

// Each block of ten segments repeats this layout. Every layout returns 99% of
// the stake on average; the top segment is hit 1 in 20 spins at LOW and 1 in
// 30 at MEDIUM.
var riskBlocks = map[domain.RiskLevel][]Segment{
	domain.RiskLow: {
		{15000, 2}, {12000, 3}, {0, 2}, {16000, 2}, {20000, 1},
		{12000, 3}, {0, 2}, {15000, 2}, {14000, 1}, {0, 2},
	},
	domain.RiskMedium: {
		{0, 3}, {19000, 4}, {0, 3}, {18000, 3}, {0, 3},
		{20000, 4}, {0, 3}, {19000, 3}, {0, 3}, {30000, 1},
	},
}

// HIGH risk is all zeros of weight highRiskZeroWeight except one segment of
// weight 1, priced so the wheel still returns highRiskEdgeBps.
const (
	highRiskEdgeBps    = 9900
	highRiskZeroWeight = 4
)

// WheelTable builds the segment list for a wheel size and risk level.
func WheelTable(segmentCount int, risk domain.RiskLevel) ([]Segment, error) {
	if !slices.Contains(SegmentCounts, segmentCount) {
		return nil, fmt.Errorf("%w: segment count %d not in %v", ErrInvalidParams, segmentCount, SegmentCounts)
	}

	segments := make([]Segment, segmentCount)
	if risk == domain.RiskHigh {
		for i := range segments {
			segments[i] = Segment{Weight: highRiskZeroWeight}
		}
		total := int64(highRiskZeroWeight*(segmentCount-1) + 1)
		segments[segmentCount-1] = Segment{MultiplierBps: total * highRiskEdgeBps, Weight: 1}
		return segments, nil
	}

	block, ok := riskBlocks[risk]
	if !ok {
		return nil, fmt.Errorf("%w: unknown risk level %q", ErrInvalidParams, risk)
	}
	for i := range segments {
		segments[i] = block[i%len(block)]
	}
	return segments, nil
}

// WheelResult is the outcome of one spin.
type WheelResult struct {
	Position   int               `json:"position"`
	Segment    Segment           `json:"segment"`
	Multiplier Multiplier        `json:"multiplier"`
	Payout     domain.FixedPoint `json:"payout"`
}

// Terminal reports the round's end state: a spin always ends the round.
func (r WheelResult) Terminal() domain.TerminalState {
	if r.Payout > 0 {
		return domain.TerminalWon
	}
	return domain.TerminalLost
}

// Spin selects a segment by cumulative weight. The stake pays out only when the
// landed multiplier reaches thresholdBps.
func Spin(segmentCount int, risk domain.RiskLevel, thresholdBps int64, stake domain.FixedPoint, rng RNG) (WheelResult, error) {
	if stake <= 0 {
		return WheelResult{}, fmt.Errorf("%w: stake must be positive", ErrInvalidParams)
	}
	if thresholdBps < 0 {
		return WheelResult{}, fmt.Errorf("%w: negative threshold", ErrInvalidParams)
	}
	segments, err := WheelTable(segmentCount, risk)
	if err != nil {
		return WheelResult{}, err
	}

	pos := pickSegment(segments, rng)
	return ResultAt(segments, pos, thresholdBps, stake), nil
}

// ResultAt prices a landing position, as reported locally or by the game authority.
func ResultAt(segments []Segment, pos int, thresholdBps int64, stake domain.FixedPoint) WheelResult {
	seg := segments[pos]
	m := FromBps(seg.MultiplierBps)
	res := WheelResult{Position: pos, Segment: seg, Multiplier: m}
	if seg.MultiplierBps > 0 && seg.MultiplierBps >= thresholdBps {
		res.Payout = m.Apply(stake)
	}
	return res
}

func pickSegment(segments []Segment, rng RNG) int {
	var total int64
	for _, s := range segments {
		if s.Weight > 0 {
			total += s.Weight
		}
	}
	idx := int64(rng.Intn(int(total)))
	var cum int64
	for i, s := range segments {
		if s.Weight <= 0 {
			continue
		}
		cum += s.Weight
		if idx < cum {
			return i
		}
	}
	return len(segments) - 1
}
