package game

import (
	"fmt"
	"slices"

	"wager-settlement/internal/core/domain"
)

// RevealOutcome describes what a single reveal uncovered.
type RevealOutcome string

const (
	OutcomeSafe         RevealOutcome = "SAFE"
	OutcomeCleared      RevealOutcome = "CLEARED" // last safe cell found
	OutcomeConcealedHit RevealOutcome = "MINE_HIT"
)

// GridSession is one round of the concealment grid. Methods return updated
// copies; a GridSession value is never mutated in place.
type GridSession struct {
	totalCells     int
	concealedCount int
	stake          domain.FixedPoint
	concealed      []int // sorted, fixed at start
	revealed       []int // safe cells in reveal order
	hit            int
	multiplier     Multiplier
	terminal       domain.TerminalState
}

// StartGrid hides concealedCount cells among totalCells using a partial
// Fisher-Yates shuffle.
func StartGrid(totalCells, concealedCount int, stake domain.FixedPoint, rng RNG) (GridSession, error) {
	if err := ValidateGrid(totalCells, concealedCount); err != nil {
		return GridSession{}, err
	}
	if stake <= 0 {
		return GridSession{}, fmt.Errorf("%w: stake must be positive", ErrInvalidParams)
	}

	cells := make([]int, totalCells)
	for i := range cells {
		cells[i] = i
	}
	for i := 0; i < concealedCount; i++ {
		j := i + rng.Intn(totalCells-i)
		cells[i], cells[j] = cells[j], cells[i]
	}
	concealed := slices.Clone(cells[:concealedCount])
	slices.Sort(concealed)

	return GridSession{
		totalCells:     totalCells,
		concealedCount: concealedCount,
		stake:          stake,
		concealed:      concealed,
		hit:            -1,
		multiplier:     One(),
		terminal:       domain.TerminalNone,
	}, nil
}

// ValidateGrid checks 1 <= concealedCount <= totalCells-1.
func ValidateGrid(totalCells, concealedCount int) error {
	if totalCells < 2 {
		return fmt.Errorf("%w: total cells %d < 2", ErrInvalidParams, totalCells)
	}
	if concealedCount < 1 || concealedCount > totalCells-1 {
		return fmt.Errorf("%w: concealed count %d outside [1, %d]", ErrInvalidParams, concealedCount, totalCells-1)
	}
	return nil
}

// GridMultiplier is totalCells / (totalCells - concealedCount - n) after the n-th
// safe reveal. When that denominator is not positive the round has no safe
// cell left to price, and the multiplier is fixed at 2 x totalCells.
func GridMultiplier(totalCells, concealedCount, n int) Multiplier {
	if n == 0 {
		return One()
	}
	den := totalCells - concealedCount - n
	if den <= 0 {
		return Multiplier{Num: 2 * int64(totalCells), Den: 1}
	}
	return Multiplier{Num: int64(totalCells), Den: int64(den)}
}

// Reveal uncovers one cell.
func (s GridSession) Reveal(index int) (GridSession, RevealOutcome, error) {
	if s.terminal != domain.TerminalNone {
		return s, "", fmt.Errorf("%w: round already %s", ErrInvalidIndex, s.terminal)
	}
	if index < 0 || index >= s.totalCells {
		return s, "", fmt.Errorf("%w: %d outside [0, %d)", ErrInvalidIndex, index, s.totalCells)
	}
	if slices.Contains(s.revealed, index) {
		return s, "", fmt.Errorf("%w: %d already revealed", ErrInvalidIndex, index)
	}

	next := s
	if s.isConcealed(index) {
		next.hit = index
		next.terminal = domain.TerminalLost
		return next, OutcomeConcealedHit, nil
	}

	next.revealed = append(slices.Clone(s.revealed), index)
	n := len(next.revealed)
	next.multiplier = GridMultiplier(s.totalCells, s.concealedCount, n)
	if n == s.SafeCells() {
		next.terminal = domain.TerminalWon
		return next, OutcomeCleared, nil
	}
	return next, OutcomeSafe, nil
}

// CashOut ends the round voluntarily. At least one safe reveal is required.
func (s GridSession) CashOut() (GridSession, domain.FixedPoint, error) {
	if s.terminal != domain.TerminalNone {
		return s, 0, fmt.Errorf("%w: round already %s", ErrNotActive, s.terminal)
	}
	if len(s.revealed) == 0 {
		return s, 0, fmt.Errorf("%w: nothing revealed yet", ErrNotActive)
	}
	next := s
	next.terminal = domain.TerminalCashedOut
	return next, next.Payout(), nil
}

// Payout is floor(stake x multiplier) for a won or cashed-out round, else 0.
func (s GridSession) Payout() domain.FixedPoint {
	switch s.terminal {
	case domain.TerminalWon, domain.TerminalCashedOut:
		return s.multiplier.Apply(s.stake)
	default:
		return 0
	}
}

func (s GridSession) isConcealed(index int) bool {
	_, found := slices.BinarySearch(s.concealed, index)
	return found
}

func (s GridSession) TotalCells() int                { return s.totalCells }
func (s GridSession) ConcealedCount() int            { return s.concealedCount }
func (s GridSession) SafeCells() int                 { return s.totalCells - s.concealedCount }
func (s GridSession) Stake() domain.FixedPoint       { return s.stake }
func (s GridSession) Multiplier() Multiplier         { return s.multiplier }
func (s GridSession) Terminal() domain.TerminalState { return s.terminal }
func (s GridSession) Revealed() []int                { return slices.Clone(s.revealed) }
func (s GridSession) IsActive() bool                 { return s.terminal == domain.TerminalNone }

// HitIndex returns the concealed cell that ended a lost round.
func (s GridSession) HitIndex() (int, bool) {
	return s.hit, s.hit >= 0
}

// Concealed returns the hidden cells once the round is over, nil before that.
func (s GridSession) Concealed() []int {
	if s.terminal == domain.TerminalNone {
		return nil
	}
	return slices.Clone(s.concealed)
}

// RestoreGrid rebuilds a session from an externally reported state, such as
// the game authority's view of the round.
func RestoreGrid(totalCells int, stake domain.FixedPoint, concealed, revealed []int, terminal domain.TerminalState) (GridSession, error) {
	if err := ValidateGrid(totalCells, len(concealed)); err != nil {
		return GridSession{}, err
	}
	s := GridSession{
		totalCells:     totalCells,
		concealedCount: len(concealed),
		stake:          stake,
		concealed:      slices.Clone(concealed),
		hit:            -1,
		terminal:       terminal,
	}
	slices.Sort(s.concealed)
	if len(slices.Compact(slices.Clone(s.concealed))) != len(s.concealed) {
		return GridSession{}, fmt.Errorf("%w: duplicate concealed cell", ErrInvalidParams)
	}
	for _, c := range s.concealed {
		if c < 0 || c >= totalCells {
			return GridSession{}, fmt.Errorf("%w: concealed cell %d out of range", ErrInvalidParams, c)
		}
	}

	for _, idx := range revealed {
		if idx < 0 || idx >= totalCells {
			return GridSession{}, fmt.Errorf("%w: revealed cell %d out of range", ErrInvalidParams, idx)
		}
		if s.isConcealed(idx) {
			if terminal != domain.TerminalLost {
				return GridSession{}, fmt.Errorf("%w: concealed cell %d revealed in a %s round", ErrInvalidParams, idx, terminal)
			}
			s.hit = idx
			continue
		}
		if slices.Contains(s.revealed, idx) {
			return GridSession{}, fmt.Errorf("%w: cell %d revealed twice", ErrInvalidParams, idx)
		}
		s.revealed = append(s.revealed, idx)
	}
	s.multiplier = GridMultiplier(totalCells, s.concealedCount, len(s.revealed))
	if terminal == domain.TerminalWon && len(s.revealed) != s.SafeCells() {
		return GridSession{}, fmt.Errorf("%w: won round with %d of %d safe cells", ErrInvalidParams, len(s.revealed), s.SafeCells())
	}
	return s, nil
}

// Uncovered lists every uncovered cell in order, including the cell that
// ended a lost round. This is the view the game authority reports.
func (s GridSession) Uncovered() []int {
	out := slices.Clone(s.revealed)
	if s.hit >= 0 {
		out = append(out, s.hit)
	}
	return out
}

// Adopt replaces the session's state with the game authority's view of the
// round. The authority withholds its concealed cells while a round is in
// play; the local concealed set is then kept, minus any cell the authority
// reports as safe, and topped up with the lowest free cells so the
// multiplier stays consistent with the counts.
func (s GridSession) Adopt(uncovered []int, terminal domain.TerminalState, concealed []int) (GridSession, error) {
	if len(concealed) > 0 {
		return RestoreGrid(s.totalCells, s.stake, concealed, uncovered, terminal)
	}
	if terminal == domain.TerminalLost {
		return GridSession{}, fmt.Errorf("%w: lost round reported without its concealed cells", ErrInvalidParams)
	}

	safe := make(map[int]bool, len(uncovered))
	for _, idx := range uncovered {
		safe[idx] = true
	}
	kept := make([]int, 0, s.concealedCount)
	taken := make(map[int]bool, s.concealedCount)
	for _, c := range s.concealed {
		if !safe[c] {
			kept = append(kept, c)
			taken[c] = true
		}
	}
	for i := 0; len(kept) < s.concealedCount && i < s.totalCells; i++ {
		if !safe[i] && !taken[i] {
			kept = append(kept, i)
			taken[i] = true
		}
	}
	return RestoreGrid(s.totalCells, s.stake, kept, uncovered, terminal)
}
