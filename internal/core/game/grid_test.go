package game

import (
	"slices"
	"testing"

	"wager-settlement/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRNG replays fixed draws, each reduced modulo n.
type scriptedRNG struct {
	draws []int
	i     int
}

func (r *scriptedRNG) Intn(n int) int {
	v := r.draws[r.i%len(r.draws)]
	r.i++
	return v % n
}

func safeCells(s GridSession) []int {
	var out []int
	for i := 0; i < s.totalCells; i++ {
		if !s.isConcealed(i) {
			out = append(out, i)
		}
	}
	return out
}

func TestStartGrid_ConcealedSetProperties(t *testing.T) {
	for total := 2; total <= 30; total++ {
		for concealed := 1; concealed < total; concealed++ {
			rng := NewSeededRNG("server-seed", "client-seed", uint64(total*100+concealed))
			s, err := StartGrid(total, concealed, 100, rng)
			require.NoError(t, err)

			set := s.concealed
			assert.Len(t, set, concealed)
			assert.True(t, slices.IsSorted(set))
			assert.Len(t, slices.Compact(slices.Clone(set)), concealed, "indices must be unique")
			for _, idx := range set {
				assert.GreaterOrEqual(t, idx, 0)
				assert.Less(t, idx, total)
			}
			assert.Empty(t, s.Revealed())
			assert.Equal(t, One(), s.Multiplier())
			assert.Equal(t, domain.TerminalNone, s.Terminal())
			assert.Nil(t, s.Concealed(), "concealed set hidden while in play")
		}
	}
}

func TestStartGrid_InvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		concealed int
		stake     domain.FixedPoint
	}{
		{"single cell", 1, 1, 100},
		{"zero concealed", 25, 0, 100},
		{"all concealed", 25, 25, 100},
		{"more concealed than cells", 25, 30, 100},
		{"zero stake", 25, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := StartGrid(tt.total, tt.concealed, tt.stake, CryptoRNG{})
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestReveal_MultiplierFormula(t *testing.T) {
	s, err := StartGrid(25, 5, 100, NewSeededRNG("a", "b", 1))
	require.NoError(t, err)
	safe := safeCells(s)

	s, outcome, err := s.Reveal(safe[0])
	require.NoError(t, err)
	assert.Equal(t, OutcomeSafe, outcome)
	assert.Equal(t, Multiplier{Num: 25, Den: 19}, s.Multiplier())
	assert.InDelta(t, 1.3158, s.Multiplier().Float64(), 0.0001)

	s, _, err = s.Reveal(safe[1])
	require.NoError(t, err)
	assert.Equal(t, Multiplier{Num: 25, Den: 18}, s.Multiplier())
	assert.InDelta(t, 1.3889, s.Multiplier().Float64(), 0.0001)
}

func TestReveal_MultiplierStrictlyIncreasesToWin(t *testing.T) {
	configs := [][2]int{{25, 5}, {25, 1}, {9, 3}, {2, 1}, {10, 8}}
	for _, cfg := range configs {
		total, concealed := cfg[0], cfg[1]
		s, err := StartGrid(total, concealed, 1_000, NewSeededRNG("seed", "client", 7))
		require.NoError(t, err)

		prev := s.Multiplier()
		safe := safeCells(s)
		for n, idx := range safe {
			var outcome RevealOutcome
			s, outcome, err = s.Reveal(idx)
			require.NoError(t, err)
			assert.Equal(t, 1, s.Multiplier().Cmp(prev), "multiplier must grow on reveal %d of %v", n+1, cfg)
			assert.Equal(t, GridMultiplier(total, concealed, n+1), s.Multiplier())
			prev = s.Multiplier()
			if n == len(safe)-1 {
				assert.Equal(t, OutcomeCleared, outcome)
			}
		}
		assert.Equal(t, domain.TerminalWon, s.Terminal())
		assert.Equal(t, s.Multiplier().Apply(1_000), s.Payout())
	}
}

func TestReveal_DegenerateSingleSafeCell(t *testing.T) {
	s, err := StartGrid(25, 24, 100, NewSeededRNG("x", "y", 3))
	require.NoError(t, err)
	safe := safeCells(s)
	require.Len(t, safe, 1)

	s, outcome, err := s.Reveal(safe[0])
	require.NoError(t, err)
	assert.Equal(t, OutcomeCleared, outcome)
	assert.Equal(t, domain.TerminalWon, s.Terminal())
	assert.Equal(t, Multiplier{Num: 50, Den: 1}, s.Multiplier())
	assert.Equal(t, domain.FixedPoint(5000), s.Payout())
}

func TestReveal_ConcealedHitEndsRound(t *testing.T) {
	s, err := StartGrid(25, 5, 100, NewSeededRNG("a", "b", 2))
	require.NoError(t, err)
	safe := safeCells(s)
	hidden := s.concealed[0]

	s, _, err = s.Reveal(safe[0])
	require.NoError(t, err)

	lost, outcome, err := s.Reveal(hidden)
	require.NoError(t, err)
	assert.Equal(t, OutcomeConcealedHit, outcome)
	assert.Equal(t, domain.TerminalLost, lost.Terminal())
	assert.Equal(t, domain.FixedPoint(0), lost.Payout())
	assert.Len(t, lost.Concealed(), 5, "full concealed set becomes visible")
	hit, ok := lost.HitIndex()
	assert.True(t, ok)
	assert.Equal(t, hidden, hit)

	_, _, err = lost.Reveal(safe[1])
	assert.ErrorIs(t, err, ErrInvalidIndex)

	// The pre-hit value is untouched.
	assert.Equal(t, domain.TerminalNone, s.Terminal())
}

func TestReveal_InvalidIndex(t *testing.T) {
	s, err := StartGrid(25, 5, 100, NewSeededRNG("a", "b", 4))
	require.NoError(t, err)
	safe := safeCells(s)
	s, _, err = s.Reveal(safe[0])
	require.NoError(t, err)

	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"too large", 25},
		{"already revealed", safe[0]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Reveal(tt.index)
			assert.ErrorIs(t, err, ErrInvalidIndex)
		})
	}
}

func TestCashOut(t *testing.T) {
	s, err := StartGrid(25, 5, 1_000_000, NewSeededRNG("a", "b", 5))
	require.NoError(t, err)

	_, _, err = s.CashOut()
	assert.ErrorIs(t, err, ErrNotActive, "cash-out with no reveals is rejected")

	s, _, err = s.Reveal(safeCells(s)[0])
	require.NoError(t, err)

	done, payout, err := s.CashOut()
	require.NoError(t, err)
	assert.Equal(t, domain.TerminalCashedOut, done.Terminal())
	assert.Equal(t, domain.FixedPoint(1_315_789), payout, "floor(1e6 * 25 / 19)")
	assert.Equal(t, payout, done.Payout())

	_, _, err = done.CashOut()
	assert.ErrorIs(t, err, ErrNotActive)
	_, _, err = done.Reveal(safeCells(s)[1])
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestStartGrid_PartialFisherYates(t *testing.T) {
	// Draws of 0 keep each position in place: the first k cells are concealed.
	s, err := StartGrid(10, 3, 10, &scriptedRNG{draws: []int{0}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, s.concealed)
}

func TestRestoreGrid(t *testing.T) {
	s, err := RestoreGrid(9, 100, []int{2, 5}, []int{0, 1, 3}, domain.TerminalNone)
	require.NoError(t, err)
	assert.Equal(t, Multiplier{Num: 9, Den: 4}, s.Multiplier())
	assert.Equal(t, []int{0, 1, 3}, s.Revealed())

	lost, err := RestoreGrid(9, 100, []int{2, 5}, []int{0, 5}, domain.TerminalLost)
	require.NoError(t, err)
	hit, ok := lost.HitIndex()
	assert.True(t, ok)
	assert.Equal(t, 5, hit)

	_, err = RestoreGrid(9, 100, []int{2, 5}, []int{2}, domain.TerminalNone)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = RestoreGrid(9, 100, []int{2, 2}, nil, domain.TerminalNone)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = RestoreGrid(9, 100, []int{2, 5}, []int{0}, domain.TerminalWon)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestAdopt_AuthorityReportsLossWithConcealed(t *testing.T) {
	s, err := StartGrid(9, 2, 100, NewSeededRNG("s", "c", 1))
	require.NoError(t, err)
	safe := safeCells(s)

	local, _, err := s.Reveal(safe[0])
	require.NoError(t, err)
	require.True(t, local.IsActive())

	// The authority says the same cell was a concealed one.
	remoteConcealed := []int{safe[0], safe[1]}
	adopted, err := s.Adopt([]int{safe[0]}, domain.TerminalLost, remoteConcealed)
	require.NoError(t, err)

	assert.Equal(t, domain.TerminalLost, adopted.Terminal())
	hit, ok := adopted.HitIndex()
	require.True(t, ok)
	assert.Equal(t, safe[0], hit)
	assert.Equal(t, domain.FixedPoint(0), adopted.Payout())
	assert.Equal(t, []int{safe[0]}, adopted.Uncovered())
}

func TestAdopt_AuthorityReportsSafeWhereLocalHit(t *testing.T) {
	s, err := StartGrid(9, 2, 100, NewSeededRNG("s", "c", 2))
	require.NoError(t, err)
	mine := s.concealed[0]

	local, outcome, err := s.Reveal(mine)
	require.NoError(t, err)
	require.Equal(t, OutcomeConcealedHit, outcome)
	require.Equal(t, domain.TerminalLost, local.Terminal())

	adopted, err := s.Adopt([]int{mine}, domain.TerminalNone, nil)
	require.NoError(t, err)

	assert.True(t, adopted.IsActive())
	assert.Equal(t, []int{mine}, adopted.Revealed())
	assert.Equal(t, 2, adopted.ConcealedCount())
	assert.Equal(t, 0, GridMultiplier(9, 2, 1).Cmp(adopted.Multiplier()))
	assert.False(t, adopted.isConcealed(mine))
}

func TestAdopt_LostWithoutConcealedRejected(t *testing.T) {
	s, err := StartGrid(9, 2, 100, NewSeededRNG("s", "c", 3))
	require.NoError(t, err)

	_, err = s.Adopt([]int{0}, domain.TerminalLost, nil)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestUncovered_IncludesHit(t *testing.T) {
	s, err := StartGrid(5, 1, 100, NewSeededRNG("s", "c", 4))
	require.NoError(t, err)
	safe := safeCells(s)

	s, _, err = s.Reveal(safe[0])
	require.NoError(t, err)
	s, _, err = s.Reveal(s.concealed[0])
	require.NoError(t, err)

	assert.Equal(t, []int{safe[0], s.concealed[0]}, s.Uncovered())
}
