package dto

import (
	"testing"

	"wager-settlement/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// --- Custom Validator tests ---

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"seed-001",
		"SEED_002",
		"a.b.c",
		"simple123",
		"ABC-def_GHI.123",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"seed 001",    // space
		"seed<001>",   // angle brackets
		"seed;DROP",   // semicolon
		"",            // empty
		"hello world", // space
		"seed\n001",   // newline
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want string
	}{
		{"1.5", true, "1.5"},
		{" 100 ", true, "100"},
		{"0.00000001", true, "0.00000001"},
		{"0", false, ""},
		{"-1", false, ""},
		{"+1", false, ""},
		{"1e3", false, ""},
		{"abc", false, ""},
		{"", false, ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			d, ok := parseAmount(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, d.Equal(decimal.RequireFromString(tc.want)))
			}
		})
	}
}

func TestPlaceWagerRequest_Binding(t *testing.T) {
	valid := PlaceWagerRequest{
		Stake:   "2.5",
		Variant: "CONCEALMENT_GRID",
		Params:  GameParams{TotalCells: 25, ConcealedCount: 3},
	}
	assert.NoError(t, binding.Validator.ValidateStruct(&valid))

	bad := []PlaceWagerRequest{
		{Stake: "", Variant: "WHEEL"},
		{Stake: "1", Variant: "ROULETTE"},
		{Stake: "1e2", Variant: "WHEEL"},
		{Stake: "1", Variant: "WHEEL", Params: GameParams{Risk: "EXTREME"}},
		{Stake: "1", Variant: "WHEEL", ClientSeed: "bad seed"},
		{Stake: "1", Variant: "WHEEL", StakeUnit: "CENTS"},
	}
	for i, req := range bad {
		req := req
		assert.Error(t, binding.Validator.ValidateStruct(&req), "case %d", i)
	}
}

func TestPlaceWagerRequest_RawStake(t *testing.T) {
	req := PlaceWagerRequest{Stake: "1.25"}
	raw := req.RawStake()
	assert.Equal(t, domain.AmountUnitDecimal, raw.Unit)
	assert.True(t, raw.Value.Equal(decimal.RequireFromString("1.25")))

	req = PlaceWagerRequest{Stake: "125", StakeUnit: "FIXED_POINT"}
	assert.Equal(t, domain.AmountUnitFixedPoint, req.RawStake().Unit)
}

func TestPlayerActionRequest_DomainAction(t *testing.T) {
	idx := 7
	a := PlayerActionRequest{Kind: "REVEAL", Index: &idx}.DomainAction()
	assert.Equal(t, domain.PlayerAction{Kind: domain.PlayerActionReveal, Index: 7}, a)

	spin := PlayerActionRequest{Kind: "SPIN"}.DomainAction()
	assert.Equal(t, domain.PlayerActionSpin, spin.Kind)
	assert.Zero(t, spin.Index)
}
