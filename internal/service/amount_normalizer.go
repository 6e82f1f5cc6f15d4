package service

import (
	"fmt"
	"strings"

	"wager-settlement/internal/core/domain"
	"wager-settlement/pkg/apperror"

	"github.com/shopspring/decimal"
)

// DecimalAmountNormalizer implements ports.AmountNormalizer on shopspring/decimal
// so that no float ever touches a stake.
type DecimalAmountNormalizer struct {
	scale     decimal.Decimal
	threshold decimal.Decimal
	bounds    domain.AmountBounds
}

// NewAmountNormalizer creates a normalizer for a ledger with the given scale
// factor. Integers above scaledThreshold with an UNKNOWN unit are taken as
// already scaled.
func NewAmountNormalizer(scaleFactor int64, bounds domain.AmountBounds, scaledThreshold int64) (*DecimalAmountNormalizer, error) {
	if !isPowerOfTen(scaleFactor) {
		return nil, fmt.Errorf("scale factor must be a positive power of ten, got %d", scaleFactor)
	}
	if bounds.Min <= 0 || bounds.Max < bounds.Min {
		return nil, fmt.Errorf("invalid amount bounds [%d, %d]", bounds.Min, bounds.Max)
	}
	return &DecimalAmountNormalizer{
		scale:     decimal.NewFromInt(scaleFactor),
		threshold: decimal.NewFromInt(scaledThreshold),
		bounds:    bounds,
	}, nil
}

// Normalize converts raw into ledger units, clamped to the configured bounds.
func (n *DecimalAmountNormalizer) Normalize(raw domain.RawAmount) (domain.FixedPoint, error) {
	if !raw.Value.IsPositive() {
		return 0, apperror.ErrInvalidStake("amount must be positive")
	}

	var scaled decimal.Decimal
	switch raw.Unit {
	case domain.AmountUnitDecimal:
		scaled = raw.Value.Mul(n.scale)
	case domain.AmountUnitFixedPoint:
		if !raw.Value.IsInteger() {
			return 0, apperror.ErrInvalidStake("fixed-point amount must be an integer")
		}
		scaled = raw.Value
	case domain.AmountUnitUnknown, "":
		if raw.Value.IsInteger() && raw.Value.GreaterThan(n.threshold) {
			scaled = raw.Value
		} else {
			scaled = raw.Value.Mul(n.scale)
		}
	default:
		return 0, apperror.ErrInvalidStake(fmt.Sprintf("unknown amount unit %q", raw.Unit))
	}

	scaled = scaled.Truncate(0)
	if !scaled.IsPositive() {
		return 0, apperror.ErrInvalidStake("amount is below ledger precision")
	}

	// Compare in decimal before narrowing so huge inputs cannot overflow int64.
	if scaled.GreaterThan(decimal.NewFromInt(int64(n.bounds.Max))) {
		return n.bounds.Max, nil
	}
	return n.bounds.Clamp(domain.FixedPoint(scaled.IntPart())), nil
}

// Denormalize renders x as a DECIMAL-tagged amount.
func (n *DecimalAmountNormalizer) Denormalize(x domain.FixedPoint) domain.RawAmount {
	return domain.DecimalAmount(decimal.NewFromInt(int64(x)).Div(n.scale))
}

// Bounds returns the stake bounds in ledger units.
func (n *DecimalAmountNormalizer) Bounds() domain.AmountBounds {
	return n.bounds
}

// ParseRaw reads user input into a tagged amount.
func ParseRaw(text string, unit domain.AmountUnit) (domain.RawAmount, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return domain.RawAmount{}, apperror.ErrInvalidStake(fmt.Sprintf("not a number: %q", text))
	}
	if unit == "" {
		unit = domain.AmountUnitUnknown
	}
	return domain.RawAmount{Value: v, Unit: unit}, nil
}

// isPowerOfTen reports whether x is 10^k; only then does Denormalize round-trip exactly.
func isPowerOfTen(x int64) bool {
	if x <= 0 {
		return false
	}
	for x%10 == 0 {
		x /= 10
	}
	return x == 1
}
