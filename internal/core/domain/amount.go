package domain

import (
	"github.com/shopspring/decimal"
)

// FixedPoint is an amount in the ledger's smallest integer unit.
type FixedPoint int64

// AmountUnit tags how a raw amount should be read.
type AmountUnit string

const (
	// AmountUnitUnknown means the source did not say; the normalizer falls back
	// to its magnitude heuristic.
	AmountUnitUnknown    AmountUnit = "UNKNOWN"
	AmountUnitDecimal    AmountUnit = "DECIMAL"
	AmountUnitFixedPoint AmountUnit = "FIXED_POINT"
)

// RawAmount is an amount as it arrived from a user or the wire.
type RawAmount struct {
	Value decimal.Decimal `json:"value"`
	Unit  AmountUnit      `json:"unit"`
}

// DecimalAmount tags a human-readable amount (e.g. "1.5").
func DecimalAmount(v decimal.Decimal) RawAmount {
	return RawAmount{Value: v, Unit: AmountUnitDecimal}
}

// FixedPointAmount tags an amount already in ledger units.
func FixedPointAmount(x FixedPoint) RawAmount {
	return RawAmount{Value: decimal.NewFromInt(int64(x)), Unit: AmountUnitFixedPoint}
}

// AmountBounds is an inclusive [Min, Max] range of ledger units.
type AmountBounds struct {
	Min FixedPoint `json:"min"`
	Max FixedPoint `json:"max"`
}

// Contains reports whether x lies inside the bounds.
func (b AmountBounds) Contains(x FixedPoint) bool {
	return x >= b.Min && x <= b.Max
}

// Clamp pulls x into the bounds.
func (b AmountBounds) Clamp(x FixedPoint) FixedPoint {
	if x < b.Min {
		return b.Min
	}
	if x > b.Max {
		return b.Max
	}
	return x
}
