package dto

import (
	"regexp"
	"strings"

	"wager-settlement/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("decimal_amount", validateDecimalAmount)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validateDecimalAmount accepts a plain positive decimal such as "1.25".
// Exponents and signs are refused so the stake reads the same everywhere.
func validateDecimalAmount(fl validator.FieldLevel) bool {
	_, ok := parseAmount(fl.Field().String())
	return ok
}

func parseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, "eE+-") {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// RawStake converts the validated stake into the normalizer's input.
func (r PlaceWagerRequest) RawStake() domain.RawAmount {
	d, _ := parseAmount(r.Stake)
	unit := domain.AmountUnit(r.StakeUnit)
	if unit == "" {
		unit = domain.AmountUnitDecimal
	}
	return domain.RawAmount{Value: d, Unit: unit}
}

// DomainParams maps the request parameters onto the engine's.
func (p GameParams) DomainParams() domain.GameParams {
	return domain.GameParams{
		TotalCells:     p.TotalCells,
		ConcealedCount: p.ConcealedCount,
		SegmentCount:   p.SegmentCount,
		Risk:           domain.RiskLevel(p.Risk),
		ThresholdBps:   p.ThresholdBps,
	}
}

// DomainAction maps the request onto a player action.
func (r PlayerActionRequest) DomainAction() domain.PlayerAction {
	a := domain.PlayerAction{Kind: domain.PlayerActionKind(r.Kind)}
	if r.Index != nil {
		a.Index = *r.Index
	}
	return a
}
