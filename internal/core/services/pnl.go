package services

import (
	"fmt"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeRealizedPnL calculates the realized profit or loss of a closed
// position. Long positions profit when exit exceeds entry, short positions
// profit when exit is below entry, and fees are always subtracted:
//
//	LONG:  (exit - entry) * amount - fees
//	SHORT: (entry - exit) * amount - fees
func ComputeRealizedPnL(tradeType domain.TradeType, entryPrice, exitPrice, amount, fees decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !entryPrice.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: entry price must be positive", apperrors.ErrValidation)
	}

	var gross decimal.Decimal
	switch tradeType {
	case domain.TradeTypeShort:
		gross = entryPrice.Sub(exitPrice).Mul(amount)
	default:
		gross = exitPrice.Sub(entryPrice).Mul(amount)
	}
	return gross.Sub(fees), nil
}
