package dto

import (
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTradeRequest defines the data needed to record a new trade. The trade
// always starts OPEN; closing goes through UpdateTradeRequest.
type CreateTradeRequest struct {
	AccountID  string           `json:"account"` // Optional, resolved via selection policy
	Pair       string           `json:"pair" binding:"required,min=2"`
	Type       domain.TradeType `json:"type" binding:"required,oneof=LONG SHORT"`
	Method     string           `json:"method"`
	EntryPrice decimal.Decimal  `json:"entryPrice" binding:"required"`
	StopLoss   *decimal.Decimal `json:"stopLoss"`
	TakeProfit *decimal.Decimal `json:"takeProfit"`
	Amount     decimal.Decimal  `json:"amount" binding:"required"`
	Leverage   *decimal.Decimal `json:"leverage"`
	Fees       *decimal.Decimal `json:"fees"`
	EntryDate  *time.Time       `json:"entryDate"` // Optional, defaults to now
	Notes      string           `json:"notes"`
	Tags       []string         `json:"tags"`
	Screenshot string           `json:"screenshot"`
}

// UpdateTradeRequest defines a partial trade update. Setting Status to CLOSED
// together with an ExitPrice triggers P&L computation; setting it back to OPEN
// clears the realized fields.
type UpdateTradeRequest struct {
	Pair       *string             `json:"pair" binding:"omitempty,min=2"`
	Type       *domain.TradeType   `json:"type" binding:"omitempty,oneof=LONG SHORT"`
	Method     *string             `json:"method"`
	EntryPrice *decimal.Decimal    `json:"entryPrice"`
	ExitPrice  *decimal.Decimal    `json:"exitPrice"`
	StopLoss   *decimal.Decimal    `json:"stopLoss"`
	TakeProfit *decimal.Decimal    `json:"takeProfit"`
	Amount     *decimal.Decimal    `json:"amount"`
	Leverage   *decimal.Decimal    `json:"leverage"`
	Fees       *decimal.Decimal    `json:"fees"`
	Status     *domain.TradeStatus `json:"status" binding:"omitempty,oneof=OPEN CLOSED"`
	Notes      *string             `json:"notes"`
	Tags       []string            `json:"tags"`
	Screenshot *string             `json:"screenshot"`
}

// TradeResponse defines the data returned for a trade.
type TradeResponse struct {
	TradeID    string             `json:"tradeID"`
	AccountID  string             `json:"account"`
	Pair       string             `json:"pair"`
	Type       domain.TradeType   `json:"type"`
	Method     string             `json:"method,omitempty"`
	EntryPrice decimal.Decimal    `json:"entryPrice"`
	ExitPrice  *decimal.Decimal   `json:"exitPrice,omitempty"`
	StopLoss   *decimal.Decimal   `json:"stopLoss,omitempty"`
	TakeProfit *decimal.Decimal   `json:"takeProfit,omitempty"`
	Amount     decimal.Decimal    `json:"amount"`
	Leverage   decimal.Decimal    `json:"leverage"`
	Fees       decimal.Decimal    `json:"fees"`
	Status     domain.TradeStatus `json:"status"`
	EntryDate  time.Time          `json:"entryDate"`
	ExitDate   *time.Time         `json:"exitDate,omitempty"`
	PnL        *decimal.Decimal   `json:"pnl,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	Tags       []string           `json:"tags,omitempty"`
	Screenshot string             `json:"screenshot,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// ToTradeResponse converts a domain.Trade to its response DTO.
func ToTradeResponse(t *domain.Trade) TradeResponse {
	return TradeResponse{
		TradeID:    t.TradeID,
		AccountID:  t.AccountID,
		Pair:       t.Pair,
		Type:       t.Type,
		Method:     t.Method,
		EntryPrice: t.EntryPrice,
		ExitPrice:  t.ExitPrice,
		StopLoss:   t.StopLoss,
		TakeProfit: t.TakeProfit,
		Amount:     t.Amount,
		Leverage:   t.Leverage,
		Fees:       t.Fees,
		Status:     t.Status,
		EntryDate:  t.EntryDate,
		ExitDate:   t.ExitDate,
		PnL:        t.PnL,
		Notes:      t.Notes,
		Tags:       t.Tags,
		Screenshot: t.Screenshot,
		CreatedAt:  t.CreatedAt,
	}
}

// ToListTradeResponse converts a slice of trades to response DTOs.
func ToListTradeResponse(trades []domain.Trade) []TradeResponse {
	res := make([]TradeResponse, len(trades))
	for i := range trades {
		res[i] = ToTradeResponse(&trades[i])
	}
	return res
}
