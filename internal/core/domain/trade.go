package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeType is the direction of a position.
type TradeType string

const (
	TradeTypeLong  TradeType = "LONG"
	TradeTypeShort TradeType = "SHORT"
)

// TradeStatus is the lifecycle state of a trade.
type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "OPEN"
	TradeStatusClosed TradeStatus = "CLOSED"
)

// Trade is one recorded position. PnL and ExitDate are set exactly when the
// trade is closed; reopening a closed trade clears them again. Trade P&L is
// never posted to the owning account's balance.
type Trade struct {
	TradeID    string           `json:"tradeID"`
	UserID     string           `json:"userID"`
	AccountID  string           `json:"accountID"`
	Pair       string           `json:"pair"`
	Type       TradeType        `json:"type"`
	Method     string           `json:"method,omitempty"`
	EntryPrice decimal.Decimal  `json:"entryPrice"`
	ExitPrice  *decimal.Decimal `json:"exitPrice,omitempty"`
	StopLoss   *decimal.Decimal `json:"stopLoss,omitempty"`
	TakeProfit *decimal.Decimal `json:"takeProfit,omitempty"`
	Amount     decimal.Decimal  `json:"amount"`
	Leverage   decimal.Decimal  `json:"leverage"`
	Fees       decimal.Decimal  `json:"fees"`
	Status     TradeStatus      `json:"status"`
	EntryDate  time.Time        `json:"entryDate"`
	ExitDate   *time.Time       `json:"exitDate,omitempty"`
	PnL        *decimal.Decimal `json:"pnl,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	Tags       []string         `json:"tags,omitempty"`
	Screenshot string           `json:"screenshot,omitempty"`
	AuditFields
}
