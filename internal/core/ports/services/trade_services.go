package services

import (
	"context"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
)

// TradeSvcFacade defines operations on recorded trades. UpdateTrade carries the
// close semantics: an update that sets status CLOSED together with an exit
// price computes and stores the realized P&L.
type TradeSvcFacade interface {
	CreateTrade(ctx context.Context, userID string, req dto.CreateTradeRequest) (*domain.Trade, error)
	ListTrades(ctx context.Context, userID string) ([]domain.Trade, error)
	GetTradeByID(ctx context.Context, userID string, tradeID string) (*domain.Trade, error)
	UpdateTrade(ctx context.Context, userID string, tradeID string, req dto.UpdateTradeRequest) (*domain.Trade, error)
	DeleteTrade(ctx context.Context, userID string, tradeID string) error
}
