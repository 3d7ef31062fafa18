package repositories

import (
	"context"
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
)

// TradeReader defines read operations for trade data.
type TradeReader interface {
	FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error)

	// ListTradesByUser returns the user's trades newest-first by entry date.
	ListTradesByUser(ctx context.Context, userID string) ([]domain.Trade, error)

	// ListTradesByUserCreatedBetween returns the user's trades whose creation
	// timestamp falls within the inclusive range. Nil bounds are open; rows are
	// returned in insertion order (creation time ascending, id as tiebreak).
	ListTradesByUserCreatedBetween(ctx context.Context, userID string, start, end *time.Time) ([]domain.Trade, error)
}

// TradeWriter defines write operations for trade data.
type TradeWriter interface {
	SaveTrade(ctx context.Context, trade domain.Trade) error
	UpdateTrade(ctx context.Context, trade domain.Trade) error
	DeleteTrade(ctx context.Context, tradeID string) error
	DeleteTradesByUser(ctx context.Context, userID string) error
}

// TradeRepositoryFacade combines all trade repository interfaces.
type TradeRepositoryFacade interface {
	TradeReader
	TradeWriter
}
