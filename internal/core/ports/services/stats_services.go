package services

import (
	"context"

	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
)

// StatsSvcFacade derives aggregate trading metrics. Snapshots are recomputed in
// full from the closed-trade set on every call; nothing is cached.
type StatsSvcFacade interface {
	// GetStats computes the full statistics snapshot over an optional inclusive
	// creation-date range. Unparsable dates fail with ErrValidation.
	GetStats(ctx context.Context, userID string, startDate, endDate string) (*dto.StatsResponse, error)

	// GetTradeSummary computes the dashboard counters (totals, open/closed,
	// total P&L, win rate).
	GetTradeSummary(ctx context.Context, userID string) (*dto.TradeSummaryResponse, error)
}
