package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portsrepo "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/repositories"
	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// tradeService implements the TradeSvcFacade interface. Realized P&L is stored
// on the trade itself and never posted to the owning account's balance.
type tradeService struct {
	BaseService
	tradeRepo portsrepo.TradeRepositoryFacade
	resolver  portssvc.AccountResolverSvc
}

// NewTradeService creates a new trade service.
func NewTradeService(repo portsrepo.TradeRepositoryFacade, resolver portssvc.AccountResolverSvc) portssvc.TradeSvcFacade {
	return &tradeService{tradeRepo: repo, resolver: resolver}
}

var _ portssvc.TradeSvcFacade = (*tradeService)(nil)

func (s *tradeService) CreateTrade(ctx context.Context, userID string, req dto.CreateTradeRequest) (*domain.Trade, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.EntryPrice.IsPositive() {
		return nil, fmt.Errorf("%w: entry price must be positive", apperrors.ErrValidation)
	}

	account, err := s.resolver.ResolveAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}

	leverage := decimal.NewFromInt(1)
	if req.Leverage != nil {
		leverage = *req.Leverage
	}
	fees := decimal.Zero
	if req.Fees != nil {
		fees = *req.Fees
	}

	now := time.Now()
	entryDate := now
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	trade := domain.Trade{
		TradeID:    uuid.NewString(),
		UserID:     userID,
		AccountID:  account.AccountID,
		Pair:       strings.ToUpper(req.Pair),
		Type:       req.Type,
		Method:     req.Method,
		EntryPrice: req.EntryPrice,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
		Amount:     req.Amount,
		Leverage:   leverage,
		Fees:       fees,
		Status:     domain.TradeStatusOpen,
		EntryDate:  entryDate,
		Notes:      req.Notes,
		Tags:       tags,
		Screenshot: req.Screenshot,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.tradeRepo.SaveTrade(ctx, trade); err != nil {
		s.LogError(ctx, err, "Failed to save trade", slog.String("trade_id", trade.TradeID))
		return nil, err
	}

	s.LogInfo(ctx, "Trade recorded",
		slog.String("trade_id", trade.TradeID),
		slog.String("pair", trade.Pair),
		slog.String("account_id", trade.AccountID))
	return &trade, nil
}

func (s *tradeService) ListTrades(ctx context.Context, userID string) ([]domain.Trade, error) {
	trades, err := s.tradeRepo.ListTradesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list trades", slog.String("user_id", userID))
		return nil, err
	}
	if trades == nil {
		trades = []domain.Trade{}
	}
	return trades, nil
}

// getOwnedTrade fetches a trade and verifies ownership.
func (s *tradeService) getOwnedTrade(ctx context.Context, userID, tradeID string) (*domain.Trade, error) {
	trade, err := s.tradeRepo.FindTradeByID(ctx, tradeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find trade", slog.String("trade_id", tradeID))
		}
		return nil, err
	}
	if trade.UserID != userID {
		s.LogDebug(ctx, "Trade ownership mismatch", slog.String("trade_id", tradeID))
		return nil, apperrors.ErrForbidden
	}
	return trade, nil
}

func (s *tradeService) GetTradeByID(ctx context.Context, userID string, tradeID string) (*domain.Trade, error) {
	return s.getOwnedTrade(ctx, userID, tradeID)
}

func (s *tradeService) UpdateTrade(ctx context.Context, userID string, tradeID string, req dto.UpdateTradeRequest) (*domain.Trade, error) {
	trade, err := s.getOwnedTrade(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}

	if req.Pair != nil {
		trade.Pair = strings.ToUpper(*req.Pair)
	}
	if req.Type != nil {
		trade.Type = *req.Type
	}
	if req.Method != nil {
		trade.Method = *req.Method
	}
	if req.EntryPrice != nil {
		if !req.EntryPrice.IsPositive() {
			return nil, fmt.Errorf("%w: entry price must be positive", apperrors.ErrValidation)
		}
		trade.EntryPrice = *req.EntryPrice
	}
	if req.ExitPrice != nil {
		trade.ExitPrice = req.ExitPrice
	}
	if req.StopLoss != nil {
		trade.StopLoss = req.StopLoss
	}
	if req.TakeProfit != nil {
		trade.TakeProfit = req.TakeProfit
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		trade.Amount = *req.Amount
	}
	if req.Leverage != nil {
		trade.Leverage = *req.Leverage
	}
	if req.Fees != nil {
		trade.Fees = *req.Fees
	}
	if req.Notes != nil {
		trade.Notes = *req.Notes
	}
	if req.Tags != nil {
		trade.Tags = req.Tags
	}
	if req.Screenshot != nil {
		trade.Screenshot = *req.Screenshot
	}

	// The close transition requires the update itself to carry both the CLOSED
	// status and an exit price; a stored exit price alone does not close.
	closing := req.Status != nil && *req.Status == domain.TradeStatusClosed && req.ExitPrice != nil
	reopening := req.Status != nil && *req.Status == domain.TradeStatusOpen && trade.Status == domain.TradeStatusClosed

	if closing {
		pnl, err := ComputeRealizedPnL(trade.Type, trade.EntryPrice, *req.ExitPrice, trade.Amount, trade.Fees)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		trade.Status = domain.TradeStatusClosed
		trade.PnL = &pnl
		trade.ExitDate = &now
	} else if reopening {
		trade.Status = domain.TradeStatusOpen
		trade.PnL = nil
		trade.ExitPrice = nil
		trade.ExitDate = nil
	} else if req.Status != nil {
		trade.Status = *req.Status
	}

	trade.LastUpdatedAt = time.Now()

	if err := s.tradeRepo.UpdateTrade(ctx, *trade); err != nil {
		s.LogError(ctx, err, "Failed to update trade", slog.String("trade_id", tradeID))
		return nil, err
	}

	if closing {
		s.LogInfo(ctx, "Trade closed",
			slog.String("trade_id", tradeID),
			slog.String("pnl", trade.PnL.String()))
	} else {
		s.LogInfo(ctx, "Trade updated", slog.String("trade_id", tradeID))
	}
	return trade, nil
}

func (s *tradeService) DeleteTrade(ctx context.Context, userID string, tradeID string) error {
	if _, err := s.getOwnedTrade(ctx, userID, tradeID); err != nil {
		return err
	}

	if err := s.tradeRepo.DeleteTrade(ctx, tradeID); err != nil {
		s.LogError(ctx, err, "Failed to delete trade", slog.String("trade_id", tradeID))
		return err
	}

	s.LogInfo(ctx, "Trade deleted", slog.String("trade_id", tradeID))
	return nil
}
