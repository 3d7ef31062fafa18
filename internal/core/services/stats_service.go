package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portsrepo "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/repositories"
	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/shopspring/decimal"
)

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var oneHundred = decimal.NewFromInt(100)

// statsService implements the StatsSvcFacade interface. Every snapshot is
// recomputed in full from the closed-trade set; nothing is cached or
// incrementally maintained.
type statsService struct {
	BaseService
	tradeRepo portsrepo.TradeRepositoryFacade
}

// NewStatsService creates a new statistics service.
func NewStatsService(repo portsrepo.TradeRepositoryFacade) portssvc.StatsSvcFacade {
	return &statsService{tradeRepo: repo}
}

var _ portssvc.StatsSvcFacade = (*statsService)(nil)

// parseDateParam accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, value)
}

// closedTrades filters to CLOSED trades with a computed pnl, preserving the
// incoming insertion order.
func closedTrades(trades []domain.Trade) []domain.Trade {
	closed := make([]domain.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Status == domain.TradeStatusClosed && t.PnL != nil {
			closed = append(closed, t)
		}
	}
	return closed
}

type bucket struct {
	wins   int
	losses int
	pnl    decimal.Decimal
	trades int
}

func (b *bucket) add(pnl decimal.Decimal) {
	if pnl.IsPositive() {
		b.wins++
	} else {
		b.losses++
	}
	b.pnl = b.pnl.Add(pnl)
	b.trades++
}

// winRate returns the bucket's win fraction in 0..1.
func (b *bucket) winRate() decimal.Decimal {
	total := b.wins + b.losses
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(b.wins)).Div(decimal.NewFromInt(int64(total)))
}

func (s *statsService) GetStats(ctx context.Context, userID string, startDate, endDate string) (*dto.StatsResponse, error) {
	start, err := parseDateParam(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateParam(endDate)
	if err != nil {
		return nil, err
	}

	trades, err := s.tradeRepo.ListTradesByUserCreatedBetween(ctx, userID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to load trades for stats", slog.String("user_id", userID))
		return nil, err
	}

	closed := closedTrades(trades)
	resp := &dto.StatsResponse{
		EquityCurve: []dto.EquityPoint{},
		ByDay:       []dto.DayPerformance{},
		ByHour:      []dto.HourPerformance{},
	}
	if len(closed) == 0 {
		return resp, nil
	}

	var (
		grossProfit, grossLoss      decimal.Decimal
		winCount, lossCount         int
		winStreak, lossStreak       int
		curWinStreak, curLossStreak int
		totalSize                   decimal.Decimal
		topWin, topLoss             decimal.Decimal
	)
	topWin = *closed[0].PnL
	topLoss = *closed[0].PnL
	dayBuckets := map[int]*bucket{}
	hourBuckets := map[int]*bucket{}

	for _, t := range closed {
		pnl := *t.PnL

		// pnl == 0 is neither a win nor a loss, but it still occupies a slot
		// in the denominator of the overall win rate.
		switch {
		case pnl.IsPositive():
			winCount++
			grossProfit = grossProfit.Add(pnl)
		case pnl.IsNegative():
			lossCount++
			grossLoss = grossLoss.Add(pnl.Abs())
		}

		// Streaks run over insertion order; a non-positive pnl breaks the win
		// streak and extends the loss streak.
		if pnl.IsPositive() {
			curWinStreak++
			curLossStreak = 0
		} else {
			curLossStreak++
			curWinStreak = 0
		}
		if curWinStreak > winStreak {
			winStreak = curWinStreak
		}
		if curLossStreak > lossStreak {
			lossStreak = curLossStreak
		}

		if pnl.GreaterThan(topWin) {
			topWin = pnl
		}
		if pnl.LessThan(topLoss) {
			topLoss = pnl
		}
		totalSize = totalSize.Add(t.Amount)

		day := int(t.CreatedAt.Weekday())
		if dayBuckets[day] == nil {
			dayBuckets[day] = &bucket{}
		}
		dayBuckets[day].add(pnl)

		hour := t.CreatedAt.Hour()
		if hourBuckets[hour] == nil {
			hourBuckets[hour] = &bucket{}
		}
		hourBuckets[hour].add(pnl)
	}

	total := decimal.NewFromInt(int64(len(closed)))
	winRate := oneHundred.Mul(decimal.NewFromInt(int64(winCount))).Div(total)

	avgWin := decimal.Zero
	if winCount > 0 {
		avgWin = grossProfit.Div(decimal.NewFromInt(int64(winCount)))
	}
	avgLoss := decimal.Zero
	if lossCount > 0 {
		avgLoss = grossLoss.Div(decimal.NewFromInt(int64(lossCount)))
	}

	// Expectancy is only meaningful when both sides are populated.
	expectancy := decimal.Zero
	if winCount > 0 && lossCount > 0 {
		winFrac := winRate.Div(oneHundred)
		expectancy = winFrac.Mul(avgWin).Sub(decimal.NewFromInt(1).Sub(winFrac).Mul(avgLoss))
	}

	profitFactor := decimal.Zero
	if grossLoss.IsPositive() {
		profitFactor = grossProfit.Div(grossLoss)
	}

	// Equity curve is ordered by creation time, cumulative sum of pnl.
	byDate := make([]domain.Trade, len(closed))
	copy(byDate, closed)
	sort.SliceStable(byDate, func(i, j int) bool {
		return byDate[i].CreatedAt.Before(byDate[j].CreatedAt)
	})
	running := decimal.Zero
	curve := make([]dto.EquityPoint, 0, len(byDate))
	for _, t := range byDate {
		running = running.Add(*t.PnL)
		curve = append(curve, dto.EquityPoint{Date: t.CreatedAt, Value: running.Round(2)})
	}

	byDay := make([]dto.DayPerformance, 0, len(dayBuckets))
	for day := 0; day < 7; day++ {
		b := dayBuckets[day]
		if b == nil {
			continue
		}
		byDay = append(byDay, dto.DayPerformance{
			Day:     dayNames[day],
			WinRate: b.winRate().Round(2),
			PnL:     b.pnl.Round(2),
			Trades:  b.trades,
		})
	}
	byHour := make([]dto.HourPerformance, 0, len(hourBuckets))
	for hour := 0; hour < 24; hour++ {
		b := hourBuckets[hour]
		if b == nil {
			continue
		}
		byHour = append(byHour, dto.HourPerformance{
			Hour:    hour,
			WinRate: b.winRate().Round(2),
			PnL:     b.pnl.Round(2),
			Trades:  b.trades,
		})
	}

	// Rounding happens here at the boundary only, so dependent metrics such as
	// expectancy are computed from unrounded inputs.
	resp.WinRate = winRate.Round(2)
	resp.AvgWin = avgWin.Round(2)
	resp.AvgLoss = avgLoss.Round(2)
	resp.Expectancy = expectancy.Round(2)
	resp.GrossProfit = grossProfit.Round(2)
	resp.GrossLoss = grossLoss.Round(2)
	resp.ProfitFactor = profitFactor.Round(2)
	resp.WinStreak = winStreak
	resp.LossStreak = lossStreak
	resp.TopWin = topWin.Round(2)
	resp.TopLoss = topLoss.Round(2)
	resp.AvgSize = totalSize.Div(total).Round(2)
	resp.AvgDailyVolume = len(closed)
	resp.EquityCurve = curve
	resp.ByDay = byDay
	resp.ByHour = byHour
	return resp, nil
}

func (s *statsService) GetTradeSummary(ctx context.Context, userID string) (*dto.TradeSummaryResponse, error) {
	trades, err := s.tradeRepo.ListTradesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load trades for summary", slog.String("user_id", userID))
		return nil, err
	}

	resp := &dto.TradeSummaryResponse{}
	for _, t := range trades {
		resp.TotalTrades++
		if t.Status != domain.TradeStatusClosed || t.PnL == nil {
			resp.OpenTrades++
			continue
		}
		resp.ClosedTrades++
		resp.TotalPnL = resp.TotalPnL.Add(*t.PnL)
		if t.PnL.IsPositive() {
			resp.WinningTrades++
		} else if t.PnL.IsNegative() {
			resp.LosingTrades++
		}
	}
	if resp.ClosedTrades > 0 {
		resp.WinRate = oneHundred.
			Mul(decimal.NewFromInt(int64(resp.WinningTrades))).
			Div(decimal.NewFromInt(int64(resp.ClosedTrades))).
			Round(2)
	}
	resp.TotalPnL = resp.TotalPnL.Round(2)
	return resp, nil
}
