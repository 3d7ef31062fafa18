package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type StatsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTradeRepository
	service  portssvc.StatsSvcFacade
	userID   string
}

func (suite *StatsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTradeRepository)
	suite.service = services.NewStatsService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

// closedTrade builds a CLOSED trade with the given pnl, created at the given
// time so equity-curve and bucket ordering is deterministic.
func (suite *StatsServiceTestSuite) closedTrade(pnl int64, createdAt time.Time) domain.Trade {
	p := decimal.NewFromInt(pnl)
	exit := decimal.NewFromInt(100)
	return domain.Trade{
		TradeID:    uuid.NewString(),
		UserID:     suite.userID,
		Pair:       "BTC/USDT",
		Type:       domain.TradeTypeLong,
		EntryPrice: decimal.NewFromInt(100),
		ExitPrice:  &exit,
		Amount:     decimal.NewFromInt(1),
		Status:     domain.TradeStatusClosed,
		EntryDate:  createdAt,
		PnL:        &p,
		AuditFields: domain.AuditFields{
			CreatedAt:     createdAt,
			LastUpdatedAt: createdAt,
		},
	}
}

// --- Test Cases ---

func (suite *StatsServiceTestSuite) TestGetStats_NoClosedTrades() {
	ctx := context.Background()

	suite.mockRepo.On("ListTradesByUserCreatedBetween", ctx, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.Trade{}, nil).Once()

	resp, err := suite.service.GetStats(ctx, suite.userID, "", "")

	suite.Require().NoError(err)
	suite.True(resp.WinRate.IsZero())
	suite.True(resp.ProfitFactor.IsZero())
	suite.Zero(resp.WinStreak)
	suite.Empty(resp.EquityCurve)
	suite.NotNil(resp.EquityCurve)
	suite.Empty(resp.ByDay)
	suite.Empty(resp.ByHour)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StatsServiceTestSuite) TestGetStats_InvalidDate() {
	ctx := context.Background()

	resp, err := suite.service.GetStats(ctx, suite.userID, "not-a-date", "")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTradesByUserCreatedBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StatsServiceTestSuite) TestGetStats_AcceptsDateOnlyRange() {
	ctx := context.Background()
	start, _ := time.Parse("2006-01-02", "2026-01-01")
	end, _ := time.Parse("2006-01-02", "2026-02-01")

	suite.mockRepo.On("ListTradesByUserCreatedBetween", ctx, suite.userID, &start, &end).
		Return([]domain.Trade{}, nil).Once()

	_, err := suite.service.GetStats(ctx, suite.userID, "2026-01-01", "2026-02-01")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StatsServiceTestSuite) TestGetStats_Metrics() {
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) // a Monday
	trades := []domain.Trade{
		suite.closedTrade(50, base),
		suite.closedTrade(-20, base.Add(time.Hour)),
		suite.closedTrade(30, base.Add(2*time.Hour)),
	}
	// Open trades are excluded from every statistic.
	open := suite.closedTrade(999, base)
	open.Status = domain.TradeStatusOpen
	open.PnL = nil
	trades = append(trades, open)

	suite.mockRepo.On("ListTradesByUserCreatedBetween", ctx, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(trades, nil).Once()

	resp, err := suite.service.GetStats(ctx, suite.userID, "", "")

	suite.Require().NoError(err)
	suite.Equal("66.67", resp.WinRate.StringFixed(2))
	suite.True(resp.GrossProfit.Equal(decimal.NewFromInt(80)))
	suite.True(resp.GrossLoss.Equal(decimal.NewFromInt(20)))
	suite.True(resp.ProfitFactor.Equal(decimal.NewFromInt(4)))
	suite.True(resp.AvgWin.Equal(decimal.NewFromInt(40)))
	suite.True(resp.AvgLoss.Equal(decimal.NewFromInt(20)))
	suite.Equal(1, resp.WinStreak)
	suite.Equal(1, resp.LossStreak)
	suite.True(resp.TopWin.Equal(decimal.NewFromInt(50)))
	suite.True(resp.TopLoss.Equal(decimal.NewFromInt(-20)))
	suite.True(resp.AvgSize.Equal(decimal.NewFromInt(1)))
	suite.Equal(3, resp.AvgDailyVolume)

	// Cumulative curve in creation order: 50, 30, 60.
	suite.Require().Len(resp.EquityCurve, 3)
	suite.True(resp.EquityCurve[0].Value.Equal(decimal.NewFromInt(50)))
	suite.True(resp.EquityCurve[1].Value.Equal(decimal.NewFromInt(30)))
	suite.True(resp.EquityCurve[2].Value.Equal(decimal.NewFromInt(60)))

	suite.Require().Len(resp.ByDay, 1)
	suite.Equal("Monday", resp.ByDay[0].Day)
	suite.Equal(3, resp.ByDay[0].Trades)
	suite.True(resp.ByDay[0].PnL.Equal(decimal.NewFromInt(60)))
	suite.Equal("0.67", resp.ByDay[0].WinRate.StringFixed(2))

	suite.Require().Len(resp.ByHour, 3)
	suite.Equal(10, resp.ByHour[0].Hour)
	suite.Equal(11, resp.ByHour[1].Hour)
	suite.Equal(12, resp.ByHour[2].Hour)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StatsServiceTestSuite) TestGetStats_ZeroPnLDilutesWinRate() {
	ctx := context.Background()
	base := time.Now()
	trades := []domain.Trade{
		suite.closedTrade(10, base),
		suite.closedTrade(0, base.Add(time.Minute)),
	}

	suite.mockRepo.On("ListTradesByUserCreatedBetween", ctx, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(trades, nil).Once()

	resp, err := suite.service.GetStats(ctx, suite.userID, "", "")

	suite.Require().NoError(err)
	// One win out of two closed trades; the breakeven trade is neither a win
	// nor a loss but still counts in the denominator.
	suite.True(resp.WinRate.Equal(decimal.NewFromInt(50)))
	suite.True(resp.GrossLoss.IsZero())
	suite.True(resp.ProfitFactor.IsZero())
	suite.True(resp.Expectancy.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StatsServiceTestSuite) TestGetStats_StreaksRunOverInsertionOrder() {
	ctx := context.Background()
	base := time.Now()
	trades := []domain.Trade{
		suite.closedTrade(10, base),
		suite.closedTrade(20, base.Add(1*time.Minute)),
		suite.closedTrade(30, base.Add(2*time.Minute)),
		suite.closedTrade(-5, base.Add(3*time.Minute)),
		suite.closedTrade(-5, base.Add(4*time.Minute)),
		suite.closedTrade(40, base.Add(5*time.Minute)),
	}

	suite.mockRepo.On("ListTradesByUserCreatedBetween", ctx, suite.userID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(trades, nil).Once()

	resp, err := suite.service.GetStats(ctx, suite.userID, "", "")

	suite.Require().NoError(err)
	suite.Equal(3, resp.WinStreak)
	suite.Equal(2, resp.LossStreak)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *StatsServiceTestSuite) TestGetTradeSummary() {
	ctx := context.Background()
	base := time.Now()
	openTrade := suite.closedTrade(0, base)
	openTrade.Status = domain.TradeStatusOpen
	openTrade.PnL = nil
	trades := []domain.Trade{
		suite.closedTrade(50, base),
		suite.closedTrade(-20, base.Add(time.Minute)),
		openTrade,
	}

	suite.mockRepo.On("ListTradesByUser", ctx, suite.userID).Return(trades, nil).Once()

	resp, err := suite.service.GetTradeSummary(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(3, resp.TotalTrades)
	suite.Equal(2, resp.ClosedTrades)
	suite.Equal(1, resp.OpenTrades)
	suite.Equal(1, resp.WinningTrades)
	suite.Equal(1, resp.LosingTrades)
	suite.True(resp.TotalPnL.Equal(decimal.NewFromInt(30)))
	suite.True(resp.WinRate.Equal(decimal.NewFromInt(50)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestStatsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}
