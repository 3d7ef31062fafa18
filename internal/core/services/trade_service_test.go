package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTradeRepository is a mock type for the TradeRepositoryFacade interface
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) ListTradesByUser(ctx context.Context, userID string) ([]domain.Trade, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) ListTradesByUserCreatedBetween(ctx context.Context, userID string, start, end *time.Time) ([]domain.Trade, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) SaveTrade(ctx context.Context, trade domain.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) UpdateTrade(ctx context.Context, trade domain.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) DeleteTrade(ctx context.Context, tradeID string) error {
	args := m.Called(ctx, tradeID)
	return args.Error(0)
}

func (m *MockTradeRepository) DeleteTradesByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAccountResolver is a mock type for the AccountResolverSvc interface
type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) ResolveAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Test Suite Setup ---

type TradeServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockTradeRepository
	mockResolver *MockAccountResolver
	service      portssvc.TradeSvcFacade
	userID       string
	accountID    string
}

func (suite *TradeServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTradeRepository)
	suite.mockResolver = new(MockAccountResolver)
	suite.service = services.NewTradeService(suite.mockRepo, suite.mockResolver)
	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
}

func (suite *TradeServiceTestSuite) openTrade() *domain.Trade {
	now := time.Now()
	return &domain.Trade{
		TradeID:    uuid.NewString(),
		UserID:     suite.userID,
		AccountID:  suite.accountID,
		Pair:       "BTC/USDT",
		Type:       domain.TradeTypeLong,
		EntryPrice: decimal.NewFromInt(100),
		Amount:     decimal.NewFromInt(2),
		Leverage:   decimal.NewFromInt(1),
		Fees:       decimal.NewFromInt(5),
		Status:     domain.TradeStatusOpen,
		EntryDate:  now,
		Tags:       []string{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}

// --- Test Cases ---

func (suite *TradeServiceTestSuite) TestCreateTrade_StartsOpenWithDefaults() {
	ctx := context.Background()
	account := &domain.Account{AccountID: suite.accountID, UserID: suite.userID}
	req := dto.CreateTradeRequest{
		Pair:       "btc/usdt",
		Type:       domain.TradeTypeLong,
		EntryPrice: decimal.NewFromInt(100),
		Amount:     decimal.NewFromInt(2),
	}

	suite.mockResolver.On("ResolveAccount", ctx, suite.userID, "").Return(account, nil).Once()
	suite.mockRepo.On("SaveTrade", ctx, mock.AnythingOfType("domain.Trade")).Return(nil).Once()

	created, err := suite.service.CreateTrade(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("BTC/USDT", created.Pair)
	suite.Equal(domain.TradeStatusOpen, created.Status)
	suite.Equal(suite.accountID, created.AccountID)
	suite.True(created.Leverage.Equal(decimal.NewFromInt(1)))
	suite.True(created.Fees.IsZero())
	suite.Nil(created.PnL)
	suite.Nil(created.ExitDate)
	suite.NotNil(created.Tags)
	suite.WithinDuration(time.Now(), created.EntryDate, time.Second)

	suite.mockResolver.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestCreateTrade_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTradeRequest{
		Pair:       "BTC/USDT",
		Type:       domain.TradeTypeLong,
		EntryPrice: decimal.NewFromInt(100),
		Amount:     decimal.Zero,
	}

	created, err := suite.service.CreateTrade(ctx, suite.userID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockResolver.AssertNotCalled(suite.T(), "ResolveAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestUpdateTrade_CloseComputesPnL() {
	ctx := context.Background()
	trade := suite.openTrade()
	exit := decimal.NewFromInt(120)
	closed := domain.TradeStatusClosed

	suite.mockRepo.On("FindTradeByID", ctx, trade.TradeID).Return(trade, nil).Once()
	suite.mockRepo.On("UpdateTrade", ctx, mock.AnythingOfType("domain.Trade")).Return(nil).Once()

	updated, err := suite.service.UpdateTrade(ctx, suite.userID, trade.TradeID, dto.UpdateTradeRequest{
		Status:    &closed,
		ExitPrice: &exit,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.TradeStatusClosed, updated.Status)
	suite.Require().NotNil(updated.PnL)
	// (120 - 100) * 2 - 5
	suite.True(updated.PnL.Equal(decimal.NewFromInt(35)))
	suite.Require().NotNil(updated.ExitDate)
	suite.WithinDuration(time.Now(), *updated.ExitDate, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestUpdateTrade_ShortCloseComputesPnL() {
	ctx := context.Background()
	trade := suite.openTrade()
	trade.Type = domain.TradeTypeShort
	exit := decimal.NewFromInt(120)
	closed := domain.TradeStatusClosed

	suite.mockRepo.On("FindTradeByID", ctx, trade.TradeID).Return(trade, nil).Once()
	suite.mockRepo.On("UpdateTrade", ctx, mock.AnythingOfType("domain.Trade")).Return(nil).Once()

	updated, err := suite.service.UpdateTrade(ctx, suite.userID, trade.TradeID, dto.UpdateTradeRequest{
		Status:    &closed,
		ExitPrice: &exit,
	})

	suite.Require().NoError(err)
	// (100 - 120) * 2 - 5
	suite.Require().NotNil(updated.PnL)
	suite.True(updated.PnL.Equal(decimal.NewFromInt(-45)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestUpdateTrade_ExitPriceAloneDoesNotClose() {
	ctx := context.Background()
	trade := suite.openTrade()
	exit := decimal.NewFromInt(120)

	suite.mockRepo.On("FindTradeByID", ctx, trade.TradeID).Return(trade, nil).Once()
	suite.mockRepo.On("UpdateTrade", ctx, mock.AnythingOfType("domain.Trade")).Return(nil).Once()

	updated, err := suite.service.UpdateTrade(ctx, suite.userID, trade.TradeID, dto.UpdateTradeRequest{
		ExitPrice: &exit,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.TradeStatusOpen, updated.Status)
	suite.Nil(updated.PnL)
	suite.Nil(updated.ExitDate)
	suite.Require().NotNil(updated.ExitPrice)
	suite.True(updated.ExitPrice.Equal(exit))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestUpdateTrade_ReopenClearsRealizedFields() {
	ctx := context.Background()
	trade := suite.openTrade()
	pnl := decimal.NewFromInt(35)
	exit := decimal.NewFromInt(120)
	exitDate := time.Now()
	trade.Status = domain.TradeStatusClosed
	trade.PnL = &pnl
	trade.ExitPrice = &exit
	trade.ExitDate = &exitDate
	open := domain.TradeStatusOpen

	suite.mockRepo.On("FindTradeByID", ctx, trade.TradeID).Return(trade, nil).Once()
	suite.mockRepo.On("UpdateTrade", ctx, mock.AnythingOfType("domain.Trade")).Return(nil).Once()

	updated, err := suite.service.UpdateTrade(ctx, suite.userID, trade.TradeID, dto.UpdateTradeRequest{
		Status: &open,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.TradeStatusOpen, updated.Status)
	suite.Nil(updated.PnL)
	suite.Nil(updated.ExitPrice)
	suite.Nil(updated.ExitDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestUpdateTrade_Forbidden() {
	ctx := context.Background()
	trade := suite.openTrade()
	trade.UserID = uuid.NewString()
	notes := "not mine"

	suite.mockRepo.On("FindTradeByID", ctx, trade.TradeID).Return(trade, nil).Once()

	updated, err := suite.service.UpdateTrade(ctx, suite.userID, trade.TradeID, dto.UpdateTradeRequest{Notes: &notes})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTrade", mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestDeleteTrade_Success() {
	ctx := context.Background()
	trade := suite.openTrade()

	suite.mockRepo.On("FindTradeByID", ctx, trade.TradeID).Return(trade, nil).Once()
	suite.mockRepo.On("DeleteTrade", ctx, trade.TradeID).Return(nil).Once()

	err := suite.service.DeleteTrade(ctx, suite.userID, trade.TradeID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTradeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TradeServiceTestSuite))
}

// --- P&L unit tests ---

func TestComputeRealizedPnL(t *testing.T) {
	long, err := services.ComputeRealizedPnL(domain.TradeTypeLong,
		decimal.NewFromInt(100), decimal.NewFromInt(120), decimal.NewFromInt(2), decimal.NewFromInt(5))
	assert.NoError(t, err)
	assert.True(t, long.Equal(decimal.NewFromInt(35)))

	short, err := services.ComputeRealizedPnL(domain.TradeTypeShort,
		decimal.NewFromInt(100), decimal.NewFromInt(120), decimal.NewFromInt(2), decimal.NewFromInt(5))
	assert.NoError(t, err)
	assert.True(t, short.Equal(decimal.NewFromInt(-45)))

	_, err = services.ComputeRealizedPnL(domain.TradeTypeLong,
		decimal.NewFromInt(100), decimal.NewFromInt(120), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
