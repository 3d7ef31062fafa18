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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindPrimaryAccount(ctx context.Context, userID string) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountAccountsByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccountCascade(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccountsByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockAccountRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockAccountRepository) SaveTransactionWithBalance(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteTransactionWithBalance(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) ownedAccount() *domain.Account {
	now := time.Now()
	return &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    suite.userID,
		Name:      "Binance",
		IsPrimary: true,
		Balance:   decimal.NewFromInt(1000),
		Currency:  "USD",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Defaults() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Spot Wallet"}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal("Spot Wallet", created.Name)
	suite.Equal(suite.userID, created.UserID)
	suite.False(created.IsPrimary)
	suite.True(created.Balance.IsZero())
	suite.Equal(domain.DefaultCurrencyCode, created.Currency)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyMaterializesDefault() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccountsByUser", ctx, suite.userID).Return([]domain.Account{}, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == domain.DefaultAccountName && a.IsPrimary && a.Balance.IsZero() && a.Currency == domain.DefaultCurrencyCode
	})).Return(nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(accounts, 1)
	suite.Equal(domain.DefaultAccountName, accounts[0].Name)
	suite.True(accounts[0].IsPrimary)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_ExistingSkipsCreation() {
	ctx := context.Background()
	existing := suite.ownedAccount()

	suite.mockRepo.On("ListAccountsByUser", ctx, suite.userID).Return([]domain.Account{*existing}, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(accounts, 1)
	suite.Equal(existing.AccountID, accounts[0].AccountID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Forbidden() {
	ctx := context.Background()
	other := suite.ownedAccount()
	other.UserID = uuid.NewString()
	name := "Renamed"

	suite.mockRepo.On("FindAccountByID", ctx, other.AccountID).Return(other, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.userID, other.AccountID, dto.UpdateAccountRequest{Name: &name})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(updated)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_LastAccountRefused() {
	ctx := context.Background()
	account := suite.ownedAccount()

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("CountAccountsByUser", ctx, suite.userID).Return(1, nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.userID, account.AccountID)

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccountCascade", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	account := suite.ownedAccount()

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("CountAccountsByUser", ctx, suite.userID).Return(2, nil).Once()
	suite.mockRepo.On("DeleteAccountCascade", ctx, account.AccountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.userID, account.AccountID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestAddTransaction_RejectsNonPositiveAmount() {
	ctx := context.Background()
	account := suite.ownedAccount()
	req := dto.AddTransactionRequest{Type: domain.TransactionTypeDeposit, Amount: decimal.Zero}

	txn, err := suite.service.AddTransaction(ctx, suite.userID, account.AccountID, req)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransactionWithBalance", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestAddTransaction_Deposit() {
	ctx := context.Background()
	account := suite.ownedAccount()
	req := dto.AddTransactionRequest{
		Type:   domain.TransactionTypeDeposit,
		Amount: decimal.NewFromInt(250),
		Note:   "funding",
	}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("SaveTransactionWithBalance", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.AccountID == account.AccountID && t.Type == domain.TransactionTypeDeposit && t.Amount.Equal(req.Amount)
	})).Return(nil).Once()

	txn, err := suite.service.AddTransaction(ctx, suite.userID, account.AccountID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal("funding", txn.Note)
	suite.WithinDuration(time.Now(), txn.Date, time.Second)
	suite.True(txn.BalanceEffect().Equal(decimal.NewFromInt(250)))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteTransaction_ReversesStoredRow() {
	ctx := context.Background()
	account := suite.ownedAccount()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     account.AccountID,
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        decimal.NewFromInt(100),
		Date:          time.Now(),
	}

	suite.mockRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("DeleteTransactionWithBalance", ctx, *txn).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, txn.TransactionID)

	suite.Require().NoError(err)
	// A withdrawal's effect is negative; reversal adds the amount back.
	suite.True(txn.BalanceEffect().Equal(decimal.NewFromInt(-100)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestResolveAccount_ExplicitID() {
	ctx := context.Background()
	account := suite.ownedAccount()

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	resolved, err := suite.service.ResolveAccount(ctx, suite.userID, account.AccountID)

	suite.Require().NoError(err)
	suite.Equal(account.AccountID, resolved.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestResolveAccount_FallsBackToPrimary() {
	ctx := context.Background()
	primary := suite.ownedAccount()

	suite.mockRepo.On("FindPrimaryAccount", ctx, suite.userID).Return(primary, nil).Once()

	resolved, err := suite.service.ResolveAccount(ctx, suite.userID, "")

	suite.Require().NoError(err)
	suite.Equal(primary.AccountID, resolved.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestResolveAccount_FallsBackToFirstAccount() {
	ctx := context.Background()
	first := suite.ownedAccount()
	first.IsPrimary = false
	second := suite.ownedAccount()
	second.IsPrimary = false

	suite.mockRepo.On("FindPrimaryAccount", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("ListAccountsByUser", ctx, suite.userID).Return([]domain.Account{*first, *second}, nil).Once()

	resolved, err := suite.service.ResolveAccount(ctx, suite.userID, "")

	suite.Require().NoError(err)
	suite.Equal(first.AccountID, resolved.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestResolveAccount_CreatesDefaultWhenNoneExist() {
	ctx := context.Background()

	suite.mockRepo.On("FindPrimaryAccount", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("ListAccountsByUser", ctx, suite.userID).Return([]domain.Account{}, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == domain.DefaultAccountName && a.IsPrimary
	})).Return(nil).Once()

	resolved, err := suite.service.ResolveAccount(ctx, suite.userID, "")

	suite.Require().NoError(err)
	suite.Equal(domain.DefaultAccountName, resolved.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
