package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portsrepo "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/repositories"
	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface. It is the only
// component that mutates Account.Balance: balances move when transactions are
// applied or reverted, never when trades close.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ensureDefaultAccount materializes the default primary account for a user
// with no accounts. All auto-creation flows go through this single path.
func (s *accountService) ensureDefaultAccount(ctx context.Context, userID string) (*domain.Account, error) {
	now := time.Now()
	account := domain.Account{
		AccountID: uuid.NewString(),
		UserID:    userID,
		Name:      domain.DefaultAccountName,
		IsPrimary: true,
		Balance:   decimal.Zero,
		Currency:  domain.DefaultCurrencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to create default account", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create default account: %w", err)
	}
	s.LogInfo(ctx, "Default account materialized", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}

	if len(accounts) == 0 {
		account, err := s.ensureDefaultAccount(ctx, userID)
		if err != nil {
			return nil, err
		}
		return []domain.Account{*account}, nil
	}

	return accounts, nil
}

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}
	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrencyCode
	}

	now := time.Now()
	account := domain.Account{
		AccountID: uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		IsPrimary: req.IsPrimary,
		Balance:   balance,
		Currency:  currency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	// SaveAccount clears the primary flag on the user's other accounts in the
	// same database transaction when account.IsPrimary is set.
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// getOwnedAccount fetches an account and verifies ownership.
func (s *accountService) getOwnedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.UserID != userID {
		s.LogDebug(ctx, "Account ownership mismatch", slog.String("account_id", accountID))
		return nil, apperrors.ErrForbidden
	}
	return account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.getOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.IsPrimary != nil {
		account.IsPrimary = *req.IsPrimary
	}
	account.LastUpdatedAt = time.Now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	if _, err := s.getOwnedAccount(ctx, userID, accountID); err != nil {
		return err
	}

	count, err := s.accountRepo.CountAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts", slog.String("user_id", userID))
		return err
	}
	if count <= 1 {
		return fmt.Errorf("%w: cannot delete the only account", apperrors.ErrInvalidState)
	}

	// Cascades to the account's transactions. Trades referencing the account
	// keep their reference and are not touched.
	if err := s.accountRepo.DeleteAccountCascade(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) ListTransactions(ctx context.Context, userID string, accountID string) ([]domain.Transaction, error) {
	if _, err := s.getOwnedAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}

	txns, err := s.accountRepo.ListTransactionsByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("account_id", accountID))
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

func (s *accountService) AddTransaction(ctx context.Context, userID string, accountID string, req dto.AddTransactionRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}

	if _, err := s.getOwnedAccount(ctx, userID, accountID); err != nil {
		return nil, err
	}

	now := time.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		Type:          req.Type,
		Amount:        req.Amount,
		Date:          date,
		Note:          req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	// The transaction row and the balance delta are persisted atomically.
	if err := s.accountRepo.SaveTransactionWithBalance(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *accountService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	txn, err := s.accountRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}

	// Ownership is checked through the owning account.
	if _, err := s.getOwnedAccount(ctx, userID, txn.AccountID); err != nil {
		return err
	}

	// Reversal uses the stored row's type and amount, not recomputed state.
	if err := s.accountRepo.DeleteTransactionWithBalance(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// ResolveAccount applies the account selection policy, first match wins:
// explicit id, the primary account, any account, then a new default account.
func (s *accountService) ResolveAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	if accountID != "" {
		return s.getOwnedAccount(ctx, userID, accountID)
	}

	primary, err := s.accountRepo.FindPrimaryAccount(ctx, userID)
	if err == nil {
		return primary, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accounts) > 0 {
		return &accounts[0], nil
	}

	return s.ensureDefaultAccount(ctx, userID)
}
