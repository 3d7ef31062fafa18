package services

import (
	"context"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// ListAccounts returns all of the user's accounts. A user with no accounts
	// gets a default primary account materialized and persisted first, so the
	// zero-account state is transient.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)

	// ListTransactions returns the account's transactions newest-first after an
	// ownership check.
	ListTransactions(ctx context.Context, userID string, accountID string) ([]domain.Transaction, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes the account and its transactions. Deleting the
	// user's only account fails with ErrInvalidState.
	DeleteAccount(ctx context.Context, userID string, accountID string) error

	AddTransaction(ctx context.Context, userID string, accountID string, req dto.AddTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// AccountResolverSvc resolves which account an operation applies to when the
// caller did not specify one.
type AccountResolverSvc interface {
	// ResolveAccount applies the selection policy: explicit id, else primary,
	// else any, else a freshly created default primary account.
	ResolveAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountResolverSvc
}
