package repositories

import (
	"context"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByUser retrieves every account owned by the user.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)

	// FindPrimaryAccount retrieves the user's primary account, or ErrNotFound.
	FindPrimaryAccount(ctx context.Context, userID string) (*domain.Account, error)

	// CountAccountsByUser returns how many accounts the user owns.
	CountAccountsByUser(ctx context.Context, userID string) (int, error)
}

// AccountWriter defines write operations for account data.
//
// SaveAccount and UpdateAccount enforce primary-flag exclusivity: when the
// written account has IsPrimary set, the flag is cleared on the user's other
// accounts inside the same database transaction.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccountCascade deletes the account and all of its transactions in a
	// single database transaction. Trades referencing the account are left alone.
	DeleteAccountCascade(ctx context.Context, accountID string) error

	// DeleteAccountsByUser removes every account (and their transactions) owned
	// by the user. Used by whole-account deletion.
	DeleteAccountsByUser(ctx context.Context, userID string) error
}

// TransactionReader defines read operations for ledger transactions.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount returns the account's transactions newest-first by date.
	ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// TransactionWriter defines the two ledger mutations. Both write the
// transaction row and the account balance atomically, locking the account row
// for the duration of the database transaction.
type TransactionWriter interface {
	// SaveTransactionWithBalance inserts the transaction and applies its balance
	// effect to the owning account.
	SaveTransactionWithBalance(ctx context.Context, txn domain.Transaction) error

	// DeleteTransactionWithBalance deletes the transaction and reverses the
	// balance effect recorded on the stored row.
	DeleteTransactionWithBalance(ctx context.Context, txn domain.Transaction) error
}

// AccountRepositoryFacade combines all account and transaction repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	TransactionReader
	TransactionWriter
}
