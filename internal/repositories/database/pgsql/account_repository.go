package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portsrepo "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account and transaction data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, name, is_primary, balance, currency, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.UserID,
		&acc.Name,
		&acc.IsPrimary,
		&acc.Balance,
		&acc.Currency,
		&acc.CreatedAt,
		&acc.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// clearOtherPrimariesInTx drops the primary flag from the user's other accounts.
func clearOtherPrimariesInTx(ctx context.Context, tx pgx.Tx, userID, keepAccountID string) error {
	query := `
		UPDATE accounts SET is_primary = FALSE
		WHERE user_id = $1 AND account_id != $2 AND is_primary = TRUE;
	`
	if _, err := tx.Exec(ctx, query, userID, keepAccountID); err != nil {
		return fmt.Errorf("failed to clear primary flags for user %s: %w", userID, err)
	}
	return nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO accounts (account_id, user_id, name, is_primary, balance, currency, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, query,
		account.AccountID,
		account.UserID,
		account.Name,
		account.IsPrimary,
		account.Balance,
		account.Currency,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, account.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}

	if account.IsPrimary {
		if err := clearOtherPrimariesInTx(ctx, tx, account.UserID, account.AccountID); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return acc, nil
}

func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at ASC, account_id ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) FindPrimaryAccount(ctx context.Context, userID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND is_primary = TRUE LIMIT 1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find primary account for user %s: %w", userID, err)
	}
	return acc, nil
}

func (r *PgxAccountRepository) CountAccountsByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE user_id = $1;`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts for user %s: %w", userID, err)
	}
	return count, nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE accounts
		SET name = $2, is_primary = $3, last_updated_at = $4
		WHERE account_id = $1;
	`
	tag, err := tx.Exec(ctx, query, account.AccountID, account.Name, account.IsPrimary, account.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if account.IsPrimary {
		if err := clearOtherPrimariesInTx(ctx, tx, account.UserID, account.AccountID); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteAccountCascade removes the account and its transactions in one
// transaction. Trades are left alone; the schema carries no FK from trades to
// accounts, so rows that referenced the account keep a dangling account id.
func (r *PgxAccountRepository) DeleteAccountCascade(ctx context.Context, accountID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE account_id = $1;`, accountID); err != nil {
		return fmt.Errorf("failed to delete transactions for account %s: %w", accountID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) DeleteAccountsByUser(ctx context.Context, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		DELETE FROM transactions
		WHERE account_id IN (SELECT account_id FROM accounts WHERE user_id = $1);
	`
	if _, err := tx.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete transactions for user %s: %w", userID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM accounts WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to delete accounts for user %s: %w", userID, err)
	}

	return r.Commit(ctx, tx)
}

const transactionColumns = `transaction_id, account_id, type, amount, date, note, created_at, last_updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.AccountID,
		&txn.Type,
		&txn.Amount,
		&txn.Date,
		&txn.Note,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (r *PgxAccountRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *PgxAccountRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 ORDER BY date DESC, transaction_id ASC;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// lockAccountBalanceInTx reads the account balance under a row lock.
func lockAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	query := `SELECT balance FROM accounts WHERE account_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	return balance, nil
}

func (r *PgxAccountRepository) SaveTransactionWithBalance(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	balance, err := lockAccountBalanceInTx(ctx, tx, txn.AccountID)
	if err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO transactions (transaction_id, account_id, type, amount, date, note, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertQuery,
		txn.TransactionID,
		txn.AccountID,
		txn.Type,
		txn.Amount,
		txn.Date,
		txn.Note,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	newBalance := balance.Add(txn.BalanceEffect())
	balanceQuery := `UPDATE accounts SET balance = $2, last_updated_at = $3 WHERE account_id = $1;`
	if _, err := tx.Exec(ctx, balanceQuery, txn.AccountID, newBalance, txn.LastUpdatedAt); err != nil {
		return fmt.Errorf("failed to apply balance change to account %s: %w", txn.AccountID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) DeleteTransactionWithBalance(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	balance, err := lockAccountBalanceInTx(ctx, tx, txn.AccountID)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, txn.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Reversal applies the opposite of the stored row's original effect.
	newBalance := balance.Sub(txn.BalanceEffect())
	balanceQuery := `UPDATE accounts SET balance = $2, last_updated_at = now() WHERE account_id = $1;`
	if _, err := tx.Exec(ctx, balanceQuery, txn.AccountID, newBalance); err != nil {
		return fmt.Errorf("failed to reverse balance change on account %s: %w", txn.AccountID, err)
	}

	return r.Commit(ctx, tx)
}
