package dto

import (
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name      string           `json:"name" binding:"required"`
	Balance   *decimal.Decimal `json:"balance"` // Optional starting balance, defaults to 0
	IsPrimary bool             `json:"isPrimary"`
	Currency  string           `json:"currency"` // Optional, defaults to USD
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name      *string `json:"name"`
	IsPrimary *bool   `json:"isPrimary"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	IsPrimary bool            `json:"isPrimary"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Name:      acc.Name,
		IsPrimary: acc.IsPrimary,
		Balance:   acc.Balance,
		Currency:  acc.Currency,
		CreatedAt: acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AddTransactionRequest defines the data needed to record a deposit or withdrawal.
type AddTransactionRequest struct {
	Type   domain.TransactionType `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	Amount decimal.Decimal        `json:"amount" binding:"required"`
	Date   *time.Time             `json:"date"` // Optional, defaults to now
	Note   string                 `json:"note"`
}

// TransactionResponse defines the data returned for a ledger transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	AccountID     string                 `json:"accountID"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	Date          time.Time              `json:"date"`
	Note          string                 `json:"note,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Type:          txn.Type,
		Amount:        txn.Amount,
		Date:          txn.Date,
		Note:          txn.Note,
	}
}

// ToListTransactionResponse converts a slice of transactions to response DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
