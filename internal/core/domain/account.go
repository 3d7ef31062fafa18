package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultAccountName is the name given to accounts materialized on demand when a
// user has no account yet.
const DefaultAccountName = "Default Account"

// DefaultCurrencyCode is the currency assigned to accounts created without an
// explicit currency. The ledger itself is currency-agnostic; the code is stored
// for display purposes only.
const DefaultCurrencyCode = "USD"

// Account is a named cash bucket owned by exactly one user. Balance is a cached
// aggregate: it is mutated only by applying or reverting transactions, never by
// trade settlement.
type Account struct {
	AccountID string          `json:"accountID"`
	UserID    string          `json:"userID"`
	Name      string          `json:"name"`
	IsPrimary bool            `json:"isPrimary"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	AuditFields
}
