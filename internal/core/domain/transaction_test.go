package domain_test

import (
	"testing"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_BalanceEffect(t *testing.T) {
	tests := []struct {
		name string
		tx   domain.Transaction
		want decimal.Decimal
	}{
		{
			name: "deposit adds the full amount",
			tx: domain.Transaction{
				Type:   domain.TransactionTypeDeposit,
				Amount: decimal.NewFromFloat(250.50),
			},
			want: decimal.NewFromFloat(250.50),
		},
		{
			name: "withdrawal subtracts the full amount",
			tx: domain.Transaction{
				Type:   domain.TransactionTypeWithdrawal,
				Amount: decimal.NewFromFloat(100.25),
			},
			want: decimal.NewFromFloat(-100.25),
		},
		{
			name: "zero amount has zero effect",
			tx: domain.Transaction{
				Type:   domain.TransactionTypeWithdrawal,
				Amount: decimal.Zero,
			},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tx.BalanceEffect()
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

// Deleting a stored transaction applies the negated effect, so the effect and
// its negation must cancel exactly.
func TestTransaction_BalanceEffectReversalCancels(t *testing.T) {
	for _, txType := range []domain.TransactionType{
		domain.TransactionTypeDeposit,
		domain.TransactionTypeWithdrawal,
	} {
		tx := domain.Transaction{
			Type:   txType,
			Amount: decimal.NewFromFloat(33.3333),
		}
		effect := tx.BalanceEffect()
		assert.True(t, effect.Add(effect.Neg()).IsZero(), "type %s", txType)
	}
}
