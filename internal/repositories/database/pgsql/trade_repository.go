package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portsrepo "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTradeRepository struct {
	BaseRepository
}

// newPgxTradeRepository creates a new repository for trade data.
func newPgxTradeRepository(pool *pgxpool.Pool) portsrepo.TradeRepositoryFacade {
	return &PgxTradeRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TradeRepositoryFacade = (*PgxTradeRepository)(nil)

const tradeColumns = `trade_id, user_id, account_id, pair, type, method, entry_price, exit_price,
	stop_loss, take_profit, amount, leverage, fees, status, entry_date, exit_date, pnl,
	notes, tags, screenshot, created_at, last_updated_at`

func nullDecimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	return &n.Decimal
}

func decimalToNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullTimePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	return &n.Time
}

func timeToNull(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func scanTrade(row pgx.Row) (*domain.Trade, error) {
	var (
		trade                           domain.Trade
		exitPrice, stopLoss, takeProfit decimal.NullDecimal
		pnl                             decimal.NullDecimal
		exitDate                        sql.NullTime
	)
	err := row.Scan(
		&trade.TradeID,
		&trade.UserID,
		&trade.AccountID,
		&trade.Pair,
		&trade.Type,
		&trade.Method,
		&trade.EntryPrice,
		&exitPrice,
		&stopLoss,
		&takeProfit,
		&trade.Amount,
		&trade.Leverage,
		&trade.Fees,
		&trade.Status,
		&trade.EntryDate,
		&exitDate,
		&pnl,
		&trade.Notes,
		&trade.Tags,
		&trade.Screenshot,
		&trade.CreatedAt,
		&trade.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	trade.ExitPrice = nullDecimalPtr(exitPrice)
	trade.StopLoss = nullDecimalPtr(stopLoss)
	trade.TakeProfit = nullDecimalPtr(takeProfit)
	trade.PnL = nullDecimalPtr(pnl)
	trade.ExitDate = nullTimePtr(exitDate)
	if trade.Tags == nil {
		trade.Tags = []string{}
	}
	return &trade, nil
}

func (r *PgxTradeRepository) SaveTrade(ctx context.Context, trade domain.Trade) error {
	query := `
		INSERT INTO trades (trade_id, user_id, account_id, pair, type, method, entry_price, exit_price,
			stop_loss, take_profit, amount, leverage, fees, status, entry_date, exit_date, pnl,
			notes, tags, screenshot, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := r.Pool.Exec(ctx, query,
		trade.TradeID,
		trade.UserID,
		trade.AccountID,
		trade.Pair,
		trade.Type,
		trade.Method,
		trade.EntryPrice,
		decimalToNull(trade.ExitPrice),
		decimalToNull(trade.StopLoss),
		decimalToNull(trade.TakeProfit),
		trade.Amount,
		trade.Leverage,
		trade.Fees,
		trade.Status,
		trade.EntryDate,
		timeToNull(trade.ExitDate),
		decimalToNull(trade.PnL),
		trade.Notes,
		trade.Tags,
		trade.Screenshot,
		trade.CreatedAt,
		trade.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: trade %s already exists", apperrors.ErrDuplicate, trade.TradeID)
		}
		return fmt.Errorf("failed to save trade %s: %w", trade.TradeID, err)
	}
	return nil
}

func (r *PgxTradeRepository) FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE trade_id = $1;`
	trade, err := scanTrade(r.Pool.QueryRow(ctx, query, tradeID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find trade %s: %w", tradeID, err)
	}
	return trade, nil
}

func (r *PgxTradeRepository) listTrades(ctx context.Context, query string, args ...any) ([]domain.Trade, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade row: %w", err)
		}
		trades = append(trades, *trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return trades, nil
}

func (r *PgxTradeRepository) ListTradesByUser(ctx context.Context, userID string) ([]domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE user_id = $1 ORDER BY entry_date DESC, trade_id ASC;`
	trades, err := r.listTrades(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades for user %s: %w", userID, err)
	}
	return trades, nil
}

func (r *PgxTradeRepository) ListTradesByUserCreatedBetween(ctx context.Context, userID string, start, end *time.Time) ([]domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE user_id = $1`
	args := []any{userID}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	// Insertion order, stable across equal timestamps.
	query += ` ORDER BY created_at ASC, trade_id ASC;`

	trades, err := r.listTrades(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades in range for user %s: %w", userID, err)
	}
	return trades, nil
}

func (r *PgxTradeRepository) UpdateTrade(ctx context.Context, trade domain.Trade) error {
	query := `
		UPDATE trades
		SET pair = $2, type = $3, method = $4, entry_price = $5, exit_price = $6,
			stop_loss = $7, take_profit = $8, amount = $9, leverage = $10, fees = $11,
			status = $12, entry_date = $13, exit_date = $14, pnl = $15, notes = $16,
			tags = $17, screenshot = $18, last_updated_at = $19
		WHERE trade_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		trade.TradeID,
		trade.Pair,
		trade.Type,
		trade.Method,
		trade.EntryPrice,
		decimalToNull(trade.ExitPrice),
		decimalToNull(trade.StopLoss),
		decimalToNull(trade.TakeProfit),
		trade.Amount,
		trade.Leverage,
		trade.Fees,
		trade.Status,
		trade.EntryDate,
		timeToNull(trade.ExitDate),
		decimalToNull(trade.PnL),
		trade.Notes,
		trade.Tags,
		trade.Screenshot,
		trade.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update trade %s: %w", trade.TradeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTradeRepository) DeleteTrade(ctx context.Context, tradeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM trades WHERE trade_id = $1;`, tradeID)
	if err != nil {
		return fmt.Errorf("failed to delete trade %s: %w", tradeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTradeRepository) DeleteTradesByUser(ctx context.Context, userID string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM trades WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to delete trades for user %s: %w", userID, err)
	}
	return nil
}
