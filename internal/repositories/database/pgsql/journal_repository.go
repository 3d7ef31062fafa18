package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portsrepo "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, user_id, title, content, date, tags, linked_trade_id, images, mood, created_at, last_updated_at`

func nullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func scanJournalEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var (
		entry       domain.JournalEntry
		linkedTrade sql.NullString
		mood        sql.NullString
	)
	err := row.Scan(
		&entry.JournalID,
		&entry.UserID,
		&entry.Title,
		&entry.Content,
		&entry.Date,
		&entry.Tags,
		&linkedTrade,
		&entry.Images,
		&mood,
		&entry.CreatedAt,
		&entry.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	entry.LinkedTradeID = nullStringValue(linkedTrade)
	entry.Mood = domain.JournalMood(nullStringValue(mood))
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	if entry.Images == nil {
		entry.Images = []string{}
	}
	return &entry, nil
}

func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		INSERT INTO journals (journal_id, user_id, title, content, date, tags, linked_trade_id, images, mood, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.JournalID,
		entry.UserID,
		entry.Title,
		entry.Content,
		entry.Date,
		entry.Tags,
		stringToNull(entry.LinkedTradeID),
		entry.Images,
		stringToNull(string(entry.Mood)),
		entry.CreatedAt,
		entry.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrDuplicate, entry.JournalID)
		}
		return fmt.Errorf("failed to save journal entry %s: %w", entry.JournalID, err)
	}
	return nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	entry, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", journalID, err)
	}
	return entry, nil
}

func (r *PgxJournalRepository) ListEntriesByUser(ctx context.Context, userID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE user_id = $1 ORDER BY date DESC, journal_id ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries for user %s: %w", userID, err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return entries, nil
}

func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		UPDATE journals
		SET title = $2, content = $3, date = $4, tags = $5, linked_trade_id = $6,
			images = $7, mood = $8, last_updated_at = $9
		WHERE journal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		entry.JournalID,
		entry.Title,
		entry.Content,
		entry.Date,
		entry.Tags,
		stringToNull(entry.LinkedTradeID),
		entry.Images,
		stringToNull(string(entry.Mood)),
		entry.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", entry.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, journalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJournalRepository) DeleteEntriesByUser(ctx context.Context, userID string) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journals WHERE user_id = $1;`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete journal entries for user %s: %w", userID, err)
	}
	return tag.RowsAffected(), nil
}
