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
)

type PgxTagRepository struct {
	BaseRepository
}

// newPgxTagRepository creates a new repository for tag definitions.
func newPgxTagRepository(pool *pgxpool.Pool) portsrepo.TagRepositoryFacade {
	return &PgxTagRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TagRepositoryFacade = (*PgxTagRepository)(nil)

const tagColumns = `tag_id, user_id, name, category, description, created_at, last_updated_at`

func scanTag(row pgx.Row) (*domain.Tag, error) {
	var tag domain.Tag
	err := row.Scan(
		&tag.TagID,
		&tag.UserID,
		&tag.Name,
		&tag.Category,
		&tag.Description,
		&tag.CreatedAt,
		&tag.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *PgxTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	query := `
		INSERT INTO tags (tag_id, user_id, name, category, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		tag.TagID,
		tag.UserID,
		tag.Name,
		tag.Category,
		tag.Description,
		tag.CreatedAt,
		tag.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tag %q already exists", apperrors.ErrDuplicate, tag.Name)
		}
		return fmt.Errorf("failed to save tag %s: %w", tag.TagID, err)
	}
	return nil
}

func (r *PgxTagRepository) FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE tag_id = $1;`
	tag, err := scanTag(r.Pool.QueryRow(ctx, query, tagID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find tag %s: %w", tagID, err)
	}
	return tag, nil
}

func (r *PgxTagRepository) FindTagByName(ctx context.Context, userID string, name string) (*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = $1 AND LOWER(name) = LOWER($2);`
	tag, err := scanTag(r.Pool.QueryRow(ctx, query, userID, name))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find tag %q for user %s: %w", name, userID, err)
	}
	return tag, nil
}

func (r *PgxTagRepository) ListTagsByUser(ctx context.Context, userID string) ([]domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = $1 ORDER BY category ASC, name ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for user %s: %w", userID, err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return tags, nil
}

func (r *PgxTagRepository) UpdateTag(ctx context.Context, tag domain.Tag) error {
	query := `
		UPDATE tags
		SET name = $2, category = $3, description = $4, last_updated_at = $5
		WHERE tag_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		tag.TagID,
		tag.Name,
		tag.Category,
		tag.Description,
		tag.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tag %q already exists", apperrors.ErrDuplicate, tag.Name)
		}
		return fmt.Errorf("failed to update tag %s: %w", tag.TagID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTagRepository) DeleteTag(ctx context.Context, tagID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM tags WHERE tag_id = $1;`, tagID)
	if err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", tagID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTagRepository) DeleteTagsByUser(ctx context.Context, userID string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM tags WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to delete tags for user %s: %w", userID, err)
	}
	return nil
}
