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

// PgxFeatureRepository stores feature requests with their votes. Voter ids live
// in a feature_votes join table; the votes column on features is kept in step
// inside the same database transaction.
type PgxFeatureRepository struct {
	BaseRepository
}

// newPgxFeatureRepository creates a new repository for feature requests.
func newPgxFeatureRepository(pool *pgxpool.Pool) portsrepo.FeatureRepositoryFacade {
	return &PgxFeatureRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.FeatureRepositoryFacade = (*PgxFeatureRepository)(nil)

const featureColumns = `f.feature_id, f.title, f.description, f.category, f.status, f.votes, f.created_by, f.created_at, f.last_updated_at`

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxFeatureRepository) scanFeature(ctx context.Context, q pgxQuerier, row pgx.Row) (*domain.Feature, error) {
	var f domain.Feature
	err := row.Scan(
		&f.FeatureID,
		&f.Title,
		&f.Description,
		&f.Category,
		&f.Status,
		&f.Votes,
		&f.CreatedBy,
		&f.CreatedAt,
		&f.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	voters, err := r.loadVoters(ctx, q, f.FeatureID)
	if err != nil {
		return nil, err
	}
	f.VoterIDs = voters
	return &f, nil
}

func (r *PgxFeatureRepository) loadVoters(ctx context.Context, q pgxQuerier, featureID string) ([]string, error) {
	rows, err := q.Query(ctx, `SELECT user_id FROM feature_votes WHERE feature_id = $1 ORDER BY voted_at ASC;`, featureID)
	if err != nil {
		return nil, fmt.Errorf("failed to load voters for feature %s: %w", featureID, err)
	}
	defer rows.Close()

	voters := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan voter row: %w", err)
		}
		voters = append(voters, userID)
	}
	return voters, rows.Err()
}

func (r *PgxFeatureRepository) SaveFeature(ctx context.Context, feature domain.Feature) error {
	query := `
		INSERT INTO features (feature_id, title, description, category, status, votes, created_by, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		feature.FeatureID,
		feature.Title,
		feature.Description,
		feature.Category,
		feature.Status,
		feature.Votes,
		feature.CreatedBy,
		feature.CreatedAt,
		feature.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: feature %s already exists", apperrors.ErrDuplicate, feature.FeatureID)
		}
		return fmt.Errorf("failed to save feature %s: %w", feature.FeatureID, err)
	}
	return nil
}

func (r *PgxFeatureRepository) FindFeatureByID(ctx context.Context, featureID string) (*domain.Feature, error) {
	query := `SELECT ` + featureColumns + ` FROM features f WHERE f.feature_id = $1;`
	feature, err := r.scanFeature(ctx, r.Pool, r.Pool.QueryRow(ctx, query, featureID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find feature %s: %w", featureID, err)
	}
	return feature, nil
}

func (r *PgxFeatureRepository) ListFeatures(ctx context.Context, category domain.FeatureCategory) ([]domain.Feature, error) {
	query := `SELECT ` + featureColumns + ` FROM features f`
	args := []any{}
	if category != "" {
		query += ` WHERE f.category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY f.votes DESC, f.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}
	defer rows.Close()

	var features []domain.Feature
	for rows.Next() {
		var f domain.Feature
		err := rows.Scan(
			&f.FeatureID,
			&f.Title,
			&f.Description,
			&f.Category,
			&f.Status,
			&f.Votes,
			&f.CreatedBy,
			&f.CreatedAt,
			&f.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feature row: %w", err)
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feature rows: %w", err)
	}

	for i := range features {
		voters, err := r.loadVoters(ctx, r.Pool, features[i].FeatureID)
		if err != nil {
			return nil, err
		}
		features[i].VoterIDs = voters
	}
	return features, nil
}

func (r *PgxFeatureRepository) AddVote(ctx context.Context, featureID, userID string) (*domain.Feature, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var lockedID string
	lockQuery := `SELECT feature_id FROM features WHERE feature_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, featureID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock feature %s: %w", featureID, err)
	}

	insertQuery := `INSERT INTO feature_votes (feature_id, user_id, voted_at) VALUES ($1, $2, now());`
	if _, err := tx.Exec(ctx, insertQuery, featureID, userID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: already voted", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to record vote on feature %s: %w", featureID, err)
	}

	countQuery := `UPDATE features SET votes = votes + 1, last_updated_at = now() WHERE feature_id = $1;`
	if _, err := tx.Exec(ctx, countQuery, featureID); err != nil {
		return nil, fmt.Errorf("failed to increment vote count on feature %s: %w", featureID, err)
	}

	query := `SELECT ` + featureColumns + ` FROM features f WHERE f.feature_id = $1;`
	feature, err := r.scanFeature(ctx, tx, tx.QueryRow(ctx, query, featureID))
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return feature, nil
}

func (r *PgxFeatureRepository) RemoveVote(ctx context.Context, featureID, userID string) (*domain.Feature, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var lockedID string
	lockQuery := `SELECT feature_id FROM features WHERE feature_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, featureID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock feature %s: %w", featureID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM feature_votes WHERE feature_id = $1 AND user_id = $2;`, featureID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove vote on feature %s: %w", featureID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: not voted", apperrors.ErrInvalidState)
	}

	countQuery := `UPDATE features SET votes = GREATEST(votes - 1, 0), last_updated_at = now() WHERE feature_id = $1;`
	if _, err := tx.Exec(ctx, countQuery, featureID); err != nil {
		return nil, fmt.Errorf("failed to decrement vote count on feature %s: %w", featureID, err)
	}

	query := `SELECT ` + featureColumns + ` FROM features f WHERE f.feature_id = $1;`
	feature, err := r.scanFeature(ctx, tx, tx.QueryRow(ctx, query, featureID))
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return feature, nil
}
