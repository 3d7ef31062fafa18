package repositories

import (
	"context"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
)

// FeatureRepositoryFacade defines storage operations for feature requests.
type FeatureRepositoryFacade interface {
	SaveFeature(ctx context.Context, feature domain.Feature) error
	FindFeatureByID(ctx context.Context, featureID string) (*domain.Feature, error)

	// ListFeatures returns features ordered by votes descending, then newest
	// first. An empty category returns everything.
	ListFeatures(ctx context.Context, category domain.FeatureCategory) ([]domain.Feature, error)

	// AddVote records the user's vote and increments the count; both writes run
	// in one database transaction. Returns ErrDuplicate if the user already voted.
	AddVote(ctx context.Context, featureID, userID string) (*domain.Feature, error)

	// RemoveVote removes the user's vote and decrements the count. Returns
	// ErrInvalidState if the user has not voted.
	RemoveVote(ctx context.Context, featureID, userID string) (*domain.Feature, error)
}
