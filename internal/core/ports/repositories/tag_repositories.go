package repositories

import (
	"context"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
)

// TagRepositoryFacade defines storage operations for tag definitions.
type TagRepositoryFacade interface {
	SaveTag(ctx context.Context, tag domain.Tag) error
	FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error)
	FindTagByName(ctx context.Context, userID, name string) (*domain.Tag, error)

	// ListTagsByUser returns the user's tags newest-first by creation time.
	ListTagsByUser(ctx context.Context, userID string) ([]domain.Tag, error)

	UpdateTag(ctx context.Context, tag domain.Tag) error
	DeleteTag(ctx context.Context, tagID string) error
	DeleteTagsByUser(ctx context.Context, userID string) error
}
