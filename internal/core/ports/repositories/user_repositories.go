package repositories

import (
	"context"
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
)

// UserRepositoryFacade defines storage operations for users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hash and expiry of the user's current
	// refresh token. Empty hash with nil expiry clears it.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error

	DeleteUser(ctx context.Context, userID string) error
}
