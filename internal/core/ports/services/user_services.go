package services

import (
	"context"
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// UserSvcFacade defines user account operations.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate verifies email/password and returns the user, or
	// ErrUnauthorized on any mismatch.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)

	// FindOrCreateGoogleUser links a Google identity to an existing user by
	// google id or email, creating a new user when neither matches.
	FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)

	// StoreRefreshToken persists the hash of the user's current refresh token.
	StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error

	// DeleteUserData removes the user and everything they own: trades, journal
	// entries, tags, accounts and their transactions.
	DeleteUserData(ctx context.Context, userID string) error
}

// TokenSvcFacade issues and validates authentication tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// IssueRefreshToken generates a refresh token, persists its hash on the
	// user, and returns the raw token with its expiry.
	IssueRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateRefreshToken checks the raw token against the user's stored hash
	// and expiry, returning the user when valid.
	ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
}

// GoogleOAuthSvcFacade wraps the Google sign-in flow.
type GoogleOAuthSvcFacade interface {
	GenerateStateString(ctx context.Context) (string, error)
	GetGoogleLoginURL(ctx context.Context, state string) string
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// ServiceContainer bundles every service the handlers need.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Trade       TradeSvcFacade
	Stats       StatsSvcFacade
	Journal     JournalSvcFacade
	Tag         TagSvcFacade
	Feature     FeatureSvcFacade
	User        UserSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
}
