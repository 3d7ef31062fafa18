package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portsrepo "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/repositories"
	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/cryptojournal/cryptojournal_backend/internal/utils"
	"github.com/google/uuid"
)

// userService implements the UserSvcFacade interface.
type userService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	tradeRepo   portsrepo.TradeRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	tagRepo     portsrepo.TagRepositoryFacade
}

// NewUserService creates a new user service. The extra repositories back the
// full account-deletion cascade.
func NewUserService(
	userRepo portsrepo.UserRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	tradeRepo portsrepo.TradeRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	tagRepo portsrepo.TagRepositoryFacade,
) portssvc.UserSvcFacade {
	return &userService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		tradeRepo:   tradeRepo,
		journalRepo: journalRepo,
		tagRepo:     tagRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing email")
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.UserRoleUser,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user by email")
		return nil, err
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			existing, err := s.userRepo.FindUserByEmail(ctx, email)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
			}
			user.Email = email
		}
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.LogError(ctx, err, "Failed to hash password")
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.LastUpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Profile updated", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.FindUserByGoogleID(ctx, info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// Link by email when the user registered with a password first.
	email := strings.ToLower(strings.TrimSpace(info.Email))
	user, err = s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		user.GoogleID = info.ID
		user.LastUpdatedAt = time.Now()
		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			s.LogError(ctx, err, "Failed to link google identity", slog.String("user_id", user.UserID))
			return nil, err
		}
		s.LogInfo(ctx, "Google identity linked", slog.String("user_id", user.UserID))
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	newUser := domain.User{
		UserID:   uuid.NewString(),
		Name:     info.Name,
		Email:    email,
		Role:     domain.UserRoleUser,
		GoogleID: info.ID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to create google user")
		return nil, err
	}

	s.LogInfo(ctx, "User registered via google", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

func (s *userService) StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, tokenHash, expiresAt); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

func (s *userService) DeleteUserData(ctx context.Context, userID string) error {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}

	if err := s.tradeRepo.DeleteTradesByUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user trades", slog.String("user_id", userID))
		return err
	}
	if _, err := s.journalRepo.DeleteEntriesByUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user journal entries", slog.String("user_id", userID))
		return err
	}
	if err := s.tagRepo.DeleteTagsByUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user tags", slog.String("user_id", userID))
		return err
	}
	if err := s.accountRepo.DeleteAccountsByUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user accounts", slog.String("user_id", userID))
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "User data deleted", slog.String("user_id", userID))
	return nil
}
