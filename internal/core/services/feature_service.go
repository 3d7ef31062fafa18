package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/apperrors"
	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portsrepo "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/repositories"
	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/google/uuid"
)

// featureService implements the FeatureSvcFacade interface. Vote counts are
// maintained by the repository so a voter is counted at most once.
type featureService struct {
	BaseService
	featureRepo portsrepo.FeatureRepositoryFacade
}

// NewFeatureService creates a new feature request service.
func NewFeatureService(repo portsrepo.FeatureRepositoryFacade) portssvc.FeatureSvcFacade {
	return &featureService{featureRepo: repo}
}

var _ portssvc.FeatureSvcFacade = (*featureService)(nil)

func (s *featureService) ListFeatures(ctx context.Context, category string) ([]domain.Feature, error) {
	features, err := s.featureRepo.ListFeatures(ctx, domain.FeatureCategory(category))
	if err != nil {
		s.LogError(ctx, err, "Failed to list features", slog.String("category", category))
		return nil, err
	}
	if features == nil {
		features = []domain.Feature{}
	}
	return features, nil
}

func (s *featureService) CreateFeature(ctx context.Context, userID string, req dto.CreateFeatureRequest) (*domain.Feature, error) {
	category := domain.FeatureCategory(req.Category)
	if category == "" {
		category = domain.FeatureCategoryFeature
	}

	now := time.Now()
	feature := domain.Feature{
		FeatureID:   uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Status:      domain.FeatureStatusPending,
		Votes:       0,
		VoterIDs:    []string{},
		CreatedBy:   userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.featureRepo.SaveFeature(ctx, feature); err != nil {
		s.LogError(ctx, err, "Failed to save feature", slog.String("feature_id", feature.FeatureID))
		return nil, err
	}

	s.LogInfo(ctx, "Feature request created", slog.String("feature_id", feature.FeatureID))
	return &feature, nil
}

func (s *featureService) VoteFeature(ctx context.Context, userID string, featureID string) (*domain.Feature, error) {
	feature, err := s.featureRepo.AddVote(ctx, featureID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to vote", slog.String("feature_id", featureID))
		}
		return nil, err
	}
	return feature, nil
}

func (s *featureService) UnvoteFeature(ctx context.Context, userID string, featureID string) (*domain.Feature, error) {
	feature, err := s.featureRepo.RemoveVote(ctx, featureID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) {
			s.LogError(ctx, err, "Failed to remove vote", slog.String("feature_id", featureID))
		}
		return nil, err
	}
	return feature, nil
}
