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
	"github.com/google/uuid"
)

// tagService implements the TagSvcFacade interface. Tag names are unique per
// user, case-insensitively.
type tagService struct {
	BaseService
	tagRepo portsrepo.TagRepositoryFacade
}

// NewTagService creates a new tag service.
func NewTagService(repo portsrepo.TagRepositoryFacade) portssvc.TagSvcFacade {
	return &tagService{tagRepo: repo}
}

var _ portssvc.TagSvcFacade = (*tagService)(nil)

func (s *tagService) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	tags, err := s.tagRepo.ListTagsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tags", slog.String("user_id", userID))
		return nil, err
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}

func (s *tagService) CreateTag(ctx context.Context, userID string, req dto.CreateTagRequest) (*domain.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tag name is required", apperrors.ErrValidation)
	}

	existing, err := s.tagRepo.FindTagByName(ctx, userID, name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check tag name", slog.String("user_id", userID))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: tag %q already exists", apperrors.ErrDuplicate, name)
	}

	now := time.Now()
	tag := domain.Tag{
		TagID:       uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Category:    req.Category,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.tagRepo.SaveTag(ctx, tag); err != nil {
		s.LogError(ctx, err, "Failed to save tag", slog.String("tag_id", tag.TagID))
		return nil, err
	}

	s.LogInfo(ctx, "Tag created", slog.String("tag_id", tag.TagID), slog.String("name", tag.Name))
	return &tag, nil
}

func (s *tagService) getOwnedTag(ctx context.Context, userID, tagID string) (*domain.Tag, error) {
	tag, err := s.tagRepo.FindTagByID(ctx, tagID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find tag", slog.String("tag_id", tagID))
		}
		return nil, err
	}
	if tag.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, userID string, tagID string, req dto.UpdateTagRequest) (*domain.Tag, error) {
	tag, err := s.getOwnedTag(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: tag name is required", apperrors.ErrValidation)
		}
		if !strings.EqualFold(name, tag.Name) {
			existing, err := s.tagRepo.FindTagByName(ctx, userID, name)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("%w: tag %q already exists", apperrors.ErrDuplicate, name)
			}
		}
		tag.Name = name
	}
	if req.Category != nil {
		tag.Category = *req.Category
	}
	if req.Description != nil {
		tag.Description = *req.Description
	}
	tag.LastUpdatedAt = time.Now()

	if err := s.tagRepo.UpdateTag(ctx, *tag); err != nil {
		s.LogError(ctx, err, "Failed to update tag", slog.String("tag_id", tagID))
		return nil, err
	}

	s.LogInfo(ctx, "Tag updated", slog.String("tag_id", tagID))
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, userID string, tagID string) error {
	if _, err := s.getOwnedTag(ctx, userID, tagID); err != nil {
		return err
	}

	if err := s.tagRepo.DeleteTag(ctx, tagID); err != nil {
		s.LogError(ctx, err, "Failed to delete tag", slog.String("tag_id", tagID))
		return err
	}

	s.LogInfo(ctx, "Tag deleted", slog.String("tag_id", tagID))
	return nil
}
