package services

import (
	"context"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
)

// JournalSvcFacade defines operations on journal entries.
type JournalSvcFacade interface {
	CreateEntry(ctx context.Context, userID string, req dto.CreateJournalRequest) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, userID string, journalID string) (*domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, userID string, journalID string, req dto.UpdateJournalRequest) (*domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, userID string, journalID string) error

	// DeleteAllEntries removes every entry the user owns and reports the count.
	DeleteAllEntries(ctx context.Context, userID string) (int64, error)
}

// TagSvcFacade defines operations on per-user tag definitions.
type TagSvcFacade interface {
	ListTags(ctx context.Context, userID string) ([]domain.Tag, error)
	CreateTag(ctx context.Context, userID string, req dto.CreateTagRequest) (*domain.Tag, error)
	UpdateTag(ctx context.Context, userID string, tagID string, req dto.UpdateTagRequest) (*domain.Tag, error)
	DeleteTag(ctx context.Context, userID string, tagID string) error
}

// FeatureSvcFacade defines operations on feature requests and voting.
type FeatureSvcFacade interface {
	ListFeatures(ctx context.Context, category string) ([]domain.Feature, error)
	CreateFeature(ctx context.Context, userID string, req dto.CreateFeatureRequest) (*domain.Feature, error)
	VoteFeature(ctx context.Context, userID string, featureID string) (*domain.Feature, error)
	UnvoteFeature(ctx context.Context, userID string, featureID string) (*domain.Feature, error)
}
