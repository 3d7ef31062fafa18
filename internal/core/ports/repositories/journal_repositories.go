package repositories

import (
	"context"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
)

// JournalRepositoryFacade defines storage operations for journal entries.
type JournalRepositoryFacade interface {
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
	FindEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// ListEntriesByUser returns the user's entries newest-first by entry date.
	ListEntriesByUser(ctx context.Context, userID string) ([]domain.JournalEntry, error)

	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error
	DeleteEntry(ctx context.Context, journalID string) error
	DeleteEntriesByUser(ctx context.Context, userID string) (int64, error)
}
