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

// journalService implements the JournalSvcFacade interface.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(repo portsrepo.JournalRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: repo}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateEntry(ctx context.Context, userID string, req dto.CreateJournalRequest) (*domain.JournalEntry, error) {
	now := time.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	entry := domain.JournalEntry{
		JournalID:     uuid.NewString(),
		UserID:        userID,
		Title:         req.Title,
		Content:       req.Content,
		Date:          date,
		Tags:          tags,
		LinkedTradeID: req.LinkedTradeID,
		Images:        images,
		Mood:          domain.JournalMood(req.Mood),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("journal_id", entry.JournalID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created", slog.String("journal_id", entry.JournalID))
	return &entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntriesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("user_id", userID))
		return nil, err
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, nil
}

func (s *journalService) getOwnedEntry(ctx context.Context, userID, journalID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("journal_id", journalID))
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return entry, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, userID string, journalID string) (*domain.JournalEntry, error) {
	return s.getOwnedEntry(ctx, userID, journalID)
}

func (s *journalService) UpdateEntry(ctx context.Context, userID string, journalID string, req dto.UpdateJournalRequest) (*domain.JournalEntry, error) {
	entry, err := s.getOwnedEntry(ctx, userID, journalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Content != nil {
		entry.Content = *req.Content
	}
	if req.Tags != nil {
		entry.Tags = req.Tags
	}
	if req.LinkedTradeID != nil {
		entry.LinkedTradeID = *req.LinkedTradeID
	}
	if req.Images != nil {
		entry.Images = req.Images
	}
	if req.Mood != nil {
		entry.Mood = domain.JournalMood(*req.Mood)
	}
	entry.LastUpdatedAt = time.Now()

	if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("journal_id", journalID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated", slog.String("journal_id", journalID))
	return entry, nil
}

func (s *journalService) DeleteEntry(ctx context.Context, userID string, journalID string) error {
	if _, err := s.getOwnedEntry(ctx, userID, journalID); err != nil {
		return err
	}

	if err := s.journalRepo.DeleteEntry(ctx, journalID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("journal_id", journalID))
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted", slog.String("journal_id", journalID))
	return nil
}

func (s *journalService) DeleteAllEntries(ctx context.Context, userID string) (int64, error) {
	count, err := s.journalRepo.DeleteEntriesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete journal entries", slog.String("user_id", userID))
		return 0, err
	}
	s.LogInfo(ctx, "All journal entries deleted",
		slog.String("user_id", userID),
		slog.Int64("count", count))
	return count, nil
}
