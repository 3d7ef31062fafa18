package dto

import (
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
)

// CreateJournalRequest defines the data needed to create a journal entry.
type CreateJournalRequest struct {
	Title         string     `json:"title" binding:"required,min=1"`
	Content       string     `json:"content" binding:"required,min=1"`
	Date          *time.Time `json:"date"` // Optional, defaults to now
	Tags          []string   `json:"tags"`
	LinkedTradeID string     `json:"linkedTrade"`
	Images        []string   `json:"images"`
	Mood          string     `json:"mood" binding:"omitempty,oneof=EXCELLENT GOOD NEUTRAL BAD TERRIBLE"`
}

// UpdateJournalRequest defines a partial journal entry update.
type UpdateJournalRequest struct {
	Title         *string  `json:"title" binding:"omitempty,min=1"`
	Content       *string  `json:"content" binding:"omitempty,min=1"`
	Tags          []string `json:"tags"`
	LinkedTradeID *string  `json:"linkedTrade"`
	Images        []string `json:"images"`
	Mood          *string  `json:"mood" binding:"omitempty,oneof=EXCELLENT GOOD NEUTRAL BAD TERRIBLE"`
}

// JournalResponse defines the data returned for a journal entry, with the
// linked trade resolved when present.
type JournalResponse struct {
	JournalID   string         `json:"journalID"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Date        time.Time      `json:"date"`
	Tags        []string       `json:"tags,omitempty"`
	LinkedTrade *TradeResponse `json:"linkedTrade,omitempty"`
	Images      []string       `json:"images,omitempty"`
	Mood        string         `json:"mood,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// ToJournalResponse converts a domain.JournalEntry plus its optional linked
// trade to a response DTO.
func ToJournalResponse(e *domain.JournalEntry, linked *domain.Trade) JournalResponse {
	resp := JournalResponse{
		JournalID: e.JournalID,
		Title:     e.Title,
		Content:   e.Content,
		Date:      e.Date,
		Tags:      e.Tags,
		Images:    e.Images,
		Mood:      string(e.Mood),
		CreatedAt: e.CreatedAt,
	}
	if linked != nil {
		t := ToTradeResponse(linked)
		resp.LinkedTrade = &t
	}
	return resp
}
