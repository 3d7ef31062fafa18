package dto

import (
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
)

// CreateTagRequest defines the data needed to create a tag.
type CreateTagRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50"`
	Category    string `json:"category" binding:"required,min=1,max=50"`
	Description string `json:"description" binding:"omitempty,max=200"`
}

// UpdateTagRequest defines a partial tag update.
type UpdateTagRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=50"`
	Category    *string `json:"category" binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

// TagResponse defines the data returned for a tag.
type TagResponse struct {
	TagID       string    `json:"tagID"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToTagResponse converts a domain.Tag to its response DTO.
func ToTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{
		TagID:       t.TagID,
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// ToListTagResponse converts a slice of tags to response DTOs.
func ToListTagResponse(tags []domain.Tag) []TagResponse {
	res := make([]TagResponse, len(tags))
	for i := range tags {
		res[i] = ToTagResponse(&tags[i])
	}
	return res
}
