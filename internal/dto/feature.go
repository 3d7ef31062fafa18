package dto

import (
	"time"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
)

// CreateFeatureRequest defines the data needed to file a feature request.
type CreateFeatureRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"required,min=1,max=500"`
	Category    string `json:"category" binding:"omitempty,oneof=feature announcement"`
}

// FeatureResponse defines the data returned for a feature request.
type FeatureResponse struct {
	FeatureID   string                 `json:"featureID"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Category    domain.FeatureCategory `json:"category"`
	Status      domain.FeatureStatus   `json:"status"`
	Votes       int                    `json:"votes"`
	VoterIDs    []string               `json:"voters"`
	CreatedBy   string                 `json:"createdBy"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// ToFeatureResponse converts a domain.Feature to its response DTO.
func ToFeatureResponse(f *domain.Feature) FeatureResponse {
	return FeatureResponse{
		FeatureID:   f.FeatureID,
		Title:       f.Title,
		Description: f.Description,
		Category:    f.Category,
		Status:      f.Status,
		Votes:       f.Votes,
		VoterIDs:    f.VoterIDs,
		CreatedBy:   f.CreatedBy,
		CreatedAt:   f.CreatedAt,
	}
}

// ToListFeatureResponse converts a slice of features to response DTOs.
func ToListFeatureResponse(features []domain.Feature) []FeatureResponse {
	res := make([]FeatureResponse, len(features))
	for i := range features {
		res[i] = ToFeatureResponse(&features[i])
	}
	return res
}
