package domain

// FeatureCategory distinguishes user-filed requests from site announcements.
type FeatureCategory string

const (
	FeatureCategoryFeature      FeatureCategory = "feature"
	FeatureCategoryAnnouncement FeatureCategory = "announcement"
)

// FeatureStatus is the workflow state of a feature request.
type FeatureStatus string

const (
	FeatureStatusPending    FeatureStatus = "pending"
	FeatureStatusInProgress FeatureStatus = "in-progress"
	FeatureStatusCompleted  FeatureStatus = "completed"
)

// Feature is a site-wide feature request with one-vote-per-user tallying.
// Votes always equals len(VoterIDs).
type Feature struct {
	FeatureID   string          `json:"featureID"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    FeatureCategory `json:"category"`
	Status      FeatureStatus   `json:"status"`
	Votes       int             `json:"votes"`
	VoterIDs    []string        `json:"voterIDs"`
	CreatedBy   string          `json:"createdBy"`
	AuditFields
}

// HasVoted reports whether the given user is in the voter set.
func (f *Feature) HasVoted(userID string) bool {
	for _, v := range f.VoterIDs {
		if v == userID {
			return true
		}
	}
	return false
}
