package domain

// Tag is a per-user label definition. Names are unique per user.
type Tag struct {
	TagID       string `json:"tagID"`
	UserID      string `json:"userID"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	AuditFields
}
