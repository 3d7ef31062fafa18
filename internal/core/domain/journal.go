package domain

import "time"

// JournalMood captures the trader's self-reported state of mind for an entry.
type JournalMood string

const (
	MoodExcellent JournalMood = "EXCELLENT"
	MoodGood      JournalMood = "GOOD"
	MoodNeutral   JournalMood = "NEUTRAL"
	MoodBad       JournalMood = "BAD"
	MoodTerrible  JournalMood = "TERRIBLE"
)

// JournalEntry is a free-form diary entry, optionally linked to a trade.
type JournalEntry struct {
	JournalID     string      `json:"journalID"`
	UserID        string      `json:"userID"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Date          time.Time   `json:"date"`
	Tags          []string    `json:"tags,omitempty"`
	LinkedTradeID string      `json:"linkedTradeID,omitempty"`
	Images        []string    `json:"images,omitempty"`
	Mood          JournalMood `json:"mood,omitempty"`
	AuditFields
}
