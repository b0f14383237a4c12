package models

import (
	"time"

	"github.com/julianstephens/daybook/internal/constants"
)

// Mood is a predefined feeling an entry can be tagged with.
type Mood struct {
	ID       int                    `json:"id"`
	Name     string                 `json:"name"`
	Category constants.MoodCategory `json:"category"`
}

// Tag is a free-form label; predefined tags come from seeding and cannot be deleted.
type Tag struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	IsPredefined bool   `json:"is_predefined"`
}

// JournalEntry is the single entry written for one calendar day.
type JournalEntry struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`    // HTML body
	EntryDate time.Time `json:"entry_date"` // civil date, UTC midnight
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryMood links an entry to a mood.
type EntryMood struct {
	ID        int  `json:"id"`
	EntryID   int  `json:"entry_id"`
	MoodID    int  `json:"mood_id"`
	IsPrimary bool `json:"is_primary"`
}

type EntryTag struct {
	ID      int `json:"id"`
	EntryID int `json:"entry_id"`
	TagID   int `json:"tag_id"`
}

// Security is the singleton account record guarding the journal.
type Security struct {
	Username           string    `json:"username"`
	PinHash            string    `json:"-"`
	RecoveryQuestion   string    `json:"recovery_question"`
	RecoveryAnswerHash string    `json:"-"`
	CreatedAt          time.Time `json:"created_at"`
}

// TagCount is a tag name with the number of entries carrying it.
type TagCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// EntryFilter narrows GetEntriesFiltered. Nil bounds and empty id lists mean no restriction.
type EntryFilter struct {
	Start   *time.Time
	End     *time.Time
	MoodIDs []int
	TagIDs  []int
}
