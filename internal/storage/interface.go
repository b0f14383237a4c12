package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
)

var (
	// ErrNotFound is returned by lookups by id when the row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPredefinedTag is returned when deleting a tag that came from seeding.
	ErrPredefinedTag = errors.New("predefined tags cannot be deleted")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Moods
	GetMoods() ([]models.Mood, error)
	GetMood(id int) (models.Mood, error)
	GetMoodByName(name string) (*models.Mood, error)
	GetMoodsByCategory(category constants.MoodCategory) ([]models.Mood, error)
	AddMood(models.Mood) (models.Mood, error)
	SeedMoods([]constants.DefaultMood) (int, error)

	// Tags
	GetTags() ([]models.Tag, error)
	GetTag(id int) (models.Tag, error)
	GetTagByName(name string) (*models.Tag, error)
	AddTag(name string) (models.Tag, error)
	DeleteTag(id int) error
	SeedTags([]string) (int, error)

	// Entries
	AddEntry(models.JournalEntry) (models.JournalEntry, error)
	GetEntry(id int) (models.JournalEntry, error)
	GetEntryByDate(date time.Time) (*models.JournalEntry, error)
	SaveEntry(models.JournalEntry) (models.JournalEntry, error)
	UpdateEntry(models.JournalEntry) error
	DeleteEntry(id int) error
	GetEntries() ([]models.JournalEntry, error)
	GetEntriesFiltered(models.EntryFilter) ([]models.JournalEntry, error)

	// Entry links
	SaveEntryMoods(entryID, primaryMoodID int, secondaryMoodIDs []int) error
	SaveEntryTags(entryID int, tagIDs []int) error
	GetMoodLinksForEntry(entryID int) ([]models.EntryMood, error)
	GetMoodsForEntry(entryID int) ([]models.Mood, error)
	GetTagsForEntry(entryID int) ([]models.Tag, error)

	// Aggregates
	GetPrimaryMoods(start, end *time.Time) (map[int]models.Mood, error)
	GetTagUsage(start, end *time.Time) ([]models.TagCount, error)

	// Security
	GetSecurity() (*models.Security, error)
	SaveSecurity(models.Security) error
	UpdatePinHash(hash string) error

	// Utils
	GetConfigPath() string
}
