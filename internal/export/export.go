// Package export turns a date range of entries into a plain document and
// renders it as markdown, JSON or YAML.
package export

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

var ErrNoEntries = errors.New("no entries found in the selected date range")

// Source is the read side of storage.Provider used for export.
type Source interface {
	GetEntriesFiltered(models.EntryFilter) ([]models.JournalEntry, error)
	GetMoods() ([]models.Mood, error)
	GetMoodLinksForEntry(entryID int) ([]models.EntryMood, error)
	GetTagsForEntry(entryID int) ([]models.Tag, error)
}

// Document is the renderer-neutral export of a date range.
type Document struct {
	Title       string        `json:"title" yaml:"title"`
	Author      string        `json:"author,omitempty" yaml:"author,omitempty"`
	From        string        `json:"from" yaml:"from"`
	To          string        `json:"to" yaml:"to"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Entries     []EntryRecord `json:"entries" yaml:"entries"`
}

// EntryRecord is one entry with its moods and tags resolved to names and its
// content reduced to plain text.
type EntryRecord struct {
	Date           string   `json:"date" yaml:"date"`
	Title          string   `json:"title" yaml:"title"`
	Content        string   `json:"content" yaml:"content"`
	Words          int      `json:"words" yaml:"words"`
	PrimaryMood    string   `json:"primary_mood,omitempty" yaml:"primary_mood,omitempty"`
	SecondaryMoods []string `json:"secondary_moods,omitempty" yaml:"secondary_moods,omitempty"`
	Tags           []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

type Service struct {
	src Source
	now func() time.Time
}

func NewService(src Source) *Service {
	return &Service{src: src, now: time.Now}
}

// WithClock replaces the clock used for GeneratedAt.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Build collects the entries dated within [start, end], oldest first. Open
// bounds are reported as the first or last entry date. An empty range fails
// with ErrNoEntries.
func (s *Service) Build(start, end *time.Time) (Document, error) {
	entries, err := s.src.GetEntriesFiltered(models.EntryFilter{Start: start, End: end})
	if err != nil {
		return Document{}, fmt.Errorf("failed to load entries: %w", err)
	}
	if len(entries) == 0 {
		return Document{}, ErrNoEntries
	}
	slices.SortFunc(entries, func(a, b models.JournalEntry) int { return a.EntryDate.Compare(b.EntryDate) })

	moods, err := s.src.GetMoods()
	if err != nil {
		return Document{}, fmt.Errorf("failed to load moods: %w", err)
	}
	moodNames := make(map[int]string, len(moods))
	for _, m := range moods {
		moodNames[m.ID] = m.Name
	}

	doc := Document{
		Title:       "Journal",
		From:        utils.FormatDate(entries[0].EntryDate),
		To:          utils.FormatDate(entries[len(entries)-1].EntryDate),
		GeneratedAt: s.now().UTC(),
		Entries:     make([]EntryRecord, 0, len(entries)),
	}
	if start != nil {
		doc.From = utils.FormatDate(*start)
	}
	if end != nil {
		doc.To = utils.FormatDate(*end)
	}

	for _, e := range entries {
		rec, err := s.record(e, moodNames)
		if err != nil {
			return Document{}, err
		}
		doc.Entries = append(doc.Entries, rec)
	}
	return doc, nil
}

func (s *Service) record(e models.JournalEntry, moodNames map[int]string) (EntryRecord, error) {
	rec := EntryRecord{
		Date:    utils.FormatDate(e.EntryDate),
		Title:   e.Title,
		Content: utils.PlainText(e.Content),
		Words:   utils.CountWords(e.Content),
	}

	links, err := s.src.GetMoodLinksForEntry(e.ID)
	if err != nil {
		return EntryRecord{}, fmt.Errorf("failed to load moods for %s: %w", rec.Date, err)
	}
	for _, l := range links {
		name := moodNames[l.MoodID]
		if l.IsPrimary {
			rec.PrimaryMood = name
		} else {
			rec.SecondaryMoods = append(rec.SecondaryMoods, name)
		}
	}

	tags, err := s.src.GetTagsForEntry(e.ID)
	if err != nil {
		return EntryRecord{}, fmt.Errorf("failed to load tags for %s: %w", rec.Date, err)
	}
	for _, t := range tags {
		rec.Tags = append(rec.Tags, t.Name)
	}
	return rec, nil
}

// Pages splits the document's entries into pages of size perPage.
func (d Document) Pages(perPage int) [][]EntryRecord {
	if perPage <= 0 {
		perPage = constants.EntriesPerPage
	}
	return slices.Collect(slices.Chunk(d.Entries, perPage))
}
