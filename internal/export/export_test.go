package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
)

type fakeSource struct {
	entries []models.JournalEntry
	moods   []models.Mood
	links   map[int][]models.EntryMood
	tags    map[int][]models.Tag
	err     error

	lastFilter models.EntryFilter
}

func (f *fakeSource) GetEntriesFiltered(filter models.EntryFilter) ([]models.JournalEntry, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.JournalEntry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeSource) GetMoods() ([]models.Mood, error) { return f.moods, nil }

func (f *fakeSource) GetMoodLinksForEntry(id int) ([]models.EntryMood, error) {
	return f.links[id], nil
}

func (f *fakeSource) GetTagsForEntry(id int) ([]models.Tag, error) { return f.tags[id], nil }

func day(s string) time.Time {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func newFixture() *fakeSource {
	return &fakeSource{
		// newest first, as storage returns them
		entries: []models.JournalEntry{
			{ID: 2, Title: "", Content: "<p>Quiet day</p>", EntryDate: day("2024-01-02")},
			{ID: 1, Title: "New year", Content: "<h1>Hello</h1><p>new year</p>", EntryDate: day("2024-01-01")},
		},
		moods: []models.Mood{
			{ID: 1, Name: "Happy", Category: constants.MoodPositive},
			{ID: 2, Name: "Calm", Category: constants.MoodNeutral},
			{ID: 3, Name: "Excited", Category: constants.MoodPositive},
		},
		links: map[int][]models.EntryMood{
			1: {
				{EntryID: 1, MoodID: 1, IsPrimary: true},
				{EntryID: 1, MoodID: 2},
				{EntryID: 1, MoodID: 3},
			},
		},
		tags: map[int][]models.Tag{
			1: {{ID: 4, Name: "Family"}, {ID: 9, Name: "Travel"}},
		},
	}
}

func fixedClock() time.Time { return time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC) }

func TestBuild(t *testing.T) {
	src := newFixture()
	doc, err := NewService(src).WithClock(fixedClock).Build(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", doc.From)
	assert.Equal(t, "2024-01-02", doc.To)
	assert.Equal(t, fixedClock(), doc.GeneratedAt)
	require.Len(t, doc.Entries, 2)

	first := doc.Entries[0]
	assert.Equal(t, "2024-01-01", first.Date)
	assert.Equal(t, "Hello\n\nnew year", first.Content)
	assert.Equal(t, 3, first.Words)
	assert.Equal(t, "Happy", first.PrimaryMood)
	assert.Equal(t, []string{"Calm", "Excited"}, first.SecondaryMoods)
	assert.Equal(t, []string{"Family", "Travel"}, first.Tags)

	second := doc.Entries[1]
	assert.Empty(t, second.PrimaryMood)
	assert.Empty(t, second.Tags)
}

func TestBuild_RangeBoundsReported(t *testing.T) {
	src := newFixture()
	start, end := day("2023-12-25"), day("2024-01-07")

	doc, err := NewService(src).Build(&start, &end)
	require.NoError(t, err)

	assert.Equal(t, "2023-12-25", doc.From)
	assert.Equal(t, "2024-01-07", doc.To)
	assert.Equal(t, &start, src.lastFilter.Start)
	assert.Equal(t, &end, src.lastFilter.End)
}

func TestBuild_NoEntries(t *testing.T) {
	_, err := NewService(&fakeSource{}).Build(nil, nil)
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestBuild_SourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewService(&fakeSource{err: boom}).Build(nil, nil)
	assert.ErrorIs(t, err, boom)
}

func TestPages(t *testing.T) {
	doc := Document{Entries: make([]EntryRecord, 12)}

	pages := doc.Pages(constants.EntriesPerPage)
	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 5)
	assert.Len(t, pages[2], 2)

	assert.Len(t, doc.Pages(0), 3, "non-positive page size falls back to the default")
}

func TestWriteMarkdown_Golden(t *testing.T) {
	doc, err := NewService(newFixture()).WithClock(fixedClock).Build(nil, nil)
	require.NoError(t, err)
	doc.Author = "sam"

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, doc, 1))

	g := goldie.New(t)
	g.Assert(t, "markdown_paged", buf.Bytes())
}

func TestWriteJSON(t *testing.T) {
	doc, err := NewService(newFixture()).WithClock(fixedClock).Build(nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))

	var decoded Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, doc, decoded)
	assert.NotContains(t, buf.String(), "primary_mood\": \"\"", "empty moods are omitted")
}

func TestWriteYAML(t *testing.T) {
	doc, err := NewService(newFixture()).WithClock(fixedClock).Build(nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, doc))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "title: Journal\n"))
	assert.Contains(t, out, "primary_mood: Happy")

	var decoded Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, doc.Entries, decoded.Entries)
}

func TestWrite_Formats(t *testing.T) {
	doc := Document{Title: "Journal", From: "2024-01-01", To: "2024-01-01"}

	tests := []struct {
		format  string
		prefix  string
		wantErr bool
	}{
		{format: "markdown", prefix: "# Journal"},
		{format: "MD", prefix: "# Journal"},
		{format: "json", prefix: "{"},
		{format: "yaml", prefix: "title: Journal"},
		{format: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, doc, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(buf.String(), tt.prefix), buf.String())
		})
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "md", Extension("markdown"))
	assert.Equal(t, "json", Extension("JSON"))
	assert.Equal(t, "yaml", Extension("yml"))
}
