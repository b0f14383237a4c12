// Package analytics derives journal statistics from stored entries. Nothing it
// computes is persisted.
package analytics

import (
	"math"
	"slices"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

// Source is the read-only slice of storage.Provider the engine needs.
type Source interface {
	GetEntries() ([]models.JournalEntry, error)
	GetEntriesFiltered(models.EntryFilter) ([]models.JournalEntry, error)
	GetPrimaryMoods(start, end *time.Time) (map[int]models.Mood, error)
	GetTagUsage(start, end *time.Time) ([]models.TagCount, error)
}

// Range bounds a query by entry date, inclusive on both ends. Nil means open.
type Range struct {
	Start *time.Time
	End   *time.Time
}

func (r Range) filter() models.EntryFilter {
	return models.EntryFilter{Start: r.Start, End: r.End}
}

// DailyWordCount is the word count of the entry written on Date.
type DailyWordCount struct {
	Date  time.Time `json:"date" yaml:"date"`
	Words int       `json:"words" yaml:"words"`
}

type Engine struct {
	src Source
	now func() time.Time
	loc *time.Location
}

type Option func(*Engine)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the timezone in which "today" is observed.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

func NewEngine(src Source, opts ...Option) *Engine {
	e := &Engine{src: src, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today returns the current calendar date in the engine's location.
func (e *Engine) Today() time.Time {
	return utils.Today(e.now(), e.loc)
}

// MoodDistribution counts entries in r by their primary mood's category. Every
// category is present in the result; entries without a primary mood are skipped.
func (e *Engine) MoodDistribution(r Range) (map[constants.MoodCategory]int, error) {
	dist := make(map[constants.MoodCategory]int, len(constants.MoodCategories))
	for _, c := range constants.MoodCategories {
		dist[c] = 0
	}

	primaries, err := e.src.GetPrimaryMoods(r.Start, r.End)
	if err != nil {
		return dist, err
	}
	for _, m := range primaries {
		if _, ok := dist[m.Category]; ok {
			dist[m.Category]++
		}
	}
	return dist, nil
}

// MostFrequentMood returns the primary mood used by the most entries in r, or nil
// when no entry has one. Ties go to the mood that reached the winning count first
// while walking entries newest-created first.
func (e *Engine) MostFrequentMood(r Range) (*models.Mood, error) {
	entries, err := e.src.GetEntriesFiltered(r.filter())
	if err != nil {
		return nil, err
	}
	primaries, err := e.src.GetPrimaryMoods(r.Start, r.End)
	if err != nil {
		return nil, err
	}

	counts := map[int]int{}
	var best *models.Mood
	bestCount := 0
	for _, entry := range entries {
		m, ok := primaries[entry.ID]
		if !ok {
			continue
		}
		counts[m.ID]++
		if counts[m.ID] > bestCount {
			bestCount = counts[m.ID]
			best = &m
		}
	}
	return best, nil
}

// MostUsedTags returns tag usage in r, most used first. A failing query is
// logged and reported as no data.
func (e *Engine) MostUsedTags(r Range) []models.TagCount {
	usage, err := e.src.GetTagUsage(r.Start, r.End)
	if err != nil {
		logger.Warn("Tag usage query failed", "error", err)
		return []models.TagCount{}
	}
	return usage
}

// WordCountTrend returns one word count per entry in r, oldest date first.
func (e *Engine) WordCountTrend(r Range) ([]DailyWordCount, error) {
	entries, err := e.src.GetEntriesFiltered(r.filter())
	if err != nil {
		return nil, err
	}

	trend := make([]DailyWordCount, 0, len(entries))
	for _, entry := range entries {
		trend = append(trend, DailyWordCount{
			Date:  utils.DayOf(entry.EntryDate),
			Words: WordCount(entry.Content),
		})
	}
	slices.SortFunc(trend, func(a, b DailyWordCount) int { return a.Date.Compare(b.Date) })
	return trend, nil
}

// WordCount counts the words of an HTML entry body.
func WordCount(html string) int {
	return utils.CountWords(html)
}

// AverageWordCount is the mean words per entry in r, rounded half-to-even to one
// decimal place. Zero when r has no entries.
func (e *Engine) AverageWordCount(r Range) (float64, error) {
	trend, err := e.WordCountTrend(r)
	if err != nil || len(trend) == 0 {
		return 0, err
	}
	total := 0
	for _, d := range trend {
		total += d.Words
	}
	return roundOneDecimal(float64(total) / float64(len(trend))), nil
}

func roundOneDecimal(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

// entryDates returns the distinct calendar dates that have entries, newest first.
func (e *Engine) entryDates() ([]time.Time, error) {
	entries, err := e.src.GetEntries()
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		dates = append(dates, utils.DayOf(entry.EntryDate))
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return b.Compare(a) })
	return slices.CompactFunc(dates, time.Time.Equal), nil
}

// CurrentStreak counts consecutive days with entries ending at the most recent
// entry. The streak is broken (0) unless that entry is from today or yesterday.
func (e *Engine) CurrentStreak() (int, error) {
	dates, err := e.entryDates()
	if err != nil || len(dates) == 0 {
		return 0, err
	}

	today := e.Today()
	if gap := utils.DaysBetween(dates[0], today); gap != 0 && gap != 1 {
		return 0, nil
	}

	streak := 0
	expected := dates[0]
	for _, d := range dates {
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak, nil
}

// LongestStreak is the longest run of consecutive days with entries; 1 for any
// non-empty journal.
func (e *Engine) LongestStreak() (int, error) {
	dates, err := e.entryDates()
	if err != nil || len(dates) == 0 {
		return 0, err
	}
	slices.Reverse(dates)

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if utils.DaysBetween(dates[i-1], dates[i]) == 1 {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}
	return longest, nil
}

// MissedDays lists the days in r without an entry, oldest first. An open start
// defaults to the earliest entry and an open end to today. An empty journal has
// no missed days, whatever the range.
func (e *Engine) MissedDays(r Range) ([]time.Time, error) {
	dates, err := e.entryDates()
	if err != nil {
		return nil, err
	}

	missed := []time.Time{}
	if len(dates) == 0 {
		return missed, nil
	}
	start := dates[len(dates)-1]
	if r.Start != nil {
		start = utils.DayOf(*r.Start)
	}
	end := e.Today()
	if r.End != nil {
		end = utils.DayOf(*r.End)
	}

	written := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		written[d] = true
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !written[d] {
			missed = append(missed, d)
		}
	}
	return missed, nil
}
