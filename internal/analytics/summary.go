package analytics

import (
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
)

// Summary gathers every statistic for one range.
type Summary struct {
	Entries          int                            `json:"entries" yaml:"entries"`
	CurrentStreak    int                            `json:"current_streak" yaml:"current_streak"`
	LongestStreak    int                            `json:"longest_streak" yaml:"longest_streak"`
	MissedDays       []time.Time                    `json:"missed_days" yaml:"missed_days"`
	AverageWordCount float64                        `json:"average_word_count" yaml:"average_word_count"`
	TotalWords       int                            `json:"total_words" yaml:"total_words"`
	MoodDistribution map[constants.MoodCategory]int `json:"mood_distribution" yaml:"mood_distribution"`
	MostFrequentMood *models.Mood                   `json:"most_frequent_mood,omitempty" yaml:"most_frequent_mood,omitempty"`
	TopTags          []models.TagCount              `json:"top_tags" yaml:"top_tags"`
}

// Summary computes every statistic for r. Streaks always span the whole journal.
func (e *Engine) Summary(r Range) (Summary, error) {
	var s Summary

	trend, err := e.WordCountTrend(r)
	if err != nil {
		return s, err
	}
	s.Entries = len(trend)
	for _, d := range trend {
		s.TotalWords += d.Words
	}
	if s.Entries > 0 {
		s.AverageWordCount = roundOneDecimal(float64(s.TotalWords) / float64(s.Entries))
	}

	if s.CurrentStreak, err = e.CurrentStreak(); err != nil {
		return s, err
	}
	if s.LongestStreak, err = e.LongestStreak(); err != nil {
		return s, err
	}
	if s.MissedDays, err = e.MissedDays(r); err != nil {
		return s, err
	}
	if s.MoodDistribution, err = e.MoodDistribution(r); err != nil {
		return s, err
	}
	if s.MostFrequentMood, err = e.MostFrequentMood(r); err != nil {
		return s, err
	}
	s.TopTags = e.MostUsedTags(r)
	return s, nil
}
