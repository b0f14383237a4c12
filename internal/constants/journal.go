package constants

// MoodCategory groups moods into the three buckets used by mood distribution.
type MoodCategory string

const (
	MoodPositive MoodCategory = "Positive"
	MoodNeutral  MoodCategory = "Neutral"
	MoodNegative MoodCategory = "Negative"

	// MaxSecondaryMoods is how many secondary moods an entry may carry alongside its primary.
	MaxSecondaryMoods = 2
)

// MoodCategories lists every category in display order.
var MoodCategories = []MoodCategory{MoodPositive, MoodNeutral, MoodNegative}

// DefaultMood is a seed record for the moods table.
type DefaultMood struct {
	Name     string
	Category MoodCategory
}

// DefaultMoods is the predefined mood set, five per category.
var DefaultMoods = []DefaultMood{
	{"Happy", MoodPositive},
	{"Excited", MoodPositive},
	{"Relaxed", MoodPositive},
	{"Grateful", MoodPositive},
	{"Confident", MoodPositive},

	{"Calm", MoodNeutral},
	{"Thoughtful", MoodNeutral},
	{"Curious", MoodNeutral},
	{"Nostalgic", MoodNeutral},
	{"Bored", MoodNeutral},

	{"Sad", MoodNegative},
	{"Angry", MoodNegative},
	{"Stressed", MoodNegative},
	{"Lonely", MoodNegative},
	{"Anxious", MoodNegative},
}

// DefaultTags is the predefined tag set.
var DefaultTags = []string{
	"Work", "Career", "Studies", "Family", "Friends", "Relationships",
	"Health", "Fitness", "Personal Growth", "Self-care", "Hobbies", "Travel",
	"Nature", "Finance", "Spirituality", "Birthday", "Holiday", "Vacation",
	"Celebration", "Exercise", "Reading", "Writing", "Cooking", "Meditation",
	"Yoga", "Music", "Shopping", "Parenting", "Projects", "Planning", "Reflection",
}

// IsValidMoodCategory reports whether c names one of the three categories.
func IsValidMoodCategory(c string) bool {
	for _, cat := range MoodCategories {
		if string(cat) == c {
			return true
		}
	}
	return false
}
