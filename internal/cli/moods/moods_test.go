package moods

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daybook/internal/cli/clitest"
	"github.com/julianstephens/daybook/internal/models"
)

func TestListCmd(t *testing.T) {
	env := clitest.New(t)

	require.NoError(t, (&ListCmd{}).Run(env.Ctx))
	out := env.Out.String()
	for _, want := range []string{"Positive", "Neutral", "Negative", "Happy", "Calm", "Anxious"} {
		assert.Contains(t, out, want)
	}

	env.Out.Reset()
	require.NoError(t, (&ListCmd{Category: "negative"}).Run(env.Ctx))
	assert.Contains(t, env.Out.String(), "Sad")
	assert.NotContains(t, env.Out.String(), "Happy")

	assert.Error(t, (&ListCmd{Category: "Elated"}).Run(env.Ctx))
}

func TestAddCmd(t *testing.T) {
	env := clitest.New(t)

	require.NoError(t, (&AddCmd{Name: "Hopeful", Category: "positive"}).Run(env.Ctx))
	m, err := env.Store.GetMoodByName("hopeful")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Positive", string(m.Category))

	assert.Error(t, (&AddCmd{Name: "HAPPY", Category: "Positive"}).Run(env.Ctx), "duplicate names are refused")
	assert.Error(t, (&AddCmd{Name: "Meh", Category: "Mixed"}).Run(env.Ctx))
}

func TestSetCmd(t *testing.T) {
	env := clitest.New(t)
	entry, err := env.Store.SaveEntry(models.JournalEntry{Content: "x", EntryDate: clitest.Today})
	require.NoError(t, err)

	require.NoError(t, (&SetCmd{Date: "today", Primary: "Anxious", Secondary: []string{"Curious"}}).Run(env.Ctx))
	links, err := env.Store.GetMoodLinksForEntry(entry.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.True(t, links[0].IsPrimary)

	require.NoError(t, (&SetCmd{Date: "today"}).Run(env.Ctx))
	links, err = env.Store.GetMoodLinksForEntry(entry.ID)
	require.NoError(t, err)
	assert.Empty(t, links)

	assert.Error(t, (&SetCmd{Date: "today", Secondary: []string{"Calm"}}).Run(env.Ctx))
	assert.Error(t, (&SetCmd{Date: "2024-01-01", Primary: "Happy"}).Run(env.Ctx), "no entry on that date")
}
