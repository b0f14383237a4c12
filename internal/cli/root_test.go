package cli_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/cli/clitest"
	dberrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/security"
)

func TestParseDate(t *testing.T) {
	env := clitest.New(t)

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "2024-03-15"},
		{in: "today", want: "2024-03-15"},
		{in: "Yesterday", want: "2024-03-14"},
		{in: "2023-12-31", want: "2023-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := env.Ctx.ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}

	_, err := env.Ctx.ParseDate("31/12/2023")
	assert.Error(t, err)
}

func TestToday_UsesTimezone(t *testing.T) {
	env := clitest.New(t)
	// 23:30 UTC on the 15th is already the 16th in Tokyo.
	env.Ctx.Now = func() time.Time { return time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC) }

	env.Ctx.Config.Timezone = "Asia/Tokyo"
	today, err := env.Ctx.Today()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-16", today.Format("2006-01-02"))

	env.Ctx.Config.Timezone = ""
	settings, err := env.Store.GetSettings()
	require.NoError(t, err)
	settings.Timezone = "UTC"
	require.NoError(t, env.Store.SaveSettings(settings))

	today, err = env.Ctx.Today()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", today.Format("2006-01-02"))
}

func TestParseRange(t *testing.T) {
	env := clitest.New(t)

	r, err := env.Ctx.ParseRange("", "")
	require.NoError(t, err)
	assert.Nil(t, r.Start)
	assert.Nil(t, r.End)

	r, err = env.Ctx.ParseRange("2024-03-01", "today")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", r.Start.Format("2006-01-02"))
	assert.Equal(t, "2024-03-15", r.End.Format("2006-01-02"))

	_, err = env.Ctx.ParseRange("2024-03-10", "2024-03-01")
	assert.Error(t, err)
}

func TestUnlock(t *testing.T) {
	env := clitest.New(t)

	require.NoError(t, env.Ctx.Unlock(""), "a journal without an account is open")
	assert.Empty(t, env.Prompter.Asked)

	require.NoError(t, env.Ctx.Gate.SetupAccount("sam", "1234", "", ""))
	env.Ctx.Gate.Logout()

	err := env.Ctx.Unlock("9999")
	assert.ErrorIs(t, err, security.ErrLocked)
	assert.Contains(t, dberrors.Hint(err), "daybook recover")

	env.Prompter.Inputs = []string{"1234"}
	require.NoError(t, env.Ctx.Unlock(""))
	assert.True(t, env.Ctx.Gate.IsUnlocked())
	assert.Equal(t, []string{"PIN"}, env.Prompter.Asked)
}

func TestResolveMoodsAndTags(t *testing.T) {
	env := clitest.New(t)

	moods, err := env.Ctx.ResolveMoods([]string{"happy", " Calm "})
	require.NoError(t, err)
	require.Len(t, moods, 2)
	assert.Equal(t, "Happy", moods[0].Name)

	_, err = env.Ctx.ResolveMoods([]string{"Ecstatic"})
	assert.Error(t, err)

	_, err = env.Ctx.ResolveTags([]string{"Brand new"}, false)
	assert.Error(t, err)

	tags, err := env.Ctx.ResolveTags([]string{"Brand new", "work"}, true)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.False(t, tags[0].IsPredefined)
	assert.True(t, tags[1].IsPredefined)
}

func TestConfirm(t *testing.T) {
	env := clitest.New(t)

	ok, err := env.Ctx.Confirm(true, "skip")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, env.Prompter.Asked)

	env.Prompter.Confirms = []bool{false}
	ok, err = env.Ctx.Confirm(false, "Really?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsSQLite(t *testing.T) {
	env := clitest.New(t)
	assert.True(t, env.Ctx.IsSQLite())

	env.Ctx.Config.Database = "postgresql://journal@db/daybook"
	assert.False(t, env.Ctx.IsSQLite())
}

var _ cli.Prompter = (*clitest.Prompter)(nil)
