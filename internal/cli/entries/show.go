package entries

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

type ShowCmd struct {
	cli.Locked `embed:""`

	Date string `arg:"" optional:"" help:"Entry date: YYYY-MM-DD, today or yesterday." default:"today"`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Unlock(c.PIN); err != nil {
		return err
	}
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	entry, err := ctx.EntryForDate(date)
	if err != nil {
		return err
	}

	moods, err := ctx.Store.GetMoodsForEntry(entry.ID)
	if err != nil {
		return fmt.Errorf("failed to load moods: %w", err)
	}
	tags, err := ctx.Store.GetTagsForEntry(entry.ID)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}

	ctx.Println(renderEntry(entry, moods, tags))
	return nil
}

func renderEntry(entry models.JournalEntry, moods []models.Mood, tags []models.Tag) string {
	title := entry.Title
	if title == "" {
		title = "Untitled"
	}

	lines := []string{
		cli.TitleStyle.Render(title),
		cli.MutedStyle.Render(fmt.Sprintf("%s · %d words", utils.FormatDate(entry.EntryDate), utils.CountWords(entry.Content))),
	}
	if len(moods) > 0 {
		names := make([]string, len(moods))
		for i, m := range moods {
			names[i] = cli.MoodStyle(m.Category).Render(m.Name)
		}
		lines = append(lines, cli.Label("Mood", strings.Join(names, ", ")))
	}
	if len(tags) > 0 {
		names := make([]string, len(tags))
		for i, t := range tags {
			names[i] = t.Name
		}
		lines = append(lines, cli.Label("Tags", strings.Join(names, ", ")))
	}
	lines = append(lines, "", utils.PlainText(entry.Content))

	return cli.PanelStyle.Render(strings.Join(lines, "\n"))
}
