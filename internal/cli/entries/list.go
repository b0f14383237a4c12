package entries

import (
	"fmt"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

type ListCmd struct {
	cli.Locked `embed:""`

	From string   `help:"First date to include."`
	To   string   `help:"Last date to include."`
	Mood []string `help:"Only entries with any of these moods." sep:","`
	Tag  []string `help:"Only entries with any of these tags." sep:","`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Unlock(c.PIN); err != nil {
		return err
	}
	r, err := ctx.ParseRange(c.From, c.To)
	if err != nil {
		return err
	}

	filter := models.EntryFilter{Start: r.Start, End: r.End}
	moods, err := ctx.ResolveMoods(c.Mood)
	if err != nil {
		return err
	}
	for _, m := range moods {
		filter.MoodIDs = append(filter.MoodIDs, m.ID)
	}
	tags, err := ctx.ResolveTags(c.Tag, false)
	if err != nil {
		return err
	}
	for _, t := range tags {
		filter.TagIDs = append(filter.TagIDs, t.ID)
	}

	entries, err := ctx.Store.GetEntriesFiltered(filter)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		ctx.Println("No entries found.")
		return nil
	}

	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = cli.MutedStyle.Render("(untitled)")
		}
		ctx.Printf("%s  %-40s %s\n",
			utils.FormatDate(e.EntryDate), title,
			cli.MutedStyle.Render(fmt.Sprintf("%d words", utils.CountWords(e.Content))))
	}
	ctx.Printf("\n%d entries\n", len(entries))
	return nil
}
