package entries

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

type WriteCmd struct {
	cli.Locked `embed:""`

	Date      string   `help:"Entry date: YYYY-MM-DD, today or yesterday." default:"today"`
	Title     string   `help:"Entry title."`
	Content   string   `help:"Entry body, HTML or plain text."`
	File      string   `help:"Read the body from a file, or - for stdin."`
	Mood      string   `help:"Primary mood."`
	Secondary []string `help:"Secondary moods, at most two." sep:","`
	Tag       []string `help:"Tags. Unknown names become custom tags." sep:","`
}

func (c *WriteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Unlock(c.PIN); err != nil {
		return err
	}
	if c.Mood == "" && len(c.Secondary) > 0 {
		return errors.New("--secondary requires --mood")
	}

	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	content, err := c.body()
	if err != nil {
		return err
	}

	entry := models.JournalEntry{EntryDate: date, Title: c.Title, Content: content}
	existing, err := ctx.Store.GetEntryByDate(date)
	if err != nil {
		return fmt.Errorf("failed to load entry: %w", err)
	}
	if existing != nil {
		if c.Title == "" {
			entry.Title = existing.Title
		}
		if content == "" {
			entry.Content = existing.Content
		}
	} else if content == "" {
		return errors.New("a new entry needs --content or --file")
	}

	saved, err := ctx.Store.SaveEntry(entry)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	if err := applyMoods(ctx, saved.ID, c.Mood, c.Secondary); err != nil {
		return err
	}
	if len(c.Tag) > 0 {
		if err := applyTags(ctx, saved.ID, c.Tag); err != nil {
			return err
		}
	}

	verb := "Created"
	if existing != nil {
		verb = "Updated"
	}
	ctx.Printf("✓ %s entry for %s (%d words)\n", verb, utils.FormatDate(saved.EntryDate), utils.CountWords(saved.Content))
	return nil
}

func (c *WriteCmd) body() (string, error) {
	switch {
	case c.Content != "" && c.File != "":
		return "", errors.New("use either --content or --file, not both")
	case c.File == "-":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	case c.File != "":
		b, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", c.File, err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	return c.Content, nil
}

// applyMoods replaces the entry's moods when a primary mood is given.
func applyMoods(ctx *cli.Context, entryID int, primary string, secondary []string) error {
	if primary == "" {
		return nil
	}
	if len(secondary) > constants.MaxSecondaryMoods {
		logger.Warn("extra secondary moods ignored", "given", len(secondary))
		ctx.Println(cli.WarningStyle.Render(fmt.Sprintf("Only the first %d secondary moods are kept.", constants.MaxSecondaryMoods)))
	}

	moods, err := ctx.ResolveMoods(append([]string{primary}, secondary...))
	if err != nil {
		return err
	}
	ids := make([]int, 0, len(moods)-1)
	for _, m := range moods[1:] {
		ids = append(ids, m.ID)
	}
	if err := ctx.Store.SaveEntryMoods(entryID, moods[0].ID, ids); err != nil {
		return fmt.Errorf("failed to save moods: %w", err)
	}
	return nil
}

func applyTags(ctx *cli.Context, entryID int, names []string) error {
	tags, err := ctx.ResolveTags(names, true)
	if err != nil {
		return err
	}
	ids := make([]int, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	if err := ctx.Store.SaveEntryTags(entryID, ids); err != nil {
		return fmt.Errorf("failed to save tags: %w", err)
	}
	return nil
}
