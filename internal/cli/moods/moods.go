package moods

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
)

type ListCmd struct {
	Category string `help:"Only list moods in this category (Positive, Neutral, Negative)."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	categories := constants.MoodCategories
	if c.Category != "" {
		cat, err := parseCategory(c.Category)
		if err != nil {
			return err
		}
		categories = []constants.MoodCategory{cat}
	}

	for _, cat := range categories {
		moods, err := ctx.Store.GetMoodsByCategory(cat)
		if err != nil {
			return fmt.Errorf("failed to list moods: %w", err)
		}
		names := make([]string, len(moods))
		for i, m := range moods {
			names[i] = m.Name
		}
		ctx.Printf("%s %s\n", cli.MoodStyle(cat).Bold(true).Render(fmt.Sprintf("%-9s", cat)), strings.Join(names, ", "))
	}
	return nil
}

func parseCategory(s string) (constants.MoodCategory, error) {
	for _, cat := range constants.MoodCategories {
		if strings.EqualFold(string(cat), strings.TrimSpace(s)) {
			return cat, nil
		}
	}
	return "", fmt.Errorf("unknown mood category %q (use Positive, Neutral or Negative)", s)
}

type AddCmd struct {
	Name     string `arg:"" help:"Mood name."`
	Category string `required:"" help:"Positive, Neutral or Negative."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	cat, err := parseCategory(c.Category)
	if err != nil {
		return err
	}
	existing, err := ctx.Store.GetMoodByName(c.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("mood %q already exists", existing.Name)
	}
	m, err := ctx.Store.AddMood(models.Mood{Name: strings.TrimSpace(c.Name), Category: cat})
	if err != nil {
		return fmt.Errorf("failed to add mood: %w", err)
	}
	ctx.Printf("✓ Added %s mood %s\n", strings.ToLower(string(m.Category)), m.Name)
	return nil
}

type SetCmd struct {
	cli.Locked `embed:""`

	Date      string   `help:"Entry date." default:"today"`
	Primary   string   `arg:"" optional:"" help:"Primary mood. Omit to clear the entry's moods."`
	Secondary []string `help:"Secondary moods, at most two." sep:","`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
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

	if c.Primary == "" {
		if len(c.Secondary) > 0 {
			return fmt.Errorf("secondary moods need a primary mood")
		}
		if err := ctx.Store.SaveEntryMoods(entry.ID, 0, nil); err != nil {
			return fmt.Errorf("failed to clear moods: %w", err)
		}
		ctx.Println("✓ Cleared moods")
		return nil
	}

	if len(c.Secondary) > constants.MaxSecondaryMoods {
		ctx.Println(cli.WarningStyle.Render(fmt.Sprintf("Only the first %d secondary moods are kept.", constants.MaxSecondaryMoods)))
	}
	moods, err := ctx.ResolveMoods(append([]string{c.Primary}, c.Secondary...))
	if err != nil {
		return err
	}
	secondary := make([]int, 0, len(moods)-1)
	for _, m := range moods[1:] {
		secondary = append(secondary, m.ID)
	}
	if err := ctx.Store.SaveEntryMoods(entry.ID, moods[0].ID, secondary); err != nil {
		return fmt.Errorf("failed to save moods: %w", err)
	}
	ctx.Printf("✓ Primary mood %s\n", moods[0].Name)
	return nil
}
