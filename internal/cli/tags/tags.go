package tags

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	dberrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/storage"
)

type ListCmd struct {
	Custom bool `help:"Only list tags you created."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	tags, err := ctx.Store.GetTags()
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	usage, err := ctx.Store.GetTagUsage(nil, nil)
	if err != nil {
		return fmt.Errorf("failed to count tag usage: %w", err)
	}
	uses := make(map[string]int, len(usage))
	for _, u := range usage {
		uses[u.Name] = u.Count
	}

	shown := 0
	for _, t := range tags {
		if c.Custom && t.IsPredefined {
			continue
		}
		marker := ""
		if !t.IsPredefined {
			marker = cli.MutedStyle.Render(" (custom)")
		}
		ctx.Printf("%-20s %s%s\n", t.Name, cli.MutedStyle.Render(fmt.Sprintf("%3d", uses[t.Name])), marker)
		shown++
	}
	if shown == 0 {
		ctx.Println("No tags found.")
	}
	return nil
}

type AddCmd struct {
	Name string `arg:"" help:"Tag name."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	existing, err := ctx.Store.GetTagByName(c.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("tag %q already exists", existing.Name)
	}
	tag, err := ctx.Store.AddTag(c.Name)
	if err != nil {
		return fmt.Errorf("failed to add tag: %w", err)
	}
	ctx.Printf("✓ Added tag %s\n", tag.Name)
	return nil
}

type DeleteCmd struct {
	Name string `arg:"" help:"Tag name."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	tag, err := ctx.Store.GetTagByName(c.Name)
	if err != nil {
		return err
	}
	if tag == nil {
		return fmt.Errorf("tag %q: %w", c.Name, storage.ErrNotFound)
	}
	if tag.IsPredefined {
		return dberrors.WithHint(storage.ErrPredefinedTag, "only custom tags can be deleted")
	}

	ok, err := ctx.Confirm(c.Yes, fmt.Sprintf("Delete tag %q from every entry?", tag.Name))
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Delete cancelled.")
		return nil
	}
	if err := ctx.Store.DeleteTag(tag.ID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	ctx.Printf("✓ Deleted tag %s\n", tag.Name)
	return nil
}

// SetCmd replaces an entry's tags. No names clears them.
type SetCmd struct {
	cli.Locked `embed:""`

	Date  string   `help:"Entry date." default:"today"`
	Names []string `arg:"" optional:"" help:"Tags. Unknown names become custom tags."`
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

	resolved, err := ctx.ResolveTags(c.Names, true)
	if err != nil {
		return err
	}
	ids := make([]int, len(resolved))
	names := make([]string, len(resolved))
	for i, t := range resolved {
		ids[i] = t.ID
		names[i] = t.Name
	}
	if err := ctx.Store.SaveEntryTags(entry.ID, ids); err != nil {
		return fmt.Errorf("failed to save tags: %w", err)
	}

	if len(names) == 0 {
		ctx.Println("✓ Cleared tags")
		return nil
	}
	ctx.Printf("✓ Tagged with %s\n", strings.Join(names, ", "))
	return nil
}
