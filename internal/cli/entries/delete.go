package entries

import (
	"fmt"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/utils"
)

type DeleteCmd struct {
	cli.Locked `embed:""`

	Date string `arg:"" help:"Date of the entry to delete."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
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

	day := utils.FormatDate(entry.EntryDate)
	ok, err := ctx.Confirm(c.Yes, "Delete the entry for "+day+"?")
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Delete cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteEntry(entry.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	ctx.Printf("✓ Deleted entry for %s\n", day)
	return nil
}
