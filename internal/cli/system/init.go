package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/daybook/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing journal before initializing. A backup is taken first."`
	Yes   bool `short:"y" help:"Do not ask for confirmation with --force."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if !ctx.IsSQLite() {
			return errors.New("--force is only supported for sqlite journals")
		}
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize journal: %w", err)
	}
	ctx.Printf("Initialized daybook journal at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access existing journal: %w", err)
	}

	ok, err := ctx.Confirm(c.Yes, "Delete the existing journal at "+dbPath+"?")
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("init cancelled")
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing journal: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing journal: %w", err)
	}
	ctx.Printf("Deleted existing journal at: %s\n", dbPath)
	return nil
}
