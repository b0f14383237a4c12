package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/daybook/internal/cli"
)

// Migrator is implemented by both the sqlite and postgres stores.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(Migrator)
	if !ok {
		return errors.New("this storage backend does not support migrations")
	}

	count, err := m.Migrate(func(msg string) { ctx.Println(msg) })
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if count == 0 {
		ctx.Println("No migrations to apply. Journal is up to date.")
		return nil
	}
	ctx.Printf("\nApplied %d migration(s).\n", count)
	return nil
}
