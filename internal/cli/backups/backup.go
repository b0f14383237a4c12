package backups

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/daybook/internal/backup"
	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
)

var errPostgres = errors.New("backups are only available for sqlite journals; use pg_dump for postgres")

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if !ctx.IsSQLite() {
		return nil, errPostgres
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type CreateCmd struct{}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.Printf("Backups (%d, keeping the newest %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		ctx.Printf("  %s  %s  %s\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), b.Name(),
			cli.MutedStyle.Render(fmt.Sprintf("%.1f KB", float64(b.Size)/1024)))
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type RestoreCmd struct {
	Backup string `arg:"" help:"Backup file name or path."`
	Yes    bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path := mgr.Resolve(c.Backup)

	ctx.Println(cli.WarningStyle.Render("This replaces the journal with the backup. Stop other daybook processes first."))
	ok, err := ctx.Confirm(c.Yes, "Restore "+filepath.Base(path)+"?")
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Restore cancelled.")
		return nil
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close journal: %w", err)
	}
	safety, restoreErr := mgr.RestoreBackup(path)
	// Reopen whichever journal is now in place.
	loadErr := ctx.Store.Load()
	if restoreErr != nil {
		return fmt.Errorf("restore failed: %w", restoreErr)
	}
	if safety != "" {
		ctx.Printf("Previous journal saved as %s\n", filepath.Base(safety))
	}
	if loadErr != nil {
		return fmt.Errorf("failed to open restored journal: %w", loadErr)
	}
	ctx.Println("✓ Journal restored")
	return nil
}
