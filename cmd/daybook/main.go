package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/cli/auth"
	"github.com/julianstephens/daybook/internal/cli/backups"
	"github.com/julianstephens/daybook/internal/cli/entries"
	"github.com/julianstephens/daybook/internal/cli/exports"
	"github.com/julianstephens/daybook/internal/cli/moods"
	"github.com/julianstephens/daybook/internal/cli/settings"
	"github.com/julianstephens/daybook/internal/cli/stats"
	"github.com/julianstephens/daybook/internal/cli/system"
	"github.com/julianstephens/daybook/internal/cli/tags"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/constants"
	dberrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/keyring"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/storage/postgres"
	"github.com/julianstephens/daybook/internal/storage/sqlite"
)

const (
	// keyringSource as the database value reads the connection string from the OS keyring.
	keyringSource = "keyring"
	// connEnv holds a full postgres connection string, password included.
	connEnv = constants.EnvPrefix + "_DB_CONNECTION"
)

var CLI struct {
	Version  kong.VersionFlag
	Database string `help:"SQLite path, PostgreSQL URL without password, or 'keyring'. Overrides the config file."`
	Debug    bool   `help:"Log at debug level and mirror logs to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Create the journal and seed default moods and tags."`
	Migrate system.MigrateCmd `cmd:"" help:"Apply pending database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks."`

	Setup   auth.SetupCmd   `cmd:"" help:"Set the username, PIN and recovery question."`
	Unlock  auth.UnlockCmd  `cmd:"" help:"Check the PIN."`
	Recover auth.RecoverCmd `cmd:"" help:"Reset a forgotten PIN with the recovery answer."`

	Entry struct {
		Write  entries.WriteCmd  `cmd:"" help:"Create or update the entry for a day."`
		Show   entries.ShowCmd   `cmd:"" help:"Show one entry." default:"withargs"`
		List   entries.ListCmd   `cmd:"" help:"List entries, optionally filtered."`
		Delete entries.DeleteCmd `cmd:"" help:"Delete the entry for a day."`
	} `cmd:"" help:"Write and read journal entries."`
	Mood struct {
		List moods.ListCmd `cmd:"" help:"List moods by category." default:"1"`
		Add  moods.AddCmd  `cmd:"" help:"Add a custom mood."`
		Set  moods.SetCmd  `cmd:"" help:"Set the moods of an entry."`
	} `cmd:"" help:"Manage moods."`
	Tag struct {
		List   tags.ListCmd   `cmd:"" help:"List tags with usage counts." default:"1"`
		Add    tags.AddCmd    `cmd:"" help:"Add a custom tag."`
		Delete tags.DeleteCmd `cmd:"" help:"Delete a custom tag."`
		Set    tags.SetCmd    `cmd:"" help:"Set the tags of an entry."`
	} `cmd:"" help:"Manage tags."`

	Stats    stats.StatsCmd       `cmd:"" help:"Show streaks, word counts, moods and tags."`
	Export   exports.ExportCmd    `cmd:"" help:"Export entries as markdown, JSON or YAML."`
	Settings settings.SettingsCmd `cmd:"" help:"View or change settings."`
	Backup   struct {
		Create  backups.CreateCmd  `cmd:"" help:"Create a backup." default:"1"`
		List    backups.ListCmd    `cmd:"" help:"List backups."`
		Restore backups.RestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage sqlite backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the postgres connection string in the OS keyring."`
}

// selfLoading commands open the store themselves.
var selfLoading = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A private daily journal with moods, tags and streaks."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)
	dberrors.Fatal(run(kctx))
}

func run(kctx *kong.Context) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if CLI.Database != "" {
		cfg.Database = CLI.Database
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: dir, Level: cfg.LogLevel}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	store, cfg, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if command := strings.Fields(kctx.Command()); len(command) > 0 && !selfLoading[command[0]] {
		if err := store.Load(); err != nil {
			return err
		}
	}

	logger.Debug("running command", "command", kctx.Command())
	return kctx.Run(cli.NewContext(store, cfg))
}

// openStore picks the backend: DAYBOOK_DB_CONNECTION first, then the
// keyring, a postgres URL or a sqlite path from cfg.Database.
func openStore(cfg config.Config) (storage.Provider, config.Config, error) {
	if conn := os.Getenv(connEnv); conn != "" {
		return postgres.New(conn), cfg, nil
	}

	switch {
	case cfg.Database == keyringSource:
		conn, err := keyring.GetConnectionString()
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, cfg, dberrors.WithHint(err, "store one with 'daybook keyring set'")
		}
		if err != nil {
			return nil, cfg, err
		}
		return postgres.New(conn), cfg, nil

	case config.IsPostgres(cfg.Database):
		if _, err := postgres.ValidateConnString(cfg.Database); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, cfg, dberrors.WithHint(err,
					"keep the password in the OS keyring ('daybook keyring set' then database: keyring), in "+connEnv+", or in .pgpass")
			}
			return nil, cfg, err
		}
		return postgres.New(cfg.Database), cfg, nil
	}

	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, cfg, err
	}
	cfg.Database = path
	return sqlite.NewStore(path), cfg, nil
}
