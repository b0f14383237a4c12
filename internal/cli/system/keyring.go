package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	dberrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/keyring"
	"github.com/julianstephens/daybook/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store the postgres connection string in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is usable." default:"1"`
}

type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string, password included."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) {
		return errors.New("connection string must be a postgres:// or postgresql:// URL")
	}
	// A password is expected here: the keyring is where it is allowed to live.
	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return fmt.Errorf("invalid connection string: %w", err)
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}
	ctx.Println("✓ Connection string stored in the OS keyring")
	ctx.Println("  Set database: keyring in config.yaml (or DAYBOOK_DATABASE=keyring) to use it")
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return dberrors.WithHint(err, "store one with 'daybook keyring set'")
	}
	if err != nil {
		return err
	}
	ctx.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	ctx.Println("✓ Connection string removed from the OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")

	switch _, err := keyring.GetConnectionString(); {
	case err == nil:
		ctx.Println("✓ Connection string is stored")
	case errors.Is(err, keyring.ErrNotFound):
		ctx.Println("ℹ No connection string stored")
	default:
		return err
	}
	return nil
}

// maskPassword hides the password in URL and key=value connection strings.
func maskPassword(connStr string) string {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
			return u.String()
		}
		return connStr
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
