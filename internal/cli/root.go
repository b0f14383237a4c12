package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/daybook/internal/analytics"
	"github.com/julianstephens/daybook/internal/backup"
	"github.com/julianstephens/daybook/internal/config"
	dberrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/security"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Store    storage.Provider
	Gate     *security.Gate
	Config   config.Config
	Prompter Prompter
	Out      io.Writer
	Now      func() time.Time
}

// Locked is embedded by commands that read or write journal content.
type Locked struct {
	PIN string `name:"pin" help:"PIN to unlock the journal. Prompted for when needed." env:"DAYBOOK_PIN"`
}

// NewContext wires a Context with the interactive prompter and stdout.
func NewContext(store storage.Provider, cfg config.Config) *Context {
	return &Context{
		Store:    store,
		Gate:     security.NewGate(store),
		Config:   cfg,
		Prompter: HuhPrompter{},
		Out:      os.Stdout,
		Now:      time.Now,
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Clock returns the current time from Now, defaulting to time.Now.
func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Unlock opens the journal for this invocation. Journals without an account
// are open; otherwise pin is verified, prompting for it when empty.
func (c *Context) Unlock(pin string) error {
	if c.Gate.IsUnlocked() {
		return nil
	}
	ready, err := c.Gate.IsSetupComplete()
	if err != nil {
		return fmt.Errorf("failed to read account: %w", err)
	}
	if !ready {
		return nil
	}

	if pin == "" {
		if pin, err = c.Prompter.Secret("PIN"); err != nil {
			return err
		}
	}
	ok, err := c.Gate.VerifyPin(pin)
	if err != nil {
		return err
	}
	if !ok {
		return dberrors.WithHint(security.ErrLocked, "wrong PIN; use 'daybook recover' if you forgot it")
	}
	return nil
}

// Location resolves the timezone from config first, then stored settings.
func (c *Context) Location() (*time.Location, error) {
	tz := c.Config.Timezone
	if tz == "" {
		settings, err := c.Store.GetSettings()
		if err != nil {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
		tz = settings.Timezone
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// Today is the current calendar date in the journal's timezone.
func (c *Context) Today() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	return utils.Today(c.Clock(), loc), nil
}

// ParseDate accepts YYYY-MM-DD, "today" or "yesterday". Empty means today.
func (c *Context) ParseDate(s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return c.Today()
	case "yesterday":
		today, err := c.Today()
		return today.AddDate(0, 0, -1), err
	}
	return utils.ParseDate(s)
}

// ParseRange parses optional --from/--to bounds.
func (c *Context) ParseRange(from, to string) (analytics.Range, error) {
	var r analytics.Range
	if from != "" {
		d, err := c.ParseDate(from)
		if err != nil {
			return r, err
		}
		r.Start = &d
	}
	if to != "" {
		d, err := c.ParseDate(to)
		if err != nil {
			return r, err
		}
		r.End = &d
	}
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return r, fmt.Errorf("--from %s is after --to %s", from, to)
	}
	return r, nil
}

func (c *Context) Analytics() (*analytics.Engine, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return analytics.NewEngine(c.Store, analytics.WithClock(c.Clock), analytics.WithLocation(loc)), nil
}

// IsSQLite reports whether the store is backed by a local file.
func (c *Context) IsSQLite() bool {
	return !config.IsPostgres(c.Config.Database) && c.Store.GetConfigPath() != "postgresql"
}

// PerformAutomaticBackup snapshots a sqlite journal before destructive
// commands. Failures are logged and never block the command.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).CreateBackup(); err != nil {
		logger.Warn("automatic backup failed", "error", err)
	}
}

// ResolveMoods looks moods up by name, case-insensitively.
func (c *Context) ResolveMoods(names []string) ([]models.Mood, error) {
	moods := make([]models.Mood, 0, len(names))
	for _, name := range names {
		m, err := c.Store.GetMoodByName(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, dberrors.WithHint(fmt.Errorf("unknown mood %q", name), "see 'daybook mood list'")
		}
		moods = append(moods, *m)
	}
	return moods, nil
}

// ResolveTags looks tags up by name. With create set, unknown names become
// new custom tags.
func (c *Context) ResolveTags(names []string, create bool) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		tag, err := c.Store.GetTagByName(name)
		if err != nil {
			return nil, err
		}
		if tag == nil {
			if !create {
				return nil, dberrors.WithHint(fmt.Errorf("unknown tag %q", name), "see 'daybook tag list'")
			}
			added, err := c.Store.AddTag(name)
			if err != nil {
				return nil, err
			}
			tag = &added
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// EntryForDate returns the entry written on date or a not-found error naming it.
func (c *Context) EntryForDate(date time.Time) (models.JournalEntry, error) {
	entry, err := c.Store.GetEntryByDate(date)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to load entry: %w", err)
	}
	if entry == nil {
		return models.JournalEntry{}, fmt.Errorf("no entry for %s: %w", utils.FormatDate(date), storage.ErrNotFound)
	}
	return *entry, nil
}

// Confirm asks before destructive actions unless yes is already set.
func (c *Context) Confirm(yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	ok, err := c.Prompter.Confirm(title)
	if errors.Is(err, ErrNoTerminal) {
		return false, dberrors.WithHint(err, "pass --yes to confirm non-interactively")
	}
	return ok, err
}
