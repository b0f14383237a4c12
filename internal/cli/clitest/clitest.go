// Package clitest builds command contexts over a temporary sqlite journal.
package clitest

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/security"
	"github.com/julianstephens/daybook/internal/storage/sqlite"
)

// Today is the fixed "now" every test context runs at, in UTC.
var Today = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

// Prompter answers prompts from queued replies and records the titles asked.
type Prompter struct {
	Inputs   []string
	Confirms []bool
	Asked    []string
}

var errExhausted = errors.New("no scripted answer left")

func (p *Prompter) Input(title string) (string, error) {
	p.Asked = append(p.Asked, title)
	if len(p.Inputs) == 0 {
		return "", errExhausted
	}
	v := p.Inputs[0]
	p.Inputs = p.Inputs[1:]
	return v, nil
}

func (p *Prompter) Secret(title string) (string, error) { return p.Input(title) }

func (p *Prompter) Confirm(title string) (bool, error) {
	p.Asked = append(p.Asked, title)
	if len(p.Confirms) == 0 {
		return false, errExhausted
	}
	v := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return v, nil
}

// Env is a ready-to-use command context plus its captured output.
type Env struct {
	Ctx      *cli.Context
	Store    *sqlite.Store
	Out      *bytes.Buffer
	Prompter *Prompter
	DBPath   string
}

// New initializes a journal in a temp dir. The store is closed on cleanup.
func New(t *testing.T) *Env {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "daybook.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	out := &bytes.Buffer{}
	prompter := &Prompter{}
	gate := security.NewGate(store)
	gate.SetCost(bcrypt.MinCost)

	ctx := &cli.Context{
		Store:    store,
		Gate:     gate,
		Config:   config.Config{Database: dbPath, Timezone: "UTC"},
		Prompter: prompter,
		Out:      out,
		Now:      func() time.Time { return Today },
	}
	return &Env{Ctx: ctx, Store: store, Out: out, Prompter: prompter, DBPath: dbPath}
}

// Date parses a YYYY-MM-DD literal or fails the test.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}
