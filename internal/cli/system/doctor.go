package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/daybook/internal/backup"
	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*cli.Context) error
	warnOnly bool
	needsDB  bool
	// gatesDB marks the check whose failure skips every needsDB check.
	gatesDB bool
}

var checks = []check{
	{name: "Schema version", run: checkSchema},
	{name: "Journal reachable", run: checkReachable, gatesDB: true},
	{name: "Default moods", run: checkMoods, needsDB: true},
	{name: "Default tags", run: checkTags, needsDB: true},
	{name: "Timezone", run: checkTimezone, needsDB: true},
	{name: "Account", run: checkAccount, needsDB: true, warnOnly: true},
	{name: "Backups", run: checkBackups, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	failed, reachable := false, true
	for _, c := range checks {
		if c.needsDB && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (journal not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed = true
			if c.gatesDB {
				reachable = false
			}
		}
	}

	ctx.Println()
	if failed {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkSchema(ctx *cli.Context) error {
	m, ok := ctx.Store.(Migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind %d, run 'daybook migrate'", current, latest)
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than this binary supports (%d)", current, latest)
	}
	return nil
}

func checkReachable(ctx *cli.Context) error {
	return ctx.Store.Load()
}

func checkMoods(ctx *cli.Context) error {
	moods, err := ctx.Store.GetMoods()
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(moods))
	for _, m := range moods {
		have[m.Name] = true
	}
	for _, d := range constants.DefaultMoods {
		if !have[d.Name] {
			return fmt.Errorf("default mood %q is missing", d.Name)
		}
	}
	return nil
}

func checkTags(ctx *cli.Context) error {
	tags, err := ctx.Store.GetTags()
	if err != nil {
		return err
	}
	predefined := 0
	for _, t := range tags {
		if t.IsPredefined {
			predefined++
		}
	}
	if predefined < len(constants.DefaultTags) {
		return fmt.Errorf("%d of %d predefined tags present", predefined, len(constants.DefaultTags))
	}
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	_, err := ctx.Location()
	return err
}

func checkAccount(ctx *cli.Context) error {
	ready, err := ctx.Gate.IsSetupComplete()
	if err != nil {
		return err
	}
	if !ready {
		return errors.New("no PIN set, the journal is unprotected (run 'daybook setup')")
	}
	return nil
}

func checkBackups(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found, run 'daybook backup create'")
	}
	latest := backups[0].Timestamp
	if age := utils.DaysBetween(latest, ctx.Clock()); age > 7 {
		return fmt.Errorf("latest backup is %d days old", age)
	}
	return nil
}
