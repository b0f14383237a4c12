package exports

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/config"
	"github.com/julianstephens/daybook/internal/export"
	"github.com/julianstephens/daybook/internal/utils"
)

type ExportCmd struct {
	cli.Locked `embed:""`

	From   string `help:"First date to include."`
	To     string `help:"Last date to include."`
	Format string `help:"markdown, json or yaml. Defaults to the export_format setting."`
	Out    string `short:"o" help:"Output file, or - for stdout. Defaults to a dated file in export_dir."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if err := ctx.Unlock(c.PIN); err != nil {
		return err
	}
	r, err := ctx.ParseRange(c.From, c.To)
	if err != nil {
		return err
	}

	format := c.Format
	if format == "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}
		format = settings.ExportFormat
	}

	doc, err := export.NewService(ctx.Store).WithClock(ctx.Clock).Build(r.Start, r.End)
	if err != nil {
		return err
	}
	doc.Author = ctx.Gate.Username()

	var buf bytes.Buffer
	if err := export.Write(&buf, doc, format); err != nil {
		return err
	}

	if c.Out == "-" {
		_, err := ctx.Out.Write(buf.Bytes())
		return err
	}

	path, err := c.outputPath(ctx, doc, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ctx.Printf("✓ Exported %d entries to %s\n", len(doc.Entries), path)
	return nil
}

func (c *ExportCmd) outputPath(ctx *cli.Context, doc export.Document, format string) (string, error) {
	if c.Out != "" {
		return config.ExpandPath(c.Out)
	}
	dir, err := config.ExpandPath(ctx.Config.ExportDir)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	name := fmt.Sprintf("daybook-%s-to-%s-%s.%s", doc.From, doc.To, utils.FormatDate(ctx.Clock()), export.Extension(format))
	return filepath.Join(dir, name), nil
}
