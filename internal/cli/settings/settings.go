package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone     *string `help:"IANA timezone used to decide what today is, or Local."`
	ExportFormat *string `name:"export-format" help:"Default export format: markdown, json or yaml."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List || (c.Timezone == nil && c.ExportFormat == nil) {
		ctx.Println("Current settings:")
		ctx.Printf("  Timezone:      %s\n", settings.Timezone)
		ctx.Printf("  Export format: %s\n", settings.ExportFormat)
		if ctx.Config.Timezone != "" && ctx.Config.Timezone != settings.Timezone {
			ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("  (timezone overridden by config: %s)", ctx.Config.Timezone)))
		}
		return nil
	}

	if c.Timezone != nil {
		tz := strings.TrimSpace(*c.Timezone)
		if !utils.ValidateTimezone(tz) {
			return fmt.Errorf("invalid timezone %q", tz)
		}
		settings.Timezone = tz
	}
	if c.ExportFormat != nil {
		format := strings.ToLower(strings.TrimSpace(*c.ExportFormat))
		switch format {
		case constants.ExportFormatMarkdown, constants.ExportFormatJSON, constants.ExportFormatYAML:
			settings.ExportFormat = format
		default:
			return fmt.Errorf("unsupported export format %q", *c.ExportFormat)
		}
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated.")
	return nil
}
