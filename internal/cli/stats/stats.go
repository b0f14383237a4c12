package stats

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/daybook/internal/analytics"
	"github.com/julianstephens/daybook/internal/cli"
	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/utils"
)

const (
	maxTopTags    = 5
	maxMissedDays = 10
	barWidth      = 20
)

type StatsCmd struct {
	cli.Locked `embed:""`

	From   string `help:"First date to include."`
	To     string `help:"Last date to include."`
	Format string `help:"Output format." enum:"text,json,yaml" default:"text"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Unlock(c.PIN); err != nil {
		return err
	}
	r, err := ctx.ParseRange(c.From, c.To)
	if err != nil {
		return err
	}
	engine, err := ctx.Analytics()
	if err != nil {
		return err
	}
	summary, err := engine.Summary(r)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	switch c.Format {
	case "json":
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case "yaml":
		enc := yaml.NewEncoder(ctx.Out)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return err
		}
		return enc.Close()
	}

	ctx.Println(render(summary))
	return nil
}

func render(s analytics.Summary) string {
	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render("Journal statistics") + "\n\n")
	b.WriteString(cli.Label("Entries", fmt.Sprintf("%d", s.Entries)) + "\n")
	b.WriteString(cli.Label("Words", fmt.Sprintf("%d (avg %.1f)", s.TotalWords, s.AverageWordCount)) + "\n")
	b.WriteString(cli.Label("Current streak", plural(s.CurrentStreak, "day")) + "\n")
	b.WriteString(cli.Label("Longest streak", plural(s.LongestStreak, "day")) + "\n")

	b.WriteString("\n" + cli.LabelStyle.Render("Moods") + "\n")
	total := 0
	for _, n := range s.MoodDistribution {
		total += n
	}
	for _, cat := range constants.MoodCategories {
		n := s.MoodDistribution[cat]
		b.WriteString(fmt.Sprintf("  %-9s %s %d\n", cat, cli.MoodStyle(cat).Render(bar(n, total)), n))
	}
	if s.MostFrequentMood != nil {
		m := s.MostFrequentMood
		b.WriteString("  " + cli.Label("Most frequent", cli.MoodStyle(m.Category).Render(m.Name)) + "\n")
	}

	if len(s.TopTags) > 0 {
		b.WriteString("\n" + cli.LabelStyle.Render("Top tags") + "\n")
		for _, t := range s.TopTags[:min(maxTopTags, len(s.TopTags))] {
			b.WriteString(fmt.Sprintf("  %-20s %d\n", t.Name, t.Count))
		}
	}

	if len(s.MissedDays) > 0 {
		days := make([]string, 0, maxMissedDays)
		for _, d := range s.MissedDays[:min(maxMissedDays, len(s.MissedDays))] {
			days = append(days, utils.FormatDate(d))
		}
		more := ""
		if extra := len(s.MissedDays) - len(days); extra > 0 {
			more = fmt.Sprintf(" and %d more", extra)
		}
		b.WriteString("\n" + cli.Label("Missed days", cli.WarningStyle.Render(strings.Join(days, ", ")+more)) + "\n")
	}

	return cli.PanelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func bar(n, total int) string {
	if total == 0 {
		return strings.Repeat("·", barWidth)
	}
	filled := n * barWidth / total
	return strings.Repeat("█", filled) + strings.Repeat("·", barWidth-filled)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
