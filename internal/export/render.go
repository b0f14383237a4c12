package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/daybook/internal/constants"
)

// Write renders doc in the named format.
func Write(w io.Writer, doc Document, format string) error {
	switch strings.ToLower(format) {
	case "", constants.ExportFormatMarkdown, "md":
		return WriteMarkdown(w, doc, constants.EntriesPerPage)
	case constants.ExportFormatJSON:
		return WriteJSON(w, doc)
	case constants.ExportFormatYAML, "yml":
		return WriteYAML(w, doc)
	default:
		return fmt.Errorf("unsupported export format %q (use markdown, json or yaml)", format)
	}
}

// Extension returns the file extension for format, without the dot.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case constants.ExportFormatJSON:
		return "json"
	case constants.ExportFormatYAML, "yml":
		return "yaml"
	default:
		return "md"
	}
}

// WriteMarkdown renders doc with perPage entries per page and a footer after each page.
func WriteMarkdown(w io.Writer, doc Document, perPage int) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	if doc.Author != "" {
		fmt.Fprintf(&b, "_%s_\n\n", doc.Author)
	}
	fmt.Fprintf(&b, "%s to %s · %d entries\n", doc.From, doc.To, len(doc.Entries))

	pages := doc.Pages(perPage)
	for i, page := range pages {
		for _, rec := range page {
			b.WriteString("\n")
			writeEntry(&b, rec)
		}
		fmt.Fprintf(&b, "\n---\n\n_Page %d of %d_\n", i+1, len(pages))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeEntry(b *strings.Builder, rec EntryRecord) {
	title := rec.Title
	if title == "" {
		title = "Untitled"
	}
	fmt.Fprintf(b, "## %s: %s\n\n", rec.Date, title)

	if rec.PrimaryMood != "" {
		mood := "**Mood:** " + rec.PrimaryMood
		if len(rec.SecondaryMoods) > 0 {
			mood += " (also " + strings.Join(rec.SecondaryMoods, ", ") + ")"
		}
		b.WriteString(mood + "  \n")
	}
	if len(rec.Tags) > 0 {
		b.WriteString("**Tags:** " + strings.Join(rec.Tags, ", ") + "  \n")
	}
	fmt.Fprintf(b, "**Words:** %d\n\n", rec.Words)

	if rec.Content != "" {
		b.WriteString(rec.Content + "\n")
	}
}

func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
