package sqlite

import (
	"errors"
	"testing"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
)

func modelsMood(name string, category constants.MoodCategory) models.Mood {
	return models.Mood{Name: name, Category: category}
}

func newEntry(t *testing.T, day, title, content string) models.JournalEntry {
	t.Helper()
	return models.JournalEntry{Title: title, Content: content, EntryDate: date(t, day)}
}

func TestSaveEntryUpsertsByDate(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	first, err := store.SaveEntry(newEntry(t, "2024-01-03", "Morning", "<p>first draft</p>"))
	if err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected saved entry to have an id")
	}
	if !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Errorf("new entry should have created_at == updated_at, got %v and %v", first.CreatedAt, first.UpdatedAt)
	}

	second, err := store.SaveEntry(newEntry(t, "2024-01-03", "Evening", "<p>rewritten</p>"))
	if err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected upsert to keep id %d, got %d", first.ID, second.ID)
	}

	got, err := store.GetEntryByDate(date(t, "2024-01-03"))
	if err != nil {
		t.Fatalf("failed to get entry by date: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry for 2024-01-03")
	}
	if got.Title != "Evening" || got.Content != "<p>rewritten</p>" {
		t.Errorf("expected latest content, got %q / %q", got.Title, got.Content)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", first.CreatedAt, got.CreatedAt)
	}
	if !got.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("updated_at should advance: %v -> %v", first.UpdatedAt, got.UpdatedAt)
	}

	entries, err := store.GetEntries()
	if err != nil {
		t.Fatalf("failed to get entries: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected one entry per date, got %d", len(entries))
	}
}

func TestGetEntryByDateMissing(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	got, err := store.GetEntryByDate(date(t, "1999-12-31"))
	if err != nil {
		t.Fatalf("missing entry should not be an error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil entry, got %+v", got)
	}
}

func TestAddAndUpdateEntry(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	added, err := store.AddEntry(newEntry(t, "2024-02-01", "Plain", "text"))
	if err != nil {
		t.Fatalf("failed to add entry: %v", err)
	}
	if _, err := store.AddEntry(newEntry(t, "2024-02-01", "Dup", "text")); err == nil {
		t.Error("expected second AddEntry on the same date to fail")
	}

	added.Title = "Edited"
	if err := store.UpdateEntry(added); err != nil {
		t.Fatalf("failed to update entry: %v", err)
	}
	got, err := store.GetEntry(added.ID)
	if err != nil {
		t.Fatalf("failed to get entry: %v", err)
	}
	if got.Title != "Edited" {
		t.Errorf("expected title Edited, got %q", got.Title)
	}
	if !got.UpdatedAt.After(added.UpdatedAt) {
		t.Errorf("UpdateEntry should refresh updated_at")
	}

	missing := models.JournalEntry{ID: 9999, EntryDate: date(t, "2024-02-02")}
	if err := store.UpdateEntry(missing); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetEntry(9999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteEntryRemovesLinks(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	entry, err := store.SaveEntry(newEntry(t, "2024-03-01", "Gone", "soon"))
	if err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}
	moods, _ := store.GetMoods()
	tags, _ := store.GetTags()
	if err := store.SaveEntryMoods(entry.ID, moods[0].ID, []int{moods[1].ID}); err != nil {
		t.Fatalf("failed to save entry moods: %v", err)
	}
	if err := store.SaveEntryTags(entry.ID, []int{tags[0].ID}); err != nil {
		t.Fatalf("failed to save entry tags: %v", err)
	}

	if err := store.DeleteEntry(entry.ID); err != nil {
		t.Fatalf("failed to delete entry: %v", err)
	}
	if err := store.DeleteEntry(entry.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	var links int
	if err := store.DB.QueryRow("SELECT (SELECT COUNT(*) FROM entry_moods) + (SELECT COUNT(*) FROM entry_tags)").Scan(&links); err != nil {
		t.Fatalf("failed to count links: %v", err)
	}
	if links != 0 {
		t.Errorf("expected links to be deleted with the entry, %d remain", links)
	}
}

func TestGetEntriesOrderedByCreatedAt(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	// Written out of date order; listing follows creation order, newest first.
	for _, d := range []string{"2024-01-05", "2024-01-01", "2024-01-03"} {
		if _, err := store.SaveEntry(newEntry(t, d, d, "x")); err != nil {
			t.Fatalf("failed to save entry: %v", err)
		}
	}

	entries, err := store.GetEntries()
	if err != nil {
		t.Fatalf("failed to get entries: %v", err)
	}
	want := []string{"2024-01-03", "2024-01-01", "2024-01-05"}
	for i, e := range entries {
		if e.Title != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], e.Title)
		}
	}
}

func TestGetEntriesFiltered(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	happy, _ := store.GetMoodByName("Happy")
	sad, _ := store.GetMoodByName("Sad")
	calm, _ := store.GetMoodByName("Calm")
	work, _ := store.GetTagByName("Work")
	travel, _ := store.GetTagByName("Travel")

	type fixture struct {
		day     string
		primary int
		second  []int
		tags    []int
	}
	fixtures := []fixture{
		{"2024-01-01", happy.ID, nil, []int{work.ID}},
		{"2024-01-02", sad.ID, []int{calm.ID}, []int{travel.ID}},
		{"2024-01-03", calm.ID, nil, []int{work.ID, travel.ID}},
		{"2024-01-04", 0, nil, nil},
	}
	ids := map[string]int{}
	for _, f := range fixtures {
		e, err := store.SaveEntry(newEntry(t, f.day, f.day, "x"))
		if err != nil {
			t.Fatalf("failed to save entry: %v", err)
		}
		ids[f.day] = e.ID
		if err := store.SaveEntryMoods(e.ID, f.primary, f.second); err != nil {
			t.Fatalf("failed to save entry moods: %v", err)
		}
		if err := store.SaveEntryTags(e.ID, f.tags); err != nil {
			t.Fatalf("failed to save entry tags: %v", err)
		}
	}

	start, end := date(t, "2024-01-02"), date(t, "2024-01-03")
	tests := []struct {
		name   string
		filter models.EntryFilter
		want   []string
	}{
		{"no filter", models.EntryFilter{}, []string{"2024-01-04", "2024-01-03", "2024-01-02", "2024-01-01"}},
		{"inclusive date range", models.EntryFilter{Start: &start, End: &end}, []string{"2024-01-03", "2024-01-02"}},
		{"start only", models.EntryFilter{Start: &end}, []string{"2024-01-04", "2024-01-03"}},
		{"secondary mood matches", models.EntryFilter{MoodIDs: []int{calm.ID}}, []string{"2024-01-03", "2024-01-02"}},
		{"any of several moods", models.EntryFilter{MoodIDs: []int{happy.ID, sad.ID}}, []string{"2024-01-02", "2024-01-01"}},
		{"tag", models.EntryFilter{TagIDs: []int{work.ID}}, []string{"2024-01-03", "2024-01-01"}},
		{"mood and tag compose", models.EntryFilter{MoodIDs: []int{calm.ID}, TagIDs: []int{work.ID}}, []string{"2024-01-03"}},
		{"everything", models.EntryFilter{Start: &start, End: &end, MoodIDs: []int{sad.ID}, TagIDs: []int{travel.ID}}, []string{"2024-01-02"}},
		{"no match", models.EntryFilter{MoodIDs: []int{happy.ID}, TagIDs: []int{travel.ID}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetEntriesFiltered(tt.filter)
			if err != nil {
				t.Fatalf("failed to filter entries: %v", err)
			}
			if got == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entries, got %d", len(tt.want), len(got))
			}
			for i, e := range got {
				if e.ID != ids[tt.want[i]] {
					t.Errorf("position %d: expected entry for %s, got %s", i, tt.want[i], e.Title)
				}
			}
		})
	}

	all, err := store.GetEntries()
	if err != nil {
		t.Fatalf("failed to get entries: %v", err)
	}
	unfiltered, _ := store.GetEntriesFiltered(models.EntryFilter{})
	if len(all) != len(unfiltered) {
		t.Fatalf("unfiltered query should match GetEntries")
	}
	for i := range all {
		if all[i].ID != unfiltered[i].ID {
			t.Errorf("position %d differs: %d vs %d", i, all[i].ID, unfiltered[i].ID)
		}
	}
}
