package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/storage/sqlite"
)

func TestSeedIsIdempotent(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "seed.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	defer store.Close()

	moodsBefore, _ := store.GetMoods()
	tagsBefore, _ := store.GetTags()

	for i := 0; i < 2; i++ {
		if err := storage.Seed(store); err != nil {
			t.Fatalf("seed run %d failed: %v", i, err)
		}
	}

	moodsAfter, _ := store.GetMoods()
	tagsAfter, _ := store.GetTags()
	if len(moodsAfter) != len(moodsBefore) || len(tagsAfter) != len(tagsBefore) {
		t.Errorf("seeding duplicated rows: moods %d -> %d, tags %d -> %d",
			len(moodsBefore), len(moodsAfter), len(tagsBefore), len(tagsAfter))
	}
}

func TestSeedKeepsUserRows(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "seed.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	defer store.Close()

	if _, err := store.AddTag("Woodworking"); err != nil {
		t.Fatalf("failed to add tag: %v", err)
	}
	inserted, err := store.SeedTags(constants.DefaultTags)
	if err != nil {
		t.Fatalf("failed to seed tags: %v", err)
	}
	if inserted != 0 {
		t.Errorf("expected nothing to insert, got %d", inserted)
	}

	tags, _ := store.GetTags()
	if len(tags) != len(constants.DefaultTags)+1 {
		t.Errorf("expected user tag to survive seeding, got %d tags", len(tags))
	}

	inserted, err = store.SeedMoods([]constants.DefaultMood{{Name: "Hopeful", Category: constants.MoodPositive}, {Name: "Happy", Category: constants.MoodPositive}})
	if err != nil {
		t.Fatalf("failed to seed moods: %v", err)
	}
	if inserted != 1 {
		t.Errorf("expected only the missing mood to be inserted, got %d", inserted)
	}
}
