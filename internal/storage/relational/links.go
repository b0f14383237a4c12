package relational

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
)

// SaveEntryMoods replaces the entry's moods: one primary plus at most the first
// MaxSecondaryMoods of secondaryMoodIDs. Extra secondaries are dropped silently.
// A zero primaryMoodID with no secondaries clears the entry's moods.
func (q *Queries) SaveEntryMoods(entryID, primaryMoodID int, secondaryMoodIDs []int) error {
	if primaryMoodID == 0 && len(secondaryMoodIDs) > 0 {
		return fmt.Errorf("a primary mood is required when secondary moods are set")
	}
	if len(secondaryMoodIDs) > constants.MaxSecondaryMoods {
		logger.Debug("Dropping extra secondary moods", "entry", entryID, "given", len(secondaryMoodIDs))
		secondaryMoodIDs = secondaryMoodIDs[:constants.MaxSecondaryMoods]
	}

	return q.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(q.Rebind("DELETE FROM entry_moods WHERE entry_id = ?"), entryID); err != nil {
			return fmt.Errorf("failed to clear entry moods: %w", err)
		}
		if primaryMoodID == 0 {
			return nil
		}

		stmt, err := tx.Prepare(q.Rebind("INSERT INTO entry_moods (entry_id, mood_id, is_primary) VALUES (?, ?, ?)"))
		if err != nil {
			return err
		}
		defer stmt.Close()

		if _, err := stmt.Exec(entryID, primaryMoodID, true); err != nil {
			return fmt.Errorf("failed to link primary mood: %w", err)
		}
		for _, id := range secondaryMoodIDs {
			if _, err := stmt.Exec(entryID, id, false); err != nil {
				return fmt.Errorf("failed to link secondary mood %d: %w", id, err)
			}
		}
		return nil
	})
}

// SaveEntryTags replaces the entry's tags with tagIDs. Repeated ids are linked once.
func (q *Queries) SaveEntryTags(entryID int, tagIDs []int) error {
	return q.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(q.Rebind("DELETE FROM entry_tags WHERE entry_id = ?"), entryID); err != nil {
			return fmt.Errorf("failed to clear entry tags: %w", err)
		}

		stmt, err := tx.Prepare(q.Rebind("INSERT INTO entry_tags (entry_id, tag_id) VALUES (?, ?)"))
		if err != nil {
			return err
		}
		defer stmt.Close()

		seen := map[int]bool{}
		for _, id := range tagIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			if _, err := stmt.Exec(entryID, id); err != nil {
				return fmt.Errorf("failed to link tag %d: %w", id, err)
			}
		}
		return nil
	})
}

// GetMoodLinksForEntry returns the raw join rows, primary first.
func (q *Queries) GetMoodLinksForEntry(entryID int) ([]models.EntryMood, error) {
	db, err := q.db()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(q.Rebind(`
		SELECT id, entry_id, mood_id, is_primary FROM entry_moods
		WHERE entry_id = ? ORDER BY is_primary DESC, id`), entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []models.EntryMood{}
	for rows.Next() {
		var l models.EntryMood
		if err := rows.Scan(&l.ID, &l.EntryID, &l.MoodID, &l.IsPrimary); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// GetMoodsForEntry resolves the entry's moods, primary first.
func (q *Queries) GetMoodsForEntry(entryID int) ([]models.Mood, error) {
	return q.queryMoods(`
		SELECT m.id, m.name, m.category FROM entry_moods em
		JOIN moods m ON m.id = em.mood_id
		WHERE em.entry_id = ? ORDER BY em.is_primary DESC, em.id`, entryID)
}

// GetTagsForEntry resolves the entry's tags ordered by name.
func (q *Queries) GetTagsForEntry(entryID int) ([]models.Tag, error) {
	return q.queryTags(`
		SELECT t.id, t.name, t.is_predefined FROM entry_tags et
		JOIN tags t ON t.id = et.tag_id
		WHERE et.entry_id = ? ORDER BY t.name, t.id`, entryID)
}
