package relational

import (
	"time"

	"github.com/julianstephens/daybook/internal/models"
)

// GetPrimaryMoods maps each entry dated within [start, end] to its primary mood.
// Entries without a primary mood are absent from the map.
func (q *Queries) GetPrimaryMoods(start, end *time.Time) (map[int]models.Mood, error) {
	db, err := q.db()
	if err != nil {
		return nil, err
	}
	clause, args := dateRange("e.entry_date", start, end)
	args = append([]any{true}, args...)

	rows, err := db.Query(q.Rebind(`
		SELECT em.entry_id, m.id, m.name, m.category FROM entry_moods em
		JOIN moods m ON m.id = em.mood_id
		JOIN journal_entries e ON e.id = em.entry_id
		WHERE em.is_primary = ?`+clause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	primaries := map[int]models.Mood{}
	for rows.Next() {
		var entryID int
		var m models.Mood
		if err := rows.Scan(&entryID, &m.ID, &m.Name, &m.Category); err != nil {
			return nil, err
		}
		primaries[entryID] = m
	}
	return primaries, rows.Err()
}

// GetTagUsage counts tagged entries per tag within [start, end], most used first
// and ties broken by name.
func (q *Queries) GetTagUsage(start, end *time.Time) ([]models.TagCount, error) {
	db, err := q.db()
	if err != nil {
		return nil, err
	}
	clause, args := dateRange("e.entry_date", start, end)

	rows, err := db.Query(q.Rebind(`
		SELECT t.name, COUNT(*) AS uses FROM entry_tags et
		JOIN tags t ON t.id = et.tag_id
		JOIN journal_entries e ON e.id = et.entry_id
		WHERE 1=1`+clause+`
		GROUP BY t.id, t.name
		ORDER BY uses DESC, t.name ASC`), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usage := []models.TagCount{}
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Name, &tc.Count); err != nil {
			return nil, err
		}
		usage = append(usage, tc)
	}
	return usage, rows.Err()
}
