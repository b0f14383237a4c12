package relational

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
	"github.com/julianstephens/daybook/internal/utils"
)

const entryColumns = "e.id, e.title, e.content, e.entry_date, e.created_at, e.updated_at"

func scanEntry(row rowScanner) (models.JournalEntry, error) {
	var e models.JournalEntry
	var entryDate, createdAt, updatedAt string

	if err := row.Scan(&e.ID, &e.Title, &e.Content, &entryDate, &createdAt, &updatedAt); err != nil {
		return models.JournalEntry{}, err
	}

	var err error
	e.EntryDate, err = time.Parse(constants.DateFormat, entryDate)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to parse entry_date for entry %d: %w", e.ID, err)
	}
	e.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to parse created_at for entry %d: %w", e.ID, err)
	}
	e.UpdatedAt, err = parseTimestamp(updatedAt)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to parse updated_at for entry %d: %w", e.ID, err)
	}
	return e, nil
}

func (q *Queries) queryEntries(query string, args ...any) ([]models.JournalEntry, error) {
	db, err := q.db()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(q.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddEntry inserts a new entry. It fails if the date already has one; use SaveEntry to upsert.
func (q *Queries) AddEntry(entry models.JournalEntry) (models.JournalEntry, error) {
	db, err := q.db()
	if err != nil {
		return models.JournalEntry{}, err
	}
	now := q.now()
	entry.EntryDate = utils.DayOf(entry.EntryDate)
	entry.CreatedAt, entry.UpdatedAt = now, now

	err = db.QueryRow(q.Rebind(`
		INSERT INTO journal_entries (title, content, entry_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?) RETURNING id`),
		entry.Title, entry.Content, formatDate(entry.EntryDate), formatTimestamp(now), formatTimestamp(now),
	).Scan(&entry.ID)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to add entry: %w", err)
	}
	logger.Debug("Added entry", "id", entry.ID, "date", formatDate(entry.EntryDate))
	return entry, nil
}

func (q *Queries) GetEntry(id int) (models.JournalEntry, error) {
	db, err := q.db()
	if err != nil {
		return models.JournalEntry{}, err
	}
	e, err := scanEntry(db.QueryRow(q.Rebind("SELECT "+entryColumns+" FROM journal_entries e WHERE e.id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.JournalEntry{}, fmt.Errorf("entry %d: %w", id, storage.ErrNotFound)
	}
	return e, err
}

// GetEntryByDate returns the entry written on date's calendar day, or nil if there is none.
func (q *Queries) GetEntryByDate(date time.Time) (*models.JournalEntry, error) {
	db, err := q.db()
	if err != nil {
		return nil, err
	}
	e, err := scanEntry(db.QueryRow(q.Rebind("SELECT "+entryColumns+" FROM journal_entries e WHERE e.entry_date = ?"), formatDate(date)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SaveEntry upserts by entry date. A new date gets created_at = updated_at = now;
// an existing date keeps its id, date and created_at and takes the new title and content.
func (q *Queries) SaveEntry(entry models.JournalEntry) (models.JournalEntry, error) {
	now := q.now()
	date := formatDate(entry.EntryDate)

	var saved models.JournalEntry
	err := q.inTx(func(tx *sql.Tx) error {
		existing, err := scanEntry(tx.QueryRow(q.Rebind("SELECT "+entryColumns+" FROM journal_entries e WHERE e.entry_date = ?"), date))
		switch {
		case errors.Is(err, sql.ErrNoRows):
			saved = models.JournalEntry{
				Title:     entry.Title,
				Content:   entry.Content,
				EntryDate: utils.DayOf(entry.EntryDate),
				CreatedAt: now,
				UpdatedAt: now,
			}
			return tx.QueryRow(q.Rebind(`
				INSERT INTO journal_entries (title, content, entry_date, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?) RETURNING id`),
				saved.Title, saved.Content, date, formatTimestamp(now), formatTimestamp(now),
			).Scan(&saved.ID)
		case err != nil:
			return err
		}

		saved = existing
		saved.Title = entry.Title
		saved.Content = entry.Content
		saved.UpdatedAt = now
		_, err = tx.Exec(q.Rebind("UPDATE journal_entries SET title = ?, content = ?, updated_at = ? WHERE id = ?"),
			saved.Title, saved.Content, formatTimestamp(now), saved.ID)
		return err
	})
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to save entry for %s: %w", date, err)
	}
	logger.Debug("Saved entry", "id", saved.ID, "date", date)
	return saved, nil
}

// UpdateEntry rewrites an entry by id and refreshes updated_at.
func (q *Queries) UpdateEntry(entry models.JournalEntry) error {
	db, err := q.db()
	if err != nil {
		return err
	}
	res, err := db.Exec(q.Rebind("UPDATE journal_entries SET title = ?, content = ?, entry_date = ?, updated_at = ? WHERE id = ?"),
		entry.Title, entry.Content, formatDate(entry.EntryDate), formatTimestamp(q.now()), entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %d: %w", entry.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteEntry removes an entry together with its mood and tag links.
func (q *Queries) DeleteEntry(id int) error {
	return q.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(q.Rebind("DELETE FROM entry_moods WHERE entry_id = ?"), id); err != nil {
			return fmt.Errorf("failed to delete entry moods: %w", err)
		}
		if _, err := tx.Exec(q.Rebind("DELETE FROM entry_tags WHERE entry_id = ?"), id); err != nil {
			return fmt.Errorf("failed to delete entry tags: %w", err)
		}
		res, err := tx.Exec(q.Rebind("DELETE FROM journal_entries WHERE id = ?"), id)
		if err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("entry %d: %w", id, storage.ErrNotFound)
		}
		logger.Debug("Deleted entry", "id", id)
		return nil
	})
}

// GetEntries returns every entry, newest created first.
func (q *Queries) GetEntries() ([]models.JournalEntry, error) {
	return q.queryEntries("SELECT " + entryColumns + " FROM journal_entries e ORDER BY e.created_at DESC, e.id DESC")
}

// GetEntriesFiltered narrows GetEntries by inclusive date bounds and by having at
// least one linked mood in MoodIDs and one linked tag in TagIDs. Filters compose with AND.
func (q *Queries) GetEntriesFiltered(filter models.EntryFilter) ([]models.JournalEntry, error) {
	var query strings.Builder
	query.WriteString("SELECT " + entryColumns + " FROM journal_entries e WHERE 1=1")

	clause, args := dateRange("e.entry_date", filter.Start, filter.End)
	query.WriteString(clause)

	if len(filter.MoodIDs) > 0 {
		query.WriteString(" AND EXISTS (SELECT 1 FROM entry_moods em WHERE em.entry_id = e.id AND em.mood_id IN (" + placeholders(len(filter.MoodIDs)) + "))")
		for _, id := range filter.MoodIDs {
			args = append(args, id)
		}
	}
	if len(filter.TagIDs) > 0 {
		query.WriteString(" AND EXISTS (SELECT 1 FROM entry_tags et WHERE et.entry_id = e.id AND et.tag_id IN (" + placeholders(len(filter.TagIDs)) + "))")
		for _, id := range filter.TagIDs {
			args = append(args, id)
		}
	}
	query.WriteString(" ORDER BY e.created_at DESC, e.id DESC")

	return q.queryEntries(query.String(), args...)
}
