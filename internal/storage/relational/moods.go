package relational

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
)

const moodColumns = "id, name, category"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMood(row rowScanner) (models.Mood, error) {
	var m models.Mood
	var category string
	if err := row.Scan(&m.ID, &m.Name, &category); err != nil {
		return models.Mood{}, err
	}
	m.Category = constants.MoodCategory(category)
	return m, nil
}

func (q *Queries) queryMoods(query string, args ...any) ([]models.Mood, error) {
	db, err := q.db()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(q.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	moods := []models.Mood{}
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

// GetMoods returns every mood in insertion order.
func (q *Queries) GetMoods() ([]models.Mood, error) {
	return q.queryMoods("SELECT " + moodColumns + " FROM moods ORDER BY id")
}

func (q *Queries) GetMoodsByCategory(category constants.MoodCategory) ([]models.Mood, error) {
	return q.queryMoods("SELECT "+moodColumns+" FROM moods WHERE category = ? ORDER BY id", string(category))
}

func (q *Queries) GetMood(id int) (models.Mood, error) {
	db, err := q.db()
	if err != nil {
		return models.Mood{}, err
	}
	m, err := scanMood(db.QueryRow(q.Rebind("SELECT "+moodColumns+" FROM moods WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Mood{}, fmt.Errorf("mood %d: %w", id, storage.ErrNotFound)
	}
	return m, err
}

// GetMoodByName matches case-insensitively and returns nil when no mood has that name.
func (q *Queries) GetMoodByName(name string) (*models.Mood, error) {
	db, err := q.db()
	if err != nil {
		return nil, err
	}
	m, err := scanMood(db.QueryRow(q.Rebind("SELECT "+moodColumns+" FROM moods WHERE LOWER(name) = LOWER(?) ORDER BY id LIMIT 1"), name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (q *Queries) AddMood(mood models.Mood) (models.Mood, error) {
	if !constants.IsValidMoodCategory(string(mood.Category)) {
		return models.Mood{}, fmt.Errorf("invalid mood category %q", mood.Category)
	}
	db, err := q.db()
	if err != nil {
		return models.Mood{}, err
	}
	err = db.QueryRow(q.Rebind("INSERT INTO moods (name, category) VALUES (?, ?) RETURNING id"),
		mood.Name, string(mood.Category)).Scan(&mood.ID)
	if err != nil {
		return models.Mood{}, fmt.Errorf("failed to add mood: %w", err)
	}
	return mood, nil
}

// SeedMoods inserts the defaults whose names are missing, in one transaction.
func (q *Queries) SeedMoods(defaults []constants.DefaultMood) (int, error) {
	inserted := 0
	err := q.inTx(func(tx *sql.Tx) error {
		existing, err := existingNames(tx, "moods")
		if err != nil {
			return err
		}
		stmt, err := tx.Prepare(q.Rebind("INSERT INTO moods (name, category) VALUES (?, ?)"))
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, d := range defaults {
			if existing[d.Name] {
				continue
			}
			if _, err := stmt.Exec(d.Name, string(d.Category)); err != nil {
				return fmt.Errorf("failed to seed mood %q: %w", d.Name, err)
			}
			existing[d.Name] = true
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		logger.Debug("Seeded moods", "count", inserted)
	}
	return inserted, nil
}

func existingNames(tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.Query("SELECT name FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing %s: %w", table, err)
	}
	defer rows.Close()

	names := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names[name] = true
	}
	return names, rows.Err()
}
