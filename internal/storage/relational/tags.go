package relational

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
)

const tagColumns = "id, name, is_predefined"

func scanTag(row rowScanner) (models.Tag, error) {
	var t models.Tag
	if err := row.Scan(&t.ID, &t.Name, &t.IsPredefined); err != nil {
		return models.Tag{}, err
	}
	return t, nil
}

func (q *Queries) queryTags(query string, args ...any) ([]models.Tag, error) {
	db, err := q.db()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(q.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// GetTags returns every tag ordered by name.
func (q *Queries) GetTags() ([]models.Tag, error) {
	return q.queryTags("SELECT " + tagColumns + " FROM tags ORDER BY name, id")
}

func (q *Queries) GetTag(id int) (models.Tag, error) {
	db, err := q.db()
	if err != nil {
		return models.Tag{}, err
	}
	t, err := scanTag(db.QueryRow(q.Rebind("SELECT "+tagColumns+" FROM tags WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tag{}, fmt.Errorf("tag %d: %w", id, storage.ErrNotFound)
	}
	return t, err
}

// GetTagByName matches case-insensitively and returns nil when no tag has that name.
func (q *Queries) GetTagByName(name string) (*models.Tag, error) {
	db, err := q.db()
	if err != nil {
		return nil, err
	}
	t, err := scanTag(db.QueryRow(q.Rebind("SELECT "+tagColumns+" FROM tags WHERE LOWER(name) = LOWER(?) ORDER BY id LIMIT 1"), name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AddTag creates a user tag.
func (q *Queries) AddTag(name string) (models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Tag{}, fmt.Errorf("tag name cannot be empty")
	}
	db, err := q.db()
	if err != nil {
		return models.Tag{}, err
	}
	tag := models.Tag{Name: name}
	err = db.QueryRow(q.Rebind("INSERT INTO tags (name, is_predefined) VALUES (?, ?) RETURNING id"), name, false).Scan(&tag.ID)
	if err != nil {
		return models.Tag{}, fmt.Errorf("failed to add tag: %w", err)
	}
	logger.Debug("Added tag", "id", tag.ID, "name", name)
	return tag, nil
}

// DeleteTag removes a user tag and its entry links. Predefined tags are refused.
func (q *Queries) DeleteTag(id int) error {
	tag, err := q.GetTag(id)
	if err != nil {
		return err
	}
	if tag.IsPredefined {
		return fmt.Errorf("tag %q: %w", tag.Name, storage.ErrPredefinedTag)
	}

	return q.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(q.Rebind("DELETE FROM entry_tags WHERE tag_id = ?"), id); err != nil {
			return fmt.Errorf("failed to unlink tag: %w", err)
		}
		if _, err := tx.Exec(q.Rebind("DELETE FROM tags WHERE id = ?"), id); err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		return nil
	})
}

// SeedTags inserts the predefined tags whose names are missing, in one transaction.
func (q *Queries) SeedTags(defaults []string) (int, error) {
	inserted := 0
	err := q.inTx(func(tx *sql.Tx) error {
		existing, err := existingNames(tx, "tags")
		if err != nil {
			return err
		}
		stmt, err := tx.Prepare(q.Rebind("INSERT INTO tags (name, is_predefined) VALUES (?, ?)"))
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, name := range defaults {
			if existing[name] {
				continue
			}
			if _, err := stmt.Exec(name, true); err != nil {
				return fmt.Errorf("failed to seed tag %q: %w", name, err)
			}
			existing[name] = true
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		logger.Debug("Seeded tags", "count", inserted)
	}
	return inserted, nil
}
