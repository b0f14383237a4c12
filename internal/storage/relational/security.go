package relational

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
)

// GetSecurity returns the account record, or nil before setup.
func (q *Queries) GetSecurity() (*models.Security, error) {
	db, err := q.db()
	if err != nil {
		return nil, err
	}

	var sec models.Security
	var createdAt string
	err = db.QueryRow(`
		SELECT username, pin_hash, recovery_question, recovery_answer_hash, created_at
		FROM security WHERE id = 1`).Scan(&sec.Username, &sec.PinHash, &sec.RecoveryQuestion, &sec.RecoveryAnswerHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sec.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse security created_at: %w", err)
	}
	return &sec, nil
}

// SaveSecurity writes the singleton account record, replacing any previous one.
func (q *Queries) SaveSecurity(sec models.Security) error {
	db, err := q.db()
	if err != nil {
		return err
	}
	if sec.CreatedAt.IsZero() {
		sec.CreatedAt = q.now()
	}

	_, err = db.Exec(q.Rebind(`
		INSERT INTO security (id, username, pin_hash, recovery_question, recovery_answer_hash, created_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			username = excluded.username,
			pin_hash = excluded.pin_hash,
			recovery_question = excluded.recovery_question,
			recovery_answer_hash = excluded.recovery_answer_hash,
			created_at = excluded.created_at`),
		sec.Username, sec.PinHash, sec.RecoveryQuestion, sec.RecoveryAnswerHash, formatTimestamp(sec.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save security record: %w", err)
	}
	return nil
}

func (q *Queries) UpdatePinHash(hash string) error {
	db, err := q.db()
	if err != nil {
		return err
	}
	res, err := db.Exec(q.Rebind("UPDATE security SET pin_hash = ? WHERE id = 1"), hash)
	if err != nil {
		return fmt.Errorf("failed to update pin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("security record: %w", storage.ErrNotFound)
	}
	return nil
}
