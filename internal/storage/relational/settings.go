package relational

import (
	"database/sql"

	"github.com/julianstephens/daybook/internal/models"
)

func (q *Queries) GetSettings() (models.Settings, error) {
	db, err := q.db()
	if err != nil {
		return models.Settings{}, err
	}
	rows, err := db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	settings := models.MapToSettings(data)
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (q *Queries) SaveSettings(settings models.Settings) error {
	upsert := q.Rebind(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`)

	return q.inTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(upsert)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for key, value := range models.SettingsToMap(settings) {
			if value == "" {
				continue
			}
			if _, err := stmt.Exec(key, value); err != nil {
				return err
			}
		}
		return nil
	})
}
