package sqlite

import (
	"errors"
	"testing"

	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/storage"
)

func TestSecurityRecord(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	sec, err := store.GetSecurity()
	if err != nil {
		t.Fatalf("missing security record should not be an error: %v", err)
	}
	if sec != nil {
		t.Fatalf("expected nil security record before setup, got %+v", sec)
	}

	if err := store.UpdatePinHash("nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound before setup, got %v", err)
	}

	record := models.Security{
		Username:           "sam",
		PinHash:            "hash-1",
		RecoveryQuestion:   "First pet?",
		RecoveryAnswerHash: "answer-hash",
	}
	if err := store.SaveSecurity(record); err != nil {
		t.Fatalf("failed to save security record: %v", err)
	}

	sec, err = store.GetSecurity()
	if err != nil {
		t.Fatalf("failed to get security record: %v", err)
	}
	if sec.Username != "sam" || sec.PinHash != "hash-1" || sec.RecoveryQuestion != "First pet?" {
		t.Errorf("unexpected security record %+v", sec)
	}
	if sec.CreatedAt.IsZero() {
		t.Error("expected created_at to be stamped")
	}

	if err := store.UpdatePinHash("hash-2"); err != nil {
		t.Fatalf("failed to update pin hash: %v", err)
	}
	sec, _ = store.GetSecurity()
	if sec.PinHash != "hash-2" || sec.RecoveryAnswerHash != "answer-hash" {
		t.Errorf("expected only pin hash to change, got %+v", sec)
	}

	record.Username = "alex"
	if err := store.SaveSecurity(record); err != nil {
		t.Fatalf("failed to overwrite security record: %v", err)
	}
	var rows int
	if err := store.DB.QueryRow("SELECT COUNT(*) FROM security").Scan(&rows); err != nil {
		t.Fatalf("failed to count security rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("expected a single security row, got %d", rows)
	}
}
