// Package backup snapshots and restores the sqlite journal file.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/logger"
)

const stampLayout = "20060102-150405"

// ErrNotJournal is returned when a file is a sqlite database without the journal schema.
var ErrNotJournal = errors.New("file is not a daybook journal")

type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

func (i Info) Name() string { return filepath.Base(i.Path) }

type Manager struct {
	dbPath    string
	backupDir string
	keep      int
	now       func() time.Time
}

// NewManager manages backups of dbPath in a backups directory next to it.
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:      constants.MaxBackups,
		now:       time.Now,
	}
}

func (m *Manager) Dir() string { return m.backupDir }

// CreateBackup writes a compacted copy of the journal and prunes the oldest
// backups beyond the retention limit.
func (m *Manager) CreateBackup() (string, error) {
	path, err := m.snapshot()
	if err != nil {
		return "", err
	}
	if err := m.prune(); err != nil {
		logger.Warn("failed to prune old backups", "error", err)
	}
	logger.Info("created backup", "path", path)
	return path, nil
}

func (m *Manager) snapshot() (string, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return "", fmt.Errorf("journal database not found at %s: %w", m.dbPath, err)
	}
	if err := os.MkdirAll(m.backupDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := vacuumInto(m.dbPath, dest); err != nil {
		return "", fmt.Errorf("failed to back up journal: %w", err)
	}
	return dest, nil
}

// nextPath names a backup after the current second, adding -N on collision.
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(stampLayout)
	base := filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp)

	path := base + constants.BackupFileSuffix
	for n := 1; n <= 100; n++ {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		path = fmt.Sprintf("%s-%d%s", base, n, constants.BackupFileSuffix)
	}
	return "", errors.New("failed to pick a unique backup file name")
}

func vacuumInto(src, dest string) error {
	db, err := sql.Open("sqlite", "file:"+src+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := checkJournal(db); err != nil {
		return err
	}
	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file instead", "error", err)
		return copyFile(src, dest)
	}
	return nil
}

func checkJournal(db *sql.DB) error {
	var n int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('journal_entries', 'moods', 'tags')",
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("not a readable sqlite database: %w", err)
	}
	if n != 3 {
		return ErrNotJournal
	}
	return nil
}

// parseName extracts the timestamp from daybook-YYYYMMDD-HHMMSS[-N].db.
func parseName(name string) (time.Time, bool) {
	stamp, ok := strings.CutPrefix(name, constants.BackupFilePrefix)
	if !ok {
		return time.Time{}, false
	}
	stamp, ok = strings.CutSuffix(stamp, constants.BackupFileSuffix)
	if !ok || len(stamp) < len(stampLayout) {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(stampLayout, stamp[:len(stampLayout)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	if rest := stamp[len(stampLayout):]; rest != "" && !isCounter(rest) {
		return time.Time{}, false
	}
	return ts, true
}

func isCounter(s string) bool {
	digits, ok := strings.CutPrefix(s, "-")
	if !ok || digits == "" {
		return false
	}
	return strings.Trim(digits, "0123456789") == ""
}

// ListBackups returns the backups newest first. A missing directory yields none.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ts, ok := parseName(e.Name())
		if !ok {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, e.Name()),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	slices.SortFunc(backups, func(a, b Info) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return backups, nil
}

func (m *Manager) prune() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for _, b := range backups[min(m.keep, len(backups)):] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", b.Name(), err)
		}
		logger.Debug("pruned backup", "path", b.Path)
	}
	return nil
}

// RestoreBackup replaces the journal with the backup at path. The current
// journal, when present, is snapshotted first and that snapshot's path is
// returned. The store must be closed while restoring.
func (m *Manager) RestoreBackup(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("backup not found: %w", err)
	}
	if err := verify(path); err != nil {
		return "", fmt.Errorf("refusing to restore %s: %w", filepath.Base(path), err)
	}

	var safety string
	if _, err := os.Stat(m.dbPath); err == nil {
		if safety, err = m.snapshot(); err != nil {
			return "", fmt.Errorf("failed to back up current journal before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return safety, fmt.Errorf("failed to stage backup: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("failed to remove staged restore file", "path", tmp, "error", rmErr)
		}
		return safety, fmt.Errorf("failed to replace journal: %w", err)
	}

	logger.Info("restored backup", "from", path, "safety_backup", safety)
	return safety, nil
}

// Resolve accepts a backup file name or path and returns its full path.
func (m *Manager) Resolve(nameOrPath string) string {
	if filepath.IsAbs(nameOrPath) || strings.ContainsRune(nameOrPath, os.PathSeparator) {
		return nameOrPath
	}
	return filepath.Join(m.backupDir, nameOrPath)
}

func verify(path string) error {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return checkJournal(db)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
