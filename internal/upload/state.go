package upload

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// StateDB remembers which export files were already sent so re-running the
// uploader does not re-import a file and duplicate its sets server-side.
// It also keeps the server-reported set count per export, so the total ever
// uploaded survives across runs.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS uploaded_exports (
		path        TEXT PRIMARY KEY,
		size        INTEGER NOT NULL,
		hash        TEXT NOT NULL,
		sets        INTEGER NOT NULL DEFAULT 0,
		uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsUploaded checks if a file has already been sent with the same size and hash.
func (s *StateDB) IsUploaded(relPath string, size int64, hash string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM uploaded_exports WHERE path = ? AND size = ? AND hash = ?`,
		relPath, size, hash,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkUploaded records that a file was successfully sent along with the set
// count the server imported from it. A changed file (same path, new hash)
// replaces the old record.
func (s *StateDB) MarkUploaded(relPath string, size int64, hash string, sets int) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO uploaded_exports (path, size, hash, sets) VALUES (?, ?, ?, ?)`,
		relPath, size, hash, sets,
	)
	return err
}

// TotalSetsUploaded returns the set count summed over every recorded export.
func (s *StateDB) TotalSetsUploaded() (int, error) {
	var total int
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(sets), 0) FROM uploaded_exports`,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}

// HashFile computes the SHA-256 hash of a file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
