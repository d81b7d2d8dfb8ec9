package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hpungsan/lexis/internal/analysis"
	"github.com/hpungsan/lexis/internal/errors"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// SQLite is a Store backed by an in-memory SQLite database. The pool holds a
// single connection: an in-memory database lives and dies with its
// connection, and one connection also serializes all access.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens a fresh in-memory database and applies migrations.
func OpenSQLite() (*SQLite, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS records (
		  seq               INTEGER PRIMARY KEY AUTOINCREMENT,
		  id                TEXT NOT NULL UNIQUE,
		  value             BLOB,
		  length            INTEGER NOT NULL,
		  is_palindrome     INTEGER NOT NULL,
		  unique_characters INTEGER NOT NULL,
		  word_count        INTEGER NOT NULL,
		  frequency_json    TEXT NOT NULL,
		  created_at        INTEGER NOT NULL
		);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

// Insert stores a new record. A duplicate ID maps to CONFLICT.
func (s *SQLite) Insert(ctx context.Context, rec *analysis.Record) error {
	freqJSON, err := json.Marshal(rec.Properties.CharacterFrequencyMap)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO records (
			id, value, length, is_palindrome, unique_characters,
			word_count, frequency_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		rec.ID, []byte(rec.Value), rec.Properties.Length, rec.Properties.IsPalindrome,
		rec.Properties.UniqueCharacters, rec.Properties.WordCount, string(freqJSON),
		rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewConflict(rec.ID)
		}
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

const selectColumns = `
	SELECT id, value, length, is_palindrome, unique_characters,
		word_count, frequency_json, created_at
	FROM records
`

// Get retrieves a record by its digest.
func (s *SQLite) Get(ctx context.Context, id string) (*analysis.Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return rec, nil
}

// Delete removes a record by its digest.
func (s *SQLite) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return false, errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return rowsAffected > 0, nil
}

// All returns every record ordered by insertion.
func (s *SQLite) All(ctx context.Context) ([]*analysis.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY seq ASC")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	records := make([]*analysis.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// Close closes the database, discarding all records.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans a single row into a Record.
func scanRecord(row rowScanner) (*analysis.Record, error) {
	var (
		rec       analysis.Record
		value     []byte
		freqJSON  string
		createdAt int64
	)

	err := row.Scan(
		&rec.ID, &value, &rec.Properties.Length, &rec.Properties.IsPalindrome,
		&rec.Properties.UniqueCharacters, &rec.Properties.WordCount, &freqJSON, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Value = string(value)
	rec.Properties.SHA256Hash = rec.ID
	rec.CreatedAt = time.Unix(0, createdAt).UTC()

	rec.Properties.CharacterFrequencyMap = make(map[string]int)
	if err := json.Unmarshal([]byte(freqJSON), &rec.Properties.CharacterFrequencyMap); err != nil {
		return nil, err
	}

	return &rec, nil
}
