package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4/database"
)

const versionTable = "schema_migrations"

// sqliteTarget drives schema migrations over the sqlite connection the ORM
// already holds. The migrate-provided sqlite drivers each register a second
// database/sql driver named "sqlite" at init, which collides with the
// registration the ORM's driver performs under the same name.
type sqliteTarget struct {
	db     *sql.DB
	locked atomic.Bool
}

func newSQLiteTarget(db *sql.DB) (database.Driver, error) {
	t := &sqliteTarget{db: db}
	query := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (version uint64, dirty bool); CREATE UNIQUE INDEX IF NOT EXISTS version_unique ON %s (version);",
		versionTable, versionTable,
	)
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("creating version table: %w", err)
	}
	return t, nil
}

// Open is only called for URL-based construction, which this target does not
// support.
func (t *sqliteTarget) Open(string) (database.Driver, error) {
	return nil, errors.New("sqlite migrations run over an existing connection")
}

// Close leaves the connection open; the caller owns it.
func (t *sqliteTarget) Close() error { return nil }

func (t *sqliteTarget) Lock() error {
	if !t.locked.CompareAndSwap(false, true) {
		return database.ErrLocked
	}
	return nil
}

func (t *sqliteTarget) Unlock() error {
	if !t.locked.CompareAndSwap(true, false) {
		return database.ErrNotLocked
	}
	return nil
}

func (t *sqliteTarget) Run(migration io.Reader) error {
	statements, err := io.ReadAll(migration)
	if err != nil {
		return err
	}

	tx, err := t.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(statements)); err != nil {
		tx.Rollback()
		return fmt.Errorf("executing migration: %w", err)
	}
	return tx.Commit()
}

func (t *sqliteTarget) SetVersion(version int, dirty bool) error {
	tx, err := t.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM " + versionTable); err != nil {
		tx.Rollback()
		return err
	}
	if version >= 0 || (version == database.NilVersion && dirty) {
		query := fmt.Sprintf("INSERT INTO %s (version, dirty) VALUES (?, ?)", versionTable)
		if _, err := tx.Exec(query, version, dirty); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (t *sqliteTarget) Version() (int, bool, error) {
	var (
		version int
		dirty   bool
	)
	err := t.db.QueryRow(fmt.Sprintf("SELECT version, dirty FROM %s LIMIT 1", versionTable)).Scan(&version, &dirty)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return database.NilVersion, false, nil
	case err != nil:
		return 0, false, err
	}
	return version, dirty, nil
}

func (t *sqliteTarget) Drop() error {
	rows, err := t.db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, name := range tables {
		if _, err := t.db.Exec("DROP TABLE " + name); err != nil {
			return err
		}
	}
	return nil
}
