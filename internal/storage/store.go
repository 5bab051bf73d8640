// Package storage provides the durable named-slot store and the generic
// binding that keeps an in-memory value synchronized with one slot.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"hotzaot/internal/log"

	_ "modernc.org/sqlite"
)

// SlotStore is a named-slot key-value space backed by a local SQLite file.
// Each slot holds one JSON document. Slots are written independently with
// last-writer-wins semantics; there is no cross-slot transaction, so a
// failure between two writes leaves the slots as they were at that point.
type SlotStore struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSlotStore(dbPath string, logger *log.Logger) (*SlotStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SlotStore{db: db, logger: logger.WithComponent(log.ComponentStorage)}, nil
}

func (s *SlotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Read returns the raw JSON document stored under name, reporting absence
// separately from failure.
func (s *SlotStore) Read(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot %q: %w", name, err)
	}
	return value, true, nil
}

// Write upserts the slot. The previous value is overwritten whole; callers
// own serialization of the document they hand in.
func (s *SlotStore) Write(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		name, value)
	if err != nil {
		return fmt.Errorf("write slot %q: %w", name, err)
	}
	s.logger.Debug("Slot written", log.FieldSlot, name, "bytes", len(value))
	return nil
}

// Delete removes a slot. Deleting a missing slot is a no-op.
func (s *SlotStore) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete slot %q: %w", name, err)
	}
	return nil
}
