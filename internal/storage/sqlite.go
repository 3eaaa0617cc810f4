// Package storage persists machine snapshots to SQLite through the pure Go
// modernc.org/sqlite driver.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/fairyhunter13/vending-machine-service/internal/vending"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
    position    INTEGER NOT NULL,
    id          TEXT    NOT NULL,
    name        TEXT    NOT NULL PRIMARY KEY,
    price_cents INTEGER NOT NULL,
    amount      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS machine_coins (
    denomination INTEGER NOT NULL PRIMARY KEY,
    amount       INTEGER NOT NULL
);
`

// SQLite implements vending.Repository on a single database file.
type SQLite struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// WAL mode for better concurrency; SQLite benefits from a single writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error { return s.db.Close() }

// Load reads the persisted snapshot. It returns (nil, nil) when no snapshot
// has been saved yet.
func (s *SQLite) Load(ctx context.Context) (*vending.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, price_cents, amount FROM items ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	snap := vending.Snapshot{Coins: make(map[model.Denomination]int)}
	for rows.Next() {
		var it model.Item
		var price int64
		if err := rows.Scan(&it.ID, &it.Name, &price, &it.Amount); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Price = model.Cents(price)
		snap.Items = append(snap.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	if len(snap.Items) == 0 {
		return nil, nil
	}

	coinRows, err := s.db.QueryContext(ctx,
		"SELECT denomination, amount FROM machine_coins")
	if err != nil {
		return nil, fmt.Errorf("query coins: %w", err)
	}
	defer coinRows.Close()
	for coinRows.Next() {
		var denom int64
		var amount int
		if err := coinRows.Scan(&denom, &amount); err != nil {
			return nil, fmt.Errorf("scan coin: %w", err)
		}
		snap.Coins[model.Denomination(denom)] = amount
	}
	if err := coinRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coins: %w", err)
	}
	return &snap, nil
}

// Save replaces the persisted snapshot in one transaction.
func (s *SQLite) Save(ctx context.Context, snap vending.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM machine_coins"); err != nil {
		return fmt.Errorf("clear coins: %w", err)
	}
	for i, it := range snap.Items {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO items (position, id, name, price_cents, amount) VALUES (?, ?, ?, ?, ?)",
			i, it.ID, it.Name, int64(it.Price), it.Amount); err != nil {
			return fmt.Errorf("insert item %s: %w", it.Name, err)
		}
	}
	for denom, amount := range snap.Coins {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO machine_coins (denomination, amount) VALUES (?, ?)",
			int64(denom), amount); err != nil {
			return fmt.Errorf("insert coin %s: %w", denom, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
