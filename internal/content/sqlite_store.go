// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/readerpulse/internal/access"
	"github.com/ManuGH/readerpulse/internal/persistence/sqlite"
)

var sqliteMigrations = []string{
	`CREATE TABLE items (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		path       TEXT NOT NULL DEFAULT '',
		tier       TEXT NOT NULL,
		blocks     TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
}

// SQLiteStore keeps items in a single table with JSON-encoded blocks.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (and migrates) the database at path.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sqlite.Open(ctx, path, sqlite.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := sqlite.Migrate(ctx, db, sqliteMigrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, path, tier, blocks, updated_at FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return it, err
}

func (s *SQLiteStore) Put(ctx context.Context, it Item) error {
	blocks, err := json.Marshal(it.Blocks)
	if err != nil {
		return fmt.Errorf("encode blocks: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO items (id, title, path, tier, blocks, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			path = excluded.path,
			tier = excluded.tier,
			blocks = excluded.blocks,
			updated_at = excluded.updated_at`,
		it.ID, it.Title, it.Path, string(it.Tier), string(blocks), it.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("put item %s: %w", it.ID, err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, path, tier, blocks, updated_at FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Ping runs a quick integrity check.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	problems, err := sqlite.QuickCheck(ctx, s.db)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		return fmt.Errorf("sqlite integrity: %s", problems[0])
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (Item, error) {
	var (
		it      Item
		tier    string
		blocks  string
		updated int64
	)
	if err := sc.Scan(&it.ID, &it.Title, &it.Path, &tier, &blocks, &updated); err != nil {
		return Item{}, err
	}
	if err := json.Unmarshal([]byte(blocks), &it.Blocks); err != nil {
		return Item{}, fmt.Errorf("decode blocks for %s: %w", it.ID, err)
	}
	it.Tier = access.Tier(tier)
	it.UpdatedAt = time.UnixMilli(updated).UTC()
	return it, nil
}
