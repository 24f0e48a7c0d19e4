// Package store persists the board in a workspace-local SQLite file. The
// drag engine never touches it: commits flow engine -> host -> store.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"dragboard-cli/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	// Dir is the workspace directory holding board.sqlite.
	Dir string
}

func (s Store) dbPath() string {
	return filepath.Join(filepath.Clean(s.Dir), "board.sqlite")
}

// Ensure creates the workspace directory if missing.
func (s Store) Ensure() error {
	if s.Dir == "" {
		return errors.New("store: missing dir")
	}
	return os.MkdirAll(filepath.Clean(s.Dir), 0o755)
}

func (s Store) Open(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when a CLI command runs while the
	// TUI is open.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lanes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			ord INTEGER NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			lane_id TEXT NOT NULL,
			ord INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_cards_lane ON cards(lane_id, ord);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the whole board. Lanes and cards come back sorted by order.
func (s Store) Load(ctx context.Context) (*model.Board, error) {
	db, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	b := &model.Board{}

	lrows, err := db.QueryContext(ctx, `SELECT id, title, ord, created_at_unixms FROM lanes ORDER BY ord`)
	if err != nil {
		return nil, err
	}
	for lrows.Next() {
		var l model.Lane
		var createdMS int64
		if err := lrows.Scan(&l.ID, &l.Title, &l.Order, &createdMS); err != nil {
			_ = lrows.Close()
			return nil, err
		}
		l.CreatedAt = time.UnixMilli(createdMS).UTC()
		b.Lanes = append(b.Lanes, l)
	}
	if err := lrows.Err(); err != nil {
		_ = lrows.Close()
		return nil, err
	}
	_ = lrows.Close()

	crows, err := db.QueryContext(ctx, `SELECT id, lane_id, ord, title, description, created_at_unixms, updated_at_unixms FROM cards ORDER BY lane_id, ord`)
	if err != nil {
		return nil, err
	}
	defer crows.Close()
	for crows.Next() {
		var c model.Card
		var createdMS, updatedMS int64
		if err := crows.Scan(&c.ID, &c.LaneID, &c.Order, &c.Title, &c.Description, &createdMS, &updatedMS); err != nil {
			return nil, err
		}
		c.CreatedAt = time.UnixMilli(createdMS).UTC()
		c.UpdatedAt = time.UnixMilli(updatedMS).UTC()
		b.Cards = append(b.Cards, c)
	}
	if err := crows.Err(); err != nil {
		return nil, err
	}

	model.SortLanes(b.Lanes)
	model.SortCards(b.Cards)
	return b, nil
}

// Save replaces the stored board with b in one transaction, so concurrent
// readers never observe a half-written ordering.
func (s Store) Save(ctx context.Context, b *model.Board) error {
	if b == nil {
		return errors.New("store: nil board")
	}
	db, err := s.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM lanes`); err != nil {
		return err
	}
	for _, l := range b.Lanes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lanes(id, title, ord, created_at_unixms) VALUES(?, ?, ?, ?)`,
			l.ID, l.Title, l.Order, l.CreatedAt.UnixMilli()); err != nil {
			return err
		}
	}
	for _, c := range b.Cards {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cards(id, lane_id, ord, title, description, created_at_unixms, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.LaneID, c.Order, c.Title, c.Description, c.CreatedAt.UnixMilli(), c.UpdatedAt.UnixMilli()); err != nil {
			return err
		}
	}
	return tx.Commit()
}
