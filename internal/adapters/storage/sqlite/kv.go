package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"farm-records/internal/ports/kv"

	_ "modernc.org/sqlite" // driver pure go
)

// KV persiste cada colección como un blob JSON en una tabla key/payload.
// Cada escritura reemplaza el payload completo de la key.
type KV struct {
	db   *sql.DB
	path string
}

// Open abre (o crea) el archivo SQLite y asegura el schema.
func Open(path string) (*KV, error) {
	if path == "" {
		path = "farm.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("sqlite: create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// un solo writer; evita SQLITE_BUSY entre conexiones del pool
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create kv table: %w", err)
	}

	return &KV{db: db, path: path}, nil
}

func (s *KV) Close() error { return s.db.Close() }

// Path devuelve el archivo configurado.
func (s *KV) Path() string { return s.path }

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, s.db, key)
}

func (s *KV) Put(ctx context.Context, key string, payload []byte) error {
	return put(ctx, s.db, key, payload)
}

func (s *KV) Delete(ctx context.Context, key string) error {
	return del(ctx, s.db, key)
}

func (s *KV) Update(ctx context.Context, fn func(tx kv.Tx) error) (retErr error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = sqlTx.Rollback()
		}
	}()

	if err := fn(&tx{q: sqlTx}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// querier es lo común entre *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type tx struct {
	q querier
}

func (t *tx) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, t.q, key)
}

func (t *tx) Put(ctx context.Context, key string, payload []byte) error {
	return put(ctx, t.q, key, payload)
}

func (t *tx) Delete(ctx context.Context, key string) error {
	return del(ctx, t.q, key)
}

func get(ctx context.Context, q querier, key string) ([]byte, error) {
	var payload []byte
	err := q.QueryRowContext(ctx, `SELECT payload FROM kv WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kv.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: get %s: %w", key, err)
	}
	return payload, nil
}

func put(ctx context.Context, q querier, key string, payload []byte) error {
	if payload == nil {
		payload = []byte{}
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO kv(key, payload, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, key, payload)
	if err != nil {
		return fmt.Errorf("sqlite: put %s: %w", key, err)
	}
	return nil
}

func del(ctx context.Context, q querier, key string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite: delete %s: %w", key, err)
	}
	return nil
}
