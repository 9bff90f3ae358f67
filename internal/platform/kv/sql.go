package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"PRESENCE-backend/internal/platform/db"
)

// dialect ごとの SQL
type dialect struct {
	schema string
	get    string
	lock   string
	upsert string
}

var dialects = map[string]dialect{
	db.DriverMySQL: {
		schema: `
	CREATE TABLE IF NOT EXISTS kv_entries (
		k          VARCHAR(64) NOT NULL PRIMARY KEY,
		v          LONGBLOB    NOT NULL,
		updated_at DATETIME(6) NOT NULL
	) DEFAULT CHARSET=utf8mb4`,
		get:  `SELECT v FROM kv_entries WHERE k = ?`,
		lock: `SELECT v FROM kv_entries WHERE k = ? FOR UPDATE`,
		upsert: `
	INSERT INTO kv_entries (k, v, updated_at)
	VALUES (?, ?, UTC_TIMESTAMP(6))
	ON DUPLICATE KEY UPDATE
	v          = VALUES(v),
	updated_at = VALUES(updated_at)`,
	},
	db.DriverPgx: {
		schema: `
	CREATE TABLE IF NOT EXISTS kv_entries (
		k          VARCHAR(64) NOT NULL PRIMARY KEY,
		v          BYTEA       NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
		get:  `SELECT v FROM kv_entries WHERE k = $1`,
		lock: `SELECT v FROM kv_entries WHERE k = $1 FOR UPDATE`,
		upsert: `
	INSERT INTO kv_entries (k, v, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (k) DO UPDATE SET
	v          = EXCLUDED.v,
	updated_at = EXCLUDED.updated_at`,
	},
}

// SQLStore は kv_entries テーブル1つに全カテゴリを保存する
type SQLStore struct {
	db *sql.DB
	q  dialect
}

func NewSQLStore(conn *sql.DB, driver string) (*SQLStore, error) {
	q, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("kv: unsupported driver %q", driver)
	}
	return &SQLStore{db: conn, q: q}, nil
}

// Migrate: テーブルが無ければ作る（起動時に1回）
func (s *SQLStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, s.q.schema)
	return err
}

func (s *SQLStore) Get(ctx context.Context, c Category) ([]byte, bool, error) {
	return s.get(ctx, s.db, s.q.get, c)
}

func (s *SQLStore) Set(ctx context.Context, c Category, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.q.upsert, c.Key(), value)
	return err
}

// Mutate: SELECT ... FOR UPDATE → fn → UPSERT を1トランザクションで実行
func (s *SQLStore) Mutate(ctx context.Context, c Category, fn MutateFunc) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		cur, found, err := s.get(ctx, tx, s.q.lock, c)
		if err != nil {
			return err
		}
		next, err := fn(cur, found)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, s.q.upsert, c.Key(), next)
		return err
	})
}

func (s *SQLStore) get(ctx context.Context, q db.DBTX, query string, c Category) ([]byte, bool, error) {
	var v []byte
	err := q.QueryRowContext(ctx, query, c.Key()).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}
