package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hitoshi/teamfeed/internal/database"
)

// SQLiteBackend はSQLiteファイルのkv_entriesテーブルを使うBackend実装。
// スキーマはinternal/databaseのマイグレーションで作成される。
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite はpathのSQLiteファイルを開き、マイグレーションを適用する。
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if path == "" {
		return nil, errors.New("sqlite store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := database.RunMigrations(path); err != nil {
		return nil, err
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite store: %w", err)
	}
	return NewSQLiteBackend(db), nil
}

// NewSQLiteBackend は既に開かれマイグレーション済みの*sql.DBからBackendを生成する。
// Closeでdbも閉じる。
func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

const upsertEntrySQL = `
	INSERT INTO kv_entries (key, value, updated_at)
	VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at`

// Get は値を返す。
func (s *SQLiteBackend) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set は値をUPSERTする。
func (s *SQLiteBackend) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, upsertEntrySQL, key, value)
	return err
}

// Delete はキーを削除する。
func (s *SQLiteBackend) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)
	return err
}

// Clear は全エントリを削除する。
func (s *SQLiteBackend) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries`)
	return err
}

// Apply はバッチを1つのトランザクションで適用する。
func (s *SQLiteBackend) Apply(ctx context.Context, batch *Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, op := range batch.ops {
		switch op.kind {
		case opSet:
			_, err = tx.ExecContext(ctx, upsertEntrySQL, op.key, op.value)
		case opDelete:
			_, err = tx.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, op.key)
		}
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Close はDB接続を閉じる。
func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
