package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
)

// PebbleBackend はpebbleのディレクトリを使うBackend実装。
// 全書き込みはpebble.Syncで行い、プロセス終了後も内容が残る。
type PebbleBackend struct {
	db   *pebble.DB
	path string
}

// OpenPebble はpathにpebble DBを開く（存在しなければ作成する）。
func OpenPebble(path string) (*PebbleBackend, error) {
	if path == "" {
		return nil, errors.New("pebble store path is empty")
	}
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble store: %w", err)
	}
	return &PebbleBackend{db: db, path: path}, nil
}

// Get は値を返す。pebble.ErrNotFoundはキーなしとして扱う。
func (p *PebbleBackend) Get(_ context.Context, key string) (string, bool, error) {
	if p.db == nil {
		return "", false, ErrUnavailable
	}
	v, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	// closer解放後はvが無効になるため、string変換でコピーしてから閉じる
	value := string(v)
	if err := closer.Close(); err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set は値を保存する。
func (p *PebbleBackend) Set(_ context.Context, key, value string) error {
	if p.db == nil {
		return ErrUnavailable
	}
	return p.db.Set([]byte(key), []byte(value), pebble.Sync)
}

// Delete はキーを削除する。
func (p *PebbleBackend) Delete(_ context.Context, key string) error {
	if p.db == nil {
		return ErrUnavailable
	}
	return p.db.Delete([]byte(key), pebble.Sync)
}

// Clear は全キーを1つのバッチで削除する。
func (p *PebbleBackend) Clear(_ context.Context) error {
	if p.db == nil {
		return ErrUnavailable
	}
	iter, err := p.db.NewIter(nil)
	if err != nil {
		return err
	}
	b := p.db.NewBatch()
	defer b.Close()
	n := 0
	for iter.First(); iter.Valid(); iter.Next() {
		if err := b.Delete(iter.Key(), nil); err != nil {
			iter.Close()
			return err
		}
		n++
	}
	if err := iter.Close(); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	return p.db.Apply(b, pebble.Sync)
}

// Apply はバッチをpebbleのBatchに変換してアトミックに適用する。
func (p *PebbleBackend) Apply(_ context.Context, batch *Batch) error {
	if p.db == nil {
		return ErrUnavailable
	}
	if batch.Len() == 0 {
		return nil
	}
	b := p.db.NewBatch()
	defer b.Close()
	for _, op := range batch.ops {
		var err error
		switch op.kind {
		case opSet:
			err = b.Set([]byte(op.key), []byte(op.value), nil)
		case opDelete:
			err = b.Delete([]byte(op.key), nil)
		}
		if err != nil {
			return err
		}
	}
	return p.db.Apply(b, pebble.Sync)
}

// Close はpebble DBを閉じる。2回目以降の呼び出しは何もしない。
func (p *PebbleBackend) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
