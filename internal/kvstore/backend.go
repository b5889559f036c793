// Package kvstore は文字列キー・文字列値の永続ストアを提供する。
//
// Backend はエラーを返す低レベルの契約で、メモリ・pebble・sqliteの各実装を持つ。
// Store はBackendをラップする例外を出さないファサードで、
// 障害はすべてDiagnosticSinkへ通知した上で「値なし」または「何もしない」に変換される。
package kvstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable はバックエンドが利用できない状態を表す。
var ErrUnavailable = errors.New("kvstore: backend unavailable")

// Backend は永続ストアの実装が満たすインターフェース。
type Backend interface {
	// Get は値を返す。キーが存在しない場合はfound=falseでエラーなしを返す。
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set は値を上書き保存する。
	Set(ctx context.Context, key, value string) error
	// Delete はキーを削除する。存在しないキーの削除はエラーにしない。
	Delete(ctx context.Context, key string) error
	// Clear は全キーを削除する。
	Clear(ctx context.Context) error
	// Apply はバッチ内の全操作をアトミックに適用する。
	Apply(ctx context.Context, batch *Batch) error
	// Close はバックエンドのリソースを解放する。
	Close() error
}

// Driver はバックエンドの種別を表す。
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverPebble Driver = "pebble"
	DriverSQLite Driver = "sqlite"
)

// Open はdriverに対応するバックエンドを開く。
// pathはpebbleではディレクトリ、sqliteではDBファイルのパス。memoryでは無視される。
func Open(driver Driver, path string) (Backend, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryBackend(), nil
	case DriverPebble:
		return OpenPebble(path)
	case DriverSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store driver: %q", driver)
	}
}
