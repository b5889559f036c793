package kvstore

import (
	"context"
	"fmt"
	"log/slog"
)

// Op はファサードの操作名。障害通知のラベルに使う。
type Op string

const (
	OpGet    Op = "get"
	OpSet    Op = "set"
	OpRemove Op = "remove"
	OpClear  Op = "clear"
	OpApply  Op = "apply"
)

// DiagnosticSink はストア障害の通知先。
type DiagnosticSink interface {
	StoreFault(op Op, key string, err error)
}

// SinkFunc は関数をDiagnosticSinkとして使うためのアダプタ。
type SinkFunc func(op Op, key string, err error)

// StoreFault はfを呼び出す。
func (f SinkFunc) StoreFault(op Op, key string, err error) {
	f(op, key, err)
}

// Sinks は複数のDiagnosticSinkへ順に通知する。
type Sinks []DiagnosticSink

// StoreFault は全シンクへ通知する。
func (s Sinks) StoreFault(op Op, key string, err error) {
	for _, sink := range s {
		if sink != nil {
			sink.StoreFault(op, key, err)
		}
	}
}

// LogSink はslogへ障害を出力するDiagnosticSink。
type LogSink struct {
	Logger *slog.Logger
}

// NewLogSink はloggerに出力するLogSinkを生成する。loggerがnilの場合はslog.Default()を使う。
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{Logger: logger}
}

// StoreFault はエラーレベルでログを出力する。
func (l *LogSink) StoreFault(op Op, key string, err error) {
	l.Logger.Error("store access failed",
		slog.String("op", string(op)),
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// Store はBackendをラップする、呼び出し元へ決して失敗を返さないファサード。
// Getは障害時に値なし、それ以外の操作は障害時に何もしない。
// 障害はすべてsinkへ通知される。backendがnilの場合は「利用不可」として扱う。
type Store struct {
	backend Backend
	sink    DiagnosticSink
}

// New はStoreを生成する。sinkがnilの場合はslog.Default()へ出力する。
func New(backend Backend, sink DiagnosticSink) *Store {
	if sink == nil {
		sink = NewLogSink(nil)
	}
	return &Store{backend: backend, sink: sink}
}

// Get はキーの値を返す。値がない場合や障害時はok=falseを返す。
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool) {
	err := s.guard(OpGet, key, func(b Backend) error {
		v, found, err := b.Get(ctx, key)
		if err != nil {
			return err
		}
		value, ok = v, found
		return nil
	})
	if err != nil {
		return "", false
	}
	return value, ok
}

// Set は値を保存する。
func (s *Store) Set(ctx context.Context, key, value string) {
	s.guard(OpSet, key, func(b Backend) error {
		return b.Set(ctx, key, value)
	})
}

// Remove はキーを削除する。
func (s *Store) Remove(ctx context.Context, key string) {
	s.guard(OpRemove, key, func(b Backend) error {
		return b.Delete(ctx, key)
	})
}

// Clear は全キーを削除する。
func (s *Store) Clear(ctx context.Context) {
	s.guard(OpClear, "", func(b Backend) error {
		return b.Clear(ctx)
	})
}

// Apply はバッチをアトミックに適用し、成功したかどうかを返す。
// 失敗時はバッチ内のどのキーも変更されない。
func (s *Store) Apply(ctx context.Context, batch *Batch) bool {
	if batch.Len() == 0 {
		return true
	}
	err := s.guard(OpApply, fmt.Sprint(batch.Keys()), func(b Backend) error {
		return b.Apply(ctx, batch)
	})
	return err == nil
}

// Available はバックエンドが設定されているかどうかを返す。
func (s *Store) Available() bool {
	return s != nil && s.backend != nil
}

// guard はバックエンド呼び出しを実行し、エラーとpanicをsinkへ通知した上で返す。
// 戻り値は呼び出し元の分岐用で、Storeの公開メソッドの外へは出さない。
func (s *Store) guard(op Op, key string, fn func(Backend) error) (err error) {
	if !s.Available() {
		err = ErrUnavailable
		if s != nil {
			s.sink.StoreFault(op, key, err)
		}
		return err
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("kvstore: panic in backend: %v", rec)
			s.sink.StoreFault(op, key, err)
		}
	}()
	if err = fn(s.backend); err != nil {
		s.sink.StoreFault(op, key, err)
	}
	return err
}

// Close はバックエンドを閉じる。以降の操作は「利用不可」として扱われる。
func (s *Store) Close() error {
	if !s.Available() {
		return nil
	}
	err := s.backend.Close()
	s.backend = nil
	return err
}
