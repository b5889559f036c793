package kvstore

import (
	"context"
	"errors"
	"sync"
)

// faultyBackend は指定した操作で失敗するBackendのテスト用実装。
type faultyBackend struct {
	*MemoryBackend
	failGet   bool
	failSet   bool
	failApply bool
	panicGet  bool
}

func (f *faultyBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if f.panicGet {
		panic("boom")
	}
	if f.failGet {
		return "", false, errors.New("get failed")
	}
	return f.MemoryBackend.Get(ctx, key)
}

func (f *faultyBackend) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("quota exceeded")
	}
	return f.MemoryBackend.Set(ctx, key, value)
}

func (f *faultyBackend) Apply(ctx context.Context, b *Batch) error {
	if f.failApply {
		return errors.New("apply failed")
	}
	return f.MemoryBackend.Apply(ctx, b)
}

// recordingSink は通知された障害を記録するDiagnosticSink。
type recordingSink struct {
	mu     sync.Mutex
	faults []Op
}

func (r *recordingSink) StoreFault(op Op, _ string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faults = append(r.faults, op)
}

func (r *recordingSink) ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.faults...)
}
