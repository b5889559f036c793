package kvstore

import (
	"context"
	"sync"
)

// MemoryBackend はプロセス内マップによるBackend実装。
// テストおよび永続化不要な起動（STORE_DRIVER=memory）で使用する。
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryBackend は空のMemoryBackendを生成する。
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

// Get は値を返す。
func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set は値を保存する。
func (m *MemoryBackend) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Delete はキーを削除する。
func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Clear は全キーを削除する。
func (m *MemoryBackend) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
	return nil
}

// Apply はロックを保持したままバッチを適用する。
func (m *MemoryBackend) Apply(_ context.Context, batch *Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range batch.ops {
		switch op.kind {
		case opSet:
			m.data[op.key] = op.value
		case opDelete:
			delete(m.data, op.key)
		}
	}
	return nil
}

// Len は保存されているキー数を返す。
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Close は何もしない。
func (m *MemoryBackend) Close() error {
	return nil
}
