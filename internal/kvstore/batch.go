package kvstore

// opKind はバッチ内の操作種別。
type opKind int

const (
	opSet opKind = iota
	opDelete
)

// batchOp はバッチ内の1操作。
type batchOp struct {
	kind  opKind
	key   string
	value string
}

// Batch は複数キーへの書き込みをまとめたもの。
// Backend.Applyで全操作が一括で反映されるか、何も反映されないかのどちらかになる。
type Batch struct {
	ops []batchOp
}

// NewBatch は空のBatchを生成する。
func NewBatch() *Batch {
	return &Batch{}
}

// Set はキーへの書き込みをバッチに追加する。
func (b *Batch) Set(key, value string) *Batch {
	b.ops = append(b.ops, batchOp{kind: opSet, key: key, value: value})
	return b
}

// Delete はキーの削除をバッチに追加する。
func (b *Batch) Delete(key string) *Batch {
	b.ops = append(b.ops, batchOp{kind: opDelete, key: key})
	return b
}

// Len はバッチ内の操作数を返す。
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.ops)
}

// Keys はバッチが触れるキーを追加順に返す。
func (b *Batch) Keys() []string {
	keys := make([]string, len(b.ops))
	for i, op := range b.ops {
		keys[i] = op.key
	}
	return keys
}
