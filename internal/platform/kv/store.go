package kv

import (
	"context"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
)

// Category は保存先の論理コレクション名
type Category string

const (
	CategoryConfig    Category = "config"
	CategoryAbsences  Category = "absences"
	CategoryTardiness Category = "tardiness"
	CategoryUsers     Category = "users"
)

// Key: 物理キー（旧KV時代と同じ "presence:" 接頭辞）
func (c Category) Key() string { return "presence:" + string(c) }

// MutateFunc は現在値（未保存なら found=false）を受け取り、書き戻す値を返す。
// エラーを返した場合は何も書き込まない。
type MutateFunc func(cur []byte, found bool) ([]byte, error)

// Store: カテゴリ単位の値まるごと読み書き
type Store interface {
	Get(ctx context.Context, c Category) ([]byte, bool, error)
	Set(ctx context.Context, c Category, value []byte) error
	// Mutate は read-modify-write を1単位で行う
	Mutate(ctx context.Context, c Category, fn MutateFunc) error
}

// GetJSON: 値をデコードして dst に詰める。未保存なら false。
func GetJSON(ctx context.Context, s Store, c Category, dst any) (bool, error) {
	raw, found, err := s.Get(ctx, c)
	if err != nil {
		return false, fmt.Errorf("kv get %s: %w", c, err)
	}
	if !found {
		return false, nil
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("kv decode %s: %w", c, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, c Category, v any) error {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv encode %s: %w", c, err)
	}
	if err := s.Set(ctx, c, raw); err != nil {
		return fmt.Errorf("kv set %s: %w", c, err)
	}
	return nil
}

// ===== in-memory =====

// MemoryStore はプロセス内のマップで保持する（開発・テスト用）
type MemoryStore struct {
	mu   sync.Mutex
	data map[Category][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[Category][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, c Category) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[c]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryStore) Set(_ context.Context, c Category, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[c] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Mutate(_ context.Context, c Category, fn MutateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, found := m.data[c]
	next, err := fn(append([]byte(nil), cur...), found)
	if err != nil {
		return err
	}
	m.data[c] = append([]byte(nil), next...)
	return nil
}
