package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// ErrNotFound: RemoveByID で該当キーが無い
var ErrNotFound = errors.New("kv: item not found")

// Keyed は一覧内で要素を識別するキーを返す
type Keyed interface {
	Key() string
}

// Repository は1カテゴリに保存された JSON 配列を扱う。
// 読み込み → 変更 → 配列まるごと書き戻し、が基本の契約。
type Repository[T Keyed] struct {
	store    Store
	category Category
}

func NewRepository[T Keyed](store Store, c Category) *Repository[T] {
	return &Repository[T]{store: store, category: c}
}

// List: 保存順のまま返す（未保存なら空）
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	raw, found, err := r.store.Get(ctx, r.category)
	if err != nil {
		return nil, fmt.Errorf("kv list %s: %w", r.category, err)
	}
	return decodeList[T](raw, found, r.category)
}

// Append: 末尾に1件追加
func (r *Repository[T]) Append(ctx context.Context, item T) error {
	return r.Update(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// RemoveByID: キー一致の要素をすべて取り除く。無ければ ErrNotFound。
func (r *Repository[T]) RemoveByID(ctx context.Context, key string) (T, error) {
	var removed T
	err := r.Update(ctx, func(items []T) ([]T, error) {
		out := items[:0]
		hit := false
		for _, it := range items {
			if it.Key() == key {
				if !hit {
					removed = it
				}
				hit = true
				continue
			}
			out = append(out, it)
		}
		if !hit {
			return nil, ErrNotFound
		}
		return out, nil
	})
	return removed, err
}

// ReplaceAll: 配列を丸ごと置き換える
func (r *Repository[T]) ReplaceAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := sonic.Marshal(items)
	if err != nil {
		return fmt.Errorf("kv encode %s: %w", r.category, err)
	}
	if err := r.store.Set(ctx, r.category, raw); err != nil {
		return fmt.Errorf("kv set %s: %w", r.category, err)
	}
	return nil
}

// Update は検査付きの変更用。fn がエラーを返すと何も書き込まない。
func (r *Repository[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	return r.store.Mutate(ctx, r.category, func(cur []byte, found bool) ([]byte, error) {
		items, err := decodeList[T](cur, found, r.category)
		if err != nil {
			return nil, err
		}
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []T{}
		}
		return sonic.Marshal(next)
	})
}

func decodeList[T any](raw []byte, found bool, c Category) ([]T, error) {
	items := []T{}
	if !found || len(raw) == 0 {
		return items, nil
	}
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("kv decode %s: %w", c, err)
	}
	if items == nil {
		// "null" が保存されていた場合
		items = []T{}
	}
	return items, nil
}
