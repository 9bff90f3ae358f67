package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	N     int    `json:"n"`
}

func (i item) Key() string { return i.ID }

func TestRepository_ListEmpty(t *testing.T) {
	repo := NewRepository[item](NewMemoryStore(), CategoryAbsences)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepository_AppendPreservesOrderAndValues(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[item](NewMemoryStore(), CategoryAbsences)

	in := []item{
		{ID: "b", Label: "ثاني", N: 2},
		{ID: "a", Label: "أول", N: 1},
		{ID: "c", Label: "third", N: 0},
	}
	for _, it := range in {
		require.NoError(t, repo.Append(ctx, it))
	}

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestRepository_RemoveByID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[item](NewMemoryStore(), CategoryTardiness)
	require.NoError(t, repo.ReplaceAll(ctx, []item{{ID: "1"}, {ID: "2", Label: "x"}, {ID: "3"}}))

	removed, err := repo.RemoveByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "x", removed.Label)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "1"}, {ID: "3"}}, got)

	_, err = repo.RemoveByID(ctx, "2")
	assert.ErrorIs(t, err, ErrNotFound)

	// 失敗時は何も変わらない
	got, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRepository_UpdateErrorLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[item](NewMemoryStore(), CategoryUsers)
	require.NoError(t, repo.Append(ctx, item{ID: "keep"}))

	boom := errors.New("boom")
	err := repo.Update(ctx, func(items []item) ([]item, error) {
		return append(items, item{ID: "lost"}), boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "keep"}}, got)
}

func TestRepository_ReplaceAllNil(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewRepository[item](store, CategoryAbsences)
	require.NoError(t, repo.ReplaceAll(ctx, nil))

	raw, found, err := store.Get(ctx, CategoryAbsences)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var dst item
	found, err := GetJSON(ctx, store, CategoryConfig, &dst)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, store, CategoryConfig, item{ID: "cfg", N: 7}))
	found, err = GetJSON(ctx, store, CategoryConfig, &dst)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, item{ID: "cfg", N: 7}, dst)
}

func TestCategoryKey(t *testing.T) {
	assert.Equal(t, "presence:tardiness", CategoryTardiness.Key())
}
