package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/store"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	seed := func(t *testing.T) *store.Memory {
		t.Helper()
		m := store.NewMemory(store.WithUnique("email"))
		require.NoError(t, m.Insert(ctx, store.Record{"id": "c1", "email": "a@b.co", "age": int64(30)}))
		require.NoError(t, m.Insert(ctx, store.Record{"id": "c2", "email": "c@d.co", "age": int64(40)}))
		return m
	}

	t.Run("find by column", func(t *testing.T) {
		m := seed(t)

		rows, err := m.FindBy(ctx, "email", "c@d.co")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "c2", rows[0]["id"])

		rows, err = m.FindBy(ctx, "age", float64(30))
		require.NoError(t, err)
		require.Len(t, rows, 1, "numbers compare by value")

		rows, err = m.FindBy(ctx, "email", "none@b.co")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("find in keeps insertion order", func(t *testing.T) {
		m := seed(t)

		rows, err := m.FindIn(ctx, "id", []any{"c2", "c1", "c9"})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "c1", rows[0]["id"])
		assert.Equal(t, "c2", rows[1]["id"])
	})

	t.Run("get and list", func(t *testing.T) {
		m := seed(t)

		rec, err := m.Get(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "a@b.co", rec["email"])

		_, err = m.Get(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)

		rows, err := m.List(ctx)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		m := seed(t)

		rec, err := m.Get(ctx, "c1")
		require.NoError(t, err)
		rec["email"] = "changed@b.co"

		again, err := m.Get(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "a@b.co", again["email"])
	})

	t.Run("insert conflicts", func(t *testing.T) {
		m := seed(t)

		assert.ErrorIs(t, m.Insert(ctx, store.Record{"id": "c1"}), store.ErrConflict)
		assert.ErrorIs(t, m.Insert(ctx, store.Record{"id": "c3", "email": "a@b.co"}), store.ErrConflict)
		assert.ErrorIs(t, m.Insert(ctx, store.Record{"email": "x@y.co"}), store.ErrMissingID)
	})

	t.Run("update", func(t *testing.T) {
		m := seed(t)

		rec, err := m.Update(ctx, "c1", store.Record{"id": "ignored", "email": "new@b.co"})
		require.NoError(t, err)
		assert.Equal(t, store.Record{"id": "c1", "email": "new@b.co", "age": int64(30)}, rec)

		_, err = m.Update(ctx, "c1", store.Record{"email": "new@b.co"})
		assert.NoError(t, err, "a row does not conflict with itself")

		_, err = m.Update(ctx, "c2", store.Record{"email": "new@b.co"})
		assert.ErrorIs(t, err, store.ErrConflict)

		_, err = m.Update(ctx, "missing", store.Record{"email": "z@b.co"})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		m := seed(t)

		require.NoError(t, m.Delete(ctx, "c1"))
		assert.ErrorIs(t, m.Delete(ctx, "c1"), store.ErrNotFound)

		rows, err := m.List(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "c2", rows[0]["id"])
	})
}

func TestPostgres_RejectsUnknownColumns(t *testing.T) {
	t.Parallel()

	repo := store.NewPostgres(nil, "customers", "id", "email")

	_, err := repo.FindBy(context.Background(), "password; drop table customers", "x")
	assert.ErrorIs(t, err, store.ErrUnknownColumn)

	err = repo.Insert(context.Background(), store.Record{"id": "c1", "nope": 1})
	assert.ErrorIs(t, err, store.ErrUnknownColumn)

	assert.ErrorIs(t, repo.Insert(context.Background(), store.Record{"email": "x"}), store.ErrMissingID)
}
