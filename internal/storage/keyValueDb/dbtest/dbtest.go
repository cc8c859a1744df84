// Package dbtest is a behaviour suite shared by every keyValueDb backend.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/storage/keyValueDb"
)

// Run exercises a backend. open must return a fresh empty store.
func Run(t *testing.T, open func(t *testing.T) keyValueDb.DB) {
	ctx := context.Background()

	t.Run("ReadWriteDelete", func(t *testing.T) {
		db := open(t)
		defer db.Close()

		_, err := db.Read(ctx, []byte("missing"))
		require.ErrorIs(t, err, keyValueDb.ErrKeyNotFound)

		require.NoError(t, db.Write(ctx, []byte("k"), []byte("v1")))
		got, err := db.Read(ctx, []byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), got)

		require.NoError(t, db.Write(ctx, []byte("k"), []byte("v2")))
		got, err = db.Read(ctx, []byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)

		require.NoError(t, db.Delete(ctx, []byte("k")))
		_, err = db.Read(ctx, []byte("k"))
		require.ErrorIs(t, err, keyValueDb.ErrKeyNotFound)
	})

	t.Run("Batch", func(t *testing.T) {
		db := open(t)
		defer db.Close()

		require.NoError(t, db.Batch(ctx, []keyValueDb.BatchOperation{
			{Type: keyValueDb.BatchPut, Key: []byte("batch1"), Value: []byte("value1")},
			{Type: keyValueDb.BatchPut, Key: []byte("batch2"), Value: []byte("value2")},
			{Type: keyValueDb.BatchDelete, Key: []byte("batch1")},
		}))

		_, err := db.Read(ctx, []byte("batch1"))
		require.ErrorIs(t, err, keyValueDb.ErrKeyNotFound)
		got, err := db.Read(ctx, []byte("batch2"))
		require.NoError(t, err)
		assert.Equal(t, []byte("value2"), got)

		err = db.Batch(ctx, []keyValueDb.BatchOperation{{Type: keyValueDb.BatchOpType(42), Key: []byte("x")}})
		require.ErrorIs(t, err, keyValueDb.ErrBatchOperationFailed)
	})

	t.Run("IteratorRange", func(t *testing.T) {
		db := open(t)
		defer db.Close()

		for i := 0; i < 5; i++ {
			require.NoError(t, db.Write(ctx, []byte(fmt.Sprintf("iter%d", i)), []byte(fmt.Sprintf("value%d", i))))
		}
		require.NoError(t, db.Write(ctx, []byte("other"), []byte("x")))

		it, err := db.Iterator(ctx, []byte("iter1"), []byte("iter4"))
		require.NoError(t, err)
		var keys []string
		for it.Next() {
			keys = append(keys, string(it.Key()))
			assert.Equal(t, "value"+string(it.Key())[4:], string(it.Value()))
		}
		require.NoError(t, it.Error())
		require.NoError(t, it.Close())
		assert.Equal(t, []string{"iter1", "iter2", "iter3"}, keys)

		it, err = db.Iterator(ctx, []byte("iter"), keyValueDb.PrefixEnd([]byte("iter")))
		require.NoError(t, err)
		count := 0
		for it.Next() {
			count++
		}
		require.NoError(t, it.Close())
		assert.Equal(t, 5, count)
	})

	t.Run("Closed", func(t *testing.T) {
		db := open(t)
		require.NoError(t, db.Close())
		_, err := db.Read(ctx, []byte("k"))
		require.ErrorIs(t, err, keyValueDb.ErrDBClosed)
		require.ErrorIs(t, db.Write(ctx, []byte("k"), []byte("v")), keyValueDb.ErrDBClosed)
	})
}
