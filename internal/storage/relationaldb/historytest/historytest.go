// Package historytest holds the conformance suite every HistoryStore
// backend runs.
package historytest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
)

func record(i uint64, account, subject string) *relationaldb.TxRecord {
	return &relationaldb.TxRecord{
		Hash:      fmt.Sprintf("%064X", i),
		Index:     i,
		Account:   account,
		Type:      "AuctionBid",
		Result:    "tesSUCCESS",
		Applied:   true,
		Subject:   subject,
		CloseTime: int64(1000 + i),
		TxJSON:    []byte(fmt.Sprintf(`{"n":%d}`, i)),
	}
}

// Run exercises store. The store is closed at the end.
func Run(t *testing.T, store relationaldb.HistoryStore) {
	ctx := context.Background()

	t.Run("RecordAndByHash", func(t *testing.T) {
		rec := record(1, "alice", "A1")
		rec.MetaJSON = []byte(`{"split":1}`)
		require.NoError(t, store.Record(ctx, rec))

		got, err := store.ByHash(ctx, rec.Hash)
		require.NoError(t, err)
		assert.Equal(t, rec.Index, got.Index)
		assert.Equal(t, "alice", got.Account)
		assert.True(t, got.Applied)
		assert.Equal(t, rec.TxJSON, got.TxJSON)
		assert.Equal(t, rec.MetaJSON, got.MetaJSON)
	})

	t.Run("DuplicateKeepsFirst", func(t *testing.T) {
		rec := record(2, "bob", "A1")
		require.NoError(t, store.Record(ctx, rec))
		dup := *rec
		dup.Account = "mallory"
		require.NoError(t, store.Record(ctx, &dup))

		got, err := store.ByHash(ctx, rec.Hash)
		require.NoError(t, err)
		assert.Equal(t, "bob", got.Account)
	})

	t.Run("RetryAfterFailure", func(t *testing.T) {
		failed := record(10, "carol", "A9")
		failed.Result = "tecAUCTION_RUNNING"
		failed.Applied = false
		require.NoError(t, store.Record(ctx, failed))

		// The same transaction applied later keeps its hash
		applied := *failed
		applied.Index = 12
		applied.Result = "tesSUCCESS"
		applied.Applied = true
		require.NoError(t, store.Record(ctx, &applied))

		// A replay is refused and must not hide the applied row
		replay := *failed
		replay.Index = 13
		replay.Result = "tefPAST_SEQ"
		require.NoError(t, store.Record(ctx, &replay))

		got, err := store.ByHash(ctx, failed.Hash)
		require.NoError(t, err)
		assert.Equal(t, "tesSUCCESS", got.Result)
		assert.True(t, got.Applied)
		assert.Equal(t, uint64(12), got.Index)

		recs, err := store.BySubject(ctx, "A9", 10)
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "tefPAST_SEQ", recs[0].Result)
		assert.Equal(t, "tesSUCCESS", recs[1].Result)
		assert.Equal(t, "tecAUCTION_RUNNING", recs[2].Result)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.ByHash(ctx, fmt.Sprintf("%064X", 999))
		assert.ErrorIs(t, err, relationaldb.ErrTransactionNotFound)
	})

	t.Run("ByAccountNewestFirst", func(t *testing.T) {
		require.NoError(t, store.Record(ctx, record(3, "alice", "A2")))
		require.NoError(t, store.Record(ctx, record(4, "alice", "A1")))

		recs, err := store.ByAccount(ctx, "alice", 10)
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, uint64(4), recs[0].Index)
		assert.Equal(t, uint64(1), recs[2].Index)

		recs, err = store.ByAccount(ctx, "alice", 1)
		require.NoError(t, err)
		require.Len(t, recs, 1)
	})

	t.Run("BySubject", func(t *testing.T) {
		recs, err := store.BySubject(ctx, "A1", 10)
		require.NoError(t, err)
		require.Len(t, recs, 3)
		for _, r := range recs {
			assert.Equal(t, "A1", r.Subject)
		}
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		_, err := store.ByAccount(ctx, "alice", 0)
		assert.ErrorIs(t, err, relationaldb.ErrInvalidLimit)
		_, err = store.BySubject(ctx, "A1", relationaldb.MaxLimit+1)
		assert.ErrorIs(t, err, relationaldb.ErrInvalidLimit)
	})

	t.Run("Closed", func(t *testing.T) {
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())
		err := store.Record(ctx, record(5, "alice", ""))
		assert.ErrorIs(t, err, relationaldb.ErrDatabaseClosed)
	})
}
