package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/LeJamon/goAuctiond/internal/core/amount"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/entry"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// AuctionInfo is an auction record with its derived values.
type AuctionInfo struct {
	Key string `json:"index"`
	*sle.AuctionRecord
	// Status is "listed", "bidding" or "ended"
	Status         string `json:"status"`
	ElapsedMinutes int64  `json:"elapsed_minutes"`
	EndsAt         int64  `json:"ends_at,omitempty"`
}

func (l *Ledger) read(k keylet.Keylet) ([]byte, error) {
	data, err := l.state.Read(k)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNotFound
	}
	return data, nil
}

func (l *Ledger) readConfig(k keylet.Keylet) (*sle.ProtocolConfig, error) {
	data, err := l.read(k)
	if err != nil {
		return nil, err
	}
	return sle.ParseProtocolConfig(data)
}

func (l *Ledger) readRecord(k keylet.Keylet) (*sle.AuctionRecord, error) {
	data, err := l.read(k)
	if err != nil {
		return nil, err
	}
	return sle.ParseAuctionRecord(data)
}

// Config returns the protocol config for seed.
func (l *Ledger) Config(seed uint64) (*sle.ProtocolConfig, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.readConfig(keylet.ProtocolConfig(seed))
}

// Collection returns the whitelist entry of collection under seed.
func (l *Ledger) Collection(seed uint64, collection types.AccountID) (*sle.CollectionEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	data, err := l.read(keylet.Collection(keylet.ProtocolConfig(seed), collection))
	if err != nil {
		return nil, err
	}
	return sle.ParseCollectionEntry(data)
}

// Auction returns the record of asset listed under collection and seed.
func (l *Ledger) Auction(seed uint64, collection, asset types.AccountID) (*AuctionInfo, error) {
	k := keylet.Auction(keylet.Collection(keylet.ProtocolConfig(seed), collection), asset)

	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, err := l.readRecord(k)
	if err != nil {
		return nil, err
	}
	return l.auctionInfo(k.Key, rec), nil
}

func (l *Ledger) auctionInfo(key [32]byte, rec *sle.AuctionRecord) *AuctionInfo {
	now := l.clock.Now().Unix()
	info := &AuctionInfo{
		Key:            fmt.Sprintf("%X", key),
		AuctionRecord:  rec,
		Status:         "listed",
		ElapsedMinutes: rec.ElapsedMinutes(now),
		EndsAt:         rec.EndsAt(),
	}
	switch {
	case rec.Ended(now):
		info.Status = "ended"
	case rec.Started():
		info.Status = "bidding"
	}
	return info
}

// Auctions returns every auction record in state ordered by key.
func (l *Ledger) Auctions() ([]*AuctionInfo, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.auctions()
}

func (l *Ledger) auctions() ([]*AuctionInfo, error) {
	var (
		out     []*AuctionInfo
		iterErr error
	)
	err := l.state.ForEach(func(key [32]byte, data []byte) bool {
		t, err := sle.EntryType(data)
		if err != nil || t != entry.TypeAuctionRecord {
			return true
		}
		rec, err := sle.ParseAuctionRecord(data)
		if err != nil {
			iterErr = fmt.Errorf("auction %X: %w", key, err)
			return false
		}
		out = append(out, l.auctionInfo(key, rec))
		return true
	})
	if err != nil {
		return nil, err
	}
	if iterErr != nil {
		return nil, iterErr
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Account returns the account root of id.
func (l *Ledger) Account(id types.AccountID) (*sle.AccountRoot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	data, err := l.read(keylet.Account(id))
	if err != nil {
		return nil, err
	}
	return sle.ParseAccountRoot(data)
}

// Accounts returns every account root ordered by balance, largest first.
func (l *Ledger) Accounts() ([]*sle.AccountRoot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*sle.AccountRoot
	err := l.state.ForEach(func(key [32]byte, data []byte) bool {
		if t, err := sle.EntryType(data); err != nil || t != entry.TypeAccountRoot {
			return true
		}
		if a, err := sle.ParseAccountRoot(data); err == nil {
			out = append(out, a)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Balance != out[j].Balance {
			return out[i].Balance > out[j].Balance
		}
		return out[i].Account.String() < out[j].Account.String()
	})
	return out, nil
}

// NextSequence returns the sequence the next transaction of id must carry.
func (l *Ledger) NextSequence(id types.AccountID) (uint32, error) {
	a, err := l.Account(id)
	if err != nil {
		return 0, err
	}
	return a.Sequence, nil
}

// Asset returns the registry asset id.
func (l *Ledger) Asset(id types.AccountID) (*sle.Asset, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	data, err := l.read(keylet.Asset(id))
	if err != nil {
		return nil, err
	}
	return sle.ParseAsset(data)
}

// AssetCollection returns the registry collection id.
func (l *Ledger) AssetCollection(id types.AccountID) (*sle.AssetCollection, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	data, err := l.read(keylet.AssetCollection(id))
	if err != nil {
		return nil, err
	}
	return sle.ParseAssetCollection(data)
}

// Supply returns the sum of every account balance plus the rent held by
// open records. It is constant while the ledger runs.
func (l *Ledger) Supply() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var (
		total   uint64
		iterErr error
	)
	err := l.state.ForEach(func(key [32]byte, data []byte) bool {
		t, err := sle.EntryType(data)
		if err != nil {
			return true
		}
		var v uint64
		switch t {
		case entry.TypeAccountRoot:
			a, err := sle.ParseAccountRoot(data)
			if err != nil {
				iterErr = err
				return false
			}
			v = a.Balance
		case entry.TypeAuctionRecord:
			r, err := sle.ParseAuctionRecord(data)
			if err != nil {
				iterErr = err
				return false
			}
			v = r.Rent
		default:
			return true
		}
		if total, iterErr = amount.Add(total, v); iterErr != nil {
			return false
		}
		return true
	})
	if err != nil {
		return 0, err
	}
	return total, iterErr
}

// Transaction returns the history record of hash.
func (l *Ledger) Transaction(ctx context.Context, hash string) (*relationaldb.TxRecord, error) {
	if l.history == nil {
		return nil, ErrNoHistory
	}
	return l.history.ByHash(ctx, hash)
}

// AccountHistory returns the newest transactions signed by id.
func (l *Ledger) AccountHistory(ctx context.Context, id types.AccountID, limit int) ([]relationaldb.TxRecord, error) {
	if l.history == nil {
		return nil, ErrNoHistory
	}
	return l.history.ByAccount(ctx, id.String(), limit)
}

// SubjectHistory returns the newest transactions that acted on the object
// with hex key subject.
func (l *Ledger) SubjectHistory(ctx context.Context, subject string, limit int) ([]relationaldb.TxRecord, error) {
	if l.history == nil {
		return nil, ErrNoHistory
	}
	return l.history.BySubject(ctx, subject, limit)
}
