package rpc_types

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/service"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// ServiceContainer holds references to all services needed by RPC handlers
type ServiceContainer struct {
	Ledger LedgerService

	// AdminSigning allows requests to carry a secret for server side signing
	AdminSigning bool

	Version string
}

// LedgerService is the ledger as seen by RPC handlers
type LedgerService interface {
	Submit(ctx context.Context, transaction tx.Transaction) (*service.SubmitResult, error)
	NextSequence(id types.AccountID) (uint32, error)

	Config(seed uint64) (*sle.ProtocolConfig, error)
	Collection(seed uint64, collection types.AccountID) (*sle.CollectionEntry, error)
	Auction(seed uint64, collection, asset types.AccountID) (*service.AuctionInfo, error)
	Auctions() ([]*service.AuctionInfo, error)
	Account(id types.AccountID) (*sle.AccountRoot, error)
	Asset(id types.AccountID) (*sle.Asset, error)
	AssetCollection(id types.AccountID) (*sle.AssetCollection, error)

	Transaction(ctx context.Context, hash string) (*relationaldb.TxRecord, error)
	AccountHistory(ctx context.Context, id types.AccountID, limit int) ([]relationaldb.TxRecord, error)
	SubjectHistory(ctx context.Context, subject string, limit int) ([]relationaldb.TxRecord, error)

	Applied() uint64
	Standalone() bool
	Clock() clockwork.Clock
	Events() *service.Hub
}

var _ LedgerService = (*service.Ledger)(nil)
