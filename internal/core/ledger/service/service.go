// Package service runs the ledger: it owns the state, serializes
// transaction submission through the engine, and records history and
// events for every processed transaction.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/LeJamon/goAuctiond/internal/core/amount"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/genesis"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/state"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/core/tx/auction"
	"github.com/LeJamon/goAuctiond/internal/metrics"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"

	_ "github.com/LeJamon/goAuctiond/internal/core/tx/all"
)

// Common errors
var (
	ErrNotStarted = errors.New("ledger not started")
	ErrClosed     = errors.New("ledger closed")
	ErrNotFound   = errors.New("entry not found")
	ErrNoHistory  = errors.New("history store not configured")
)

// Config holds configuration for the Ledger
type Config struct {
	// SkipSignatureVerification accepts unsigned transactions (standalone/testing)
	SkipSignatureVerification bool

	// Standalone indicates whether the node is running in standalone mode
	Standalone bool

	// Genesis is written when the state is empty
	Genesis genesis.Config

	// Clock supplies the close time of each transaction. Nil means real time.
	Clock clockwork.Clock

	// History records processed transactions (optional)
	History relationaldb.HistoryStore

	// Logger receives service and transactor logs. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a standalone configuration with the default genesis
func DefaultConfig() Config {
	return Config{
		Standalone: true,
		Genesis:    genesis.DefaultConfig(),
	}
}

// SubmitResult is the outcome of one submitted transaction.
type SubmitResult struct {
	Result  tx.Result `json:"-"`
	Code    string    `json:"engine_result"`
	Message string    `json:"engine_result_message"`
	Applied bool      `json:"applied"`
	Hash    string    `json:"tx_hash,omitempty"`
	// Index is the applied transaction counter after this submission
	Index     uint64       `json:"index"`
	CloseTime int64        `json:"close_time"`
	Metadata  *tx.Metadata `json:"meta,omitempty"`
}

// Ledger is the single writer of the state.
type Ledger struct {
	mu sync.RWMutex

	config  Config
	state   *state.State
	clock   clockwork.Clock
	history relationaldb.HistoryStore
	hub     *Hub
	log     *slog.Logger

	started bool
	closed  bool
}

// New wraps st. Call Start before submitting.
func New(st *state.State, cfg Config) *Ledger {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log := cfg.Logger.With("component", "ledger")
	return &Ledger{
		config:  cfg,
		state:   st,
		clock:   cfg.Clock,
		history: cfg.History,
		hub:     NewHub(log),
		log:     log,
	}
}

// Start writes the genesis state when the state is empty. It returns true
// when genesis ran.
func (l *Ledger) Start() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	empty, err := l.state.Empty()
	if err != nil {
		return false, fmt.Errorf("inspect state: %w", err)
	}
	created := false
	if empty {
		res, err := genesis.Create(l.state, l.config.Genesis)
		if err != nil {
			return false, fmt.Errorf("genesis: %w", err)
		}
		l.log.Info("genesis written",
			"config", fmt.Sprintf("%X", res.Config.Key),
			"vault", res.Vault.String(),
			"treasury", res.Treasury.String(),
			"accounts", len(l.config.Genesis.Accounts))
		created = true
	}

	auctions, err := l.auctions()
	if err != nil {
		return false, err
	}
	metrics.OpenAuctions.Set(float64(len(auctions)))
	l.started = true
	return created, nil
}

// Standalone reports whether the node runs without peers.
func (l *Ledger) Standalone() bool {
	return l.config.Standalone
}

// Clock returns the ledger clock.
func (l *Ledger) Clock() clockwork.Clock {
	return l.clock
}

// Events returns the event hub.
func (l *Ledger) Events() *Hub {
	return l.hub
}

// Applied returns the number of applied transactions.
func (l *Ledger) Applied() uint64 {
	return l.state.Applied()
}

// Submit applies one transaction. Only infrastructure failures return an
// error; every transaction outcome is in the result.
func (l *Ledger) Submit(ctx context.Context, transaction tx.Transaction) (*SubmitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrClosed
	}
	if !l.started {
		return nil, ErrNotStarted
	}

	now := l.clock.Now()
	engine := tx.NewEngine(l.state, tx.EngineConfig{
		CloseTime:                 now.Unix(),
		SkipSignatureVerification: l.config.SkipSignatureVerification,
		Standalone:                l.config.Standalone,
		Logger:                    l.config.Logger,
	})

	settling := l.settlingBid(transaction)

	start := l.clock.Now()
	res := engine.Apply(transaction)
	txType := transaction.TxType().String()
	metrics.ApplyDuration.WithLabelValues(txType).Observe(l.clock.Since(start).Seconds())
	metrics.TransactionsTotal.WithLabelValues(txType, res.Result.String()).Inc()

	out := &SubmitResult{
		Result:    res.Result,
		Code:      res.Result.String(),
		Message:   res.Message,
		Applied:   res.Applied,
		Index:     l.state.Applied(),
		CloseTime: now.Unix(),
		Metadata:  res.Metadata,
	}
	if res.Hash != ([32]byte{}) {
		out.Hash = res.HashHex()
	}

	log := l.log.With("tx", out.Hash, "type", txType, "result", out.Code)
	if res.Applied {
		log.Debug("transaction applied", "index", out.Index)
	} else {
		log.Debug("transaction rejected", "message", res.Message)
	}

	ev := l.event(transaction, out, settling)
	if res.Applied {
		l.trackAuction(transaction, settling)
	}

	if out.Hash != "" {
		l.record(ctx, transaction, out, ev.Auction)
	}
	l.hub.Publish(ev)
	return out, nil
}

// settlement describes the bid of a record about to be completed.
type settlement struct {
	bid   uint64
	split amount.Split
}

func (l *Ledger) settlingBid(transaction tx.Transaction) *settlement {
	c, ok := transaction.(*auction.AuctionComplete)
	if !ok {
		return nil
	}
	rec, err := l.readRecord(c.RecordKey())
	if err != nil || rec.HighBid == nil {
		return nil
	}
	cfg, err := l.readConfig(c.ConfigKey())
	if err != nil {
		return nil
	}
	split, err := amount.FeeSplit(rec.HighBid.Amount, cfg.FeeBps)
	if err != nil {
		return nil
	}
	return &settlement{bid: rec.HighBid.Amount, split: split}
}

func (l *Ledger) trackAuction(transaction tx.Transaction, settling *settlement) {
	switch transaction.TxType() {
	case tx.TypeAuctionCreate:
		metrics.OpenAuctions.Inc()
	case tx.TypeAuctionCancel:
		metrics.OpenAuctions.Dec()
	case tx.TypeAuctionComplete:
		metrics.OpenAuctions.Dec()
		if settling != nil {
			metrics.SettledVolume.Add(float64(settling.bid))
			metrics.TreasuryFees.Add(float64(settling.split.Treasury))
		}
	}
}

func (l *Ledger) record(ctx context.Context, transaction tx.Transaction, out *SubmitResult, subject string) {
	if l.history == nil {
		return
	}
	txJSON, err := json.Marshal(transaction)
	if err != nil {
		l.log.Warn("encode transaction for history", "tx", out.Hash, "error", err)
		return
	}
	var metaJSON []byte
	if out.Metadata != nil {
		if metaJSON, err = json.Marshal(out.Metadata); err != nil {
			l.log.Warn("encode metadata for history", "tx", out.Hash, "error", err)
		}
	}
	rec := &relationaldb.TxRecord{
		Hash:      out.Hash,
		Index:     out.Index,
		Account:   transaction.GetCommon().Account.String(),
		Type:      transaction.TxType().String(),
		Result:    out.Code,
		Applied:   out.Applied,
		Subject:   subject,
		CloseTime: out.CloseTime,
		TxJSON:    txJSON,
		MetaJSON:  metaJSON,
	}
	if err := l.history.Record(ctx, rec); err != nil {
		metrics.HistoryWritesTotal.WithLabelValues("error").Inc()
		l.log.Warn("history write failed", "tx", out.Hash, "error", err)
		return
	}
	metrics.HistoryWritesTotal.WithLabelValues("ok").Inc()
}

func subjectHex(transaction tx.Transaction) string {
	s, ok := transaction.(tx.Subject)
	if !ok {
		return ""
	}
	return keyHex(s.SubjectKey())
}

func keyHex(k keylet.Keylet) string {
	return fmt.Sprintf("%X", k.Key)
}

// Close stops accepting transactions, closes subscriptions and the history
// store. The state is owned by the caller.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	l.hub.Close()
	if l.history != nil {
		return l.history.Close()
	}
	return nil
}
