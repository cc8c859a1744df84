package service

import (
	"log/slog"
	"sync"

	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/core/tx/auction"
	"github.com/LeJamon/goAuctiond/internal/metrics"
)

// EventType names what a processed transaction did.
type EventType string

const (
	EventCollectionWhitelisted EventType = "collection_whitelisted"
	EventAuctionCreated        EventType = "auction_created"
	EventBid                   EventType = "bid"
	EventAuctionCancelled      EventType = "auction_cancelled"
	EventAuctionCompleted      EventType = "auction_completed"
	EventTransaction           EventType = "transaction"
	EventRejected              EventType = "rejected"
)

var eventTypes = map[tx.Type]EventType{
	tx.TypeWhitelistCollection: EventCollectionWhitelisted,
	tx.TypeAuctionCreate:       EventAuctionCreated,
	tx.TypeAuctionBid:          EventBid,
	tx.TypeAuctionCancel:       EventAuctionCancelled,
	tx.TypeAuctionComplete:     EventAuctionCompleted,
}

// Event is published for every submitted transaction.
type Event struct {
	Type   EventType `json:"type"`
	TxHash string    `json:"tx_hash,omitempty"`
	Result string    `json:"engine_result"`
	// Auction is the hex key of the object the transaction acted on
	Auction string `json:"auction,omitempty"`
	Account string `json:"account"`
	// Amount is the bid for bids and the winning bid for completions
	Amount    uint64 `json:"amount,omitempty"`
	Index     uint64 `json:"index"`
	CloseTime int64  `json:"close_time"`
}

func (l *Ledger) event(transaction tx.Transaction, out *SubmitResult, settling *settlement) Event {
	ev := Event{
		Type:      EventRejected,
		TxHash:    out.Hash,
		Result:    out.Code,
		Auction:   subjectHex(transaction),
		Account:   transaction.GetCommon().Account.String(),
		Index:     out.Index,
		CloseTime: out.CloseTime,
	}
	if out.Applied {
		ev.Type = EventTransaction
		if t, ok := eventTypes[transaction.TxType()]; ok {
			ev.Type = t
		}
	}
	switch t := transaction.(type) {
	case *auction.AuctionBid:
		ev.Amount = t.Amount
	case *auction.AuctionComplete:
		if settling != nil {
			ev.Amount = settling.bid
		}
	}
	return ev
}

// DefaultSubscriberBuffer is the channel size used when Subscribe is given 0.
const DefaultSubscriberBuffer = 64

// Hub fans events out to subscribers. Delivery never blocks the ledger: a
// subscriber whose buffer is full misses the event.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]chan Event
	next   uint64
	closed bool
	log    *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		subs: make(map[uint64]chan Event),
		log:  log,
	}
}

// Subscribe returns a channel of events and a function that ends the
// subscription. The channel is closed when the subscription ends.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	ch := make(chan Event, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	id := h.next
	h.next++
	h.subs[id] = ch
	metrics.Subscribers.Inc()

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
		metrics.Subscribers.Dec()
	}
}

// Publish delivers ev to every subscriber with room for it.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.log.Debug("subscriber lagging, event dropped", "subscriber", id, "tx", ev.TxHash)
		}
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close ends every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
		metrics.Subscribers.Dec()
	}
}
