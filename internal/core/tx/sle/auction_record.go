package sle

import (
	"github.com/LeJamon/goAuctiond/internal/core/ledger/entry"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// Bid is the current high bid of an auction.
type Bid struct {
	Buyer  types.AccountID `codec:"buyer" json:"Buyer"`
	Amount uint64          `codec:"amount" json:"Amount"`
}

// AuctionRecord is the state of one listed asset. A nil HighBid means no
// bid has been accepted yet.
type AuctionRecord struct {
	Config          [32]byte        `codec:"config" json:"Config"`
	CollectionEntry [32]byte        `codec:"collection_entry" json:"CollectionEntry"`
	Collection      types.AccountID `codec:"collection" json:"Collection"`
	Asset           types.AccountID `codec:"asset" json:"Asset"`
	Owner           types.AccountID `codec:"owner" json:"Owner"`
	DurationMinutes uint32          `codec:"duration" json:"DurationMinutes"`
	MinBid          uint64          `codec:"min_bid" json:"MinBid"`
	HighBid         *Bid            `codec:"high_bid,omitempty" json:"HighBid,omitempty"`
	// FirstBidAt is unix seconds of the first accepted bid, 0 before it.
	FirstBidAt int64           `codec:"first_bid_at" json:"FirstBidAt"`
	CreatedAt  int64           `codec:"created_at" json:"CreatedAt"`
	RentPayer  types.AccountID `codec:"rent_payer" json:"RentPayer"`
	Rent       uint64          `codec:"rent" json:"Rent"`
}

// CurrentBid returns the escrowed amount, 0 when no bid exists.
func (r *AuctionRecord) CurrentBid() uint64 {
	if r.HighBid == nil {
		return 0
	}
	return r.HighBid.Amount
}

// Started reports whether a real bid was accepted.
func (r *AuctionRecord) Started() bool {
	return r.FirstBidAt != 0
}

// ElapsedMinutes returns whole minutes since the first bid.
func (r *AuctionRecord) ElapsedMinutes(now int64) int64 {
	if !r.Started() || now < r.FirstBidAt {
		return 0
	}
	return (now - r.FirstBidAt) / 60
}

// Ended reports whether the bidding window is closed at now.
func (r *AuctionRecord) Ended(now int64) bool {
	return r.Started() && r.ElapsedMinutes(now) >= int64(r.DurationMinutes)
}

// EndsAt returns the unix second at which bidding closes, 0 before the
// first bid.
func (r *AuctionRecord) EndsAt() int64 {
	if !r.Started() {
		return 0
	}
	return r.FirstBidAt + int64(r.DurationMinutes)*60
}

func ParseAuctionRecord(data []byte) (*AuctionRecord, error) {
	var r AuctionRecord
	if err := Decode(data, entry.TypeAuctionRecord, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func SerializeAuctionRecord(r *AuctionRecord) ([]byte, error) {
	return Encode(entry.TypeAuctionRecord, r)
}
