// Package auction tests the auction lifecycle end to end: whitelisting,
// listing, bidding, cancellation and settlement.
package auction

import (
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	auctiontx "github.com/LeJamon/goAuctiond/internal/core/tx/auction"
	jtx "github.com/LeJamon/goAuctiond/internal/testing"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// CreateBuilder provides a fluent interface for building AuctionCreate transactions.
type CreateBuilder struct {
	owner    *jtx.Account
	target   auctiontx.Target
	duration uint32
	minBid   uint64
	sequence *uint32
}

// Create lists target for duration minutes.
func Create(owner *jtx.Account, target auctiontx.Target, duration uint32) *CreateBuilder {
	return &CreateBuilder{owner: owner, target: target, duration: duration}
}

// MinBid sets the smallest accepted first bid.
func (b *CreateBuilder) MinBid(drops uint64) *CreateBuilder {
	b.minBid = drops
	return b
}

// Sequence sets the sequence number explicitly.
func (b *CreateBuilder) Sequence(seq uint32) *CreateBuilder {
	b.sequence = &seq
	return b
}

// Build constructs the AuctionCreate transaction.
func (b *CreateBuilder) Build() tx.Transaction {
	c := auctiontx.NewAuctionCreate(b.owner.ID, b.target, b.duration, b.minBid)
	if b.sequence != nil {
		c.SetSequence(*b.sequence)
	}
	return c
}

// BidBuilder provides a fluent interface for building AuctionBid transactions.
type BidBuilder struct {
	bidder *jtx.Account
	target auctiontx.Target
	amount uint64
	buyer  *types.AccountID
}

// Bid places amount drops on target.
func Bid(bidder *jtx.Account, target auctiontx.Target, amount uint64) *BidBuilder {
	return &BidBuilder{bidder: bidder, target: target, amount: amount}
}

// For bids on behalf of buyer.
func (b *BidBuilder) For(buyer *jtx.Account) *BidBuilder {
	b.buyer = &buyer.ID
	return b
}

// ForID bids on behalf of an account that has no test key.
func (b *BidBuilder) ForID(buyer types.AccountID) *BidBuilder {
	b.buyer = &buyer
	return b
}

// Build constructs the AuctionBid transaction.
func (b *BidBuilder) Build() tx.Transaction {
	bid := auctiontx.NewAuctionBid(b.bidder.ID, b.target, b.amount)
	if b.buyer != nil {
		bid.SetBuyer(*b.buyer)
	}
	return bid
}

// Cancel builds an AuctionCancel signed by acc.
func Cancel(acc *jtx.Account, target auctiontx.Target) tx.Transaction {
	return auctiontx.NewAuctionCancel(acc.ID, target)
}

// Complete builds an AuctionComplete signed by acc.
func Complete(acc *jtx.Account, target auctiontx.Target) tx.Transaction {
	return auctiontx.NewAuctionComplete(acc.ID, target)
}

// Whitelist builds a WhitelistCollection signed by acc.
func Whitelist(acc *jtx.Account, seed uint64, collection types.AccountID) tx.Transaction {
	return auctiontx.NewWhitelistCollection(acc.ID, seed, collection)
}
