package auction

import (
	"errors"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
	"github.com/LeJamon/goAuctiond/internal/types"
)

func init() {
	tx.Register(tx.TypeAuctionBid, func() tx.Transaction {
		return &AuctionBid{BaseTx: *tx.NewBaseTx(tx.TypeAuctionBid, types.AccountID{})}
	})
}

// AuctionBid places a bid. The signer pays; Buyer, when set, receives the
// asset if the bid wins and any refund if it is outbid.
type AuctionBid struct {
	tx.BaseTx
	Target

	// Amount in drops, strictly above the current bid
	Amount uint64 `json:"Amount"`

	// Buyer defaults to the signer
	Buyer *types.AccountID `json:"Buyer,omitempty"`
}

// NewAuctionBid creates a new AuctionBid transaction
func NewAuctionBid(bidder types.AccountID, target Target, amount uint64) *AuctionBid {
	return &AuctionBid{
		BaseTx: *tx.NewBaseTx(tx.TypeAuctionBid, bidder),
		Target: target,
		Amount: amount,
	}
}

// SetBuyer bids on behalf of another account.
func (b *AuctionBid) SetBuyer(buyer types.AccountID) {
	b.Buyer = &buyer
}

// BuyerID returns the account the bid is for.
func (b *AuctionBid) BuyerID() types.AccountID {
	if b.Buyer == nil {
		return b.Account
	}
	return *b.Buyer
}

func (b *AuctionBid) Validate() error {
	if err := b.BaseTx.Validate(); err != nil {
		return err
	}
	if err := b.Target.validate(); err != nil {
		return err
	}
	if b.Amount == 0 {
		return errors.New("temBAD_AMOUNT: Amount must be positive")
	}
	if b.Buyer != nil && b.Buyer.IsZero() {
		return errors.New("temINVALID_ACCOUNT: Buyer is zero")
	}
	return nil
}

func (b *AuctionBid) SubjectKey() keylet.Keylet {
	return b.RecordKey()
}

func (b *AuctionBid) Apply(ctx *tx.ApplyContext) tx.Result {
	cfgKey, _, result := readConfig(ctx, b.ConfigSeed)
	if !result.IsSuccess() {
		return result
	}
	recordKey := b.RecordKey()
	rec, result := readRecord(ctx, recordKey)
	if !result.IsSuccess() {
		return result
	}

	buyer := b.BuyerID()
	if buyer == rec.Owner || ctx.AccountID == rec.Owner {
		return tx.TecOWNER_BID
	}
	// Vault and treasury can neither be refunded nor receive the asset
	buyerRoot, err := ctx.ReadAccount(buyer)
	if err != nil {
		return tx.TefINTERNAL
	}
	if buyerRoot != nil && buyerRoot.IsProtocolOwned() {
		return tx.TecNO_PERMISSION
	}
	if b.Amount <= rec.CurrentBid() || b.Amount < rec.MinBid {
		return tx.TecINVALID_BID
	}

	now := ctx.CloseTime()
	if rec.Ended(now) {
		return tx.TecAUCTION_ENDED
	}
	if now <= 0 {
		return tx.TefINTERNAL
	}

	vault := keylet.VaultAccount(cfgKey)
	if rec.HighBid == nil {
		rec.FirstBidAt = now
	} else {
		auth, result := ctx.RecordAuthority(recordKey)
		if !result.IsSuccess() {
			return result
		}
		if result := ctx.Transfer(vault, rec.HighBid.Buyer, rec.HighBid.Amount, auth); !result.IsSuccess() {
			return result
		}
	}

	if result := ctx.Transfer(ctx.AccountID, vault, b.Amount, ctx.SignerAuthority()); !result.IsSuccess() {
		return result
	}

	previous := rec.CurrentBid()
	rec.HighBid = &sle.Bid{Buyer: buyer, Amount: b.Amount}
	if result := writeRecord(ctx, recordKey, rec, false); !result.IsSuccess() {
		return result
	}

	ctx.Log().Debug("bid accepted",
		"asset", rec.Asset, "buyer", buyer, "amount", b.Amount, "previous", previous, "ends_at", rec.EndsAt())
	return tx.TesSUCCESS
}
