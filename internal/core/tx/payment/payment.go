package payment

import (
	"errors"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/types"
)

func init() {
	tx.Register(tx.TypePayment, func() tx.Transaction {
		return &Payment{BaseTx: *tx.NewBaseTx(tx.TypePayment, types.AccountID{})}
	})
}

// Payment moves native currency between two key-owned accounts. The
// destination is created if it does not exist.
type Payment struct {
	tx.BaseTx

	// Destination is the receiving account (required)
	Destination types.AccountID `json:"Destination"`

	// Amount in drops (required)
	Amount uint64 `json:"Amount"`
}

// NewPayment creates a new Payment transaction
func NewPayment(account, destination types.AccountID, amount uint64) *Payment {
	return &Payment{
		BaseTx:      *tx.NewBaseTx(tx.TypePayment, account),
		Destination: destination,
		Amount:      amount,
	}
}

// Validate validates the Payment transaction
func (p *Payment) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.Destination.IsZero() {
		return errors.New("temMALFORMED: Destination is required")
	}
	if p.Destination == p.Account {
		return errors.New("temDST_IS_SRC: Destination may not be source")
	}
	if p.Amount == 0 {
		return errors.New("temBAD_AMOUNT: Amount must be positive")
	}
	return nil
}

func (p *Payment) SubjectKey() keylet.Keylet {
	return keylet.Account(p.Destination)
}

// Apply applies a Payment transaction
func (p *Payment) Apply(ctx *tx.ApplyContext) tx.Result {
	dst, err := ctx.ReadAccount(p.Destination)
	if err != nil {
		return tx.TefINTERNAL
	}
	// Vault and treasury balances only move through auction settlement
	if dst != nil && dst.IsProtocolOwned() {
		return tx.TecNO_PERMISSION
	}
	return ctx.Transfer(p.Account, p.Destination, p.Amount, ctx.SignerAuthority())
}
