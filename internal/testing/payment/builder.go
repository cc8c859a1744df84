// Package payment tests native payments between accounts.
package payment

import (
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/core/tx/payment"
	jtx "github.com/LeJamon/goAuctiond/internal/testing"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// PaymentBuilder provides a fluent interface for building Payment transactions.
type PaymentBuilder struct {
	from     *jtx.Account
	to       types.AccountID
	amount   uint64
	sequence *uint32
	memo     string
}

// Pay creates a new PaymentBuilder. The amount is in drops.
func Pay(from, to *jtx.Account, amount uint64) *PaymentBuilder {
	return PayTo(from, to.ID, amount)
}

// PayTo pays an account that has no test key, such as the vault.
func PayTo(from *jtx.Account, to types.AccountID, amount uint64) *PaymentBuilder {
	return &PaymentBuilder{from: from, to: to, amount: amount}
}

// Sequence sets the sequence number explicitly.
func (b *PaymentBuilder) Sequence(seq uint32) *PaymentBuilder {
	b.sequence = &seq
	return b
}

// Memo attaches a memo.
func (b *PaymentBuilder) Memo(memo string) *PaymentBuilder {
	b.memo = memo
	return b
}

// Build constructs the Payment transaction.
func (b *PaymentBuilder) Build() tx.Transaction {
	p := payment.NewPayment(b.from.ID, b.to, b.amount)
	if b.sequence != nil {
		p.SetSequence(*b.sequence)
	}
	p.Memo = b.memo
	return p
}
