package tx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/types"
)

// Common errors
var (
	ErrMissingRequiredField   = errors.New("temMALFORMED: missing required field")
	ErrInvalidTransactionType = errors.New("temUNKNOWN: invalid transaction type")
	ErrInvalidAmount          = errors.New("temBAD_AMOUNT: invalid amount")
	ErrInvalidAccount         = errors.New("temBAD_SRC_ACCOUNT: invalid account")
)

// Transaction is the interface that all transaction types must implement
type Transaction interface {
	// TxType returns the transaction type
	TxType() Type

	// GetCommon returns the common transaction fields
	GetCommon() *Common

	// Validate checks if the transaction is well formed without reading state
	Validate() error
}

// Appliable is implemented by transaction types that can apply themselves to ledger state.
type Appliable interface {
	Apply(ctx *ApplyContext) Result
}

// Subject is implemented by transactions that act on one ledger object.
// History and events are indexed by it.
type Subject interface {
	SubjectKey() keylet.Keylet
}

// Common contains fields common to all transaction types
type Common struct {
	Account         types.AccountID `json:"Account"`
	TransactionType string          `json:"TransactionType"`

	// Sequence must equal the account's next sequence number
	Sequence *uint32 `json:"Sequence,omitempty"`

	// Memo is free text recorded in history
	Memo string `json:"Memo,omitempty"`

	SigningPubKey string `json:"SigningPubKey,omitempty"`
	TxnSignature  string `json:"TxnSignature,omitempty"`
}

// Validate validates the common fields
func (c *Common) Validate() error {
	if c.Account.IsZero() {
		return ErrInvalidAccount
	}
	if c.TransactionType == "" {
		return fmt.Errorf("%w: TransactionType", ErrMissingRequiredField)
	}
	if len(c.Memo) > 1024 {
		return errors.New("temMALFORMED: memo too long")
	}
	return nil
}

// SetSequence sets the sequence number
func (c *Common) SetSequence(seq uint32) {
	c.Sequence = &seq
}

// GetSequence returns the sequence number (0 if not set)
func (c *Common) GetSequence() uint32 {
	if c.Sequence == nil {
		return 0
	}
	return *c.Sequence
}

// IsSigned reports whether a signature is attached.
func (c *Common) IsSigned() bool {
	return c.SigningPubKey != "" && c.TxnSignature != ""
}

// BaseTx provides a base implementation for transactions
type BaseTx struct {
	Common
	txType Type
}

// TxType returns the transaction type
func (b *BaseTx) TxType() Type {
	return b.txType
}

// GetCommon returns the common transaction fields
func (b *BaseTx) GetCommon() *Common {
	return &b.Common
}

// Validate validates the base transaction
func (b *BaseTx) Validate() error {
	if err := b.Common.Validate(); err != nil {
		return err
	}
	if b.TransactionType != b.txType.String() {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, b.TransactionType)
	}
	return nil
}

// NewBaseTx creates a new base transaction
func NewBaseTx(txType Type, account types.AccountID) *BaseTx {
	return &BaseTx{
		Common: Common{
			Account:         account,
			TransactionType: txType.String(),
		},
		txType: txType,
	}
}

// ResultFromValidation maps a Validate error to a result code. Errors are
// expected to start with the code name, followed by a colon.
func ResultFromValidation(err error) Result {
	if err == nil {
		return TesSUCCESS
	}
	msg := err.Error()
	if i := strings.IndexByte(msg, ':'); i > 0 {
		if r, ok := ResultFromString(msg[:i]); ok {
			return r
		}
	}
	return TemMALFORMED
}
