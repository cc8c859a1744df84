package tx

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
	"github.com/LeJamon/goAuctiond/internal/core/tx/sle"
)

// EngineConfig holds configuration for the transaction engine
type EngineConfig struct {
	// CloseTime is the ledger time in unix seconds used by time-dependent
	// transactions
	CloseTime int64

	// SkipSignatureVerification skips signature checks (for testing/standalone)
	SkipSignatureVerification bool

	// Standalone indicates if running in standalone mode
	Standalone bool

	// Logger receives transactor debug output. Nil discards it.
	Logger *slog.Logger
}

// LedgerView provides read/write access to ledger state
type LedgerView interface {
	// Read reads a ledger entry, returning nil data when it does not exist
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists
	Exists(k keylet.Keylet) (bool, error)

	// Insert adds a new entry
	Insert(k keylet.Keylet, data []byte) error

	// Update modifies an existing entry
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry
	Erase(k keylet.Keylet) error

	// ForEach iterates over all state entries
	// If fn returns false, iteration stops early
	ForEach(fn func(key [32]byte, data []byte) bool) error
}

// ApplyResult contains the result of applying a transaction
type ApplyResult struct {
	// Result is the transaction result code
	Result Result

	// Applied indicates if the transaction changed the ledger
	Applied bool

	// Hash is the transaction id
	Hash [32]byte

	// Metadata contains the changes made by the transaction
	Metadata *Metadata

	// Message is a human-readable result message
	Message string
}

// HashHex returns the transaction id in upper case hex.
func (r ApplyResult) HashHex() string {
	return fmt.Sprintf("%X", r.Hash)
}

// Engine applies transactions to a ledger view
type Engine struct {
	view   LedgerView
	config EngineConfig
}

// NewEngine creates a new transaction engine
func NewEngine(view LedgerView, config EngineConfig) *Engine {
	return &Engine{
		view:   view,
		config: config,
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// Apply processes a transaction. State changes are staged in an
// ApplyStateTable and reach the view only on tesSUCCESS after every
// invariant holds; any other result leaves the view untouched.
func (e *Engine) Apply(tx Transaction) ApplyResult {
	// Step 1: Preflight checks (syntax validation)
	result := e.preflight(tx)
	if !result.IsSuccess() {
		return failed(result, [32]byte{})
	}

	// Step 2: Compute transaction hash
	txHash, err := TransactionHash(tx)
	if err != nil {
		r := failed(TefINTERNAL, [32]byte{})
		r.Message = "failed to compute transaction hash: " + err.Error()
		return r
	}

	// Step 3: Preclaim checks (validate against ledger state)
	result = e.preclaim(tx)
	if !result.IsSuccess() {
		return failed(result, txHash)
	}

	// Step 4: Apply against a staged table
	metadata, result, detail := e.doApply(tx, txHash)
	if !result.IsSuccess() {
		r := failed(result, txHash)
		if detail != "" {
			r.Message = detail
		}
		return r
	}
	metadata.TransactionResult = result

	return ApplyResult{
		Result:   result,
		Applied:  true,
		Hash:     txHash,
		Metadata: metadata,
		Message:  result.Message(),
	}
}

func failed(result Result, hash [32]byte) ApplyResult {
	return ApplyResult{
		Result:  result,
		Applied: false,
		Hash:    hash,
		Message: result.Message(),
	}
}

func (e *Engine) preflight(tx Transaction) Result {
	if tx == nil {
		return TemINVALID
	}
	if err := tx.Validate(); err != nil {
		return ResultFromValidation(err)
	}
	if tx.GetCommon().Sequence == nil {
		return TemBAD_SEQUENCE
	}
	if !e.config.SkipSignatureVerification {
		if err := VerifySignature(tx); err != nil {
			switch {
			case errors.Is(err, ErrNotSigned):
				return TefNOT_SIGNED
			case errors.Is(err, ErrSignerMismatch):
				return TefBAD_AUTH
			default:
				return TemBAD_SIGNATURE
			}
		}
	}
	return TesSUCCESS
}

func (e *Engine) preclaim(tx Transaction) Result {
	common := tx.GetCommon()

	accountData, err := e.view.Read(keylet.Account(common.Account))
	if err != nil {
		return TefINTERNAL
	}
	if accountData == nil {
		return TerNO_ACCOUNT
	}
	account, err := sle.ParseAccountRoot(accountData)
	if err != nil {
		return TefINTERNAL
	}

	// Derived accounts have no key; nothing may claim to sign for them.
	if account.IsProtocolOwned() {
		return TefBAD_AUTH
	}

	seq := *common.Sequence
	if seq < account.Sequence {
		return TefPAST_SEQ
	}
	if seq > account.Sequence {
		return TerPRE_SEQ
	}
	return TesSUCCESS
}

func (e *Engine) doApply(tx Transaction, txHash [32]byte) (*Metadata, Result, string) {
	common := tx.GetCommon()
	table := NewApplyStateTable(e.view)

	ctx := &ApplyContext{
		View:      table,
		AccountID: common.Account,
		Config:    e.config,
		TxHash:    txHash,
		Engine:    e,
	}

	// Consume the sequence inside the table so a failed apply discards it
	account, err := ctx.ReadAccount(common.Account)
	if err != nil || account == nil {
		return nil, TefINTERNAL, ""
	}
	account.Sequence = *common.Sequence + 1
	if err := ctx.WriteAccount(account); err != nil {
		return nil, TefINTERNAL, err.Error()
	}

	appliable, ok := tx.(Appliable)
	if !ok {
		return nil, TemUNKNOWN, ""
	}
	if result := appliable.Apply(ctx); !result.IsSuccess() {
		return nil, result, ""
	}

	if err := checkInvariants(ctx, table.Changes()); err != nil {
		return nil, TecINVARIANT_FAILED, err.Error()
	}

	metadata, err := table.Apply()
	if err != nil {
		return nil, TefINTERNAL, "commit: " + err.Error()
	}
	return metadata, TesSUCCESS, ""
}

// DecodeHash parses a 64 character hex transaction id.
func DecodeHash(s string) ([32]byte, error) {
	var out [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return out, fmt.Errorf("invalid hash %q", s)
	}
	copy(out[:], raw)
	return out, nil
}
