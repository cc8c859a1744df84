package testing

import "github.com/LeJamon/goAuctiond/internal/core/tx"

// TxResult represents the result of applying a transaction.
type TxResult struct {
	// Code is the transaction engine result code (e.g., "tesSUCCESS").
	Code string

	// Result is the typed form of Code.
	Result tx.Result

	// Success indicates whether the transaction was successfully applied.
	Success bool

	// Message provides additional details about the result.
	Message string

	// Hash is the transaction id, empty when the transaction could not be hashed.
	Hash string

	// Metadata lists the entries the transaction changed, nil unless applied.
	Metadata *tx.Metadata
}

// Transaction result codes used by the tests.
const (
	TesSUCCESS = "tesSUCCESS"

	TecUNFUNDED                    = "tecUNFUNDED"
	TecNO_PERMISSION               = "tecNO_PERMISSION"
	TecNO_ENTRY                    = "tecNO_ENTRY"
	TecDUPLICATE                   = "tecDUPLICATE"
	TecNOT_OWNER                   = "tecNOT_OWNER"
	TecDURATION_TOO_SHORT          = "tecDURATION_TOO_SHORT"
	TecDURATION_TOO_LONG           = "tecDURATION_TOO_LONG"
	TecFROZEN_ASSET                = "tecFROZEN_ASSET"
	TecFREEZE_DELEGATE_NOT_OWNER   = "tecFREEZE_DELEGATE_NOT_OWNER"
	TecTRANSFER_DELEGATE_NOT_OWNER = "tecTRANSFER_DELEGATE_NOT_OWNER"
	TecOWNER_BID                   = "tecOWNER_BID"
	TecINVALID_BID                 = "tecINVALID_BID"
	TecAUCTION_ENDED               = "tecAUCTION_ENDED"
	TecAUCTION_STARTED             = "tecAUCTION_STARTED"
	TecAUCTION_NOT_STARTED         = "tecAUCTION_NOT_STARTED"
	TecAUCTION_RUNNING             = "tecAUCTION_RUNNING"
	TecWRONG_COLLECTION            = "tecWRONG_COLLECTION"

	TefPAST_SEQ   = "tefPAST_SEQ"
	TefNOT_SIGNED = "tefNOT_SIGNED"
	TefBAD_AUTH   = "tefBAD_AUTH"

	TemMALFORMED       = "temMALFORMED"
	TemBAD_AMOUNT      = "temBAD_AMOUNT"
	TemBAD_DURATION    = "temBAD_DURATION"
	TemDST_IS_SRC      = "temDST_IS_SRC"
	TemBAD_SIGNATURE   = "temBAD_SIGNATURE"
	TemINVALID_ACCOUNT = "temINVALID_ACCOUNT"

	TerNO_ACCOUNT = "terNO_ACCOUNT"
	TerPRE_SEQ    = "terPRE_SEQ"
)

// IsTec reports whether the transaction was well formed but rejected by
// ledger state.
func (r TxResult) IsTec() bool {
	return r.Result >= 100 && r.Result < 200
}

// IsMalformed reports whether the transaction failed preflight.
func (r TxResult) IsMalformed() bool {
	return r.Result >= -299 && r.Result <= -200
}
