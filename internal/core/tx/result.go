package tx

import "fmt"

// Result represents a transaction result code
type Result int

// Transaction result codes, grouped by category: tes, tec, tef, tem, ter.
// Only tesSUCCESS changes ledger state; every other code leaves it untouched.
const (
	// tesSUCCESS (0)
	TesSUCCESS Result = 0

	// tec codes (100-199): well formed but rejected by ledger state
	TecUNFUNDED                    Result = 129
	TecNO_PERMISSION               Result = 139
	TecNO_ENTRY                    Result = 140
	TecINVARIANT_FAILED            Result = 147
	TecDUPLICATE                   Result = 149
	TecNOT_OWNER                   Result = 170
	TecDURATION_TOO_SHORT          Result = 171
	TecDURATION_TOO_LONG           Result = 172
	TecFROZEN_ASSET                Result = 173
	TecFREEZE_DELEGATE_NOT_OWNER   Result = 174
	TecTRANSFER_DELEGATE_NOT_OWNER Result = 175
	TecOWNER_BID                   Result = 176
	TecINVALID_BID                 Result = 177
	TecAUCTION_ENDED               Result = 178
	TecAUCTION_STARTED             Result = 179
	TecAUCTION_NOT_STARTED         Result = 180
	TecAUCTION_RUNNING             Result = 181
	TecWRONG_COLLECTION            Result = 182

	// tef codes (-199 to -100): failure that cannot succeed in this ledger
	TefBAD_AUTH   Result = -196
	TefINTERNAL   Result = -190
	TefPAST_SEQ   Result = -189
	TefNOT_SIGNED Result = -185

	// tem codes (-299 to -200): malformed
	TemMALFORMED       Result = -299
	TemBAD_AMOUNT      Result = -298
	TemBAD_SEQUENCE    Result = -283
	TemBAD_SIGNATURE   Result = -281
	TemBAD_SRC_ACCOUNT Result = -280
	TemDST_IS_SRC      Result = -279
	TemINVALID         Result = -277
	TemUNKNOWN         Result = -264
	TemBAD_DURATION    Result = -263
	TemINVALID_ACCOUNT Result = -262

	// ter codes (-99 to -1): retry later
	TerNO_ACCOUNT Result = -96
	TerPRE_SEQ    Result = -92
)

// String returns the string representation of the result code
func (r Result) String() string {
	switch r {
	case TesSUCCESS:
		return "tesSUCCESS"
	case TecUNFUNDED:
		return "tecUNFUNDED"
	case TecNO_PERMISSION:
		return "tecNO_PERMISSION"
	case TecNO_ENTRY:
		return "tecNO_ENTRY"
	case TecINVARIANT_FAILED:
		return "tecINVARIANT_FAILED"
	case TecDUPLICATE:
		return "tecDUPLICATE"
	case TecNOT_OWNER:
		return "tecNOT_OWNER"
	case TecDURATION_TOO_SHORT:
		return "tecDURATION_TOO_SHORT"
	case TecDURATION_TOO_LONG:
		return "tecDURATION_TOO_LONG"
	case TecFROZEN_ASSET:
		return "tecFROZEN_ASSET"
	case TecFREEZE_DELEGATE_NOT_OWNER:
		return "tecFREEZE_DELEGATE_NOT_OWNER"
	case TecTRANSFER_DELEGATE_NOT_OWNER:
		return "tecTRANSFER_DELEGATE_NOT_OWNER"
	case TecOWNER_BID:
		return "tecOWNER_BID"
	case TecINVALID_BID:
		return "tecINVALID_BID"
	case TecAUCTION_ENDED:
		return "tecAUCTION_ENDED"
	case TecAUCTION_STARTED:
		return "tecAUCTION_STARTED"
	case TecAUCTION_NOT_STARTED:
		return "tecAUCTION_NOT_STARTED"
	case TecAUCTION_RUNNING:
		return "tecAUCTION_RUNNING"
	case TecWRONG_COLLECTION:
		return "tecWRONG_COLLECTION"
	case TefBAD_AUTH:
		return "tefBAD_AUTH"
	case TefINTERNAL:
		return "tefINTERNAL"
	case TefPAST_SEQ:
		return "tefPAST_SEQ"
	case TefNOT_SIGNED:
		return "tefNOT_SIGNED"
	case TemMALFORMED:
		return "temMALFORMED"
	case TemBAD_AMOUNT:
		return "temBAD_AMOUNT"
	case TemBAD_SEQUENCE:
		return "temBAD_SEQUENCE"
	case TemBAD_SIGNATURE:
		return "temBAD_SIGNATURE"
	case TemBAD_SRC_ACCOUNT:
		return "temBAD_SRC_ACCOUNT"
	case TemDST_IS_SRC:
		return "temDST_IS_SRC"
	case TemINVALID:
		return "temINVALID"
	case TemUNKNOWN:
		return "temUNKNOWN"
	case TemBAD_DURATION:
		return "temBAD_DURATION"
	case TemINVALID_ACCOUNT:
		return "temINVALID_ACCOUNT"
	case TerNO_ACCOUNT:
		return "terNO_ACCOUNT"
	case TerPRE_SEQ:
		return "terPRE_SEQ"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// ResultFromString maps a code name back to its Result.
func ResultFromString(s string) (Result, bool) {
	r, ok := resultByName[s]
	return r, ok
}

var resultByName = func() map[string]Result {
	all := []Result{
		TesSUCCESS, TecUNFUNDED, TecNO_PERMISSION, TecNO_ENTRY,
		TecINVARIANT_FAILED, TecDUPLICATE, TecNOT_OWNER, TecDURATION_TOO_SHORT,
		TecDURATION_TOO_LONG, TecFROZEN_ASSET, TecFREEZE_DELEGATE_NOT_OWNER,
		TecTRANSFER_DELEGATE_NOT_OWNER, TecOWNER_BID, TecINVALID_BID,
		TecAUCTION_ENDED, TecAUCTION_STARTED, TecAUCTION_NOT_STARTED,
		TecAUCTION_RUNNING, TecWRONG_COLLECTION, TefBAD_AUTH,
		TefINTERNAL, TefPAST_SEQ, TefNOT_SIGNED, TemMALFORMED, TemBAD_AMOUNT,
		TemBAD_SEQUENCE, TemBAD_SIGNATURE, TemBAD_SRC_ACCOUNT, TemDST_IS_SRC,
		TemINVALID, TemUNKNOWN, TemBAD_DURATION, TemINVALID_ACCOUNT,
		TerNO_ACCOUNT, TerPRE_SEQ,
	}
	m := make(map[string]Result, len(all))
	for _, r := range all {
		m[r.String()] = r
	}
	return m
}()

// IsSuccess returns true if the result is tesSUCCESS
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec code
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTef returns true if this is a tef (failure) code
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTem returns true if this is a tem (malformed) code
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// IsTer returns true if this is a ter (retry) code
func (r Result) IsTer() bool {
	return r >= -99 && r <= -1
}

// ShouldRetry returns true if the transaction may succeed if resubmitted later
func (r Result) ShouldRetry() bool {
	return r.IsTer()
}

// IsApplied returns true if the transaction changed ledger state. No fee is
// charged, so tec results are not applied.
func (r Result) IsApplied() bool {
	return r.IsSuccess()
}

// Message returns a human-readable message for the result
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The transaction was applied."
	case TecUNFUNDED:
		return "Insufficient balance to fund the operation."
	case TecNO_PERMISSION:
		return "The signer is not allowed to perform this operation."
	case TecNO_ENTRY:
		return "A required ledger entry does not exist."
	case TecINVARIANT_FAILED:
		return "A ledger invariant would be violated. The transaction was discarded."
	case TecDUPLICATE:
		return "The ledger entry already exists."
	case TecNOT_OWNER:
		return "The signer does not own the asset."
	case TecDURATION_TOO_SHORT:
		return "Auction duration is below the protocol minimum."
	case TecDURATION_TOO_LONG:
		return "Auction duration is above the protocol maximum."
	case TecFROZEN_ASSET:
		return "The asset is already frozen."
	case TecFREEZE_DELEGATE_NOT_OWNER:
		return "The freeze delegate is controlled by someone other than the owner."
	case TecTRANSFER_DELEGATE_NOT_OWNER:
		return "The transfer delegate is controlled by someone other than the owner."
	case TecOWNER_BID:
		return "The seller may not bid on their own auction."
	case TecINVALID_BID:
		return "The bid must be strictly greater than the current bid and at least the minimum bid."
	case TecAUCTION_ENDED:
		return "The bidding window has closed."
	case TecAUCTION_STARTED:
		return "The auction already has a bid and cannot be cancelled."
	case TecAUCTION_NOT_STARTED:
		return "The auction has no bids and cannot be completed."
	case TecAUCTION_RUNNING:
		return "The bidding window is still open."
	case TecWRONG_COLLECTION:
		return "The asset does not belong to the collection."
	case TefBAD_AUTH:
		return "The signing key does not match the source account."
	case TefPAST_SEQ:
		return "This sequence number has already passed."
	case TefNOT_SIGNED:
		return "The transaction is not signed."
	case TefINTERNAL:
		return "Internal error."
	case TemMALFORMED:
		return "Malformed transaction."
	case TemBAD_AMOUNT:
		return "Malformed: bad amount."
	case TemBAD_SEQUENCE:
		return "Malformed: sequence is required."
	case TemBAD_SIGNATURE:
		return "Malformed: bad signature."
	case TemBAD_DURATION:
		return "Malformed: duration must be positive."
	case TemDST_IS_SRC:
		return "Destination may not be source."
	case TemUNKNOWN:
		return "Unknown transaction type."
	case TerNO_ACCOUNT:
		return "The source account does not exist."
	case TerPRE_SEQ:
		return "Missing prior sequence number."
	default:
		return r.String()
	}
}
