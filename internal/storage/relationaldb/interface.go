// Package relationaldb stores the history of submitted transactions in a
// SQL database, indexed by hash, account and ledger object.
package relationaldb

import (
	"context"
)

// TxRecord is one processed transaction.
type TxRecord struct {
	// Hash is the upper case hex transaction id
	Hash string `json:"hash"`
	// Index orders records; it is the ledger applied counter after the
	// transaction, or the counter at the time for a failed one
	Index     uint64 `json:"index"`
	Account   string `json:"account"`
	Type      string `json:"type"`
	Result    string `json:"result"`
	Applied   bool   `json:"applied"`
	Subject   string `json:"subject,omitempty"`
	CloseTime int64  `json:"close_time"`
	TxJSON    []byte `json:"tx_json"`
	MetaJSON  []byte `json:"meta_json,omitempty"`
}

// HistoryStore records and queries transaction history.
type HistoryStore interface {
	Record(ctx context.Context, rec *TxRecord) error
	ByHash(ctx context.Context, hash string) (*TxRecord, error)
	// ByAccount and BySubject return newest first.
	ByAccount(ctx context.Context, account string, limit int) ([]TxRecord, error)
	BySubject(ctx context.Context, subject string, limit int) ([]TxRecord, error)
	Close() error
}

// MaxLimit caps query result sizes.
const MaxLimit = 400
