package rpc_handlers

import (
	"encoding/json"
	"strings"

	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
)

// historyEntry is a history record with its stored JSON inlined
type historyEntry struct {
	Hash      string          `json:"hash"`
	Index     uint64          `json:"index"`
	Type      string          `json:"TransactionType"`
	Result    string          `json:"engine_result"`
	Applied   bool            `json:"applied"`
	CloseTime int64           `json:"close_time"`
	TxJSON    json.RawMessage `json:"tx_json"`
	Meta      json.RawMessage `json:"meta,omitempty"`
}

func entryFromRecord(r *relationaldb.TxRecord) historyEntry {
	e := historyEntry{
		Hash:      r.Hash,
		Index:     r.Index,
		Type:      r.Type,
		Result:    r.Result,
		Applied:   r.Applied,
		CloseTime: r.CloseTime,
		TxJSON:    json.RawMessage(r.TxJSON),
	}
	if len(r.MetaJSON) > 0 {
		e.Meta = json.RawMessage(r.MetaJSON)
	}
	return e
}

// TxMethod handles the tx RPC method
type TxMethod struct{}

func (m *TxMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request struct {
		Transaction string `json:"transaction"`
	}
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	if _, err := tx.DecodeHash(request.Transaction); err != nil {
		return nil, rpc_types.RpcErrorInvalidHash("Invalid transaction hash")
	}
	ledger, rpcErr := ledgerOf(ctx)
	if rpcErr != nil {
		return nil, rpcErr
	}

	rec, err := ledger.Transaction(ctx.Context, strings.ToUpper(request.Transaction))
	if err != nil {
		return nil, lookupError(err, request.Transaction)
	}
	return toMap(entryFromRecord(rec))
}

func (m *TxMethod) RequiredRole() rpc_types.Role {
	return rpc_types.RoleGuest
}

func (m *TxMethod) SupportedApiVersions() []int {
	return allVersions
}

// TxHistoryMethod handles the tx_history RPC method. Exactly one of
// account and subject selects the records, newest first.
type TxHistoryMethod struct{}

func (m *TxHistoryMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request struct {
		Account string `json:"account,omitempty"`
		Subject string `json:"subject,omitempty"`
		rpc_types.LimitParam
	}
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	if (request.Account == "") == (request.Subject == "") {
		return nil, rpc_types.RpcErrorInvalidParams("Exactly one of account and subject is required")
	}
	limit, rpcErr := parseLimit(request.Limit)
	if rpcErr != nil {
		return nil, rpcErr
	}
	ledger, rpcErr := ledgerOf(ctx)
	if rpcErr != nil {
		return nil, rpcErr
	}

	var (
		records []relationaldb.TxRecord
		err     error
	)
	if request.Account != "" {
		id, rpcErr := parseAccount("account", request.Account)
		if rpcErr != nil {
			return nil, rpcErr
		}
		records, err = ledger.AccountHistory(ctx.Context, id, limit)
	} else {
		if _, err := tx.DecodeHash(request.Subject); err != nil {
			return nil, rpc_types.RpcErrorInvalidHash("Invalid subject key")
		}
		records, err = ledger.SubjectHistory(ctx.Context, strings.ToUpper(request.Subject), limit)
	}
	if err != nil {
		return nil, lookupError(err, "History")
	}

	txs := make([]historyEntry, 0, len(records))
	for i := range records {
		txs = append(txs, entryFromRecord(&records[i]))
	}
	return map[string]interface{}{
		"transactions": txs,
		"limit":        limit,
	}, nil
}

func (m *TxHistoryMethod) RequiredRole() rpc_types.Role {
	return rpc_types.RoleGuest
}

func (m *TxHistoryMethod) SupportedApiVersions() []int {
	return allVersions
}
