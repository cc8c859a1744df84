package rpc_handlers

import (
	"encoding/json"
	"errors"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/service"
	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
	"github.com/LeJamon/goAuctiond/internal/storage/relationaldb"
	"github.com/LeJamon/goAuctiond/internal/types"
)

var allVersions = []int{rpc_types.ApiVersion1, rpc_types.ApiVersion2}

func ledgerOf(ctx *rpc_types.RpcContext) (rpc_types.LedgerService, *rpc_types.RpcError) {
	if ctx.Services == nil || ctx.Services.Ledger == nil {
		return nil, rpc_types.RpcErrorInternal("Ledger service not available")
	}
	return ctx.Services.Ledger, nil
}

func parseParams(params json.RawMessage, v interface{}) *rpc_types.RpcError {
	if params == nil {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return rpc_types.RpcErrorInvalidParams("Invalid parameters: " + err.Error())
	}
	return nil
}

func parseAccount(field, value string) (types.AccountID, *rpc_types.RpcError) {
	if value == "" {
		return types.AccountID{}, rpc_types.RpcErrorInvalidParams("Missing required parameter: " + field)
	}
	id, err := types.ParseAccountID(value)
	if err != nil {
		return types.AccountID{}, rpc_types.RpcErrorActMalformed("Invalid " + field + ": " + err.Error())
	}
	return id, nil
}

func parseTarget(p rpc_types.TargetParam) (types.AccountID, types.AccountID, *rpc_types.RpcError) {
	collection, rpcErr := parseAccount("collection", p.Collection)
	if rpcErr != nil {
		return types.AccountID{}, types.AccountID{}, rpcErr
	}
	asset, rpcErr := parseAccount("asset", p.Asset)
	if rpcErr != nil {
		return types.AccountID{}, types.AccountID{}, rpcErr
	}
	return collection, asset, nil
}

func parseLimit(limit int) (int, *rpc_types.RpcError) {
	switch {
	case limit == 0:
		return rpc_types.DefaultLimit, nil
	case limit < 0 || limit > relationaldb.MaxLimit:
		return 0, rpc_types.RpcErrorInvalidParams("limit must be between 1 and 400")
	}
	return limit, nil
}

// lookupError maps a ledger read error to an RPC error. what describes the
// object for the not found message.
func lookupError(err error, what string) *rpc_types.RpcError {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return rpc_types.RpcErrorObjectNotFound(what + " not found")
	case errors.Is(err, service.ErrNoHistory):
		return rpc_types.RpcErrorHistoryNotAvailable()
	case errors.Is(err, relationaldb.ErrTransactionNotFound):
		return rpc_types.RpcErrorTxnNotFound(what)
	default:
		return rpc_types.RpcErrorInternal(err.Error())
	}
}

// toMap converts a response struct to the map the server decorates with
// status.
func toMap(v interface{}) (map[string]interface{}, *rpc_types.RpcError) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, rpc_types.RpcErrorInternal("encode response: " + err.Error())
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, rpc_types.RpcErrorInternal("encode response: " + err.Error())
	}
	return out, nil
}
