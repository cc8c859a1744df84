package rpc_handlers

import (
	"encoding/json"
	"errors"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/service"
	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
)

// SubmitMethod handles the submit RPC method. tx_json must be signed
// unless a secret is given or the server skips signature checks.
type SubmitMethod struct{}

func (m *SubmitMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request signRequest
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	ledger, rpcErr := ledgerOf(ctx)
	if rpcErr != nil {
		return nil, rpcErr
	}

	transaction, rpcErr := prepareTransaction(ctx, ledger, request)
	if rpcErr != nil {
		return nil, rpcErr
	}

	result, err := ledger.Submit(ctx.Context, transaction)
	if errors.Is(err, service.ErrClosed) {
		return nil, rpc_types.RpcErrorShutDown()
	}
	if err != nil {
		return nil, rpc_types.RpcErrorInternal("submit: " + err.Error())
	}

	response := map[string]interface{}{
		"engine_result":         result.Code,
		"engine_result_code":    int(result.Result),
		"engine_result_message": result.Message,
		"applied":               result.Applied,
		"index":                 result.Index,
		"close_time":            result.CloseTime,
		"tx_json":               transaction,
	}
	if result.Hash != "" {
		response["tx_hash"] = result.Hash
	}
	if result.Metadata != nil {
		response["meta"] = result.Metadata
	}
	return response, nil
}

func (m *SubmitMethod) RequiredRole() rpc_types.Role {
	return rpc_types.RoleUser
}

func (m *SubmitMethod) SupportedApiVersions() []int {
	return allVersions
}
