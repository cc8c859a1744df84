package rpc_handlers

import (
	"encoding/json"
	"errors"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/service"
	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
)

// AccountInfoMethod handles the account_info RPC method
type AccountInfoMethod struct{}

func (m *AccountInfoMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request rpc_types.AccountParam
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	id, rpcErr := parseAccount("account", request.Account)
	if rpcErr != nil {
		return nil, rpcErr
	}
	ledger, rpcErr := ledgerOf(ctx)
	if rpcErr != nil {
		return nil, rpcErr
	}

	account, err := ledger.Account(id)
	if errors.Is(err, service.ErrNotFound) {
		return nil, rpc_types.RpcErrorActNotFound(request.Account)
	}
	if err != nil {
		return nil, rpc_types.RpcErrorInternal(err.Error())
	}

	accountData := map[string]interface{}{
		"Account":         account.Account.String(),
		"Balance":         account.Balance,
		"Flags":           account.Flags,
		"LedgerEntryType": "AccountRoot",
		"Sequence":        account.Sequence,
		"ProtocolOwned":   account.IsProtocolOwned(),
	}
	return map[string]interface{}{"account_data": accountData}, nil
}

func (m *AccountInfoMethod) RequiredRole() rpc_types.Role {
	return rpc_types.RoleGuest
}

func (m *AccountInfoMethod) SupportedApiVersions() []int {
	return allVersions
}
