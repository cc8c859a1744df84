package rpc_handlers

import (
	"encoding/json"

	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
)

// ProtocolInfoMethod handles the protocol_info RPC method. It returns the
// config of one seed with the vault and treasury balances.
type ProtocolInfoMethod struct{}

func (m *ProtocolInfoMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request struct {
		ConfigSeed uint64 `json:"config_seed"`
	}
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	ledger, rpcErr := ledgerOf(ctx)
	if rpcErr != nil {
		return nil, rpcErr
	}

	cfg, err := ledger.Config(request.ConfigSeed)
	if err != nil {
		return nil, lookupError(err, "Protocol config")
	}
	vault, err := ledger.Account(cfg.Vault)
	if err != nil {
		return nil, lookupError(err, "Vault account")
	}
	treasury, err := ledger.Account(cfg.Treasury)
	if err != nil {
		return nil, lookupError(err, "Treasury account")
	}

	return map[string]interface{}{
		"config":           cfg,
		"vault_balance":    vault.Balance,
		"treasury_balance": treasury.Balance,
	}, nil
}

func (m *ProtocolInfoMethod) RequiredRole() rpc_types.Role {
	return rpc_types.RoleGuest
}

func (m *ProtocolInfoMethod) SupportedApiVersions() []int {
	return allVersions
}
