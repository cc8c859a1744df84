package rpc_handlers

import (
	"encoding/json"

	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
)

// AssetInfoMethod handles the asset_info RPC method
type AssetInfoMethod struct{}

func (m *AssetInfoMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request struct {
		Asset string `json:"asset"`
	}
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	id, rpcErr := parseAccount("asset", request.Asset)
	if rpcErr != nil {
		return nil, rpcErr
	}
	ledger, rpcErr := ledgerOf(ctx)
	if rpcErr != nil {
		return nil, rpcErr
	}

	a, err := ledger.Asset(id)
	if err != nil {
		return nil, lookupError(err, "Asset")
	}
	return map[string]interface{}{
		"asset":  a,
		"frozen": a.Frozen(),
	}, nil
}

func (m *AssetInfoMethod) RequiredRole() rpc_types.Role {
	return rpc_types.RoleGuest
}

func (m *AssetInfoMethod) SupportedApiVersions() []int {
	return allVersions
}
