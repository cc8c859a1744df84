package rpc_handlers

import (
	"encoding/json"
	"errors"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/service"
	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
)

// CollectionInfoMethod handles the collection_info RPC method. It returns
// the registry collection and, when present, its whitelist entry.
type CollectionInfoMethod struct{}

func (m *CollectionInfoMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request struct {
		ConfigSeed uint64 `json:"config_seed"`
		Collection string `json:"collection"`
	}
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	id, rpcErr := parseAccount("collection", request.Collection)
	if rpcErr != nil {
		return nil, rpcErr
	}
	ledger, rpcErr := ledgerOf(ctx)
	if rpcErr != nil {
		return nil, rpcErr
	}

	collection, err := ledger.AssetCollection(id)
	if err != nil {
		return nil, lookupError(err, "Collection")
	}
	response := map[string]interface{}{
		"collection":  collection,
		"whitelisted": false,
	}

	entry, err := ledger.Collection(request.ConfigSeed, id)
	switch {
	case err == nil:
		response["whitelisted"] = true
		response["whitelist_entry"] = entry
	case !errors.Is(err, service.ErrNotFound):
		return nil, rpc_types.RpcErrorInternal(err.Error())
	}
	return response, nil
}

func (m *CollectionInfoMethod) RequiredRole() rpc_types.Role {
	return rpc_types.RoleGuest
}

func (m *CollectionInfoMethod) SupportedApiVersions() []int {
	return allVersions
}
