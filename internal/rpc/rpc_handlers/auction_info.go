package rpc_handlers

import (
	"encoding/json"

	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
)

// AuctionInfoMethod handles the auction_info RPC method
type AuctionInfoMethod struct{}

func (m *AuctionInfoMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request rpc_types.TargetParam
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	collection, asset, rpcErr := parseTarget(request)
	if rpcErr != nil {
		return nil, rpcErr
	}
	ledger, rpcErr := ledgerOf(ctx)
	if rpcErr != nil {
		return nil, rpcErr
	}

	info, err := ledger.Auction(request.ConfigSeed, collection, asset)
	if err != nil {
		return nil, lookupError(err, "Auction")
	}
	data, rpcErr := toMap(info)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return map[string]interface{}{"auction": data}, nil
}

func (m *AuctionInfoMethod) RequiredRole() rpc_types.Role {
	return rpc_types.RoleGuest
}

func (m *AuctionInfoMethod) SupportedApiVersions() []int {
	return allVersions
}

// AuctionListMethod handles the auction_list RPC method. It lists every
// open auction, optionally filtered by owner, collection or status.
type AuctionListMethod struct{}

func (m *AuctionListMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request struct {
		Owner      string `json:"owner,omitempty"`
		Collection string `json:"collection,omitempty"`
		Status     string `json:"status,omitempty"`
	}
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	ledger, rpcErr := ledgerOf(ctx)
	if rpcErr != nil {
		return nil, rpcErr
	}

	var filters []func(owner, collection string, status string) bool
	if request.Owner != "" {
		owner, rpcErr := parseAccount("owner", request.Owner)
		if rpcErr != nil {
			return nil, rpcErr
		}
		filters = append(filters, func(o, _, _ string) bool { return o == owner.String() })
	}
	if request.Collection != "" {
		collection, rpcErr := parseAccount("collection", request.Collection)
		if rpcErr != nil {
			return nil, rpcErr
		}
		filters = append(filters, func(_, c, _ string) bool { return c == collection.String() })
	}
	if request.Status != "" {
		switch request.Status {
		case "listed", "bidding", "ended":
		default:
			return nil, rpc_types.RpcErrorInvalidParams("status must be listed, bidding or ended")
		}
		filters = append(filters, func(_, _, s string) bool { return s == request.Status })
	}

	auctions, err := ledger.Auctions()
	if err != nil {
		return nil, rpc_types.RpcErrorInternal(err.Error())
	}

	list := make([]interface{}, 0, len(auctions))
next:
	for _, a := range auctions {
		for _, keep := range filters {
			if !keep(a.Owner.String(), a.Collection.String(), a.Status) {
				continue next
			}
		}
		list = append(list, a)
	}
	return map[string]interface{}{"auctions": list}, nil
}

func (m *AuctionListMethod) RequiredRole() rpc_types.Role {
	return rpc_types.RoleGuest
}

func (m *AuctionListMethod) SupportedApiVersions() []int {
	return allVersions
}
