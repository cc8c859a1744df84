package rpc

import (
	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_handlers"
)

// registerAllMethods registers every RPC method with the server registry
func (s *Server) registerAllMethods() {
	// Transaction Methods
	s.registry.Register("submit", &rpc_handlers.SubmitMethod{})
	s.registry.Register("sign", &rpc_handlers.SignMethod{})
	s.registry.Register("tx", &rpc_handlers.TxMethod{})
	s.registry.Register("tx_history", &rpc_handlers.TxHistoryMethod{})

	// Auction Methods
	s.registry.Register("auction_info", &rpc_handlers.AuctionInfoMethod{})
	s.registry.Register("auction_list", &rpc_handlers.AuctionListMethod{})
	s.registry.Register("protocol_info", &rpc_handlers.ProtocolInfoMethod{})
	s.registry.Register("collection_info", &rpc_handlers.CollectionInfoMethod{})

	// Account and Asset Methods
	s.registry.Register("account_info", &rpc_handlers.AccountInfoMethod{})
	s.registry.Register("asset_info", &rpc_handlers.AssetInfoMethod{})

	// Server Methods
	s.registry.Register("server_info", &rpc_handlers.ServerInfoMethod{})
	s.registry.Register("ping", &rpc_handlers.PingMethod{})
}
