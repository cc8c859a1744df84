package rpc_handlers

import (
	"encoding/json"
	"time"

	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
)

// ServerInfoMethod handles the server_info RPC method
type ServerInfoMethod struct{}

func (m *ServerInfoMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	ledger, rpcErr := ledgerOf(ctx)
	if rpcErr != nil {
		return nil, rpcErr
	}

	now := ledger.Clock().Now().UTC()
	state := "full"
	if ledger.Standalone() {
		state = "standalone"
	}
	info := map[string]interface{}{
		"build_version":     ctx.Services.Version,
		"server_state":      state,
		"applied":           ledger.Applied(),
		"close_time":        now.Unix(),
		"close_time_iso":    now.Format(time.RFC3339),
		"event_subscribers": ledger.Events().Len(),
		"admin_signing":     ctx.Services.AdminSigning,
	}
	return map[string]interface{}{"info": info}, nil
}

func (m *ServerInfoMethod) RequiredRole() rpc_types.Role {
	return rpc_types.RoleGuest
}

func (m *ServerInfoMethod) SupportedApiVersions() []int {
	return allVersions
}
