package rpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goAuctiond/internal/core/amount"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/genesis"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/service"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/state"
	"github.com/LeJamon/goAuctiond/internal/core/tx/assets"
	"github.com/LeJamon/goAuctiond/internal/crypto/secp256k1"
	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
	"github.com/LeJamon/goAuctiond/internal/types"
)

type testNode struct {
	server *Server
	ledger *service.Ledger
	clock  *clockwork.FakeClock
	master types.AccountID
}

func newTestNode(t *testing.T, adminSigning bool) *testNode {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
	cfg := service.DefaultConfig()
	cfg.Clock = clock
	cfg.Standalone = true

	l := service.New(state.NewMemory(), cfg)
	_, err := l.Start()
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	master, _, err := genesis.GenesisAccountID()
	require.NoError(t, err)

	services := &rpc_types.ServiceContainer{Ledger: l, AdminSigning: adminSigning, Version: "test"}
	return &testNode{
		server: NewServer(services, 5*time.Second, nil),
		ledger: l,
		clock:  clock,
		master: master,
	}
}

func post(t *testing.T, h http.Handler, body []byte) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Result map[string]interface{} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.Result)
	return response.Result
}

func call(t *testing.T, h http.Handler, method string, params interface{}) map[string]interface{} {
	t.Helper()
	request := map[string]interface{}{"method": method}
	if params != nil {
		request["params"] = []interface{}{params}
	}
	body, err := json.Marshal(request)
	require.NoError(t, err)
	return post(t, h, body)
}

func requireSuccess(t *testing.T, result map[string]interface{}) {
	t.Helper()
	require.Equal(t, "success", result["status"], "error: %v %v", result["error"], result["error_message"])
}

func requireError(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	require.Equal(t, "error", result["status"])
	assert.Equal(t, code, result["error"], result["error_message"])
}

// submit signs tx_json with secret and requires the engine result.
func submit(t *testing.T, h http.Handler, secret string, txJSON map[string]interface{}, engineResult string) map[string]interface{} {
	t.Helper()
	result := call(t, h, "submit", map[string]interface{}{"tx_json": txJSON, "secret": secret})
	requireSuccess(t, result)
	require.Equal(t, engineResult, result["engine_result"], result["engine_result_message"])
	return result
}

func sequenceOf(t *testing.T, result map[string]interface{}) uint32 {
	t.Helper()
	txJSON, ok := result["tx_json"].(map[string]interface{})
	require.True(t, ok)
	seq, ok := txJSON["Sequence"].(float64)
	require.True(t, ok)
	return uint32(seq)
}

func accountFor(t *testing.T, passphrase string) types.AccountID {
	t.Helper()
	kp, err := secp256k1.KeyPairFromPassphrase(passphrase)
	require.NoError(t, err)
	return types.AccountID(kp.AccountID())
}

func TestServer_Ping(t *testing.T) {
	n := newTestNode(t, true)
	requireSuccess(t, call(t, n.server, "ping", nil))
}

func TestServer_ServerInfo(t *testing.T) {
	n := newTestNode(t, true)
	result := call(t, n.server, "server_info", nil)
	requireSuccess(t, result)

	info, ok := result["info"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "standalone", info["server_state"])
	assert.Equal(t, "test", info["build_version"])
	assert.Equal(t, float64(1_700_000_000), info["close_time"])
}

func TestServer_GetDefaultsToServerInfo(t *testing.T) {
	n := newTestNode(t, true)
	rec := httptest.NewRecorder()
	n.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "standalone")
}

func TestServer_RejectsBadRequests(t *testing.T) {
	n := newTestNode(t, true)

	requireError(t, post(t, n.server, []byte("{not json")), "jsonInvalid")
	requireError(t, post(t, n.server, []byte(`{"params":[{}]}`)), "missingCommand")
	requireError(t, call(t, n.server, "no_such_method", nil), "unknownCmd")
	requireError(t, call(t, n.server, "ping", map[string]interface{}{"api_version": 9}), "invalid_API_version")

	rec := httptest.NewRecorder()
	n.server.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_ErrorEchoesRequest(t *testing.T) {
	n := newTestNode(t, true)
	result := call(t, n.server, "account_info", map[string]interface{}{"account": "bogus"})
	requireError(t, result, "actMalformed")

	request, ok := result["request"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "account_info", request["command"])
	assert.Equal(t, "bogus", request["account"])
}

func TestServer_AccountInfo(t *testing.T) {
	n := newTestNode(t, true)

	result := call(t, n.server, "account_info", map[string]interface{}{"account": n.master.String()})
	requireSuccess(t, result)
	data := result["account_data"].(map[string]interface{})
	assert.Equal(t, n.master.String(), data["Account"])
	assert.Equal(t, float64(genesis.InitialSupply), data["Balance"])
	assert.Equal(t, false, data["ProtocolOwned"])

	unknown := accountFor(t, "nobody")
	requireError(t, call(t, n.server, "account_info", map[string]interface{}{"account": unknown.String()}), "actNotFound")
}

func TestServer_SubmitWithSecret(t *testing.T) {
	n := newTestNode(t, true)
	bob := accountFor(t, "bob")

	result := submit(t, n.server, genesis.MasterPassphrase, map[string]interface{}{
		"TransactionType": "Payment",
		"Destination":     bob.String(),
		"Amount":          amount.Units(10),
	}, "tesSUCCESS")
	assert.Equal(t, true, result["applied"])
	assert.NotEmpty(t, result["tx_hash"])
	assert.Equal(t, uint32(1), sequenceOf(t, result))

	info := call(t, n.server, "account_info", map[string]interface{}{"account": bob.String()})
	requireSuccess(t, info)
	assert.Equal(t, float64(amount.Units(10)), info["account_data"].(map[string]interface{})["Balance"])
}

func TestServer_SubmitUnsignedIsRejected(t *testing.T) {
	n := newTestNode(t, true)
	seq := 1
	result := call(t, n.server, "submit", map[string]interface{}{
		"tx_json": map[string]interface{}{
			"TransactionType": "Payment",
			"Account":         n.master.String(),
			"Sequence":        seq,
			"Destination":     accountFor(t, "bob").String(),
			"Amount":          1,
		},
	})
	requireSuccess(t, result)
	assert.Equal(t, "tefNOT_SIGNED", result["engine_result"])
	assert.Equal(t, false, result["applied"])
}

func TestServer_SignMismatchedSecret(t *testing.T) {
	n := newTestNode(t, true)
	result := call(t, n.server, "sign", map[string]interface{}{
		"secret": "bob",
		"tx_json": map[string]interface{}{
			"TransactionType": "Payment",
			"Account":         n.master.String(),
			"Destination":     accountFor(t, "carol").String(),
			"Amount":          1,
		},
	})
	requireError(t, result, "badSeed")
}

func TestServer_SigningDisabled(t *testing.T) {
	n := newTestNode(t, false)
	result := call(t, n.server, "sign", map[string]interface{}{
		"secret": genesis.MasterPassphrase,
		"tx_json": map[string]interface{}{
			"TransactionType": "Payment",
			"Destination":     accountFor(t, "bob").String(),
			"Amount":          1,
		},
	})
	requireError(t, result, "noPermission")
}

func TestServer_SignReturnsHash(t *testing.T) {
	n := newTestNode(t, true)
	before := n.ledger.Applied()
	result := call(t, n.server, "sign", map[string]interface{}{
		"secret": genesis.MasterPassphrase,
		"tx_json": map[string]interface{}{
			"TransactionType": "Payment",
			"Destination":     accountFor(t, "bob").String(),
			"Amount":          1,
		},
	})
	requireSuccess(t, result)
	assert.Len(t, result["hash"], 64)
	txJSON := result["tx_json"].(map[string]interface{})
	assert.NotEmpty(t, txJSON["TxnSignature"])
	assert.Equal(t, n.master.String(), txJSON["Account"])

	// Signing does not apply anything
	assert.Equal(t, before, n.ledger.Applied())
}

func TestServer_TxWithoutHistory(t *testing.T) {
	n := newTestNode(t, true)
	requireError(t, call(t, n.server, "tx", map[string]interface{}{"transaction": string(bytes.Repeat([]byte("A"), 64))}), "historyNotAvailable")
}

func TestServer_ProtocolInfo(t *testing.T) {
	n := newTestNode(t, true)
	result := call(t, n.server, "protocol_info", map[string]interface{}{"config_seed": 0})
	requireSuccess(t, result)
	assert.Contains(t, result, "config")

	requireError(t, call(t, n.server, "protocol_info", map[string]interface{}{"config_seed": 7}), "objectNotFound")
}

func TestServer_AuctionLifecycle(t *testing.T) {
	n := newTestNode(t, true)
	h := n.server
	master := genesis.MasterPassphrase
	bob := accountFor(t, "bob")

	submit(t, h, master, map[string]interface{}{
		"TransactionType": "Payment",
		"Destination":     bob.String(),
		"Amount":          amount.Units(1000),
	}, "tesSUCCESS")

	res := submit(t, h, master, map[string]interface{}{
		"TransactionType": "CollectionCreate",
		"Name":            "Art",
	}, "tesSUCCESS")
	collection := assets.CollectionID(n.master, sequenceOf(t, res))

	res = submit(t, h, master, map[string]interface{}{
		"TransactionType": "AssetMint",
		"Collection":      collection.String(),
		"Name":            "Piece",
	}, "tesSUCCESS")
	asset := assets.AssetID(n.master, sequenceOf(t, res))

	submit(t, h, master, map[string]interface{}{
		"TransactionType": "WhitelistCollection",
		"ConfigSeed":      0,
		"Collection":      collection.String(),
	}, "tesSUCCESS")

	target := map[string]interface{}{
		"ConfigSeed": 0,
		"Collection": collection.String(),
		"Asset":      asset.String(),
	}
	withTarget := func(fields map[string]interface{}) map[string]interface{} {
		for k, v := range target {
			fields[k] = v
		}
		return fields
	}

	submit(t, h, master, withTarget(map[string]interface{}{
		"TransactionType": "AuctionCreate",
		"DurationMinutes": 60,
		"MinBid":          100,
	}), "tesSUCCESS")

	list := call(t, h, "auction_list", map[string]interface{}{"status": "listed"})
	requireSuccess(t, list)
	assert.Len(t, list["auctions"], 1)

	submit(t, h, "bob", withTarget(map[string]interface{}{
		"TransactionType": "AuctionBid",
		"Amount":          150,
	}), "tesSUCCESS")

	info := call(t, h, "auction_info", map[string]interface{}{
		"config_seed": 0,
		"collection":  collection.String(),
		"asset":       asset.String(),
	})
	requireSuccess(t, info)
	assert.Equal(t, "bidding", info["auction"].(map[string]interface{})["status"])

	submit(t, h, "bob", withTarget(map[string]interface{}{
		"TransactionType": "AuctionComplete",
	}), "tecAUCTION_RUNNING")

	n.clock.Advance(61 * time.Minute)

	submit(t, h, "bob", withTarget(map[string]interface{}{
		"TransactionType": "AuctionComplete",
	}), "tesSUCCESS")

	assetInfo := call(t, h, "asset_info", map[string]interface{}{"asset": asset.String()})
	requireSuccess(t, assetInfo)
	assert.Equal(t, bob.String(), assetInfo["asset"].(map[string]interface{})["Owner"])
	assert.Equal(t, false, assetInfo["frozen"])

	requireError(t, call(t, h, "auction_info", map[string]interface{}{
		"config_seed": 0,
		"collection":  collection.String(),
		"asset":       asset.String(),
	}), "objectNotFound")
}

func TestServer_MethodsRegistered(t *testing.T) {
	n := newTestNode(t, true)
	methods := n.server.Methods()
	for _, name := range []string{"submit", "sign", "tx", "tx_history", "auction_info", "auction_list",
		"protocol_info", "collection_info", "account_info", "asset_info", "server_info", "ping"} {
		assert.Contains(t, methods, name)
	}
}
