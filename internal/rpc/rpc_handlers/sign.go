package rpc_handlers

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/service"
	"github.com/LeJamon/goAuctiond/internal/core/tx"
	"github.com/LeJamon/goAuctiond/internal/crypto/secp256k1"
	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
)

type signRequest struct {
	TxJSON json.RawMessage `json:"tx_json"`
	// Secret is a passphrase or a hex private key
	Secret string `json:"secret,omitempty"`
}

func keyPairFromSecret(secret string) (*secp256k1.KeyPair, error) {
	if len(secret) == 64 {
		if _, err := hex.DecodeString(secret); err == nil {
			return secp256k1.KeyPairFromHex(secret)
		}
	}
	return secp256k1.KeyPairFromPassphrase(secret)
}

// prepareTransaction parses tx_json, fills Account and Sequence when they
// are missing and signs with the secret when one is given.
func prepareTransaction(ctx *rpc_types.RpcContext, ledger rpc_types.LedgerService, req signRequest) (tx.Transaction, *rpc_types.RpcError) {
	if len(req.TxJSON) == 0 {
		return nil, rpc_types.RpcErrorInvalidParams("Missing required parameter: tx_json")
	}
	transaction, err := tx.FromJSON(req.TxJSON)
	if err != nil {
		return nil, rpc_types.RpcErrorInvalidTransaction("Invalid tx_json: " + err.Error())
	}
	common := transaction.GetCommon()

	var kp *secp256k1.KeyPair
	if req.Secret != "" {
		if !ctx.Services.AdminSigning {
			return nil, rpc_types.RpcErrorNoPermission("Server side signing is disabled")
		}
		if kp, err = keyPairFromSecret(req.Secret); err != nil {
			return nil, rpc_types.RpcErrorBadSeed("Invalid secret: " + err.Error())
		}
		if common.Account.IsZero() {
			common.Account = kp.AccountID()
		}
	}
	if common.Account.IsZero() {
		return nil, rpc_types.RpcErrorInvalidParams("Missing required field: tx_json.Account")
	}

	if common.Sequence == nil {
		seq, err := ledger.NextSequence(common.Account)
		if errors.Is(err, service.ErrNotFound) {
			return nil, rpc_types.RpcErrorActNotFound(common.Account.String())
		}
		if err != nil {
			return nil, rpc_types.RpcErrorInternal(err.Error())
		}
		common.SetSequence(seq)
	}

	if kp != nil {
		if err := tx.Sign(transaction, kp); err != nil {
			if errors.Is(err, tx.ErrSignerMismatch) {
				return nil, rpc_types.RpcErrorBadSeed("Secret does not match tx_json.Account")
			}
			return nil, rpc_types.RpcErrorInternal("sign: " + err.Error())
		}
	}
	return transaction, nil
}

// SignMethod handles the sign RPC method
type SignMethod struct{}

func (m *SignMethod) Handle(ctx *rpc_types.RpcContext, params json.RawMessage) (interface{}, *rpc_types.RpcError) {
	var request signRequest
	if rpcErr := parseParams(params, &request); rpcErr != nil {
		return nil, rpcErr
	}
	if request.Secret == "" {
		return nil, rpc_types.RpcErrorInvalidParams("Missing required parameter: secret")
	}
	ledger, rpcErr := ledgerOf(ctx)
	if rpcErr != nil {
		return nil, rpcErr
	}

	transaction, rpcErr := prepareTransaction(ctx, ledger, request)
	if rpcErr != nil {
		return nil, rpcErr
	}
	hash, err := tx.TransactionHash(transaction)
	if err != nil {
		return nil, rpc_types.RpcErrorInternal("hash: " + err.Error())
	}
	return map[string]interface{}{
		"tx_json": transaction,
		"hash":    fmt.Sprintf("%X", hash),
	}, nil
}

func (m *SignMethod) RequiredRole() rpc_types.Role {
	return rpc_types.RoleAdmin
}

func (m *SignMethod) SupportedApiVersions() []int {
	return allVersions
}
