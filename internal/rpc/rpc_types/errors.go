package rpc_types

// RpcError represents an RPC error with code and message
type RpcError struct {
	Code        int    `json:"error_code"`
	ErrorString string `json:"error"`
	Type        string `json:"type"`
	Message     string `json:"error_message,omitempty"`
}

func (e RpcError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.ErrorString
}

// Error codes
const (
	// Universal errors
	RpcUNKNOWN          = -1
	RpcMETHOD_NOT_FOUND = -32601
	RpcINVALID_PARAMS   = -32602
	RpcINTERNAL         = -32603

	// General purpose errors
	RpcMISSING_COMMAND   = 2
	RpcCOMMAND_UNTRUSTED = 3
	RpcNOT_STANDALONE    = 10
	RpcSHUT_DOWN         = 11

	// Transaction errors
	RpcTXN_NOT_FOUND = 24

	// Account errors
	RpcACT_NOT_FOUND = 19
	RpcACT_MALFORMED = 50

	// Object errors
	RpcINVALID_API_VERSION   = 38
	RpcNOT_ENABLED           = 31
	RpcINVALID_HASH          = 44
	RpcBAD_SEED              = 45
	RpcINVALID_TRANSACTION   = 53
	RpcOBJECT_NOT_FOUND      = 92
	RpcHISTORY_NOT_AVAILABLE = 93
)

// Standard error constructors
func NewRpcError(code int, error, errorType, message string) *RpcError {
	return &RpcError{
		Code:        code,
		ErrorString: error,
		Type:        errorType,
		Message:     message,
	}
}

func RpcErrorUnknown(message string) *RpcError {
	return NewRpcError(RpcUNKNOWN, "unknown", "unknown", message)
}

func RpcErrorInvalidParams(message string) *RpcError {
	return NewRpcError(RpcINVALID_PARAMS, "invalidParams", "invalidParams", message)
}

func RpcErrorMethodNotFound(method string) *RpcError {
	return NewRpcError(RpcMETHOD_NOT_FOUND, "unknownCmd", "unknownCmd", "Unknown method: "+method)
}

func RpcErrorInternal(message string) *RpcError {
	return NewRpcError(RpcINTERNAL, "internal", "internal", message)
}

func RpcErrorInvalidApiVersion(version string) *RpcError {
	return NewRpcError(RpcINVALID_API_VERSION, "invalid_API_version", "invalidApiVersion", "Unsupported API version: "+version)
}

func RpcErrorActNotFound(account string) *RpcError {
	return NewRpcError(RpcACT_NOT_FOUND, "actNotFound", "actNotFound", "Account not found: "+account)
}

func RpcErrorActMalformed(message string) *RpcError {
	return NewRpcError(RpcACT_MALFORMED, "actMalformed", "actMalformed", message)
}

func RpcErrorObjectNotFound(message string) *RpcError {
	return NewRpcError(RpcOBJECT_NOT_FOUND, "objectNotFound", "objectNotFound", message)
}

func RpcErrorTxnNotFound(hash string) *RpcError {
	return NewRpcError(RpcTXN_NOT_FOUND, "txnNotFound", "txnNotFound", "Transaction not found: "+hash)
}

func RpcErrorInvalidHash(message string) *RpcError {
	return NewRpcError(RpcINVALID_HASH, "invalidHash", "invalidHash", message)
}

func RpcErrorBadSeed(message string) *RpcError {
	return NewRpcError(RpcBAD_SEED, "badSeed", "badSeed", message)
}

func RpcErrorInvalidTransaction(message string) *RpcError {
	return NewRpcError(RpcINVALID_TRANSACTION, "invalidTransaction", "invalidTransaction", message)
}

func RpcErrorNoPermission(message string) *RpcError {
	return NewRpcError(RpcCOMMAND_UNTRUSTED, "noPermission", "noPermission", message)
}

func RpcErrorHistoryNotAvailable() *RpcError {
	return NewRpcError(RpcHISTORY_NOT_AVAILABLE, "historyNotAvailable", "historyNotAvailable", "Transaction history is not configured")
}

func RpcErrorShutDown() *RpcError {
	return NewRpcError(RpcSHUT_DOWN, "shutDown", "shutDown", "The server is shutting down")
}
