// Package rpc serves the JSON-RPC API, the event websocket and the metrics
// endpoint.
package rpc

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LeJamon/goAuctiond/internal/metrics"
	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
)

// maxBodySize caps a request body.
const maxBodySize = 1 << 20

// Server handles HTTP JSON-RPC requests
type Server struct {
	registry *rpc_types.MethodRegistry
	services *rpc_types.ServiceContainer
	timeout  time.Duration
	log      *slog.Logger
}

// NewServer creates a new RPC server with the given per request timeout
func NewServer(services *rpc_types.ServiceContainer, timeout time.Duration, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	server := &Server{
		registry: rpc_types.NewMethodRegistry(),
		services: services,
		timeout:  timeout,
		log:      log.With("component", "rpc"),
	}

	// Register all RPC methods
	server.registerAllMethods()

	return server
}

// Methods lists the registered method names.
func (s *Server) Methods() []string {
	return s.registry.List()
}

// Request is a JSON-RPC request
// Format: {"method": "method_name", "params": [{...}]}
type Request struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params,omitempty"`
}

// ServeHTTP implements http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	// Handle preflight requests
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetRequest(w, r)
	case http.MethodPost:
		s.handlePostRequest(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) newContext(r *http.Request) *rpc_types.RpcContext {
	return &rpc_types.RpcContext{
		Context:    r.Context(),
		Role:       rpc_types.RoleGuest,
		ApiVersion: rpc_types.DefaultApiVersion,
		ClientIP:   getClientIP(r),
		Services:   s.services,
	}
}

// handleGetRequest processes GET requests with a command query parameter
func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Query().Get("command")
	if method == "" {
		// Default to server_info for GET requests without command
		method = "server_info"
	}

	ctx := s.newContext(r)
	result, rpcErr := s.executeMethod(method, nil, ctx)
	s.writeResponse(w, nil, result, rpcErr)
}

// handlePostRequest processes POST requests with a JSON-RPC payload
func (s *Server) handlePostRequest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, nil, "internal", "Failed to read request body")
		return
	}
	defer r.Body.Close()

	var request Request
	if err := json.Unmarshal(body, &request); err != nil {
		s.writeError(w, nil, "jsonInvalid", "Invalid JSON: "+err.Error())
		return
	}
	if request.Method == "" {
		s.writeError(w, nil, "missingCommand", "Missing method field")
		return
	}

	// params is an array with one object
	var params json.RawMessage
	if len(request.Params) > 0 {
		params = request.Params[0]
	}

	ctx := s.newContext(r)
	if params != nil {
		var version struct {
			ApiVersion *int `json:"api_version"`
		}
		if err := json.Unmarshal(params, &version); err == nil && version.ApiVersion != nil {
			ctx.ApiVersion = *version.ApiVersion
		}
	}

	result, rpcErr := s.executeMethod(request.Method, params, ctx)

	// Echo the request in error responses
	var requestObj interface{}
	if rpcErr != nil {
		reqMap := map[string]interface{}{}
		if params != nil {
			_ = json.Unmarshal(params, &reqMap)
		}
		reqMap["command"] = request.Method
		requestObj = reqMap
	}
	s.writeResponse(w, requestObj, result, rpcErr)
}

// executeMethod executes an RPC method with the given parameters
func (s *Server) executeMethod(method string, params json.RawMessage, ctx *rpc_types.RpcContext) (interface{}, *rpc_types.RpcError) {
	handler, exists := s.registry.Get(method)
	if !exists {
		metrics.RPCRequestsTotal.WithLabelValues("unknown", "error").Inc()
		return nil, rpc_types.RpcErrorMethodNotFound(method)
	}

	supported := false
	for _, version := range handler.SupportedApiVersions() {
		if ctx.ApiVersion == version {
			supported = true
			break
		}
	}
	if !supported {
		metrics.RPCRequestsTotal.WithLabelValues(method, "error").Inc()
		return nil, rpc_types.RpcErrorInvalidApiVersion(strconv.Itoa(ctx.ApiVersion))
	}

	if s.timeout > 0 {
		c, cancel := context.WithTimeout(ctx.Context, s.timeout)
		defer cancel()
		ctx.Context = c
	}

	result, rpcErr := handler.Handle(ctx, params)
	status := "success"
	if rpcErr != nil {
		status = "error"
		s.log.Debug("rpc error", "method", method, "error", rpcErr.ErrorString, "message", rpcErr.Message)
	}
	metrics.RPCRequestsTotal.WithLabelValues(method, status).Inc()
	return result, rpcErr
}

// writeResponse writes a JSON-RPC response. result.status is "success" or
// "error"; errors carry error, error_code and error_message.
func (s *Server) writeResponse(w http.ResponseWriter, request interface{}, result interface{}, rpcErr *rpc_types.RpcError) {
	response := make(map[string]interface{})

	if rpcErr != nil {
		resultObj := map[string]interface{}{
			"status":        "error",
			"error":         rpcErr.ErrorString,
			"error_code":    rpcErr.Code,
			"error_message": rpcErr.Message,
		}
		if request != nil {
			resultObj["request"] = request
		}
		response["result"] = resultObj
	} else if resultMap, ok := result.(map[string]interface{}); ok {
		resultMap["status"] = "success"
		response["result"] = resultMap
	} else {
		response["result"] = map[string]interface{}{
			"status": "success",
			"data":   result,
		}
	}

	s.write(w, response)
}

// writeError writes an error response for a request that never reached a
// method
func (s *Server) writeError(w http.ResponseWriter, request interface{}, errorCode string, message string) {
	resultObj := map[string]interface{}{
		"status":        "error",
		"error":         errorCode,
		"error_message": message,
	}
	if request != nil {
		resultObj["request"] = request
	}
	s.write(w, map[string]interface{}{"result": resultObj})
}

func (s *Server) write(w http.ResponseWriter, response map[string]interface{}) {
	responseData, err := json.Marshal(response)
	if err != nil {
		s.log.Error("failed to marshal response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(responseData)
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
