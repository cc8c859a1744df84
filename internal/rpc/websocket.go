package rpc

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/service"
	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
)

const (
	wsReadLimit    = 512 * 1024
	wsPongWait     = 60 * time.Second
	wsPingInterval = 54 * time.Second
	wsWriteWait    = 10 * time.Second
	wsSendBuffer   = 256
)

// WebSocketServer accepts websocket connections. A connection may run any
// RPC method by sending {"command": name, ...params} and may subscribe to
// the ledger event stream.
type WebSocketServer struct {
	upgrader websocket.Upgrader
	rpc      *Server
	hub      *service.Hub
	log      *slog.Logger

	mu          sync.Mutex
	connections map[uint64]*wsConnection
	nextID      atomic.Uint64
}

type wsConnection struct {
	id     uint64
	conn   *websocket.Conn
	send   chan []byte
	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	unsubscribe func()
}

// NewWebSocketServer creates a websocket server dispatching to rpc and
// streaming events from hub.
func NewWebSocketServer(rpc *Server, hub *service.Hub) *WebSocketServer {
	return &WebSocketServer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		rpc:         rpc,
		hub:         hub,
		log:         rpc.log.With("transport", "websocket"),
		connections: make(map[uint64]*wsConnection),
	}
}

// ServeHTTP handles websocket upgrade requests
func (ws *WebSocketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		ws.log.Debug("websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &wsConnection{
		id:     ws.nextID.Add(1),
		conn:   conn,
		send:   make(chan []byte, wsSendBuffer),
		ctx:    ctx,
		cancel: cancel,
	}

	ws.mu.Lock()
	ws.connections[c.id] = c
	ws.mu.Unlock()

	go ws.writeLoop(c)
	go ws.readLoop(c, getClientIP(r))
}

// Count returns the number of open connections.
func (ws *WebSocketServer) Count() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.connections)
}

// CloseAll closes every connection.
func (ws *WebSocketServer) CloseAll() {
	ws.mu.Lock()
	conns := make([]*wsConnection, 0, len(ws.connections))
	for _, c := range ws.connections {
		conns = append(conns, c)
	}
	ws.mu.Unlock()
	for _, c := range conns {
		ws.closeConnection(c)
	}
}

func (ws *WebSocketServer) readLoop(c *wsConnection, clientIP string) {
	defer ws.closeConnection(c)

	c.conn.SetReadLimit(wsReadLimit)
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ws.log.Debug("websocket read failed", "conn", c.id, "error", err)
			}
			return
		}
		ws.handleMessage(c, clientIP, message)
	}
}

func (ws *WebSocketServer) writeLoop(c *wsConnection) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			c.conn.Close()
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				ws.log.Debug("websocket write failed", "conn", c.id, "error", err)
				c.cancel()
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.cancel()
			}
		}
	}
}

// wsRequest is the envelope of a websocket command
type wsRequest struct {
	ID      interface{} `json:"id,omitempty"`
	Command string      `json:"command"`
}

func (ws *WebSocketServer) handleMessage(c *wsConnection, clientIP string, message []byte) {
	var req wsRequest
	if err := json.Unmarshal(message, &req); err != nil {
		ws.reply(c, nil, nil, rpc_types.NewRpcError(rpc_types.RpcINVALID_PARAMS, "jsonInvalid", "jsonInvalid", "Invalid JSON: "+err.Error()))
		return
	}
	if req.Command == "" {
		ws.reply(c, req.ID, nil, rpc_types.NewRpcError(rpc_types.RpcMISSING_COMMAND, "missingCommand", "missingCommand", "Missing command field"))
		return
	}

	switch req.Command {
	case "subscribe":
		ws.subscribe(c)
		ws.reply(c, req.ID, map[string]interface{}{}, nil)
	case "unsubscribe":
		ws.unsubscribe(c)
		ws.reply(c, req.ID, map[string]interface{}{}, nil)
	default:
		ctx := &rpc_types.RpcContext{
			Context:    c.ctx,
			Role:       rpc_types.RoleGuest,
			ApiVersion: rpc_types.DefaultApiVersion,
			ClientIP:   clientIP,
			Services:   ws.rpc.services,
		}
		result, rpcErr := ws.rpc.executeMethod(req.Command, json.RawMessage(message), ctx)
		ws.reply(c, req.ID, result, rpcErr)
	}
}

func (ws *WebSocketServer) subscribe(c *wsConnection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe != nil {
		return
	}
	events, cancel := ws.hub.Subscribe(0)
	c.unsubscribe = cancel
	go func() {
		for ev := range events {
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			ws.enqueue(c, data)
		}
	}()
}

func (ws *WebSocketServer) unsubscribe(c *wsConnection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (ws *WebSocketServer) reply(c *wsConnection, id interface{}, result interface{}, rpcErr *rpc_types.RpcError) {
	response := map[string]interface{}{"type": "response"}
	if id != nil {
		response["id"] = id
	}
	if rpcErr != nil {
		response["status"] = "error"
		response["error"] = rpcErr.ErrorString
		response["error_code"] = rpcErr.Code
		response["error_message"] = rpcErr.Message
	} else {
		response["status"] = "success"
		response["result"] = result
	}
	data, err := json.Marshal(response)
	if err != nil {
		ws.log.Error("failed to marshal websocket response", "error", err)
		return
	}
	ws.enqueue(c, data)
}

// enqueue drops the message when the connection is closed or its buffer
// is full.
func (ws *WebSocketServer) enqueue(c *wsConnection, data []byte) {
	select {
	case <-c.ctx.Done():
	case c.send <- data:
	default:
		ws.log.Debug("websocket send buffer full, message dropped", "conn", c.id)
	}
}

func (ws *WebSocketServer) closeConnection(c *wsConnection) {
	ws.unsubscribe(c)
	c.cancel()

	ws.mu.Lock()
	delete(ws.connections, c.id)
	ws.mu.Unlock()
}
