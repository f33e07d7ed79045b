package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	perr "github.com/msto63/pascal/foundation/core/error"
	plog "github.com/msto63/pascal/foundation/core/log"
)

// readTimeout closes idle connections
const readTimeout = 120 * time.Second

// WebSocket upgrader with permissive settings for local use
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage represents a WebSocket request
type WSMessage struct {
	Type    string          `json:"type"`              // "eval", "ping"
	Payload json.RawMessage `json:"payload,omitempty"` // Message-specific payload
}

// WSEvalPayload is the payload of an eval request
type WSEvalPayload struct {
	Expression string `json:"expression"`
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	Type    string      `json:"type"`              // "result", "error", "pong"
	Payload interface{} `json:"payload,omitempty"` // Response-specific payload
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WebSocketHandler evaluates expressions sent over a WebSocket. Messages
// on one connection are answered in order.
type WebSocketHandler struct {
	calc   *Calculator
	logger *plog.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(calc *Calculator, logger *plog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		calc:   calc,
		logger: logger.WithName("websocket"),
	}
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnWithErr("WebSocket upgrade failed", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	sessionID := uuid.New().String()
	logger := h.logger.WithSessionID(sessionID).WithFields(plog.Fields{"remote": conn.RemoteAddr().String()})
	logger.Info("WebSocket connection established")

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WarnWithErr("WebSocket read error", err)
			} else {
				logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		var resp WSResponse
		switch msg.Type {
		case "ping":
			resp = WSResponse{Type: "pong"}

		case "eval":
			var payload WSEvalPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				resp = errorResponse("invalid_payload", "Invalid eval payload")
				break
			}
			out, err := h.calc.Calculate(ctx, payload.Expression, sessionID)
			if err != nil {
				resp = errorResponse(string(perr.GetCode(err)), err.Error())
				break
			}
			resp = WSResponse{Type: "result", Payload: out}

		default:
			resp = errorResponse("unknown_type", "Unknown message type: "+msg.Type)
		}

		if err := conn.WriteJSON(resp); err != nil {
			logger.WarnWithErr("WebSocket write failed", err)
			return
		}
	}
}

func errorResponse(code, message string) WSResponse {
	return WSResponse{Type: "error", Payload: WSErrorPayload{Code: code, Message: message}}
}
