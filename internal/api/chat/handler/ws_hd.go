package chatHandler

import (
	"strings"
	"time"

	"jusbook/internal/api/chat"
	"jusbook/internal/middleware"
	contextPkg "jusbook/pkg/context"
	"jusbook/pkg/handlerUtil"
	"jusbook/pkg/response"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	socketReadTimeout  = 5 * time.Minute
	socketWriteTimeout = 10 * time.Second
)

// ChatSocket runs a conversation over a websocket. Each text frame is a
// ChatRequest; a frame without session_id continues the connection's session.
func (h *ChatHandler) ChatSocket(c *websocket.Conn) {
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)
	sessionID := strings.TrimSpace(c.Query("session_id"))

	fields := logrus.Fields{"request_id": requestID, "remote": c.RemoteAddr().String()}
	h.log.WithFields(fields).Info("Chat WebSocket client connected")
	defer h.log.WithFields(fields).Info("Chat WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	for {
		if err := c.SetReadDeadline(time.Now().Add(socketReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			return
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithFields(fields).Errorf("Chat WebSocket error: %v", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			h.log.WithFields(fields).Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		var req chat.ChatRequest
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(message, &req); err != nil {
			if !h.writeSocket(c, handlerUtil.ErrorResponse{Error: "Invalid message payload", Code: "BAD_REQUEST", Details: err.Error()}) {
				return
			}
			continue
		}

		if req.SessionID == "" {
			req.SessionID = sessionID
		}
		if req.Message == nil {
			if !h.writeSocket(c, handlerUtil.ErrorResponse{Error: chat.ErrMissingMessage.Error(), Code: "VALIDATION_ERROR"}) {
				return
			}
			continue
		}
		if err := h.validator.Struct(req); err != nil {
			if !h.writeSocket(c, handlerUtil.ErrorResponse{Error: "Validation failed", Code: "VALIDATION_ERROR", Details: err.Error()}) {
				return
			}
			continue
		}

		ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), 10*time.Second)
		resp, err := h.chatService.ProcessMessage(ctx, req)
		cancel()

		if err != nil {
			h.log.WithFields(fields).Errorf("Error processing chat message: %v", err)
			code := response.KindOf(err)
			if code == "" {
				code = "INTERNAL_ERROR"
			}
			if !h.writeSocket(c, handlerUtil.ErrorResponse{Error: err.Error(), Code: code}) {
				return
			}
			continue
		}

		sessionID = resp.SessionID
		if !h.writeSocket(c, resp) {
			return
		}
	}
}

func (h *ChatHandler) writeSocket(c *websocket.Conn, payload interface{}) bool {
	if err := c.SetWriteDeadline(time.Now().Add(socketWriteTimeout)); err != nil {
		h.log.Errorf("Error setting write deadline: %v", err)
		return false
	}
	if err := c.WriteJSON(payload); err != nil {
		h.log.Errorf("Error writing JSON response: %v", err)
		return false
	}
	return true
}
