package ws

import (
	"context"
	"encoding/json"
	"time"

	"dealflow_backend/internal/logger"
	"dealflow_backend/internal/services"
	"dealflow_backend/internal/services/dto"
	"dealflow_backend/pkg/apperrors"

	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBufferSize = 256
)

// Входящие действия клиента
const (
	ActionSendMessage = "send_message"
	ActionMarkRead    = "mark_read"
	ActionPing        = "ping"
)

// Ответы на действия
const (
	EventMessageSent = "message.sent"
	EventMarkedRead  = "message.marked_read"
	EventPong        = "pong"
	EventError       = "error"
)

type IncomingWSMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type sendMessagePayload struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

type markReadPayload struct {
	ConversationID string `json:"conversation_id"`
}

type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan any
	Ctx    context.Context

	Manager   *WebSocketManager
	Messaging services.MessagingService
	DB        *gorm.DB
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.CtxWithError(c.Ctx, "WebSocket read error", err)
			}
			break
		}

		var msg IncomingWSMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			c.reply(EventError, apperrors.NewBadRequestError("Invalid message format"))
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(msg); err != nil {
				logger.CtxWithError(c.Ctx, "WebSocket write error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Централизованный обработчик
func (c *Client) handleMessage(msg IncomingWSMessage) {
	db := c.DB.WithContext(c.Ctx)

	switch msg.Action {
	case ActionSendMessage:
		var payload sendMessagePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			c.reply(EventError, apperrors.NewBadRequestError("Invalid send_message payload"))
			return
		}
		created, err := c.Messaging.SendMessage(db, c.UserID, payload.ConversationID, &dto.SendMessageRequest{Content: payload.Content})
		if err != nil {
			c.replyError(err)
			return
		}
		c.reply(EventMessageSent, created)

	case ActionMarkRead:
		var payload markReadPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			c.reply(EventError, apperrors.NewBadRequestError("Invalid mark_read payload"))
			return
		}
		res, err := c.Messaging.MarkRead(db, c.UserID, payload.ConversationID)
		if err != nil {
			c.replyError(err)
			return
		}
		c.reply(EventMarkedRead, res)

	case ActionPing:
		c.reply(EventPong, nil)

	default:
		c.reply(EventError, apperrors.NewBadRequestError("Unknown action: "+msg.Action))
	}
}

func (c *Client) replyError(err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		logger.CtxWithError(c.Ctx, "WebSocket action failed", err)
		appErr = apperrors.InternalError(nil)
	}
	c.reply(EventError, appErr)
}

// reply отвечает только этому подключению
func (c *Client) reply(eventType string, data interface{}) {
	c.Manager.mu.RLock()
	defer c.Manager.mu.RUnlock()

	if _, ok := c.Manager.clients[c.UserID][c]; !ok {
		return
	}
	select {
	case c.Send <- Event{Type: eventType, Data: data, SentAt: time.Now().UTC()}:
	default:
		logger.CtxWarn(c.Ctx, "WebSocket reply dropped, buffer full")
	}
}
